package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonasrenault/luniix/internal/database"
)

var (
	dbVerbose bool
	dbRefresh bool
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Inspect the story databases",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings()
		if err != nil {
			return err
		}

		if dbRefresh {
			database.DownloadOfficialDB(settings, true)
			database.DownloadThirdPartyDB(settings, true)
		}

		db := database.Open(settings)
		fmt.Printf("%d stories in database.\n", db.Len())
		if dbVerbose {
			for _, id := range db.UUIDs() {
				entry, _ := db.Get(id)
				fmt.Printf("%s: %s\n", id, entry.Title())
			}
		}
		return nil
	},
}

func init() {
	dbCmd.Flags().BoolVarP(&dbVerbose, "verbose-stories", "s", false, "list story names")
	dbCmd.Flags().BoolVarP(&dbRefresh, "refresh", "r", false, "force re-download of the databases")
	rootCmd.AddCommand(dbCmd)
}
