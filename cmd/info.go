package cmd

import (
	"fmt"

	"github.com/apex/log"
	"github.com/spf13/cobra"

	"github.com/jonasrenault/luniix/internal/database"
	"github.com/jonasrenault/luniix/internal/device"
	"github.com/jonasrenault/luniix/internal/stories"
)

var infoMount string

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Print information about a device",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings()
		if err != nil {
			return err
		}

		mount := infoMount
		if mount == "" {
			log.Info("looking for devices...")
			mounts, err := device.ListMounts()
			if err != nil {
				return err
			}
			if len(mounts) == 0 {
				log.Info("no devices found")
				return nil
			}
			mount = mounts[0]
			log.Infof("using device %s", mount)
		}

		dev, err := device.Parse(mount, settings.ConfigDir)
		if err != nil {
			return err
		}
		fmt.Print(dev)

		installed := stories.LoadDeviceStories(dev)
		db := database.Open(settings)
		fmt.Printf("- stories   : %d\n", len(installed))
		for _, story := range installed {
			name := database.StoryUnknown
			if entry, ok := db.Get(story.UUID.String()); ok {
				name = entry.Title()
			}
			fmt.Printf("> %s - %s\n", story.ShortUUID(), name)
		}
		return nil
	},
}

func init() {
	infoCmd.Flags().StringVarP(&infoMount, "device", "d", "", "device mount point")
	rootCmd.AddCommand(infoCmd)
}
