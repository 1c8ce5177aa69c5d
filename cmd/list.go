package cmd

import (
	"github.com/apex/log"
	"github.com/spf13/cobra"

	"github.com/jonasrenault/luniix/internal/device"
)

var listWorkers int

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List connected devices",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings()
		if err != nil {
			return err
		}

		log.Info("looking for devices...")
		mounts, err := device.ListMounts()
		if err != nil {
			return err
		}
		if len(mounts) == 0 {
			log.Info("no devices found")
			return nil
		}
		log.Infof("found %d device(s)", len(mounts))

		for _, res := range device.Scan(mounts, settings.ConfigDir, listWorkers) {
			if res.Err != nil {
				log.Warnf("> %s (unreadable)", res.MountPath)
				continue
			}
			log.Infof("> %s (%s, SNU %s)", res.MountPath, res.Device.Type, res.Device.SNUString())
		}
		return nil
	},
}

func init() {
	listCmd.Flags().IntVar(&listWorkers, "workers", 4, "devices parsed in parallel")
	rootCmd.AddCommand(listCmd)
}
