// Package cmd implements the luniix command tree.
package cmd

import (
	"fmt"
	"os"

	"github.com/apex/log"
	clihandler "github.com/apex/log/handlers/cli"
	"github.com/spf13/cobra"

	"github.com/jonasrenault/luniix/internal/config"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "luniix",
	Short: "Inspect Lunii and Flam storytelling devices",
	Long: `luniix is a command-line tool for inspecting Lunii and Flam children's
storytelling devices: it enumerates mounted devices, parses their binary
metadata, recovers device and story key material, and lists the stories
they carry with names resolved from the story databases.`,
	Version: "0.1.0",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.SetHandler(clihandler.Default)
		if verbose {
			log.SetLevel(log.DebugLevel)
		} else {
			log.SetLevel(log.InfoLevel)
		}
	},
}

// Execute runs the command tree.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}

// loadSettings loads configuration for a command run.
func loadSettings() (config.Settings, error) {
	settings, err := config.Load()
	if err != nil {
		return config.Settings{}, fmt.Errorf("load settings: %w", err)
	}
	return settings, nil
}
