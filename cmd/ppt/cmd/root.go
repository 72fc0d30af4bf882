// Package cmd provides the CLI commands for the picard plugin tools.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/picard-community/plugin-tools/internal/config"
	"github.com/picard-community/plugin-tools/internal/logging"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "ppt",
	Short: "Picard plugin packaging utilities",
	Long: `Tools for managing plugin packages for the Picard media tagger:
creating manifest metadata, packaging plugin folders into distributable
archives, and verifying manifest and package integrity.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := config.Initialize(); err != nil {
			return err
		}

		cfg := config.Get()
		debug, _ := cmd.Flags().GetBool("debug")
		logging.InitLogger(debug || cfg.Log.Level == "debug", cfg.Log.Format == "human")

		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
}
