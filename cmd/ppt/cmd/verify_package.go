package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/picard-community/plugin-tools/internal/archive"
	"github.com/picard-community/plugin-tools/internal/logging"
)

// verifyPackageCmd represents the verify_package command.
var verifyPackageCmd = &cobra.Command{
	Use:   "verify_package ARCHIVE",
	Short: "Verify the integrity of a packaged plugin",
	Long: `Re-validate the manifest embedded in a plugin package and recompute
its checksum with the same canonical algorithm the builder used. Reports
every failed check: manifest violations, the whole-package checksum
mismatch with expected and actual digests, and per-file differences.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		report, err := archive.Verify(args[0])
		if err != nil {
			return err
		}

		failures := report.Failures()
		logging.LogVerification(args[0], report.Valid(), len(failures))

		if !report.Valid() {
			cmd.Printf("Package verification failed: %s\n", args[0])
			for _, failure := range failures {
				cmd.Printf("  %s\n", failure)
			}

			return errors.New("package verification failed")
		}

		cmd.Printf("Package verified: %s\n", args[0])
		cmd.Printf("Checksum: %s\n", report.ActualChecksum)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(verifyPackageCmd)
}
