package cmd

import (
	"github.com/spf13/cobra"

	"github.com/picard-community/plugin-tools/internal/archive"
	"github.com/picard-community/plugin-tools/internal/config"
	"github.com/picard-community/plugin-tools/internal/logging"
)

// packageFolderCmd represents the package_folder command.
var packageFolderCmd = &cobra.Command{
	Use:   "package_folder FOLDER",
	Short: "Package a plugin folder into a distributable archive",
	Long: `Create a plugin package from an unpackaged plugin folder. The plugin
manifest is validated first; packaging aborts on any violation and no
archive is produced. The archive embeds the manifest with per-file digests
and a whole-package checksum, and a .sha256 sidecar is written next to it.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		manifestPath, _ := cmd.Flags().GetString("manifest")
		outputDir, _ := cmd.Flags().GetString("output")
		if outputDir == "" {
			outputDir = config.Get().Output.Dir
		}

		result, err := archive.Build(archive.BuildOptions{
			PluginDir:    args[0],
			ManifestPath: manifestPath,
			OutputDir:    outputDir,
		})
		if err != nil {
			return err
		}

		logging.LogBuild(result.ArchivePath, result.Checksum, result.FileCount)

		cmd.Printf("Created: %s\n", result.ArchivePath)
		cmd.Printf("Checksum: %s\n", result.Checksum)
		cmd.Printf("Files: %d\n", result.FileCount)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(packageFolderCmd)

	packageFolderCmd.Flags().
		StringP("manifest", "m", "", "Manifest path (default FOLDER/MANIFEST.json)")
	packageFolderCmd.Flags().
		StringP("output", "o", "", "Output directory for the packaged plugin")
}
