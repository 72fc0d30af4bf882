package cmd

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/picard-community/plugin-tools/internal/archive"
	"github.com/picard-community/plugin-tools/internal/manifest"
)

// inspectCmd represents the inspect command.
var inspectCmd = &cobra.Command{
	Use:   "inspect ARCHIVE",
	Short: "Show the manifest embedded in a packaged plugin",
	Long:  `Print the embedded manifest fields and recorded file digests of a plugin package without verifying it.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := archive.ReadManifest(args[0])
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "Field\tValue")
		fmt.Fprintln(w, "-----\t-----")
		for _, field := range manifest.Schema {
			if value := m.FieldValue(field.Key); value != "" {
				fmt.Fprintf(w, "%s\t%s\n", field.Key, value)
			}
		}
		fmt.Fprintf(w, "checksum\t%s\n", m.Checksum)
		if err := w.Flush(); err != nil {
			return err
		}

		if len(m.Files) == 0 {
			return nil
		}

		paths := make([]string, 0, len(m.Files))
		for path := range m.Files {
			paths = append(paths, path)
		}
		sort.Strings(paths)

		cmd.Println()
		fw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(fw, "File\tDigest")
		fmt.Fprintln(fw, "----\t------")
		for _, path := range paths {
			fmt.Fprintf(fw, "%s\t%s\n", path, m.Files[path])
		}

		return fw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
