package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/picard-community/plugin-tools/internal/manifest"
)

// verifyManifestCmd represents the verify_manifest command.
var verifyManifestCmd = &cobra.Command{
	Use:   "verify_manifest MANIFEST",
	Short: "Verify a plugin manifest file",
	Long: `Check a manifest file against the plugin schema. Prints the field
summary when valid, or the complete violation list when not.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := manifest.Load(args[0])
		if err != nil {
			return err
		}

		if violations := manifest.Validate(m); violations != nil {
			return &manifest.ValidationError{Violations: violations}
		}

		cmd.Printf("Manifest verified: %s\n\n", args[0])

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "Field\tValue")
		fmt.Fprintln(w, "-----\t-----")
		for _, field := range manifest.Schema {
			if value := m.FieldValue(field.Key); value != "" {
				fmt.Fprintf(w, "%s\t%s\n", field.Key, value)
			}
		}

		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(verifyManifestCmd)
}
