package cmd

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/picard-community/plugin-tools/internal/manifest"
)

var (
	createName        string
	createAuthor      string
	createVersion     string
	createAPIVersions string
	createDescription string
	createLicense     string
	createLicenseURL  string
	nonInteractive    bool
)

// createManifestCmd represents the create_basic_manifest command.
var createManifestCmd = &cobra.Command{
	Use:   "create_basic_manifest [manifest_path]",
	Short: "Create a plugin manifest",
	Long: `Create a manifest file for a plugin with an interactive wizard.
Flags pre-fill wizard fields; with --non-interactive the manifest is
written from flags alone and must validate.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := manifest.FileName
		if len(args) == 1 {
			path = args[0]
		}

		initial := manifest.Manifest{}
		for key, value := range map[string]string{
			"name":         createName,
			"author":       createAuthor,
			"version":      createVersion,
			"api_versions": createAPIVersions,
			"description":  createDescription,
			"license":      createLicense,
			"license_url":  createLicenseURL,
		} {
			if value != "" {
				initial.SetFieldValue(key, value)
			}
		}

		m := initial
		if !nonInteractive {
			model, err := tea.NewProgram(manifest.NewWizard(initial)).Run()
			if err != nil {
				return fmt.Errorf("wizard failed: %w", err)
			}

			wizard, ok := model.(manifest.WizardModel)
			if !ok || wizard.Cancelled() {
				return errors.New("manifest creation cancelled")
			}
			m = wizard.Manifest()
		}

		if violations := manifest.Validate(&m); violations != nil {
			return &manifest.ValidationError{Violations: violations}
		}

		if err := m.Save(path); err != nil {
			return err
		}

		cmd.Printf("Created manifest: %s\n", path)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(createManifestCmd)

	createManifestCmd.Flags().StringVarP(&createName, "name", "n", "", "Plugin name")
	createManifestCmd.Flags().StringVarP(&createAuthor, "author", "a", "", "Plugin author name")
	createManifestCmd.Flags().StringVarP(&createVersion, "version", "v", "", "Plugin version")
	createManifestCmd.Flags().
		StringVar(&createAPIVersions, "api-versions", "", "Comma-separated supported API versions")
	createManifestCmd.Flags().
		StringVarP(&createDescription, "description", "d", "", "Plugin description")
	createManifestCmd.Flags().StringVarP(&createLicense, "license", "l", "", "Plugin license")
	createManifestCmd.Flags().StringVar(&createLicenseURL, "license-url", "", "License URL")
	createManifestCmd.Flags().
		BoolVar(&nonInteractive, "non-interactive", false, "Write the manifest from flags without prompting")
}
