// Package manifest defines the plugin manifest schema, its on-disk JSON
// form and the validation rules shared by the packaging and verification
// commands.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/picard-community/plugin-tools/internal/errorcodes"
)

// FileName is the manifest file name embedded in every plugin package.
const FileName = "MANIFEST.json"

// Manifest holds the plugin metadata. The JSON keys match the MANIFEST.json
// format used by existing plugin repositories.
type Manifest struct {
	Name        string   `json:"name,omitempty"`
	Author      string   `json:"author,omitempty"`
	Version     string   `json:"version,omitempty"`
	APIVersions []string `json:"api_versions,omitempty"`
	Description string   `json:"description,omitempty"`
	License     string   `json:"license,omitempty"`
	LicenseURL  string   `json:"license_url,omitempty"`

	// Written by the package builder, never by hand.
	Checksum string            `json:"checksum,omitempty"`
	Files    map[string]string `json:"files,omitempty"`

	// Keys seen in the source JSON. Distinguishes an absent required field
	// (missing) from one present with an empty value (invalid).
	present map[string]bool
}

// FieldKind selects the validation rule applied to a schema field.
type FieldKind int

const (
	KindText FieldKind = iota
	KindVersion
	KindVersionList
	KindURL
)

// Field describes one manifest schema field.
type Field struct {
	Key      string
	Prompt   string
	Required bool
	Kind     FieldKind
}

// Schema lists the manifest fields in wizard prompting order.
var Schema = []Field{
	{Key: "name", Prompt: "Plugin Name", Required: true, Kind: KindText},
	{Key: "author", Prompt: "Plugin Author Name", Required: true, Kind: KindText},
	{Key: "version", Prompt: "Plugin Version", Required: true, Kind: KindVersion},
	{
		Key:      "api_versions",
		Prompt:   "Supported API Versions (comma-separated)",
		Required: true,
		Kind:     KindVersionList,
	},
	{Key: "description", Prompt: "Plugin Description", Kind: KindText},
	{Key: "license", Prompt: "Plugin License", Kind: KindText},
	{Key: "license_url", Prompt: "License URL", Kind: KindURL},
}

// Load reads and parses a manifest file. Any failure to find, open or parse
// the file is reported as errorcodes.ErrManifestUnreadable.
func Load(path string) (*Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", errorcodes.ErrManifestUnreadable, path, err)
	}

	return Parse(raw)
}

// Parse decodes manifest JSON bytes.
func Parse(raw []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON: %v", errorcodes.ErrManifestUnreadable, err)
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keys); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON: %v", errorcodes.ErrManifestUnreadable, err)
	}

	m.present = make(map[string]bool, len(keys))
	for key := range keys {
		m.present[key] = true
	}

	return &m, nil
}

// FieldPresent reports whether the field key appeared in the source JSON.
// For manifests constructed in code, presence is inferred from the value.
func (m *Manifest) FieldPresent(key string) bool {
	if m.present != nil {
		return m.present[key]
	}

	return m.FieldValue(key) != ""
}

// Save writes the manifest as indented JSON.
func (m *Manifest) Save(path string) error {
	raw, err := m.Encode()
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write manifest %s: %w", path, err)
	}

	return nil
}

// Encode renders the manifest as indented JSON with a trailing newline.
func (m *Manifest) Encode() ([]byte, error) {
	raw, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode manifest: %w", err)
	}

	return append(raw, '\n'), nil
}

// FieldValue returns the string form of a schema field, as shown by the
// inspect and verify_manifest commands and edited by the wizard.
func (m *Manifest) FieldValue(key string) string {
	switch key {
	case "name":
		return m.Name
	case "author":
		return m.Author
	case "version":
		return m.Version
	case "api_versions":
		return joinVersions(m.APIVersions)
	case "description":
		return m.Description
	case "license":
		return m.License
	case "license_url":
		return m.LicenseURL
	default:
		return ""
	}
}

// SetFieldValue assigns a schema field from its string form. Version lists
// are split on commas with surrounding whitespace trimmed.
func (m *Manifest) SetFieldValue(key, value string) {
	if m.present != nil {
		m.present[key] = true
	}

	switch key {
	case "name":
		m.Name = value
	case "author":
		m.Author = value
	case "version":
		m.Version = value
	case "api_versions":
		m.APIVersions = splitVersions(value)
	case "description":
		m.Description = value
	case "license":
		m.License = value
	case "license_url":
		m.LicenseURL = value
	}
}
