package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/picard-community/plugin-tools/internal/errorcodes"
)

func validManifest() *Manifest {
	return &Manifest{
		Name:        "AcousticBrainz Tags",
		Author:      "Example Author",
		Version:     "1.2.0",
		APIVersions: []string{"2.0", "2.1"},
		Description: "Adds AcousticBrainz metadata to tags.",
		License:     "GPL-2.0-or-later",
		LicenseURL:  "https://www.gnu.org/licenses/gpl-2.0.html",
	}
}

func TestValidateValidManifest(t *testing.T) {
	t.Parallel()

	assert.Nil(t, Validate(validManifest()))
}

func TestValidateMissingRequiredFields(t *testing.T) {
	t.Parallel()

	// Each required field, removed on its own, must be reported as exactly
	// one violation naming that field.
	tests := []struct {
		field string
		unset func(*Manifest)
	}{
		{"name", func(m *Manifest) { m.Name = "" }},
		{"author", func(m *Manifest) { m.Author = "" }},
		{"version", func(m *Manifest) { m.Version = "" }},
		{"api_versions", func(m *Manifest) { m.APIVersions = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			t.Parallel()

			m := validManifest()
			tt.unset(m)

			violations := Validate(m)
			require.Len(t, violations, 1)
			assert.Equal(t, tt.field, violations[0].Field)
			assert.Equal(t, errorcodes.ErrManifestFieldMissing, violations[0].Err)
		})
	}
}

func TestValidateEmptyVersionIsInvalid(t *testing.T) {
	t.Parallel()

	// A version key present with an empty value is malformed, not missing.
	m, err := Parse([]byte(`{
		"name": "Some Plugin",
		"author": "Someone",
		"version": "",
		"api_versions": ["2.0"]
	}`))
	require.NoError(t, err)

	violations := Validate(m)
	require.Len(t, violations, 1)
	assert.Equal(t, "version", violations[0].Field)
	assert.Equal(t, errorcodes.ErrManifestFieldInvalid, violations[0].Err)
}

func TestValidateMalformedFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		field  string
		mutate func(*Manifest)
	}{
		{
			name:   "non-numeric version",
			field:  "version",
			mutate: func(m *Manifest) { m.Version = "banana" },
		},
		{
			name:   "malformed api version",
			field:  "api_versions",
			mutate: func(m *Manifest) { m.APIVersions = []string{"2.0", "not-a-version"} },
		},
		{
			name:   "license url without scheme",
			field:  "license_url",
			mutate: func(m *Manifest) { m.LicenseURL = "www.gnu.org/licenses" },
		},
		{
			name:   "license url with ftp scheme",
			field:  "license_url",
			mutate: func(m *Manifest) { m.LicenseURL = "ftp://gnu.org/licenses" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := validManifest()
			tt.mutate(m)

			violations := Validate(m)
			require.Len(t, violations, 1)
			assert.Equal(t, tt.field, violations[0].Field)
			assert.Equal(t, errorcodes.ErrManifestFieldInvalid, violations[0].Err)
		})
	}
}

func TestValidateLenientVersions(t *testing.T) {
	t.Parallel()

	// Legacy manifests carry loose version forms; all of these validate.
	for _, version := range []string{"1", "1.0", "1.0.0", "1.2.3.4", "0.9"} {
		t.Run(version, func(t *testing.T) {
			t.Parallel()

			m := validManifest()
			m.Version = version
			assert.Nil(t, Validate(m))
		})
	}
}

func TestValidateReportsAllViolations(t *testing.T) {
	t.Parallel()

	// No partial reporting: every problem shows up in one pass.
	m := &Manifest{Version: "nope", LicenseURL: "also nope"}

	violations := Validate(m)
	fields := make([]string, len(violations))
	for i, v := range violations {
		fields[i] = v.Field
	}

	assert.ElementsMatch(
		t,
		[]string{"name", "author", "version", "api_versions", "license_url"},
		fields,
	)
}

func TestValidationErrorMessage(t *testing.T) {
	t.Parallel()

	m := validManifest()
	m.Author = ""

	err := &ValidationError{Violations: Validate(m)}
	assert.Contains(t, err.Error(), "manifest_field_missing: author")
}
