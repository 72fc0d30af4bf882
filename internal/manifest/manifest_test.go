package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/picard-community/plugin-tools/internal/errorcodes"
)

func TestLoadSaveRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), FileName)

	m := validManifest()
	require.NoError(t, m.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, m.Name, loaded.Name)
	assert.Equal(t, m.Author, loaded.Author)
	assert.Equal(t, m.Version, loaded.Version)
	assert.Equal(t, m.APIVersions, loaded.APIVersions)
	assert.Equal(t, m.LicenseURL, loaded.LicenseURL)
	assert.True(t, loaded.FieldPresent("name"))
	assert.False(t, loaded.FieldPresent("checksum"))
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.ErrorIs(t, err, errorcodes.ErrManifestUnreadable)
}

func TestLoadDamagedJSON(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := Load(path)
	assert.ErrorIs(t, err, errorcodes.ErrManifestUnreadable)
}

func TestFieldValueRoundTrip(t *testing.T) {
	t.Parallel()

	var m Manifest
	for _, field := range Schema {
		m.SetFieldValue(field.Key, "2.0, 2.1")
	}

	assert.Equal(t, "2.0, 2.1", m.FieldValue("name"))
	assert.Equal(t, []string{"2.0", "2.1"}, m.APIVersions)
	assert.Equal(t, "2.0, 2.1", m.FieldValue("api_versions"))
}

func TestEncodeOmitsEmptyFields(t *testing.T) {
	t.Parallel()

	m := Manifest{Name: "Tiny"}
	raw, err := m.Encode()
	require.NoError(t, err)

	assert.Contains(t, string(raw), `"name"`)
	assert.NotContains(t, string(raw), `"files"`)
	assert.NotContains(t, string(raw), `"checksum"`)
}
