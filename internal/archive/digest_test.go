package archive

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memEntry(path, content string) entry {
	return entry{
		path: path,
		open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader([]byte(content))), nil
		},
	}
}

func TestComputeDigestDeterministic(t *testing.T) {
	t.Parallel()

	entries := []entry{
		memEntry("plugin/a.py", "alpha"),
		memEntry("plugin/b.py", "beta"),
	}

	first, err := computeDigest(entries)
	require.NoError(t, err)

	second, err := computeDigest(entries)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestComputeDigestIgnoresInputOrder(t *testing.T) {
	t.Parallel()

	// Canonical ordering: the caller's enumeration order must not matter.
	forward, err := computeDigest([]entry{
		memEntry("plugin/a.py", "alpha"),
		memEntry("plugin/b.py", "beta"),
	})
	require.NoError(t, err)

	reversed, err := computeDigest([]entry{
		memEntry("plugin/b.py", "beta"),
		memEntry("plugin/a.py", "alpha"),
	})
	require.NoError(t, err)

	assert.Equal(t, forward.Package, reversed.Package)
}

func TestComputeDigestSensitivity(t *testing.T) {
	t.Parallel()

	base, err := computeDigest([]entry{memEntry("plugin/a.py", "alpha")})
	require.NoError(t, err)

	changedContent, err := computeDigest([]entry{memEntry("plugin/a.py", "alphb")})
	require.NoError(t, err)

	changedPath, err := computeDigest([]entry{memEntry("plugin/b.py", "alpha")})
	require.NoError(t, err)

	assert.NotEqual(t, base.Package, changedContent.Package)
	// The digest covers paths too, not just content bytes.
	assert.NotEqual(t, base.Package, changedPath.Package)
	assert.Equal(t, base.Files["plugin/a.py"], changedPath.Files["plugin/b.py"])
}

func TestComputeDigestPerFileDigests(t *testing.T) {
	t.Parallel()

	digest, err := computeDigest([]entry{
		memEntry("plugin/a.py", "alpha"),
		memEntry("plugin/b.py", "beta"),
	})
	require.NoError(t, err)

	require.Len(t, digest.Files, 2)
	assert.Len(t, digest.Package, 64)
	for _, fileDigest := range digest.Files {
		assert.Len(t, fileDigest, 64)
	}
}
