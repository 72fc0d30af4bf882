// Package archive builds and verifies plugin package archives. The builder
// and verifier share one canonical-order digest implementation; any drift
// between the two would silently break verification of every package.
package archive

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"sort"
)

// Digest holds the digests of a package's contents: one SHA-256 per file
// plus a whole-package digest covering every (path, content) pair in
// canonical order.
type Digest struct {
	Package string
	Files   map[string]string
}

// entry is a single file to be digested, identified by its slash-separated
// archive path.
type entry struct {
	path string
	open func() (io.ReadCloser, error)
}

// computeDigest digests the entries in canonical order: lexicographic by
// archive path, hashing path + "\n" + content bytes for each file into the
// package digest and the content bytes alone into the per-file digest.
func computeDigest(entries []entry) (Digest, error) {
	sorted := make([]entry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].path < sorted[j].path })

	pkgHash := sha256.New()
	files := make(map[string]string, len(sorted))

	for _, e := range sorted {
		if _, err := io.WriteString(pkgHash, e.path+"\n"); err != nil {
			return Digest{}, fmt.Errorf("failed to hash path %s: %w", e.path, err)
		}

		fileHash := sha256.New()

		rc, err := e.open()
		if err != nil {
			return Digest{}, fmt.Errorf("failed to open %s: %w", e.path, err)
		}

		_, err = io.Copy(io.MultiWriter(pkgHash, fileHash), rc)
		rc.Close()
		if err != nil {
			return Digest{}, fmt.Errorf("failed to hash %s: %w", e.path, err)
		}

		files[e.path] = hex.EncodeToString(fileHash.Sum(nil))
	}

	return Digest{
		Package: hex.EncodeToString(pkgHash.Sum(nil)),
		Files:   files,
	}, nil
}
