package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/picard-community/plugin-tools/internal/errorcodes"
	"github.com/picard-community/plugin-tools/internal/manifest"
)

// FileMismatch records a per-file digest difference between the embedded
// manifest and the archive contents.
type FileMismatch struct {
	Path     string
	Expected string
	Actual   string
}

// Report is the structured outcome of package verification. Verification of
// the same unmodified archive always produces an identical report.
type Report struct {
	ArchivePath string
	Manifest    *manifest.Manifest

	Violations []manifest.Violation

	ExpectedChecksum string
	ActualChecksum   string
	ChecksumOK       bool

	FileMismatches  []FileMismatch
	MissingFiles    []string
	UndeclaredFiles []string

	// SidecarChecksum is the digest recorded next to the archive, "" when
	// no sidecar file exists.
	SidecarChecksum string
}

// Valid reports whether every check passed.
func (r *Report) Valid() bool {
	return len(r.Violations) == 0 &&
		r.ChecksumOK &&
		len(r.FileMismatches) == 0 &&
		len(r.MissingFiles) == 0 &&
		len(r.UndeclaredFiles) == 0 &&
		(r.SidecarChecksum == "" || r.SidecarChecksum == r.ActualChecksum)
}

// Failures renders every failed check as a human-readable line.
func (r *Report) Failures() []string {
	var failures []string

	for _, v := range r.Violations {
		failures = append(failures, v.String())
	}

	if !r.ChecksumOK {
		failures = append(failures, fmt.Sprintf(
			"%s: expected %s, actual %s",
			errorcodes.ErrChecksumMismatch.Code,
			r.ExpectedChecksum,
			r.ActualChecksum,
		))
	}

	for _, m := range r.FileMismatches {
		failures = append(failures, fmt.Sprintf(
			"%s: %s: expected %s, actual %s",
			errorcodes.ErrChecksumMismatch.Code, m.Path, m.Expected, m.Actual,
		))
	}

	for _, path := range r.MissingFiles {
		failures = append(failures, fmt.Sprintf("missing file: %s declared in manifest but absent", path))
	}

	for _, path := range r.UndeclaredFiles {
		failures = append(failures, fmt.Sprintf("undeclared file: %s present but not in manifest", path))
	}

	if r.SidecarChecksum != "" && r.SidecarChecksum != r.ActualChecksum {
		failures = append(failures, fmt.Sprintf(
			"%s: sidecar records %s, actual %s",
			errorcodes.ErrChecksumMismatch.Code,
			r.SidecarChecksum,
			r.ActualChecksum,
		))
	}

	return failures
}

// Verify checks a built package: the embedded manifest is re-validated, the
// whole-package checksum is recomputed with the same canonical algorithm
// the builder used and compared against the recorded value, and the
// per-file digests are reconciled. An error is returned only when the
// archive itself cannot be read; content problems land in the report.
func Verify(archivePath string) (*Report, error) {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", errorcodes.ErrArchiveUnreadable, archivePath, err)
	}
	defer zr.Close()

	m, err := readManifest(&zr.Reader, archivePath)
	if err != nil {
		return nil, err
	}

	report := &Report{
		ArchivePath:      archivePath,
		Manifest:         m,
		Violations:       manifest.Validate(m),
		ExpectedChecksum: m.Checksum,
	}

	digest, err := computeDigest(zipEntries(&zr.Reader))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", errorcodes.ErrArchiveUnreadable, archivePath, err)
	}

	report.ActualChecksum = digest.Package
	report.ChecksumOK = m.Checksum != "" && m.Checksum == digest.Package

	reconcileFiles(report, m.Files, digest.Files)

	if sidecar, ok := readSidecar(archivePath + SidecarSuffix); ok {
		report.SidecarChecksum = sidecar
	}

	log.Debug().
		Str("archive", archivePath).
		Bool("valid", report.Valid()).
		Str("checksum", digest.Package).
		Msg("package verified")

	return report, nil
}

// ReadManifest extracts the embedded manifest from a package archive.
func ReadManifest(archivePath string) (*manifest.Manifest, error) {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", errorcodes.ErrArchiveUnreadable, archivePath, err)
	}
	defer zr.Close()

	return readManifest(&zr.Reader, archivePath)
}

func readManifest(zr *zip.Reader, archivePath string) (*manifest.Manifest, error) {
	for _, f := range zr.File {
		if f.Name != manifest.FileName {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", errorcodes.ErrArchiveUnreadable, archivePath, err)
		}
		defer rc.Close()

		raw, err := io.ReadAll(rc)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", errorcodes.ErrArchiveUnreadable, archivePath, err)
		}

		return manifest.Parse(raw)
	}

	return nil, fmt.Errorf(
		"%w: %s: no %s entry",
		errorcodes.ErrArchiveUnreadable,
		archivePath,
		manifest.FileName,
	)
}

// zipEntries adapts archive entries to the shared digest input, excluding
// directory entries and the embedded manifest.
func zipEntries(zr *zip.Reader) []entry {
	var entries []entry
	for _, f := range zr.File {
		if f.Name == manifest.FileName || strings.HasSuffix(f.Name, "/") {
			continue
		}

		entries = append(entries, entry{
			path: f.Name,
			open: f.Open,
		})
	}

	return entries
}

// reconcileFiles fills the per-file mismatch, missing and undeclared lists.
func reconcileFiles(report *Report, declared, actual map[string]string) {
	for path, expected := range declared {
		got, ok := actual[path]
		if !ok {
			report.MissingFiles = append(report.MissingFiles, path)
			continue
		}
		if got != expected {
			report.FileMismatches = append(report.FileMismatches, FileMismatch{
				Path:     path,
				Expected: expected,
				Actual:   got,
			})
		}
	}

	for path := range actual {
		if _, ok := declared[path]; !ok {
			report.UndeclaredFiles = append(report.UndeclaredFiles, path)
		}
	}

	sort.Strings(report.MissingFiles)
	sort.Strings(report.UndeclaredFiles)
	sort.Slice(report.FileMismatches, func(i, j int) bool {
		return report.FileMismatches[i].Path < report.FileMismatches[j].Path
	})
}

// readSidecar parses the first token of a sha256sum-style sidecar file.
func readSidecar(path string) (string, bool) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}

	fields := strings.Fields(string(raw))
	if len(fields) == 0 {
		return "", false
	}

	return fields[0], true
}
