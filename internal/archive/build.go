package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/picard-community/plugin-tools/internal/manifest"
)

const (
	// Suffix is the file name suffix of packaged plugin archives.
	Suffix = ".picard.zip"

	// SidecarSuffix is appended to the archive path for the detached
	// checksum file.
	SidecarSuffix = ".sha256"
)

// Zip entry timestamps are pinned so rebuilding identical content produces
// an identical archive.
var archiveTimestamp = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

// BuildOptions selects what to package and where.
type BuildOptions struct {
	// PluginDir is the unpackaged plugin directory.
	PluginDir string

	// ManifestPath is the plugin manifest location. Empty means
	// PluginDir/MANIFEST.json.
	ManifestPath string

	// OutputDir is the directory the archive is written to. Empty means the
	// current directory.
	OutputDir string
}

// BuildResult describes a successfully built package.
type BuildResult struct {
	ArchivePath string
	SidecarPath string
	Checksum    string
	FileCount   int
	Manifest    *manifest.Manifest
}

// Build validates the plugin manifest and packages the plugin directory
// into a zip archive. The manifest is embedded as MANIFEST.json with the
// per-file digests and whole-package checksum recorded, and the checksum is
// also written to a sidecar file next to the archive. The source directory
// is never modified. No archive file is produced when validation fails.
func Build(opts BuildOptions) (*BuildResult, error) {
	pluginDir, err := filepath.Abs(opts.PluginDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve plugin directory: %w", err)
	}

	info, err := os.Stat(pluginDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read plugin directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", opts.PluginDir)
	}

	manifestPath := opts.ManifestPath
	if manifestPath == "" {
		manifestPath = filepath.Join(pluginDir, manifest.FileName)
	}
	manifestPath, err = filepath.Abs(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve manifest path: %w", err)
	}

	m, err := manifest.Load(manifestPath)
	if err != nil {
		return nil, err
	}

	if violations := manifest.Validate(m); violations != nil {
		return nil, &manifest.ValidationError{Violations: violations}
	}

	files, err := collectSourceFiles(pluginDir, manifestPath)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("plugin directory %s contains no files", opts.PluginDir)
	}

	digest, err := computeDigest(sourceEntries(files))
	if err != nil {
		return nil, err
	}

	// Embed the digests; the embedded manifest itself is excluded from the
	// checksum it carries.
	stamped := *m
	stamped.Files = digest.Files
	stamped.Checksum = digest.Package

	pluginName := filepath.Base(pluginDir)
	outputDir := opts.OutputDir
	if outputDir == "" {
		outputDir = "."
	}

	archivePath := filepath.Join(outputDir, pluginName+Suffix)
	if err := writeArchive(archivePath, files, &stamped); err != nil {
		return nil, err
	}

	sidecarPath := archivePath + SidecarSuffix
	sidecar := fmt.Sprintf("%s  %s\n", digest.Package, filepath.Base(archivePath))
	if err := os.WriteFile(sidecarPath, []byte(sidecar), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write checksum sidecar: %w", err)
	}

	log.Debug().
		Str("archive", archivePath).
		Str("checksum", digest.Package).
		Int("files", len(files)).
		Msg("package built")

	return &BuildResult{
		ArchivePath: archivePath,
		SidecarPath: sidecarPath,
		Checksum:    digest.Package,
		FileCount:   len(files),
		Manifest:    &stamped,
	}, nil
}

// sourceFile maps a file on disk to its path inside the archive.
type sourceFile struct {
	archivePath string
	diskPath    string
}

// collectSourceFiles walks the plugin directory and assigns archive paths:
// a single-file plugin is stored flat under its base name, a multi-file
// plugin keeps its folder structure under the plugin directory name. The
// manifest file and .git directories are excluded; the manifest is embedded
// separately as MANIFEST.json.
func collectSourceFiles(pluginDir, manifestPath string) ([]sourceFile, error) {
	var files []sourceFile

	pluginName := filepath.Base(pluginDir)

	err := filepath.WalkDir(pluginDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}

			return nil
		}
		if path == manifestPath || d.Name() == manifest.FileName {
			return nil
		}

		rel, err := filepath.Rel(pluginDir, path)
		if err != nil {
			return err
		}

		files = append(files, sourceFile{
			archivePath: pluginName + "/" + filepath.ToSlash(rel),
			diskPath:    path,
		})

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate plugin files: %w", err)
	}

	if len(files) == 1 {
		files[0].archivePath = filepath.Base(files[0].diskPath)
	}

	return files, nil
}

// sourceEntries adapts source files to the shared digest input.
func sourceEntries(files []sourceFile) []entry {
	entries := make([]entry, len(files))
	for i, f := range files {
		diskPath := f.diskPath
		entries[i] = entry{
			path: f.archivePath,
			open: func() (io.ReadCloser, error) { return os.Open(diskPath) },
		}
	}

	return entries
}

// writeArchive writes the zip to a uuid-named temp file in the destination
// directory and renames it into place, so a failed build never leaves a
// partial archive behind.
func writeArchive(archivePath string, files []sourceFile, m *manifest.Manifest) (err error) {
	dir := filepath.Dir(archivePath)
	tmpPath := filepath.Join(dir, ".ppt-"+uuid.NewString()+".tmp")

	out, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("failed to create archive: %w", err)
	}

	defer func() {
		if err != nil {
			out.Close()
			os.Remove(tmpPath)
		}
	}()

	zw := zip.NewWriter(out)

	for _, f := range files {
		if err = addFile(zw, f); err != nil {
			return err
		}
	}

	raw, err := m.Encode()
	if err != nil {
		return err
	}

	w, err := zw.CreateHeader(&zip.FileHeader{
		Name:     manifest.FileName,
		Method:   zip.Deflate,
		Modified: archiveTimestamp,
	})
	if err != nil {
		return fmt.Errorf("failed to add manifest entry: %w", err)
	}
	if _, err = w.Write(raw); err != nil {
		return fmt.Errorf("failed to write manifest entry: %w", err)
	}

	if err = zw.Close(); err != nil {
		return fmt.Errorf("failed to finalize archive: %w", err)
	}
	if err = out.Close(); err != nil {
		return fmt.Errorf("failed to close archive: %w", err)
	}

	if err = os.Rename(tmpPath, archivePath); err != nil {
		return fmt.Errorf("failed to move archive into place: %w", err)
	}

	return nil
}

// addFile streams one source file into the zip.
func addFile(zw *zip.Writer, f sourceFile) error {
	in, err := os.Open(f.diskPath)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", f.diskPath, err)
	}
	defer in.Close()

	w, err := zw.CreateHeader(&zip.FileHeader{
		Name:     f.archivePath,
		Method:   zip.Deflate,
		Modified: archiveTimestamp,
	})
	if err != nil {
		return fmt.Errorf("failed to add %s: %w", f.archivePath, err)
	}

	if _, err := io.Copy(w, in); err != nil {
		return fmt.Errorf("failed to write %s: %w", f.archivePath, err)
	}

	return nil
}
