package export

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// ArchiveStore zips the local store directory into outDir and returns the
// archive path. The archive name carries a timestamp so repeated backups
// never overwrite each other.
func ArchiveStore(sourceDir, outDir string) (string, error) {
	info, err := os.Stat(sourceDir)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", fmt.Errorf("export: source %s is not a directory", sourceDir)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", err
	}

	stamp := time.Now().Format("20060102_150405")
	archivePath := filepath.Join(outDir, fmt.Sprintf("lifepilot_backup_%s.zip", stamp))

	file, err := os.Create(archivePath)
	if err != nil {
		return "", err
	}

	writer := zip.NewWriter(file)

	err = filepath.WalkDir(sourceDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(sourceDir, path)
		if err != nil {
			return err
		}

		dst, err := writer.Create(filepath.ToSlash(rel))
		if err != nil {
			return err
		}

		src, err := os.Open(path)
		if err != nil {
			return err
		}
		defer src.Close()

		_, err = io.Copy(dst, src)
		return err
	})
	if err != nil {
		writer.Close()
		file.Close()
		return "", err
	}

	if err := writer.Close(); err != nil {
		file.Close()
		return "", err
	}
	return archivePath, file.Close()
}
