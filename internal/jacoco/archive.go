package jacoco

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
)

// ErrInvalidArchive is returned when an archive cannot be read.
var ErrInvalidArchive = errors.New("invalid archive")

// ErrExtractionUnavailable is returned when a configured 7z executable
// cannot be found.
var ErrExtractionUnavailable = errors.New("7z extraction unavailable")

// ExtractArchive extracts a .zip, .7z or .7zip archive into dest. When
// sevenZipPath is set, 7z archives are extracted with that executable
// instead of the built-in decoder.
func ExtractArchive(archivePath, dest, sevenZipPath string) error {
	switch {
	case strings.HasSuffix(strings.ToLower(archivePath), ".zip"):
		return extractZip(archivePath, dest)
	case strings.HasSuffix(strings.ToLower(archivePath), ".7z"),
		strings.HasSuffix(strings.ToLower(archivePath), ".7zip"):
		return extract7z(archivePath, dest, sevenZipPath)
	default:
		return fmt.Errorf("%w: unsupported archive format: %s", ErrInvalidArchive, archivePath)
	}
}

func extractZip(archivePath, dest string) error {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("%w: corrupted zip file %s: %v", ErrInvalidArchive, archivePath, err)
	}
	defer r.Close()

	for _, f := range r.File {
		target, err := entryPath(dest, f.Name)
		if err != nil {
			return err
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return err
			}
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return fmt.Errorf("%w: corrupted zip entry %s: %v", ErrInvalidArchive, f.Name, err)
		}
		if err := writeEntry(target, rc); err != nil {
			rc.Close()
			return err
		}
		rc.Close()
	}

	return nil
}

func extract7z(archivePath, dest, sevenZipPath string) error {
	if sevenZipPath != "" {
		return extract7zExternal(archivePath, dest, sevenZipPath)
	}

	r, err := sevenzip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("%w: corrupted 7z file %s: %v", ErrInvalidArchive, archivePath, err)
	}
	defer r.Close()

	for _, f := range r.File {
		target, err := entryPath(dest, f.Name)
		if err != nil {
			return err
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return err
			}
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return fmt.Errorf("%w: corrupted 7z entry %s: %v", ErrInvalidArchive, f.Name, err)
		}
		if err := writeEntry(target, rc); err != nil {
			rc.Close()
			return err
		}
		rc.Close()
	}

	return nil
}

func extract7zExternal(archivePath, dest, sevenZipPath string) error {
	exe, err := exec.LookPath(sevenZipPath)
	if err != nil {
		return fmt.Errorf("%w: %s not found, install 7-Zip or fix analysis.seven_zip_path",
			ErrExtractionUnavailable, sevenZipPath)
	}

	cmd := exec.Command(exe, "x", archivePath, "-o"+dest, "-y")
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%w: %s failed: %v: %s",
			ErrInvalidArchive, sevenZipPath, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// entryPath joins an archive entry name onto dest, rejecting entries that
// would escape it.
func entryPath(dest, name string) (string, error) {
	target := filepath.Join(dest, filepath.FromSlash(name))
	if target != filepath.Clean(dest) && !strings.HasPrefix(target, filepath.Clean(dest)+string(os.PathSeparator)) {
		return "", fmt.Errorf("%w: entry escapes destination: %s", ErrInvalidArchive, name)
	}
	return target, nil
}

func writeEntry(target string, r io.Reader) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}

	w, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer w.Close()

	_, err = io.Copy(w, r)
	return err
}
