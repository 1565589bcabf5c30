package fonts

import (
	"archive/tar"
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/sina-salahshour/homer/internal/logger"
	"github.com/xi2/xz"
)

// ErrUnsupportedArchive is returned for archive extensions the extractor cannot read.
var ErrUnsupportedArchive = errors.New("unsupported archive format")

// Extractor unpacks cached font archives into an install directory.
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract unpacks src into destDir, keeping the archive's layout and
// overwriting existing files. It returns the number of font files written.
func (e *Extractor) Extract(src, destDir string) (int, error) {
	switch {
	case strings.HasSuffix(src, ".zip"):
		logger.Debug("[DEBUG] %s is a zip archive\n", src)
		return extractZip(src, destDir)
	case strings.HasSuffix(src, ".tar.xz"):
		logger.Debug("[DEBUG] %s is a tar.xz archive\n", src)
		return extractTarXz(src, destDir)
	case strings.HasSuffix(src, ".7z"):
		logger.Debug("[DEBUG] %s is a 7z archive\n", src)
		return extract7z(src, destDir)
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedArchive, src)
	}
}

func extractZip(src, destDir string) (int, error) {
	r, err := zip.OpenReader(src)
	if err != nil {
		return 0, fmt.Errorf("opening zip archive %s: %w", src, err)
	}
	defer r.Close()

	fonts := 0
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			if _, err := safeJoin(destDir, f.Name); err != nil {
				return fonts, err
			}
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return fonts, fmt.Errorf("opening %s in archive: %w", f.Name, err)
		}
		err = writeEntry(destDir, f.Name, rc)
		rc.Close()
		if err != nil {
			return fonts, err
		}
		if isFontFile(f.Name) {
			fonts++
		}
	}
	return fonts, nil
}

func extractTarXz(src, destDir string) (int, error) {
	f, err := os.Open(src)
	if err != nil {
		return 0, fmt.Errorf("opening archive %s: %w", src, err)
	}
	defer f.Close()

	xzr, err := xz.NewReader(f, 0)
	if err != nil {
		return 0, fmt.Errorf("reading xz stream %s: %w", src, err)
	}

	tr := tar.NewReader(xzr)
	fonts := 0
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fonts, fmt.Errorf("reading tar archive %s: %w", src, err)
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}

		if err := writeEntry(destDir, hdr.Name, tr); err != nil {
			return fonts, err
		}
		if isFontFile(hdr.Name) {
			fonts++
		}
	}
	return fonts, nil
}

func extract7z(src, destDir string) (int, error) {
	r, err := sevenzip.OpenReader(src)
	if err != nil {
		return 0, fmt.Errorf("opening 7z archive %s: %w", src, err)
	}
	defer r.Close()

	fonts := 0
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return fonts, fmt.Errorf("opening %s in archive: %w", f.Name, err)
		}
		err = writeEntry(destDir, f.Name, rc)
		rc.Close()
		if err != nil {
			return fonts, err
		}
		if isFontFile(f.Name) {
			fonts++
		}
	}
	return fonts, nil
}

// writeEntry copies one archive member to its place under destDir.
func writeEntry(destDir, name string, src io.Reader) error {
	target, err := safeJoin(destDir, name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", name, err)
	}

	dest, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("creating destination file %s: %w", target, err)
	}
	if _, err := io.Copy(dest, src); err != nil {
		dest.Close()
		return fmt.Errorf("extracting %s: %w", name, err)
	}
	if err := dest.Close(); err != nil {
		return fmt.Errorf("extracting %s: %w", name, err)
	}
	return nil
}

// safeJoin resolves name under destDir and rejects entries that escape it.
func safeJoin(destDir, name string) (string, error) {
	root := filepath.Clean(destDir)
	target := filepath.Join(root, name)
	if target != root && !strings.HasPrefix(target, root+string(os.PathSeparator)) {
		return "", fmt.Errorf("archive entry %q escapes %s", name, destDir)
	}
	return target, nil
}

func isFontFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".ttf" || ext == ".otf"
}
