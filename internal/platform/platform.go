package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

const (
	// AppName names the per-user data directory on Linux.
	AppName = "homer"

	cacheDirName   = "fonts"
	statusFileName = "font-status.json"
)

// Paths is every location a run reads from or writes to.
type Paths struct {
	DataDir    string // Application data directory
	CacheDir   string // Downloaded archives, <data>/fonts
	StatusFile string // <data>/fonts/font-status.json
	HomeDir    string // User home directory
	FontDir    string // Install target, <user fonts>/<fonts_dir_name>
}

// Manager handles platform-specific operations
type Manager interface {
	// Resolve derives the application paths for the given install subdirectory name
	Resolve(fontsDirName string) (Paths, error)

	// UpdateFontCache asks the OS to rescan user fonts
	UpdateFontCache() error
}

// New returns the manager for the running OS.
func New() Manager {
	return ForOS(runtime.GOOS)
}

// ForOS returns the manager for goos. Anything other than darwin is treated as Linux.
func ForOS(goos string) Manager {
	if goos == "darwin" {
		return newDarwinManager()
	}
	return newLinuxManager()
}

// Ensure creates the cache and install directories.
func (p Paths) Ensure() error {
	if err := EnsureDir(p.CacheDir); err != nil {
		return err
	}
	return EnsureDir(p.FontDir)
}

// ArchivePath is where the archive for folderName is cached.
func (p Paths) ArchivePath(folderName, ext string) string {
	return filepath.Join(p.CacheDir, folderName+"."+ext)
}

// InstallPath is where folderName is extracted.
func (p Paths) InstallPath(folderName string) string {
	return filepath.Join(p.FontDir, folderName)
}

// EnsureDir creates path and its parents if absent. An existing directory is not an error.
func EnsureDir(path string) error {
	info, err := os.Stat(path)
	if err == nil {
		if !info.IsDir() {
			return fmt.Errorf("%s exists and is not a directory", path)
		}
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("checking directory %s: %w", path, err)
	}
	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("creating directory %s: %w", path, err)
	}
	return nil
}

func buildPaths(dataDir, homeDir, userFontDir, fontsDirName string) Paths {
	cacheDir := filepath.Join(dataDir, cacheDirName)
	return Paths{
		DataDir:    dataDir,
		CacheDir:   cacheDir,
		StatusFile: filepath.Join(cacheDir, statusFileName),
		HomeDir:    homeDir,
		FontDir:    filepath.Join(userFontDir, fontsDirName),
	}
}
