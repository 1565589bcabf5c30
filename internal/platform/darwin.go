package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// darwinBundleID mirrors the reverse-DNS directory name macOS applications use.
const darwinBundleID = "dev.sina-salahshour." + AppName

type darwinManager struct{}

func newDarwinManager() Manager {
	return &darwinManager{}
}

func (m *darwinManager) Resolve(fontsDirName string) (Paths, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return Paths{}, fmt.Errorf("getting user home directory: %w", err)
	}

	dataHome := xdg.DataHome
	if dataHome == "" {
		dataHome = filepath.Join(homeDir, "Library/Application Support")
	}

	dataDir := filepath.Join(dataHome, darwinBundleID)
	userFontDir := filepath.Join(homeDir, "Library/Fonts")

	return buildPaths(dataDir, homeDir, userFontDir, fontsDirName), nil
}

func (m *darwinManager) UpdateFontCache() error {
	// macOS picks up new fonts on its own; touching the directory nudges the font server
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("getting user home directory: %w", err)
	}

	fontsDir := filepath.Join(homeDir, "Library/Fonts")
	now := time.Now()
	if err := os.Chtimes(fontsDir, now, now); err != nil {
		return fmt.Errorf("updating directory timestamp: %w", err)
	}
	return nil
}
