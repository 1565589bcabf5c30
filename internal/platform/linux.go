package platform

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/adrg/xdg"
)

type linuxManager struct{}

func newLinuxManager() Manager {
	return &linuxManager{}
}

func (m *linuxManager) Resolve(fontsDirName string) (Paths, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return Paths{}, fmt.Errorf("getting user home directory: %w", err)
	}
	if xdg.DataHome == "" {
		return Paths{}, fmt.Errorf("resolving XDG data directory: no data home available")
	}

	dataDir := filepath.Join(xdg.DataHome, AppName)
	userFontDir := filepath.Join(homeDir, ".local/share/fonts")

	return buildPaths(dataDir, homeDir, userFontDir, fontsDirName), nil
}

func (m *linuxManager) UpdateFontCache() error {
	return runCommand("fc-cache", "-f")
}

func runCommand(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("running %s: %s: %w", name, output, err)
	}
	return nil
}
