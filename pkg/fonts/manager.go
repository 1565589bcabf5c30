package fonts

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sina-salahshour/homer/internal/config"
	"github.com/sina-salahshour/homer/internal/logger"
	"github.com/sina-salahshour/homer/internal/platform"
)

// Manager runs the install pipeline: fetch the catalog, ask the user, then
// download and extract every selected font that is not already done.
type Manager struct {
	cfg        config.Font
	platform   platform.Manager
	catalog    *CatalogClient
	downloader *Downloader
	extractor  *Extractor
	selector   Selector
}

// NewManager wires a Manager from the bundled configuration. Progress bars are
// drawn on progress.
func NewManager(cfg config.Config, platformMgr platform.Manager, selector Selector, progress io.Writer) *Manager {
	return &Manager{
		cfg:        cfg.Font,
		platform:   platformMgr,
		catalog:    NewCatalogClient(),
		downloader: NewDownloader(cfg.Font.ReleaseURL, cfg.Font.ArchiveFormat, progress),
		extractor:  NewExtractor(),
		selector:   selector,
	}
}

// FontState pairs a catalog entry with its recorded progress.
type FontState struct {
	Font       FontDescriptor
	Downloaded bool
	Installed  bool
}

// Paths resolves the run's directories and makes sure they exist.
func (m *Manager) Paths() (platform.Paths, error) {
	paths, err := m.platform.Resolve(m.cfg.FontsDirName)
	if err != nil {
		return platform.Paths{}, fmt.Errorf("resolving directories: %w", err)
	}
	if err := paths.Ensure(); err != nil {
		return platform.Paths{}, fmt.Errorf("preparing directories: %w", err)
	}
	return paths, nil
}

// Run executes the whole pipeline once. Every error aborts the run; progress
// already recorded in the status file is kept for the next one.
func (m *Manager) Run(ctx context.Context) error {
	paths, err := m.Paths()
	if err != nil {
		return err
	}
	store := NewStatusStore(paths.StatusFile)

	record, err := store.Load()
	if err != nil {
		return err
	}

	release, err := m.catalog.FetchReleaseInfo(ctx, m.cfg.RootURL)
	if err != nil {
		return err
	}
	catalog, err := m.catalog.FetchCatalog(ctx, m.cfg.RepoURL)
	if err != nil {
		return err
	}

	selected, err := m.prompt(catalog, record)
	if err != nil {
		return err
	}
	if len(selected) == 0 {
		logger.Info("[INFO] No fonts selected\n")
		return nil
	}

	if err := m.downloadAll(ctx, selected, release.CurrentVersion, paths, store, record); err != nil {
		return err
	}

	installed, err := m.installAll(selected, paths, store, record)
	if err != nil {
		return err
	}

	if installed > 0 {
		if err := m.platform.UpdateFontCache(); err != nil {
			logger.Warn("[WARN] Failed to update font cache: %v\n", err)
		}
	}

	logger.Info("[INFO] %d fonts selected, %d newly installed\n", len(selected), installed)
	return nil
}

// prompt shows the checklist with installed fonts pre-checked and maps the
// answer back to descriptors.
func (m *Manager) prompt(catalog Catalog, record *StatusRecord) (Catalog, error) {
	names := catalog.FolderNames()

	var preselected []int
	for i, name := range names {
		if record.IsInstalled(name) {
			preselected = append(preselected, i)
		}
	}

	chosen, err := m.selector.Select(names, preselected)
	if err != nil {
		return nil, err
	}
	selected := catalog.Pick(chosen)

	// Unchecking a font does not remove it
	kept := make(map[string]bool, len(selected))
	for _, f := range selected {
		kept[f.FolderName] = true
	}
	for _, i := range preselected {
		if !kept[names[i]] {
			logger.Warn("[WARN] %s stays installed; run `homer uninstall %s` to remove it\n", names[i], names[i])
		}
	}
	return selected, nil
}

// downloadAll fetches every selected font not yet in the cache, recording each
// one as soon as it lands.
func (m *Manager) downloadAll(ctx context.Context, selected Catalog, version string, paths platform.Paths, store *StatusStore, record *StatusRecord) error {
	for _, font := range selected {
		name := font.FolderName
		if record.IsDownloaded(name) {
			logger.Debug("[DEBUG] %s already downloaded, skipping\n", name)
			continue
		}

		logger.Info("[INFO] Downloading %s v%s...\n", name, version)
		dest := paths.ArchivePath(name, m.downloader.Format())
		if err := m.downloader.Download(ctx, name, version, dest); err != nil {
			return err
		}
		if err := store.MarkDownloaded(record, name); err != nil {
			return err
		}
	}
	return nil
}

// installAll extracts every selected font that is downloaded but not yet
// installed. It returns how many fonts were extracted.
func (m *Manager) installAll(selected Catalog, paths platform.Paths, store *StatusStore, record *StatusRecord) (int, error) {
	installed := 0
	for _, font := range selected {
		name := font.FolderName
		if record.IsInstalled(name) {
			logger.Info("[INFO] %s is already installed. Skipping.\n", name)
			continue
		}
		if !record.IsDownloaded(name) {
			return installed, fmt.Errorf("installing font %q: archive was never downloaded", name)
		}

		target := paths.InstallPath(name)
		if err := platform.EnsureDir(target); err != nil {
			return installed, fmt.Errorf("installing font %q: %w", name, err)
		}

		archive := paths.ArchivePath(name, m.downloader.Format())
		count, err := m.extractor.Extract(archive, target)
		if err != nil {
			return installed, fmt.Errorf("installing font %q: %w", name, err)
		}
		if err := store.MarkInstalled(record, name); err != nil {
			return installed, err
		}

		logger.Info("[INFO] Installed %s (%d font files) to %s\n", name, count, target)
		installed++
	}
	return installed, nil
}

// List fetches the catalog and reports each entry's recorded progress.
func (m *Manager) List(ctx context.Context) ([]FontState, error) {
	record, err := m.Status()
	if err != nil {
		return nil, err
	}

	catalog, err := m.catalog.FetchCatalog(ctx, m.cfg.RepoURL)
	if err != nil {
		return nil, err
	}

	states := make([]FontState, 0, len(catalog))
	for _, font := range catalog {
		states = append(states, FontState{
			Font:       font,
			Downloaded: record.IsDownloaded(font.FolderName),
			Installed:  record.IsInstalled(font.FolderName),
		})
	}
	return states, nil
}

// Status loads the status record without touching the network.
func (m *Manager) Status() (*StatusRecord, error) {
	paths, err := m.Paths()
	if err != nil {
		return nil, err
	}
	return NewStatusStore(paths.StatusFile).Load()
}

// Uninstall removes an installed font's directory and drops it from the
// installed set. The cached archive stays, so reinstalling needs no download.
func (m *Manager) Uninstall(name string) error {
	paths, err := m.Paths()
	if err != nil {
		return err
	}
	store := NewStatusStore(paths.StatusFile)

	record, err := store.Load()
	if err != nil {
		return err
	}
	if !record.IsInstalled(name) {
		return fmt.Errorf("font %q is not installed", name)
	}

	target := paths.InstallPath(name)
	if err := os.RemoveAll(target); err != nil {
		return fmt.Errorf("removing font directory %s: %w", target, err)
	}
	if err := store.UnmarkInstalled(record, name); err != nil {
		return err
	}

	if err := m.platform.UpdateFontCache(); err != nil {
		logger.Warn("[WARN] Failed to update font cache: %v\n", err)
	}
	return nil
}
