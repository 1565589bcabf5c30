package fonts

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sina-salahshour/homer/internal/logger"
	"github.com/sina-salahshour/homer/internal/platform"
)

// idSet is a list of folder names with set semantics. Insertion order is kept
// so the status file stays stable across runs.
type idSet []string

func (s idSet) has(id string) bool {
	for _, existing := range s {
		if existing == id {
			return true
		}
	}
	return false
}

func (s *idSet) add(id string) bool {
	if s.has(id) {
		return false
	}
	*s = append(*s, id)
	return true
}

func (s *idSet) remove(id string) bool {
	for i, existing := range *s {
		if existing == id {
			*s = append((*s)[:i], (*s)[i+1:]...)
			return true
		}
	}
	return false
}

func dedupe(ids []string) idSet {
	set := idSet{}
	for _, id := range ids {
		set.add(id)
	}
	return set
}

// StatusRecord tracks which fonts have been downloaded to the cache and which
// have been extracted to the font directory.
type StatusRecord struct {
	downloaded idSet
	installed  idSet
}

type statusFile struct {
	Downloaded []string `json:"downloaded"`
	Installed  []string `json:"installed"`
}

func NewStatusRecord() *StatusRecord {
	return &StatusRecord{downloaded: idSet{}, installed: idSet{}}
}

func (r *StatusRecord) IsDownloaded(folderName string) bool {
	return r.downloaded.has(folderName)
}

func (r *StatusRecord) IsInstalled(folderName string) bool {
	return r.installed.has(folderName)
}

// Downloaded returns a copy of the downloaded folder names.
func (r *StatusRecord) Downloaded() []string {
	return append([]string{}, r.downloaded...)
}

// Installed returns a copy of the installed folder names.
func (r *StatusRecord) Installed() []string {
	return append([]string{}, r.installed...)
}

func (r *StatusRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(statusFile{
		Downloaded: r.Downloaded(),
		Installed:  r.Installed(),
	})
}

func (r *StatusRecord) UnmarshalJSON(data []byte) error {
	var raw statusFile
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	// Files written before install tracking existed have no "installed" key
	r.downloaded = dedupe(raw.Downloaded)
	r.installed = dedupe(raw.Installed)
	return nil
}

// StatusStore persists a StatusRecord as JSON. Every mutation rewrites the
// whole file so completed steps survive an interrupted run.
type StatusStore struct {
	path string
}

func NewStatusStore(path string) *StatusStore {
	return &StatusStore{path: path}
}

// Path returns the status file location.
func (s *StatusStore) Path() string {
	return s.path
}

// Load reads the status file. A missing file yields an empty record.
func (s *StatusStore) Load() (*StatusRecord, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug("[DEBUG] No status file at %s, starting fresh\n", s.path)
			return NewStatusRecord(), nil
		}
		return nil, fmt.Errorf("reading status file %s: %w", s.path, err)
	}

	record := NewStatusRecord()
	if err := json.Unmarshal(data, record); err != nil {
		return nil, fmt.Errorf("decoding status file %s: %w", s.path, err)
	}
	return record, nil
}

// Save replaces the status file with the full record.
func (s *StatusStore) Save(record *StatusRecord) error {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling status: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := platform.EnsureDir(dir); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".font-status-*.json")
	if err != nil {
		return fmt.Errorf("creating temporary status file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing status file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing status file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing status file %s: %w", s.path, err)
	}

	logger.Debug("[DEBUG] Wrote status to %s:\n%s\n", s.path, data)
	return nil
}

// MarkDownloaded records folderName as downloaded and persists the record.
func (s *StatusStore) MarkDownloaded(record *StatusRecord, folderName string) error {
	record.downloaded.add(folderName)
	if err := s.Save(record); err != nil {
		return fmt.Errorf("recording %s as downloaded: %w", folderName, err)
	}
	return nil
}

// MarkInstalled records folderName as installed and persists the record.
func (s *StatusStore) MarkInstalled(record *StatusRecord, folderName string) error {
	record.installed.add(folderName)
	if err := s.Save(record); err != nil {
		return fmt.Errorf("recording %s as installed: %w", folderName, err)
	}
	return nil
}

// UnmarkInstalled drops folderName from the installed set and persists the record.
func (s *StatusStore) UnmarkInstalled(record *StatusRecord, folderName string) error {
	record.installed.remove(folderName)
	if err := s.Save(record); err != nil {
		return fmt.Errorf("recording %s as uninstalled: %w", folderName, err)
	}
	return nil
}
