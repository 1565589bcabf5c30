package config

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Defaults applied when the configuration document omits a field.
const (
	DefaultFontsDirName  = "$homer"
	DefaultReleaseURL    = "https://github.com/ryanoasis/nerd-fonts/releases/download"
	DefaultArchiveFormat = "zip"
)

//go:embed config.yaml
var bundled []byte

// Config is the bundled configuration document. It is built once at startup
// and passed explicitly to whatever needs it.
type Config struct {
	Font Font `yaml:"font"`
}

// Font holds the remote endpoints and install layout for Nerd Fonts.
type Font struct {
	RepoURL       string `yaml:"repo_url"`       // Catalog endpoint (JSON)
	RootURL       string `yaml:"root_url"`       // Release-info endpoint (YAML)
	ReleaseURL    string `yaml:"release_url"`    // Base of versioned archive downloads
	ArchiveFormat string `yaml:"archive_format"` // zip, tar.xz or 7z
	FontsDirName  string `yaml:"fonts_dir_name"` // Subdirectory of the user font dir
}

// Bundled returns the configuration embedded in the binary.
func Bundled() (Config, error) {
	return Parse(bundled)
}

// LoadFile reads a configuration document from disk.
func LoadFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("opening config %s: %w", path, err)
	}
	defer f.Close()

	return Load(f)
}

// Load decodes a configuration document from r.
func Load(r io.Reader) (Config, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	return Parse(raw)
}

// Parse decodes raw YAML and fills in defaults for optional fields.
func Parse(raw []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}

	if cfg.Font.FontsDirName == "" {
		cfg.Font.FontsDirName = DefaultFontsDirName
	}
	if cfg.Font.ReleaseURL == "" {
		cfg.Font.ReleaseURL = DefaultReleaseURL
	}
	cfg.Font.ReleaseURL = strings.TrimSuffix(cfg.Font.ReleaseURL, "/")
	if cfg.Font.ArchiveFormat == "" {
		cfg.Font.ArchiveFormat = DefaultArchiveFormat
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Font.RepoURL == "" {
		return fmt.Errorf("config: font.repo_url is required")
	}
	if c.Font.RootURL == "" {
		return fmt.Errorf("config: font.root_url is required")
	}
	switch c.Font.ArchiveFormat {
	case "zip", "tar.xz", "7z":
	default:
		return fmt.Errorf("config: unsupported font.archive_format %q", c.Font.ArchiveFormat)
	}
	return nil
}
