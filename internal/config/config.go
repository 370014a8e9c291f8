package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Brand variants. The brand picks the picker title and hides the create
// action for bigfish.
const (
	BrandUmi     = "umi"
	BrandBigfish = "bigfish"
)

const (
	AppName         = "projctl"
	DefaultDatabase = "projects.db"
	DefaultEditor   = "code"
	LogFileName     = "projctl.log"
)

// configFiles lists the recognised config file names, in lookup order.
var configFiles = []string{"config.toml", "config.yaml", "config.yml"}

// Config is the user configuration, read from config.toml or config.yaml.
type Config struct {
	Brand         string `toml:"brand" yaml:"brand"`
	Database      string `toml:"database" yaml:"database"`             // relative paths resolve against the state dir
	Editor        string `toml:"editor" yaml:"editor"`                 // command line, project path is appended
	ProjectsRoot  string `toml:"projects_root" yaml:"projects_root"`   // base for relative project paths
	CreateCommand string `toml:"create_command" yaml:"create_command"` // run inside a new project's directory

	// EditorTerminal forces whether the editor needs the terminal. Unset,
	// it is guessed from the editor's executable name.
	EditorTerminal *bool `toml:"editor_terminal" yaml:"editor_terminal"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Brand:    BrandUmi,
		Database: DefaultDatabase,
	}
}

// Validate checks that the Config is valid.
func (c *Config) Validate() error {
	switch c.Brand {
	case BrandUmi, BrandBigfish:
	default:
		return fmt.Errorf("invalid brand %q (must be %s or %s)", c.Brand, BrandUmi, BrandBigfish)
	}

	if c.Database == "" {
		return fmt.Errorf("database is required")
	}

	if c.ProjectsRoot != "" && !filepath.IsAbs(c.ProjectsRoot) {
		return fmt.Errorf("projects_root must be an absolute path (got %q)", c.ProjectsRoot)
	}

	return nil
}

// IsBigfish reports whether the bigfish brand is selected.
func (c *Config) IsBigfish() bool {
	return c.Brand == BrandBigfish
}

// DatabasePath resolves the database location against the state directory.
func (c *Config) DatabasePath(paths *Paths) string {
	if filepath.IsAbs(c.Database) {
		return c.Database
	}
	return filepath.Join(paths.StateDir, c.Database)
}

// EditorCommand returns the editor command line: the configured one, then
// $VISUAL, then $EDITOR, then DefaultEditor.
func (c *Config) EditorCommand() string {
	if c.Editor != "" {
		return c.Editor
	}
	if v := os.Getenv("VISUAL"); v != "" {
		return v
	}
	if v := os.Getenv("EDITOR"); v != "" {
		return v
	}
	return DefaultEditor
}

// terminalEditors are executables that take over the terminal.
var terminalEditors = map[string]bool{
	"vi": true, "vim": true, "nvim": true, "nano": true, "pico": true,
	"micro": true, "hx": true, "helix": true, "kak": true, "joe": true,
	"ne": true, "mg": true, "ed": true,
}

// IsTerminalEditor reports whether the editor executable argv0 must run
// attached to the terminal.
func (c *Config) IsTerminalEditor(argv0 string) bool {
	if c.EditorTerminal != nil {
		return *c.EditorTerminal
	}
	return terminalEditors[filepath.Base(argv0)]
}

// Paths holds the configured paths
type Paths struct {
	ConfigDir string
	StateDir  string
}

// DefaultPaths returns the default path configuration, following the XDG
// base directory layout.
func DefaultPaths() *Paths {
	configHome, err := os.UserConfigDir()
	if err != nil {
		configHome = filepath.Join(os.TempDir(), ".config")
	}

	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		if home, err := os.UserHomeDir(); err == nil {
			stateHome = filepath.Join(home, ".local", "state")
		} else {
			stateHome = filepath.Join(os.TempDir(), ".local", "state")
		}
	}

	return &Paths{
		ConfigDir: filepath.Join(configHome, AppName),
		StateDir:  filepath.Join(stateHome, AppName),
	}
}

// LogPath returns where the picker writes logs while it owns the terminal.
func (p *Paths) LogPath() string {
	return filepath.Join(p.StateDir, LogFileName)
}

// Load reads the first config file found in configDir. A directory without
// one yields Default.
func Load(configDir string) (*Config, error) {
	for _, name := range configFiles {
		path := filepath.Join(configDir, name)
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		return Parse(path, data)
	}

	return Default(), nil
}

// Parse decodes and validates a config file. The format is picked from the
// file extension: .toml, anything else is read as YAML.
func Parse(path string, data []byte) (*Config, error) {
	cfg := Default()

	switch filepath.Ext(path) {
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", filepath.Base(path), err)
	}

	return cfg, nil
}
