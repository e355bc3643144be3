package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/okra-platform/rpcgen/internal/codegen"
	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"
)

const (
	// DefaultSchema is the IDL file used when the config names none
	DefaultSchema = "./service.graphql"
	// DefaultIndent is the number of spaces a tab becomes in generated units
	DefaultIndent = 4
	// DefaultBackend and DefaultOut describe the target used when none is configured
	DefaultBackend = "go"
	DefaultOut     = "./gen"
)

var (
	// ErrNotFound is returned when no config file exists in the directory or its parents
	ErrNotFound = errors.New("config not found")
	// ErrInvalid is returned for configs that decode but cannot drive generation
	ErrInvalid = errors.New("invalid config")
)

// FileNames lists the config file names searched in each directory, in order
var FileNames = []string{"rpcgen.json", "rpcgen.yaml", "rpcgen.yml", "rpcgen.toml"}

// Config represents an rpcgen project file
type Config struct {
	Schema    string      `json:"schema" yaml:"schema" toml:"schema"`
	Namespace string      `json:"namespace,omitempty" yaml:"namespace,omitempty" toml:"namespace,omitempty"`
	Indent    int         `json:"indent,omitempty" yaml:"indent,omitempty" toml:"indent,omitempty"`
	Tabs      bool        `json:"tabs,omitempty" yaml:"tabs,omitempty" toml:"tabs,omitempty"`
	Access    string      `json:"access,omitempty" yaml:"access,omitempty" toml:"access,omitempty"`
	Targets   []Target    `json:"targets" yaml:"targets" toml:"targets"`
	Watch     WatchConfig `json:"watch" yaml:"watch" toml:"watch"`
}

// Target is one backend run: which backend, where its units go and its options
type Target struct {
	Backend string            `json:"backend" yaml:"backend" toml:"backend"`
	Out     string            `json:"out" yaml:"out" toml:"out"`
	Options map[string]string `json:"options,omitempty" yaml:"options,omitempty" toml:"options,omitempty"`
}

// WatchConfig contains the file patterns `rpcgen watch` reacts to
type WatchConfig struct {
	Patterns []string `json:"patterns" yaml:"patterns" toml:"patterns"`
	Exclude  []string `json:"exclude" yaml:"exclude" toml:"exclude"`
}

// Default returns the config used when a project has no config file
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// LoadConfig loads the config from the current directory or a parent directory.
// It returns the directory the config was found in.
func LoadConfig() (*Config, string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("failed to get current directory: %w", err)
	}

	return loadConfigFromDir(dir)
}

// LoadConfigFromDir is LoadConfig starting at dir instead of the working directory
func LoadConfigFromDir(dir string) (*Config, string, error) {
	return loadConfigFromDir(dir)
}

// LoadConfigFromPath loads a config file; the decoder follows the extension
func LoadConfigFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	switch format(path) {
	case "json":
		err = json.Unmarshal(data, &config)
	case "yaml":
		err = yaml.Unmarshal(data, &config)
	case "toml":
		err = toml.Unmarshal(data, &config)
	default:
		return nil, fmt.Errorf("%w: unsupported config format %q", ErrInvalid, filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	config.applyDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Save writes the config to path in the format its extension names
func (c *Config) Save(path string) error {
	var data []byte
	var err error
	switch format(path) {
	case "json":
		data, err = json.MarshalIndent(c, "", "  ")
	case "yaml":
		data, err = yaml.Marshal(c)
	case "toml":
		data, err = toml.Marshal(*c)
	default:
		return fmt.Errorf("%w: unsupported config format %q", ErrInvalid, filepath.Ext(path))
	}
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Schema == "" {
		c.Schema = DefaultSchema
	}
	if c.Indent == 0 {
		c.Indent = DefaultIndent
	}
	if c.Access == "" {
		c.Access = "underscore"
	}
	if len(c.Targets) == 0 {
		c.Targets = []Target{{Backend: DefaultBackend, Out: DefaultOut}}
	}
	if len(c.Watch.Patterns) == 0 {
		c.Watch.Patterns = []string{"*.graphql", "**/*.graphql"}
	}
	if len(c.Watch.Exclude) == 0 {
		c.Watch.Exclude = []string{".git/"}
	}
}

// Validate rejects access strategies and targets generation cannot use
func (c *Config) Validate() error {
	if _, err := codegen.ParseFieldAccess(c.Access); err != nil {
		return fmt.Errorf("%w: access %q", ErrInvalid, c.Access)
	}
	if c.Indent < 0 {
		return fmt.Errorf("%w: negative indent %d", ErrInvalid, c.Indent)
	}
	for i, t := range c.Targets {
		if t.Backend == "" {
			return fmt.Errorf("%w: target %d has no backend", ErrInvalid, i)
		}
		if t.Out == "" {
			return fmt.Errorf("%w: target %s has no output directory", ErrInvalid, t.Backend)
		}
	}
	return nil
}

// FieldAccess returns the parsed access strategy
func (c *Config) FieldAccess() codegen.FieldAccess {
	access, err := codegen.ParseFieldAccess(c.Access)
	if err != nil {
		return codegen.AccessUnderscore
	}
	return access
}

// IndentWidth is the codegen indent: zero keeps tabs
func (c *Config) IndentWidth() int {
	if c.Tabs {
		return 0
	}
	return c.Indent
}

// Resolve makes a config-relative path absolute against the config directory
func Resolve(root, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

func format(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	case ".toml":
		return "toml"
	default:
		return ""
	}
}

// loadConfigFromDir searches for a config file in the given directory and its parents
func loadConfigFromDir(startDir string) (*Config, string, error) {
	dir := startDir
	for {
		for _, name := range FileNames {
			configPath := filepath.Join(dir, name)
			if _, err := os.Stat(configPath); err == nil {
				config, err := LoadConfigFromPath(configPath)
				if err != nil {
					return nil, "", err
				}
				return config, dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root directory
			break
		}
		dir = parent
	}

	return nil, "", fmt.Errorf("%w: no %s found in %s or any parent directory", ErrNotFound, strings.Join(FileNames, ", "), startDir)
}
