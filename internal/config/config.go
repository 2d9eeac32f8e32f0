// Package config loads swatch settings from a YAML or JSON file, a .env file and
// SWATCH_* environment variables, in increasing order of precedence.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/scheme"
)

// Environment variables read by Load.
const (
	EnvConfig        = "SWATCH_CONFIG"
	EnvDataDir       = "SWATCH_DATA_DIR"
	EnvMaxAttempts   = "SWATCH_MAX_ATTEMPTS"
	EnvMinContrast   = "SWATCH_MIN_CONTRAST"
	EnvDefaultMode   = "SWATCH_DEFAULT_MODE"
	EnvDefaultScheme = "SWATCH_DEFAULT_SCHEME"
	EnvAIBackend     = "SWATCH_AI_BACKEND"
	EnvAIModel       = "SWATCH_AI_MODEL"
)

// Duration is a time.Duration that decodes from strings such as "30s".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	return d.parse(node.Value)
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("duration must be a string like \"30s\": %w", err)
	}
	return d.parse(s)
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// String formats the duration like time.Duration.
func (d Duration) String() string {
	return time.Duration(d).String()
}

func (d *Duration) parse(s string) error {
	v, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}

// AIConfig configures the AI palette service.
type AIConfig struct {
	Backend   string   `yaml:"backend" json:"backend"`
	Model     string   `yaml:"model" json:"model"`
	APIKeyEnv string   `yaml:"api_key_env" json:"api_key_env"`
	Timeout   Duration `yaml:"timeout" json:"timeout"`
}

// HTTPConfig configures remote palette fetching.
type HTTPConfig struct {
	Timeout      Duration `yaml:"timeout" json:"timeout"`
	AllowPrivate bool     `yaml:"allow_private" json:"allow_private"`
}

// PluginConfig enables or disables plugins ("input:ai", "output:yaml").
type PluginConfig struct {
	Enabled  []string `yaml:"enabled" json:"enabled"`
	Disabled []string `yaml:"disabled" json:"disabled"`
}

// Config holds all swatch settings.
type Config struct {
	DataDir       string       `yaml:"data_dir" json:"data_dir"`
	MaxAttempts   int          `yaml:"max_attempts" json:"max_attempts"`
	MinContrast   float64      `yaml:"min_contrast" json:"min_contrast"`
	DefaultMode   string       `yaml:"default_mode" json:"default_mode"`
	DefaultScheme string       `yaml:"default_scheme" json:"default_scheme"`
	AI            AIConfig     `yaml:"ai" json:"ai"`
	HTTP          HTTPConfig   `yaml:"http" json:"http"`
	Plugins       PluginConfig `yaml:"plugins" json:"plugins"`

	// Path is the file the config was read from, if any.
	Path string `yaml:"-" json:"-"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		DataDir:       defaultDataDir(),
		MaxAttempts:   scheme.DefaultMaxAttempts,
		MinContrast:   colour.MinContrastAA,
		DefaultMode:   "light",
		DefaultScheme: string(scheme.TypeRandom),
		AI: AIConfig{
			Backend:   "gemini-api",
			Model:     "gemini-2.5-flash",
			APIKeyEnv: "GOOGLE_API_KEY",
			Timeout:   Duration(30 * time.Second),
		},
		HTTP: HTTPConfig{
			Timeout: Duration(10 * time.Second),
		},
	}
}

// Load reads the config file at path, or SWATCH_CONFIG, or the default location.
// A missing file is only an error when the path was given explicitly.
func Load(path string) (*Config, error) {
	// .env is optional; values already in the environment win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := Default()

	explicit := path != ""
	if !explicit {
		if env := os.Getenv(EnvConfig); env != "" {
			path, explicit = env, true
		} else {
			path = DefaultPath()
		}
	}

	if path != "" {
		if err := cfg.readFile(path); err != nil {
			if explicit || !errors.Is(err, fs.ErrNotExist) {
				return nil, err
			}
		} else {
			cfg.Path = path
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// DefaultPath returns $XDG_CONFIG_HOME/swatch/config.yaml.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "swatch", "config.yaml")
}

// SavePlugins writes the plugin lists to the config file at path, creating it
// if needed. Other settings in the file are kept; YAML comments survive.
func SavePlugins(path string, plugins PluginConfig) error {
	data, err := os.ReadFile(path) // #nosec G304 - user-specified config file, intended to be read
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var out []byte
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		out, err = setJSONPlugins(data, plugins)
	default:
		out, err = setYAMLPlugins(data, plugins)
	}
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, out, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func setYAMLPlugins(data []byte, plugins PluginConfig) ([]byte, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	if doc.Kind == 0 {
		doc = yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{{Kind: yaml.MappingNode, Tag: "!!map"}}}
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("config file is not a YAML mapping")
	}

	var value yaml.Node
	if err := value.Encode(plugins); err != nil {
		return nil, err
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value == "plugins" {
			root.Content[i+1] = &value
			return yaml.Marshal(&doc)
		}
	}
	root.Content = append(root.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: "plugins"}, &value)
	return yaml.Marshal(&doc)
}

func setJSONPlugins(data []byte, plugins PluginConfig) ([]byte, error) {
	doc := map[string]json.RawMessage{}
	if len(strings.TrimSpace(string(data))) > 0 {
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	}
	value, err := json.Marshal(plugins)
	if err != nil {
		return nil, err
	}
	doc["plugins"] = value
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}

func defaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "swatch")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".swatch"
	}
	return filepath.Join(home, ".local", "share", "swatch")
}

// readFile decodes path over the current values, choosing the format by extension.
func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path) // #nosec G304 - user-specified config file, intended to be read
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, c); err != nil {
			return fmt.Errorf("failed to parse JSON config: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("failed to parse YAML config: %w", err)
		}
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvDataDir); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv(EnvMaxAttempts); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvMaxAttempts, err)
		}
		c.MaxAttempts = n
	}
	if v := os.Getenv(EnvMinContrast); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvMinContrast, err)
		}
		c.MinContrast = f
	}
	if v := os.Getenv(EnvDefaultMode); v != "" {
		c.DefaultMode = v
	}
	if v := os.Getenv(EnvDefaultScheme); v != "" {
		c.DefaultScheme = v
	}
	if v := os.Getenv(EnvAIBackend); v != "" {
		c.AI.Backend = v
	}
	if v := os.Getenv(EnvAIModel); v != "" {
		c.AI.Model = v
	}
	return nil
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir must not be empty")
	}
	if c.MaxAttempts < 1 {
		return fmt.Errorf("max_attempts must be at least 1 (got %d)", c.MaxAttempts)
	}
	if c.MinContrast < 1 || c.MinContrast > 21 {
		return fmt.Errorf("min_contrast must be between 1 and 21 (got %v)", c.MinContrast)
	}
	if _, err := ParseMode(c.DefaultMode); err != nil {
		return err
	}
	if _, err := scheme.ParseType(c.DefaultScheme); err != nil {
		return err
	}
	if c.AI.Backend != "gemini-api" && c.AI.Backend != "vertex-ai" {
		return fmt.Errorf("invalid ai.backend: %s (must be 'gemini-api' or 'vertex-ai')", c.AI.Backend)
	}
	return nil
}

// ParseMode converts "light" or "dark" to the dark-mode flag.
func ParseMode(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "light":
		return false, nil
	case "dark":
		return true, nil
	default:
		return false, fmt.Errorf("invalid mode: %s (must be 'light' or 'dark')", s)
	}
}

// ModeName is the inverse of ParseMode.
func ModeName(dark bool) string {
	if dark {
		return "dark"
	}
	return "light"
}
