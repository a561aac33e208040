package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. LOPE_COMPLETION_MODEL.
const EnvPrefix = "LOPE"

// Config holds application configuration.
type Config struct {
	Completion CompletionConfig `mapstructure:"completion" yaml:"completion"`
	Tree       TreeConfig       `mapstructure:"tree" yaml:"tree"`
	UI         UIConfig         `mapstructure:"ui" yaml:"ui"`
	Log        LogConfig        `mapstructure:"log" yaml:"log"`
}

// CompletionConfig holds chat-completion service settings.
type CompletionConfig struct {
	Endpoint  string        `mapstructure:"endpoint" yaml:"endpoint"`
	Model     string        `mapstructure:"model" yaml:"model"`
	APIKey    string        `mapstructure:"api_key" yaml:"api_key"`
	TokenPath string        `mapstructure:"token_path" yaml:"token_path"`
	Timeout   time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// TreeConfig controls the walked file tree.
type TreeConfig struct {
	IncludeByDefault bool     `mapstructure:"include_by_default" yaml:"include_by_default"`
	StartCollapsed   bool     `mapstructure:"start_collapsed" yaml:"start_collapsed"`
	ShowHidden       bool     `mapstructure:"show_hidden" yaml:"show_hidden"`
	Exclude          []string `mapstructure:"exclude" yaml:"exclude"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	TickInterval time.Duration `mapstructure:"tick_interval" yaml:"tick_interval"`
	TreeWidth    int           `mapstructure:"tree_width" yaml:"tree_width"`
}

// LogConfig selects where diagnostics go while the terminal is in use.
type LogConfig struct {
	File  string `mapstructure:"file" yaml:"file"`
	Level string `mapstructure:"level" yaml:"level"`
}

// Default returns the built-in configuration.
func Default() Config {
	home, _ := os.UserHomeDir()
	return Config{
		Completion: CompletionConfig{
			Endpoint:  "https://api.openai.com/v1/chat/completions",
			Model:     "gpt-4o-2024-11-20",
			TokenPath: filepath.Join(home, ".sgpt", "token"),
		},
		Tree: TreeConfig{
			Exclude: []string{},
		},
		UI: UIConfig{
			TickInterval: 250 * time.Millisecond,
			TreeWidth:    30,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("completion.endpoint", d.Completion.Endpoint)
	v.SetDefault("completion.model", d.Completion.Model)
	v.SetDefault("completion.api_key", d.Completion.APIKey)
	v.SetDefault("completion.token_path", d.Completion.TokenPath)
	v.SetDefault("completion.timeout", d.Completion.Timeout)
	v.SetDefault("tree.include_by_default", d.Tree.IncludeByDefault)
	v.SetDefault("tree.start_collapsed", d.Tree.StartCollapsed)
	v.SetDefault("tree.show_hidden", d.Tree.ShowHidden)
	v.SetDefault("tree.exclude", d.Tree.Exclude)
	v.SetDefault("ui.tick_interval", d.UI.TickInterval)
	v.SetDefault("ui.tree_width", d.UI.TreeWidth)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.level", d.Log.Level)
}

// New returns a viper instance with defaults, the config file and env
// overrides wired up. An explicit path must exist; the default location is
// optional.
func New(explicit string) (*viper.Viper, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigType("yaml")

	path := explicit
	if path == "" {
		if _, err := os.Stat(DefaultPath()); err == nil {
			path = DefaultPath()
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	return v, nil
}

// Decode unmarshals the effective configuration out of v.
func Decode(v *viper.Viper) (Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Load reads configuration from file and env.
func Load(explicit string) (Config, error) {
	v, err := New(explicit)
	if err != nil {
		return Config{}, err
	}
	return Decode(v)
}

// DefaultPath is $XDG_CONFIG_HOME/lope/config.yaml.
func DefaultPath() string {
	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		home, _ := os.UserHomeDir()
		xdgConfig = filepath.Join(home, ".config")
	}
	return filepath.Join(xdgConfig, "lope", "config.yaml")
}

// Marshal renders cfg as YAML.
func Marshal(cfg Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// Save writes cfg to path, creating the directory if needed. An existing file
// is only replaced when overwrite is set.
func Save(path string, cfg Config, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config %s already exists", path)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}
	data, err := Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// ResolveAPIKey returns the configured key, falling back to the token file.
func (c CompletionConfig) ResolveAPIKey() (string, error) {
	if key := strings.TrimSpace(c.APIKey); key != "" {
		return key, nil
	}
	if c.TokenPath == "" {
		return "", fmt.Errorf("no api key configured")
	}
	data, err := os.ReadFile(c.TokenPath)
	if err != nil {
		return "", fmt.Errorf("failed to read token from %s: %w", c.TokenPath, err)
	}
	key := strings.TrimSpace(string(data))
	if key == "" {
		return "", fmt.Errorf("token file %s is empty", c.TokenPath)
	}
	return key, nil
}
