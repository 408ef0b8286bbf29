package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/sbsdiff/sbs/internal/nav"
)

// Config holds the resolved application configuration.
type Config struct {
	// ViewMode is the initial view: "left", "both" (default) or "right".
	ViewMode string `mapstructure:"view_mode"`
	// ExcludeUntracked leaves untracked files out of working-tree diffs.
	ExcludeUntracked bool `mapstructure:"exclude_untracked"`
	// DiffContextLines is the number of context lines in diffs.
	DiffContextLines int `mapstructure:"diff_context_lines"`
	// Watch reloads the diff when the repository changes.
	Watch bool `mapstructure:"watch"`
	// WatchDebounce coalesces bursts of filesystem events.
	WatchDebounce time.Duration `mapstructure:"watch_debounce"`
	// TabWidth is the number of spaces a tab expands to.
	TabWidth int `mapstructure:"tab_width"`
	// LogFile receives debug logs. Empty disables logging.
	LogFile string `mapstructure:"log_file"`
	// Keys maps actions to key names.
	Keys KeyBindings `mapstructure:"keys"`
}

// flagKeys maps command-line flag names to config keys. Flags override the
// config file and environment when set.
var flagKeys = map[string]string{
	"view":              "view_mode",
	"exclude-untracked": "exclude_untracked",
	"watch":             "watch",
	"context":           "diff_context_lines",
}

// Load reads configuration from $XDG_CONFIG_HOME/sbs/config.yaml and
// ./config.yaml, or from configFile when given. A missing default file is
// fine; a missing explicit file is an error. flags may be nil.
func Load(configFile string, flags *pflag.FlagSet) (*Config, error) {
	return load(xdg.ConfigHome, configFile, flags)
}

func load(configHome, configFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("SBS")
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(filepath.Join(configHome, "sbs"))
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		// Config file not found is fine, unless it was asked for by name.
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding flag --%s: %w", name, err)
				}
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("view_mode", "both")
	v.SetDefault("exclude_untracked", false)
	v.SetDefault("diff_context_lines", 3)
	v.SetDefault("watch", false)
	v.SetDefault("watch_debounce", 500*time.Millisecond)
	v.SetDefault("tab_width", 4)
	v.SetDefault("log_file", "")
	setKeyDefaults(v, DefaultKeyBindings())
}

// Validate rejects values the UI cannot work with.
func (c *Config) Validate() error {
	if _, err := nav.ParseViewMode(c.ViewMode); err != nil {
		return fmt.Errorf("view_mode: %w", err)
	}
	if c.TabWidth < 1 {
		return fmt.Errorf("tab_width must be positive, got %d", c.TabWidth)
	}
	if c.DiffContextLines < 0 {
		return fmt.Errorf("diff_context_lines must not be negative, got %d", c.DiffContextLines)
	}
	if c.WatchDebounce < 0 {
		return fmt.Errorf("watch_debounce must not be negative, got %s", c.WatchDebounce)
	}
	return nil
}

// Mode returns the parsed initial view mode.
func (c *Config) Mode() nav.ViewMode {
	m, _ := nav.ParseViewMode(c.ViewMode)
	return m
}
