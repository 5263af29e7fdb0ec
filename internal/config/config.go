// Package config provides configuration types, defaults, and persistence for rnt.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/rntlauncher/rnt/internal/engine"
	"github.com/rntlauncher/rnt/internal/log"
	"github.com/rntlauncher/rnt/internal/options"
	"github.com/rntlauncher/rnt/internal/tracing"
)

// Config holds all configuration options for rnt.
type Config struct {
	Engine         EngineConfig               `mapstructure:"engine"`
	DefaultProfile string                     `mapstructure:"default_profile"`
	Profiles       map[string]options.Options `mapstructure:"profiles"`
	Tracing        tracing.Config             `mapstructure:"tracing"`
}

// EngineConfig describes the external engine and where its assets live.
type EngineConfig struct {
	Executable    string        `mapstructure:"executable"`
	AssetDirs     []string      `mapstructure:"asset_dirs"`     // searched before DOOMWADDIR/DOOMWADPATH
	WatchDebounce time.Duration `mapstructure:"watch_debounce"` // --watch quiet period before relaunch
	CacheTTL      time.Duration `mapstructure:"cache_ttl"`      // asset lookup cache lifetime
}

var ErrUnknownProfile = errors.New("unknown profile")

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Engine: EngineConfig{
			Executable:    engine.Executable,
			WatchDebounce: 500 * time.Millisecond,
			CacheTTL:      10 * time.Minute,
		},
		Tracing: tracing.DefaultConfig(),
	}
}

// SetDefaults registers Defaults() with v so unset keys fall back to them.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("engine.executable", d.Engine.Executable)
	v.SetDefault("engine.watch_debounce", d.Engine.WatchDebounce)
	v.SetDefault("engine.cache_ttl", d.Engine.CacheTTL)
	v.SetDefault("tracing.enabled", d.Tracing.Enabled)
	v.SetDefault("tracing.exporter", d.Tracing.Exporter)
	v.SetDefault("tracing.file_path", DefaultTracesFilePath())
	v.SetDefault("tracing.otlp_endpoint", d.Tracing.OTLPEndpoint)
	v.SetDefault("tracing.sample_rate", d.Tracing.SampleRate)
	v.SetDefault("tracing.service_name", d.Tracing.ServiceName)
}

// Load decodes and validates the configuration held by v.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	log.Debug(log.CatConfig, "Config loaded", "file", v.ConfigFileUsed(), "profiles", len(cfg.Profiles))
	return cfg, nil
}

// Validate checks the whole configuration and reports every problem found.
func (c Config) Validate() error {
	var errs []error

	if c.Engine.Executable == "" {
		errs = append(errs, fmt.Errorf("engine.executable is required"))
	}
	if c.Engine.WatchDebounce < 0 {
		errs = append(errs, fmt.Errorf("engine.watch_debounce must not be negative"))
	}
	for _, name := range c.ProfileNames() {
		if err := c.Profiles[name].ValidateValues(); err != nil {
			errs = append(errs, fmt.Errorf("profile %q: %w", name, err))
		}
	}
	if c.DefaultProfile != "" {
		if _, err := c.Profile(c.DefaultProfile); err != nil {
			errs = append(errs, fmt.Errorf("default_profile: %w", err))
		}
	}
	if err := c.Tracing.Validate(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// Profile returns the named profile. Names are case-insensitive because
// viper lowercases map keys.
func (c Config) Profile(name string) (options.Options, error) {
	p, ok := c.Profiles[strings.ToLower(name)]
	if !ok {
		return options.Options{}, fmt.Errorf("%w %q", ErrUnknownProfile, name)
	}
	return p, nil
}

// ProfileNames returns profile names in sorted order.
func (c Config) ProfileNames() []string {
	names := make([]string, 0, len(c.Profiles))
	for n := range c.Profiles {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// LaunchLayers returns the option layers that precede CLI flags: the
// default profile, then the selected profile when it differs.
func (c Config) LaunchLayers(selected string) ([]options.Options, error) {
	var layers []options.Options
	if c.DefaultProfile != "" {
		p, err := c.Profile(c.DefaultProfile)
		if err != nil {
			return nil, err
		}
		layers = append(layers, p)
	}
	if selected != "" && !strings.EqualFold(selected, c.DefaultProfile) {
		p, err := c.Profile(selected)
		if err != nil {
			return nil, err
		}
		layers = append(layers, p)
	}
	return layers, nil
}

// DefaultTracesFilePath returns ~/.config/rnt/traces/traces.jsonl, or an
// empty string if the home directory is unavailable.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "rnt", "traces", "traces.jsonl")
}

// DefaultConfigTemplate returns the default config as YAML with comments.
func DefaultConfigTemplate() string {
	return `# rnt configuration
# Lookup order: --config, ./.rnt/config.yaml, ~/.config/rnt/config.yaml

engine:
  # Engine binary, looked up on PATH
  executable: dsda-doom
  # Directories searched for WADs before $DOOMWADDIR and $DOOMWADPATH
  asset_dirs: []
  # Quiet period after a WAD changes before --watch relaunches
  watch_debounce: 500ms
  # How long WAD lookups are cached
  cache_ttl: 10m

# Profile applied on every launch before --profile and flags
default_profile: ""

# Named launch presets. Flags given on the command line override scalar
# values; files and extra are appended after the profile's own.
#
# profiles:
#   uv-max:
#     iwad: doom2.wad
#     skill: nightmare
#     complevel: doom19
#     pistolstart: true
#   sigil:
#     iwad: doom.wad
#     files: [sigil.wad]
#     extra: [-fast]
profiles: {}

tracing:
  enabled: false
  # none, file, stdout, otlp
  exporter: file
  # file_path: ~/.config/rnt/traces/traces.jsonl
  otlp_endpoint: localhost:4317
  sample_rate: 1.0
`
}

// WriteDefaultConfig writes DefaultConfigTemplate to configPath, creating
// parent directories. An existing file is left alone.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config file already exists: %s", configPath)
	}

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}

// DefaultConfigPath returns ~/.config/rnt/config.yaml, falling back to
// .rnt/config.yaml when the home directory is unavailable.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".rnt", "config.yaml")
	}
	return filepath.Join(home, ".config", "rnt", "config.yaml")
}
