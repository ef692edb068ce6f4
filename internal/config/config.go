// Package config handles loading xtask.toml configuration files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileName is the configuration file looked up at the repository root.
const FileName = "xtask.toml"

const (
	defaultSnapshotDir = "firmware/qemu"
	defaultTool        = "cargo"
	defaultLogLevel    = "trace"
)

// Config represents the xtask.toml configuration file.
type Config struct {
	Snapshot Snapshot `toml:"snapshot"`
}

// Snapshot contains snapshot-test configuration.
type Snapshot struct {
	// Dir is the snapshot tests directory, relative to the repository root.
	Dir string `toml:"dir"`

	// Tool is the build tool invoked to build and run fixtures.
	Tool string `toml:"tool"`

	// Target is the default cross-compilation target. Empty leaves the
	// choice to the fixture crate's own configuration.
	Target string `toml:"target"`

	// LogLevel is exported to fixtures as DEFMT_LOG.
	LogLevel string `toml:"log-level"`

	// Env holds extra KEY=VALUE pairs passed to every fixture invocation.
	Env []string `toml:"env"`

	// Masks are appended after the built-in normalization rules.
	Masks []Mask `toml:"mask"`
}

// Mask is one extra output normalization rule.
type Mask struct {
	Name        string `toml:"name"`
	Pattern     string `toml:"pattern"`
	Replacement string `toml:"replacement"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Snapshot: Snapshot{
			Dir:      defaultSnapshotDir,
			Tool:     defaultTool,
			LogLevel: defaultLogLevel,
		},
	}
}

// SnapshotDir resolves the snapshot tests directory against repoPath.
func (c *Config) SnapshotDir(repoPath string) string {
	if filepath.IsAbs(c.Snapshot.Dir) {
		return filepath.Clean(c.Snapshot.Dir)
	}
	return filepath.Join(repoPath, c.Snapshot.Dir)
}

// Load loads configuration from the repo root.
// Returns the default config if no config file exists.
func Load(repoPath string) (*Config, error) {
	projectCfg, projectMeta, err := loadConfigFile(filepath.Join(repoPath, FileName))
	if err != nil {
		return nil, err
	}

	merged := mergeConfigs(Default(), projectCfg, projectMeta)
	if err := merged.validate(); err != nil {
		return nil, err
	}
	return merged, nil
}

func loadConfigFile(path string) (*Config, toml.MetaData, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, toml.MetaData{}, nil
	}
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("read config file %s: %w", path, err)
	}

	var cfg Config
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: unknown key %q", path, undecoded[0].String())
	}

	return &cfg, meta, nil
}

func mergeConfigs(defaults, projectCfg *Config, projectMeta toml.MetaData) *Config {
	merged := Config{}
	merged.Snapshot.Dir = mergeString(projectMeta.IsDefined("snapshot", "dir"), projectCfg.Snapshot.Dir, defaults.Snapshot.Dir)
	merged.Snapshot.Tool = mergeString(projectMeta.IsDefined("snapshot", "tool"), projectCfg.Snapshot.Tool, defaults.Snapshot.Tool)
	merged.Snapshot.Target = mergeString(projectMeta.IsDefined("snapshot", "target"), projectCfg.Snapshot.Target, defaults.Snapshot.Target)
	merged.Snapshot.LogLevel = mergeString(projectMeta.IsDefined("snapshot", "log-level"), projectCfg.Snapshot.LogLevel, defaults.Snapshot.LogLevel)
	if projectMeta.IsDefined("snapshot", "env") {
		merged.Snapshot.Env = append([]string(nil), projectCfg.Snapshot.Env...)
	}
	if projectMeta.IsDefined("snapshot", "mask") {
		merged.Snapshot.Masks = append([]Mask(nil), projectCfg.Snapshot.Masks...)
	}
	return &merged
}

func mergeString(projectDefined bool, projectValue, defaultValue string) string {
	value := defaultValue
	if projectDefined {
		value = projectValue
	}
	return strings.TrimSpace(value)
}

func (c *Config) validate() error {
	if c.Snapshot.Dir == "" {
		return fmt.Errorf("snapshot.dir is required")
	}
	if c.Snapshot.Tool == "" {
		return fmt.Errorf("snapshot.tool is required")
	}
	for _, entry := range c.Snapshot.Env {
		if key, _, ok := strings.Cut(entry, "="); !ok || strings.TrimSpace(key) == "" {
			return fmt.Errorf("snapshot.env entry %q must be KEY=VALUE", entry)
		}
	}
	for i, mask := range c.Snapshot.Masks {
		if mask.Pattern == "" {
			return fmt.Errorf("snapshot.mask[%d]: pattern is required", i)
		}
	}
	return nil
}
