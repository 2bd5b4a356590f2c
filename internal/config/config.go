// Package config handles loading academy.toml configuration files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/trmn/academy/internal/paths"
)

// ProjectFile is the name of the per-directory config file.
const ProjectFile = "academy.toml"

// Config represents the academy.toml configuration file.
type Config struct {
	Catalog Catalog `toml:"catalog"`
	State   State   `toml:"state"`
	Log     Log     `toml:"log"`
}

// Catalog contains catalog-related configuration.
type Catalog struct {
	// Path is the catalog file. Relative paths are resolved against the
	// directory of the config file that set them.
	Path string `toml:"path"`
}

// State contains progress storage configuration.
type State struct {
	// Dir overrides the directory progress.json is stored in.
	Dir string `toml:"dir"`
}

// Log contains logging configuration.
type Log struct {
	// Mode is dev, prod or off.
	Mode string `toml:"mode"`

	// Level is a zap level name such as debug or warn.
	Level string `toml:"level"`
}

// Load loads configuration from dir and the global config file.
// Returns an empty config if no config files exist.
func Load(dir string) (*Config, error) {
	configDir, err := paths.DefaultConfigDir()
	if err != nil {
		return nil, err
	}

	globalCfg, _, err := loadConfigFile(filepath.Join(configDir, "config.toml"))
	if err != nil {
		return nil, err
	}

	projectCfg, projectMeta, err := loadConfigFile(filepath.Join(dir, ProjectFile))
	if err != nil {
		return nil, err
	}

	return mergeConfigs(globalCfg, projectCfg, projectMeta), nil
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

	base := filepath.Dir(path)
	if cfg.Catalog.Path, err = resolvePath(base, cfg.Catalog.Path); err != nil {
		return nil, toml.MetaData{}, err
	}
	if cfg.State.Dir, err = resolvePath(base, cfg.State.Dir); err != nil {
		return nil, toml.MetaData{}, err
	}

	return &cfg, meta, nil
}

func resolvePath(base, path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", nil
	}
	expanded, err := paths.ExpandHome(path)
	if err != nil {
		return "", err
	}
	if filepath.IsAbs(expanded) {
		return expanded, nil
	}
	return filepath.Join(base, expanded), nil
}

func mergeConfigs(globalCfg, projectCfg *Config, projectMeta toml.MetaData) *Config {
	if globalCfg == nil {
		globalCfg = &Config{}
	}
	if projectCfg == nil {
		projectCfg = &Config{}
	}

	merged := Config{}
	merged.Catalog.Path = mergeString(projectMeta.IsDefined("catalog", "path"), projectCfg.Catalog.Path, globalCfg.Catalog.Path)
	merged.State.Dir = mergeString(projectMeta.IsDefined("state", "dir"), projectCfg.State.Dir, globalCfg.State.Dir)
	merged.Log.Mode = mergeString(projectMeta.IsDefined("log", "mode"), projectCfg.Log.Mode, globalCfg.Log.Mode)
	merged.Log.Level = mergeString(projectMeta.IsDefined("log", "level"), projectCfg.Log.Level, globalCfg.Log.Level)
	return &merged
}

func mergeString(projectDefined bool, projectValue, globalValue string) string {
	value := globalValue
	if projectDefined {
		value = projectValue
	}
	return strings.TrimSpace(value)
}
