/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"stepcase/internal/gml"
)

// AppConfig is the user-editable configuration persisted to a YAML file in
// the user scope. Environment variables are read-only overrides at runtime.
//
// config_version: bump when the structure changes in a backward-incompatible way.

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

// HistoryConfig controls the local translation-history database.
type HistoryConfig struct {
	Enabled bool `yaml:"enabled"`
	// Keep is how many past runs to retain per output directory.
	Keep int `yaml:"keep"`
}

type AppConfig struct {
	ConfigVersion int           `yaml:"config_version"`
	Logging       LoggingConfig `yaml:"logging"`
	Codegen       gml.Options   `yaml:"codegen"`
	History       HistoryConfig `yaml:"history"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		Logging:       LoggingConfig{Level: "info", Format: "console", Source: false, File: ""},
		Codegen:       gml.DefaultOptions(),
		History:       HistoryConfig{Enabled: true, Keep: 20},
	}
}

// Env var names used as overrides.
const (
	EnvLogLevel       = "STC_LOG_LEVEL"
	EnvLogFormat      = "STC_LOG_FORMAT"
	EnvLogSource      = "STC_LOG_SOURCE"
	EnvLogFile        = "STC_LOG_FILE"
	EnvHistoryEnabled = "STC_HISTORY"
	EnvHistoryKeep    = "STC_HISTORY_KEEP"
)

// ConfigPath returns the per-user config file path.
func ConfigPath() (string, error) {
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" { // fallback
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "Stepcase")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "Stepcase")
	default: // linux and others
		base = filepath.Join(os.Getenv("HOME"), ".config", "stepcase")
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// fileConfig mirrors AppConfig for decoding; booleans that default to true
// are pointers so an absent key can be told apart from an explicit false.
type fileConfig struct {
	ConfigVersion int           `yaml:"config_version"`
	Logging       LoggingConfig `yaml:"logging"`
	Codegen       gml.Options   `yaml:"codegen"`
	History       struct {
		Enabled *bool `yaml:"enabled"`
		Keep    int   `yaml:"keep"`
	} `yaml:"history"`
}

// Load reads the user config file (if present), applies defaults, and merges
// environment overrides.
func Load() (AppConfig, error) {
	cfg := Defaults()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	if data, err := os.ReadFile(path); err == nil {
		var fileCfg fileConfig
		if err := yaml.Unmarshal(data, &fileCfg); err == nil {
			mergeInto(&cfg, &fileCfg)
		}
	}
	applyEnvOverrides(&cfg)
	return cfg, nil
}

// Save writes the user config YAML.
func Save(cfg AppConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func mergeInto(dst *AppConfig, src *fileConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	if strings.TrimSpace(src.Logging.Level) != "" {
		dst.Logging.Level = strings.ToLower(strings.TrimSpace(src.Logging.Level))
	}
	if strings.TrimSpace(src.Logging.Format) != "" {
		dst.Logging.Format = strings.ToLower(strings.TrimSpace(src.Logging.Format))
	}
	dst.Logging.Source = src.Logging.Source
	if strings.TrimSpace(src.Logging.File) != "" {
		dst.Logging.File = strings.TrimSpace(src.Logging.File)
	}
	if src.Codegen.ChoiceObject != "" {
		dst.Codegen.ChoiceObject = src.Codegen.ChoiceObject
	}
	if src.Codegen.PointerObject != "" {
		dst.Codegen.PointerObject = src.Codegen.PointerObject
	}
	if src.Codegen.OriginX != 0 {
		dst.Codegen.OriginX = src.Codegen.OriginX
	}
	if src.Codegen.OriginY != 0 {
		dst.Codegen.OriginY = src.Codegen.OriginY
	}
	if src.Codegen.RowSpacing != 0 {
		dst.Codegen.RowSpacing = src.Codegen.RowSpacing
	}
	if src.History.Enabled != nil {
		dst.History.Enabled = *src.History.Enabled
	}
	if src.History.Keep != 0 {
		dst.History.Keep = src.History.Keep
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		cfg.Logging.Source = parseBool(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvHistoryEnabled)); v != "" {
		cfg.History.Enabled = parseBool(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvHistoryKeep)); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.History.Keep = n
		}
	}
}

func parseBool(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}
