// chlog - Conventional Commit Changelog Synthesizer
// Author: Ariel Frischer
// Source: https://github.com/ariel-frischer/chlog

// Package config provides hierarchical configuration management for chlog using koanf.
// Configuration is loaded with priority: environment variables > project config (.chlog/config.yml)
// > user config (~/.config/chlog/config.yml) > defaults. It supports both YAML and legacy JSON
// formats, with migration utilities for transitioning from JSON to YAML.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables that override config keys.
const EnvPrefix = "CHLOG_"

// ConfigSource tracks where a configuration value came from
type ConfigSource string

const (
	SourceDefault ConfigSource = "default"
	SourceUser    ConfigSource = "user"
	SourceProject ConfigSource = "project"
	SourceEnv     ConfigSource = "env"
)

// Configuration represents the chlog CLI tool configuration
type Configuration struct {
	// ChangelogFile is the Markdown document releases are merged into.
	ChangelogFile string `koanf:"changelog_file" validate:"required"`

	// TargetRef is the ref whose history is released. Overridden by --to.
	TargetRef string `koanf:"target_ref" validate:"required"`

	// FallbackWindow is the number of recent commits used when no stable
	// release tag is an ancestor of the target.
	FallbackWindow int `koanf:"fallback_window" validate:"min=1,max=1000"`

	// TagPrefix is prepended to the version when building the release tag
	// name for compare links (e.g., "v" turns 1.2.0 into v1.2.0).
	TagPrefix string `koanf:"tag_prefix"`

	// RepositoryURL is the web URL of the repository. When empty it is
	// derived from the "origin" remote.
	RepositoryURL string `koanf:"repository_url" validate:"omitempty,url"`

	// CompareURL is a template with {from} and {to} placeholders.
	// Example: "https://gitlab.com/acme/widget/-/compare/{from}...{to}"
	CompareURL string `koanf:"compare_url"`

	// CommitURL is a template with a {hash} placeholder.
	CommitURL string `koanf:"commit_url"`

	// GitBackend selects the repository implementation: "go-git" (in-process)
	// or "cli" (shells out to the git executable).
	GitBackend string `koanf:"git_backend" validate:"oneof=go-git cli"`
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// ProjectConfigPath overrides the project config path (default: .chlog/config.yml)
	ProjectConfigPath string
	// ProjectDir is the directory project config paths are relative to (default: cwd)
	ProjectDir string
	// UserConfigPath overrides the user config path (default: ~/.config/chlog/config.yml)
	UserConfigPath string
	// SkipUserConfig ignores user-level config entirely
	SkipUserConfig bool
	// WarningWriter receives deprecation warnings (default: os.Stderr)
	WarningWriter io.Writer
	// SkipWarnings suppresses deprecation warnings
	SkipWarnings bool
}

// Load loads configuration from user, project, and environment sources.
// Priority: Environment variables > Project config > User config > Defaults
//
// YAML config paths:
//   - User config: ~/.config/chlog/config.yml (XDG compliant)
//   - Project config: .chlog/config.yml
//
// Legacy JSON config paths (deprecated, triggers migration warning):
//   - User config: ~/.chlog/config.json
//   - Project config: .chlog/config.json
func Load(projectConfigPath string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{ProjectConfigPath: projectConfigPath})
}

// LoadWithOptions loads configuration with custom options
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	cfg, _, err := LoadWithSources(opts)
	return cfg, err
}

// LoadWithSources loads configuration and reports, per key, which layer
// supplied the effective value.
func LoadWithSources(opts LoadOptions) (*Configuration, map[string]ConfigSource, error) {
	k := koanf.New(".")
	warningWriter := getWarningWriter(opts.WarningWriter)
	sources := make(map[string]ConfigSource)

	loadDefaults(k)
	markSources(k, sources, SourceDefault)

	if !opts.SkipUserConfig {
		layer := koanf.New(".")
		if err := loadUserConfig(layer, opts.UserConfigPath, warningWriter, opts.SkipWarnings); err != nil {
			return nil, nil, err
		}
		if err := mergeLayer(k, layer, sources, SourceUser); err != nil {
			return nil, nil, err
		}
	}

	layer := koanf.New(".")
	if err := loadProjectConfig(layer, opts.ProjectDir, opts.ProjectConfigPath, warningWriter, opts.SkipWarnings); err != nil {
		return nil, nil, err
	}
	if err := mergeLayer(k, layer, sources, SourceProject); err != nil {
		return nil, nil, err
	}

	layer = koanf.New(".")
	if err := loadEnvironmentConfig(layer); err != nil {
		return nil, nil, err
	}
	if err := mergeLayer(k, layer, sources, SourceEnv); err != nil {
		return nil, nil, err
	}

	cfg, err := finalizeConfig(k)
	if err != nil {
		return nil, nil, err
	}
	return cfg, sources, nil
}

// getWarningWriter returns the warning writer or defaults to stderr
func getWarningWriter(w io.Writer) io.Writer {
	if w == nil {
		return os.Stderr
	}
	return w
}

// loadDefaults applies default configuration values
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

func markSources(k *koanf.Koanf, sources map[string]ConfigSource, src ConfigSource) {
	for _, key := range k.Keys() {
		sources[key] = src
	}
}

// mergeLayer merges a loaded layer over k, recording src for every key it sets.
func mergeLayer(k, layer *koanf.Koanf, sources map[string]ConfigSource, src ConfigSource) error {
	if len(layer.Keys()) == 0 {
		return nil
	}
	markSources(layer, sources, src)
	if err := k.Merge(layer); err != nil {
		return fmt.Errorf("merging %s config: %w", src, err)
	}
	return nil
}

// loadUserConfig loads user-level config (YAML preferred, legacy JSON supported).
// Priority: YAML (~/.config/chlog/config.yml) > JSON (~/.chlog/config.json).
// Warns if both exist (YAML used, JSON ignored) or if only legacy JSON exists.
func loadUserConfig(k *koanf.Koanf, customPath string, warningWriter io.Writer, skipWarnings bool) error {
	userYAMLPath := customPath
	if userYAMLPath == "" {
		userYAMLPath, _ = UserConfigPath()
	}
	legacyUserPath, _ := LegacyUserConfigPath()
	if customPath != "" {
		legacyUserPath = ""
	}

	userYAMLExists := fileExists(userYAMLPath)
	legacyUserExists := fileExists(legacyUserPath)

	if userYAMLExists {
		if err := loadYAMLConfig(k, userYAMLPath, "user"); err != nil {
			return fmt.Errorf("loading user YAML config: %w", err)
		}
		warnLegacyExists(warningWriter, legacyUserPath, userYAMLPath, legacyUserExists, skipWarnings, "--user")
	} else if legacyUserExists {
		if err := loadLegacyJSONConfig(k, legacyUserPath, "user", warningWriter, skipWarnings, "--user"); err != nil {
			return fmt.Errorf("loading legacy user JSON config: %w", err)
		}
	}
	return nil
}

// loadProjectConfig loads project-level config (YAML preferred, legacy JSON supported).
// Supports custom path override (--config). Falls back to legacy JSON with warning.
// Same priority/warning logic as loadUserConfig.
func loadProjectConfig(k *koanf.Koanf, projectDir, customPath string, warningWriter io.Writer, skipWarnings bool) error {
	projectYAMLPath := filepath.Join(projectDir, ProjectConfigPath())
	legacyProjectPath := filepath.Join(projectDir, LegacyProjectConfigPath())
	if customPath != "" {
		if !fileExists(customPath) {
			return fmt.Errorf("config file %s does not exist", customPath)
		}
		if strings.HasSuffix(customPath, ".json") {
			return loadLegacyJSONConfig(k, customPath, "project", warningWriter, skipWarnings, "--project")
		}
		projectYAMLPath = customPath
		legacyProjectPath = ""
	}

	projectYAMLExists := fileExists(projectYAMLPath)
	legacyProjectExists := fileExists(legacyProjectPath)

	if projectYAMLExists {
		if err := loadYAMLConfig(k, projectYAMLPath, "project"); err != nil {
			return fmt.Errorf("loading project YAML config: %w", err)
		}
		warnLegacyExists(warningWriter, legacyProjectPath, projectYAMLPath, legacyProjectExists, skipWarnings, "--project")
	} else if legacyProjectExists {
		if err := loadLegacyJSONConfig(k, legacyProjectPath, "project", warningWriter, skipWarnings, "--project"); err != nil {
			return fmt.Errorf("loading legacy project JSON config: %w", err)
		}
	}
	return nil
}

// loadYAMLConfig validates and loads a YAML config file
func loadYAMLConfig(k *koanf.Koanf, path, configType string) error {
	if err := ValidateYAMLSyntax(path); err != nil {
		return fmt.Errorf("validating YAML syntax for %s config: %w", configType, err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
	}
	return nil
}

// loadLegacyJSONConfig loads legacy JSON and warns about migration
func loadLegacyJSONConfig(k *koanf.Koanf, path, configType string, warningWriter io.Writer, skipWarnings bool, migrateFlag string) error {
	if err := k.Load(file.Provider(path), json.Parser()); err != nil {
		return fmt.Errorf("failed to load legacy %s config %s: %w", configType, path, err)
	}
	if !skipWarnings {
		fmt.Fprintf(warningWriter, "Warning: Using deprecated JSON config at %s\n", path)
		fmt.Fprintf(warningWriter, "  Run 'chlog config migrate %s' to migrate to YAML format.\n\n", migrateFlag)
	}
	return nil
}

// warnLegacyExists warns if legacy JSON exists alongside new YAML
func warnLegacyExists(warningWriter io.Writer, legacyPath, yamlPath string, legacyExists, skipWarnings bool, migrateFlag string) {
	if legacyExists && !skipWarnings {
		fmt.Fprintf(warningWriter, "Warning: Legacy JSON config found at %s (ignored, using %s)\n", legacyPath, yamlPath)
		fmt.Fprintf(warningWriter, "  Run 'chlog config migrate %s' to remove the legacy file.\n\n", migrateFlag)
	}
}

// loadEnvironmentConfig loads environment variable overrides
func loadEnvironmentConfig(k *koanf.Koanf) error {
	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	for _, key := range k.Keys() {
		if _, known := KnownKeys[key]; !known {
			k.Delete(key)
		}
	}
	return nil
}

// finalizeConfig unmarshals, validates, and applies final transformations
func finalizeConfig(k *koanf.Koanf) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.GitBackend = strings.ToLower(strings.TrimSpace(cfg.GitBackend))
	cfg.RepositoryURL = strings.TrimSuffix(strings.TrimSpace(cfg.RepositoryURL), "/")

	if err := ValidateConfigValues(&cfg, "config"); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg.ChangelogFile = expandHomePath(cfg.ChangelogFile)

	return &cfg, nil
}

// fileExists returns true if the file exists and is readable
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// envTransform converts environment variable names to config keys
// Example: CHLOG_FALLBACK_WINDOW -> fallback_window
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}

// Values returns the configuration keyed by its config key names.
func (c *Configuration) Values() map[string]interface{} {
	return map[string]interface{}{
		"changelog_file":  c.ChangelogFile,
		"target_ref":      c.TargetRef,
		"fallback_window": c.FallbackWindow,
		"tag_prefix":      c.TagPrefix,
		"repository_url":  c.RepositoryURL,
		"compare_url":     c.CompareURL,
		"commit_url":      c.CommitURL,
		"git_backend":     c.GitBackend,
	}
}
