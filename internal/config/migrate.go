package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// MigrationResult describes the outcome of a migration operation
type MigrationResult struct {
	SourcePath string
	TargetPath string
	Success    bool
	DryRun     bool
	Message    string
	// Dropped lists JSON keys that are not chlog configuration keys.
	Dropped []string
}

// MigrateJSONToYAML converts a legacy JSON config file to YAML.
// Unknown keys are dropped and reported; known keys are validated against
// their schema. An existing YAML file is never overwritten.
func MigrateJSONToYAML(jsonPath, yamlPath string, dryRun bool) (*MigrationResult, error) {
	result := &MigrationResult{
		SourcePath: jsonPath,
		TargetPath: yamlPath,
		DryRun:     dryRun,
	}

	jsonData, err := os.ReadFile(jsonPath)
	if err != nil {
		if os.IsNotExist(err) {
			result.Message = fmt.Sprintf("No JSON config found at %s", jsonPath)
			return result, nil
		}
		return nil, fmt.Errorf("failed to read JSON config: %w", err)
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(jsonData, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse JSON config: %w", err)
	}

	var root yaml.Node
	for _, key := range sortedMapKeys(raw) {
		if _, known := KnownKeys[key]; !known {
			result.Dropped = append(result.Dropped, key)
			continue
		}
		parsed, err := ValidateValue(key, jsonScalar(raw[key]))
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", jsonPath, key, err)
		}
		if err := SetNestedValue(&root, []string{key}, parsed.Parsed); err != nil {
			return nil, fmt.Errorf("converting %s: %w", key, err)
		}
	}

	if _, err := os.Stat(yamlPath); err == nil {
		result.Message = fmt.Sprintf("YAML config already exists at %s (skipped)", yamlPath)
		return result, nil
	}

	if dryRun {
		result.Success = true
		result.Message = fmt.Sprintf("Would migrate %s → %s", jsonPath, yamlPath)
		return result, nil
	}

	body := []byte{}
	if len(root.Content) > 0 {
		body, err = yaml.Marshal(&root)
		if err != nil {
			return nil, fmt.Errorf("failed to convert to YAML: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(yamlPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	header := "# chlog Configuration\n# Migrated from JSON format\n\n"
	if err := os.WriteFile(yamlPath, append([]byte(header), body...), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write YAML config: %w", err)
	}

	result.Success = true
	result.Message = fmt.Sprintf("Migrated %s → %s", jsonPath, yamlPath)
	return result, nil
}

// jsonScalar renders a decoded JSON value the way a user would type it.
// Whole numbers drop the ".0" that float64 formatting would add.
func jsonScalar(v interface{}) string {
	if f, ok := v.(float64); ok && f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

func sortedMapKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// MigrateUserConfig migrates the user-level config from JSON to YAML.
func MigrateUserConfig(dryRun bool) (*MigrationResult, error) {
	jsonPath, err := LegacyUserConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get legacy user config path: %w", err)
	}

	yamlPath, err := UserConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get user config path: %w", err)
	}

	return MigrateJSONToYAML(jsonPath, yamlPath, dryRun)
}

// MigrateProjectConfig migrates the project-level config under projectDir from JSON to YAML.
func MigrateProjectConfig(projectDir string, dryRun bool) (*MigrationResult, error) {
	jsonPath := filepath.Join(projectDir, LegacyProjectConfigPath())
	yamlPath := filepath.Join(projectDir, ProjectConfigPath())

	return MigrateJSONToYAML(jsonPath, yamlPath, dryRun)
}

// RemoveLegacyConfig renames a legacy JSON config to <path>.bak after a
// successful migration.
func RemoveLegacyConfig(jsonPath string, dryRun bool) error {
	if dryRun {
		return nil
	}
	if _, err := os.Stat(jsonPath); os.IsNotExist(err) {
		return nil
	}
	if err := os.Rename(jsonPath, jsonPath+".bak"); err != nil {
		return fmt.Errorf("failed to backup legacy config: %w", err)
	}
	return nil
}
