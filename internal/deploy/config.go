package deploy

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// EnvConfig holds the per-environment Snowflake settings read from
// <configDir>/<env>.yml.
type EnvConfig struct {
	DatabaseName  string `yaml:"database_name"`
	SchemaName    string `yaml:"schema_name"`
	WarehouseName string `yaml:"warehouse_name"`
	RoleName      string `yaml:"role_name"`
}

// LoadEnvConfig reads and validates an environment config file.
func LoadEnvConfig(configDir, env string) (*EnvConfig, error) {
	path := filepath.Join(configDir, env+".yml")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read environment config %s: %w", path, err)
	}

	var config EnvConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse environment config %s: %w", path, err)
	}

	if config.DatabaseName == "" {
		return nil, fmt.Errorf("database_name is required in %s", path)
	}
	if config.WarehouseName == "" {
		return nil, fmt.Errorf("warehouse_name is required in %s", path)
	}

	return &config, nil
}

// ProjectConfig is a snow CLI project definition (snowflake.yml). The
// document is kept as a generic tree so fields this tool does not model
// round-trip unchanged.
type ProjectConfig struct {
	doc map[string]any
}

// LoadProjectConfig reads a snowflake.yml project definition.
func LoadProjectConfig(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read project config %s: %w", path, err)
	}

	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse project config %s: %w", path, err)
	}
	if doc == nil {
		doc = map[string]any{}
	}

	return &ProjectConfig{doc: doc}, nil
}

// SetFunctionDatabase points every snowpark function at the given
// database and reports how many entries were rewritten.
func (p *ProjectConfig) SetFunctionDatabase(database string) int {
	snowpark, ok := p.doc["snowpark"].(map[string]any)
	if !ok {
		return 0
	}
	functions, ok := snowpark["functions"].([]any)
	if !ok {
		return 0
	}

	count := 0
	for _, entry := range functions {
		function, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		function["database"] = database
		count++
	}
	return count
}

// WriteTo marshals the (possibly rewritten) project definition.
func (p *ProjectConfig) WriteTo(path string) error {
	data, err := yaml.Marshal(p.doc)
	if err != nil {
		return fmt.Errorf("failed to marshal project config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write project config %s: %w", path, err)
	}
	return nil
}
