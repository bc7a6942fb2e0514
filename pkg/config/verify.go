package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"github.com/invopop/jsonschema"
)

//go:embed schema.json
var embeddedSchema string

// VerifyAgainstEmbeddedSchema checks the loaded config against schema.json compiled into the binary
func VerifyAgainstEmbeddedSchema(cfg *Config) error {
	var schema struct {
		Defs map[string]struct {
			Properties map[string]json.RawMessage `json:"properties"`
		} `json:"$defs"`
	}
	if err := json.Unmarshal([]byte(embeddedSchema), &schema); err != nil {
		return fmt.Errorf("parse embedded schema: %w", err)
	}

	// sections are compared by their json names
	configData, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	var configMap map[string]any
	if err := json.Unmarshal(configData, &configMap); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	// every top level section must be known to the schema, stale schema otherwise
	root, ok := schema.Defs["Config"]
	if !ok {
		return fmt.Errorf("schema has no Config definition")
	}
	for _, k := range slices.Sorted(maps.Keys(configMap)) {
		if _, ok := root.Properties[k]; !ok {
			return fmt.Errorf("section %q is not in schema", k)
		}
	}

	if err := validateRequiredFields(cfg); err != nil {
		return fmt.Errorf("required fields: %w", err)
	}

	return nil
}

// validateRequiredFields checks fields the backends and llm steps can not run without
func validateRequiredFields(cfg *Config) error {
	if cfg.Server.Listen == "" {
		return fmt.Errorf("server.listen is required")
	}
	if cfg.Server.Timeout == 0 {
		return fmt.Errorf("server.timeout is required")
	}

	if cfg.Store.Type == "sqlite" && cfg.Store.DSN == "" {
		return fmt.Errorf("store.dsn is required for sqlite store")
	}
	if cfg.Store.Type == "bolt" && cfg.Store.Path == "" {
		return fmt.Errorf("store.path is required for bolt store")
	}

	if cfg.UsesLLM() && cfg.LLM.Model == "" {
		return fmt.Errorf("llm.model is required when llm summary or classification is enabled")
	}

	return nil
}

// GenerateSchema reflects Config into a JSON schema, used by cmd/schema
func GenerateSchema() (*jsonschema.Schema, error) {
	return jsonschema.Reflect(&Config{}), nil
}
