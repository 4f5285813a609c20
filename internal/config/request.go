package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/jwtan/plancast/internal/domain"
)

// LoadRequestFromFile loads a projection request from a YAML (.yaml/.yml) or
// TOML (.toml) file. Only parsing happens here; semantic validation belongs
// to the engine, which sees file-sourced and flag-sourced requests alike.
func LoadRequestFromFile(path string) (domain.ProjectionRequest, error) {
	var req domain.ProjectionRequest

	data, err := os.ReadFile(path)
	if err != nil {
		return req, fmt.Errorf("failed to read request file %s: %w", path, err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &req); err != nil {
			return req, fmt.Errorf("failed to parse YAML request: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &req); err != nil {
			return req, fmt.Errorf("failed to parse TOML request: %w", err)
		}
	default:
		return req, fmt.Errorf("unsupported request file extension %q (want .yaml, .yml or .toml)", ext)
	}

	return req, nil
}
