package config

import (
	"go.trai.ch/cmakekit/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Configfile represents the structure of the cmakekit.yaml configuration file.
type Configfile struct {
	Version    string                     `yaml:"version"`
	SourceDir  string                     `yaml:"sourceDir"`
	BuildDir   string                     `yaml:"buildDir"`
	Debugger   []string                   `yaml:"debugger"`
	Defaults   DefaultsDTO                `yaml:"defaults"`
	Tooling    ToolingDTO                 `yaml:"tooling"`
	BuildTypes orderedMap[BuildTypeDTO] `yaml:"buildTypes"`
	Kits       orderedMap[KitDTO]       `yaml:"kits"`
}

// DefaultsDTO names the selection used when neither flags nor saved state choose one.
type DefaultsDTO struct {
	Kit       string `yaml:"kit"`
	BuildType string `yaml:"buildType"`
}

// ToolingDTO configures the post-success tooling refresh.
type ToolingDTO struct {
	LinkCompileCommands *bool `yaml:"linkCompileCommands"`
}

// BuildTypeDTO represents a build type profile in the configuration.
type BuildTypeDTO struct {
	BuildType string             `yaml:"buildType"`
	Defines   orderedMap[string] `yaml:"defines"`
	Env       orderedMap[string] `yaml:"env"`
}

// KitDTO represents a build kit in the configuration.
type KitDTO struct {
	Generator      string             `yaml:"generator"`
	Compilers      CompilersDTO       `yaml:"compilers"`
	ToolchainFile  string             `yaml:"toolchainFile"`
	Defines        orderedMap[string] `yaml:"defines"`
	Env            orderedMap[string] `yaml:"env"`
	EnvFile        string             `yaml:"envFile"`
	BuildTypeAware *bool              `yaml:"buildTypeAware"`
}

// CompilersDTO holds per-language compiler executables.
type CompilersDTO struct {
	C   string `yaml:"C"`
	CXX string `yaml:"CXX"`
}

type entry[T any] struct {
	key   string
	value T
}

// orderedMap decodes a YAML mapping while keeping the keys in document order.
type orderedMap[T any] struct {
	entries []entry[T]
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (m *orderedMap[T]) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return zerr.With(zerr.With(domain.ErrInvalidConfig, "line", node.Line), "reason", "expected a mapping")
	}

	seen := make(map[string]bool, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		var key string
		if err := node.Content[i].Decode(&key); err != nil {
			return err
		}
		if seen[key] {
			return zerr.With(zerr.With(domain.ErrInvalidConfig, "line", node.Content[i].Line), "duplicate", key)
		}
		seen[key] = true

		var value T
		if err := node.Content[i+1].Decode(&value); err != nil {
			return err
		}
		m.entries = append(m.entries, entry[T]{key: key, value: value})
	}
	return nil
}

// Len returns the number of entries.
func (m orderedMap[T]) Len() int {
	return len(m.entries)
}

// vars converts a string mapping into domain.Vars, keeping order.
func vars(m orderedMap[string]) domain.Vars {
	var v domain.Vars
	for _, e := range m.entries {
		v.Set(e.key, e.value)
	}
	return v
}
