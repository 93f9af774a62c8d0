package library

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/stencil/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// file is the on-disk shape of a library file.
type file struct {
	Templates   []any             `json:"templates" yaml:"templates"`
	ConfigTypes map[string]string `json:"config_types" yaml:"config_types"`
}

// LoadFile reads a YAML or JSON library file, following its imports.
// Config types declared by an importing file take precedence over those of
// the files it imports.
func LoadFile(path string) (*Loader, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}
	l := &Loader{templates: make(map[string]domain.Template)}
	if err := l.loadFile(abs, map[string]bool{abs: true}); err != nil {
		return nil, err
	}
	return l, nil
}

// Parse decodes a library document in the given format ("yaml" or "json").
// Imports are resolved relative to the working directory.
func Parse(data []byte, format string) (*Loader, error) {
	raw, err := decode(data, format)
	if err != nil {
		return nil, err
	}
	l := &Loader{templates: make(map[string]domain.Template)}
	l.addTypes(raw.ConfigTypes)
	if err := l.resolve(raw.Templates, ".", make(map[string]bool)); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *Loader) loadFile(path string, visited map[string]bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read library %s: %w", path, err)
	}
	raw, err := decode(data, formatOf(path))
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	l.addTypes(raw.ConfigTypes)
	return l.resolve(raw.Templates, filepath.Dir(path), visited)
}

func (l *Loader) resolve(entries []any, dir string, visited map[string]bool) error {
	for i, item := range entries {
		switch v := item.(type) {
		case string:
			// Import Reference
			ref := v
			if !filepath.IsAbs(ref) {
				ref = filepath.Join(dir, ref)
			}
			if visited[ref] {
				return fmt.Errorf("cycle detected in library imports: %s", ref)
			}

			// DFS Cycle Detection: Mark
			visited[ref] = true
			err := l.loadFile(ref, visited)
			// Backtrack so diamond imports stay legal.
			delete(visited, ref)

			if err != nil {
				return fmt.Errorf("failed to import library '%s': %w", v, err)
			}

		case map[string]any, map[any]any:
			// Inline Definition
			var t domain.Template
			if err := mapstructure.Decode(v, &t); err != nil {
				return fmt.Errorf("failed to decode template %d: %w", i, err)
			}
			if t.Name == "" {
				return fmt.Errorf("template %d missing name", i)
			}
			// Overwrite existing (Shadowing)
			l.add(t)

		default:
			return fmt.Errorf("invalid template definition type: %T", v)
		}
	}
	return nil
}

func decode(data []byte, format string) (*file, error) {
	var raw file
	switch format {
	case "json":
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse library JSON: %w", err)
		}
	case "yaml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse library YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported library format: %q", format)
	}
	return &raw, nil
}

func formatOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json"
	default:
		return "yaml"
	}
}
