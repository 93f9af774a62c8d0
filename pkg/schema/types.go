package schema

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Type defines the contract for configuration attribute validation.
// Configuration values are raw strings taken from the template markup.
type Type interface {
	// Name returns the human-readable name of the type (e.g., "string", "int").
	Name() string
	// Validate checks if a raw value conforms to this type.
	Validate(raw string) error
}

// --- Built-in Type Implementations ---

// StringType accepts any value.
type StringType struct{}

func (t *StringType) Name() string { return "string" }

func (t *StringType) Validate(string) error { return nil }

// IntType validates integer values.
type IntType struct{}

func (t *IntType) Name() string { return "int" }

func (t *IntType) Validate(raw string) error {
	if _, err := strconv.Atoi(strings.TrimSpace(raw)); err != nil {
		return fmt.Errorf("expected int, got %q", raw)
	}
	return nil
}

// BoolType validates "true"/"false" values.
type BoolType struct{}

func (t *BoolType) Name() string { return "bool" }

func (t *BoolType) Validate(raw string) error {
	switch raw {
	case "true", "false":
		return nil
	default:
		return fmt.Errorf("expected bool, got %q", raw)
	}
}

// ListType validates space-separated lists of a specific element type.
type ListType struct {
	elemType Type
}

func (t *ListType) Name() string {
	return fmt.Sprintf("[%s]", t.elemType.Name())
}

func (t *ListType) Validate(raw string) error {
	for i, item := range strings.Fields(raw) {
		if err := t.elemType.Validate(item); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	return nil
}

// CustomType applies a user-defined validation function.
type CustomType struct {
	name     string
	validate func(string) error
}

func (t *CustomType) Name() string { return t.name }

func (t *CustomType) Validate(raw string) error {
	return t.validate(raw)
}

// --- Factory Functions ---

// String creates a string type validator.
func String() Type { return &StringType{} }

// Int creates an integer type validator.
func Int() Type { return &IntType{} }

// Bool creates a boolean type validator.
func Bool() Type { return &BoolType{} }

// List creates a validator for space-separated lists of the given type.
func List(elemType Type) Type {
	return &ListType{elemType: elemType}
}

// Custom creates a custom type validator with a user-defined function.
func Custom(name string, validate func(string) error) Type {
	return &CustomType{name: name, validate: validate}
}

// Regexp creates a validator for regular expressions.
func Regexp() Type {
	return Custom("regexp", func(raw string) error {
		if _, err := regexp.Compile(raw); err != nil {
			return fmt.Errorf("expected regexp: %w", err)
		}
		return nil
	})
}

// ParseType converts a string type name to a Type.
// Supports "string", "int", "bool", "regexp" and lists of them: "[int]", etc.
func ParseType(typeStr string) (Type, error) {
	if len(typeStr) > 2 && typeStr[0] == '[' && typeStr[len(typeStr)-1] == ']' {
		elemType, err := ParseType(typeStr[1 : len(typeStr)-1])
		if err != nil {
			return nil, err
		}
		return List(elemType), nil
	}

	switch typeStr {
	case "string":
		return String(), nil
	case "int":
		return Int(), nil
	case "bool":
		return Bool(), nil
	case "regexp":
		return Regexp(), nil
	default:
		return nil, fmt.Errorf("unsupported type: %s", typeStr)
	}
}

// ParseTypeMap converts a map of keys to type strings into a ConfigSchema.
// Example: {"limit": "int", "multiline": "bool"}
func ParseTypeMap(typeMap map[string]string) (ConfigSchema, error) {
	result := make(ConfigSchema)
	for key, typeStr := range typeMap {
		t, err := ParseType(typeStr)
		if err != nil {
			return nil, fmt.Errorf("key %s: %w", key, err)
		}
		result[key] = t
	}
	return result, nil
}

// Extend returns a copy of cs with the given types added or replaced.
func (cs ConfigSchema) Extend(types ConfigSchema) ConfigSchema {
	out := make(ConfigSchema, len(cs)+len(types))
	for k, t := range cs {
		out[k] = t
	}
	for k, t := range types {
		out[k] = t
	}
	return out
}
