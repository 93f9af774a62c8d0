package schema

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDuplicateName is wrapped by issues about colliding canonical names.
	ErrDuplicateName = errors.New("duplicate canonical name")
	// ErrDanglingReference is wrapped by issues about references that never resolve.
	ErrDanglingReference = errors.New("dangling reference")
	// ErrInvalidStructure is wrapped by issues about elements violating structural rules.
	ErrInvalidStructure = errors.New("invalid element structure")
	// ErrInvalidConfig is wrapped by issues about malformed configuration attributes.
	ErrInvalidConfig = errors.New("invalid configuration attribute")
)

// Issue represents a single configuration failure.
type Issue struct {
	Element string // Canonical name of the offending element
	Key     string // Configuration key, if any
	Err     error  // Underlying cause
}

func (e *Issue) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("element %q: %s", e.Element, e.Err)
	}
	return fmt.Sprintf("element %q, %q: %s", e.Element, e.Key, e.Err)
}

func (e *Issue) Unwrap() error { return e.Err }

// ConfigurationError represents every issue found while registering or
// freezing a template library. Any ConfigurationError aborts the load.
type ConfigurationError struct {
	Issues []error
}

func (e *ConfigurationError) Error() string {
	if len(e.Issues) == 1 {
		return "configuration error: " + e.Issues[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d configuration errors:\n", len(e.Issues))
	for i, err := range e.Issues {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}
	return sb.String()
}

// Unwrap exposes the individual issues to errors.Is and errors.As.
func (e *ConfigurationError) Unwrap() []error { return e.Issues }

// Issues returns all issues if err is or wraps a ConfigurationError.
// Otherwise returns nil.
func Issues(err error) []error {
	var cfg *ConfigurationError
	if errors.As(err, &cfg) {
		return cfg.Issues
	}
	return nil
}
