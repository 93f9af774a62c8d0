package schema

import (
	"fmt"
	"sort"
)

// ConfigSchema maps configuration keys to their expected types.
// Keys are optional: only present keys are validated.
type ConfigSchema map[string]Type

// DefaultConfigSchema types the configuration keys the engine and its
// validators interpret.
var DefaultConfigSchema = ConfigSchema{
	"type":        String(),
	"name":        String(),
	"label":       String(),
	"icon":        String(),
	"validation":  Regexp(),
	"conversions": List(String()),
	"contains":    List(String()),
	"limit":       Int(),
	"min":         Int(),
	"max":         Int(),
	"pattern":     Regexp(),
	"multiline":   Bool(),
}

// ValidateConfig checks every present key of config against the schema and
// returns one Issue per failure, sorted by key.
func ValidateConfig(cs ConfigSchema, element string, config map[string]string) []error {
	keys := make([]string, 0, len(config))
	for k := range config {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var errs []error
	for _, key := range keys {
		typ, ok := cs[key]
		if !ok {
			continue
		}
		if err := typ.Validate(config[key]); err != nil {
			errs = append(errs, &Issue{
				Element: element,
				Key:     key,
				Err:     fmt.Errorf("%w: %v", ErrInvalidConfig, err),
			})
		}
	}
	return errs
}
