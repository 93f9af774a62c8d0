package domain

// Template is one entry of a template library.
// Markup holds the declarative snippet the schema is built from.
type Template struct {
	Name       string `json:"name" yaml:"name" mapstructure:"name"`
	Label      string `json:"label,omitempty" yaml:"label,omitempty" mapstructure:"label"`
	Icon       string `json:"icon,omitempty" yaml:"icon,omitempty" mapstructure:"icon"`
	Markup     string `json:"template" yaml:"template" mapstructure:"template"`
	Validation string `json:"validation,omitempty" yaml:"validation,omitempty" mapstructure:"validation"`
}
