package ports

import "github.com/aretw0/stencil/pkg/domain"

// LibraryLoader defines how the engine retrieves template definitions.
// This allows the library source (files, memory, generated code) to be decoupled.
type LibraryLoader interface {
	// GetTemplate retrieves one template by name.
	// It returns an error wrapping domain.ErrTemplateNotFound for unknown names.
	GetTemplate(name string) (domain.Template, error)

	// ListTemplates returns the names of every template, in registration order.
	// Templates are registered in this order, which decides host matching ties.
	ListTemplates() ([]string, error)
}

// ConfigTypeSource is implemented by loaders whose library declares types for
// custom configuration attributes, as type names understood by
// schema.ParseType keyed by attribute name.
type ConfigTypeSource interface {
	ConfigTypes() map[string]string
}
