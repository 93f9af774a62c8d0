package tests

import (
	"errors"
	"testing"

	"github.com/aretw0/stencil/pkg/domain"
	"github.com/aretw0/stencil/pkg/ports"
)

// LibraryLoaderContractTest is a reusable test suite that verifies if an adapter complies with ports.LibraryLoader.
// want lists the expected templates in the order the loader must report them.
func LibraryLoaderContractTest(t *testing.T, loader ports.LibraryLoader, want []domain.Template) {
	t.Helper()

	t.Run("GetTemplate_Success", func(t *testing.T) {
		for _, expected := range want {
			got, err := loader.GetTemplate(expected.Name)
			if err != nil {
				t.Fatalf("unexpected error getting template %s: %v", expected.Name, err)
			}
			if got != expected {
				t.Errorf("template mismatch for %s. got %+v, want %+v", expected.Name, got, expected)
			}
		}
	})

	t.Run("GetTemplate_NotFound", func(t *testing.T) {
		_, err := loader.GetTemplate("non-existent-template")
		if !errors.Is(err, domain.ErrTemplateNotFound) {
			t.Errorf("expected ErrTemplateNotFound, got %v", err)
		}
	})

	t.Run("ListTemplates", func(t *testing.T) {
		names, err := loader.ListTemplates()
		if err != nil {
			t.Fatalf("unexpected error listing templates: %v", err)
		}
		if len(names) != len(want) {
			t.Fatalf("expected %d templates, got %d", len(want), len(names))
		}
		for i, expected := range want {
			if names[i] != expected.Name {
				t.Errorf("template %d: got %s, want %s", i, names[i], expected.Name)
			}
		}
	})
}
