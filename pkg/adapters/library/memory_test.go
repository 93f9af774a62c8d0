package library_test

import (
	"testing"

	"github.com/aretw0/stencil/pkg/adapters/library"
	"github.com/aretw0/stencil/pkg/domain"
	contract "github.com/aretw0/stencil/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLoader_Contract(t *testing.T) {
	loader := library.NewLoader(map[string]string{
		"quote":  `<blockquote class="quote"></blockquote>`,
		"figure": `<figure class="figure"></figure>`,
	})

	contract.LibraryLoaderContractTest(t, loader, []domain.Template{
		{Name: "figure", Markup: `<figure class="figure"></figure>`},
		{Name: "quote", Markup: `<blockquote class="quote"></blockquote>`},
	})
}

func TestNewFromTemplates(t *testing.T) {
	templates := []domain.Template{
		{Name: "b", Label: "Second", Markup: `<div class="b"></div>`},
		{Name: "a", Label: "First", Markup: `<div class="a"></div>`, Validation: `\S`},
	}

	loader, err := library.NewFromTemplates(templates...)
	require.NoError(t, err)
	contract.LibraryLoaderContractTest(t, loader, templates)
	assert.Equal(t, templates, loader.Templates())

	t.Run("missing name", func(t *testing.T) {
		_, err := library.NewFromTemplates(domain.Template{Markup: "<div></div>"})
		assert.Error(t, err)
	})

	t.Run("duplicate", func(t *testing.T) {
		_, err := library.NewFromTemplates(templates[0], templates[0])
		assert.Error(t, err)
	})
}
