package reconcile_test

import (
	"context"
	"testing"

	"github.com/aretw0/stencil/pkg/domain"
	"github.com/aretw0/stencil/pkg/dsl"
	"github.com/aretw0/stencil/pkg/reconcile"
	"github.com/aretw0/stencil/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// compile registers the built templates with the default postfixers plus
// extra ones and freezes the registry.
func compile(t *testing.T, b *dsl.Builder, extra ...func(*schema.Registry) error) *schema.Registry {
	t.Helper()
	reg := schema.NewRegistry()
	require.NoError(t, b.Register(reg))
	require.NoError(t, reconcile.RegisterDefaults(reg))
	for _, fn := range extra {
		require.NoError(t, fn(reg))
	}
	require.NoError(t, reg.Freeze())
	return reg
}

func converge(t *testing.T, reg *schema.Registry, doc *domain.Document, changed ...*domain.Node) bool {
	t.Helper()
	ch, err := reconcile.New(reg).Converge(context.Background(), doc, changed)
	require.NoError(t, err)
	return ch
}

func library() *dsl.Builder {
	b := dsl.New()
	b.Template("a").Class("a").Attr("data-kind", "a")
	b.Template("b").Class("b")
	b.Template("parent").
		Slot("nested").Attr("data-role", "nested")
	b.Template("pair").
		Slot("first").End().
		Slot("second")
	b.Template("container").Container("a", "b")
	b.Template("gallery_one").Gallery("a")
	b.Template("gallery_many").Gallery("a", "b")
	b.Template("tabs").Tabs("b", "a")
	return b
}

func TestForeignChildIsReplaced(t *testing.T) {
	reg := compile(t, library())
	parent := dsl.N("ck__parent", dsl.N("ck__b"))
	doc := domain.NewDocument(parent)

	assert.True(t, converge(t, reg, doc, parent))

	require.Equal(t, 1, parent.Len())
	nested := parent.Child(0)
	assert.Equal(t, "ck__parent__nested", nested.Type)
	assert.Equal(t, map[string]string{"data-role": "nested"}, nested.Attributes)
}

func TestContainerItemsAreSeparatedByPlaceholders(t *testing.T) {
	reg := compile(t, library())
	container := dsl.N("ck__container", dsl.N("ck__a"), dsl.N("ck__a"), dsl.N("ck__a"))
	doc := domain.NewDocument(container)

	assert.True(t, converge(t, reg, doc, container))

	p := "ck__container__placeholder"
	assert.Equal(t, []string{p, "ck__a", p, "ck__a", p, "ck__a", p}, dsl.Types(container.Children()))
}

func TestPlaceholderRunsCollapse(t *testing.T) {
	reg := compile(t, library())
	p := "ck__container__placeholder"
	container := dsl.N("ck__container", dsl.N(p), dsl.N(p))
	doc := domain.NewDocument(container)

	assert.True(t, converge(t, reg, doc, container))
	assert.Equal(t, []string{p}, dsl.Types(container.Children()))
}

func TestSlotOrderRestoredWithoutMixingAttributes(t *testing.T) {
	reg := compile(t, library())
	second := dsl.A("ck__pair__second", []string{"data-id", "2"})
	first := dsl.A("ck__pair__first", []string{"data-id", "1"})
	pair := dsl.N("ck__pair", second, first)
	doc := domain.NewDocument(pair)

	assert.True(t, converge(t, reg, doc, pair))

	require.Equal(t, 2, pair.Len())
	assert.Same(t, first, pair.Child(0))
	assert.Same(t, second, pair.Child(1))
	assert.Equal(t, "1", first.Attributes["data-id"])
	assert.Equal(t, "2", second.Attributes["data-id"])
}

func TestContainerInterleaving(t *testing.T) {
	p := "ck__container__placeholder"
	tests := []struct {
		name     string
		children []string
		want     []string
	}{
		{"empty", nil, []string{p}},
		{"single item", []string{"ck__a"}, []string{p, "ck__a", p}},
		{"leading and trailing runs", []string{p, p, "ck__a", "ck__b", p, p, p}, []string{p, "ck__a", p, "ck__b", p}},
		{"already valid", []string{p, "ck__b", p}, []string{p, "ck__b", p}},
		{"items outside contains are kept", []string{"ck__parent"}, []string{p, "ck__parent", p}},
		{"foreign placeholders are dropped", []string{"ck__gallery_many__placeholder", "ck__a"}, []string{p, "ck__a", p}},
		{"only foreign placeholders", []string{"ck__gallery_many__placeholder"}, []string{p}},
	}

	reg := compile(t, library())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			container := dsl.N("ck__container")
			for _, typ := range tt.children {
				container.Append(dsl.N(typ))
			}
			doc := domain.NewDocument(container)
			converge(t, reg, doc, container)

			got := dsl.Types(container.Children())
			assert.Equal(t, tt.want, got)
			for i := 1; i < len(got); i++ {
				assert.False(t, got[i] == p && got[i-1] == p, "adjacent placeholders at %d", i)
			}
		})
	}
}

func TestGalleryFill(t *testing.T) {
	reg := compile(t, library())

	t.Run("single item type", func(t *testing.T) {
		g := dsl.N("ck__gallery_one")
		converge(t, reg, domain.NewDocument(g), g)
		assert.Equal(t, []string{"ck__a"}, dsl.Types(g.Children()))
		assert.Equal(t, "a", g.Child(0).Attributes["data-kind"])
	})

	t.Run("several item types", func(t *testing.T) {
		g := dsl.N("ck__gallery_many")
		converge(t, reg, domain.NewDocument(g), g)
		assert.Equal(t, []string{"ck__gallery_many__placeholder"}, dsl.Types(g.Children()))
	})

	t.Run("items are not interleaved", func(t *testing.T) {
		g := dsl.N("ck__gallery_many", dsl.N("ck__a"), dsl.N("ck__b"))
		converge(t, reg, domain.NewDocument(g), g)
		assert.Equal(t, []string{"ck__a", "ck__b"}, dsl.Types(g.Children()))
	})
}

func TestTabsFill(t *testing.T) {
	reg := compile(t, library())
	tabs := dsl.N("ck__tabs")
	converge(t, reg, domain.NewDocument(tabs), tabs)
	assert.Equal(t, []string{"ck__b"}, dsl.Types(tabs.Children()))
}

func TestIdempotence(t *testing.T) {
	reg := compile(t, library())
	docs := map[string]*domain.Document{
		"mixed": domain.NewDocument(
			dsl.N("ck__container", dsl.N("ck__pair"), dsl.N("ck__a")),
			dsl.N("ck__gallery_one"),
			dsl.N("ck__pair", dsl.N("ck__b")),
		),
		"empty": domain.NewDocument(),
		"host only": domain.NewDocument(dsl.N("p", dsl.N("span"))),
	}

	for name, doc := range docs {
		t.Run(name, func(t *testing.T) {
			converge(t, reg, doc, doc.Root.Children()...)
			snapshot := doc.Root.Clone()

			assert.False(t, converge(t, reg, doc, doc.Root.Children()...))
			assert.True(t, snapshot.Equal(doc.Root))
		})
	}
}

func TestAttributeDefaults(t *testing.T) {
	reg := compile(t, library())

	empty := dsl.A("ck__a", []string{"data-kind", ""})
	custom := dsl.A("ck__a", []string{"data-kind", "custom", "data-extra", "x"})
	doc := domain.NewDocument(empty, custom)
	converge(t, reg, doc, empty, custom)

	assert.Equal(t, "a", empty.Attributes["data-kind"])
	assert.Equal(t, map[string]string{"data-kind": "custom", "data-extra": "x"}, custom.Attributes)
}

func TestHostContent(t *testing.T) {
	reg := compile(t, library())

	t.Run("document passes reach templates below host nodes", func(t *testing.T) {
		container := dsl.N("ck__container")
		host := dsl.A("p", []string{"class", "lead"}, container)
		doc := domain.NewDocument(host)

		assert.True(t, converge(t, reg, doc))
		assert.Equal(t, []string{"ck__container__placeholder"}, dsl.Types(container.Children()))
		assert.Equal(t, map[string]string{"class": "lead"}, host.Attributes)
	})

	t.Run("changed host nodes are opaque", func(t *testing.T) {
		container := dsl.N("ck__container")
		host := dsl.N("p", container)

		changed, err := reconcile.New(reg).Reconcile(context.Background(), []*domain.Node{host})
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Zero(t, container.Len())
	})
}

func TestDetachedChangedNodesAreSkipped(t *testing.T) {
	reg := compile(t, library())
	doc := domain.NewDocument()
	orphan := dsl.N("ck__container")

	assert.False(t, converge(t, reg, doc, orphan))
	assert.Zero(t, orphan.Len())
}

func TestSynthesizedSlotsAreRepairedInTheSamePass(t *testing.T) {
	b := dsl.New()
	b.Template("card").
		Slot("header").
		Slot("title").Text().End().
		End().
		Slot("items").Container("item")
	b.Template("item")
	reg := compile(t, b)

	card := dsl.N("ck__card")
	changed, err := reconcile.New(reg).Reconcile(context.Background(), []*domain.Node{card})
	require.NoError(t, err)
	assert.True(t, changed)

	assert.Equal(t, []string{"ck__card__header", "ck__card__items"}, dsl.Types(card.Children()))
	assert.Equal(t, []string{"ck__card__header__title"}, dsl.Types(card.Child(0).Children()))
	assert.Equal(t, []string{"ck__card__items__placeholder"}, dsl.Types(card.Child(1).Children()))
}

func TestLifecycleHooks(t *testing.T) {
	reg := compile(t, library())

	var starts, ends []domain.PassEvent
	var repairs []string
	hooks := domain.LifecycleHooks{
		OnPassStart: func(_ context.Context, e *domain.PassEvent) { starts = append(starts, *e) },
		OnPassEnd:   func(_ context.Context, e *domain.PassEvent) { ends = append(ends, *e) },
		OnRepair:    func(_ context.Context, e *domain.RepairEvent) { repairs = append(repairs, e.Element) },
	}

	container := dsl.N("ck__container", dsl.N("ck__a"))
	doc := domain.NewDocument(container)
	changed, err := reconcile.New(reg, reconcile.WithLifecycleHooks(hooks)).
		Converge(context.Background(), doc, []*domain.Node{container})
	require.NoError(t, err)
	assert.True(t, changed)

	require.Len(t, starts, 2)
	require.Len(t, ends, 2)
	assert.Equal(t, domain.ScopeChanged, starts[0].Scope)
	assert.Equal(t, domain.ScopeDocument, starts[1].Scope)
	assert.True(t, ends[0].Changed)
	assert.False(t, ends[1].Changed)
	assert.Equal(t, 4, ends[1].Visited)
	// The container gains placeholders; the item gains its default attribute.
	assert.Equal(t, []string{"ck__container", "ck__a"}, repairs)
}

func TestConflictRepair(t *testing.T) {
	b := dsl.New()
	b.Template("teaser").Slot("title").Text()
	reg := schema.NewRegistry()
	require.NoError(t, b.Register(reg))
	require.NoError(t, reconcile.RegisterDefaults(reg))
	require.NoError(t, reg.EnableMerge())
	require.NoError(t, reg.Freeze())

	const (
		title    = "ck__teaser__title"
		conflict = title + "__conflict"
		option   = conflict + "__option"
	)

	t.Run("a conflict is seated in the slot of its text element", func(t *testing.T) {
		wrapper := dsl.N(conflict, dsl.N(option, dsl.T(title, "a")), dsl.N(option, dsl.T(title, "b")))
		teaser := dsl.N("ck__teaser", dsl.N("ck__b"), wrapper)
		converge(t, reg, domain.NewDocument(teaser), teaser)

		assert.Equal(t, []*domain.Node{wrapper}, teaser.Children())
		assert.Equal(t, []string{option, option}, dsl.Types(wrapper.Children()))
	})

	t.Run("foreign children are dropped and empty parts filled", func(t *testing.T) {
		extra := dsl.T(title, "second")
		wrapper := dsl.N(conflict, dsl.N("span"), dsl.N(option, dsl.T(title, "first"), extra), dsl.N(option))
		teaser := dsl.N("ck__teaser", wrapper)
		converge(t, reg, domain.NewDocument(teaser), teaser)

		require.Equal(t, []string{option, option}, dsl.Types(wrapper.Children()))
		assert.Equal(t, []string{title}, dsl.Types(wrapper.Child(0).Children()))
		assert.Equal(t, "first", wrapper.Child(0).Child(0).Text)
		assert.Nil(t, extra.Parent())
		assert.Equal(t, []string{title}, dsl.Types(wrapper.Child(1).Children()))
	})

	t.Run("an empty conflict gets one option", func(t *testing.T) {
		wrapper := dsl.N(conflict)
		teaser := dsl.N("ck__teaser", wrapper)
		converge(t, reg, domain.NewDocument(teaser), teaser)
		assert.Equal(t, []string{option}, dsl.Types(wrapper.Children()))
		assert.Equal(t, []string{title}, dsl.Types(wrapper.Child(0).Children()))
	})
}

func TestTextConstraintSlots(t *testing.T) {
	b := dsl.New()
	b.Template("field").TextConstraint().Max(10).
		Slot("hint").Text()
	reg := compile(t, b)

	field := dsl.T("ck__field", "value")
	converge(t, reg, domain.NewDocument(field), field)
	assert.Equal(t, []string{"ck__field__hint"}, dsl.Types(field.Children()))
	assert.Equal(t, "value", field.Text)
}
