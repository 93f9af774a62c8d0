package reconcile_test

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/aretw0/stencil/pkg/domain"
	"github.com/aretw0/stencil/pkg/dsl"
	"github.com/aretw0/stencil/pkg/reconcile"
	"github.com/aretw0/stencil/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConverge_PassCap(t *testing.T) {
	b := dsl.New()
	b.Template("counter")

	// Never reaches a fixed point.
	bump := func(reg *schema.Registry) error {
		return reg.RegisterPostfixer([]domain.Kind{domain.KindElement}, func(_ *schema.Registry, _ *schema.Element, n *domain.Node) (bool, error) {
			v, _ := strconv.Atoi(n.Attributes["data-count"])
			n.SetAttr("data-count", strconv.Itoa(v+1))
			return true, nil
		})
	}
	reg := compile(t, b, bump)

	counter := dsl.N("ck__counter")
	doc := domain.NewDocument(counter)
	changed, err := reconcile.New(reg, reconcile.WithMaxPasses(5)).
		Converge(context.Background(), doc, []*domain.Node{counter})

	assert.True(t, changed)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDidNotConverge)

	var convErr *reconcile.ConvergenceError
	require.True(t, errors.As(err, &convErr))
	assert.Equal(t, 5, convErr.Passes)
	assert.Equal(t, "5", counter.Attributes["data-count"])
}

func TestConverge_StopsWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	b := dsl.New()
	b.Template("counter")
	bump := func(reg *schema.Registry) error {
		return reg.RegisterPostfixer([]domain.Kind{domain.KindElement}, func(_ *schema.Registry, _ *schema.Element, n *domain.Node) (bool, error) {
			v, _ := strconv.Atoi(n.Attributes["data-count"])
			n.SetAttr("data-count", strconv.Itoa(v+1))
			if v+1 == 3 {
				cancel()
			}
			return true, nil
		})
	}
	reg := compile(t, b, bump)

	counter := dsl.N("ck__counter")
	doc := domain.NewDocument(counter)
	_, err := reconcile.New(reg).Converge(ctx, doc, []*domain.Node{counter})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, domain.ErrDidNotConverge)
	assert.Equal(t, "3", counter.Attributes["data-count"])
}

func TestConverge_PostfixerErrorAbortsPass(t *testing.T) {
	errBroken := errors.New("broken invariant")

	b := dsl.New()
	b.Template("list").Container("item")
	b.Template("item")

	var visited []string
	broken := func(reg *schema.Registry) error {
		return reg.RegisterPostfixer([]domain.Kind{domain.KindElement}, func(_ *schema.Registry, el *schema.Element, _ *domain.Node) (bool, error) {
			visited = append(visited, el.Name)
			return false, errBroken
		})
	}
	reg := compile(t, b, broken)

	first, second := dsl.N("ck__item"), dsl.N("ck__item")
	list := dsl.N("ck__list", first, second)
	doc := domain.NewDocument(list)

	_, err := reconcile.New(reg).Converge(context.Background(), doc, []*domain.Node{list})
	require.Error(t, err)
	assert.ErrorIs(t, err, errBroken)

	var pfErr *reconcile.PostfixError
	require.True(t, errors.As(err, &pfErr))
	assert.Equal(t, "ck__item", pfErr.Element)
	assert.Equal(t, []int{0, 1}, pfErr.Path)
	assert.Equal(t, []string{"ck__item"}, visited, "the pass stops at the first failure")
}

func TestWithMaxPasses_IgnoresTooSmallValues(t *testing.T) {
	reg := compile(t, dsl.New())
	doc := domain.NewDocument(dsl.N("p"))

	_, err := reconcile.New(reg, reconcile.WithMaxPasses(0)).Converge(context.Background(), doc, nil)
	assert.NoError(t, err)
}

func TestRegisterDefaults_FrozenRegistry(t *testing.T) {
	reg := schema.NewRegistry()
	require.NoError(t, reg.Freeze())
	assert.ErrorIs(t, reconcile.RegisterDefaults(reg), domain.ErrFrozen)
}
