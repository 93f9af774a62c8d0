package observability_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/stencil/pkg/domain"
	"github.com/aretw0/stencil/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func emit(hooks domain.LifecycleHooks) {
	ctx := context.Background()
	t0 := time.Unix(0, 0)

	hooks.OnPassStart(ctx, &domain.PassEvent{EventBase: domain.EventBase{Timestamp: t0}, Pass: 1, Scope: domain.ScopeChanged})
	hooks.OnRepair(ctx, &domain.RepairEvent{Pass: 1, Element: "ck__list", Kind: domain.KindContainer, Path: []int{0}})
	hooks.OnRepair(ctx, &domain.RepairEvent{Pass: 1, Element: "ck__list", Kind: domain.KindContainer, Path: []int{1}})
	hooks.OnPassEnd(ctx, &domain.PassEvent{EventBase: domain.EventBase{Timestamp: t0.Add(time.Millisecond)}, Pass: 1, Scope: domain.ScopeChanged, Visited: 3, Changed: true})

	hooks.OnPassStart(ctx, &domain.PassEvent{EventBase: domain.EventBase{Timestamp: t0}, Pass: 2, Scope: domain.ScopeDocument})
	hooks.OnPassEnd(ctx, &domain.PassEvent{EventBase: domain.EventBase{Timestamp: t0}, Pass: 2, Scope: domain.ScopeDocument, Visited: 5})
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	emit(m.Hooks())

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Passes.WithLabelValues("changed", "true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Passes.WithLabelValues("document", "false")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Repairs.WithLabelValues("ck__list", "container")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.Visited))
	assert.Equal(t, 2, testutil.CollectAndCount(m.PassDuration))

	expected := `
# HELP stencil_repairs_total Total number of nodes repaired
# TYPE stencil_repairs_total counter
stencil_repairs_total{element="ck__list",kind="container"} 2
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "stencil_repairs_total"))
}

func TestNewMetrics_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	_, err = observability.NewMetrics(reg)
	assert.Error(t, err)

	_, err = observability.NewMetrics(nil)
	assert.NoError(t, err)
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	emit(observability.LogHooks(logger))

	out := buf.String()
	assert.Equal(t, 2, strings.Count(out, "msg=pass_start"))
	assert.Equal(t, 2, strings.Count(out, "msg=repair"))
	assert.Contains(t, out, "element=ck__list")
	assert.Contains(t, out, "visited=5")
}
