package reconcile

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/stencil/internal/logging"
	"github.com/aretw0/stencil/pkg/domain"
	"github.com/aretw0/stencil/pkg/schema"
)

// DefaultMaxPasses bounds the passes of a single Converge call.
const DefaultMaxPasses = 64

// ConvergenceError is returned when the document still changed after the
// maximum number of passes.
type ConvergenceError struct {
	Passes int
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("%s after %d passes", domain.ErrDidNotConverge, e.Passes)
}

func (e *ConvergenceError) Unwrap() error { return domain.ErrDidNotConverge }

// PostfixError wraps a postfixer failure with the node it was repairing.
// The pass that produced it is aborted.
type PostfixError struct {
	Element string
	Path    []int
	Err     error
}

func (e *PostfixError) Error() string {
	return fmt.Sprintf("postfix %s at %v: %v", e.Element, e.Path, e.Err)
}

func (e *PostfixError) Unwrap() error { return e.Err }

// Dispatcher visits live nodes and repairs them against a frozen registry.
type Dispatcher struct {
	reg       *schema.Registry
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
	maxPasses int
}

// Option configures the Dispatcher.
type Option func(*Dispatcher)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(d *Dispatcher) {
		d.hooks = hooks
	}
}

// WithMaxPasses bounds the passes of Converge. Values below 2 are ignored,
// since a converging run needs the changed pass and one clean document pass.
func WithMaxPasses(n int) Option {
	return func(d *Dispatcher) {
		if n >= 2 {
			d.maxPasses = n
		}
	}
}

// New creates a Dispatcher bound to reg.
func New(reg *schema.Registry, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		reg:       reg,
		logger:    logging.NewNop(),
		maxPasses: DefaultMaxPasses,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Registry returns the registry the dispatcher repairs against.
func (d *Dispatcher) Registry() *schema.Registry { return d.reg }

// Reconcile runs a single pass over the changed nodes and their subtrees.
// Unresolved nodes are left untouched. It reports whether anything changed.
func (d *Dispatcher) Reconcile(ctx context.Context, changed []*domain.Node) (bool, error) {
	return d.pass(ctx, 1, domain.ScopeChanged, changed)
}

// Converge reconciles the changed nodes and then the whole document until a
// document pass reports no change. Changed nodes no longer attached to the
// document are skipped. Cancelling ctx stops the loop before the next pass.
func (d *Dispatcher) Converge(ctx context.Context, doc *domain.Document, changed []*domain.Node) (bool, error) {
	var live []*domain.Node
	for _, n := range changed {
		if attached(doc.Root, n) {
			live = append(live, n)
		}
	}

	result, err := d.pass(ctx, 1, domain.ScopeChanged, live)
	if err != nil {
		return result, err
	}
	for pass := 2; pass <= d.maxPasses; pass++ {
		step, err := d.pass(ctx, pass, domain.ScopeDocument, []*domain.Node{doc.Root})
		if err != nil {
			return result, err
		}
		if !step {
			return result, nil
		}
		result = true
	}

	err = &ConvergenceError{Passes: d.maxPasses}
	d.logger.Error("Reconciliation did not converge", "passes", d.maxPasses, "err", err)
	return result, err
}

// passState holds the counters of one pass.
type passState struct {
	number  int
	scope   domain.PassScope
	visited int
}

func (d *Dispatcher) pass(ctx context.Context, number int, scope domain.PassScope, roots []*domain.Node) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("pass %d: %w", number, err)
	}
	if d.hooks.OnPassStart != nil {
		d.hooks.OnPassStart(ctx, &domain.PassEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventPassStart},
			Pass:      number,
			Scope:     scope,
		})
	}

	v := &passState{number: number, scope: scope}
	changed := false
	for _, n := range roots {
		step, err := d.visit(ctx, v, n)
		if err != nil {
			d.logger.Debug("Reconciliation pass aborted", "pass", number, "scope", scope, "err", err)
			return changed, err
		}
		changed = changed || step
	}

	d.logger.Debug("Reconciliation pass", "pass", number, "scope", scope, "visited", v.visited, "changed", changed)
	if d.hooks.OnPassEnd != nil {
		d.hooks.OnPassEnd(ctx, &domain.PassEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventPassEnd},
			Pass:      number,
			Scope:     scope,
			Visited:   v.visited,
			Changed:   changed,
		})
	}
	return changed, nil
}

func (d *Dispatcher) visit(ctx context.Context, v *passState, n *domain.Node) (bool, error) {
	el, ok := d.reg.Resolve(n)
	if !ok {
		if v.scope != domain.ScopeDocument {
			return false, nil
		}
		// Host content is opaque, but may hold template instances.
		changed := false
		for _, c := range n.Children() {
			step, err := d.visit(ctx, v, c)
			if err != nil {
				return changed, err
			}
			changed = changed || step
		}
		return changed, nil
	}
	v.visited++

	changed := applyDefaults(el, n)
	for _, fn := range d.reg.Postfixers(el.Kind) {
		step, err := fn(d.reg, el, n)
		if err != nil {
			return changed, &PostfixError{Element: el.Name, Path: n.Path(), Err: err}
		}
		changed = changed || step
	}
	if changed {
		d.repaired(ctx, v, el, n)
	}

	for _, c := range n.Children() {
		step, err := d.visit(ctx, v, c)
		if err != nil {
			return changed, err
		}
		changed = changed || step
	}
	return changed, nil
}

func (d *Dispatcher) repaired(ctx context.Context, v *passState, el *schema.Element, n *domain.Node) {
	path := n.Path()
	d.logger.Debug("Repaired node", "pass", v.number, "element", el.Name, "kind", el.Kind, "path", path)
	if d.hooks.OnRepair != nil {
		d.hooks.OnRepair(ctx, &domain.RepairEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventRepair},
			Pass:      v.number,
			Element:   el.Name,
			Kind:      el.Kind,
			Path:      path,
		})
	}
}

// applyDefaults sets every non-empty default attribute that is missing or empty.
func applyDefaults(el *schema.Element, n *domain.Node) bool {
	changed := false
	for k, v := range el.Defaults() {
		if cur, ok := n.Attr(k); ok && cur != "" {
			continue
		}
		n.SetAttr(k, v)
		changed = true
	}
	return changed
}

func attached(root, n *domain.Node) bool {
	for cur := n; cur != nil; cur = cur.Parent() {
		if cur == root {
			return true
		}
	}
	return false
}
