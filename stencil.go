package stencil

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/stencil/internal/logging"
	"github.com/aretw0/stencil/pkg/adapters/markup"
	"github.com/aretw0/stencil/pkg/commands"
	"github.com/aretw0/stencil/pkg/domain"
	"github.com/aretw0/stencil/pkg/observability"
	"github.com/aretw0/stencil/pkg/ports"
	"github.com/aretw0/stencil/pkg/reconcile"
	"github.com/aretw0/stencil/pkg/schema"
	"github.com/aretw0/stencil/pkg/validation"
	"golang.org/x/text/language"
)

// ErrNoLoader is returned by New when no library loader was configured.
var ErrNoLoader = errors.New("a library loader is required")

// ErrUnknownCommand is returned by Execute for a command name it does not know.
var ErrUnknownCommand = errors.New("unknown command")

// Engine is the high-level entry point for the stencil library.
// It owns a frozen registry and the machinery bound to it.
type Engine struct {
	loader     ports.LibraryLoader
	registry   *schema.Registry
	dispatcher *reconcile.Dispatcher
	validator  *validation.Validator
	commands   []commands.Command

	hooks      domain.LifecycleHooks
	logger     *slog.Logger
	maxPasses  int
	postfixers []postfixer
	language   language.Tag
	metrics    *observability.Metrics
	configs    schema.ConfigSchema
	merge      bool
}

type postfixer struct {
	kinds []domain.Kind
	fn    schema.Postfixer
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLoader sets the template library the engine compiles.
func WithLoader(l ports.LibraryLoader) Option {
	return func(e *Engine) {
		e.loader = l
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// WithMetrics records reconciliation passes and repairs into m.
func WithMetrics(m *observability.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// WithMaxPasses bounds the passes of a single convergence.
func WithMaxPasses(n int) Option {
	return func(e *Engine) {
		e.maxPasses = n
	}
}

// WithPostfixer appends a custom postfixer for kinds. It runs after the
// built-in postfixers of the same kind.
func WithPostfixer(kinds []domain.Kind, fn schema.Postfixer) Option {
	return func(e *Engine) {
		e.postfixers = append(e.postfixers, postfixer{kinds: kinds, fn: fn})
	}
}

// WithLanguage selects the language of validation messages.
func WithLanguage(tag language.Tag) Option {
	return func(e *Engine) {
		e.language = tag
	}
}

// WithConfigSchema replaces the types of the schema configuration attributes.
func WithConfigSchema(cs schema.ConfigSchema) Option {
	return func(e *Engine) {
		e.configs = cs
	}
}

// WithMerge enables merge support: conflict elements for every text element
// and the added and removed markers on top-level templates.
func WithMerge() Option {
	return func(e *Engine) {
		e.merge = true
	}
}

// New compiles the configured template library into a frozen registry.
func New(opts ...Option) (*Engine, error) {
	eng := &Engine{
		language: language.English,
		configs:  schema.DefaultConfigSchema,
	}
	for _, opt := range opts {
		opt(eng)
	}
	if eng.loader == nil {
		return nil, ErrNoLoader
	}
	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}
	if eng.metrics != nil {
		eng.hooks = eng.hooks.Merge(eng.metrics.Hooks())
	}

	reg, err := eng.compile()
	if err != nil {
		return nil, err
	}
	eng.registry = reg

	eng.dispatcher = reconcile.New(reg,
		reconcile.WithLogger(eng.logger),
		reconcile.WithLifecycleHooks(eng.hooks),
		reconcile.WithMaxPasses(eng.maxPasses),
	)

	eng.validator, err = validation.New(reg, validation.WithLanguage(eng.language))
	if err != nil {
		return nil, err
	}

	eng.commands = commands.All(reg)

	eng.logger.Debug("Engine ready", "elements", len(reg.All()), "templates", len(reg.Roots()))
	return eng, nil
}

func (e *Engine) compile() (*schema.Registry, error) {
	configs := e.configs
	if src, ok := e.loader.(ports.ConfigTypeSource); ok {
		types, err := schema.ParseTypeMap(src.ConfigTypes())
		if err != nil {
			return nil, fmt.Errorf("invalid config types: %w", err)
		}
		configs = configs.Extend(types)
	}
	reg := schema.NewRegistry().WithConfigSchema(configs)

	names, err := e.loader.ListTemplates()
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	for _, name := range names {
		t, err := e.loader.GetTemplate(name)
		if err != nil {
			return nil, err
		}
		if _, err := reg.RegisterTemplate(t, markup.ParseSnippet); err != nil {
			return nil, err
		}
	}

	if err := reconcile.RegisterDefaults(reg); err != nil {
		return nil, err
	}
	if e.merge {
		if err := reg.EnableMerge(); err != nil {
			return nil, err
		}
	}
	for _, p := range e.postfixers {
		if err := reg.RegisterPostfixer(p.kinds, p.fn); err != nil {
			return nil, err
		}
	}
	if err := reg.Freeze(); err != nil {
		e.logger.Error("Invalid template library", "err", err)
		return nil, err
	}
	return reg, nil
}

// Registry returns the frozen schema registry.
func (e *Engine) Registry() *schema.Registry {
	return e.registry
}

// Loader returns the library loader the engine was compiled from.
func (e *Engine) Loader() ports.LibraryLoader {
	return e.loader
}

// Inspect returns every schema element in registration order.
func (e *Engine) Inspect() []*schema.Element {
	return e.registry.All()
}

// Instantiate creates a detached node of the named element, canonical or
// given as a top-level template name.
func (e *Engine) Instantiate(name string) (*domain.Node, error) {
	if _, ok := e.registry.ByName(name); !ok {
		name = schema.RootPrefix + name
	}
	return e.registry.Instantiate(name)
}

// Reconcile runs a single pass over the changed nodes.
func (e *Engine) Reconcile(ctx context.Context, changed []*domain.Node) (bool, error) {
	return e.dispatcher.Reconcile(ctx, changed)
}

// Converge reconciles the changed nodes and then the whole document until it
// stops changing.
func (e *Engine) Converge(ctx context.Context, doc *domain.Document, changed []*domain.Node) (bool, error) {
	return e.dispatcher.Converge(ctx, doc, changed)
}

// Sync converges doc after an edit made outside of the engine. before is a
// snapshot of the document root taken before the edit; the structural
// differences between both trees become the changed set.
func (e *Engine) Sync(ctx context.Context, doc *domain.Document, before *domain.Node) (bool, error) {
	changes := domain.Diff(before, doc.Root)
	changed := domain.Affected(doc.Root, changes)
	e.logger.Debug("Synchronizing edit", "changes", len(changes), "affected", len(changed))
	return e.Converge(ctx, doc, changed)
}

// Commands returns the editing commands enabled for sel.
func (e *Engine) Commands(sel commands.Selection) []commands.Command {
	var out []commands.Command
	for _, c := range e.commands {
		if c.Enabled(sel) {
			out = append(out, c)
		}
	}
	return out
}

// Command returns the named editing command.
func (e *Engine) Command(name string) (commands.Command, bool) {
	for _, c := range e.commands {
		if c.Name() == name {
			return c, true
		}
	}
	return nil, false
}

// Execute runs the named command on doc and converges the nodes it touched.
func (e *Engine) Execute(ctx context.Context, doc *domain.Document, name string, sel commands.Selection, args commands.Args) (commands.Result, error) {
	c, ok := e.Command(name)
	if !ok {
		return commands.Result{}, fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}
	res, err := c.Execute(sel, args)
	if err != nil {
		return res, err
	}
	e.logger.Debug("Executed command", "command", name, "changed", len(res.Changed))
	if _, err := e.Converge(ctx, doc, res.Changed); err != nil {
		return res, err
	}
	return res, nil
}

// Import upcasts host markup into a live document and converges it.
func (e *Engine) Import(ctx context.Context, html string) (*domain.Document, error) {
	doc, err := markup.Import(e.registry, html)
	if err != nil {
		return nil, err
	}
	if _, err := e.Converge(ctx, doc, doc.Root.Children()); err != nil {
		return doc, err
	}
	return doc, nil
}

// Export downcasts doc into markup carrying only user data.
func (e *Engine) Export(doc *domain.Document) (string, error) {
	return markup.Export(e.registry, doc)
}

// Validate runs the text limit and required rules over doc.
func (e *Engine) Validate(doc *domain.Document) []validation.Finding {
	return e.validator.Validate(doc)
}
