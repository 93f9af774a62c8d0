package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aretw0/stencil"
	"github.com/aretw0/stencil/pkg/adapters/library"
	"github.com/aretw0/stencil/pkg/observability"
)

// Options carries the persistent flags shared by every command.
type Options struct {
	// Library is a library file or a directory holding one.
	Library   string
	LogLevel  string
	MaxPasses int
	// Trace logs every reconciliation event at Info level.
	Trace bool
	// Merge enables conflict elements for merged documents.
	Merge bool
}

// libraryNames are tried, in order, when Options.Library is a directory.
var libraryNames = []string{"stencil.yaml", "stencil.yml", "stencil.json", "templates.yaml", "templates.yml", "templates.json"}

// CreateEngine initializes a stencil engine with standard CLI conventions.
func CreateEngine(opts Options, logger *slog.Logger, extra ...stencil.Option) (*stencil.Engine, error) {
	path, err := ResolveLibrary(opts.Library)
	if err != nil {
		return nil, err
	}
	loader, err := library.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error loading library: %w", err)
	}

	engineOpts := []stencil.Option{
		stencil.WithLoader(loader),
		stencil.WithLogger(logger.With("library", filepath.Base(path))),
		stencil.WithMaxPasses(opts.MaxPasses),
	}
	if opts.Merge {
		engineOpts = append(engineOpts, stencil.WithMerge())
	}
	if opts.Trace {
		engineOpts = append(engineOpts, stencil.WithLifecycleHooks(observability.LogHooks(logger)))
	}
	engineOpts = append(engineOpts, extra...)

	engine, err := stencil.New(engineOpts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}
	return engine, nil
}

// ResolveLibrary returns the library file designated by path. A directory is
// searched for a conventional library file name.
func ResolveLibrary(path string) (string, error) {
	if path == "" {
		path = "."
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return path, nil
	}
	for _, name := range libraryNames {
		candidate := filepath.Join(path, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no library file found in %s (tried %v)", path, libraryNames)
}
