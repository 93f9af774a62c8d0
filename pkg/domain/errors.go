package domain

import "errors"

// ErrUnknownKind is returned when a type marker does not name a known Kind.
var ErrUnknownKind = errors.New("unknown element kind")

// ErrFrozen is returned when a registry is mutated after it was frozen.
var ErrFrozen = errors.New("registry is frozen")

// ErrDidNotConverge is returned when reconciliation exceeds its pass budget.
var ErrDidNotConverge = errors.New("reconciliation did not converge")

// ErrNotApplicable is returned when a command is executed against a selection it does not apply to.
var ErrNotApplicable = errors.New("command not applicable to selection")

// ErrUnresolved is returned when a name does not resolve to a registered element.
var ErrUnresolved = errors.New("unresolved element name")

// ErrTemplateNotFound is returned by library loaders for unknown template names.
var ErrTemplateNotFound = errors.New("template not found")
