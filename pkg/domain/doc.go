/*
Package domain contains the core domain models of the stencil engine.

It defines the live document tree edited by the host, the closed set of
template element kinds, the library entries templates are loaded from and the
lifecycle events emitted while a document is reconciled. This package is kept
pure and free of I/O, following Hexagonal Architecture principles.

# Key Entities

  - Node: One mutable node of the edited document (type, attributes, children).
  - Document: The host root wrapping all top-level nodes.
  - Kind: The behaviour class of a template element (element, container, ...).
  - Template: A library entry, the markup snippet a schema is built from.
  - LifecycleHooks: Callbacks fired by the dispatcher for observability.
*/
package domain
