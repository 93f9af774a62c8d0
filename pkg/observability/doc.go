/*
Package observability provides tools for monitoring the stencil engine.

It turns reconciliation lifecycle hooks into Prometheus metrics and
structured log records. Both plug into the engine through
domain.LifecycleHooks and can be merged with caller hooks.
*/
package observability
