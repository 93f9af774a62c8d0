// Package markup connects stencil to HTML. It parses template snippets into
// schema source nodes, upcasts external markup into live documents and
// downcasts live documents back into data markup.
package markup
