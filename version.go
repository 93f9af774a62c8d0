package stencil

import _ "embed"

// Version is the release of the stencil module.
//
//go:embed VERSION
var Version string
