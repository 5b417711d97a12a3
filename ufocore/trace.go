package ufocore

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T returns the package-wide tracer for the whole ufo module, shared by
// every sub-package (glyph, store, fontinfo, groups and the root package).
func T() tracing.Trace {
	return gtrace.CoreTracer
}
