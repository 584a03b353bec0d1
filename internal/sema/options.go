package sema

import (
	"eidos/internal/dsl"
	"eidos/internal/source"
	"eidos/internal/stdlib"
	"eidos/internal/trace"
)

// Options configure both passes. The zero value uses the built-in library
// catalog, the default extension registry and no tracing.
type Options struct {
	Catalog    *stdlib.Catalog
	Extensions *dsl.Registry
	Tracer     trace.Tracer
	ParentSpan uint64

	// Strings is the interner for symbol names; a fresh one when nil.
	Strings *source.Interner
	// NoWarnings skips the unused and unreachable reports.
	NoWarnings bool
}

func (o Options) withDefaults() Options {
	if o.Catalog == nil {
		o.Catalog = stdlib.Builtin()
	}
	if o.Extensions == nil {
		o.Extensions = dsl.Default
	}
	if o.Tracer == nil {
		o.Tracer = trace.Nop
	}
	return o
}
