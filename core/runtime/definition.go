package runtime

import (
	"context"

	"github.com/dmitrymomot/postcard/core/i18n"
)

// RenderFunc produces the node tree for one component instance. It is called
// once per instantiation with a scope holding the instance's props, slot
// content and translator. Implementations must not retain the scope.
type RenderFunc func(ctx context.Context, scope *Scope) (*Node, error)

// Definition is an executable component: the compiled render closure plus
// the metadata the runtime needs to expand and style it. Definitions are
// immutable after compilation and safe to share across concurrent renders.
type Definition struct {
	// Name is the canonical component name used for registry lookups.
	Name string

	// Filename is the source the component was compiled from, kept for
	// diagnostics only.
	Filename string

	// Render produces the component's node tree.
	Render RenderFunc

	// Style is the component's CSS payload, already scoped when the source
	// asked for scoping. Collected once per render across all used
	// definitions.
	Style string

	// ScopeID is the style-scoping discriminator, empty for unscoped
	// components. Elements rendered by this definition carry a
	// data-pc-<ScopeID> attribute matching the rewritten selectors.
	ScopeID string

	// Bindings lists the component's script binding names in evaluation
	// order. Metadata only; evaluation happens inside Render.
	Bindings []string
}

// Scope carries the per-instance inputs a render function evaluates against.
type Scope struct {
	// Props is the instance's property bag. Values are native Go values:
	// strings, bools, numbers, []any, map[string]any.
	Props map[string]any

	// Slot holds the caller's children, already rendered, for <slot/>
	// projection. Nil when the instance has no slot content.
	Slot []*Node

	// Translator resolves t/tn lookups. Nil when no localization is
	// configured for the render.
	Translator *i18n.Translator
}

// T resolves a message key, falling back to the key itself when no
// translator is installed.
func (s *Scope) T(key string, placeholders ...i18n.M) string {
	if s == nil || s.Translator == nil {
		return key
	}
	return s.Translator.T(key, placeholders...)
}

// Tn resolves a pluralized message key, falling back to the key itself when
// no translator is installed.
func (s *Scope) Tn(key string, n int, placeholders ...i18n.M) string {
	if s == nil || s.Translator == nil {
		return key
	}
	return s.Translator.Tn(key, n, placeholders...)
}

// Locale reports the active locale, empty when no translator is installed.
func (s *Scope) Locale() string {
	if s == nil || s.Translator == nil {
		return ""
	}
	return s.Translator.Locale()
}
