// Package runtime hosts compiled components for a single render pass.
//
// A Definition is an executable component: a render closure produced by the
// compiler plus style payload, scope id and binding metadata. Definitions
// are immutable and safe to share; all mutable state for a render lives in
// an App, which is built per call and discarded afterwards.
//
// # Rendering
//
// An App is constructed with a root definition and a registry of available
// components, then rendered exactly once:
//
//	app := runtime.NewApp(root,
//		runtime.WithComponents(builtins...),
//		runtime.WithProps(map[string]any{"name": "John"}),
//	)
//	app.Register(custom) // last registration wins
//
//	doc, err := app.RenderHTML(ctx)
//
// RenderHTML runs the root's render closure, walks the produced node tree
// and replaces every element whose tag resolves in the registry with the
// expanded component instance. A component element's attributes become the
// instance's props and its children, expanded in the caller's context,
// become the slot content. Nesting is depth-capped to break definition
// cycles, and the context is honored between component expansions.
//
// Tags that resolve to neither a component nor a standard HTML element are
// passed through with a warning, or rejected with ErrUnknownComponent when
// the App is strict.
//
// # Styles
//
// Styles of every definition used during the render are collected once
// each, root first, and injected as a single <style> element into the
// document head, or prepended when the document has none.
//
// # Serialization
//
// Trees serialize with HTML-escaped text and attributes, raw nodes written
// verbatim, and void elements self-closed in XHTML style, the form legacy
// email clients parse most reliably.
package runtime
