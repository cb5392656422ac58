// Package postcard renders component-based email templates into standalone
// HTML documents. A component source combines markup, script logic and
// style in one .card unit; the renderer compiles it together with optional
// sub-components, instantiates it in an isolated per-call context with
// optional localization, and serializes the result behind a legacy email
// doctype.
//
// # Basic Usage
//
//	r := postcard.New()
//
//	html, err := r.Render(ctx, "welcome:en", postcard.Source{
//		Source: `<template>
//	<layout title="Welcome">
//	  <heading>Hello, {{ name }}!</heading>
//	  <text>Thanks for signing up.</text>
//	  <button :href="confirmUrl">Confirm email</button>
//	</layout>
//	</template>`,
//	}, &postcard.Options{
//		Props: map[string]any{
//			"name":       "Ada",
//			"confirmUrl": "https://example.com/confirm/42",
//		},
//	})
//
// The document starts with the XHTML transitional doctype and carries the
// collected component styles in a single <style> element. Render the
// text/plain alternative with RenderPlainText.
//
// # Component Sources
//
// A source has a required template block plus optional script and style
// blocks:
//
//	<template>
//	<p>{{ greeting }}, {{ name }}!</p>
//	</template>
//	<script>
//	  greeting = t("welcome.greeting")
//	</script>
//	<style scoped>
//	p { margin: 0; }
//	</style>
//
// Script assignments bind variables the template can reference. Scoped
// styles are rewritten to match only this component's elements. The
// template dialect is documented in core/compiler; the built-in components
// (layout, button, heading, ...) in core/components.
//
// # Sub-Components
//
// Source.Components registers additional components for one call only.
// Names are canonicalized ("order-item", "OrderItem" and "order:item" all
// mean OrderItem), and a later registration under the same canonical name
// wins, built-ins included:
//
//	html, err := r.Render(ctx, "digest", postcard.Source{
//		Source: `<template><layout><order-item pc-for="o in orders" :order="o"/></layout></template>`,
//		Components: []postcard.Component{
//			{Name: "order-item", Source: itemSource},
//		},
//	}, opts)
//
// A sub-component that fails to compile is skipped with a warning and the
// render proceeds without it; construct the renderer with StrictComponents
// to make that fatal instead.
//
// # Localization
//
// Options.I18n installs a translator for the call. Templates resolve keys
// with t and tn:
//
//	opts := &postcard.Options{I18n: postcard.I18n{
//		DefaultLocale: "fr",
//		Translations: map[string]map[string]any{
//			"fr": {"welcome": map[string]any{"greeting": "Bonjour"}},
//		},
//	}}
//
// Without I18n no engine is constructed and t returns its key unchanged.
//
// # Errors
//
// Failures return an empty string and a *RenderError naming the pipeline
// stage and component, wrapping one of the sentinels (ErrParse,
// ErrComponentNotFound, ErrSubComponentLoad, ErrLocalization,
// ErrSerialization) for errors.Is dispatch.
//
// # Concurrency
//
// A Renderer is immutable and safe for concurrent use. Each call builds
// its own component registry and localization context, so concurrent
// renders with different sub-components or locales never interfere.
package postcard
