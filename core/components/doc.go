// Package components ships the built-in component library: presentation
// primitives for table-based HTML email, compiled once per process from
// embedded sources and shared by every render.
//
// # Available Components
//
// Structure:
//   - Layout: document scaffold with head, centered container and body
//     padding; props: title, width (container px, default 600)
//   - Section: full-width block with vertical padding; props: align, padding
//   - Row / Column: multi-column layout; Column props: width, align, padding
//   - Divider: horizontal rule; props: padding
//
// Content:
//   - Heading: h1/h2/h3 by level prop (default 1)
//   - Text: paragraph; tone prop selects default, secondary or warning color
//   - Button: bulletproof table button; props: href, variant (primary,
//     success, danger), align
//   - Link: inline anchor; props: href, label. The tag is void in HTML, so
//     the text comes from the label prop: <link href="..." label="..."/>
//   - Image: block image; props: src, alt, width, height
//   - Preview: hidden preheader text shown in inbox list; props: text
//   - Footer: muted footer paragraph
//
// # Usage
//
// Built-ins are referenced from component templates by kebab-case tag and
// compose through slots:
//
//	<template>
//	<layout title="Welcome">
//	  <preview text="Your account is ready"/>
//	  <heading>Welcome, {{ name }}!</heading>
//	  <text>Your account has been created.</text>
//	  <button :href="confirmUrl" variant="primary">Confirm email</button>
//	  <footer>You received this email because you signed up.</footer>
//	</layout>
//	</template>
//
// Renders register the library with runtime.WithComponents(Definitions()...);
// registering a user component under a built-in name overrides it for that
// render only, since the shared map is never mutated.
package components
