// Package compiler turns component-template sources into executable
// definitions for the runtime package.
//
// A component source combines markup, logic and style in one unit,
// single-file-component style:
//
//	<template>
//	  <p>{{ greeting }}, {{ props.name }}!</p>
//	</template>
//
//	<script>
//	  greeting = upper(t("welcome.title"))
//	</script>
//
//	<style scoped>
//	  p { margin: 0; }
//	</style>
//
// Compile splits the source into blocks, compiles each and fuses the
// results into a runtime.Definition. The template block is required; only
// the first script block and the first style block's content are honored,
// and scoping applies when any style block carries the scoped attribute.
// A failed stage reports all of its diagnostics in one error and produces
// no partial output.
//
// # Script block
//
// The script block is a sequence of name = expression bindings evaluated
// top to bottom at render time. Each binding sees the instance's props and
// every earlier binding, and its name becomes a template variable.
//
// # Template expressions
//
// Expressions appear in {{ interpolations }}, :attr="..." bindings and
// directive values. Every prop with an identifier-safe name is a variable,
// the full bag is reachable as props (props.name, props["odd key"]), and a
// fixed function set is available: t and tn for localization, try/can for
// optional props, plus string, number and collection helpers (upper,
// format, join, length, coalesce and friends).
//
// # Directives
//
//   - pc-if / pc-else-if / pc-else: conditional chains across adjacent
//     siblings. Conditions treat null, false, zero, "" and empty
//     collections as false.
//   - pc-for="item in expr" or pc-for="item, idx in expr": repeats the
//     element over a list, a map (item is the value, idx the key) or a bare
//     number n (1 through n). Cannot be combined with pc-if on one element.
//   - pc-html="expr": injects the expression result as raw markup in place
//     of children. The value is not escaped.
//   - <slot/>: projects the caller's children; the slot's own children are
//     the fallback content.
//
// Markup is tokenized with the x/net/html tokenizer, which lowercases tag
// and attribute names. Component references and multi-word prop attributes
// therefore use kebab-case in templates: <order-summary item-count="3"/>
// instantiates OrderSummary with props.itemCount.
//
// # Scoped styles
//
// With scoping enabled, every selector gains an attribute suffix on its
// last compound ( ".btn a:hover" becomes ".btn a[data-pc-<id>]:hover" )
// and every plain element the template renders carries the matching
// data-pc-<id> attribute. Rules inside at-rules such as @media are
// rewritten the same way.
package compiler
