package compiler

import (
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
)

// scopeID derives the style-scoping discriminator for a component from its
// canonical name and source text. Stable across process restarts so scoped
// output is reproducible.
func scopeID(name, source string) string {
	h := fnv.New32a()
	h.Write([]byte(name))
	h.Write([]byte{0})
	h.Write([]byte(source))
	return fmt.Sprintf("%08x", h.Sum32())
}

// compileStyle parses the style block and, when scoping is requested,
// rewrites every selector to match only elements carrying the component's
// scope attribute.
func compileStyle(source string, scoped bool, id string) (string, error) {
	sheet, err := parser.Parse(source)
	if err != nil {
		return "", fmt.Errorf("style block: %w", err)
	}

	if scoped {
		attr := "[data-pc-" + id + "]"
		for _, rule := range sheet.Rules {
			scopeRule(rule, attr)
		}
	}

	return strings.TrimSpace(sheet.String()), nil
}

// scopeRule rewrites the selectors of a qualified rule and recurses into
// at-rules such as @media.
func scopeRule(rule *css.Rule, attr string) {
	if rule.Kind == css.QualifiedRule {
		for i, selector := range rule.Selectors {
			rule.Selectors[i] = scopeSelector(selector, attr)
		}
	}
	for _, nested := range rule.Rules {
		scopeRule(nested, attr)
	}
}

// scopeSelector appends the scope attribute to the last compound of a
// selector, keeping pseudo-classes and pseudo-elements after it:
// ".btn a:hover" becomes ".btn a[data-pc-x]:hover".
func scopeSelector(selector, attr string) string {
	sel := strings.TrimSpace(selector)
	if sel == "" {
		return sel
	}

	// Start of the last compound: after the last top-level combinator.
	depth := 0
	start := 0
	for i, r := range sel {
		switch r {
		case '(', '[':
			depth++
		case ')', ']':
			depth--
		case ' ', '>', '+', '~':
			if depth == 0 {
				start = i + 1
			}
		}
	}

	compound := sel[start:]
	insert := len(compound)
	depth = 0
	for i, r := range compound {
		if depth == 0 && r == ':' {
			insert = i
			break
		}
		switch r {
		case '(', '[':
			depth++
		case ')', ']':
			depth--
		}
	}

	return sel[:start] + compound[:insert] + attr + compound[insert:]
}
