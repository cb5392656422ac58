package compiler

import (
	"fmt"
	"io"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"golang.org/x/net/html"

	"github.com/dmitrymomot/postcard/core/runtime"
)

type tplKind int

const (
	tplRoot tplKind = iota
	tplElement
	tplText
	tplComment
	tplSlot
)

type condKind int

const (
	condNone condKind = iota
	condIf
	condElseIf
	condElse
)

func condName(kind condKind) string {
	switch kind {
	case condElseIf:
		return "pc-else-if"
	case condElse:
		return "pc-else"
	default:
		return "pc-if"
	}
}

type tplAttr struct {
	key   string
	value string         // static value when expr is nil
	expr  hcl.Expression // dynamic :attr binding
}

type loopSpec struct {
	itemVar  string
	indexVar string
	expr     hcl.Expression
}

// tplNode is one node of the template AST, carrying compiled directive
// expressions alongside the markup structure.
type tplNode struct {
	kind     tplKind
	tag      string
	attrs    []tplAttr
	children []*tplNode
	parts    []textPart     // tplText
	comment  string         // tplComment
	cond     condKind       // pc-if chain membership
	condExpr hcl.Expression // nil for pc-else
	loop     *loopSpec      // pc-for
	htmlExpr hcl.Expression // pc-html
	line     int
}

// parseTemplate tokenizes the template block into a node tree, compiling
// directive and interpolation expressions along the way. Tag and attribute
// names arrive lowercased from the tokenizer, which is why component
// references and multi-word props use kebab-case in templates.
func parseTemplate(source, filename string, baseLine int) (*tplNode, error) {
	root := &tplNode{kind: tplRoot}
	stack := []*tplNode{root}
	z := html.NewTokenizer(strings.NewReader(source))
	line := baseLine
	if line < 1 {
		line = 1
	}

	for {
		tt := z.Next()
		tokenLine := line
		line += strings.Count(string(z.Raw()), "\n")

		switch tt {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return nil, fmt.Errorf("%s:%d: template markup: %w", filename, tokenLine, err)
			}
			if len(stack) > 1 {
				open := stack[len(stack)-1]
				return nil, fmt.Errorf("%s:%d: unclosed <%s>", filename, open.line, open.tag)
			}
			return root, nil

		case html.TextToken:
			text := string(z.Text())
			if text == "" {
				continue
			}
			parts, err := parseInterpolations(text, filename, tokenLine)
			if err != nil {
				return nil, err
			}
			parent := stack[len(stack)-1]
			parent.children = append(parent.children, &tplNode{kind: tplText, parts: parts, line: tokenLine})

		case html.CommentToken:
			parent := stack[len(stack)-1]
			parent.children = append(parent.children, &tplNode{kind: tplComment, comment: string(z.Text()), line: tokenLine})

		case html.StartTagToken, html.SelfClosingTagToken:
			token := z.Token()
			node, err := buildElement(token, filename, tokenLine)
			if err != nil {
				return nil, err
			}
			parent := stack[len(stack)-1]
			parent.children = append(parent.children, node)
			if tt == html.StartTagToken && !runtime.IsVoid(token.Data) {
				stack = append(stack, node)
			}

		case html.EndTagToken:
			token := z.Token()
			if len(stack) == 1 {
				return nil, fmt.Errorf("%s:%d: unexpected </%s>", filename, tokenLine, token.Data)
			}
			open := stack[len(stack)-1]
			if open.tag != token.Data {
				return nil, fmt.Errorf("%s:%d: expected </%s>, found </%s>", filename, tokenLine, open.tag, token.Data)
			}
			stack = stack[:len(stack)-1]
		}
	}
}

// buildElement converts a start tag token into an AST node, splitting
// directives off the attribute list.
func buildElement(token html.Token, filename string, line int) (*tplNode, error) {
	node := &tplNode{kind: tplElement, tag: token.Data, line: line}
	if token.Data == "slot" {
		node.kind = tplSlot
	}

	for _, attr := range token.Attr {
		switch {
		case attr.Key == "pc-if":
			expr, err := parseExpr(attr.Val, filename, line)
			if err != nil {
				return nil, err
			}
			node.cond, node.condExpr = condIf, expr

		case attr.Key == "pc-else-if":
			expr, err := parseExpr(attr.Val, filename, line)
			if err != nil {
				return nil, err
			}
			node.cond, node.condExpr = condElseIf, expr

		case attr.Key == "pc-else":
			node.cond = condElse

		case attr.Key == "pc-for":
			loop, err := parseLoop(attr.Val, filename, line)
			if err != nil {
				return nil, err
			}
			node.loop = loop

		case attr.Key == "pc-html":
			expr, err := parseExpr(attr.Val, filename, line)
			if err != nil {
				return nil, err
			}
			node.htmlExpr = expr

		case strings.HasPrefix(attr.Key, ":"):
			name := strings.TrimPrefix(attr.Key, ":")
			if name == "" {
				return nil, fmt.Errorf("%s:%d: attribute binding with empty name on <%s>", filename, line, node.tag)
			}
			expr, err := parseExpr(attr.Val, filename, line)
			if err != nil {
				return nil, err
			}
			node.attrs = append(node.attrs, tplAttr{key: name, expr: expr})

		default:
			node.attrs = append(node.attrs, tplAttr{key: attr.Key, value: attr.Val})
		}
	}

	if node.cond != condNone && node.loop != nil {
		return nil, fmt.Errorf("%s:%d: <%s> cannot combine pc-for with %s", filename, line, node.tag, condName(node.cond))
	}
	return node, nil
}

func parseExpr(src, filename string, line int) (hcl.Expression, error) {
	expr, diags := hclsyntax.ParseExpression([]byte(src), filename, hcl.Pos{Line: line, Column: 1})
	if diags.HasErrors() {
		return nil, diagError(diags)
	}
	return expr, nil
}

// parseLoop splits a pc-for value of the form "item in expr" or
// "item, idx in expr" into its variables and collection expression.
func parseLoop(src, filename string, line int) (*loopSpec, error) {
	head, exprSrc, found := strings.Cut(src, " in ")
	if !found {
		return nil, fmt.Errorf("%s:%d: pc-for must have the form %q", filename, line, "item in expression")
	}

	head = strings.TrimSpace(head)
	head = strings.TrimPrefix(head, "(")
	head = strings.TrimSuffix(head, ")")

	itemVar, indexVar := head, ""
	if item, idx, hasIndex := strings.Cut(head, ","); hasIndex {
		itemVar, indexVar = strings.TrimSpace(item), strings.TrimSpace(idx)
	}
	if !hclsyntax.ValidIdentifier(itemVar) {
		return nil, fmt.Errorf("%s:%d: invalid pc-for item name %q", filename, line, itemVar)
	}
	if indexVar != "" && !hclsyntax.ValidIdentifier(indexVar) {
		return nil, fmt.Errorf("%s:%d: invalid pc-for index name %q", filename, line, indexVar)
	}

	expr, err := parseExpr(exprSrc, filename, line)
	if err != nil {
		return nil, err
	}
	return &loopSpec{itemVar: itemVar, indexVar: indexVar, expr: expr}, nil
}

// textPart is one segment of interpolated text: a literal or an expression.
type textPart struct {
	literal string
	expr    hcl.Expression
}

// parseInterpolations splits text around {{ expression }} markers.
func parseInterpolations(text, filename string, line int) ([]textPart, error) {
	if !strings.Contains(text, "{{") {
		return []textPart{{literal: text}}, nil
	}

	var parts []textPart
	rest := text
	for rest != "" {
		before, after, found := strings.Cut(rest, "{{")
		if before != "" {
			parts = append(parts, textPart{literal: before})
			line += strings.Count(before, "\n")
		}
		if !found {
			break
		}
		exprSrc, remainder, closed := strings.Cut(after, "}}")
		if !closed {
			return nil, fmt.Errorf("%s:%d: unterminated {{ interpolation", filename, line)
		}
		expr, err := parseExpr(strings.TrimSpace(exprSrc), filename, line)
		if err != nil {
			return nil, err
		}
		parts = append(parts, textPart{expr: expr})
		line += strings.Count(exprSrc, "\n")
		rest = remainder
	}
	return parts, nil
}

// isBlankParts reports whether a text node is whitespace-only literals,
// used when grouping conditional chains across formatting whitespace.
func isBlankParts(parts []textPart) bool {
	for _, part := range parts {
		if part.expr != nil || strings.TrimSpace(part.literal) != "" {
			return false
		}
	}
	return true
}
