package compiler

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"

	"github.com/dmitrymomot/postcard/core/runtime"
)

// renderEnv carries per-instance state through compiled node renderers.
type renderEnv struct {
	evalCtx *hcl.EvalContext
	scope   *runtime.Scope
}

// nodeRenderer produces the runtime nodes for one compiled template node,
// zero or more depending on directives.
type nodeRenderer func(env *renderEnv) ([]*runtime.Node, error)

type templateCompiler struct {
	filename  string
	scopeAttr string // data-pc-<id> when the component has scoped styles
}

// compileNodes compiles a sibling list into one renderer, grouping
// pc-if/pc-else-if/pc-else chains along the way. Whitespace-only text
// between chain members is dropped; any other node breaks the chain.
func (c *templateCompiler) compileNodes(nodes []*tplNode) (nodeRenderer, error) {
	type branch struct {
		expr   hcl.Expression // nil for pc-else
		render nodeRenderer
	}
	var steps []nodeRenderer

	i := 0
	for i < len(nodes) {
		node := nodes[i]

		if node.cond == condElseIf || node.cond == condElse {
			return nil, fmt.Errorf("%s:%d: %s without a preceding pc-if", c.filename, node.line, condName(node.cond))
		}

		if node.cond == condIf {
			first, err := c.compileOne(node)
			if err != nil {
				return nil, err
			}
			branches := []branch{{expr: node.condExpr, render: first}}

			j := i + 1
			for j < len(nodes) {
				k := j
				for k < len(nodes) && nodes[k].kind == tplText && isBlankParts(nodes[k].parts) {
					k++
				}
				if k >= len(nodes) {
					break
				}
				candidate := nodes[k]
				if candidate.cond != condElseIf && candidate.cond != condElse {
					break
				}
				render, err := c.compileOne(candidate)
				if err != nil {
					return nil, err
				}
				branches = append(branches, branch{expr: candidate.condExpr, render: render})
				j = k + 1
				if candidate.cond == condElse {
					break
				}
			}
			i = j

			steps = append(steps, func(env *renderEnv) ([]*runtime.Node, error) {
				for _, br := range branches {
					if br.expr == nil {
						return br.render(env)
					}
					v, diags := br.expr.Value(env.evalCtx)
					if diags.HasErrors() {
						return nil, diagError(diags)
					}
					if truthy(v) {
						return br.render(env)
					}
				}
				return nil, nil
			})
			continue
		}

		render, err := c.compileOne(node)
		if err != nil {
			return nil, err
		}
		steps = append(steps, render)
		i++
	}

	return func(env *renderEnv) ([]*runtime.Node, error) {
		var out []*runtime.Node
		for _, step := range steps {
			nodes, err := step(env)
			if err != nil {
				return nil, err
			}
			out = append(out, nodes...)
		}
		return out, nil
	}, nil
}

func (c *templateCompiler) compileOne(node *tplNode) (nodeRenderer, error) {
	var base nodeRenderer
	var err error

	switch node.kind {
	case tplText:
		base = c.compileText(node)
	case tplComment:
		base = compileComment(node)
	case tplSlot:
		base, err = c.compileSlot(node)
	case tplElement:
		base, err = c.compileElement(node)
	default:
		err = fmt.Errorf("%s:%d: unexpected template node", c.filename, node.line)
	}
	if err != nil {
		return nil, err
	}

	if node.loop != nil {
		base = c.compileLoop(node.loop, base)
	}
	return base, nil
}

func (c *templateCompiler) compileText(node *tplNode) nodeRenderer {
	parts := node.parts
	return func(env *renderEnv) ([]*runtime.Node, error) {
		var b strings.Builder
		for _, part := range parts {
			if part.expr == nil {
				b.WriteString(part.literal)
				continue
			}
			v, diags := part.expr.Value(env.evalCtx)
			if diags.HasErrors() {
				return nil, diagError(diags)
			}
			b.WriteString(valueText(v))
		}
		text := b.String()
		if text == "" {
			return nil, nil
		}
		return []*runtime.Node{runtime.Text(text)}, nil
	}
}

// compileComment keeps comments verbatim; the orchestrator's post-process
// strips the non-conditional ones from the final document.
func compileComment(node *tplNode) nodeRenderer {
	markup := "<!--" + node.comment + "-->"
	return func(env *renderEnv) ([]*runtime.Node, error) {
		return []*runtime.Node{runtime.Raw(markup)}, nil
	}
}

// compileSlot projects the caller's children, or the slot's own children as
// fallback content.
func (c *templateCompiler) compileSlot(node *tplNode) (nodeRenderer, error) {
	fallback, err := c.compileNodes(node.children)
	if err != nil {
		return nil, err
	}
	return func(env *renderEnv) ([]*runtime.Node, error) {
		if len(env.scope.Slot) > 0 {
			return env.scope.Slot, nil
		}
		return fallback(env)
	}, nil
}

func (c *templateCompiler) compileElement(node *tplNode) (nodeRenderer, error) {
	children, err := c.compileNodes(node.children)
	if err != nil {
		return nil, err
	}

	attrs := node.attrs
	htmlExpr := node.htmlExpr
	tag := node.tag

	// The scope attribute goes on plain elements only. Component tags are
	// replaced during expansion, and the component's own template carries
	// its own scope marker.
	scopeAttr := ""
	if c.scopeAttr != "" && runtime.IsHTMLTag(tag) {
		scopeAttr = c.scopeAttr
	}

	return func(env *renderEnv) ([]*runtime.Node, error) {
		rendered := make([]runtime.Attr, 0, len(attrs)+1)
		for _, attr := range attrs {
			if attr.expr == nil {
				rendered = append(rendered, runtime.Attr{Key: attr.key, Value: attr.value})
				continue
			}
			v, diags := attr.expr.Value(env.evalCtx)
			if diags.HasErrors() {
				return nil, diagError(diags)
			}
			rendered = append(rendered, runtime.Attr{Key: attr.key, Value: fromCty(v)})
		}
		if scopeAttr != "" {
			rendered = append(rendered, runtime.Attr{Key: scopeAttr, Value: ""})
		}

		el := runtime.Element(tag, rendered)

		if htmlExpr != nil {
			v, diags := htmlExpr.Value(env.evalCtx)
			if diags.HasErrors() {
				return nil, diagError(diags)
			}
			el.Append(runtime.Raw(valueText(v)))
			return []*runtime.Node{el}, nil
		}

		kids, err := children(env)
		if err != nil {
			return nil, err
		}
		el.Append(kids...)
		return []*runtime.Node{el}, nil
	}, nil
}

func (c *templateCompiler) compileLoop(loop *loopSpec, inner nodeRenderer) nodeRenderer {
	return func(env *renderEnv) ([]*runtime.Node, error) {
		v, diags := loop.expr.Value(env.evalCtx)
		if diags.HasErrors() {
			return nil, diagError(diags)
		}
		items, err := loopItems(v)
		if err != nil {
			return nil, fmt.Errorf("%s: pc-for: %w", c.filename, err)
		}

		var out []*runtime.Node
		for _, item := range items {
			child := env.evalCtx.NewChild()
			child.Variables = map[string]cty.Value{loop.itemVar: item.value}
			if loop.indexVar != "" {
				child.Variables[loop.indexVar] = item.key
			}
			nodes, err := inner(&renderEnv{evalCtx: child, scope: env.scope})
			if err != nil {
				return nil, err
			}
			out = append(out, nodes...)
		}
		return out, nil
	}
}

type loopItem struct {
	key   cty.Value
	value cty.Value
}

// loopItems enumerates a pc-for collection: lists and tuples by position,
// maps and objects by key, and a bare number n as the sequence 1..n.
func loopItems(v cty.Value) ([]loopItem, error) {
	if v.IsNull() || !v.IsKnown() {
		return nil, nil
	}
	ty := v.Type()
	switch {
	case ty == cty.Number:
		n, _ := v.AsBigFloat().Int64()
		if n < 0 {
			n = 0
		}
		items := make([]loopItem, 0, int(n))
		for i := int64(1); i <= n; i++ {
			items = append(items, loopItem{key: cty.NumberIntVal(i - 1), value: cty.NumberIntVal(i)})
		}
		return items, nil

	case ty.IsTupleType() || ty.IsListType() || ty.IsSetType():
		items := make([]loopItem, 0, v.LengthInt())
		idx := int64(0)
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			items = append(items, loopItem{key: cty.NumberIntVal(idx), value: ev})
			idx++
		}
		return items, nil

	case ty.IsMapType() || ty.IsObjectType():
		items := make([]loopItem, 0, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			kv, ev := it.Element()
			items = append(items, loopItem{key: kv, value: ev})
		}
		return items, nil

	default:
		return nil, fmt.Errorf("expression of type %s is not iterable", ty.FriendlyName())
	}
}
