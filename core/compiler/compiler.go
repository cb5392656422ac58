package compiler

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dmitrymomot/postcard/core/logger"
	"github.com/dmitrymomot/postcard/core/runtime"
	"github.com/dmitrymomot/postcard/pkg/naming"
)

type compiler struct {
	filename string
	log      *slog.Logger
	verbose  bool
}

// Option configures a single compilation.
type Option func(*compiler)

// WithFilename overrides the diagnostic filename derived from the
// component name.
func WithFilename(filename string) Option {
	return func(c *compiler) {
		if filename != "" {
			c.filename = filename
		}
	}
}

// WithLogger sets the logger for compile notices.
func WithLogger(log *slog.Logger) Option {
	return func(c *compiler) {
		if log != nil {
			c.log = log
		}
	}
}

// WithVerbose enables the debug-level compile progress notice.
func WithVerbose(verbose bool) Option {
	return func(c *compiler) {
		c.verbose = verbose
	}
}

// Compile turns a component source into an executable definition. The name
// is canonicalized, the source split into template, script and style
// blocks, each block compiled, and the results fused into a
// runtime.Definition. Compilation stops at the first stage reporting
// diagnostics, with every diagnostic of that stage folded into the error;
// there is no partial output.
func Compile(name, source string, opts ...Option) (*runtime.Definition, error) {
	canonical := naming.Canonical(name)
	if canonical == "" {
		return nil, ErrEmptyName
	}

	c := &compiler{
		filename: canonical + naming.Ext,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	b, err := splitBlocks(source)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.filename, err)
	}

	bindings, err := compileScript(b.script, c.filename, b.scriptLine)
	if err != nil {
		return nil, fmt.Errorf("script block: %w", err)
	}

	id := scopeID(canonical, source)
	style := ""
	if strings.TrimSpace(b.style) != "" {
		style, err = compileStyle(b.style, b.scoped, id)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", c.filename, err)
		}
	}

	tpl, err := parseTemplate(b.template, c.filename, b.templateLine)
	if err != nil {
		return nil, err
	}

	tc := &templateCompiler{filename: c.filename}
	if b.scoped && style != "" {
		tc.scopeAttr = "data-pc-" + id
	}

	rootRender, err := tc.compileNodes(tpl.children)
	if err != nil {
		return nil, err
	}

	def := &runtime.Definition{
		Name:     canonical,
		Filename: c.filename,
		Render:   newRenderFunc(bindings, rootRender),
		Style:    style,
		Bindings: bindingNames(bindings),
	}
	if tc.scopeAttr != "" {
		def.ScopeID = id
	}

	if c.verbose {
		c.log.Debug("component compiled",
			logger.Component(canonical),
			logger.Count("bindings", len(def.Bindings)),
			logger.Size(len(source)),
		)
	}
	return def, nil
}

func bindingNames(bindings []binding) []string {
	if len(bindings) == 0 {
		return nil
	}
	names := make([]string, len(bindings))
	for i, b := range bindings {
		names[i] = b.name
	}
	return names
}

// newRenderFunc fuses compiled script bindings and the template renderer
// into the definition's render closure. Bindings evaluate in source order
// into the same scope the template then renders against.
func newRenderFunc(bindings []binding, root nodeRenderer) runtime.RenderFunc {
	return func(ctx context.Context, scope *runtime.Scope) (*runtime.Node, error) {
		evalCtx := buildEvalContext(scope)
		for _, b := range bindings {
			v, diags := b.expr.Value(evalCtx)
			if diags.HasErrors() {
				return nil, fmt.Errorf("binding %s: %w", b.name, diagError(diags))
			}
			evalCtx.Variables[b.name] = v
		}

		nodes, err := root(&renderEnv{evalCtx: evalCtx, scope: scope})
		if err != nil {
			return nil, err
		}
		if len(nodes) == 1 {
			return nodes[0], nil
		}
		return runtime.Fragment(nodes...), nil
	}
}
