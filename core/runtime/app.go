package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"golang.org/x/net/html/atom"

	"github.com/dmitrymomot/postcard/core/i18n"
	"github.com/dmitrymomot/postcard/core/logger"
	"github.com/dmitrymomot/postcard/pkg/naming"
)

// defaultMaxDepth caps component nesting to break definition cycles.
const defaultMaxDepth = 64

// App hosts a single render: the root component, the per-render component
// registry and the localization context. An App is built, rendered once and
// discarded; nothing is shared between renders except the immutable
// definitions themselves, so separate renders never observe each other's
// registrations.
type App struct {
	root       *Definition
	props      map[string]any
	registry   map[string]*Definition
	translator *i18n.Translator
	log        *slog.Logger
	verbose    bool
	strict     bool
	maxDepth   int

	styleOrder []*Definition
	styleSeen  map[*Definition]bool
}

// AppOption configures an App during construction.
type AppOption func(*App)

// WithComponents seeds the registry with definitions. Later entries
// overwrite earlier ones with the same name.
func WithComponents(defs ...*Definition) AppOption {
	return func(a *App) {
		for _, def := range defs {
			if def != nil && def.Name != "" {
				a.registry[def.Name] = def
			}
		}
	}
}

// WithProps sets the root instance's property bag.
func WithProps(props map[string]any) AppOption {
	return func(a *App) {
		a.props = props
	}
}

// WithTranslator installs the localization context for this render.
func WithTranslator(tr *i18n.Translator) AppOption {
	return func(a *App) {
		a.translator = tr
	}
}

// WithLogger sets the logger for render diagnostics.
func WithLogger(log *slog.Logger) AppOption {
	return func(a *App) {
		if log != nil {
			a.log = log
		}
	}
}

// WithVerbose enables debug-level render progress logging.
func WithVerbose(verbose bool) AppOption {
	return func(a *App) {
		a.verbose = verbose
	}
}

// WithStrict makes unresolved component tags fatal instead of passing them
// through to the output.
func WithStrict(strict bool) AppOption {
	return func(a *App) {
		a.strict = strict
	}
}

// WithMaxDepth overrides the component nesting cap.
func WithMaxDepth(depth int) AppOption {
	return func(a *App) {
		if depth > 0 {
			a.maxDepth = depth
		}
	}
}

// NewApp creates the render host for one root definition.
func NewApp(root *Definition, opts ...AppOption) *App {
	a := &App{
		root:      root,
		registry:  make(map[string]*Definition),
		log:       slog.Default(),
		maxDepth:  defaultMaxDepth,
		styleSeen: make(map[*Definition]bool),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Register adds a definition to the registry. Registering a name twice
// replaces the previous definition; built-ins are shadowed the same way.
func (a *App) Register(def *Definition) {
	if def == nil || def.Name == "" {
		return
	}
	a.registry[def.Name] = def
}

// Lookup resolves a component name or template tag to a definition. Tags
// are canonicalized first, so "order-summary" finds "OrderSummary".
func (a *App) Lookup(name string) (*Definition, bool) {
	def, ok := a.registry[naming.Canonical(name)]
	return def, ok
}

// RenderHTML expands the root component and serializes the document.
// Styles collected from every used definition are injected as a single
// <style> element into <head> when the document has one, else prepended.
// The context is checked between component expansions, so cancellation
// aborts deep trees promptly.
func (a *App) RenderHTML(ctx context.Context) (string, error) {
	if a.root == nil || a.root.Render == nil {
		return "", ErrNilDefinition
	}
	start := time.Now()

	tree, err := a.instantiate(ctx, a.root, a.props, nil, 0)
	if err != nil {
		return "", err
	}

	if css := a.collectedStyles(); css != "" {
		styleNode := Element("style",
			[]Attr{{Key: "type", Value: "text/css"}},
			Raw("\n"+css+"\n"),
		)
		if head := findElement(tree, "head"); head != nil {
			head.Append(styleNode)
		} else {
			tree = Fragment(styleNode, tree)
		}
	}

	doc := Serialize(tree)
	if a.verbose {
		a.log.DebugContext(ctx, "component tree rendered",
			logger.Component(a.root.Name),
			logger.Size(len(doc)),
			logger.Elapsed(start),
		)
	}
	return doc, nil
}

// instantiate runs a definition's render closure and expands the resulting
// tree against the registry.
func (a *App) instantiate(ctx context.Context, def *Definition, props map[string]any, slot []*Node, depth int) (*Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if depth > a.maxDepth {
		return nil, fmt.Errorf("%w: %s at depth %d", ErrMaxDepthExceeded, def.Name, depth)
	}

	scope := &Scope{Props: props, Slot: slot, Translator: a.translator}
	node, err := def.Render(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", def.Name, err)
	}
	a.markUsed(def)

	return a.expand(ctx, node, depth)
}

// expand walks a rendered tree, replacing component-name elements with
// their expanded instances. Attributes of a component element become its
// props; its children, expanded in the caller's context first, become the
// slot content.
func (a *App) expand(ctx context.Context, n *Node, depth int) (*Node, error) {
	if n == nil {
		return nil, nil
	}

	switch n.Kind {
	case KindText, KindRaw:
		return n, nil
	case KindFragment:
		children, err := a.expandChildren(ctx, n.Children, depth)
		if err != nil {
			return nil, err
		}
		n.Children = children
		return n, nil
	}

	if def, ok := a.Lookup(n.Tag); ok {
		slot, err := a.expandChildren(ctx, n.Children, depth)
		if err != nil {
			return nil, err
		}
		return a.instantiate(ctx, def, propsFromAttrs(n.Attrs), slot, depth+1)
	}

	if !IsHTMLTag(n.Tag) {
		if a.strict {
			return nil, fmt.Errorf("%w: %s", ErrUnknownComponent, n.Tag)
		}
		a.log.Warn("unresolved component tag passed through", logger.Component(n.Tag))
	}

	children, err := a.expandChildren(ctx, n.Children, depth)
	if err != nil {
		return nil, err
	}
	n.Children = children
	return n, nil
}

func (a *App) expandChildren(ctx context.Context, nodes []*Node, depth int) ([]*Node, error) {
	if len(nodes) == 0 {
		return nil, nil
	}
	out := make([]*Node, 0, len(nodes))
	for _, child := range nodes {
		expanded, err := a.expand(ctx, child, depth)
		if err != nil {
			return nil, err
		}
		if expanded != nil {
			out = append(out, expanded)
		}
	}
	return out, nil
}

// markUsed records a definition for style collection. First use wins the
// position, so the root's style always leads the bundle.
func (a *App) markUsed(def *Definition) {
	if def.Style == "" || a.styleSeen[def] {
		return
	}
	a.styleSeen[def] = true
	a.styleOrder = append(a.styleOrder, def)
}

func (a *App) collectedStyles() string {
	if len(a.styleOrder) == 0 {
		return ""
	}
	parts := make([]string, 0, len(a.styleOrder))
	for _, def := range a.styleOrder {
		parts = append(parts, strings.TrimSpace(def.Style))
	}
	return strings.Join(parts, "\n")
}

// propsFromAttrs converts a component element's attributes into a props
// bag. Kebab-case attribute names become camelCase prop names, matching
// what templates and scripts reference.
func propsFromAttrs(attrs []Attr) map[string]any {
	props := make(map[string]any, len(attrs))
	for _, attr := range attrs {
		props[camelCase(attr.Key)] = attr.Value
	}
	return props
}

func camelCase(key string) string {
	if !strings.ContainsAny(key, "-_") {
		return key
	}
	pascal := naming.Pascal(key)
	if pascal == "" {
		return key
	}
	runes := []rune(pascal)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}

// IsHTMLTag reports whether the tag names a standard HTML element.
func IsHTMLTag(tag string) bool {
	return atom.Lookup([]byte(tag)) != 0
}

func findElement(n *Node, tag string) *Node {
	if n == nil {
		return nil
	}
	if n.Kind == KindElement && n.Tag == tag {
		return n
	}
	if n.Kind == KindElement || n.Kind == KindFragment {
		for _, child := range n.Children {
			if found := findElement(child, tag); found != nil {
				return found
			}
		}
	}
	return nil
}
