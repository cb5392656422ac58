package postcard

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aymerick/douceur/inliner"

	"github.com/dmitrymomot/postcard/core/compiler"
	"github.com/dmitrymomot/postcard/core/components"
	"github.com/dmitrymomot/postcard/core/htmlclean"
	"github.com/dmitrymomot/postcard/core/i18n"
	"github.com/dmitrymomot/postcard/core/logger"
	"github.com/dmitrymomot/postcard/core/runtime"
	"github.com/dmitrymomot/postcard/pkg/naming"
)

// Doctype is prepended to every rendered document. The XHTML transitional
// doctype keeps legacy email clients in standards-ish mode.
const Doctype = `<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Transitional//EN" "http://www.w3.org/TR/xhtml1/DTD/xhtml1-transitional.dtd">`

// Renderer turns component sources into standalone HTML documents. A
// Renderer is immutable after construction and safe for concurrent use;
// every Render call builds its own isolated context, so parallel calls
// never observe each other's components or locales.
type Renderer struct {
	log    *slog.Logger
	config Config
}

// Option configures a Renderer during construction.
type Option func(*Renderer)

// WithLogger sets the logger for pipeline diagnostics. Defaults to
// slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(r *Renderer) {
		if log != nil {
			r.log = log
		}
	}
}

// WithConfig installs renderer-wide defaults, typically loaded from the
// environment through core/config.
func WithConfig(cfg Config) Option {
	return func(r *Renderer) {
		r.config = cfg
	}
}

// WithVerbose enables debug-level progress notices.
func WithVerbose(verbose bool) Option {
	return func(r *Renderer) {
		r.config.Verbose = verbose
	}
}

// StrictComponents makes sub-component load failures and unresolved
// component tags fatal. The default is best-effort: failures are logged,
// the component is skipped and unknown tags pass through to the output.
func StrictComponents() Option {
	return func(r *Renderer) {
		r.config.Strict = true
	}
}

// WithInlineCSS rewrites collected styles into element style attributes
// after serialization.
func WithInlineCSS() Option {
	return func(r *Renderer) {
		r.config.InlineCSS = true
	}
}

// New creates a Renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		log: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render compiles the named root component together with its sub-components
// and renders it to a complete HTML document: doctype, markup with injected
// styles, comments stripped except MSO conditionals. On failure it returns
// an empty string and a *RenderError wrapping one of the package sentinels;
// the cause is also logged with context.
func (r *Renderer) Render(ctx context.Context, name string, src Source, opts *Options) (string, error) {
	start := time.Now()

	doc, err := r.renderDocument(ctx, name, src, opts)
	if err != nil {
		r.log.ErrorContext(ctx, "render failed",
			logger.Component(naming.Canonical(name)),
			logger.Error(err),
		)
		return "", err
	}

	doc = Doctype + "\n" + doc
	if r.config.Verbose {
		r.log.DebugContext(ctx, "document rendered",
			logger.Component(naming.Canonical(name)),
			logger.Size(len(doc)),
			logger.Elapsed(start),
		)
	}
	return doc, nil
}

// RenderPlainText runs the same pipeline and reduces the document to a
// text/plain body: tags stripped, entities decoded, whitespace normalized.
// Use it to build the alternative part next to the HTML from Render.
func (r *Renderer) RenderPlainText(ctx context.Context, name string, src Source, opts *Options) (string, error) {
	doc, err := r.renderDocument(ctx, name, src, opts)
	if err != nil {
		r.log.ErrorContext(ctx, "render failed",
			logger.Component(naming.Canonical(name)),
			logger.Error(err),
		)
		return "", err
	}
	return htmlclean.Text(doc), nil
}

// renderDocument drives the pipeline through serialization and cleanup,
// without the doctype.
func (r *Renderer) renderDocument(ctx context.Context, name string, src Source, opts *Options) (string, error) {
	if opts == nil {
		opts = &Options{}
	}

	props := opts.Props
	if props == nil {
		props = r.config.Options.Props
	}

	canonical := naming.Canonical(name)
	root, err := r.loadComponent(name, src.Source)
	if err != nil {
		return "", renderErr("load-root", canonical, fmt.Errorf("%w: %w", ErrComponentNotFound, err))
	}

	subs, err := r.loadSubComponents(ctx, src.Components)
	if err != nil {
		return "", err
	}

	translator, err := r.buildTranslator(opts.I18n)
	if err != nil {
		return "", renderErr("localization", canonical, fmt.Errorf("%w: %w", ErrLocalization, err))
	}

	appOpts := []runtime.AppOption{
		runtime.WithComponents(components.Definitions()...),
		runtime.WithComponents(subs...),
		runtime.WithProps(props),
		runtime.WithLogger(r.log),
		runtime.WithVerbose(r.config.Verbose),
		runtime.WithStrict(r.config.Strict),
	}
	if translator != nil {
		appOpts = append(appOpts, runtime.WithTranslator(translator))
	}

	app := runtime.NewApp(root, appOpts...)
	doc, err := app.RenderHTML(ctx)
	if err != nil {
		return "", renderErr("render", canonical, fmt.Errorf("%w: %w", ErrSerialization, err))
	}

	if r.config.InlineCSS {
		inlined, err := inliner.Inline(doc)
		if err != nil {
			return "", renderErr("inline-css", canonical, fmt.Errorf("%w: %w", ErrSerialization, err))
		}
		doc = inlined
	}

	return htmlclean.StripComments(doc), nil
}

// loadComponent compiles a source into a definition under its canonical
// name. The name is re-normalized here so registration and template
// resolution always agree, regardless of what the caller passed.
func (r *Renderer) loadComponent(name, source string) (*runtime.Definition, error) {
	def, err := compiler.Compile(name, source,
		compiler.WithLogger(r.log),
		compiler.WithVerbose(r.config.Verbose),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return def, nil
}

// loadSubComponents compiles the sub-component sources in order. Under the
// best-effort policy a failing source is logged and skipped; under the
// strict policy it aborts the render.
func (r *Renderer) loadSubComponents(ctx context.Context, comps []Component) ([]*runtime.Definition, error) {
	if len(comps) == 0 {
		return nil, nil
	}

	defs := make([]*runtime.Definition, 0, len(comps))
	for _, c := range comps {
		def, err := r.loadComponent(c.Name, c.Source)
		if err != nil {
			if r.config.Strict {
				return nil, renderErr("load-component", naming.Canonical(c.Name),
					fmt.Errorf("%w: %w", ErrSubComponentLoad, err))
			}
			r.log.WarnContext(ctx, "sub-component skipped",
				logger.Component(naming.Canonical(c.Name)),
				logger.Error(err),
			)
			continue
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// buildTranslator resolves the effective localization options and
// constructs the render's translator. Call-level fields win over the
// renderer defaults one by one; when both levels are empty no engine is
// built and templates echo translation keys.
func (r *Renderer) buildTranslator(override I18n) (*i18n.Translator, error) {
	cfg := r.config.Options.I18n
	if override.DefaultLocale != "" {
		cfg.DefaultLocale = override.DefaultLocale
	}
	if len(override.Translations) > 0 {
		cfg.Translations = override.Translations
	}
	if cfg.empty() || cfg.DefaultLocale == "" {
		return nil, nil
	}

	engineOpts := []i18n.Option{
		i18n.WithDefaultLocale(cfg.DefaultLocale),
	}
	for locale, messages := range cfg.Translations {
		engineOpts = append(engineOpts, i18n.WithTranslations(locale, messages))
	}
	if r.config.Verbose {
		log := r.log
		engineOpts = append(engineOpts, i18n.WithMissingKeyHandler(func(locale, key string) {
			log.Warn("missing translation",
				logger.Locale(locale),
				slog.String("key", key),
			)
		}))
	}

	engine, err := i18n.New(engineOpts...)
	if err != nil {
		return nil, err
	}
	return engine.Translator(cfg.DefaultLocale), nil
}
