package postcard

// Source is one compile target: the root component source plus the
// sub-component sources visible to it for a single render call.
type Source struct {
	// Source is the root component source text.
	Source string

	// Components lists sub-component sources registered before rendering,
	// in order. Later entries with colliding canonical names overwrite
	// earlier ones.
	Components []Component
}

// Component is a named sub-component source.
type Component struct {
	Name   string
	Source string
}

// I18n configures localization for renders: the locale to render in and
// the message catalogs, keyed by locale.
type I18n struct {
	// DefaultLocale is the locale templates render in. It doubles as the
	// fallback for keys missing from other catalogs. Empty disables
	// localization.
	DefaultLocale string

	// Translations maps locale tags to message catalogs. Catalog values are
	// strings, nested maps (flattened with dots) or plural-form maps.
	Translations map[string]map[string]any
}

func (i I18n) empty() bool {
	return i.DefaultLocale == "" && len(i.Translations) == 0
}

// Options are per-call render inputs. Fields set here override the
// renderer's configured defaults: the props bag as a whole, the i18n
// fields one by one.
type Options struct {
	// Props is the root component's property bag.
	Props map[string]any

	// I18n configures localization for this call.
	I18n I18n
}

// Config carries renderer-wide defaults, applied when a call's Options
// leave the matching field empty. Verbose also gates debug progress
// logging. The env tags allow loading through core/config:
//
//	var cfg postcard.Config
//	config.MustLoad(&cfg)
//	r := postcard.New(postcard.WithConfig(cfg))
type Config struct {
	// Verbose enables debug-level progress notices for compilation and
	// rendering.
	Verbose bool `env:"POSTCARD_VERBOSE" envDefault:"false"`

	// Strict makes sub-component load failures and unresolved component
	// tags fatal instead of best-effort.
	Strict bool `env:"POSTCARD_STRICT" envDefault:"false"`

	// InlineCSS rewrites collected styles into element style attributes
	// after serialization, for clients that drop <style> blocks.
	InlineCSS bool `env:"POSTCARD_INLINE_CSS" envDefault:"false"`

	// Options are renderer-wide default render inputs. Not env-loadable;
	// set programmatically.
	Options Options `env:"-"`
}
