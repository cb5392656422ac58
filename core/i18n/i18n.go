package i18n

import (
	"fmt"
	"maps"
	"sort"

	"golang.org/x/text/language"
)

// DefaultLocale is used when no default locale is configured.
const DefaultLocale = "en"

// I18n resolves message keys to localized strings with pluralization support.
// It is immutable after creation, making it safe for concurrent use across
// renders.
type I18n struct {
	// Flattened message catalog for O(1) lookups.
	// Key format: "locale:key.path"
	messages map[string]string

	// Plural rules per locale
	pluralRules map[string]PluralRule

	// Default/fallback locale
	defaultLocale string

	// Pre-computed list of available locales, default first
	locales []string

	// Parsed tags parallel to locales, used for best-match resolution
	tags []language.Tag

	matcher language.Matcher

	// Optional handler called when a key is not found in any locale
	missingKeyHandler func(locale, key string)
}

// Option configures the I18n instance during construction.
type Option func(*I18n) error

// New creates a new I18n instance with the given options.
// All configuration happens during construction, making the instance
// immutable and thread-safe from creation.
func New(opts ...Option) (*I18n, error) {
	i := &I18n{
		messages:      make(map[string]string),
		pluralRules:   make(map[string]PluralRule),
		defaultLocale: DefaultLocale,
	}

	for _, opt := range opts {
		if err := opt(i); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if i.defaultLocale == "" {
		return nil, fmt.Errorf("default locale cannot be empty")
	}

	i.locales = i.buildLocaleList()
	i.tags = make([]language.Tag, len(i.locales))
	for n, loc := range i.locales {
		i.tags[n] = language.Make(loc)
	}
	i.matcher = language.NewMatcher(i.tags)

	return i, nil
}

// WithDefaultLocale sets the default/fallback locale.
func WithDefaultLocale(locale string) Option {
	return func(i *I18n) error {
		if locale == "" {
			return fmt.Errorf("locale cannot be empty")
		}
		i.defaultLocale = locale
		return nil
	}
}

// WithPluralRule registers a custom plural rule for a locale, overriding
// the rule derived from its language code.
func WithPluralRule(locale string, rule PluralRule) Option {
	return func(i *I18n) error {
		if locale == "" {
			return fmt.Errorf("locale cannot be empty")
		}
		if rule == nil {
			return fmt.Errorf("plural rule cannot be nil")
		}
		i.pluralRules[locale] = rule
		return nil
	}
}

// WithMissingKeyHandler sets a handler called when a message key is not found
// in any locale, including the default fallback. Useful for surfacing missing
// translations during development.
func WithMissingKeyHandler(handler func(locale, key string)) Option {
	return func(i *I18n) error {
		i.missingKeyHandler = handler
		return nil
	}
}

// WithTranslations loads a message catalog for a locale. The map can be
// nested; it is flattened into dot-notation keys internally. Calling it again
// for the same locale merges into the existing catalog, later values winning
// on key conflicts.
func WithTranslations(locale string, messages map[string]any) Option {
	return func(i *I18n) error {
		if locale == "" {
			return fmt.Errorf("locale cannot be empty")
		}
		if len(messages) == 0 {
			return nil // empty catalogs are allowed
		}

		for key, value := range flattenMessages(messages, "") {
			i.messages[messageKey(locale, key)] = value
		}

		// Derive a plural rule from the language code unless one was set explicitly.
		if _, exists := i.pluralRules[locale]; !exists {
			i.pluralRules[locale] = PluralRuleForLocale(locale)
		}

		return nil
	}
}

// T resolves a message key for the given locale. Placeholders in the message
// are replaced with values from the provided maps. Falls back to the default
// locale when the requested locale has no message, and returns the key itself
// when no catalog has it.
func (i *I18n) T(locale, key string, placeholders ...M) string {
	if msg, exists := i.messages[messageKey(locale, key)]; exists {
		return replacePlaceholdersMerged(msg, placeholders...)
	}

	if locale != i.defaultLocale {
		if msg, exists := i.messages[messageKey(i.defaultLocale, key)]; exists {
			return replacePlaceholdersMerged(msg, placeholders...)
		}
	}

	if i.missingKeyHandler != nil {
		i.missingKeyHandler(locale, key)
	}

	return key
}

// Tn resolves a pluralized message for the given count. The plural form is
// selected by the locale's plural rule and the count is injected as the
// %{count} placeholder.
func (i *I18n) Tn(locale, key string, n int, placeholders ...M) string {
	rule, exists := i.pluralRules[locale]
	if !exists {
		if rule, exists = i.pluralRules[i.defaultLocale]; !exists {
			rule = DefaultPluralRule
		}
	}

	form := rule(n)

	msg, found := i.lookupPlural(locale, key, form)
	if !found && locale != i.defaultLocale {
		msg, found = i.lookupPlural(i.defaultLocale, key, form)
	}

	if !found {
		if i.missingKeyHandler != nil {
			i.missingKeyHandler(locale, key)
		}
		return key
	}

	merged := M{"count": n}
	for _, p := range placeholders {
		maps.Copy(merged, p)
	}

	return ReplacePlaceholders(msg, merged)
}

// lookupPlural finds the message for a plural form, walking the CLDR fallback
// hierarchy when the exact form is missing.
func (i *I18n) lookupPlural(locale, key, form string) (string, bool) {
	if msg, exists := i.messages[messageKey(locale, key+"."+form)]; exists {
		return msg, true
	}
	for _, fallback := range pluralFallbackForms(form) {
		if msg, exists := i.messages[messageKey(locale, key+"."+fallback)]; exists {
			return msg, true
		}
	}
	return "", false
}

// Match resolves a requested locale against the configured locales using
// BCP 47 matching, so "fr-CA" resolves to a "fr" catalog. Unknown locales
// resolve to the default locale.
func (i *I18n) Match(requested string) string {
	if requested == "" || requested == i.defaultLocale {
		return i.defaultLocale
	}

	tag := language.Make(requested)
	_, index, confidence := i.matcher.Match(tag)
	if confidence == language.No {
		return i.defaultLocale
	}
	return i.locales[index]
}

// Translator returns a Translator bound to the configured locale closest to
// the requested one.
func (i *I18n) Translator(locale string) *Translator {
	return NewTranslator(i, i.Match(locale))
}

// Locales returns all locales with a loaded catalog, the default locale
// first and the rest sorted alphabetically. The slice is pre-computed during
// construction and must not be mutated.
func (i *I18n) Locales() []string {
	return i.locales
}

// DefaultLocale returns the configured default locale.
func (i *I18n) DefaultLocale() string {
	return i.defaultLocale
}

// buildLocaleList collects the locales present in the message catalog.
// Called once during construction after all options are applied.
func (i *I18n) buildLocaleList() []string {
	seen := map[string]bool{i.defaultLocale: true}
	var others []string
	for key := range i.messages {
		locale := localeOf(key)
		if !seen[locale] {
			seen[locale] = true
			others = append(others, locale)
		}
	}
	sort.Strings(others)

	return append([]string{i.defaultLocale}, others...)
}

// messageKey creates a composite key for the message catalog.
func messageKey(locale, key string) string {
	return locale + ":" + key
}

// localeOf extracts the locale from a composite catalog key.
func localeOf(compositeKey string) string {
	for n := 0; n < len(compositeKey); n++ {
		if compositeKey[n] == ':' {
			return compositeKey[:n]
		}
	}
	return compositeKey
}

// flattenMessages recursively flattens a nested map into dot-notation keys.
func flattenMessages(data map[string]any, prefix string) map[string]string {
	result := make(map[string]string)

	for key, value := range data {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		switch v := value.(type) {
		case string:
			result[fullKey] = v
		case map[string]any:
			maps.Copy(result, flattenMessages(v, fullKey))
		case map[string]string:
			// Common shape for plural forms
			for subKey, subVal := range v {
				result[fullKey+"."+subKey] = subVal
			}
		default:
			result[fullKey] = fmt.Sprintf("%v", v)
		}
	}

	return result
}
