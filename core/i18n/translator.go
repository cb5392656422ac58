package i18n

// Translator provides a simplified translation interface with a fixed locale.
// It wraps an I18n instance so render-time callers don't pass the locale on
// every lookup.
type Translator struct {
	i18n   *I18n
	locale string
}

// NewTranslator creates a Translator bound to the given locale. An empty
// locale binds to the default locale.
func NewTranslator(i18n *I18n, locale string) *Translator {
	if i18n == nil {
		panic("localization engine is not provided")
	}
	if locale == "" {
		locale = i18n.DefaultLocale()
	}
	return &Translator{
		i18n:   i18n,
		locale: locale,
	}
}

// T resolves a message key in the translator's locale.
func (t *Translator) T(key string, placeholders ...M) string {
	return t.i18n.T(t.locale, key, placeholders...)
}

// Tn resolves a pluralized message in the translator's locale.
func (t *Translator) Tn(key string, n int, placeholders ...M) string {
	return t.i18n.Tn(t.locale, key, n, placeholders...)
}

// Locale returns the locale the translator is bound to.
func (t *Translator) Locale() string {
	return t.locale
}
