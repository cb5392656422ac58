package i18n

import "strings"

// PluralRule determines which plural form to use for a given count.
// It follows Unicode CLDR (Common Locale Data Repository) guidelines.
type PluralRule func(n int) string

// Plural category constants as defined by Unicode CLDR.
// Not all languages use all categories.
const (
	PluralZero  = "zero"  // Used for 0 in some languages
	PluralOne   = "one"   // Singular form
	PluralTwo   = "two"   // Dual form (Arabic, Hebrew, etc.)
	PluralFew   = "few"   // Paucal form (Slavic languages, etc.)
	PluralMany  = "many"  // Larger quantities in some languages
	PluralOther = "other" // Default/catch-all form
)

// DefaultPluralRule is a generic rule that works reasonably well for
// languages without a specific rule registered.
var DefaultPluralRule PluralRule = func(n int) string {
	if n == 0 {
		return PluralZero
	}
	absN := abs(n)
	switch {
	case absN == 1:
		return PluralOne
	case absN >= 2 && absN <= 4:
		return PluralFew
	case absN > 4 && absN < 20:
		return PluralMany
	default:
		return PluralOther
	}
}

// EnglishPluralRule covers English and similar languages.
// Categories: zero (0), one (1), other.
var EnglishPluralRule PluralRule = func(n int) string {
	switch {
	case n == 0:
		return PluralZero
	case n == 1 || n == -1:
		return PluralOne
	default:
		return PluralOther
	}
}

// SlavicPluralRule covers Polish, Russian, Czech, Ukrainian and similar.
// Categories: zero, one, few, many.
var SlavicPluralRule PluralRule = func(n int) string {
	if n == 0 {
		return PluralZero
	}
	if n == 1 || n == -1 {
		return PluralOne
	}
	absN := abs(n)
	mod10 := absN % 10
	mod100 := absN % 100
	// 2-4 take "few" except the teens (12-14)
	if mod10 >= 2 && mod10 <= 4 && (mod100 < 12 || mod100 > 14) {
		return PluralFew
	}
	return PluralMany
}

// RomancePluralRule covers French, Italian and Portuguese, where 0 and 1 are
// both singular. Categories: one, many (millions), other.
var RomancePluralRule PluralRule = func(n int) string {
	if n == 0 || n == 1 || n == -1 {
		return PluralOne
	}
	if abs(n) >= 1000000 {
		return PluralMany
	}
	return PluralOther
}

// GermanicPluralRule covers German, Dutch and the Scandinavian languages.
// Categories: one (1), other (everything else including 0).
var GermanicPluralRule PluralRule = func(n int) string {
	if n == 1 || n == -1 {
		return PluralOne
	}
	return PluralOther
}

// AsianPluralRule covers languages without grammatical plural forms
// (Japanese, Chinese, Korean, Thai, Vietnamese).
var AsianPluralRule PluralRule = func(n int) string {
	return PluralOther
}

// ArabicPluralRule implements the full six-category Arabic rules.
var ArabicPluralRule PluralRule = func(n int) string {
	switch {
	case n == 0:
		return PluralZero
	case n == 1 || n == -1:
		return PluralOne
	case n == 2 || n == -2:
		return PluralTwo
	}
	mod100 := abs(n) % 100
	switch {
	case mod100 >= 3 && mod100 <= 10:
		return PluralFew
	case mod100 >= 11 && mod100 <= 99:
		return PluralMany
	default:
		return PluralOther
	}
}

// SpanishPluralRule is simpler than the other Romance rules: only 1 is
// singular. Categories: one, many (millions), other.
var SpanishPluralRule PluralRule = func(n int) string {
	if n == 1 || n == -1 {
		return PluralOne
	}
	if abs(n) >= 1000000 {
		return PluralMany
	}
	return PluralOther
}

// rulesByLanguage maps ISO 639-1 language codes to their plural rule.
var rulesByLanguage = map[string]PluralRule{
	"en": EnglishPluralRule,

	// Slavic
	"pl": SlavicPluralRule, "ru": SlavicPluralRule, "cs": SlavicPluralRule,
	"uk": SlavicPluralRule, "hr": SlavicPluralRule, "sr": SlavicPluralRule,
	"sk": SlavicPluralRule, "sl": SlavicPluralRule, "bg": SlavicPluralRule,

	// Romance (Spanish is simpler and handled separately)
	"fr": RomancePluralRule, "it": RomancePluralRule, "pt": RomancePluralRule,
	"es": SpanishPluralRule,

	// Germanic
	"de": GermanicPluralRule, "nl": GermanicPluralRule, "sv": GermanicPluralRule,
	"no": GermanicPluralRule, "da": GermanicPluralRule, "is": GermanicPluralRule,

	// No grammatical plurals
	"ja": AsianPluralRule, "zh": AsianPluralRule, "ko": AsianPluralRule,
	"th": AsianPluralRule, "vi": AsianPluralRule, "id": AsianPluralRule,
	"ms": AsianPluralRule,

	"ar": ArabicPluralRule,
}

// PluralRuleForLocale returns the plural rule for a locale based on its
// language code ("fr-CA" uses the French rule). Unknown languages fall back
// to DefaultPluralRule.
func PluralRuleForLocale(locale string) PluralRule {
	if len(locale) >= 2 {
		locale = strings.ToLower(locale[:2])
	}
	if rule, ok := rulesByLanguage[locale]; ok {
		return rule
	}
	return DefaultPluralRule
}

// pluralFallbackForms returns the fallback hierarchy for a plural form,
// following CLDR recommendations, so catalogs can omit rarely-used forms.
func pluralFallbackForms(form string) []string {
	switch form {
	case PluralTwo:
		return []string{PluralFew, PluralMany, PluralOther}
	case PluralFew:
		return []string{PluralMany, PluralOther}
	case PluralOther:
		return nil
	default:
		return []string{PluralOther}
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
