// Package i18n provides the localization engine behind template rendering,
// with an immutable, thread-safe design and CLDR-compliant pluralization.
//
// Message catalogs are loaded per locale at construction time and flattened
// into dot-notation keys for O(1) lookups. Instances are immutable after New
// returns, so a single engine can serve concurrent renders without locking.
//
// # Basic Usage
//
// Create an engine with catalogs and resolve localized messages:
//
//	engine, err := i18n.New(
//		i18n.WithDefaultLocale("en"),
//		i18n.WithTranslations("en", map[string]any{
//			"greeting": "Welcome aboard",
//			"farewell": "Goodbye, %{name}!",
//		}),
//		i18n.WithTranslations("fr", map[string]any{
//			"greeting": "Bienvenue à bord",
//			"farewell": "Au revoir, %{name} !",
//		}),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	engine.T("fr", "greeting")
//	// Output: "Bienvenue à bord"
//
//	engine.T("fr", "farewell", i18n.M{"name": "Jeanne"})
//	// Output: "Au revoir, Jeanne !"
//
// Nested catalogs flatten to dot-notation keys, so "order.shipped" resolves
// inside {"order": {"shipped": "..."}}.
//
// # Locale Resolution
//
// Match resolves a requested locale against the loaded catalogs using BCP 47
// matching, so "fr-CA" finds a "fr" catalog and unknown locales fall back to
// the default. Translator bundles the resolution with a fixed-locale view:
//
//	tr := engine.Translator("fr-CA")
//	tr.T("greeting") // resolved against the "fr" catalog
//
// # Pluralization
//
// Plural forms live under the message key as a nested map keyed by CLDR
// category (one, few, many, other, ...). Tn selects the category with the
// locale's plural rule and injects the count as %{count}:
//
//	i18n.WithTranslations("en", map[string]any{
//		"items": map[string]string{
//			"zero":  "No items",
//			"one":   "One item",
//			"other": "%{count} items",
//		},
//	})
//
//	engine.Tn("en", "items", 5)
//	// Output: "5 items"
//
// Rules for common languages are derived from the locale's language code;
// WithPluralRule overrides the derivation for special cases.
//
// # Missing Keys
//
// Lookups fall back to the default locale and finally to the key itself, so
// a render never fails because of a missing message. WithMissingKeyHandler
// installs a hook for logging those misses during development.
package i18n
