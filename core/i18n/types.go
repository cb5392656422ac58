package i18n

// M carries placeholder values for a translation call, keyed by the
// %{name} placeholders of the message:
//
//	engine.T("en", "farewell", i18n.M{"name": "John"})
type M map[string]any
