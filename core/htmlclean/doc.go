// Package htmlclean post-processes rendered email markup.
//
// Email clients are hostile to markup noise: comments inflate message size
// and can trip spam filters, while stray whitespace between table cells
// breaks pixel-perfect layouts in older clients. This package provides the
// cleanup pass applied between serialization and final document assembly,
// plus the tag-stripping helpers behind plain-text rendering.
//
// # Comment stripping
//
// StripComments removes authored comments but keeps MSO conditional comments
// intact, since Outlook's table fallbacks depend on them:
//
//	in := `<p>Hi</p><!-- internal note --><!--[if mso]><table><![endif]-->`
//	out := htmlclean.StripComments(in)
//	// out: `<p>Hi</p><!--[if mso]><table><![endif]-->`
//
// # Plain text
//
// Text produces the text/plain alternative for a rendered document: it drops
// invisible blocks (head, style, script), converts structural boundaries to
// newlines, strips the remaining tags, and decodes entities:
//
//	htmlclean.Text(`<p>Caf&eacute; &amp; bar</p><p>tomorrow</p>`)
//	// "Café & bar\ntomorrow"
package htmlclean
