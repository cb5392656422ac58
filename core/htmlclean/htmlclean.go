package htmlclean

import (
	"html"
	"regexp"
	"strings"
)

var (
	tagRegex        = regexp.MustCompile(`<[^>]*>`)
	lineBreakRegex  = regexp.MustCompile(`(?i)<br\s*/?>`)
	blockCloseRegex = regexp.MustCompile(`(?i)</(p|div|tr|table|h[1-6]|li|ul|ol|blockquote|section|header|footer)>`)
	dropBlockRegex  = regexp.MustCompile(`(?is)<(style|script|head|title)\b[^>]*>.*?</(?:style|script|head|title)>`)
	interTagRegex   = regexp.MustCompile(`>\s+<`)
	spaceRunRegex   = regexp.MustCompile(`[ \t]+`)
	blankLineRegex  = regexp.MustCompile(`\n{3,}`)
)

// StripComments removes HTML comments from the markup while preserving MSO
// conditional comments (<!--[if mso]> ... <![endif]-->), which Outlook relies
// on for table fallbacks. Unterminated comments are dropped to the end of the
// input rather than leaking their raw text into the document.
func StripComments(markup string) string {
	var b strings.Builder
	b.Grow(len(markup))

	for {
		start := strings.Index(markup, "<!--")
		if start < 0 {
			b.WriteString(markup)
			break
		}

		b.WriteString(markup[:start])
		rest := markup[start:]

		end := strings.Index(rest, "-->")
		if end < 0 {
			// Unterminated comment; swallow the remainder.
			break
		}

		comment := rest[:end+3]
		if isConditional(comment) {
			b.WriteString(comment)
		}
		markup = rest[end+3:]
	}

	return b.String()
}

// isConditional reports whether the comment is part of a downlevel
// conditional block (either the opening <!--[if ...]> or closing
// <!--<![endif]--> form).
func isConditional(comment string) bool {
	inner := strings.TrimPrefix(comment, "<!--")
	inner = strings.TrimSpace(inner)
	return strings.HasPrefix(inner, "[if") || strings.Contains(inner, "[endif]")
}

// CollapseWhitespace reduces whitespace runs between tags to nothing and
// trims the document edges. Intended for final email output where inter-tag
// whitespace only inflates message size; do not use on markup containing
// preformatted blocks.
func CollapseWhitespace(markup string) string {
	collapsed := interTagRegex.ReplaceAllString(markup, "><")
	return strings.TrimSpace(collapsed)
}

// StripTags removes all tags and decodes HTML entities, returning the bare
// text content. Layout is not preserved; use Text for a readable plain-text
// rendition.
func StripTags(markup string) string {
	stripped := tagRegex.ReplaceAllString(markup, "")
	return html.UnescapeString(stripped)
}

// Text converts rendered HTML into a readable plain-text rendition suitable
// for a text/plain alternative part. Invisible blocks (head, style, script)
// are dropped, line breaks and block boundaries become newlines, remaining
// tags are stripped, and entities are decoded.
func Text(markup string) string {
	text := StripComments(markup)
	text = dropBlockRegex.ReplaceAllString(text, "")
	text = lineBreakRegex.ReplaceAllString(text, "\n")
	text = blockCloseRegex.ReplaceAllString(text, "\n")
	text = tagRegex.ReplaceAllString(text, "")
	text = html.UnescapeString(text)

	// Normalize whitespace without losing paragraph breaks.
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = spaceRunRegex.ReplaceAllString(text, " ")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	text = strings.Join(lines, "\n")
	text = blankLineRegex.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text)
}
