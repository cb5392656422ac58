package compiler

import (
	"regexp"
	"strings"
)

// Block markers are recognized at the top level of the source, SFC style.
// The template pattern is greedy so nested <template> elements stay inside
// the block; script and style patterns are lazy so several blocks coexist.
var (
	templateRegex = regexp.MustCompile(`(?is)<template[^>]*>(.*)</template>`)
	scriptRegex   = regexp.MustCompile(`(?is)<script[^>]*>(.*?)</script>`)
	styleRegex    = regexp.MustCompile(`(?is)<style([^>]*)>(.*?)</style>`)
	scopedRegex   = regexp.MustCompile(`(?i)(^|\s)scoped(\s|=|$)`)
)

// blocks is the result of splitting a component source into its
// sub-language blocks before individual compilation.
type blocks struct {
	template     string
	templateLine int
	script       string
	scriptLine   int
	style        string
	scoped       bool
}

// splitBlocks separates a component source into template, script and style
// blocks. The template block is required. Only the first script block and
// the first style block's content are honored; scoping is enabled when any
// style block declares the scoped attribute.
func splitBlocks(source string) (*blocks, error) {
	if strings.TrimSpace(source) == "" {
		return nil, ErrEmptySource
	}

	loc := templateRegex.FindStringSubmatchIndex(source)
	if loc == nil {
		return nil, ErrMissingTemplate
	}

	b := &blocks{
		template:     source[loc[2]:loc[3]],
		templateLine: lineAt(source, loc[2]),
	}

	// Script and style elements inside the template belong to the markup,
	// not to the component, so the template span is blanked out before
	// searching for them. Blanking preserves offsets and line numbers.
	masked := source[:loc[2]] + blankOut(source[loc[2]:loc[3]]) + source[loc[3]:]

	if m := scriptRegex.FindStringSubmatchIndex(masked); m != nil {
		b.script = source[m[2]:m[3]]
		b.scriptLine = lineAt(source, m[2])
	}

	styleSeen := false
	for _, m := range styleRegex.FindAllStringSubmatchIndex(masked, -1) {
		if !styleSeen {
			b.style = source[m[4]:m[5]]
			styleSeen = true
		}
		if scopedRegex.MatchString(source[m[2]:m[3]]) {
			b.scoped = true
		}
	}

	return b, nil
}

// blankOut replaces every non-newline byte with a space so positions stay
// stable for diagnostics.
func blankOut(s string) string {
	out := []byte(s)
	for i := range out {
		if out[i] != '\n' {
			out[i] = ' '
		}
	}
	return string(out)
}

func lineAt(source string, offset int) int {
	return 1 + strings.Count(source[:offset], "\n")
}
