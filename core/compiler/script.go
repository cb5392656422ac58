package compiler

import (
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
)

// binding is one compiled script assignment. Bindings evaluate top to
// bottom at render time, each seeing props and all earlier bindings.
type binding struct {
	name    string
	expr    hcl.Expression
	srcByte int
}

// compileScript parses a script block as a set of name = expression
// assignments and returns them in source order. An empty block compiles to
// no bindings.
func compileScript(source, filename string, startLine int) ([]binding, error) {
	if strings.TrimSpace(source) == "" {
		return nil, nil
	}

	file, diags := hclsyntax.ParseConfig([]byte(source), filename, hcl.Pos{Line: startLine, Column: 1})
	if diags.HasErrors() {
		return nil, diagError(diags)
	}

	// JustAttributes also rejects nested blocks, which the script language
	// does not have.
	attrs, diags := file.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, diagError(diags)
	}

	bindings := make([]binding, 0, len(attrs))
	for _, attr := range attrs {
		bindings = append(bindings, binding{
			name:    attr.Name,
			expr:    attr.Expr,
			srcByte: attr.Range.Start.Byte,
		})
	}
	sort.Slice(bindings, func(i, j int) bool {
		return bindings[i].srcByte < bindings[j].srcByte
	})
	return bindings, nil
}
