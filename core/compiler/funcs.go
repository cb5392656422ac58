package compiler

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/ext/tryfunc"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"

	"github.com/dmitrymomot/postcard/core/i18n"
	"github.com/dmitrymomot/postcard/core/runtime"
)

// baseFuncs are the expression functions available to every template,
// independent of localization.
var baseFuncs = map[string]function.Function{
	"upper":      stdlib.UpperFunc,
	"lower":      stdlib.LowerFunc,
	"title":      stdlib.TitleFunc,
	"trim":       stdlib.TrimSpaceFunc,
	"strlen":     stdlib.StrlenFunc,
	"substr":     stdlib.SubstrFunc,
	"format":     stdlib.FormatFunc,
	"formatdate": stdlib.FormatDateFunc,
	"join":       stdlib.JoinFunc,
	"split":      stdlib.SplitFunc,
	"length":     stdlib.LengthFunc,
	"contains":   stdlib.ContainsFunc,
	"keys":       stdlib.KeysFunc,
	"values":     stdlib.ValuesFunc,
	"lookup":     stdlib.LookupFunc,
	"coalesce":   stdlib.CoalesceFunc,
	"range":      stdlib.RangeFunc,
	"abs":        stdlib.AbsoluteFunc,
	"max":        stdlib.MaxFunc,
	"min":        stdlib.MinFunc,
	"ceil":       stdlib.CeilFunc,
	"floor":      stdlib.FloorFunc,
	"try":        tryfunc.TryFunc,
	"can":        tryfunc.CanFunc,
}

// buildEvalContext constructs the expression scope for one component
// instance: every prop with an identifier-safe name becomes a top-level
// variable, the whole bag is reachable as props, and t/tn resolve through
// the instance's translator.
func buildEvalContext(scope *runtime.Scope) *hcl.EvalContext {
	vars := make(map[string]cty.Value, len(scope.Props)+1)
	fields := make(map[string]cty.Value, len(scope.Props))
	for key, value := range scope.Props {
		cv := toCty(value)
		fields[key] = cv
		if hclsyntax.ValidIdentifier(key) {
			vars[key] = cv
		}
	}
	if len(fields) == 0 {
		vars["props"] = cty.EmptyObjectVal
	} else {
		vars["props"] = cty.ObjectVal(fields)
	}

	funcs := make(map[string]function.Function, len(baseFuncs)+2)
	for name, fn := range baseFuncs {
		funcs[name] = fn
	}
	funcs["t"] = translateFunc(scope)
	funcs["tn"] = translatePluralFunc(scope)

	return &hcl.EvalContext{Variables: vars, Functions: funcs}
}

func translateFunc(scope *runtime.Scope) function.Function {
	return function.New(&function.Spec{
		Params: []function.Parameter{
			{Name: "key", Type: cty.String},
		},
		VarParam: &function.Parameter{
			Name:             "placeholders",
			Type:             cty.DynamicPseudoType,
			AllowDynamicType: true,
			AllowNull:        true,
		},
		Type: function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
			key := args[0].AsString()
			return cty.StringVal(scope.T(key, placeholderMaps(args[1:])...)), nil
		},
	})
}

func translatePluralFunc(scope *runtime.Scope) function.Function {
	return function.New(&function.Spec{
		Params: []function.Parameter{
			{Name: "key", Type: cty.String},
			{Name: "count", Type: cty.Number},
		},
		VarParam: &function.Parameter{
			Name:             "placeholders",
			Type:             cty.DynamicPseudoType,
			AllowDynamicType: true,
			AllowNull:        true,
		},
		Type: function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
			key := args[0].AsString()
			count, _ := args[1].AsBigFloat().Int64()
			return cty.StringVal(scope.Tn(key, int(count), placeholderMaps(args[2:])...)), nil
		},
	})
}

func placeholderMaps(args []cty.Value) []i18n.M {
	if len(args) == 0 {
		return nil
	}
	out := make([]i18n.M, 0, len(args))
	for _, arg := range args {
		if m, ok := fromCty(arg).(map[string]any); ok {
			out = append(out, i18n.M(m))
		}
	}
	return out
}
