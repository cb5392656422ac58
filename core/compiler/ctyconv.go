package compiler

import (
	"fmt"
	"math/big"
	"strconv"

	"github.com/zclconf/go-cty/cty"
)

// toCty converts a native Go value into a cty value for expression scopes.
// Unsupported types degrade to their string form rather than failing, so an
// odd prop value never aborts a render.
func toCty(v any) cty.Value {
	switch t := v.(type) {
	case nil:
		return cty.NullVal(cty.DynamicPseudoType)
	case cty.Value:
		return t
	case bool:
		return cty.BoolVal(t)
	case string:
		return cty.StringVal(t)
	case int:
		return cty.NumberIntVal(int64(t))
	case int32:
		return cty.NumberIntVal(int64(t))
	case int64:
		return cty.NumberIntVal(t)
	case uint:
		return cty.NumberUIntVal(uint64(t))
	case uint64:
		return cty.NumberUIntVal(t)
	case float32:
		return cty.NumberFloatVal(float64(t))
	case float64:
		return cty.NumberFloatVal(t)
	case []string:
		if len(t) == 0 {
			return cty.ListValEmpty(cty.String)
		}
		vals := make([]cty.Value, len(t))
		for i, item := range t {
			vals[i] = cty.StringVal(item)
		}
		return cty.ListVal(vals)
	case []any:
		if len(t) == 0 {
			return cty.EmptyTupleVal
		}
		vals := make([]cty.Value, len(t))
		for i, item := range t {
			vals[i] = toCty(item)
		}
		return cty.TupleVal(vals)
	case map[string]any:
		if len(t) == 0 {
			return cty.EmptyObjectVal
		}
		vals := make(map[string]cty.Value, len(t))
		for key, item := range t {
			vals[key] = toCty(item)
		}
		return cty.ObjectVal(vals)
	default:
		return cty.StringVal(fmt.Sprintf("%v", t))
	}
}

// fromCty converts a cty value back to its native Go form: nil, bool,
// string, int64/float64, []any or map[string]any.
func fromCty(v cty.Value) any {
	if v.IsNull() || !v.IsKnown() {
		return nil
	}
	ty := v.Type()
	switch {
	case ty == cty.String:
		return v.AsString()
	case ty == cty.Bool:
		return v.True()
	case ty == cty.Number:
		bf := v.AsBigFloat()
		if n, acc := bf.Int64(); acc == big.Exact {
			return n
		}
		f, _ := bf.Float64()
		return f
	case ty.IsTupleType() || ty.IsListType() || ty.IsSetType():
		out := make([]any, 0, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			out = append(out, fromCty(ev))
		}
		return out
	case ty.IsObjectType() || ty.IsMapType():
		out := make(map[string]any, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			kv, ev := it.Element()
			out[kv.AsString()] = fromCty(ev)
		}
		return out
	default:
		return nil
	}
}

// valueText renders an expression result for text interpolation. Null and
// unknown values produce an empty string.
func valueText(v cty.Value) string {
	if v.IsNull() || !v.IsKnown() {
		return ""
	}
	ty := v.Type()
	switch {
	case ty == cty.String:
		return v.AsString()
	case ty == cty.Number:
		bf := v.AsBigFloat()
		if n, acc := bf.Int64(); acc == big.Exact {
			return strconv.FormatInt(n, 10)
		}
		f, _ := bf.Float64()
		return strconv.FormatFloat(f, 'f', -1, 64)
	case ty == cty.Bool:
		if v.True() {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprintf("%v", fromCty(v))
	}
}

// truthy implements conditional semantics: null, false, zero, the empty
// string and empty collections are false; everything else is true.
func truthy(v cty.Value) bool {
	if v.IsNull() || !v.IsKnown() {
		return false
	}
	ty := v.Type()
	switch {
	case ty == cty.Bool:
		return v.True()
	case ty == cty.String:
		return v.AsString() != ""
	case ty == cty.Number:
		return v.AsBigFloat().Sign() != 0
	case ty.IsTupleType() || ty.IsListType() || ty.IsSetType() || ty.IsMapType() || ty.IsObjectType():
		return v.LengthInt() > 0
	default:
		return true
	}
}
