package toon

import "github.com/go-toon/toon/internal/value"

// ToGoValue converts a decoded Value into a tree of plain Go values
// (map[string]any, []any, string, int64, float64, bool, nil) suitable for
// encoding/json. Object key order is not preserved: JSON objects have no
// defined order, so callers that need TOON's ordering guarantee should
// work with the Value tree directly instead.
func ToGoValue(v Value) any {
	switch v.Kind() {
	case value.KindNull:
		return nil
	case value.KindBool:
		return v.Bool()
	case value.KindInt:
		return v.Int()
	case value.KindFloat:
		return v.Float()
	case value.KindStr:
		return v.Str()
	case value.KindList:
		elems := v.List()
		out := make([]any, len(elems))
		for i, e := range elems {
			out[i] = ToGoValue(e)
		}
		return out
	case value.KindObj:
		o := v.Obj()
		out := make(map[string]any, o.Len())
		for _, e := range o.Entries() {
			out[e.Key] = ToGoValue(e.Value)
		}
		return out
	default:
		return nil
	}
}
