// Package normalize coerces arbitrary Go values into the canonical TOON
// value tree (spec §4.A). It walks native values with reflection in the
// style of a hand-rolled reflective encoder, but — unlike a
// string-producing encoder — every path terminates in a value.Value, never
// raw text, except for the one documented terminal-scalar carve-out
// (an Encodable adapter returning a string).
package normalize

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/go-toon/toon/internal/primitive"
	"github.com/go-toon/toon/internal/value"
)

// Encodable is the out-of-scope "user-defined type normalization adapter"
// collaborator named in the specification. A type implementing Encodable
// projects itself into something Normalize will recurse into again: the
// adapter's output is never treated as finished text, only as a new input
// to re-normalize (spec §9 Design Note 1), except when that output is
// itself a plain string, which is accepted as the type's terminal scalar
// form (e.g. a date type rendering itself as an RFC3339 string).
type Encodable interface {
	ToonEncode() (any, error)
}

// Options controls normalization behavior that depends on encode options:
// currently only how struct tags are read.
type Options struct {
	// TagKey names the struct tag consulted for field names, mirroring
	// encoding/json's "json" tag. Defaults to "toon" when empty.
	TagKey string
}

// Normalize coerces v into the canonical Value tree.
func Normalize(v any, opts Options) (value.Value, error) {
	if opts.TagKey == "" {
		opts.TagKey = "toon"
	}
	return normalizeAny(v, opts)
}

func normalizeAny(v any, opts Options) (value.Value, error) {
	if v == nil {
		return value.Null(), nil
	}

	if enc, ok := v.(Encodable); ok {
		out, err := enc.ToonEncode()
		if err != nil {
			return value.Value{}, err
		}
		if s, ok := out.(string); ok {
			return value.Str(s), nil
		}
		return normalizeAny(out, opts)
	}

	switch val := v.(type) {
	case value.Value:
		return val, nil
	case *value.Value:
		if val == nil {
			return value.Null(), nil
		}
		return *val, nil
	case *value.Obj:
		return value.ObjVal(val), nil
	case bool:
		return value.Bool(val), nil
	case string:
		return value.Str(val), nil
	case float32:
		return primitive.NormalizeFloat(float64(val)), nil
	case float64:
		return primitive.NormalizeFloat(val), nil
	case int:
		return value.Int(int64(val)), nil
	case int8:
		return value.Int(int64(val)), nil
	case int16:
		return value.Int(int64(val)), nil
	case int32:
		return value.Int(int64(val)), nil
	case int64:
		return value.Int(val), nil
	case uint:
		return value.Int(int64(val)), nil
	case uint8:
		return value.Int(int64(val)), nil
	case uint16:
		return value.Int(int64(val)), nil
	case uint32:
		return value.Int(int64(val)), nil
	case uint64:
		return value.Int(int64(val)), nil
	case fmt.Stringer:
		return value.Str(val.String()), nil
	}

	return normalizeReflect(reflect.ValueOf(v), opts)
}

func normalizeReflect(rv reflect.Value, opts Options) (value.Value, error) {
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return value.Null(), nil
		}
		return normalizeAny(rv.Elem().Interface(), opts)

	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return value.List(nil), nil
		}
		elems := make([]value.Value, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			elem, err := normalizeAny(rv.Index(i).Interface(), opts)
			if err != nil {
				return value.Value{}, err
			}
			elems[i] = elem
		}
		return value.List(elems), nil

	case reflect.Map:
		return normalizeMap(rv, opts)

	case reflect.Struct:
		return normalizeStruct(rv, opts)

	case reflect.Bool:
		return value.Bool(rv.Bool()), nil
	case reflect.String:
		return value.Str(rv.String()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return value.Int(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return value.Int(int64(rv.Uint())), nil
	case reflect.Float32, reflect.Float64:
		return primitive.NormalizeFloat(rv.Float()), nil

	default:
		return value.Null(), nil
	}
}

func normalizeMap(rv reflect.Value, opts Options) (value.Value, error) {
	if rv.IsNil() {
		return value.ObjVal(value.NewObj()), nil
	}
	keys := rv.MapKeys()
	type kv struct {
		key string
		val reflect.Value
	}
	pairs := make([]kv, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, kv{key: toKeyString(k), val: rv.MapIndex(k)})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].key < pairs[j].key })

	obj := value.NewObj()
	for _, p := range pairs {
		child, err := normalizeAny(p.val.Interface(), opts)
		if err != nil {
			return value.Value{}, err
		}
		obj.Set(p.key, child)
	}
	return value.ObjVal(obj), nil
}

func toKeyString(k reflect.Value) string {
	switch k.Kind() {
	case reflect.String:
		return k.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(k.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(k.Uint(), 10)
	default:
		return fmt.Sprintf("%v", k.Interface())
	}
}

func normalizeStruct(rv reflect.Value, opts Options) (value.Value, error) {
	t := rv.Type()
	obj := value.NewObj()
	for i := 0; i < rv.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name, omitempty, skip := parseTag(field, opts.TagKey)
		if skip {
			continue
		}
		fv := rv.Field(i)
		if omitempty && isEmptyValue(fv) {
			continue
		}
		child, err := normalizeAny(fv.Interface(), opts)
		if err != nil {
			return value.Value{}, err
		}
		obj.Set(name, child)
	}
	return value.ObjVal(obj), nil
}

// parseTag reads the TagKey struct tag (comma-separated name,option list),
// by hand rather than via a tag-parsing library: the name defaults to the
// Go field name, "-" skips the field entirely, and "omitempty" mirrors
// encoding/json's semantics.
func parseTag(field reflect.StructField, tagKey string) (name string, omitempty bool, skip bool) {
	raw := field.Tag.Get(tagKey)
	if raw == "-" {
		return "", false, true
	}
	parts := strings.Split(raw, ",")
	name = field.Name
	if parts[0] != "" {
		name = parts[0]
	}
	for _, opt := range parts[1:] {
		if opt == "omitempty" {
			omitempty = true
		}
	}
	return name, omitempty, false
}

func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Slice, reflect.Map, reflect.Array:
		return v.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	default:
		return false
	}
}
