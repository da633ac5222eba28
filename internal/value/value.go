// Package value provides the canonical TOON value tree: a tagged union
// of Null, Bool, Int, Float, Str, List and Obj, with Obj preserving
// insertion order. It mirrors the role of a JSON in-memory value type,
// avoiding interface{} so the encoder and decoder can pattern-match
// exhaustively over a closed set of kinds.
package value

import "strconv"

// Kind identifies which variant a Value holds.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindStr
	KindList
	KindObj
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindBool:
		return "Bool"
	case KindInt:
		return "Int"
	case KindFloat:
		return "Float"
	case KindStr:
		return "Str"
	case KindList:
		return "List"
	case KindObj:
		return "Obj"
	default:
		return "Unknown"
	}
}

// Value is a single node of the canonical TOON value tree.
type Value struct {
	kind Kind

	b bool
	i int64
	f float64
	s string

	list []Value
	obj  *Obj
}

// Obj is an ordered string-keyed map. Keys are unique; insertion order
// is preserved and observed on iteration via Keys/Entries.
type Obj struct {
	keys    []string
	entries map[string]Value
}

// NewObj returns an empty ordered object.
func NewObj() *Obj {
	return &Obj{entries: make(map[string]Value)}
}

// Len returns the number of entries in the object.
func (o *Obj) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Keys returns the object's keys in document order.
func (o *Obj) Keys() []string {
	if o == nil {
		return nil
	}
	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}

// Get returns the value for key and whether it was present.
func (o *Obj) Get(key string) (Value, bool) {
	if o == nil {
		return Value{}, false
	}
	v, ok := o.entries[key]
	return v, ok
}

// Set inserts or replaces key. New keys are appended to the end of the
// document order; existing keys keep their original position.
func (o *Obj) Set(key string, v Value) {
	if _, exists := o.entries[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.entries[key] = v
}

// Entries returns the object's fields as ordered key/value pairs.
func (o *Obj) Entries() []Entry {
	if o == nil {
		return nil
	}
	out := make([]Entry, 0, len(o.keys))
	for _, k := range o.keys {
		out = append(out, Entry{Key: k, Value: o.entries[k]})
	}
	return out
}

// Entry is a single key/value pair of an Obj, in document order.
type Entry struct {
	Key   string
	Value Value
}

// Null returns the Null value.
func Null() Value { return Value{kind: KindNull} }

// Bool returns a Bool value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int returns an Int value.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float returns a Float value.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// Str returns a Str value.
func Str(s string) Value { return Value{kind: KindStr, s: s} }

// List returns a List value wrapping elems. elems is not copied.
func List(elems []Value) Value {
	if elems == nil {
		elems = []Value{}
	}
	return Value{kind: KindList, list: elems}
}

// ObjVal returns an Obj value wrapping o.
func ObjVal(o *Obj) Value {
	if o == nil {
		o = NewObj()
	}
	return Value{kind: KindObj, obj: o}
}

// Kind reports the tag of the value.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v holds Null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// IsPrimitive reports whether v is Null, Bool, Int, Float or Str.
func (v Value) IsPrimitive() bool {
	switch v.kind {
	case KindNull, KindBool, KindInt, KindFloat, KindStr:
		return true
	default:
		return false
	}
}

// Bool returns the boolean payload; only meaningful when Kind() == KindBool.
func (v Value) Bool() bool { return v.b }

// Int returns the integer payload; only meaningful when Kind() == KindInt.
func (v Value) Int() int64 { return v.i }

// Float returns the float payload; only meaningful when Kind() == KindFloat.
func (v Value) Float() float64 { return v.f }

// Str returns the string payload; only meaningful when Kind() == KindStr.
func (v Value) Str() string { return v.s }

// List returns the element slice; only meaningful when Kind() == KindList.
func (v Value) List() []Value { return v.list }

// Obj returns the ordered map; only meaningful when Kind() == KindObj.
func (v Value) Obj() *Obj { return v.obj }

// Equal reports deep structural equality between two values.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindBool:
		return a.b == b.b
	case KindInt:
		return a.i == b.i
	case KindFloat:
		return a.f == b.f
	case KindStr:
		return a.s == b.s
	case KindList:
		if len(a.list) != len(b.list) {
			return false
		}
		for i := range a.list {
			if !Equal(a.list[i], b.list[i]) {
				return false
			}
		}
		return true
	case KindObj:
		ak, bk := a.obj.Keys(), b.obj.Keys()
		if len(ak) != len(bk) {
			return false
		}
		for i := range ak {
			if ak[i] != bk[i] {
				return false
			}
			av, _ := a.obj.Get(ak[i])
			bv, _ := b.obj.Get(bk[i])
			if !Equal(av, bv) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// String renders a debug form of the value tree, used by tests that
// snapshot decoder output in a stable, human-readable shape.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		if v.b {
			return "true"
		}
		return "false"
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindStr:
		return strconv.Quote(v.s)
	case KindList:
		s := "["
		for i, e := range v.list {
			if i > 0 {
				s += ","
			}
			s += e.String()
		}
		return s + "]"
	case KindObj:
		s := "{"
		for i, e := range v.obj.Entries() {
			if i > 0 {
				s += ","
			}
			s += strconv.Quote(e.Key) + ":" + e.Value.String()
		}
		return s + "}"
	default:
		return "<unknown>"
	}
}
