// Package encode implements the TOON array encoder and object encoder +
// writer (spec §4.D, §4.E): format selection among inline/tabular/list
// arrays, key-folding, and indentation-aware emission of a value tree as
// TOON text.
package encode

import (
	"sort"
	"strconv"
	"strings"

	"github.com/go-toon/toon/internal/guard"
	"github.com/go-toon/toon/internal/primitive"
	"github.com/go-toon/toon/internal/toonerr"
	"github.com/go-toon/toon/internal/value"
)

// state accumulates output lines, the way a line-oriented builder joins
// segments once at the end instead of concatenating strings on the hot path.
type state struct {
	opts   Options
	lines  []string
	exempt exemptSet
}

// Encode renders v as a complete TOON document.
func Encode(v value.Value, opts Options) (string, error) {
	s := &state{opts: opts}
	if opts.KeyFolding && v.Kind() == value.KindObj {
		folded, exempt := FoldKeys(v.Obj(), opts.FlattenDepth)
		v = value.ObjVal(folded)
		s.exempt = exempt
	}
	if err := s.encodeRoot(v); err != nil {
		return "", err
	}
	return strings.Join(s.lines, "\n"), nil
}

func (s *state) emit(line string) { s.lines = append(s.lines, line) }

func (s *state) indent(depth int) string {
	if depth <= 0 {
		return ""
	}
	return strings.Repeat(" ", depth*s.opts.IndentSize)
}

func (s *state) encodeRoot(v value.Value) error {
	switch v.Kind() {
	case value.KindObj:
		return s.encodeObject(v.Obj(), 0, nil)
	case value.KindList:
		return s.encodeArray("", v.List(), 0)
	default:
		s.emit(s.renderScalar(v))
		return nil
	}
}

// renderScalar renders a primitive for emission outside an array scope
// (quoting decided against the configured document delimiter).
func (s *state) renderScalar(v value.Value) string {
	if v.Kind() == value.KindStr && guard.NeedsQuoteValue(v.Str(), s.opts.Delimiter) {
		return primitive.RenderQuoted(v.Str())
	}
	return primitive.Render(v)
}

// encodeFieldKey renders key as it should appear as an object field or
// tabular column name: unquoted when it is a fold-produced dotted path
// recorded in obj's exempt set, otherwise per the normal quoting rule.
func (s *state) encodeFieldKey(obj *value.Obj, key string) string {
	if s.exempt != nil && obj != nil && s.exempt[obj][key] {
		return key
	}
	if guard.NeedsQuoteKey(key) {
		return primitive.RenderQuoted(key)
	}
	return key
}

func (s *state) orderedEntries(obj *value.Obj, path []string) []value.Entry {
	entries := obj.Entries()
	if s.opts.KeyOrder == nil {
		sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
		return entries
	}
	existing := obj.Keys()
	order := s.opts.KeyOrder(path, existing)
	if order == nil {
		sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
		return entries
	}
	byKey := make(map[string]value.Value, len(entries))
	for _, e := range entries {
		byKey[e.Key] = e.Value
	}
	out := make([]value.Entry, 0, len(order))
	seen := make(map[string]bool, len(order))
	for _, k := range order {
		if v, ok := byKey[k]; ok && !seen[k] {
			out = append(out, value.Entry{Key: k, Value: v})
			seen[k] = true
		}
	}
	for _, e := range entries {
		if !seen[e.Key] {
			out = append(out, e)
		}
	}
	return out
}

func (s *state) encodeObject(obj *value.Obj, depth int, path []string) error {
	if depth == 0 && obj.Len() == 0 {
		return nil
	}
	indent := s.indent(depth)
	for _, field := range s.orderedEntries(obj, path) {
		childPath := append(append([]string{}, path...), field.Key)
		keyLiteral := s.encodeFieldKey(obj, field.Key)
		switch field.Value.Kind() {
		case value.KindObj:
			s.emit(indent + keyLiteral + ":")
			if field.Value.Obj().Len() > 0 {
				if err := s.encodeObject(field.Value.Obj(), depth+1, childPath); err != nil {
					return err
				}
			}
		case value.KindList:
			if err := s.encodeArray(keyLiteral, field.Value.List(), depth); err != nil {
				return err
			}
		default:
			s.emit(indent + keyLiteral + ": " + s.renderScalar(field.Value))
		}
	}
	return nil
}

// encodeArray renders a (possibly keyed) array at the object level.
// keyLiteral is the already-quote-resolved key, or "" for the document
// root array.
func (s *state) encodeArray(keyLiteral string, items []value.Value, depth int) error {
	indent := s.indent(depth)

	if len(items) == 0 {
		s.emit(indent + s.renderHeader(keyLiteral, 0, nil, nil) + ":")
		return nil
	}

	if allPrimitive(items) {
		parts := make([]string, len(items))
		for i, it := range items {
			parts[i] = s.renderArrayScalar(it)
		}
		s.emit(indent + s.renderHeader(keyLiteral, len(items), nil, nil) + ": " + strings.Join(parts, string(s.opts.Delimiter)))
		return nil
	}

	if fields, ok := detectTabular(items); ok {
		fields = s.orderFields(nil, fields)
		s.emit(indent + s.renderHeader(keyLiteral, len(items), fields, items[0].Obj()) + ":")
		for _, item := range items {
			row := make([]string, len(fields))
			for i, f := range fields {
				fv, _ := item.Obj().Get(f)
				row[i] = s.renderArrayScalar(fv)
			}
			s.emit(s.indent(depth+1) + strings.Join(row, string(s.opts.Delimiter)))
		}
		return nil
	}

	s.emit(indent + s.renderHeader(keyLiteral, len(items), nil, nil) + ":")
	for _, item := range items {
		if err := s.encodeListItem(item, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// orderFields picks the tabular header's field order: opts.KeyOrder when
// it resolves a full ordering for path, otherwise lexicographic.
func (s *state) orderFields(path []string, fields []string) []string {
	if s.opts.KeyOrder != nil {
		if order := s.opts.KeyOrder(path, fields); order != nil && sameSet(order, fields) {
			return order
		}
	}
	sorted := append([]string{}, fields...)
	sort.Strings(sorted)
	return sorted
}

func sameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[string]bool, len(a))
	for _, x := range a {
		set[x] = true
	}
	for _, x := range b {
		if !set[x] {
			return false
		}
	}
	return true
}

// renderArrayScalar renders a primitive for emission inside an array
// scope, where quoting is decided against the array's active delimiter.
func (s *state) renderArrayScalar(v value.Value) string {
	if v.Kind() == value.KindStr && guard.NeedsQuoteValue(v.Str(), s.opts.Delimiter) {
		return primitive.RenderQuoted(v.Str())
	}
	return primitive.Render(v)
}

func (s *state) renderHeader(keyLiteral string, length int, fields []string, fieldsOf *value.Obj) string {
	var b strings.Builder
	b.WriteString(keyLiteral)
	b.WriteByte('[')
	b.WriteString(s.opts.LengthMarker)
	b.WriteString(strconv.Itoa(length))
	if s.opts.Delimiter != ',' {
		b.WriteRune(s.opts.Delimiter)
	}
	b.WriteByte(']')
	if len(fields) > 0 {
		b.WriteByte('{')
		for i, f := range fields {
			if i > 0 {
				b.WriteRune(s.opts.Delimiter)
			}
			b.WriteString(s.encodeFieldKey(fieldsOf, f))
		}
		b.WriteByte('}')
	}
	return b.String()
}

func (s *state) encodeListItem(item value.Value, depth int) error {
	switch item.Kind() {
	case value.KindObj:
		return s.encodeObjectListItem(item.Obj(), depth)
	case value.KindList:
		return s.encodeArrayAsListItem("", item.List(), depth)
	default:
		s.emit(s.indent(depth) + "- " + s.renderArrayScalar(item))
		return nil
	}
}

func (s *state) encodeObjectListItem(obj *value.Obj, depth int) error {
	if obj.Len() == 0 {
		s.emit(s.indent(depth) + "-")
		return nil
	}
	entries := s.orderedEntries(obj, nil)
	first := entries[0]
	firstKeyLiteral := s.encodeFieldKey(obj, first.Key)

	switch first.Value.Kind() {
	case value.KindList:
		if err := s.encodeArrayAsListItem(firstKeyLiteral, first.Value.List(), depth); err != nil {
			return err
		}
	case value.KindObj:
		s.emit(s.indent(depth) + "-")
		return s.encodeObject(obj, depth+1, nil)
	default:
		s.emit(s.indent(depth) + "- " + firstKeyLiteral + ": " + s.renderScalar(first.Value))
	}

	if len(entries) > 1 {
		rest := value.NewObj()
		for _, e := range entries[1:] {
			rest.Set(e.Key, e.Value)
		}
		if s.exempt != nil {
			if m, ok := s.exempt[obj]; ok {
				for k, v := range m {
					if k != first.Key {
						s.exempt.mark(rest, k)
						_ = v
					}
				}
			}
		}
		if err := s.encodeObject(rest, depth+1, nil); err != nil {
			return err
		}
	}
	return nil
}

// encodeArrayAsListItem renders a (possibly keyed) array value that is
// itself the first field of a list item, or a nested array directly
// inside a list. keyLiteral is the already-quote-resolved key (or "" for
// an unkeyed nested array); in both cases the "- " marker is placed
// before the header.
func (s *state) encodeArrayAsListItem(keyLiteral string, items []value.Value, depth int) error {
	indent := s.indent(depth)
	prefix := "- "

	if len(items) == 0 {
		s.emit(indent + prefix + s.renderHeader(keyLiteral, 0, nil, nil) + ":")
		return nil
	}

	if fields, ok := detectTabular(items); ok {
		fields = s.orderFields(nil, fields)
		s.emit(indent + prefix + s.renderHeader(keyLiteral, len(items), fields, items[0].Obj()) + ":")
		for _, item := range items {
			row := make([]string, len(fields))
			for i, f := range fields {
				fv, _ := item.Obj().Get(f)
				row[i] = s.renderArrayScalar(fv)
			}
			s.emit(s.indent(depth+1) + strings.Join(row, string(s.opts.Delimiter)))
		}
		return nil
	}

	if allPrimitive(items) {
		parts := make([]string, len(items))
		for i, it := range items {
			parts[i] = s.renderArrayScalar(it)
		}
		s.emit(indent + prefix + s.renderHeader(keyLiteral, len(items), nil, nil) + ": " + strings.Join(parts, string(s.opts.Delimiter)))
		return nil
	}

	s.emit(indent + prefix + s.renderHeader(keyLiteral, len(items), nil, nil) + ":")
	for _, item := range items {
		if err := s.encodeListItem(item, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func allPrimitive(items []value.Value) bool {
	for _, it := range items {
		if !it.IsPrimitive() {
			return false
		}
	}
	return true
}

// detectTabular reports whether items is a non-empty slice of objects
// that all share the same key set (order-insensitive) with every value
// primitive; the shared field order (from the first item) is returned.
func detectTabular(items []value.Value) ([]string, bool) {
	if len(items) == 0 {
		return nil, false
	}
	first := items[0]
	if first.Kind() != value.KindObj || first.Obj().Len() == 0 {
		return nil, false
	}
	fields := first.Obj().Keys()
	fieldSet := make(map[string]bool, len(fields))
	for _, f := range fields {
		v, _ := first.Obj().Get(f)
		if !v.IsPrimitive() {
			return nil, false
		}
		fieldSet[f] = true
	}
	for _, item := range items[1:] {
		if item.Kind() != value.KindObj {
			return nil, false
		}
		keys := item.Obj().Keys()
		if len(keys) != len(fields) {
			return nil, false
		}
		seen := make(map[string]bool, len(keys))
		for _, k := range keys {
			v, _ := item.Obj().Get(k)
			if !fieldSet[k] || !v.IsPrimitive() {
				return nil, false
			}
			seen[k] = true
		}
		if len(seen) != len(fields) {
			return nil, false
		}
	}
	return fields, true
}

// UnsupportedValueError reports an encode-time value that cannot be
// rendered. No call site in this module constructs it: normalization maps
// every unhandled Go kind to Null before a value reaches the encoder.
func UnsupportedValueError(message string, v any) error {
	return toonerr.NewEncodeError(toonerr.EncodeUnsupportedValue, message, v)
}
