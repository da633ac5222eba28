package encode

import (
	"strings"

	"github.com/go-toon/toon/internal/guard"
	"github.com/go-toon/toon/internal/value"
)

// exemptSet records, per output object, which of its keys are
// fold-produced dotted paths. Those must render unquoted even though
// they contain literal dots; a pre-existing literal key that happens to
// contain a dot is never added here, so it still goes through the
// normal quoting rule and can't be mistaken for a folded path.
type exemptSet map[*value.Obj]map[string]bool

func (e exemptSet) mark(obj *value.Obj, key string) {
	m, ok := e[obj]
	if !ok {
		m = make(map[string]bool)
		e[obj] = m
	}
	m[key] = true
}

// FoldKeys applies safe key folding (spec §4.E) to an object tree,
// collapsing single-key nested object chains into dotted-path entries,
// e.g. {a:{b:{c:1}}} becomes {"a.b.c": 1}. flattenDepth bounds the number
// of segments a chain may grow to; a negative value means unbounded. It
// returns the folded tree alongside the set of keys that must be
// rendered unquoted despite containing dots.
func FoldKeys(root *value.Obj, flattenDepth int) (*value.Obj, exemptSet) {
	exempt := make(exemptSet)
	if root == nil {
		return root, exempt
	}
	forbidden := literalDottedKeys(root)
	out := foldObj(root, flattenDepth, forbidden, exempt)
	return out, exempt
}

// literalDottedKeys collects the root object's own keys that already
// contain a literal dot, per the root-level collision guard.
func literalDottedKeys(root *value.Obj) map[string]bool {
	forbidden := make(map[string]bool)
	for _, k := range root.Keys() {
		if strings.Contains(k, ".") {
			forbidden[k] = true
		}
	}
	return forbidden
}

func foldObj(obj *value.Obj, flattenDepth int, forbidden map[string]bool, exempt exemptSet) *value.Obj {
	out := value.NewObj()
	for _, entry := range obj.Entries() {
		key, val := entry.Key, entry.Value
		path, leaf, folded := foldChain(key, val, flattenDepth)
		if folded && len(path) > 1 {
			dotted := strings.Join(path, ".")
			if forbidden[dotted] {
				// Collision: fall back to the unfolded, single-segment form.
				out.Set(key, foldChildren(val, flattenDepth, forbidden, exempt))
				continue
			}
			out.Set(dotted, foldChildren(leaf, flattenDepth, forbidden, exempt))
			exempt.mark(out, dotted)
			continue
		}
		out.Set(key, foldChildren(val, flattenDepth, forbidden, exempt))
	}
	return out
}

// foldChildren recurses folding into nested object/list structure that a
// (possibly already-folded) value still contains, so chains nested deeper
// in the tree still get folded.
func foldChildren(v value.Value, flattenDepth int, forbidden map[string]bool, exempt exemptSet) value.Value {
	switch v.Kind() {
	case value.KindObj:
		return value.ObjVal(foldObj(v.Obj(), flattenDepth, forbidden, exempt))
	case value.KindList:
		elems := v.List()
		out := make([]value.Value, len(elems))
		for i, e := range elems {
			out[i] = foldChildren(e, flattenDepth, forbidden, exempt)
		}
		return value.List(out)
	default:
		return v
	}
}

// foldChain walks down from (key, val) while each step is a single-key
// object whose key is a quote-free identifier segment, returning the
// accumulated dotted path, the leaf value reached, and whether folding
// progressed past the first segment.
func foldChain(key string, val value.Value, flattenDepth int) (path []string, leaf value.Value, folded bool) {
	path = []string{key}
	leaf = val
	if !guard.IsIdentifierSegment(key) {
		return path, leaf, false
	}

	for flattenDepth < 0 || len(path) < flattenDepth {
		if leaf.Kind() != value.KindObj || leaf.Obj().Len() != 1 {
			break
		}
		entries := leaf.Obj().Entries()
		inner := entries[0]
		if !guard.IsIdentifierSegment(inner.Key) {
			break
		}
		path = append(path, inner.Key)
		leaf = inner.Value
	}

	return path, leaf, len(path) > 1
}
