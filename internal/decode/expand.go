package decode

import (
	"strings"

	"github.com/go-toon/toon/internal/guard"
	"github.com/go-toon/toon/internal/toonerr"
	"github.com/go-toon/toon/internal/value"
)

// expandObjectPaths implements path expansion (spec §4.F): for every key
// in obj that was unquoted in the source and is a dotted path of
// identifier-safe segments, split it into a nested object chain. Quoted
// dotted keys are left as literals. Document order of the surviving
// top-level keys is preserved.
func (p *parser) expandObjectPaths(obj *value.Obj) (*value.Obj, error) {
	out := value.NewObj()
	for _, entry := range obj.Entries() {
		key, val := entry.Key, entry.Value

		if val.Kind() == value.KindObj {
			expandedChild, err := p.expandObjectPaths(val.Obj())
			if err != nil {
				return nil, err
			}
			val = value.ObjVal(expandedChild)
		}

		if p.wasQuoted(obj, key) || !guard.IsDottedPath(key) {
			out.Set(key, val)
			continue
		}

		segments := strings.Split(key, ".")
		if err := setPath(out, segments, val, p.opts.Strict); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// setPath walks/creates the nested object chain named by segments inside
// root, setting the final segment to v. Conflicts are resolved per
// strict: strict raises a PathConflict error, non-strict deep-merges
// (object meets object) or overwrites (last-write-wins otherwise).
func setPath(root *value.Obj, segments []string, v value.Value, strict bool) error {
	if len(segments) == 1 {
		if existing, ok := root.Get(segments[0]); ok {
			merged, err := mergeLeaf(existing, v, strict)
			if err != nil {
				return err
			}
			root.Set(segments[0], merged)
			return nil
		}
		root.Set(segments[0], v)
		return nil
	}

	head, tail := segments[0], segments[1:]
	existing, ok := root.Get(head)
	if !ok {
		child := value.NewObj()
		if err := setPath(child, tail, v, strict); err != nil {
			return err
		}
		root.Set(head, value.ObjVal(child))
		return nil
	}

	if existing.Kind() != value.KindObj {
		if strict {
			return toonerr.NewDecodeError(toonerr.DecodePathConflict,
				"path expansion conflict: \""+head+"\" is both a leaf and an object path", 0, "")
		}
		child := value.NewObj()
		if err := setPath(child, tail, v, strict); err != nil {
			return err
		}
		root.Set(head, value.ObjVal(child))
		return nil
	}

	if err := setPath(existing.Obj(), tail, v, strict); err != nil {
		return err
	}
	root.Set(head, existing)
	return nil
}

// mergeLeaf resolves a collision where segments fully name a key that
// already has a value in root (e.g. two siblings expanding to the same
// leaf path). Strict mode always rejects a duplicate leaf; non-strict
// deep-merges when both sides are objects, and otherwise last write wins.
func mergeLeaf(existing, v value.Value, strict bool) (value.Value, error) {
	if existing.Kind() == value.KindObj && v.Kind() == value.KindObj {
		merged := value.NewObj()
		for _, e := range existing.Obj().Entries() {
			merged.Set(e.Key, e.Value)
		}
		for _, e := range v.Obj().Entries() {
			if strict {
				if _, dup := merged.Get(e.Key); dup {
					return value.Value{}, toonerr.NewDecodeError(toonerr.DecodePathConflict,
						"path expansion conflict: duplicate leaf \""+e.Key+"\"", 0, "")
				}
			}
			merged.Set(e.Key, e.Value)
		}
		return value.ObjVal(merged), nil
	}
	if strict {
		return value.Value{}, toonerr.NewDecodeError(toonerr.DecodePathConflict,
			"path expansion conflict: duplicate leaf", 0, "")
	}
	return v, nil
}
