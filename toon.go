// Package toon implements the Token-Oriented Object Notation (TOON) codec
// described in spec.md: a compact, indentation-based serialization format
// with an encoder (normalized value tree → text) and a structural decoder
// (text → value tree), kept round-trip compatible under matching options.
// The package exposes a small public API while keeping format internals
// inside the internal/ packages.
package toon

import (
	"time"

	"github.com/go-toon/toon/internal/decode"
	"github.com/go-toon/toon/internal/encode"
	"github.com/go-toon/toon/internal/normalize"
	"github.com/go-toon/toon/internal/value"
)

// Value is the canonical TOON value tree (spec §3): a tagged union of
// Null, Bool, Int, Float, Str, List and Obj, with Obj preserving document
// order. Decode returns one; Encode accepts any Go value, normalizing it
// into one first.
type Value = value.Value

// Obj is Value's ordered-object payload, for callers that want to build a
// tree by hand instead of normalizing a native Go value.
type Obj = value.Obj

// NewObj returns an empty ordered object.
func NewObj() *Obj { return value.NewObj() }

// Encode renders v as a complete TOON document. v may be any Go value
// (struct, map, slice, primitive) or an already-built Value/*Obj.
func Encode(v any, opts ...EncodeOption) (string, error) {
	cfg := newEncodeConfig(opts)
	start := time.Now()
	fireStart(cfg.hook, EventEncodeStart)

	nv, err := normalize.Normalize(v, normalize.Options{TagKey: cfg.tagKey})
	if err != nil {
		fireException(cfg.hook, EventEncodeException, start, "", err)
		return "", err
	}

	doc, err := encode.Encode(nv, cfg.opts)
	if err != nil {
		fireException(cfg.hook, EventEncodeException, start, nv.Kind().String(), err)
		return "", err
	}
	fireStop(cfg.hook, EventEncodeStop, start, len(doc), nv.Kind().String())
	return doc, nil
}

// MustEncode is Encode, panicking on error.
func MustEncode(v any, opts ...EncodeOption) string {
	doc, err := Encode(v, opts...)
	if err != nil {
		panic(err)
	}
	return doc
}

// Decode parses a complete TOON document into a Value tree.
func Decode(doc string, opts ...DecodeOption) (Value, error) {
	cfg := newDecodeConfig(opts)
	start := time.Now()
	fireStart(cfg.hook, EventDecodeStart)

	v, err := decode.Decode(doc, cfg.opts)
	if err != nil {
		fireException(cfg.hook, EventDecodeException, start, "", err)
		return Value{}, err
	}
	fireStop(cfg.hook, EventDecodeStop, start, len(doc), v.Kind().String())
	return v, nil
}

// MustDecode is Decode, panicking on error.
func MustDecode(doc string, opts ...DecodeOption) Value {
	v, err := Decode(doc, opts...)
	if err != nil {
		panic(err)
	}
	return v
}
