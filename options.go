package toon

import "github.com/go-toon/toon/internal/encode"

// KeyOrderResolver returns the key order to use for the object entry at
// path (root is the empty slice), restricted to keys that exist in
// existingKeys. Returning nil falls back to lexicographic order.
type KeyOrderResolver = encode.KeyOrderResolver

type encodeConfig struct {
	opts   encode.Options
	tagKey string
	hook   Hook
}

// EncodeOption mutates Encode's behavior.
type EncodeOption func(*encodeConfig)

func newEncodeConfig(opts []EncodeOption) *encodeConfig {
	cfg := &encodeConfig{opts: encode.DefaultOptions()}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithIndent sets the number of spaces per indentation level.
func WithIndent(spaces int) EncodeOption {
	return func(c *encodeConfig) { c.opts.IndentSize = spaces }
}

// WithDelimiter sets the array/tabular delimiter (',', '\t', or '|').
func WithDelimiter(delimiter rune) EncodeOption {
	return func(c *encodeConfig) { c.opts.Delimiter = delimiter }
}

// WithLengthMarker sets a literal prefix placed inside length headers
// (e.g. "#" produces "[#3]"); empty (the default) omits the marker.
func WithLengthMarker(marker string) EncodeOption {
	return func(c *encodeConfig) { c.opts.LengthMarker = marker }
}

// WithKeyOrder installs a resolver consulted for each object's field
// order before falling back to lexicographic order.
func WithKeyOrder(resolver KeyOrderResolver) EncodeOption {
	return func(c *encodeConfig) { c.opts.KeyOrder = resolver }
}

// WithKeyFolding enables safe key folding: single-key nested object
// chains collapse into dotted paths.
func WithKeyFolding(enabled bool) EncodeOption {
	return func(c *encodeConfig) { c.opts.KeyFolding = enabled }
}

// WithFlattenDepth bounds how many segments a fold chain may grow to.
// A negative value (the default) means unbounded.
func WithFlattenDepth(depth int) EncodeOption {
	return func(c *encodeConfig) { c.opts.FlattenDepth = depth }
}

// WithTagKey overrides the struct tag normalization consults for field
// names and omitempty (default "toon").
func WithTagKey(tag string) EncodeOption {
	return func(c *encodeConfig) { c.tagKey = tag }
}

// WithHook attaches a Hook fired around Encode's start/stop/exception.
func WithHook(h Hook) EncodeOption {
	return func(c *encodeConfig) { c.hook = h }
}
