package encode

// KeyOrderResolver returns the key order to use for the object entry at
// path (root is the empty slice), restricted to keys that actually exist
// in existingKeys. Returning nil means "no explicit order for this path";
// the caller falls back to lexicographic order.
type KeyOrderResolver func(path []string, existingKeys []string) []string

// Options configures the array/object encoder (spec §3 Encode options).
type Options struct {
	IndentSize int
	Delimiter  rune
	// LengthMarker is a literal prefix placed inside a length header
	// (e.g. "#" produces "[#3]"); empty means no marker.
	LengthMarker string
	KeyOrder     KeyOrderResolver
	// KeyFolding enables safe key folding (single-key nested chains
	// collapsed into dotted paths).
	KeyFolding bool
	// FlattenDepth bounds the number of segments a fold chain may grow
	// to. A negative value means unbounded ("infinity").
	FlattenDepth int
}

// DefaultOptions returns the TOON Core Profile defaults (spec §3).
func DefaultOptions() Options {
	return Options{
		IndentSize:   2,
		Delimiter:    ',',
		LengthMarker: "",
		KeyOrder:     nil,
		KeyFolding:   false,
		FlattenDepth: -1,
	}
}
