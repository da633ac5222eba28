package decode

// Options configures the structural decoder (spec §3 Decode options).
type Options struct {
	// Strict enforces indentation discipline: no tabs in indentation, no
	// indent not a multiple of IndentSize, no blank lines inside arrays,
	// and exact length/width validation against declared headers.
	Strict bool
	// IndentSize is the required indent step in strict mode.
	IndentSize int
	// ExpandPaths turns on splitting unquoted dotted keys into nested
	// objects after an object scope is parsed.
	ExpandPaths bool
	// AcceptLengthMarker opts into accepting the legacy "[#N]" header
	// form; by default a decoder rejects the marker prefix.
	AcceptLengthMarker bool
}

// DefaultOptions returns the TOON Core Profile decoder defaults (spec §3).
func DefaultOptions() Options {
	return Options{
		Strict:             true,
		IndentSize:         2,
		ExpandPaths:        false,
		AcceptLengthMarker: false,
	}
}
