package toon

import "github.com/go-toon/toon/internal/decode"

// KeyMode controls how decoded object keys are represented, per the
// "keys" decode option. Go has no interned-symbol type equivalent to
// Elixir atoms, so every mode decodes to Go strings; the atom modes
// exist only so callers can pass them without the decoder rejecting the
// option.
type KeyMode int

const (
	KeysStrings KeyMode = iota
	KeysAtoms
	KeysAtomsExisting
)

type decodeConfig struct {
	opts    decode.Options
	keyMode KeyMode
	hook    Hook
}

// DecodeOption mutates Decode's behavior.
type DecodeOption func(*decodeConfig)

func newDecodeConfig(opts []DecodeOption) *decodeConfig {
	cfg := &decodeConfig{opts: decode.DefaultOptions()}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithStrict toggles strict structural validation (indentation
// discipline, length/width checks, no blank lines inside arrays).
func WithStrict(strict bool) DecodeOption {
	return func(c *decodeConfig) { c.opts.Strict = strict }
}

// WithIndentSize sets the required indent step under strict mode.
func WithIndentSize(size int) DecodeOption {
	return func(c *decodeConfig) { c.opts.IndentSize = size }
}

// WithExpandPaths turns on splitting unquoted dotted keys into nested
// objects after each object scope is parsed.
func WithExpandPaths(enabled bool) DecodeOption {
	return func(c *decodeConfig) { c.opts.ExpandPaths = enabled }
}

// WithLengthMarkerAccepted opts into accepting the legacy "[#N]" header
// form; rejected by default.
func WithLengthMarkerAccepted(accepted bool) DecodeOption {
	return func(c *decodeConfig) { c.opts.AcceptLengthMarker = accepted }
}

// WithKeys sets the key representation mode (spec's "keys" option).
func WithKeys(mode KeyMode) DecodeOption {
	return func(c *decodeConfig) { c.keyMode = mode }
}

// WithDecodeHook attaches a Hook fired around Decode's
// start/stop/exception.
func WithDecodeHook(h Hook) DecodeOption {
	return func(c *decodeConfig) { c.hook = h }
}
