// Package toonerr provides the error types raised by the TOON encoder and
// decoder. Both error kinds carry a human message; decode errors also
// carry the line number and source line, rendered beneath the message in
// the style of a compiler diagnostic.
package toonerr

import (
	"fmt"
	"strings"
)

// EncodeKind enumerates the EncodeError kinds named in the specification.
type EncodeKind string

const (
	EncodeInvalidOptions      EncodeKind = "InvalidOptions"
	EncodeUnsupportedValue    EncodeKind = "UnsupportedValue"
	EncodeNormalizationFailed EncodeKind = "NormalizationFailure"
)

// EncodeError is raised by the encoder. Value carries a %v-rendering of
// the offending Go value, when known.
type EncodeError struct {
	Kind    EncodeKind
	Message string
	Value   any
}

func (e *EncodeError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("toon: %s: %s (value: %#v)", e.Kind, e.Message, e.Value)
	}
	return fmt.Sprintf("toon: %s: %s", e.Kind, e.Message)
}

// NewEncodeError constructs an EncodeError.
func NewEncodeError(kind EncodeKind, message string, value any) *EncodeError {
	return &EncodeError{Kind: kind, Message: message, Value: value}
}

// DecodeKind enumerates the DecodeError kinds named in the specification.
type DecodeKind string

const (
	DecodeInvalidOptions       DecodeKind = "InvalidOptions"
	DecodeIndentationViolation DecodeKind = "IndentationViolation"
	DecodeArrayLengthMismatch  DecodeKind = "ArrayLengthMismatch"
	DecodeRowWidthMismatch     DecodeKind = "RowWidthMismatch"
	DecodeUnterminatedString   DecodeKind = "UnterminatedString"
	DecodeInvalidEscape        DecodeKind = "InvalidEscape"
	DecodeMalformedHeader      DecodeKind = "MalformedHeader"
	DecodePathConflict         DecodeKind = "PathConflict"
	DecodeBlankLineInArray     DecodeKind = "BlankLineInArray"
	DecodeParseFailure         DecodeKind = "ParseFailure"
)

// DecodeError is raised by the decoder. Line is 1-indexed; Snippet is the
// raw source line the error occurred on (empty when not applicable, e.g.
// InvalidOptions raised before any line is read).
type DecodeError struct {
	Kind    DecodeKind
	Message string
	Line    int
	Snippet string
}

func (e *DecodeError) Error() string {
	return e.Format(false)
}

// NewDecodeError constructs a DecodeError.
func NewDecodeError(kind DecodeKind, message string, line int, snippet string) *DecodeError {
	return &DecodeError{Kind: kind, Message: message, Line: line, Snippet: snippet}
}

// Format renders a one- or two-line diagnostic: a "line N: message" header
// followed by the offending source line, mirroring a compiler error's
// source-context rendering. When color is true the message is wrapped in
// ANSI bold.
func (e *DecodeError) Format(color bool) string {
	var sb strings.Builder

	if e.Line > 0 {
		sb.WriteString(fmt.Sprintf("toon: line %d: ", e.Line))
	} else {
		sb.WriteString("toon: ")
	}
	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(fmt.Sprintf("%s: %s", e.Kind, e.Message))
	if color {
		sb.WriteString("\033[0m")
	}

	if e.Snippet != "" {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%4d | ", e.Line))
		sb.WriteString(e.Snippet)
	}

	return sb.String()
}
