// Package primitive renders and re-parses TOON's primitive scalars:
// null, bool, integer, and float, including the shortest round-trip
// float formatting and the forbidden-leading-zero string carve-out.
package primitive

import (
	"strconv"
	"strings"

	"github.com/go-toon/toon/internal/guard"
	"github.com/go-toon/toon/internal/value"
)

// Render formats a primitive Value as a bare (unquoted) token.
// Strings are escaped and quoted by the caller's quoting decision; Render
// itself only formats the literal form of null/bool/number and the raw
// (unescaped) text of a string, leaving quoting to the encoder so it can
// apply NeedsQuoteValue with the active delimiter in context.
func Render(v value.Value) string {
	switch v.Kind() {
	case value.KindNull:
		return "null"
	case value.KindBool:
		if v.Bool() {
			return "true"
		}
		return "false"
	case value.KindInt:
		return strconv.FormatInt(v.Int(), 10)
	case value.KindFloat:
		return strconv.FormatFloat(v.Float(), 'g', -1, 64)
	case value.KindStr:
		return v.Str()
	default:
		return ""
	}
}

// RenderQuoted renders a string value as a quoted, escaped TOON literal.
func RenderQuoted(s string) string {
	return `"` + guard.Escape(s) + `"`
}

// ParseToken parses a single bare or quoted token per the primitive
// grammar (spec §4.C): null/true/false literals, quoted strings, the
// "0"/"-0" fast path, the forbidden-leading-zero string carve-out, and
// otherwise a numeric-vs-string dispatch based on successful float parse.
func ParseToken(tok string) (value.Value, error) {
	if strings.HasPrefix(tok, `"`) {
		return parseQuoted(tok)
	}

	switch tok {
	case "null":
		return value.Null(), nil
	case "true":
		return value.Bool(true), nil
	case "false":
		return value.Bool(false), nil
	}

	if tok == "0" || tok == "-0" {
		return value.Int(0), nil
	}

	if hasForbiddenLeadingZero(tok) {
		return value.Str(tok), nil
	}

	if looksNumeric(tok) {
		if strings.ContainsAny(tok, ".eE") {
			f, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return value.Value{}, err
			}
			return NormalizeFloat(f), nil
		}
		i, err := strconv.ParseInt(tok, 10, 64)
		if err != nil {
			// Falls back to float parsing for oversized integers.
			f, ferr := strconv.ParseFloat(tok, 64)
			if ferr != nil {
				return value.Value{}, err
			}
			return NormalizeFloat(f), nil
		}
		return value.Int(i), nil
	}

	return value.Str(strings.TrimSpace(tok)), nil
}

// ErrUnterminatedString is returned by ParseToken when a quoted token
// never reaches a closing, unescaped quote.
type ErrUnterminatedString struct{ Token string }

func (e ErrUnterminatedString) Error() string {
	return "unterminated string: " + e.Token
}

func parseQuoted(tok string) (value.Value, error) {
	if len(tok) < 2 || !strings.HasSuffix(tok, `"`) || isEscapedClosingQuote(tok) {
		return value.Value{}, ErrUnterminatedString{Token: tok}
	}
	inner := tok[1 : len(tok)-1]
	unescaped, err := guard.Unescape(inner)
	if err != nil {
		return value.Value{}, err
	}
	return value.Str(unescaped), nil
}

// isEscapedClosingQuote reports whether the trailing quote of tok is
// itself escaped (so the string is not actually closed).
func isEscapedClosingQuote(tok string) bool {
	if len(tok) < 3 {
		return false
	}
	backslashes := 0
	for i := len(tok) - 2; i >= 1 && tok[i] == '\\'; i-- {
		backslashes++
	}
	return backslashes%2 == 1
}

// hasForbiddenLeadingZero reports whether tok looks like an integer with
// a disallowed leading zero (e.g. "007", "-007"), which TOON preserves
// as a literal string rather than parsing as a number.
func hasForbiddenLeadingZero(tok string) bool {
	s := tok
	if strings.HasPrefix(s, "-") {
		s = s[1:]
	}
	if len(s) < 2 || s[0] != '0' {
		return false
	}
	if strings.ContainsAny(tok, ".eE") {
		return false
	}
	return s[1] >= '0' && s[1] <= '9'
}

// looksNumeric reports whether tok parses as a float consuming the whole
// string (the same test used by guard.NeedsQuoteValue).
func looksNumeric(tok string) bool {
	_, err := strconv.ParseFloat(tok, 64)
	return err == nil
}

// NormalizeFloat folds a float64 into the canonical Value per spec §4.A:
// negative zero and zero both fold to Int(0); non-finite folds to Null;
// integer-valued floats that fit an int64 fold to Int; otherwise Float.
func NormalizeFloat(f float64) value.Value {
	if f == 0 {
		return value.Int(0)
	}
	if isNaNOrInf(f) {
		return value.Null()
	}
	if f == float64(int64(f)) && withinInt64Range(f) {
		return value.Int(int64(f))
	}
	return value.Float(f)
}

func isNaNOrInf(f float64) bool {
	return f != f || f > maxFiniteFloat || f < -maxFiniteFloat
}

const maxFiniteFloat = 1.7976931348623157e308

func withinInt64Range(f float64) bool {
	const maxInt64AsFloat = 9223372036854775808.0 // 2^63
	return f > -maxInt64AsFloat && f < maxInt64AsFloat
}
