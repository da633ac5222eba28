package decode

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/go-toon/toon/internal/guard"
	"github.com/go-toon/toon/internal/primitive"
	"github.com/go-toon/toon/internal/toonerr"
	"github.com/go-toon/toon/internal/value"
)

// parsedHeader is the decoded form of an array header: "<key>[<N><D>]{fields}:".
type parsedHeader struct {
	key          string
	keyQuoted    bool
	length       int
	delimiter    rune
	fields       []string
	inlineValues string
}

// tryParseHeader attempts to read content as "<key>[...]{...}: rest". It
// returns ok=false (no error) when content simply isn't shaped like a
// header, e.g. a plain "key: value" line.
func tryParseHeader(lineNumber int, content string, opts Options) (parsedHeader, bool, error) {
	colon := indexOutsideQuotes(content, ':')
	if colon == -1 {
		return parsedHeader{}, false, nil
	}
	left := strings.TrimSpace(content[:colon])
	right := strings.TrimSpace(content[colon+1:])

	bracketStart := indexOutsideQuotes(left, '[')
	if bracketStart == -1 {
		return parsedHeader{}, false, nil
	}
	rest := left[bracketStart+1:]
	bracketEnd := indexOutsideQuotes(rest, ']')
	if bracketEnd == -1 {
		return parsedHeader{}, false, toonerr.NewDecodeError(toonerr.DecodeMalformedHeader,
			"missing closing bracket in array header", lineNumber, content)
	}

	keyPart := strings.TrimSpace(left[:bracketStart])
	bracketSegment := rest[:bracketEnd]
	fieldSegment := strings.TrimSpace(rest[bracketEnd+1:])

	header := parsedHeader{delimiter: ','}
	if keyPart != "" {
		key, quoted, err := decodeKeyTokenQuoted(lineNumber, keyPart, content)
		if err != nil {
			return parsedHeader{}, false, err
		}
		header.key = key
		header.keyQuoted = quoted
	}

	length, delim, err := parseBracketSegment(lineNumber, bracketSegment, content, opts)
	if err != nil {
		return parsedHeader{}, false, err
	}
	header.length = length
	header.delimiter = delim

	if fieldSegment != "" {
		if !strings.HasPrefix(fieldSegment, "{") || !strings.HasSuffix(fieldSegment, "}") {
			return parsedHeader{}, false, toonerr.NewDecodeError(toonerr.DecodeMalformedHeader,
				"invalid field list in array header", lineNumber, content)
		}
		inner := fieldSegment[1 : len(fieldSegment)-1]
		if inner != "" {
			rawFields, err := splitInlineValues(lineNumber, inner, delim, content)
			if err != nil {
				return parsedHeader{}, false, err
			}
			fields := make([]string, 0, len(rawFields))
			for _, tok := range rawFields {
				field, err := decodeKeyToken(lineNumber, tok, content)
				if err != nil {
					return parsedHeader{}, false, err
				}
				fields = append(fields, field)
			}
			header.fields = fields
		}
	}

	header.inlineValues = right
	return header, true, nil
}

// parseBracketSegment reads the "N" or "#N" or "N<delim>" contents of an
// array header's length bracket, inferring the active delimiter from
// whichever of tab/pipe appears (absent either, the delimiter is comma).
func parseBracketSegment(lineNumber int, segment, lineContent string, opts Options) (int, rune, error) {
	if strings.HasPrefix(segment, "#") {
		if !opts.AcceptLengthMarker {
			return 0, 0, toonerr.NewDecodeError(toonerr.DecodeMalformedHeader,
				"legacy length marker \"#\" is not accepted", lineNumber, lineContent)
		}
		segment = segment[1:]
	}
	if segment == "" {
		return 0, 0, toonerr.NewDecodeError(toonerr.DecodeMalformedHeader,
			"missing array length", lineNumber, lineContent)
	}

	var digits strings.Builder
	delim := ','
	for _, r := range segment {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
			continue
		}
		switch r {
		case '\t':
			delim = '\t'
		case '|':
			delim = '|'
		default:
			return 0, 0, toonerr.NewDecodeError(toonerr.DecodeMalformedHeader,
				"invalid delimiter symbol in array header", lineNumber, lineContent)
		}
	}
	if digits.Len() == 0 {
		return 0, 0, toonerr.NewDecodeError(toonerr.DecodeMalformedHeader,
			"missing digits in array length", lineNumber, lineContent)
	}
	length, err := strconv.Atoi(digits.String())
	if err != nil {
		return 0, 0, toonerr.NewDecodeError(toonerr.DecodeMalformedHeader,
			"invalid array length", lineNumber, lineContent)
	}
	return length, delim, nil
}

// decodeKeyToken reads a (possibly quoted) key token and returns the
// decoded key text; decodeKeyTokenQuoted also reports whether it was
// quoted in the source.
func decodeKeyToken(lineNumber int, token, lineContent string) (string, error) {
	key, _, err := decodeKeyTokenQuoted(lineNumber, token, lineContent)
	return key, err
}

func decodeKeyTokenQuoted(lineNumber int, token, lineContent string) (string, bool, error) {
	if token == "" {
		return "", false, toonerr.NewDecodeError(toonerr.DecodeParseFailure,
			"empty key", lineNumber, lineContent)
	}
	if token[0] == '"' {
		s, err := unquoteString(lineNumber, token, lineContent)
		if err != nil {
			return "", false, err
		}
		return s, true, nil
	}
	if !guard.IsIdentifierSegment(token) && !guard.IsDottedPath(token) {
		return "", false, toonerr.NewDecodeError(toonerr.DecodeParseFailure,
			"invalid unquoted key", lineNumber, lineContent)
	}
	return token, false, nil
}

// decodePrimitiveToken parses a single array/object scalar token,
// surfacing primitive.ParseToken's errors as DecodeErrors.
func decodePrimitiveToken(lineNumber int, token, lineContent string) (value.Value, error) {
	if token == "" {
		return value.Str(""), nil
	}
	v, err := primitive.ParseToken(token)
	if err != nil {
		if _, ok := err.(primitive.ErrUnterminatedString); ok {
			return value.Value{}, toonerr.NewDecodeError(toonerr.DecodeUnterminatedString,
				err.Error(), lineNumber, lineContent)
		}
		if guard.IsInvalidEscape(err) {
			return value.Value{}, toonerr.NewDecodeError(toonerr.DecodeInvalidEscape,
				err.Error(), lineNumber, lineContent)
		}
		return value.Value{}, toonerr.NewDecodeError(toonerr.DecodeParseFailure,
			err.Error(), lineNumber, lineContent)
	}
	return v, nil
}

func unquoteString(lineNumber int, token, lineContent string) (string, error) {
	v, err := decodePrimitiveToken(lineNumber, token, lineContent)
	if err != nil {
		return "", err
	}
	return v.Str(), nil
}

func isKeyValue(content string) bool {
	return indexOutsideQuotes(content, ':') > 0
}

// indexOutsideQuotes returns the byte index of the first occurrence of
// target outside a quoted region, or -1.
func indexOutsideQuotes(s string, target rune) int {
	inQuotes := false
	escaped := false
	for idx, r := range s {
		switch {
		case escaped:
			escaped = false
		case r == '\\' && inQuotes:
			escaped = true
		case r == '"':
			inQuotes = !inQuotes
		case !inQuotes && r == target:
			return idx
		}
	}
	return -1
}

// splitInlineValues splits s on delimiter, respecting quoted regions, with
// the §4.F safety fallback: a declared comma delimiter but a value
// containing tabs and no commas is reinterpreted as tab-separated.
func splitInlineValues(lineNumber int, s string, delimiter rune, lineContent string) ([]string, error) {
	if delimiter == ',' && strings.ContainsRune(s, '\t') && !containsOutsideQuotes(s, ',') {
		delimiter = '\t'
	}
	var tokens []string
	var cur strings.Builder
	inQuotes := false
	escaped := false
	for _, r := range s {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case inQuotes && r == '\\':
			cur.WriteRune(r)
			escaped = true
		case r == '"':
			cur.WriteRune(r)
			inQuotes = !inQuotes
		case !inQuotes && r == delimiter:
			tokens = append(tokens, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	if inQuotes {
		return nil, toonerr.NewDecodeError(toonerr.DecodeUnterminatedString,
			"unterminated quoted string", lineNumber, lineContent)
	}
	tokens = append(tokens, strings.TrimSpace(cur.String()))
	return tokens, nil
}

func containsOutsideQuotes(s string, target rune) bool {
	return indexOutsideQuotes(s, target) != -1
}
