// Package decode implements the TOON structural decoder (spec §4.F): a
// line-oriented, indentation-aware parser that tokenizes a document,
// groups lines by indentation, and dispatches to inline/tabular/list/
// object shapes, validating declared lengths and widths along the way.
package decode

import (
	"strings"

	"github.com/go-toon/toon/internal/toonerr"
	"github.com/go-toon/toon/internal/value"
)

// Decode parses a complete TOON document into a canonical value tree.
func Decode(doc string, opts Options) (value.Value, error) {
	lines, err := newParsedLines(doc, opts)
	if err != nil {
		return value.Value{}, err
	}
	p := &parser{lines: lines, opts: opts, quoted: make(map[*value.Obj]map[string]bool)}
	return p.parseDocument()
}

type parser struct {
	lines  []parsedLine
	pos    int
	opts   Options
	quoted map[*value.Obj]map[string]bool
}

// markQuoted records that key was written as a quoted literal in the
// source for obj, so path expansion leaves it alone even if it happens
// to look like a dotted path.
func (p *parser) markQuoted(obj *value.Obj, key string) {
	m, ok := p.quoted[obj]
	if !ok {
		m = make(map[string]bool)
		p.quoted[obj] = m
	}
	m[key] = true
}

func (p *parser) wasQuoted(obj *value.Obj, key string) bool {
	return p.quoted[obj] != nil && p.quoted[obj][key]
}

func (p *parser) current() parsedLine { return p.lines[p.pos] }

func (p *parser) skipBlankLines() {
	for p.pos < len(p.lines) && p.lines[p.pos].blank {
		p.pos++
	}
}

func (p *parser) countRemainingNonBlank() int {
	count := 0
	for _, l := range p.lines[p.pos:] {
		if !l.blank {
			count++
		}
	}
	return count
}

func (p *parser) nextNonBlankIndent(from int) (int, bool) {
	for i := from + 1; i < len(p.lines); i++ {
		if !p.lines[i].blank {
			return p.lines[i].indent, true
		}
	}
	return 0, false
}

func (p *parser) lastLineNumber() int {
	if p.pos > 0 && p.pos-1 < len(p.lines) {
		return p.lines[p.pos-1].number
	}
	if len(p.lines) > 0 {
		return p.lines[len(p.lines)-1].number
	}
	return 0
}

func (p *parser) parseDocument() (value.Value, error) {
	p.skipBlankLines()
	if p.pos >= len(p.lines) {
		return value.ObjVal(value.NewObj()), nil
	}

	nonBlank := p.countRemainingNonBlank()
	first := p.current()

	header, isHeader, err := tryParseHeader(first.number, first.content, p.opts)
	if err != nil {
		return value.Value{}, err
	}

	if nonBlank == 1 && !isHeader && !isKeyValue(first.content) {
		token := strings.TrimSpace(first.content)
		v, err := decodePrimitiveToken(first.number, token, first.content)
		if err != nil {
			return value.Value{}, err
		}
		p.pos++
		return v, nil
	}

	if isHeader && first.indent == 0 && header.key == "" {
		p.pos++
		return p.parseArray(header, 0)
	}

	obj, err := p.parseObject(0)
	if err != nil {
		return value.Value{}, err
	}
	return value.ObjVal(obj), nil
}

func (p *parser) parseObject(depth int) (*value.Obj, error) {
	result := value.NewObj()
	for p.pos < len(p.lines) {
		line := p.current()
		if line.blank {
			p.pos++
			continue
		}
		if line.indent < depth {
			break
		}
		if line.indent > depth {
			return nil, toonerr.NewDecodeError(toonerr.DecodeIndentationViolation,
				"unexpected indentation", line.number, line.content)
		}

		header, isHeader, err := tryParseHeader(line.number, line.content, p.opts)
		if err != nil {
			return nil, err
		}
		if isHeader {
			if header.key == "" {
				return nil, toonerr.NewDecodeError(toonerr.DecodeParseFailure,
					"arrays within objects must have a key", line.number, line.content)
			}
			p.pos++
			arr, err := p.parseArray(header, depth)
			if err != nil {
				return nil, err
			}
			p.assign(result, header.key, header.keyQuoted, arr)
			continue
		}

		key, quoted, rest, err := splitKeyValueQuoted(line.number, line.content)
		if err != nil {
			return nil, err
		}
		p.pos++
		if rest == "" {
			nested, err := p.parseObject(depth + 1)
			if err != nil {
				return nil, err
			}
			p.assign(result, key, quoted, value.ObjVal(nested))
			continue
		}

		v, err := decodePrimitiveToken(line.number, rest, line.content)
		if err != nil {
			return nil, err
		}
		p.assign(result, key, quoted, v)
	}

	if p.opts.ExpandPaths {
		return p.expandObjectPaths(result)
	}
	return result, nil
}

// assign sets key on obj directly; path expansion (when enabled) is
// applied once per object scope in parseObject/parseListArray, not per
// assignment, so raw keys are kept here.
func (p *parser) assign(obj *value.Obj, key string, quoted bool, v value.Value) {
	obj.Set(key, v)
	if quoted {
		p.markQuoted(obj, key)
	}
}

func (p *parser) parseArray(header parsedHeader, depth int) (value.Value, error) {
	delim := header.delimiter

	if header.inlineValues != "" {
		lineContent := ""
		if p.pos > 0 && p.pos-1 < len(p.lines) {
			lineContent = p.lines[p.pos-1].content
		}
		tokens, err := splitInlineValues(p.lastLineNumber(), header.inlineValues, delim, lineContent)
		if err != nil {
			return value.Value{}, err
		}
		items := make([]value.Value, 0, len(tokens))
		for _, tok := range tokens {
			v, err := decodePrimitiveToken(p.lastLineNumber(), tok, lineContent)
			if err != nil {
				return value.Value{}, err
			}
			items = append(items, v)
		}
		if p.opts.Strict && len(items) != header.length {
			return value.Value{}, toonerr.NewDecodeError(toonerr.DecodeArrayLengthMismatch,
				"inline array length mismatch", p.lastLineNumber(), lineContent)
		}
		return value.List(items), nil
	}

	if header.length == 0 && len(header.fields) == 0 {
		return value.List(nil), nil
	}

	if len(header.fields) > 0 {
		return p.parseTabularArray(header, depth)
	}

	return p.parseListArray(header, depth)
}

func (p *parser) parseTabularArray(header parsedHeader, depth int) (value.Value, error) {
	rows := make([]value.Value, 0, header.length)
	for p.pos < len(p.lines) {
		line := p.current()
		if line.blank {
			if p.opts.Strict {
				if nextIndent, ok := p.nextNonBlankIndent(p.pos); !ok || nextIndent <= depth {
					break
				}
				return value.Value{}, toonerr.NewDecodeError(toonerr.DecodeBlankLineInArray,
					"blank line inside tabular array", line.number, line.content)
			}
			p.pos++
			continue
		}
		if line.indent <= depth {
			break
		}
		if line.indent != depth+1 {
			return value.Value{}, toonerr.NewDecodeError(toonerr.DecodeIndentationViolation,
				"invalid indentation for tabular row", line.number, line.content)
		}
		trimmed := strings.TrimSpace(line.content)
		if indexOutsideQuotes(trimmed, ':') != -1 {
			break
		}
		p.pos++
		raw, err := splitInlineValues(line.number, trimmed, header.delimiter, line.content)
		if err != nil {
			return value.Value{}, err
		}
		if p.opts.Strict && len(raw) != len(header.fields) {
			return value.Value{}, toonerr.NewDecodeError(toonerr.DecodeRowWidthMismatch,
				"tabular row width mismatch", line.number, line.content)
		}
		row := value.NewObj()
		for i, field := range header.fields {
			if i >= len(raw) {
				break
			}
			v, err := decodePrimitiveToken(line.number, raw[i], line.content)
			if err != nil {
				return value.Value{}, err
			}
			row.Set(field, v)
		}
		rows = append(rows, value.ObjVal(row))
		if p.opts.Strict && len(rows) > header.length {
			return value.Value{}, toonerr.NewDecodeError(toonerr.DecodeArrayLengthMismatch,
				"too many tabular rows", line.number, line.content)
		}
	}
	if p.opts.Strict && len(rows) != header.length {
		return value.Value{}, toonerr.NewDecodeError(toonerr.DecodeArrayLengthMismatch,
			"tabular array length mismatch", p.lastLineNumber(), "")
	}
	return value.List(rows), nil
}

func (p *parser) parseListArray(header parsedHeader, depth int) (value.Value, error) {
	items := make([]value.Value, 0, header.length)
	for p.pos < len(p.lines) {
		line := p.current()
		if line.blank {
			if p.opts.Strict {
				if nextIndent, ok := p.nextNonBlankIndent(p.pos); !ok || nextIndent <= depth {
					break
				}
				return value.Value{}, toonerr.NewDecodeError(toonerr.DecodeBlankLineInArray,
					"blank line inside list array", line.number, line.content)
			}
			p.pos++
			continue
		}
		if line.indent <= depth {
			break
		}
		if line.indent != depth+1 {
			return value.Value{}, toonerr.NewDecodeError(toonerr.DecodeIndentationViolation,
				"invalid indentation for list item", line.number, line.content)
		}
		if !strings.HasPrefix(line.content, "-") {
			break
		}
		itemContent := strings.TrimSpace(line.content[1:])
		p.pos++

		if itemContent == "" {
			items = append(items, value.ObjVal(value.NewObj()))
			continue
		}

		if strings.HasPrefix(itemContent, "[") {
			itemHeader, ok, err := tryParseHeader(line.number, itemContent, p.opts)
			if err != nil {
				return value.Value{}, err
			}
			if !ok {
				return value.Value{}, toonerr.NewDecodeError(toonerr.DecodeMalformedHeader,
					"invalid array header in list item", line.number, line.content)
			}
			itemValue, err := p.parseArray(itemHeader, depth+1)
			if err != nil {
				return value.Value{}, err
			}
			items = append(items, itemValue)
			continue
		}

		if header, isHeader, err := tryParseHeader(line.number, itemContent, p.opts); err != nil {
			return value.Value{}, err
		} else if isHeader {
			if header.key == "" {
				return value.Value{}, toonerr.NewDecodeError(toonerr.DecodeParseFailure,
					"arrays within objects must have a key", line.number, line.content)
			}
			arrayValue, err := p.parseArray(header, depth+1)
			if err != nil {
				return value.Value{}, err
			}
			obj := value.NewObj()
			obj.Set(header.key, arrayValue)
			if err := p.collectObjectListSiblings(obj, depth); err != nil {
				return value.Value{}, err
			}
			items = append(items, value.ObjVal(obj))
			continue
		}

		if isKeyValue(itemContent) {
			key, quoted, rest, err := splitKeyValueFromContent(line.number, itemContent)
			if err != nil {
				return value.Value{}, err
			}
			if rest == "" {
				nested, err := p.parseObject(depth + 2)
				if err != nil {
					return value.Value{}, err
				}
				obj := value.NewObj()
				obj.Set(key, value.ObjVal(nested))
				if quoted {
					p.markQuoted(obj, key)
				}
				items = append(items, value.ObjVal(obj))
				continue
			}
			v, err := decodePrimitiveToken(line.number, rest, line.content)
			if err != nil {
				return value.Value{}, err
			}
			obj := value.NewObj()
			obj.Set(key, v)
			if quoted {
				p.markQuoted(obj, key)
			}
			if err := p.collectObjectListSiblings(obj, depth); err != nil {
				return value.Value{}, err
			}
			if p.opts.ExpandPaths {
				expanded, err := p.expandObjectPaths(obj)
				if err != nil {
					return value.Value{}, err
				}
				obj = expanded
			}
			items = append(items, value.ObjVal(obj))
			continue
		}

		v, err := decodePrimitiveToken(line.number, itemContent, line.content)
		if err != nil {
			return value.Value{}, err
		}
		items = append(items, v)
	}

	if p.opts.Strict && len(items) != header.length {
		return value.Value{}, toonerr.NewDecodeError(toonerr.DecodeArrayLengthMismatch,
			"list array length mismatch", p.lastLineNumber(), "")
	}
	return value.List(items), nil
}

// collectObjectListSiblings reads the remaining fields of a list item
// whose first field was already consumed into obj, at depth+2.
func (p *parser) collectObjectListSiblings(obj *value.Obj, depth int) error {
	for p.pos < len(p.lines) {
		next := p.current()
		if next.blank {
			if p.opts.Strict {
				if nextIndent, ok := p.nextNonBlankIndent(p.pos); !ok || nextIndent <= depth+1 {
					break
				}
				return toonerr.NewDecodeError(toonerr.DecodeBlankLineInArray,
					"blank line inside object list item", next.number, next.content)
			}
			p.pos++
			continue
		}
		if next.indent <= depth+1 {
			break
		}
		if next.indent != depth+2 {
			return toonerr.NewDecodeError(toonerr.DecodeIndentationViolation,
				"invalid indentation for object list sibling", next.number, next.content)
		}

		if header, isHeader, err := tryParseHeader(next.number, next.content, p.opts); err != nil {
			return err
		} else if isHeader {
			if header.key == "" {
				return toonerr.NewDecodeError(toonerr.DecodeParseFailure,
					"arrays within objects must have a key", next.number, next.content)
			}
			p.pos++
			v, err := p.parseArray(header, depth+1)
			if err != nil {
				return err
			}
			obj.Set(header.key, v)
			continue
		}

		key, quoted, rest, err := splitKeyValueFromContent(next.number, next.content)
		if err != nil {
			return err
		}
		p.pos++
		if rest == "" {
			nested, err := p.parseObject(depth + 3)
			if err != nil {
				return err
			}
			obj.Set(key, value.ObjVal(nested))
		} else {
			v, err := decodePrimitiveToken(next.number, rest, next.content)
			if err != nil {
				return err
			}
			obj.Set(key, v)
		}
		if quoted {
			p.markQuoted(obj, key)
		}
	}
	return nil
}

// splitKeyValueQuoted and splitKeyValueFromContent both split a "key:
// rest" line and report whether the key token was quoted in the source,
// which path expansion needs to respect.
func splitKeyValueQuoted(lineNumber int, content string) (key string, quoted bool, rest string, err error) {
	return splitKeyValueFromContent(lineNumber, content)
}

func splitKeyValueFromContent(lineNumber int, content string) (string, bool, string, error) {
	colon := indexOutsideQuotes(content, ':')
	if colon == -1 {
		return "", false, "", toonerr.NewDecodeError(toonerr.DecodeParseFailure,
			"missing colon after key", lineNumber, content)
	}
	keyToken := strings.TrimSpace(content[:colon])
	valueToken := strings.TrimSpace(content[colon+1:])
	key, quoted, err := decodeKeyTokenQuoted(lineNumber, keyToken, content)
	if err != nil {
		return "", false, "", err
	}
	return key, quoted, valueToken, nil
}
