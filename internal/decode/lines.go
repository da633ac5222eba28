package decode

import (
	"strings"

	"github.com/go-toon/toon/internal/toonerr"
)

// parsedLine is one physical line of the document, already stripped of
// its indentation prefix and annotated with the indent depth it sits at.
type parsedLine struct {
	number  int
	indent  int
	content string
	blank   bool
}

func splitLines(input string) []string {
	input = strings.ReplaceAll(input, "\r\n", "\n")
	lines := strings.Split(input, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// computeIndent measures the leading-whitespace depth of line in indent
// units, returning the content past the indentation.
func computeIndent(lineNumber int, line string, opts Options) (int, string, error) {
	spaces := 0
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case ' ':
			spaces++
		case '\t':
			if opts.Strict {
				return 0, "", toonerr.NewDecodeError(toonerr.DecodeIndentationViolation,
					"tab characters are not allowed in indentation", lineNumber, line)
			}
			spaces++
		default:
			content := line[i:]
			if opts.Strict && opts.IndentSize > 0 && spaces%opts.IndentSize != 0 {
				return 0, "", toonerr.NewDecodeError(toonerr.DecodeIndentationViolation,
					"indentation must be a multiple of the configured indent size", lineNumber, line)
			}
			divisor := opts.IndentSize
			if divisor <= 0 {
				divisor = 1
			}
			return spaces / divisor, content, nil
		}
	}
	// Entire line is whitespace.
	return 0, "", nil
}

func newParsedLines(input string, opts Options) ([]parsedLine, error) {
	raw := splitLines(input)
	lines := make([]parsedLine, 0, len(raw))
	for idx, r := range raw {
		number := idx + 1
		if r == "" {
			lines = append(lines, parsedLine{number: number, blank: true})
			continue
		}
		indent, content, err := computeIndent(number, r, opts)
		if err != nil {
			return nil, err
		}
		lines = append(lines, parsedLine{
			number:  number,
			indent:  indent,
			content: content,
			blank:   strings.TrimSpace(content) == "",
		})
	}
	return lines, nil
}
