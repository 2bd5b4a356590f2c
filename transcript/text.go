package transcript

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	internalstrings "github.com/trmn/academy/internal/strings"
	"github.com/trmn/academy/progress"
)

// ParseText reads one course code per line, optionally followed by a
// completion date separated by whitespace or a comma. Blank lines and lines
// starting with # are ignored.
func ParseText(r io.Reader) ([]progress.Completion, error) {
	var entries []progress.Completion
	index := make(map[string]int)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		code, rest := splitCode(line)
		code = internalstrings.NormalizeCode(code)
		if !IsCourseCode(code) {
			return nil, fmt.Errorf("%w: line %d: %q is not a course code", ErrInvalidLine, lineNo, code)
		}

		entry := progress.Completion{Code: code}
		if rest != "" {
			date, ok := parseDate(rest)
			if !ok {
				return nil, fmt.Errorf("%w: line %d: cannot parse date %q", ErrInvalidLine, lineNo, rest)
			}
			entry.CompletedAt = date
		}
		entries = merge(entries, index, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}
	return entries, nil
}

func splitCode(line string) (code, rest string) {
	i := strings.IndexFunc(line, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if i < 0 {
		return line, ""
	}
	rest = strings.TrimSpace(line[i+1:])
	rest = strings.TrimSpace(strings.TrimPrefix(rest, ","))
	return line[:i], rest
}
