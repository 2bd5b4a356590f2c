// Package transcript turns exported academy transcripts into completion
// records that progress.Progress.ImportCompletions can merge.
package transcript

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/trmn/academy/internal/validation"
	"github.com/trmn/academy/progress"
)

// Format is a transcript encoding.
type Format string

const (
	FormatHTML Format = "html"
	FormatText Format = "text"
)

var (
	// ErrUnknownFormat is returned for a format other than html or text.
	ErrUnknownFormat = errors.New("unknown transcript format")

	// ErrInvalidLine is returned by ParseText for a line it cannot read.
	ErrInvalidLine = errors.New("invalid transcript line")
)

// ValidFormats returns all valid transcript formats.
func ValidFormats() []Format {
	return []Format{FormatHTML, FormatText}
}

// ParseFormat parses a format name.
func ParseFormat(value string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(value)))
	switch f {
	case FormatHTML, FormatText:
		return f, nil
	case "txt":
		return FormatText, nil
	}
	return "", validation.FormatInvalidValueError(ErrUnknownFormat, Format(value), ValidFormats())
}

// FormatForPath guesses the format from a file extension. Anything that is
// not HTML is read as text.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return FormatHTML
	default:
		return FormatText
	}
}

// Filter reports whether a code should be imported. A nil Filter accepts
// every well-formed code.
type Filter func(code string) bool

// Parse reads a transcript in the given format.
func Parse(r io.Reader, format Format, known Filter) ([]progress.Completion, error) {
	switch format {
	case FormatHTML:
		return ParseHTML(r, known)
	case FormatText:
		entries, err := ParseText(r)
		if err != nil {
			return nil, err
		}
		return filter(entries, known), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// codePattern matches course codes such as GPU-TRMN-0001, SIA-SRN-31D or
// RMACA-RMACS-02A.
var codePattern = regexp.MustCompile(`^[A-Z][A-Z0-9]*(?:-[A-Z0-9]+)+$`)

// IsCourseCode reports whether s looks like a course code.
func IsCourseCode(s string) bool {
	return codePattern.MatchString(s)
}

var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"2 Jan 2006",
	"02 Jan 2006",
	"2 January 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	time.RFC3339,
}

// parseDate tries each supported layout and returns the date in UTC.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// merge appends entry unless its code was already seen. A repeated code
// only contributes a completion date the first entry lacked.
func merge(entries []progress.Completion, index map[string]int, entry progress.Completion) []progress.Completion {
	if i, ok := index[entry.Code]; ok {
		if entries[i].CompletedAt.IsZero() {
			entries[i].CompletedAt = entry.CompletedAt
		}
		return entries
	}
	index[entry.Code] = len(entries)
	return append(entries, entry)
}

func filter(entries []progress.Completion, known Filter) []progress.Completion {
	if known == nil {
		return entries
	}
	kept := entries[:0]
	for _, entry := range entries {
		if known(entry.Code) {
			kept = append(kept, entry)
		}
	}
	return kept
}
