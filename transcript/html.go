package transcript

import (
	"fmt"
	"io"
	"time"

	"github.com/PuerkitoBio/goquery"
	internalstrings "github.com/trmn/academy/internal/strings"
	"github.com/trmn/academy/progress"
)

// ParseHTML scans an HTML transcript for table rows and list items holding a
// course code, taking the first cell that parses as a date as the
// completion date. Codes rejected by known are skipped.
func ParseHTML(r io.Reader, known Filter) ([]progress.Completion, error) {
	document, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse transcript html: %w", err)
	}

	var entries []progress.Completion
	index := make(map[string]int)
	add := func(cells []string) {
		entry, ok := rowCompletion(cells)
		if !ok || (known != nil && !known(entry.Code)) {
			return
		}
		entries = merge(entries, index, entry)
	}

	document.Find("tr").Each(func(i int, row *goquery.Selection) {
		add(row.Find("td, th").Map(func(i int, cell *goquery.Selection) string {
			return cell.Text()
		}))
	})
	document.Find("li").Each(func(i int, item *goquery.Selection) {
		if item.Find("li").Length() > 0 {
			return
		}
		cells := item.Find("span, time").Map(func(i int, span *goquery.Selection) string {
			return span.Text()
		})
		if len(cells) == 0 {
			cells = []string{item.Text()}
		}
		add(cells)
	})
	return entries, nil
}

func rowCompletion(cells []string) (progress.Completion, bool) {
	var entry progress.Completion
	var date time.Time
	for _, cell := range cells {
		text := internalstrings.NormalizeWhitespace(cell)
		if entry.Code == "" {
			if code := internalstrings.NormalizeCode(text); IsCourseCode(code) {
				entry.Code = code
				continue
			}
		}
		if date.IsZero() {
			if parsed, ok := parseDate(text); ok {
				date = parsed
			}
		}
	}
	entry.CompletedAt = date
	return entry, entry.Code != ""
}
