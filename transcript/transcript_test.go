package transcript

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/trmn/academy/progress"
)

const htmlTranscript = `<!doctype html>
<html><body>
<h1>Academic Record</h1>
<table>
  <tr><th>Course</th><th>Name</th><th>Completed</th><th>Score</th></tr>
  <tr><td>GPU-TRMN-0001</td><td>Basic Training</td><td>2025-11-02</td><td>92%</td></tr>
  <tr><td> sia-rmn-0001 </td><td>Enlisted Basics</td><td>14 Mar 2026</td><td>88%</td></tr>
  <tr><td>RMACA-RMACS-02A</td><td>Crewman Course</td><td>pending</td><td></td></tr>
  <tr><td>GPU-TRMN-0001</td><td>Basic Training (retake)</td><td>2026-01-01</td><td>99%</td></tr>
</table>
<ul>
  <li><span>SIA-SRN-31D</span> <time>January 5, 2026</time></li>
  <li>Not a course</li>
</ul>
</body></html>`

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseHTML(t *testing.T) {
	entries, err := ParseHTML(strings.NewReader(htmlTranscript), nil)
	if err != nil {
		t.Fatalf("ParseHTML failed: %v", err)
	}

	want := []progress.Completion{
		{Code: "GPU-TRMN-0001", CompletedAt: date(2025, time.November, 2)},
		{Code: "SIA-RMN-0001", CompletedAt: date(2026, time.March, 14)},
		{Code: "RMACA-RMACS-02A"},
		{Code: "SIA-SRN-31D", CompletedAt: date(2026, time.January, 5)},
	}
	if len(entries) != len(want) {
		t.Fatalf("got %d entries %v, want %d", len(entries), entries, len(want))
	}
	for i := range want {
		if entries[i].Code != want[i].Code || !entries[i].CompletedAt.Equal(want[i].CompletedAt) {
			t.Errorf("entry %d = %+v, want %+v", i, entries[i], want[i])
		}
	}
}

func TestParseHTMLFilter(t *testing.T) {
	known := func(code string) bool { return strings.HasPrefix(code, "SIA-") }
	entries, err := ParseHTML(strings.NewReader(htmlTranscript), known)
	if err != nil {
		t.Fatalf("ParseHTML failed: %v", err)
	}
	if len(entries) != 2 || entries[0].Code != "SIA-RMN-0001" || entries[1].Code != "SIA-SRN-31D" {
		t.Errorf("entries = %v, want only SIA codes", entries)
	}
}

func TestParseText(t *testing.T) {
	input := `# exported 2026-03-14
GPU-TRMN-0001, 2025-11-02
sia-rmn-0001	14 Mar 2026

RMACA-RMACS-02A
GPU-TRMN-0001
`
	entries, err := ParseText(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseText failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3: %v", len(entries), entries)
	}
	if !entries[0].CompletedAt.Equal(date(2025, time.November, 2)) {
		t.Errorf("first date = %v", entries[0].CompletedAt)
	}
	if entries[1].Code != "SIA-RMN-0001" || !entries[1].CompletedAt.Equal(date(2026, time.March, 14)) {
		t.Errorf("second entry = %+v", entries[1])
	}
	if !entries[2].CompletedAt.IsZero() {
		t.Errorf("undated entry has date %v", entries[2].CompletedAt)
	}
}

func TestParseTextErrors(t *testing.T) {
	cases := map[string]string{
		"bad code": "hello world\n",
		"bad date": "GPU-TRMN-0001 yesterday\n",
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseText(strings.NewReader(input))
			if !errors.Is(err, ErrInvalidLine) {
				t.Fatalf("expected ErrInvalidLine, got %v", err)
			}
			if !strings.Contains(err.Error(), "line 1") {
				t.Errorf("error should name the line: %v", err)
			}
		})
	}
}

func TestParseDispatch(t *testing.T) {
	entries, err := Parse(strings.NewReader("GPU-TRMN-0001\nXYZ-0001\n"), FormatText, func(code string) bool {
		return code != "XYZ-0001"
	})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("entries = %v, want filtered to one", entries)
	}

	if _, err := Parse(strings.NewReader(""), "pdf", nil); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestFormats(t *testing.T) {
	if FormatForPath("record.HTM") != FormatHTML || FormatForPath("record.txt") != FormatText {
		t.Error("FormatForPath picked the wrong format")
	}
	if f, err := ParseFormat("TXT"); err != nil || f != FormatText {
		t.Errorf("ParseFormat(TXT) = %q, %v", f, err)
	}
	if _, err := ParseFormat("pdf"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestIsCourseCode(t *testing.T) {
	for _, code := range []string{"GPU-TRMN-0001", "SIA-SRN-31D", "RMACA-RMACS-02A", "INTRO-TRMN-0003"} {
		if !IsCourseCode(code) {
			t.Errorf("%s should be a course code", code)
		}
	}
	for _, s := range []string{"", "GPU", "2026-03-14", "GPU-TRMN 0001", "gpu-trmn-0001"} {
		if IsCourseCode(s) {
			t.Errorf("%q should not be a course code", s)
		}
	}
}
