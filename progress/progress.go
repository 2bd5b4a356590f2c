package progress

import (
	"encoding/json"
	"maps"
	"sort"
	"time"
)

// CodeSet is a set of course codes.
type CodeSet map[string]struct{}

// NewCodeSet returns a set holding codes.
func NewCodeSet(codes ...string) CodeSet {
	set := make(CodeSet, len(codes))
	for _, code := range codes {
		set[code] = struct{}{}
	}
	return set
}

// Has reports whether code is in the set. A nil set is empty.
func (s CodeSet) Has(code string) bool {
	_, ok := s[code]
	return ok
}

// Sorted returns the codes in lexical order.
func (s CodeSet) Sorted() []string {
	codes := make([]string, 0, len(s))
	for code := range s {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Clone returns an independent copy. The clone of a nil set is empty, not nil.
func (s CodeSet) Clone() CodeSet {
	clone := make(CodeSet, len(s))
	for code := range s {
		clone[code] = struct{}{}
	}
	return clone
}

// Equal reports whether both sets hold the same codes.
func (s CodeSet) Equal(other CodeSet) bool {
	if len(s) != len(other) {
		return false
	}
	for code := range s {
		if !other.Has(code) {
			return false
		}
	}
	return true
}

// StatusStamp records when a course last changed status.
type StatusStamp struct {
	Status    Status    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// Completion is a single completed course from an external source, such as
// a transcript. A zero CompletedAt means the date is unknown.
type Completion struct {
	Code        string    `json:"code"`
	CompletedAt time.Time `json:"completed_at,omitempty"`
}

// Progress is one user's progress snapshot.
type Progress struct {
	Completed    CodeSet
	Available    CodeSet
	InProgress   CodeSet
	WaitingGrade CodeSet

	StatusTimestamps map[string]StatusStamp
	CompletionDates  map[string]time.Time
	SpecialRules     map[string]int
}

// New returns an empty snapshot.
func New() Progress {
	return Progress{
		Completed:        CodeSet{},
		Available:        CodeSet{},
		InProgress:       CodeSet{},
		WaitingGrade:     CodeSet{},
		StatusTimestamps: map[string]StatusStamp{},
		CompletionDates:  map[string]time.Time{},
		SpecialRules:     map[string]int{},
	}
}

// IsComplete reports whether code itself is recorded as completed.
// Alias-aware checks go through catalog.Resolver.
func (p Progress) IsComplete(code string) bool {
	return p.Completed.Has(code)
}

// RecordedStatus returns the explicitly recorded status of code and true, or
// false when nothing is recorded. If code appears in several sets the order
// completed, waiting_grade, in_progress decides.
func (p Progress) RecordedStatus(code string) (Status, bool) {
	switch {
	case p.Completed.Has(code):
		return StatusCompleted, true
	case p.WaitingGrade.Has(code):
		return StatusWaitingGrade, true
	case p.InProgress.Has(code):
		return StatusInProgress, true
	default:
		return "", false
	}
}

// Clone returns a deep copy.
func (p Progress) Clone() Progress {
	clone := Progress{
		Completed:        p.Completed.Clone(),
		Available:        p.Available.Clone(),
		InProgress:       p.InProgress.Clone(),
		WaitingGrade:     p.WaitingGrade.Clone(),
		StatusTimestamps: make(map[string]StatusStamp, len(p.StatusTimestamps)),
		CompletionDates:  make(map[string]time.Time, len(p.CompletionDates)),
		SpecialRules:     make(map[string]int, len(p.SpecialRules)),
	}
	maps.Copy(clone.StatusTimestamps, p.StatusTimestamps)
	maps.Copy(clone.CompletionDates, p.CompletionDates)
	maps.Copy(clone.SpecialRules, p.SpecialRules)
	return clone
}

// WithStatus returns a copy with code moved to status.
//
// StatusInProgress, StatusWaitingGrade and StatusCompleted place the code in
// exactly one recorded set. StatusAvailable and StatusLocked are derived, so
// they clear every recorded status (a reset). Completing a course keeps an
// existing completion date and otherwise uses at.
func (p Progress) WithStatus(code string, status Status, at time.Time) (Progress, error) {
	if !status.IsValid() {
		return p, ErrInvalidStatus
	}

	next := p.Clone()
	delete(next.InProgress, code)
	delete(next.WaitingGrade, code)
	if status != StatusCompleted {
		delete(next.Completed, code)
		delete(next.CompletionDates, code)
	}

	switch status {
	case StatusInProgress:
		next.InProgress[code] = struct{}{}
	case StatusWaitingGrade:
		next.WaitingGrade[code] = struct{}{}
	case StatusCompleted:
		next.Completed[code] = struct{}{}
		if _, ok := next.CompletionDates[code]; !ok && !at.IsZero() {
			next.CompletionDates[code] = at
		}
	}

	recorded := status
	if status == StatusLocked {
		recorded = StatusAvailable
	}
	next.StatusTimestamps[code] = StatusStamp{Status: recorded, Timestamp: at}
	return next, nil
}

// WithCompletionDate returns a copy with the completion date of code set.
func (p Progress) WithCompletionDate(code string, date time.Time) Progress {
	next := p.Clone()
	if date.IsZero() {
		delete(next.CompletionDates, code)
	} else {
		next.CompletionDates[code] = date
	}
	return next
}

// WithAvailable returns a copy whose availability cache is available.
func (p Progress) WithAvailable(available CodeSet) Progress {
	next := p.Clone()
	next.Available = available.Clone()
	return next
}

// WithSpecialRule returns a copy with a special rule progress value set.
func (p Progress) WithSpecialRule(id string, value int) Progress {
	next := p.Clone()
	next.SpecialRules[id] = value
	return next
}

// ImportCompletions merges externally sourced completions and returns the new
// snapshot with the number of codes that were not already completed. Imported
// dates only fill in missing completion dates.
func (p Progress) ImportCompletions(entries []Completion, at time.Time) (Progress, int) {
	next := p.Clone()
	added := 0
	for _, entry := range entries {
		if entry.Code == "" {
			continue
		}
		if !next.Completed.Has(entry.Code) {
			added++
		}
		delete(next.InProgress, entry.Code)
		delete(next.WaitingGrade, entry.Code)
		next.Completed[entry.Code] = struct{}{}

		date := entry.CompletedAt
		if date.IsZero() {
			date = at
		}
		if _, ok := next.CompletionDates[entry.Code]; !ok && !date.IsZero() {
			next.CompletionDates[entry.Code] = date
		}
		next.StatusTimestamps[entry.Code] = StatusStamp{Status: StatusCompleted, Timestamp: at}
	}
	return next, added
}

// record is the transport form of Progress: sets become sorted arrays.
type record struct {
	Version          int                    `json:"version"`
	Completed        []string               `json:"completed_courses"`
	Available        []string               `json:"available_courses"`
	InProgress       []string               `json:"in_progress_courses"`
	WaitingGrade     []string               `json:"waiting_grade_courses"`
	StatusTimestamps map[string]StatusStamp `json:"course_status_timestamps,omitempty"`
	CompletionDates  map[string]time.Time   `json:"course_completion_dates,omitempty"`
	SpecialRules     map[string]int         `json:"special_rules_progress,omitempty"`
}

const recordVersion = 1

// MarshalJSON encodes the snapshot with sets as sorted arrays.
func (p Progress) MarshalJSON() ([]byte, error) {
	return json.Marshal(record{
		Version:          recordVersion,
		Completed:        p.Completed.Sorted(),
		Available:        p.Available.Sorted(),
		InProgress:       p.InProgress.Sorted(),
		WaitingGrade:     p.WaitingGrade.Sorted(),
		StatusTimestamps: p.StatusTimestamps,
		CompletionDates:  p.CompletionDates,
		SpecialRules:     p.SpecialRules,
	})
}

// UnmarshalJSON decodes the form written by MarshalJSON.
func (p *Progress) UnmarshalJSON(data []byte) error {
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	next := New()
	next.Completed = NewCodeSet(rec.Completed...)
	next.Available = NewCodeSet(rec.Available...)
	next.InProgress = NewCodeSet(rec.InProgress...)
	next.WaitingGrade = NewCodeSet(rec.WaitingGrade...)
	maps.Copy(next.StatusTimestamps, rec.StatusTimestamps)
	maps.Copy(next.CompletionDates, rec.CompletionDates)
	maps.Copy(next.SpecialRules, rec.SpecialRules)
	*p = next
	return nil
}
