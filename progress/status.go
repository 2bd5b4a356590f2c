// Package progress holds a user's course progress snapshot.
//
// A Progress value is treated as immutable by everything that receives it:
// transitions (WithStatus, ImportCompletions, WithAvailable) return a new
// snapshot and leave the receiver untouched. Persistence lives in Store.
package progress

import (
	"errors"
	"strings"

	"github.com/trmn/academy/internal/validation"
)

// Status is the derived state of a course for one user.
type Status string

const (
	// StatusLocked indicates at least one prerequisite is unsatisfied.
	StatusLocked Status = "locked"

	// StatusAvailable indicates every prerequisite is satisfied.
	StatusAvailable Status = "available"

	// StatusInProgress indicates the user is taking the course.
	StatusInProgress Status = "in_progress"

	// StatusWaitingGrade indicates the course is finished but not graded.
	StatusWaitingGrade Status = "waiting_grade"

	// StatusCompleted indicates the course has been passed.
	StatusCompleted Status = "completed"
)

// ErrInvalidStatus is returned when an unknown status is provided.
var ErrInvalidStatus = errors.New("invalid status")

// ValidStatuses returns all valid status values.
func ValidStatuses() []Status {
	return []Status{StatusLocked, StatusAvailable, StatusInProgress, StatusWaitingGrade, StatusCompleted}
}

// IsValid returns true if the status is a known valid value.
func (s Status) IsValid() bool {
	for _, valid := range ValidStatuses() {
		if s == valid {
			return true
		}
	}
	return false
}

// IsRecorded reports whether the status is stored explicitly rather than
// derived from prerequisites.
func (s Status) IsRecorded() bool {
	switch s {
	case StatusInProgress, StatusWaitingGrade, StatusCompleted:
		return true
	default:
		return false
	}
}

// ParseStatus normalizes user input such as "In-Progress" into a Status.
func ParseStatus(value string) (Status, error) {
	normalized := Status(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(value)), "-", "_"))
	if !normalized.IsValid() {
		return "", validation.FormatInvalidValueError(ErrInvalidStatus, Status(value), ValidStatuses())
	}
	return normalized, nil
}
