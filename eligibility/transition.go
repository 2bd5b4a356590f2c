package eligibility

import (
	"errors"
	"fmt"
	"time"

	"github.com/trmn/academy/catalog"
	"github.com/trmn/academy/progress"
)

var (
	// ErrCourseNotFound is returned when a code is not in the catalog.
	ErrCourseNotFound = errors.New("course not found")

	// ErrCourseLocked is returned when starting or completing a course whose
	// prerequisites are not satisfied.
	ErrCourseLocked = errors.New("course is locked")

	// ErrInvalidTransition is returned for a status change the lifecycle
	// does not allow.
	ErrInvalidTransition = errors.New("invalid status transition")
)

// TransitionOptions configures Transition.
type TransitionOptions struct {
	// Force allows recording progress on a locked course.
	Force bool
}

// TransitionResult describes a status change.
type TransitionResult struct {
	Progress progress.Progress
	Course   *catalog.Course
	From     progress.Status
	To       progress.Status

	// Unlocked lists courses that became available because of the change.
	Unlocked []*catalog.Course
}

// Transition moves the course with code to status to and returns the new
// snapshot with a refreshed availability cache. p is not modified.
//
// Locked is derived and cannot be set. Resetting to available is allowed
// from any recorded status. Recording progress on a locked course fails
// with ErrCourseLocked unless opts.Force is set. Moving a course to its
// current status is a no-op.
func (e *Engine) Transition(p progress.Progress, code string, to progress.Status, at time.Time, opts TransitionOptions) (TransitionResult, error) {
	course := e.CourseByCode(code)
	if course == nil {
		return TransitionResult{}, fmt.Errorf("%w: %s", ErrCourseNotFound, code)
	}
	if !to.IsValid() {
		return TransitionResult{}, fmt.Errorf("%w: %q", progress.ErrInvalidStatus, to)
	}

	before := e.Refresh(p)
	from := e.CourseStatus(course, before)
	result := TransitionResult{Progress: before, Course: course, From: from, To: to}

	switch to {
	case progress.StatusLocked:
		return TransitionResult{}, fmt.Errorf("%w: %s cannot be set to %s", ErrInvalidTransition, code, to)
	case progress.StatusAvailable:
		if _, recorded := before.RecordedStatus(code); !recorded {
			if from == progress.StatusLocked {
				return TransitionResult{}, fmt.Errorf("%w: %s is locked and has no progress to reset", ErrInvalidTransition, code)
			}
			return result, nil
		}
	default:
		if from == to {
			return result, nil
		}
		if from == progress.StatusLocked && !opts.Force {
			return TransitionResult{}, fmt.Errorf("%w: %s", ErrCourseLocked, code)
		}
	}

	next, err := before.WithStatus(code, to, at)
	if err != nil {
		return TransitionResult{}, err
	}

	update := e.UpdateAvailability(next)
	for _, unlocked := range update.Added {
		if unlocked.Code != code {
			result.Unlocked = append(result.Unlocked, unlocked)
		}
	}
	result.Progress = next.WithAvailable(update.Available)
	result.To = e.CourseStatus(course, result.Progress)
	return result, nil
}
