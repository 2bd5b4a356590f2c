package catalog

import (
	"errors"
	"fmt"

	"github.com/trmn/academy/internal/validation"
)

var (
	// ErrUnknownPrerequisiteKind is returned for a prerequisite whose type tag is not recognized.
	ErrUnknownPrerequisiteKind = errors.New("unknown prerequisite type")

	// ErrMissingCourseCode is returned when a course prerequisite has no code.
	ErrMissingCourseCode = errors.New("course prerequisite has no code")

	// ErrEmptyAlternativeGroup is returned when an alternative group has no members.
	ErrEmptyAlternativeGroup = errors.New("alternative group is empty")

	// ErrInvalidDepartmentChoice is returned when a department choice cannot be satisfied as written.
	ErrInvalidDepartmentChoice = errors.New("invalid department choice")

	// ErrInvalidLevel is returned for a level outside A, C, D, W.
	ErrInvalidLevel = errors.New("invalid level")

	// ErrDuplicateCourse is returned when two catalog entries share a code.
	ErrDuplicateCourse = errors.New("duplicate course code")

	// ErrEmptyCourseCode is returned for a catalog entry without a code.
	ErrEmptyCourseCode = errors.New("course code cannot be empty")

	// ErrAliasConflict is returned when a code belongs to more than one alias group.
	ErrAliasConflict = errors.New("code belongs to more than one alias group")

	// ErrUnresolvedReference is returned when a course prerequisite names a code
	// that neither the catalog nor any alias group knows.
	ErrUnresolvedReference = errors.New("prerequisite references unknown course")

	// ErrUnknownFormat is returned when a catalog file extension is not supported.
	ErrUnknownFormat = errors.New("unknown catalog format")
)

// Issue is a data-quality problem found while building a catalog. Issues
// never stop a catalog from loading.
type Issue struct {
	// Code is the course (or alias primary) the issue was found on.
	Code string

	Err error
}

func (i Issue) Error() string {
	if i.Code == "" {
		return i.Err.Error()
	}
	return fmt.Sprintf("%s: %v", i.Code, i.Err)
}

func (i Issue) Unwrap() error {
	return i.Err
}

// Validate checks the prerequisite's own shape. Members of an alternative
// group are not checked; a bad member only makes that member unsatisfiable.
func (p Prerequisite) Validate() error {
	switch p.Kind {
	case KindCourse:
		if p.Code == "" {
			return ErrMissingCourseCode
		}
		if p.Level != "" && !p.Level.IsValid() {
			return validation.FormatInvalidValueError(ErrInvalidLevel, p.Level, ValidLevels())
		}
	case KindAlternativeGroup:
		if len(p.Alternatives) == 0 {
			return ErrEmptyAlternativeGroup
		}
	case KindDepartmentChoice:
		if p.Minimum < 1 {
			return fmt.Errorf("%w: minimum %d < 1", ErrInvalidDepartmentChoice, p.Minimum)
		}
		if p.TotalOptions > 0 && p.Minimum > p.TotalOptions {
			return fmt.Errorf("%w: minimum %d > total options %d", ErrInvalidDepartmentChoice, p.Minimum, p.TotalOptions)
		}
		if len(p.Departments) < p.Minimum {
			return fmt.Errorf("%w: %d departments listed for minimum %d", ErrInvalidDepartmentChoice, len(p.Departments), p.Minimum)
		}
		if p.Level != "" && !p.Level.IsValid() {
			return validation.FormatInvalidValueError(ErrInvalidLevel, p.Level, ValidLevels())
		}
	case KindLevelRequirement:
		if !p.Level.IsValid() {
			return validation.FormatInvalidValueError(ErrInvalidLevel, p.Level, ValidLevels())
		}
	default:
		return validation.FormatInvalidValueError(ErrUnknownPrerequisiteKind, p.Kind, ValidPrerequisiteKinds())
	}
	return nil
}

// validatePrerequisites reports every malformed prerequisite in the tree.
func validatePrerequisites(code string, prereqs []Prerequisite) []Issue {
	var issues []Issue
	for _, prereq := range prereqs {
		if err := prereq.Validate(); err != nil {
			issues = append(issues, Issue{Code: code, Err: err})
		}
		if prereq.Kind == KindAlternativeGroup {
			issues = append(issues, validatePrerequisites(code, prereq.Alternatives)...)
		}
	}
	return issues
}

// unresolvedReferences reports course prerequisites naming codes that
// nothing in the catalog knows about.
func (c *Catalog) unresolvedReferences(code string, prereqs []Prerequisite) []Issue {
	var issues []Issue
	for _, prereq := range prereqs {
		switch prereq.Kind {
		case KindCourse:
			if prereq.Code == "" || c.knowsCode(prereq.Code) {
				continue
			}
			issues = append(issues, Issue{Code: code, Err: fmt.Errorf("%w: %s", ErrUnresolvedReference, prereq.Code)})
		case KindAlternativeGroup:
			issues = append(issues, c.unresolvedReferences(code, prereq.Alternatives)...)
		}
	}
	return issues
}

func (c *Catalog) knowsCode(code string) bool {
	for _, equivalent := range c.resolver.EquivalentCodes(code) {
		if _, ok := c.CourseMap[equivalent]; ok {
			return true
		}
	}
	return false
}
