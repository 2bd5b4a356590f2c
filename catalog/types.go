// Package catalog defines the course catalog model used by the academy
// progress tracker.
//
// A Catalog is produced once (usually by LoadFile) and is immutable for the
// rest of the session. Besides the raw course list it carries precomputed
// indices: a code lookup map, a direct dependency graph, per-course
// department membership and the alias Resolver.
package catalog

import "slices"

// Level is the course level within a series.
type Level string

const (
	// LevelA is an introductory ("A") course.
	LevelA Level = "A"

	// LevelC is an intermediate ("C") course.
	LevelC Level = "C"

	// LevelD is an advanced ("D") course.
	LevelD Level = "D"

	// LevelW is a warrant-officer ("W") course.
	LevelW Level = "W"
)

// ValidLevels returns all valid level values.
func ValidLevels() []Level {
	return []Level{LevelA, LevelC, LevelD, LevelW}
}

// IsValid returns true if the level is a known value.
func (l Level) IsValid() bool {
	return slices.Contains(ValidLevels(), l)
}

// PrerequisiteKind tags the variant held by a Prerequisite.
type PrerequisiteKind string

const (
	// KindCourse requires a single course (or an alias of it).
	KindCourse PrerequisiteKind = "course"

	// KindAlternativeGroup requires any one of its members.
	KindAlternativeGroup PrerequisiteKind = "alternative_group"

	// KindDepartmentChoice requires courses in N of M departments.
	KindDepartmentChoice PrerequisiteKind = "department_choice"

	// KindLevelRequirement requires any completed course at a level.
	KindLevelRequirement PrerequisiteKind = "level_requirement"
)

// ValidPrerequisiteKinds returns all valid prerequisite kinds.
func ValidPrerequisiteKinds() []PrerequisiteKind {
	return []PrerequisiteKind{KindCourse, KindAlternativeGroup, KindDepartmentChoice, KindLevelRequirement}
}

// IsValid returns true if the kind is a known value.
func (k PrerequisiteKind) IsValid() bool {
	return slices.Contains(ValidPrerequisiteKinds(), k)
}

// Prerequisite is a condition gating a course. Kind selects which of the
// remaining fields are meaningful:
//
//	course             Code, Required, Level
//	alternative_group  Description, Alternatives
//	department_choice  Minimum, TotalOptions, Level, Departments
//	level_requirement  Level, Description, Departments
type Prerequisite struct {
	Kind PrerequisiteKind `json:"type" toml:"type" yaml:"type"`

	Code     string `json:"code,omitempty" toml:"code,omitempty" yaml:"code,omitempty"`
	Required bool   `json:"required,omitempty" toml:"required,omitempty" yaml:"required,omitempty"`
	Level    Level  `json:"level,omitempty" toml:"level,omitempty" yaml:"level,omitempty"`

	Description  string         `json:"description,omitempty" toml:"description,omitempty" yaml:"description,omitempty"`
	Alternatives []Prerequisite `json:"alternatives,omitempty" toml:"alternatives,omitempty" yaml:"alternatives,omitempty"`

	Minimum      int      `json:"minimum,omitempty" toml:"minimum,omitempty" yaml:"minimum,omitempty"`
	TotalOptions int      `json:"total_options,omitempty" toml:"total_options,omitempty" yaml:"total_options,omitempty"`
	Departments  []string `json:"departments,omitempty" toml:"departments,omitempty" yaml:"departments,omitempty"`
}

// CourseRequirement returns a course prerequisite.
func CourseRequirement(code string) Prerequisite {
	return Prerequisite{Kind: KindCourse, Code: code, Required: true}
}

// AnyOf returns an alternative group satisfied by any of its members.
func AnyOf(description string, alternatives ...Prerequisite) Prerequisite {
	return Prerequisite{Kind: KindAlternativeGroup, Description: description, Alternatives: alternatives}
}

// DepartmentChoice returns an N-of-M department requirement at level.
func DepartmentChoice(minimum int, level Level, departments ...string) Prerequisite {
	return Prerequisite{
		Kind:         KindDepartmentChoice,
		Minimum:      minimum,
		TotalOptions: len(departments),
		Level:        level,
		Departments:  departments,
	}
}

// LevelRequirement returns a requirement for any completed course at level,
// optionally restricted to departments.
func LevelRequirement(level Level, description string, departments ...string) Prerequisite {
	return Prerequisite{Kind: KindLevelRequirement, Level: level, Description: description, Departments: departments}
}

// Course is a single catalog entry.
type Course struct {
	// Code is the unique identity of the course within its catalog.
	Code string `json:"code" toml:"code" yaml:"code"`

	Name         string `json:"name" toml:"name" yaml:"name"`
	Section      string `json:"section,omitempty" toml:"section,omitempty" yaml:"section,omitempty"`
	Subsection   string `json:"subsection,omitempty" toml:"subsection,omitempty" yaml:"subsection,omitempty"`
	SectionID    string `json:"section_id,omitempty" toml:"section_id,omitempty" yaml:"section_id,omitempty"`
	SubsectionID string `json:"subsection_id,omitempty" toml:"subsection_id,omitempty" yaml:"subsection_id,omitempty"`

	// Level is empty for courses outside a leveled series.
	Level Level `json:"level,omitempty" toml:"level,omitempty" yaml:"level,omitempty"`

	// Prerequisites are ANDed together; OR only happens inside an
	// alternative group.
	Prerequisites []Prerequisite `json:"prerequisites,omitempty" toml:"prerequisites,omitempty" yaml:"prerequisites,omitempty"`

	IsIntroductory bool     `json:"is_introductory,omitempty" toml:"is_introductory,omitempty" yaml:"is_introductory,omitempty"`
	Institution    string   `json:"institution,omitempty" toml:"institution,omitempty" yaml:"institution,omitempty"`
	Aliases        []string `json:"aliases,omitempty" toml:"aliases,omitempty" yaml:"aliases,omitempty"`
	Departments    []string `json:"departments,omitempty" toml:"departments,omitempty" yaml:"departments,omitempty"`

	// Description is markdown shown by detail views.
	Description string `json:"description,omitempty" toml:"description,omitempty" yaml:"description,omitempty"`
}

// CourseAlias declares a set of codes that count as the same course for
// completion purposes.
type CourseAlias struct {
	PrimaryCode      string   `json:"primary_code" toml:"primary_code" yaml:"primary_code"`
	AlternativeCodes []string `json:"alternative_codes" toml:"alternative_codes" yaml:"alternative_codes"`
	Description      string   `json:"description,omitempty" toml:"description,omitempty" yaml:"description,omitempty"`
	Active           bool     `json:"active" toml:"active" yaml:"active"`
}

// Category groups sections for display.
type Category struct {
	ID          string   `json:"id" toml:"id" yaml:"id"`
	Name        string   `json:"name" toml:"name" yaml:"name"`
	Description string   `json:"description,omitempty" toml:"description,omitempty" yaml:"description,omitempty"`
	Sections    []string `json:"sections,omitempty" toml:"sections,omitempty" yaml:"sections,omitempty"`
}

// SpecialRule is a named composite requirement such as a pin.
type SpecialRule struct {
	ID            string         `json:"id" toml:"id" yaml:"id"`
	Name          string         `json:"name" toml:"name" yaml:"name"`
	Description   string         `json:"description,omitempty" toml:"description,omitempty" yaml:"description,omitempty"`
	Prerequisites []Prerequisite `json:"prerequisites,omitempty" toml:"prerequisites,omitempty" yaml:"prerequisites,omitempty"`
}
