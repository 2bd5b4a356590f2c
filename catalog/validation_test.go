package catalog

import (
	"errors"
	"testing"
)

func TestPrerequisiteValidate(t *testing.T) {
	tests := []struct {
		name    string
		prereq  Prerequisite
		wantErr error
	}{
		{"course", CourseRequirement("A"), nil},
		{"course without code", Prerequisite{Kind: KindCourse}, ErrMissingCourseCode},
		{"course with bad level", Prerequisite{Kind: KindCourse, Code: "A", Level: "Q"}, ErrInvalidLevel},
		{"group", AnyOf("", CourseRequirement("A")), nil},
		{"empty group", AnyOf(""), ErrEmptyAlternativeGroup},
		{"department choice", DepartmentChoice(2, LevelC, "X", "Y", "Z"), nil},
		{"zero minimum", DepartmentChoice(0, LevelC, "X"), ErrInvalidDepartmentChoice},
		{"minimum above total", Prerequisite{Kind: KindDepartmentChoice, Minimum: 3, TotalOptions: 2, Departments: []string{"X", "Y", "Z"}}, ErrInvalidDepartmentChoice},
		{"too few departments", Prerequisite{Kind: KindDepartmentChoice, Minimum: 2, Departments: []string{"X"}}, ErrInvalidDepartmentChoice},
		{"level requirement", LevelRequirement(LevelW, ""), nil},
		{"level requirement without level", Prerequisite{Kind: KindLevelRequirement}, ErrInvalidLevel},
		{"unknown kind", Prerequisite{Kind: "mystery"}, ErrUnknownPrerequisiteKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.prereq.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
			} else if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidatePrerequisitesRecurses(t *testing.T) {
	issues := validatePrerequisites("X", []Prerequisite{
		AnyOf("", CourseRequirement("A"), AnyOf("")),
	})
	if len(issues) != 1 || !errors.Is(issues[0], ErrEmptyAlternativeGroup) {
		t.Errorf("issues = %v, want one nested empty group", issues)
	}
}

func TestLevelIsValid(t *testing.T) {
	for _, level := range ValidLevels() {
		if !level.IsValid() {
			t.Errorf("%s should be valid", level)
		}
	}
	if Level("B").IsValid() || Level("").IsValid() {
		t.Error("unexpected valid level")
	}
}
