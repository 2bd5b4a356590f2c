package achievement

import (
	"errors"
	"reflect"
	"testing"

	"github.com/trmn/academy/catalog"
	"github.com/trmn/academy/progress"
)

func pinCatalog(rules ...catalog.SpecialRule) *catalog.Catalog {
	courses := []catalog.Course{
		{Code: "SIA-RMN-0101", Name: "Officer Basics"},
		{Code: "SIA-RMN-0102", Name: "Officer Advanced"},
		{Code: "SIA-RMN-0001", Name: "Enlisted Basics"},
		{Code: "SIA-RMN-0002", Name: "Enlisted Advanced"},
	}
	for _, dept := range SpaceWarfareDepartments {
		prefix := dept[:3]
		courses = append(courses,
			catalog.Course{Code: prefix + "-C", Name: dept + " Technician", Level: catalog.LevelC, Departments: []string{dept}},
			catalog.Course{Code: prefix + "-D", Name: dept + " Specialist", Level: catalog.LevelD, Departments: []string{dept}},
		)
	}
	return catalog.New(catalog.Data{Courses: courses, SpecialRules: rules}, catalog.Options{})
}

func done(codes ...string) progress.Progress {
	p := progress.New()
	for _, code := range codes {
		p.Completed[code] = struct{}{}
	}
	return p
}

func TestOSWPProgress(t *testing.T) {
	cat := pinCatalog()
	fourDepartments := []string{"Ast-D", "Tac-D", "Eng-D", "Com-D"}

	t.Run("department quota alone is partial", func(t *testing.T) {
		got := ComputePin(cat, done(fourDepartments...), PinOSWP)
		if got.Earned {
			t.Error("pin should not be earned without the required courses")
		}
		if got.OverallProgress != 33.3 {
			t.Errorf("OverallProgress = %v, want 33.3", got.OverallProgress)
		}
		choice := got.Requirements[2]
		if !choice.Completed || choice.Satisfied != 4 || choice.Minimum != 4 {
			t.Errorf("department choice = %+v, want completed 4/4", choice)
		}
	})

	t.Run("everything earns the pin", func(t *testing.T) {
		codes := append([]string{"SIA-RMN-0101", "SIA-RMN-0102"}, fourDepartments...)
		got := ComputePin(cat, done(codes...), PinOSWP)
		if !got.Earned || got.OverallProgress != 100 {
			t.Errorf("got earned=%v progress=%v, want earned at 100", got.Earned, got.OverallProgress)
		}
	})

	t.Run("level C courses do not count", func(t *testing.T) {
		got := ComputePin(cat, done("Ast-C", "Tac-C", "Eng-C", "Com-C", "Fli-C"), PinOSWP)
		if got.Requirements[2].Satisfied != 0 {
			t.Errorf("satisfied = %d, want 0", got.Requirements[2].Satisfied)
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		p := done("SIA-RMN-0101", "Ast-D")
		if !reflect.DeepEqual(ComputePin(cat, p, PinOSWP), ComputePin(cat, p, PinOSWP)) {
			t.Error("repeated computation differs")
		}
	})
}

func TestESWPProgress(t *testing.T) {
	cat := pinCatalog()
	got := ComputePin(cat, done("SIA-RMN-0001", "Ast-C", "Tac-C"), PinESWP)

	if got.Earned {
		t.Error("pin should not be earned")
	}
	if got.OverallProgress != 33.3 {
		t.Errorf("OverallProgress = %v, want 33.3", got.OverallProgress)
	}
	choice := got.Requirements[2]
	if choice.Completed || choice.Satisfied != 2 || choice.Minimum != 3 {
		t.Errorf("department choice = %+v, want 2/3 incomplete", choice)
	}
	if got.Requirements[0].Description != "SIA-RMN-0001 Enlisted Basics" {
		t.Errorf("description = %q", got.Requirements[0].Description)
	}
}

func TestPinMonotonic(t *testing.T) {
	cat := pinCatalog()
	order := []string{"Ast-D", "SIA-RMN-0101", "Tac-D", "Eng-C", "Eng-D", "SIA-RMN-0102", "Com-D", "Fli-D"}

	p := progress.New()
	var last PinProgress
	for _, code := range order {
		p.Completed[code] = struct{}{}
		got := ComputePin(cat, p, PinOSWP)
		if got.OverallProgress < last.OverallProgress {
			t.Fatalf("after %s progress dropped from %v to %v", code, last.OverallProgress, got.OverallProgress)
		}
		if last.Earned && !got.Earned {
			t.Fatalf("after %s the pin was lost", code)
		}
		if got.Requirements[2].Satisfied < last.requirementSatisfied(2) {
			t.Fatalf("after %s department count dropped", code)
		}
		last = got
	}
	if !last.Earned {
		t.Error("expected the pin to be earned at the end")
	}
}

func (p PinProgress) requirementSatisfied(i int) int {
	if i >= len(p.Requirements) {
		return 0
	}
	return p.Requirements[i].Satisfied
}

func TestSpecialRuleOverridesPin(t *testing.T) {
	cat := pinCatalog(catalog.SpecialRule{
		ID: "oswp",
		Prerequisites: []catalog.Prerequisite{
			catalog.CourseRequirement("SIA-RMN-0101"),
			catalog.DepartmentChoice(1, catalog.LevelD, "Astrogation"),
		},
	})

	got := ComputePin(cat, done("SIA-RMN-0101", "Ast-D"), PinOSWP)
	if !got.Earned || len(got.Requirements) != 2 {
		t.Errorf("got %+v, want the catalog definition to be used and earned", got)
	}
	if got.Name != "Officer Space Warfare Pin" {
		t.Errorf("name = %q, want default name kept", got.Name)
	}
}

func TestParsePinType(t *testing.T) {
	for input, want := range map[string]PinType{"oswp": PinOSWP, " ESWP ": PinESWP} {
		got, err := ParsePinType(input)
		if err != nil || got != want {
			t.Errorf("ParsePinType(%q) = %q, %v; want %q", input, got, err, want)
		}
	}
	if _, err := ParsePinType("gold"); !errors.Is(err, ErrUnknownPin) {
		t.Errorf("expected ErrUnknownPin, got %v", err)
	}

	if got := ComputePin(pinCatalog(), progress.New(), "GOLD"); got.Earned || len(got.Requirements) != 0 {
		t.Errorf("unknown pin should be empty, got %+v", got)
	}
}
