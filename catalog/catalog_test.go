package catalog

import (
	"errors"
	"reflect"
	"testing"
)

func testData() Data {
	return Data{
		Courses: []Course{
			{Code: "GPU-TRMN-0001", Name: "Basic Training", SectionID: "gpu", Level: LevelA},
			{
				Code:          "SIA-SRN-01A",
				Name:          "Astrogation Basics",
				SectionID:     "sia",
				SubsectionID:  "astro",
				Level:         LevelA,
				Aliases:       []string{"OLD-SRN-01A"},
				Prerequisites: []Prerequisite{CourseRequirement("GPU-TRMN-0001")},
			},
			{
				Code:      "SIA-SRN-31D",
				Name:      "Astrogation Specialist",
				SectionID: "sia",
				Level:     LevelD,
				Prerequisites: []Prerequisite{
					CourseRequirement("SIA-SRN-01A"),
					AnyOf("", CourseRequirement("GPU-TRMN-0001"), CourseRequirement("OLD-SRN-01A")),
				},
				Departments: []string{"Tactical"},
			},
		},
		Departments: map[string][]string{
			"Astrogation": {"astro"},
			"Academy":     {"GPU-"},
		},
		Series: map[string]string{
			"SIA-":     "Space Integrated Academy",
			"SIA-SRN-": "Senior Ratings",
		},
		SpecialRules: []SpecialRule{{ID: "OSWP", Name: "Officer Pin"}},
	}
}

func TestNewBuildsIndices(t *testing.T) {
	c := New(testData(), Options{})

	if c.Course("SIA-SRN-01A") == nil || c.Course("nope") != nil {
		t.Fatal("CourseMap lookup failed")
	}
	if c.Index("SIA-SRN-31D") != 2 || c.Index("nope") != -1 {
		t.Errorf("Index returned unexpected positions")
	}
	if got := c.DependencyGraph["SIA-SRN-31D"]; !reflect.DeepEqual(got, []string{"SIA-SRN-01A"}) {
		t.Errorf("DependencyGraph = %v, want only top-level course edges", got)
	}
	if got := c.DepartmentsOf("SIA-SRN-01A"); !reflect.DeepEqual(got, []string{"Astrogation"}) {
		t.Errorf("DepartmentsOf(SIA-SRN-01A) = %v, want [Astrogation]", got)
	}
	if got := c.DepartmentsOf("GPU-TRMN-0001"); !reflect.DeepEqual(got, []string{"Academy"}) {
		t.Errorf("DepartmentsOf(GPU-TRMN-0001) = %v, want [Academy]", got)
	}
	if !c.InDepartment("SIA-SRN-31D", " tactical ") {
		t.Error("InDepartment should normalize names")
	}
	if !c.Resolver().Equivalent("SIA-SRN-01A", "OLD-SRN-01A") {
		t.Error("course-level aliases should form an alias group")
	}
	if len(c.Issues()) != 0 {
		t.Errorf("unexpected issues: %v", c.Issues())
	}
}

func TestSeriesOf(t *testing.T) {
	c := New(testData(), Options{})
	cases := []struct {
		code string
		want string
		ok   bool
	}{
		{"SIA-SRN-31D", "Senior Ratings", true},
		{"SIA-RMN-0001", "Space Integrated Academy", true},
		{"GPU-TRMN-0001", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			got, ok := c.SeriesOf(tc.code)
			if got != tc.want || ok != tc.ok {
				t.Errorf("SeriesOf(%s) = %q, %v; want %q, %v", tc.code, got, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestSpecialRuleLookup(t *testing.T) {
	c := New(testData(), Options{})
	if _, ok := c.SpecialRule("oswp"); !ok {
		t.Error("expected case-insensitive special rule lookup")
	}
	if _, ok := c.SpecialRule("ESWP"); ok {
		t.Error("unexpected ESWP rule")
	}
}

func TestNewRecordsIssues(t *testing.T) {
	data := testData()
	data.Courses = append(data.Courses,
		Course{Code: "GPU-TRMN-0001", Name: "Duplicate"},
		Course{Code: "  ", Name: "Blank"},
		Course{Code: "BAD-LEVEL", Level: "Z"},
		Course{Code: "BAD-REF", Prerequisites: []Prerequisite{CourseRequirement("GHOST-0001")}},
		Course{Code: "BAD-GROUP", Prerequisites: []Prerequisite{AnyOf("empty")}},
	)
	c := New(data, Options{})

	if c.Course("GPU-TRMN-0001").Name != "Basic Training" {
		t.Error("first duplicate should win")
	}

	want := map[error]string{
		ErrDuplicateCourse:       "GPU-TRMN-0001",
		ErrEmptyCourseCode:       "",
		ErrInvalidLevel:          "BAD-LEVEL",
		ErrUnresolvedReference:   "BAD-REF",
		ErrEmptyAlternativeGroup: "BAD-GROUP",
	}
	issues := c.Issues()
	for sentinel, code := range want {
		found := false
		for _, issue := range issues {
			if errors.Is(issue, sentinel) && issue.Code == code {
				found = true
			}
		}
		if !found {
			t.Errorf("missing issue %v on %q in %v", sentinel, code, issues)
		}
	}

	if c.Course("BAD-GROUP") == nil {
		t.Error("courses with issues must still be loaded")
	}
}

func TestPrerequisiteString(t *testing.T) {
	cases := []struct {
		prereq Prerequisite
		want   string
	}{
		{CourseRequirement("GPU-TRMN-0001"), "GPU-TRMN-0001"},
		{AnyOf("", CourseRequirement("A"), CourseRequirement("B")), "one of A or B"},
		{DepartmentChoice(4, LevelD, "Astrogation", "Tactical", "Engineering", "Communications", "Flight Operations"),
			"4 of 5 departments at level D (Astrogation, Tactical, Engineering, Communications, Flight Operations)"},
		{LevelRequirement(LevelC, ""), "any level C course"},
		{Prerequisite{Kind: "mystery"}, `unknown prerequisite "mystery"`},
	}
	for _, tc := range cases {
		t.Run(string(tc.prereq.Kind), func(t *testing.T) {
			if got := tc.prereq.String(); got != tc.want {
				t.Errorf("String() = %q, want %q", got, tc.want)
			}
		})
	}
}
