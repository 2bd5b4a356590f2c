package eligibility

import (
	"testing"
	"time"

	"github.com/trmn/academy/catalog"
	"github.com/trmn/academy/internal/logger"
	"github.com/trmn/academy/progress"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var testNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

// testCourses is a small catalog covering every prerequisite kind.
func testCourses() []catalog.Course {
	return []catalog.Course{
		{Code: "GPU-TRMN-0001", Name: "Basic Training", Section: "General", IsIntroductory: true},
		{Code: "GPU-TRMN-0003", Name: "Enlisted Orientation", Section: "General", IsIntroductory: true},
		{
			Code:          "RMACA-RMACS-02A",
			Name:          "Crewman Course",
			Section:       "RMACA",
			Prerequisites: []catalog.Prerequisite{catalog.CourseRequirement("INTRO-TRMN-0003")},
		},
		{
			Code:    "SIA-RMN-0102",
			Name:    "Both Required",
			Section: "SIA",
			Prerequisites: []catalog.Prerequisite{
				catalog.CourseRequirement("GPU-TRMN-0001"),
				catalog.CourseRequirement("GPU-TRMN-0003"),
			},
		},
		{
			Code:    "SIA-RMN-0103",
			Name:    "Either Accepted",
			Section: "SIA",
			Prerequisites: []catalog.Prerequisite{
				catalog.AnyOf("basic or astrogation", catalog.CourseRequirement("GPU-TRMN-0001"), catalog.CourseRequirement("SIA-SRN-31D")),
			},
		},
		{Code: "SIA-SRN-33D", Name: "Astro-Engineering", Level: catalog.LevelD, Departments: []string{"Astrogation", "Engineering"}},
		{Code: "SIA-SRN-31D", Name: "Astrogation Specialist", Level: catalog.LevelD, Departments: []string{"Astrogation"}},
		{Code: "SIA-SRN-32D", Name: "Tactical Specialist", Level: catalog.LevelD, Departments: []string{"Tactical"}},
		{Code: "SIA-SRN-32C", Name: "Tactical Technician", Level: catalog.LevelC, Departments: []string{"Tactical"}},
		{
			Code:          "SIA-RMN-0201",
			Name:          "Two Departments",
			Prerequisites: []catalog.Prerequisite{catalog.DepartmentChoice(2, catalog.LevelD, "Astrogation", "Engineering")},
		},
		{
			Code:          "SIA-RMN-0202",
			Name:          "Any Astrogation",
			Prerequisites: []catalog.Prerequisite{catalog.DepartmentChoice(1, catalog.LevelD, "Astrogation", "Tactical", "Engineering", "Communications", "Flight Operations")},
		},
		{
			Code:          "SIA-RMN-0203",
			Name:          "Any Level C",
			Prerequisites: []catalog.Prerequisite{catalog.LevelRequirement(catalog.LevelC, "")},
		},
	}
}

func testAliases() []catalog.CourseAlias {
	return []catalog.CourseAlias{
		{PrimaryCode: "GPU-TRMN-0003", AlternativeCodes: []string{"INTRO-TRMN-0003", "SIA-RMN-0003"}, Active: true},
	}
}

func newTestCatalog(t *testing.T, courses []catalog.Course) *catalog.Catalog {
	t.Helper()
	return catalog.New(catalog.Data{Courses: courses, Aliases: testAliases()}, catalog.Options{})
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return New(newTestCatalog(t, testCourses()), Options{})
}

func observedLogger() (*logger.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return logger.FromZap(zap.New(core)), logs
}

func completed(codes ...string) progress.Progress {
	p := progress.New()
	for _, code := range codes {
		p.Completed[code] = struct{}{}
	}
	return p
}

func courseCodes(courses []*catalog.Course) []string {
	codes := make([]string, 0, len(courses))
	for _, course := range courses {
		codes = append(codes, course.Code)
	}
	return codes
}
