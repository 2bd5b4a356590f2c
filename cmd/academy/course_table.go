package main

import (
	"github.com/trmn/academy/catalog"
	"github.com/trmn/academy/internal/ui"
	"github.com/trmn/academy/progress"
)

func formatCourseTable(a *app, courses []*catalog.Course, p progress.Progress) string {
	builder := ui.NewTableBuilder([]string{"CODE", "STATUS", "LEVEL", "SECTION", "COMPLETED", "NAME"}, len(courses))
	for _, course := range courses {
		status := a.engine.CourseStatus(course, p)
		builder.AddRow(
			course.Code,
			formatStatus(status),
			levelOrDash(course.Level),
			ui.TruncateTableCell(sectionOrDash(course)),
			ui.FormatDate(p.CompletionDates[course.Code]),
			ui.TruncateTableCell(course.Name),
		)
	}
	return builder.String()
}

// formatStatus paints a status for terminal output.
func formatStatus(s progress.Status) string {
	switch s {
	case progress.StatusCompleted:
		return ui.Paint(string(s), ui.ToneSuccess)
	case progress.StatusInProgress, progress.StatusWaitingGrade:
		return ui.Paint(string(s), ui.ToneWarning)
	case progress.StatusLocked:
		return ui.Paint(string(s), ui.ToneMuted)
	default:
		return ui.Paint(string(s), ui.ToneActive)
	}
}

func levelOrDash(level catalog.Level) string {
	if level == "" {
		return "-"
	}
	return string(level)
}

func sectionOrDash(course *catalog.Course) string {
	switch {
	case course.Subsection != "":
		return course.Subsection
	case course.Section != "":
		return course.Section
	default:
		return "-"
	}
}
