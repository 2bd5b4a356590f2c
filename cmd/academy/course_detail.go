package main

import (
	"fmt"
	"strings"

	"github.com/muesli/reflow/wordwrap"
	"github.com/trmn/academy/catalog"
	"github.com/trmn/academy/internal/markdown"
	"github.com/trmn/academy/internal/ui"
	"github.com/trmn/academy/progress"
)

const courseDetailLineWidth = 80

// printCourseDetail prints detailed information about a course.
func printCourseDetail(a *app, course *catalog.Course, p progress.Progress) {
	fmt.Printf("Code:        %s\n", course.Code)
	fmt.Printf("Name:        %s\n", course.Name)
	fmt.Printf("Status:      %s\n", formatStatus(a.engine.CourseStatus(course, p)))
	if course.Level != "" {
		fmt.Printf("Level:       %s\n", course.Level)
	}
	if section := sectionOrDash(course); section != "-" {
		fmt.Printf("Section:     %s\n", section)
	}
	if course.Institution != "" {
		fmt.Printf("Institution: %s\n", course.Institution)
	}
	if depts := a.catalog.DepartmentsOf(course.Code); len(depts) > 0 {
		fmt.Printf("Departments: %s\n", strings.Join(depts, ", "))
	}
	if equivalents := otherCodes(a.catalog.Resolver().EquivalentCodes(course.Code), course.Code); len(equivalents) > 0 {
		fmt.Printf("Also:        %s\n", strings.Join(equivalents, ", "))
	}
	if date, ok := p.CompletionDates[course.Code]; ok {
		fmt.Printf("Completed:   %s (%s)\n", ui.FormatDate(date), ui.FormatTimeAgo(date, now()))
	}

	if len(course.Prerequisites) > 0 {
		missing := a.engine.MissingPrerequisites(course, p)
		fmt.Println("\nPrerequisites:")
		for _, prereq := range course.Prerequisites {
			fmt.Printf("  %s %s\n", satisfiedIcon(!containsPrereq(missing, prereq)), wrapIndented(prereq.String(), 6))
		}
	}

	if course.Description != "" {
		fmt.Printf("\nDescription:\n%s\n", formatCourseDescription(course.Description))
	}
}

func formatCourseDescription(value string) string {
	rendered := markdown.SafeRender(courseDetailLineWidth, 2, []byte(value))
	if strings.TrimSpace(string(rendered)) == "" {
		return "-"
	}
	return string(rendered)
}

// wrapIndented wraps text to the detail width, indenting continuation lines.
func wrapIndented(text string, indent int) string {
	wrapped := wordwrap.String(text, courseDetailLineWidth-indent)
	return strings.ReplaceAll(wrapped, "\n", "\n"+strings.Repeat(" ", indent))
}

func containsPrereq(list []catalog.Prerequisite, prereq catalog.Prerequisite) bool {
	for _, candidate := range list {
		if candidate.String() == prereq.String() {
			return true
		}
	}
	return false
}

func otherCodes(codes []string, code string) []string {
	others := make([]string, 0, len(codes))
	for _, c := range codes {
		if c != code {
			others = append(others, c)
		}
	}
	return others
}
