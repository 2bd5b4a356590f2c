package main

import "testing"

func TestCourseEmptyListMessage(t *testing.T) {
	cases := []struct {
		name       string
		total      int
		status     string
		includeAll bool
		want       string
	}{
		{name: "empty catalog", total: 0, want: "No courses found."},
		{name: "status filter", total: 3, status: "In_Progress", want: "No courses found with status in_progress."},
		{name: "hint all", total: 3, want: "No active courses found. Use --all to include completed and locked courses."},
		{name: "all", total: 3, includeAll: true, want: "No courses found."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := courseEmptyListMessage(tc.total, tc.status, tc.includeAll)
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}
