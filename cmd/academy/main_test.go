package main

import (
	"bytes"
	"errors"
	"testing"
)

func TestPrintError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{name: "plain", err: errors.New("course not found: NOPE-0001"), want: "Error: course not found: NOPE-0001\n"},
		{name: "exit code only", err: &exitError{code: 1}, want: ""},
		{name: "exit code with cause", err: &exitError{code: 2, err: errors.New("boom")}, want: "Error: boom\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			printError(&buf, tc.err)
			if got := buf.String(); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestExitErrorCode(t *testing.T) {
	var exitErr interface{ ExitCode() int }
	if !errors.As(error(&exitError{code: 3}), &exitErr) || exitErr.ExitCode() != 3 {
		t.Fatal("expected exitError to expose its exit code")
	}
}
