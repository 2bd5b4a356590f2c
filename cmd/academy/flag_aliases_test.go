package main

import (
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func TestDateAliasUsesSingleFlag(t *testing.T) {
	var date string
	cmd := &cobra.Command{Use: "example"}
	addDateFlagAliases(cmd)
	cmd.Flags().StringVar(&date, "date", "", "Example date")

	if err := cmd.Flags().Set("on", "2026-03-14"); err != nil {
		t.Fatalf("set on alias: %v", err)
	}
	if date != "2026-03-14" {
		t.Fatalf("expected date to be set via alias, got %q", date)
	}
	if !cmd.Flags().Changed("date") {
		t.Fatal("expected date flag to be marked as changed")
	}

	usage := cmd.Flags().FlagUsages()
	if strings.Contains(usage, "--on ") {
		t.Fatalf("did not expect alias to appear in usage, got %q", usage)
	}
}
