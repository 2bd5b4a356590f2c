package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trmn/academy/internal/listflags"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the course catalog",
}

var catalogCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Report data-quality problems in the catalog",
	Args:  cobra.NoArgs,
	RunE:  runCatalogCheck,
}

var catalogCheckJSON bool

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogCheckCmd)
	listflags.AddJSONFlag(catalogCheckCmd, &catalogCheckJSON)
}

type issueView struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

func runCatalogCheck(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	issues := a.catalog.Issues()
	if catalogCheckJSON {
		views := make([]issueView, 0, len(issues))
		for _, issue := range issues {
			views = append(views, issueView{Code: issue.Code, Message: issue.Error()})
		}
		if err := encodeJSONToStdout(views); err != nil {
			return err
		}
	} else if len(issues) == 0 {
		fmt.Printf("%d courses, no problems found.\n", len(a.catalog.Courses))
	} else {
		for _, issue := range issues {
			fmt.Println(issue.Error())
		}
		fmt.Printf("%d %s found.\n", len(issues), plural(len(issues), "problem", "problems"))
	}

	if len(issues) > 0 {
		return &exitError{code: 1}
	}
	return nil
}
