package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trmn/academy/achievement"
	"github.com/trmn/academy/catalog"
	"github.com/trmn/academy/internal/listflags"
	"github.com/trmn/academy/internal/ui"
)

var pinCmd = &cobra.Command{
	Use:   "pin [oswp|eswp]...",
	Short: "Show space warfare pin progress",
	Args:  cobra.ArbitraryArgs,
	RunE:  runPin,
}

var pinJSON bool

const pinBarWidth = 20

func init() {
	rootCmd.AddCommand(pinCmd)
	listflags.AddJSONFlag(pinCmd, &pinJSON)
}

func runPin(cmd *cobra.Command, args []string) error {
	types := achievement.ValidPinTypes()
	if len(args) > 0 {
		types = nil
		for _, arg := range args {
			t, err := achievement.ParsePinType(arg)
			if err != nil {
				return err
			}
			types = append(types, t)
		}
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	p, err := a.loadProgress()
	if err != nil {
		return err
	}

	results := make([]achievement.PinProgress, 0, len(types))
	for _, t := range types {
		results = append(results, a.achievements.PinProgress(p, t))
	}

	if pinJSON {
		return encodeJSONToStdout(results)
	}

	for i, result := range results {
		if i > 0 {
			fmt.Println()
		}
		printPinProgress(result)
	}
	return nil
}

func printPinProgress(result achievement.PinProgress) {
	title := fmt.Sprintf("%s (%s)", result.Name, result.Type)
	if result.Earned {
		title += " " + ui.Paint("earned", ui.ToneSuccess)
	}
	fmt.Println(ui.Heading(title))
	fmt.Printf("  %s\n", ui.ProgressBar(result.OverallProgress, pinBarWidth))
	for _, req := range result.Requirements {
		line := req.Description
		if req.Kind == catalog.KindDepartmentChoice {
			line = fmt.Sprintf("%s [%d/%d]", line, req.Satisfied, req.Minimum)
		}
		fmt.Printf("  %s %s\n", satisfiedIcon(req.Completed), line)
	}
}
