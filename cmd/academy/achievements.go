package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trmn/academy/achievement"
	"github.com/trmn/academy/internal/listflags"
	"github.com/trmn/academy/internal/ui"
)

var achievementsCmd = &cobra.Command{
	Use:     "achievements",
	Aliases: []string{"achievement"},
	Short:   "Show achievement progress",
	Args:    cobra.NoArgs,
	RunE:    runAchievements,
}

var (
	achievementsJSON   bool
	achievementsEarned bool
)

func init() {
	rootCmd.AddCommand(achievementsCmd)
	achievementsCmd.Flags().BoolVar(&achievementsEarned, "earned", false, "Only show earned achievements")
	listflags.AddJSONFlag(achievementsCmd, &achievementsJSON)
}

func runAchievements(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	p, err := a.loadProgress()
	if err != nil {
		return err
	}

	all := a.achievements.Achievements(p)
	list := make([]achievement.Achievement, 0, len(all))
	for _, ach := range all {
		if achievementsEarned && !ach.Earned {
			continue
		}
		list = append(list, ach)
	}

	if achievementsJSON {
		return encodeJSONToStdout(list)
	}

	if len(list) == 0 {
		fmt.Println("No achievements earned yet.")
		return nil
	}
	fmt.Print(formatAchievementTable(list))
	return nil
}

func formatAchievementTable(list []achievement.Achievement) string {
	builder := ui.NewTableBuilder([]string{"", "ACHIEVEMENT", "CATEGORY", "PROGRESS", "DESCRIPTION"}, len(list))
	for _, ach := range list {
		builder.AddRow(
			satisfiedIcon(ach.Earned),
			ach.Name,
			string(ach.Category),
			fmt.Sprintf("%d/%d", ach.Current, ach.Target),
			ui.TruncateTableCell(ach.Description),
		)
	}
	return builder.String()
}
