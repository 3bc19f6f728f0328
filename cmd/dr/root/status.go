package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"dailyroutine/internal/engine"
	"dailyroutine/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show level, XP, streak and today's progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			stats := svc.Stats(ctx)
			into, cost := engine.LevelProgress(stats.XP)

			fmt.Fprintln(out, ui.Heading(ui.IconSparkle, "Your Progress"))
			fmt.Fprintln(out, ui.LabelValue("Level", stats.Level))
			if stats.Level >= engine.MaxLevel {
				fmt.Fprintln(out, ui.LabelValue("Total XP", fmt.Sprintf("%d (max level)", stats.XP)))
			} else {
				fmt.Fprintln(out, ui.LabelValue("Total XP", fmt.Sprintf("%d (%d to level %d)", stats.XP, cost-into, stats.Level+1)))
			}
			fmt.Fprintf(out, "%s %d/%d\n", ui.ProgressBar(into, cost, 30), into, cost)
			fmt.Fprintln(out, "")

			streak := fmt.Sprintf("%s %d days", ui.IconFlame, stats.StreakDays)
			if stats.LastCompletedDate != nil {
				streak += ui.Muted.Render(" (last completed " + *stats.LastCompletedDate + ")")
			}
			fmt.Fprintln(out, ui.LabelValue("Streak", streak))
			fmt.Fprintln(out, ui.LabelValue("Tasks completed", stats.TotalTasksCompleted))

			today := engine.TodaysTasks(svc.ListTasks(ctx), svc.Now())
			done := 0
			for _, t := range today {
				if t.Completed {
					done++
				}
			}
			fmt.Fprintln(out, ui.LabelValue("Today", fmt.Sprintf("%d/%d done (%d%%)", done, len(today), engine.CompletionRate(today))))
			fmt.Fprintln(out, ui.LabelValue("Badges", fmt.Sprintf("%d/%d", len(stats.Badges), len(engine.BadgeDefinitions()))))
			return nil
		},
	}

	return cmd
}
