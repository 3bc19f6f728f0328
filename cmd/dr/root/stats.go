package root

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"dailyroutine/internal/engine"
	"dailyroutine/internal/model"
	"dailyroutine/internal/ui"
)

var weekdayNames = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show category totals and this week's progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			stats := svc.Stats(ctx)
			tasks := svc.ListTasks(ctx)

			fmt.Fprintln(out, ui.Heading(ui.IconChart, "Statistics"))
			fmt.Fprintln(out, ui.H2.Render("By category"))
			maxN := 0
			for _, c := range model.Categories {
				if n := stats.CategoryStats[c]; n > maxN {
					maxN = n
				}
			}
			for _, c := range model.Categories {
				n := stats.CategoryStats[c]
				fmt.Fprintf(out, "- %s %s %d\n", padTag(c), ui.ProgressBar(n, maxN, 20), n)
			}
			if best, ok := engine.MostConsistentCategory(stats); ok {
				fmt.Fprintln(out, ui.LabelValue("Most consistent", ui.CategoryTag(best)))
			}
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render("This week"))
			week := engine.WeeklyProgress(tasks, svc.Now())
			weekTotal := 0
			for i, n := range week {
				weekTotal += n
				fmt.Fprintf(out, "- %s %s %d\n", weekdayNames[i], strings.Repeat("■", n), n)
			}
			fmt.Fprintln(out, ui.LabelValue("Completed this week", weekTotal))
			fmt.Fprintln(out, ui.LabelValue("Today", fmt.Sprintf("%d%%", engine.CompletionRate(engine.TodaysTasks(tasks, svc.Now())))))
			return nil
		},
	}

	return cmd
}

func padTag(c model.Category) string {
	return ui.CategoryTag(c) + strings.Repeat(" ", len("Business")-len(string(c)))
}
