package root

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"dailyroutine/internal/engine"
	"dailyroutine/internal/model"
	"dailyroutine/internal/ui"
)

func newListCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List today's tasks (or all with --all)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			tasks := svc.ListTasks(ctx)
			if all {
				fmt.Fprintln(out, ui.Heading(ui.IconSun, "All tasks"))
				byDate := append([]model.Task(nil), tasks...)
				sort.SliceStable(byDate, func(i, j int) bool { return byDate[i].Date < byDate[j].Date })
				lastDate := ""
				for _, t := range byDate {
					if t.Date != lastDate {
						fmt.Fprintln(out, ui.H2.Render(t.Date))
						lastDate = t.Date
					}
					printTaskLine(out, t)
				}
				if len(tasks) == 0 {
					fmt.Fprintln(out, ui.Muted.Render("(no tasks)"))
				}
				return nil
			}

			todays := engine.TodaysTasks(tasks, svc.Now())
			fmt.Fprintln(out, ui.Heading(ui.IconSun, "Today "+svc.Today()))
			if len(todays) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(no tasks for today, add one with `dr add`)"))
				return nil
			}
			for _, t := range todays {
				printTaskLine(out, t)
			}
			fmt.Fprintf(out, "\n%s\n", ui.LabelValue("Completed", fmt.Sprintf("%d%%", engine.CompletionRate(todays))))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Every task, grouped by date")

	return cmd
}

func printTaskLine(w io.Writer, t model.Task) {
	title := t.Title
	if t.Completed {
		title = ui.Done.Render(title)
	}
	fmt.Fprintf(w, "%s %s %s %s %s\n",
		ui.Checkbox(t.Completed),
		ui.Muted.Render(shortID(t.ID)),
		title,
		ui.CategoryTag(t.Category),
		ui.Muted.Render(fmt.Sprintf("%s +%d XP", ui.Minutes(t.DurationMinutes), engine.XPForTask(t.DurationMinutes, t.Category))),
	)
}
