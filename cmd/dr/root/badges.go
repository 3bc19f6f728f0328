package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"dailyroutine/internal/engine"
	"dailyroutine/internal/model"
	"dailyroutine/internal/ui"
)

func newBadgesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "badges",
		Short: "List earned and locked badges",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			stats := svc.Stats(ctx)
			fmt.Fprintln(out, ui.Heading(ui.IconTrophy, "Badges"))
			for _, st := range engine.BadgeBoard(stats) {
				def := st.Definition
				if st.Earned != nil {
					fmt.Fprintf(out, "%s %s %s\n",
						ui.BadgeEmoji(st.Earned.Icon),
						ui.Gold.Render(def.Name),
						ui.Muted.Render(fmt.Sprintf("%s, earned %s", def.Description, st.Earned.EarnedAt.Format(model.DateLayout))),
					)
					continue
				}
				fmt.Fprintf(out, "%s %s %s\n",
					ui.IconLock,
					ui.Muted.Render(def.Name),
					ui.Muted.Render(fmt.Sprintf("%s (%s)", def.Description, progressToward(def.Requirement, stats))),
				)
			}

			// Badges stored under ids this version no longer defines are still shown.
			for _, b := range stats.Badges {
				known := false
				for _, def := range engine.BadgeDefinitions() {
					if def.ID == b.ID {
						known = true
						break
					}
				}
				if !known {
					fmt.Fprintf(out, "%s %s %s\n", ui.BadgeEmoji(b.Icon), ui.Gold.Render(b.Name), ui.Muted.Render(b.Description))
				}
			}
			return nil
		},
	}

	return cmd
}

func progressToward(req engine.Requirement, stats model.UserStats) string {
	var cur int
	var unit string
	switch req.(type) {
	case engine.StreakLength:
		cur, unit = stats.StreakDays, "days"
	case engine.TasksCompleted:
		cur, unit = stats.TotalTasksCompleted, "tasks"
	case engine.LevelReached:
		cur, unit = stats.Level, "level"
	default:
		return req.String()
	}
	target := req.Threshold()
	return fmt.Sprintf("%s %d/%d %s", ui.ProgressBar(cur, target, 10), cur, target, unit)
}
