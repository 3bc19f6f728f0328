package root

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"dailyroutine/internal/engine"
	"dailyroutine/internal/ui"
)

func newDoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "do <id>",
		Short: "Complete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			id, err := resolveTask(ctx, svc, args[0])
			if err != nil {
				return err
			}
			res, err := svc.SetCompleted(ctx, id, true)
			if err != nil {
				return err
			}
			printToggle(cmd.OutOrStdout(), svc, res)
			return nil
		},
	}

	return cmd
}

func newToggleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "toggle <id>",
		Short: "Flip a task between done and not done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			t, err := svc.FindTask(ctx, args[0])
			if err != nil {
				return err
			}
			id := args[0]
			if t != nil {
				id = t.ID
			}
			res, err := svc.ToggleTask(ctx, id)
			if err != nil {
				return err
			}
			if res == nil {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render(ui.IconInfo+" No task matches "+args[0]+"; nothing changed."))
				return nil
			}
			printToggle(cmd.OutOrStdout(), svc, res)
			return nil
		},
	}

	return cmd
}

func printToggle(w io.Writer, svc *engine.Service, res *engine.ToggleResult) {
	name := shortID(res.TaskID)
	if t, err := svc.FindTask(context.Background(), res.TaskID); err == nil && t != nil {
		name = fmt.Sprintf("%s %s", shortID(t.ID), t.Title)
	}

	if res.Completed {
		fmt.Fprintf(w, "%s %s %s\n", ui.Good.Render(ui.IconDone+" Done"), name, ui.Gold.Render(fmt.Sprintf("(+%d XP)", res.XPDelta)))
	} else {
		fmt.Fprintf(w, "%s %s %s\n", ui.Warn.Render(ui.IconUndo+" Undone"), name, ui.Muted.Render(fmt.Sprintf("(%d XP)", res.XPDelta)))
	}

	if res.LevelUp {
		fmt.Fprintf(w, "%s %s\n", ui.BadgeLevelUp, ui.LabelValue("Level", fmt.Sprintf("%d → %d", res.LevelBefore, res.LevelAfter)))
	} else if res.LevelDown {
		fmt.Fprintf(w, "%s %s\n", ui.BadgeLevelDown, ui.LabelValue("Level", fmt.Sprintf("%d → %d", res.LevelBefore, res.LevelAfter)))
	}
	if res.StreakCounted {
		fmt.Fprintf(w, "%s %s\n", ui.IconFlame, ui.LabelValue("Streak", fmt.Sprintf("%d → %d days", res.StreakBefore, res.StreakAfter)))
	}
	for _, b := range res.NewBadges {
		fmt.Fprintf(w, "%s %s %s\n", ui.Gold.Render(ui.BadgeEmoji(b.Icon)+" Badge unlocked:"), b.Name, ui.Muted.Render("("+b.Description+")"))
	}
}
