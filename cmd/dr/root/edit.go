package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"dailyroutine/internal/engine"
	"dailyroutine/internal/model"
	"dailyroutine/internal/ui"
)

func newEditCmd() *cobra.Command {
	var title, category, date string
	var duration int

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a task's title, category, duration or date",
		Long: `Change a task's fields. Only the flags you pass are applied.

The category and duration of a completed task are locked because they decide
how much XP an undo takes back. Undo it first to change them.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			var patch engine.TaskPatch
			if cmd.Flags().Changed("title") {
				patch.Title = &title
			}
			if cmd.Flags().Changed("type") {
				c, err := model.ParseCategory(category)
				if err != nil {
					return err
				}
				patch.Category = &c
			}
			if cmd.Flags().Changed("duration") {
				patch.DurationMinutes = &duration
			}
			if cmd.Flags().Changed("date") {
				patch.Date = &date
			}
			if patch == (engine.TaskPatch{}) {
				return errors.New("nothing to change: pass --title, --type, --duration or --date")
			}

			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			id, err := resolveTask(ctx, svc, args[0])
			if err != nil {
				return err
			}
			t, err := svc.UpdateTask(ctx, id, patch)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s\n",
				ui.Good.Render(ui.IconSparkle+" Updated"),
				ui.Muted.Render(shortID(t.ID)),
				t.Title,
				ui.Muted.Render(fmt.Sprintf("(%s, %s, %s)", t.Category, ui.Minutes(t.DurationMinutes), t.Date)),
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVarP(&category, "type", "t", "", "New category")
	cmd.Flags().IntVarP(&duration, "duration", "d", 0, "New duration in minutes")
	cmd.Flags().StringVar(&date, "date", "", "New date as YYYY-MM-DD")

	return cmd
}

func newDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a task (earned XP and badges are kept)",
		Args:    cobra.ExactArgs(1),
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
			if t == nil {
				return fmt.Errorf("no task matches %q", args[0])
			}
			if err := svc.DeleteTask(ctx, t.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.Warn.Render(ui.IconTrash+" Deleted"), ui.Muted.Render(shortID(t.ID)), t.Title)
			return nil
		},
	}

	return cmd
}
