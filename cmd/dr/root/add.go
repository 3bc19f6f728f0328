package root

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"dailyroutine/internal/engine"
	"dailyroutine/internal/model"
	"dailyroutine/internal/ui"
)

func newAddCmd() *cobra.Command {
	var category string
	var duration int
	var date string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task to today's routine (or another day)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("title is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			cat, err := model.ParseCategory(category)
			if err != nil {
				return err
			}

			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			t, err := svc.AddTask(ctx, engine.AddTaskInput{
				Title:           strings.Join(args, " "),
				Category:        cat,
				DurationMinutes: duration,
				Date:            date,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s\n",
				ui.Good.Render(ui.IconPlus+" Added"),
				ui.Muted.Render(shortID(t.ID)),
				t.Title,
				ui.Muted.Render(fmt.Sprintf("(%s, %s, %s, +%d XP)", t.Category, ui.Minutes(t.DurationMinutes), t.Date, engine.XPForTask(t.DurationMinutes, t.Category))),
			)
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "type", "t", string(model.DefaultCategory), "Category (study|fitness|business|personal)")
	cmd.Flags().IntVarP(&duration, "duration", "d", 30, fmt.Sprintf("Duration in minutes (presets: %s)", durationPresets()))
	cmd.Flags().StringVar(&date, "date", "", "Date as YYYY-MM-DD (default today)")

	return cmd
}

func durationPresets() string {
	parts := make([]string, 0, len(model.DurationOptions))
	for _, d := range model.DurationOptions {
		parts = append(parts, fmt.Sprint(d))
	}
	return strings.Join(parts, ", ")
}

// shortID is the display form of a task id; any unique prefix resolves back.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
