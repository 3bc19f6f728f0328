package root

import (
	"context"

	"github.com/spf13/cobra"
)

func newUndoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "undo <id>",
		Short: "Un-complete a task (take back its XP)",
		Long: `Mark a completed task as not done.

This will:
- Deduct exactly the XP the task awarded (never below zero)
- Decrement the total and category completion counts
- Leave the streak and earned badges untouched

Use this to fix accidental completions.`,
		Args: cobra.ExactArgs(1),
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
			res, err := svc.SetCompleted(ctx, id, false)
			if err != nil {
				return err
			}
			printToggle(cmd.OutOrStdout(), svc, res)
			return nil
		},
	}

	return cmd
}
