package root

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"dailyroutine/internal/engine"
	"dailyroutine/internal/ui"
)

func newQuoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Show today's motivational quote",
		RunE: func(cmd *cobra.Command, args []string) error {
			q := engine.DailyQuote(time.Now())
			fmt.Fprintf(cmd.OutOrStdout(), "%s %q\n  %s\n", ui.IconQuote, q.Text, ui.Muted.Render("- "+q.Author))
			return nil
		},
	}

	return cmd
}
