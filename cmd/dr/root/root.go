package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"dailyroutine/internal/config"
	"dailyroutine/internal/logger"
	"dailyroutine/internal/ui"
)

const Version = "0.1.0"

var (
	cfg    config.Config
	dbPath string
)

// newRootCmd builds the dr command tree. Flags bind to the package-level
// dbPath, so only one tree should run at a time.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "dr",
		Short:         "Daily Routine: local-first habit tracker with levels, streaks and badges",
		Long:          "Daily Routine tracks the tasks you plan for each day and turns completed ones into XP, levels, streaks and badges.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.Load()
			if err != nil {
				return err
			}
			cfg = c
			logger.Init(cfg.Env, cfg.LogLevel)
			return nil
		},
	}
	cmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")
	cmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite database path (default $DAILY_ROUTINE_DB or ~/.dailyroutine.db)")

	cmd.AddCommand(
		newAddCmd(),
		newEditCmd(),
		newDeleteCmd(),
		newListCmd(),
		newDoCmd(),
		newUndoCmd(),
		newToggleCmd(),
		newStatusCmd(),
		newBadgesCmd(),
		newStatsCmd(),
		newResetStreakCmd(),
		newResetCmd(),
		newSettingsCmd(),
		newQuoteCmd(),
		newExportCmd(),
		newBoardCmd(),
	)
	return cmd
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
