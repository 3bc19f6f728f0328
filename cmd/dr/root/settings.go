package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"dailyroutine/internal/model"
	"dailyroutine/internal/ui"
)

func newSettingsCmd() *cobra.Command {
	var dark, focus, notify bool
	var reminder string

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change settings",
		Example: `  dr settings
  dr settings --dark --reminder 07:30
  dr settings --focus=false`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			flags := cmd.Flags()
			s := svc.Settings(ctx)
			if flags.Changed("dark") || flags.Changed("focus") || flags.Changed("notifications") || flags.Changed("reminder") {
				s, err = svc.UpdateSettings(ctx, func(s *model.Settings) error {
					if flags.Changed("dark") {
						s.DarkMode = dark
					}
					if flags.Changed("focus") {
						s.MorningFocusMode = focus
					}
					if flags.Changed("notifications") {
						s.NotificationsEnabled = notify
					}
					if flags.Changed("reminder") {
						s.ReminderTime = reminder
					}
					return nil
				})
				if err != nil {
					return err
				}
				ui.ApplySettings(s)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconGear, "Settings"))
			fmt.Fprintln(out, ui.LabelValue("Dark mode", onOff(s.DarkMode)))
			fmt.Fprintln(out, ui.LabelValue("Morning focus mode", onOff(s.MorningFocusMode)))
			fmt.Fprintln(out, ui.LabelValue("Notifications", onOff(s.NotificationsEnabled)))
			fmt.Fprintln(out, ui.LabelValue("Reminder time", s.ReminderTime))
			return nil
		},
	}

	cmd.Flags().BoolVar(&dark, "dark", false, "Dark mode")
	cmd.Flags().BoolVar(&focus, "focus", false, "Morning focus mode (board shows only open tasks)")
	cmd.Flags().BoolVar(&notify, "notifications", true, "Daily reminder notifications")
	cmd.Flags().StringVar(&reminder, "reminder", "", "Reminder time as HH:MM")

	return cmd
}

func onOff(v bool) string {
	if v {
		return ui.Good.Render("on")
	}
	return ui.Muted.Render("off")
}
