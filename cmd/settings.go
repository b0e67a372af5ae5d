package cmd

import (
	"fmt"

	"github.com/bnema/studypomo/internal/application"
	"github.com/bnema/studypomo/internal/domain"
	"github.com/spf13/cobra"
)

func newSettingsCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change timer durations and mode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := app.timer.Settings(cmd.Context())
			if err != nil {
				return err
			}
			return writeSettings(cmd, settings, asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")

	cmd.AddCommand(newSettingsSetCmd(app))

	return cmd
}

func newSettingsSetCmd(app *app) *cobra.Command {
	var work, shortBreak, longBreak, mockExam int
	var appMode string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change timer settings; the timer must not be running",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var update application.UpdateSettingsCommand
			flags := cmd.Flags()
			if flags.Changed("work") {
				update.WorkMinutes = &work
			}
			if flags.Changed("break") {
				update.BreakMinutes = &shortBreak
			}
			if flags.Changed("long-break") {
				update.LongBreakMinutes = &longBreak
			}
			if flags.Changed("mock-exam") {
				update.MockExamMinutes = &mockExam
			}
			if flags.Changed("app-mode") {
				mode, err := domain.ParseAppMode(appMode)
				if err != nil {
					return err
				}
				update.AppMode = &mode
			}
			if update == (application.UpdateSettingsCommand{}) {
				return fmt.Errorf("nothing to change: pass at least one of --work, --break, --long-break, --mock-exam, --app-mode")
			}

			settings, err := app.timer.UpdateSettings(cmd.Context(), update)
			if err != nil {
				return err
			}
			return writeSettings(cmd, settings, false)
		},
	}

	cmd.Flags().IntVar(&work, "work", 0, "Work minutes")
	cmd.Flags().IntVar(&shortBreak, "break", 0, "Break minutes")
	cmd.Flags().IntVar(&longBreak, "long-break", 0, "Long break minutes")
	cmd.Flags().IntVar(&mockExam, "mock-exam", 0, "Mock exam minutes")
	cmd.Flags().StringVar(&appMode, "app-mode", "", "App mode (pomodoro|mockExam)")

	return cmd
}

func writeSettings(cmd *cobra.Command, settings domain.Settings, asJSON bool) error {
	if asJSON {
		return writeJSON(cmd, settings)
	}

	d := settings.Durations
	_, err := fmt.Fprintf(cmd.OutOrStdout(),
		"app mode:    %s\nwork:        %d min\nbreak:       %d min\nlong break:  %d min\nmock exam:   %d min\n",
		settings.AppMode, d.Work, d.Break, d.LongBreak, d.MockExam)
	return err
}
