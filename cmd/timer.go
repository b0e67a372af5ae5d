package cmd

import (
	"fmt"
	"strconv"

	"github.com/bnema/studypomo/internal/domain"
	"github.com/spf13/cobra"
)

func newTimerCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timer",
		Short: "Inspect and control the saved timer without the full-screen UI",
	}

	cmd.AddCommand(
		newTimerStatusCmd(app),
		newTimerResetCmd(app),
		newTimerFocusCmd(app),
		newTimerModeCmd(app),
		newTimerAdjustCmd(app),
	)

	return cmd
}

type timerStatusView struct {
	AppMode           domain.AppMode     `json:"app_mode"`
	Mode              domain.Mode        `json:"mode"`
	Status            domain.TimerStatus `json:"status"`
	RemainingSeconds  int                `json:"remaining_seconds"`
	TotalSeconds      int                `json:"total_seconds"`
	ContinuousMinutes int                `json:"continuous_minutes"`
	CompletedSessions int                `json:"completed_sessions"`
	Section           string             `json:"section,omitempty"`
}

func newTimerStatusView(state domain.TimerState) timerStatusView {
	return timerStatusView{
		AppMode:           state.AppMode,
		Mode:              state.Mode,
		Status:            state.Status,
		RemainingSeconds:  state.Remaining,
		TotalSeconds:      state.Total,
		ContinuousMinutes: state.ContinuousMinutes(),
		CompletedSessions: state.CompletedSessions,
		Section:           state.Section,
	}
}

func newTimerStatusCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the saved timer state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			view := newTimerStatusView(app.timer.State())
			if asJSON {
				return writeJSON(cmd, view)
			}
			return writeTimerLine(cmd, view)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")

	return cmd
}

func writeTimerLine(cmd *cobra.Command, view timerStatusView) error {
	section := view.Section
	if section == "" {
		section = "no section"
	}
	_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s  %s  %s  (%d completed, %d min continuous)\n",
		view.Mode.Label(),
		view.Status,
		formatSeconds(view.RemainingSeconds),
		section,
		view.CompletedSessions,
		view.ContinuousMinutes,
	)
	return err
}

func formatSeconds(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

func newTimerResetCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Reset the timer to the full duration of its mode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := app.timer.Reset(cmd.Context()); err != nil {
				return err
			}
			return writeTimerLine(cmd, newTimerStatusView(app.timer.State()))
		},
	}
}

func newTimerFocusCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:       "focus <focused|normal|distracted>",
		Short:     "Record the focus level of a completed work session",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(domain.FocusFocused), string(domain.FocusNormal), string(domain.FocusDistracted)},
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := domain.ParseFocusLevel(args[0])
			if err != nil {
				return err
			}

			session, _, err := app.timer.RecordFocus(cmd.Context(), level)
			if err != nil {
				return err
			}
			app.syncAfterWrite(cmd.Context())

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Recorded %d min %s session (%s)\n", session.Duration, session.Focus, session.SectionOrDefault())
			return err
		},
	}
}

func newTimerModeCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:       "mode <pomodoro|mockExam>",
		Short:     "Switch between pomodoro and mock exam mode",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(domain.AppModePomodoro), string(domain.AppModeMockExam)},
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := domain.ParseAppMode(args[0])
			if err != nil {
				return err
			}
			if _, err := app.timer.SwitchAppMode(cmd.Context(), mode); err != nil {
				return err
			}
			return writeTimerLine(cmd, newTimerStatusView(app.timer.State()))
		},
	}
}

func newTimerAdjustCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:     "adjust <minutes>",
		Short:   "Add or remove minutes from a paused or idle timer",
		Example: "  pomo timer adjust 5\n  pomo timer adjust -- -5",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			delta, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("parse minutes %q: %w", args[0], err)
			}
			if err := app.timer.AdjustTime(cmd.Context(), delta); err != nil {
				return err
			}
			return writeTimerLine(cmd, newTimerStatusView(app.timer.State()))
		},
	}
}
