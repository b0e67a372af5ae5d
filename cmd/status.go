package cmd

import (
	"fmt"

	"github.com/bnema/studypomo/internal/domain"
	"github.com/spf13/cobra"
)

type statusView struct {
	Identity      string            `json:"identity"`
	Authenticated bool              `json:"authenticated"`
	NeedsMerge    bool              `json:"needs_merge"`
	Remote        string            `json:"remote,omitempty"`
	Online        bool              `json:"online"`
	Pending       int               `json:"pending"`
	Theme         domain.Theme      `json:"theme"`
	Timer         timerStatusView   `json:"timer"`
	Today         domain.TodayStats `json:"today"`
}

func newStatusCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show account, sync and timer status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			view, err := loadStatus(cmd, app)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, view)
			}
			return writeStatus(cmd, view)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")

	return cmd
}

func loadStatus(cmd *cobra.Command, app *app) (statusView, error) {
	ctx := cmd.Context()

	identity, err := app.auth.Current(ctx)
	if err != nil {
		return statusView{}, err
	}
	pending, err := app.sync.Pending(ctx)
	if err != nil {
		return statusView{}, err
	}
	state := app.timer.State()
	report, err := app.data.Report(ctx, domain.PeriodToday, state.ContinuousWork)
	if err != nil {
		return statusView{}, err
	}

	view := statusView{
		Identity:      identity.Label(),
		Authenticated: identity.Authenticated(),
		NeedsMerge:    identity.NeedsMerge(),
		Pending:       len(pending),
		Theme:         report.Theme,
		Timer:         newTimerStatusView(state),
		Today:         report.Today,
	}
	if app.sync.Configured() {
		view.Remote = app.cfg.RemoteURL
		view.Online = app.sync.Online(ctx)
	}

	return view, nil
}

func writeStatus(cmd *cobra.Command, view statusView) error {
	out := cmd.OutOrStdout()

	account := view.Identity
	if view.NeedsMerge {
		account += " (merge pending)"
	}
	remote := "not configured"
	if view.Remote != "" {
		remote = view.Remote + " (offline)"
		if view.Online {
			remote = view.Remote + " (online)"
		}
	}

	if _, err := fmt.Fprintf(out, "account:  %s\nremote:   %s\npending:  %d\n", account, remote, view.Pending); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(out, "today:    %d sessions, %d min\ntimer:    ", view.Today.Sessions, view.Today.Minutes); err != nil {
		return err
	}
	return writeTimerLine(cmd, view.Timer)
}
