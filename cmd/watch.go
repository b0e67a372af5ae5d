package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newWatchCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Keep syncing queued changes in the foreground until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !app.sync.Configured() {
				return fmt.Errorf("no remote configured: set sync.remote_url in %s/config.toml", app.cfg.DataDir)
			}

			loop := newSyncLoop(app)
			app.outbox.OnEnqueue(loop.Trigger)
			loop.report = func(err error) {
				if err != nil {
					_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "sync failed: %v\n", err)
				}
			}

			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Watching %s for queued changes (every %s). Press Ctrl+C to stop.\n", app.cfg.DataDir, loop.interval)
			return loop.Run(cmd.Context())
		},
	}
}
