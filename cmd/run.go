package cmd

import (
	"context"
	"fmt"
	"sync"

	"github.com/bnema/studypomo/internal/adapters/tui"
	"github.com/spf13/cobra"
)

func newRunCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:     "run",
		Aliases: []string{"start"},
		Short:   "Open the full-screen timer",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			identity, err := app.auth.Current(cmd.Context())
			if err != nil {
				return err
			}
			snapshot, err := app.data.Snapshot(cmd.Context())
			if err != nil {
				return err
			}

			loopCtx, cancel := context.WithCancel(cmd.Context())
			var wg sync.WaitGroup
			if app.sync.Configured() {
				loop := newSyncLoop(app)
				app.outbox.OnEnqueue(loop.Trigger)
				wg.Add(1)
				go func() {
					defer wg.Done()
					_ = loop.Run(loopCtx)
				}()
			}

			err = tui.Run(cmd.Context(), app.timer, identity.Label(), snapshot.Theme)
			cancel()
			wg.Wait()
			app.outbox.OnEnqueue(nil)
			if err != nil {
				return fmt.Errorf("run timer: %w", err)
			}
			return nil
		},
	}
}
