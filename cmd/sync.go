package cmd

import (
	"context"
	"fmt"

	"github.com/bnema/studypomo/internal/application"
	"github.com/spf13/cobra"
)

func newSyncCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Merge after sign-in and deliver queued changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var report application.SyncReport
			run := func(ctx context.Context) error {
				var err error
				report, err = app.sync.Sync(ctx)
				return err
			}

			if asJSON {
				if err := run(cmd.Context()); err != nil {
					return err
				}
				return writeJSON(cmd, report)
			}
			if err := runSpinner(cmd.Context(), cmd.ErrOrStderr(), "Syncing...", run); err != nil {
				return err
			}
			return writeSyncReport(cmd, report)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	cmd.AddCommand(newSyncStatusCmd(app))

	return cmd
}

func writeSyncReport(cmd *cobra.Command, report application.SyncReport) error {
	out := cmd.OutOrStdout()

	if merge := report.Merge; merge != nil {
		if _, err := fmt.Fprintf(out, "Merged with account: pushed %d, fetched %d (%d sessions, %d sections)\n",
			merge.Pushed, merge.Fetched, merge.Sessions, merge.Sections); err != nil {
			return err
		}
	}

	drain := report.Drain
	if drain.Skipped {
		_, err := fmt.Fprintf(out, "Sync skipped: %s (%d pending)\n", drain.Reason, drain.Remaining)
		return err
	}
	_, err := fmt.Fprintf(out, "Delivered %d, failed %d, %d pending\n", drain.Delivered, drain.Failed, drain.Remaining)
	return err
}

func newSyncStatusCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "List changes waiting in the offline queue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pending, err := app.sync.Pending(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, pending)
			}

			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "pending: %d\n", len(pending)); err != nil {
				return err
			}
			for _, item := range pending {
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%4d  %s  %-8s  %s\n",
					item.ID,
					item.EnqueuedAt.Local().Format("2006-01-02 15:04:05"),
					item.Collection,
					item.Action,
				); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")

	return cmd
}
