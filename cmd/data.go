package cmd

import (
	"fmt"

	"github.com/bnema/studypomo/internal/domain"
	"github.com/spf13/cobra"
)

func newDataCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "data",
		Short: "Recover sessions from the local backup",
	}

	cmd.AddCommand(newDataRecoverCmd(app), newDataBackupCmd(app))

	return cmd
}

func newDataRecoverCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "recover",
		Short: "Restore backed-up sessions missing from the data file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			restored, err := app.data.Recover(cmd.Context())
			if err != nil {
				return err
			}

			if len(restored) == 0 {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "Nothing to recover")
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Recovered %d sessions\n", len(restored))
			return err
		},
	}
}

func newDataBackupCmd(app *app) *cobra.Command {
	var date string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "backup",
		Short: "List backed-up sessions recorded on a date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if date == "" {
				date = domain.FormatDate(app.now())
			}

			sessions, err := app.data.BackupByDate(cmd.Context(), date)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, sessions)
			}

			if len(sessions) == 0 {
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "No backed-up sessions on %s\n", date)
				return err
			}
			for _, session := range sessions {
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %3d min  %-10s  %s\n",
					session.RecordedAt().Format("15:04"),
					session.Mode.Label(),
					session.Duration,
					session.Focus,
					session.SectionOrDefault(),
				); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Date as YYYY-MM-DD (default today)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")

	return cmd
}
