package cmd

import (
	"fmt"

	statsadapter "github.com/bnema/studypomo/internal/adapters/render/stats"
	"github.com/bnema/studypomo/internal/domain"
	"github.com/spf13/cobra"
)

func newStatsCmd(app *app) *cobra.Command {
	var period string
	var asJSON bool
	var barWidth int

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show study time charts for a period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			parsed, err := domain.ParsePeriod(period)
			if err != nil {
				return err
			}

			report, err := app.data.Report(cmd.Context(), parsed, app.timer.State().ContinuousWork)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, report)
			}

			rendered, err := app.statsRenderer(report, statsadapter.RenderOptions{BarWidth: barWidth})
			if err != nil {
				return fmt.Errorf("render stats: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().StringVar(&period, "period", string(domain.PeriodToday), "Period (today|week|month|year)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	cmd.Flags().IntVar(&barWidth, "width", 0, "Bar width in cells (0 uses the default)")

	return cmd
}
