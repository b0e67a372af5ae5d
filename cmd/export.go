package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bnema/studypomo/internal/application"
	"github.com/spf13/cobra"
)

func newExportCmd(app *app) *cobra.Command {
	var format string
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export recorded sessions as CSV or JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			parsed, err := application.ParseExportFormat(format)
			if err != nil {
				return err
			}

			if out == "" || out == "-" {
				_, err := app.data.Export(cmd.Context(), cmd.OutOrStdout(), parsed)
				return err
			}

			count, err := exportToFile(cmd, app, out, parsed)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d sessions to %s\n", count, out)
			return err
		},
	}

	cmd.Flags().StringVar(&format, "format", string(application.ExportCSV), "Export format (csv|json)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default stdout)")

	return cmd
}

func exportToFile(cmd *cobra.Command, app *app, path string, format application.ExportFormat) (int, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return 0, fmt.Errorf("create export directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create export file: %w", err)
	}

	count, err := app.data.Export(cmd.Context(), file, format)
	if closeErr := file.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("close export file: %w", closeErr)
	}
	return count, err
}
