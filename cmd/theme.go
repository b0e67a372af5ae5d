package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newThemeCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Show or change the color theme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			snapshot, err := app.data.Snapshot(cmd.Context())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), snapshot.Theme)
			return err
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:       "set <light|dark>",
		Short:     "Change the color theme",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"light", "dark"},
		RunE: func(cmd *cobra.Command, args []string) error {
			theme, err := app.data.SetTheme(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			app.syncAfterWrite(cmd.Context())

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Theme set to %s\n", theme)
			return err
		},
	})

	return cmd
}
