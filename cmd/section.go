package cmd

import (
	"fmt"

	"github.com/bnema/studypomo/internal/domain"
	"github.com/spf13/cobra"
)

func newSectionCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "section",
		Aliases: []string{"sections"},
		Short:   "Manage study sections",
	}

	cmd.AddCommand(
		newSectionListCmd(app),
		newSectionAddCmd(app),
		newSectionRemoveCmd(app),
		newSectionSelectCmd(app),
	)

	return cmd
}

func newSectionListCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List sections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sections, err := app.data.Sections(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, sections)
			}
			if len(sections) == 0 {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "No sections yet. Add one with `pomo section add <name>`.")
				return err
			}

			selected := app.timer.State().Section
			for _, name := range sections {
				marker := " "
				if name == selected {
					marker = "*"
				}
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", marker, name); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")

	return cmd
}

func newSectionAddCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Add a section",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sections, err := app.data.AddSection(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			app.syncAfterWrite(cmd.Context())

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Added section %q (%d/%d)\n", sections[len(sections)-1], len(sections), domain.MaxSections)
			return err
		},
	}
}

func newSectionRemoveCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <name>",
		Aliases: []string{"rm"},
		Short:   "Remove a section; recorded sessions keep its name",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.timer.RemoveSection(cmd.Context(), args[0]); err != nil {
				return err
			}
			app.syncAfterWrite(cmd.Context())

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Removed section %q\n", args[0])
			return err
		},
	}
}

func newSectionSelectCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "select [name]",
		Short: "Select the section new sessions are recorded under; no name clears it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			if err := app.timer.SelectSection(cmd.Context(), name); err != nil {
				return err
			}

			if name == "" {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "Cleared section selection")
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Selected section %q\n", name)
			return err
		},
	}
}
