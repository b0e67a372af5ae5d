package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd, app := newRootCmd()
	defer func() { _ = app.Close() }()

	return rootCmd.ExecuteContext(ctx)
}

// newRootCmd returns the command tree and the app it wires lazily before
// any command runs. Callers close the app once the command returns.
func newRootCmd() (*cobra.Command, *app) {
	var verbose bool
	app := &app{}

	rootCmd := &cobra.Command{
		Use:           "pomo",
		Short:         "Study pomodoro timer with offline-first sync",
		Long:          "pomo runs a pomodoro and mock exam timer, records every study session with your focus level, charts your study time and syncs it to your account when you are online.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			wired, err := wireApp(cmd.Context(), wireOptions{Verbose: verbose, Stderr: cmd.ErrOrStderr()})
			if err != nil {
				return err
			}
			*app = *wired
			return nil
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Also write logs to stderr")

	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(app),
		newStatusCmd(app),
		newTimerCmd(app),
		newSectionCmd(app),
		newThemeCmd(app),
		newSettingsCmd(app),
		newStatsCmd(app),
		newExportCmd(app),
		newSyncCmd(app),
		newWatchCmd(app),
		newAuthCmd(app),
		newDataCmd(app),
	)

	return rootCmd, app
}
