package cmd

import (
	"fmt"

	authadapter "github.com/bnema/studypomo/internal/adapters/auth"
	"github.com/spf13/cobra"
)

const defaultCallbackAddr = "127.0.0.1:1455"

func newAuthCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Sign in to sync sessions with your account",
	}

	cmd.AddCommand(newAuthLoginCmd(app), newAuthLogoutCmd(app), newAuthStatusCmd(app))

	return cmd
}

func newAuthLoginCmd(app *app) *cobra.Command {
	var browser bool
	var listenAddr string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with a device code, or --browser for a local callback",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var grant authadapter.Grant
			var err error
			if browser {
				grant, err = app.provider.BrowserLogin(cmd.Context(), listenAddr, app.cfg.Auth.Timeout, func(authURL string) error {
					_, err := fmt.Fprintf(cmd.OutOrStdout(), "Open this URL to sign in:\n%s\n", authURL)
					return err
				})
			} else {
				grant, err = deviceLogin(cmd, app)
			}
			if err != nil {
				return err
			}

			secret, err := authadapter.EncodeToken(grant.Token)
			if err != nil {
				return err
			}
			identity := grant.Identity()
			if err := app.auth.SignIn(cmd.Context(), identity, secret); err != nil {
				return fmt.Errorf("save sign-in: %w", err)
			}
			app.identityChanged()

			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s\n", identity.Label()); err != nil {
				return err
			}

			report, err := app.sync.Sync(cmd.Context())
			if err != nil {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Merge deferred: %v\nRun `pomo sync` to retry.\n", err)
				return nil
			}
			return writeSyncReport(cmd, report)
		},
	}

	cmd.Flags().BoolVar(&browser, "browser", false, "Use the browser flow with a local callback server")
	cmd.Flags().StringVar(&listenAddr, "listen", defaultCallbackAddr, "Callback listen address for --browser")

	return cmd
}

func deviceLogin(cmd *cobra.Command, app *app) (authadapter.Grant, error) {
	code, err := app.provider.StartDevice(cmd.Context())
	if err != nil {
		return authadapter.Grant{}, err
	}

	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Open %s and enter the code %s\n", code.VerificationURL, code.UserCode); err != nil {
		return authadapter.Grant{}, err
	}

	return app.provider.WaitDevice(cmd.Context(), code, app.cfg.Auth.Timeout)
}

func newAuthLogoutCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:     "logout",
		Aliases: []string{"guest"},
		Short:   "Sign out and continue as a guest; local data and queued changes are kept",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			previous, err := app.auth.SignOut(cmd.Context())
			app.identityChanged()
			if err != nil {
				return err
			}

			if !previous.Authenticated() {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "Already signed out")
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Signed out %s\n", previous.Label())
			return err
		},
	}
}

func newAuthStatusCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the signed-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			identity, err := app.auth.Current(cmd.Context())
			if err != nil {
				return err
			}

			if !identity.Authenticated() {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "Signed out (guest mode, nothing syncs)")
				return err
			}

			merge := "merge pending"
			if !identity.NeedsMerge() {
				merge = "merged " + identity.MergedAt.Local().Format("2006-01-02 15:04")
			}
			backend, err := app.secrets.Locate(cmd.Context(), identity.SecretRef)
			if err != nil {
				backend = "missing, sign in again"
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s (%s, token: %s)\n", identity.Label(), merge, backend)
			return err
		},
	}
}
