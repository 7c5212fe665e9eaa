package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Eiad-Soufan/bm-requests-frontend/internal/service/auth"
)

func newLoginCmd(env *Env) *cobra.Command {
	var (
		username      string
		passwordStdin bool
	)
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			lr := newLineReader(env.In, env.Err)
			if username == "" {
				var err error
				if username, err = lr.ask("Username"); err != nil {
					return fmt.Errorf("read username: %w", err)
				}
			}

			var (
				password string
				err      error
			)
			if passwordStdin {
				password, err = lr.line()
			} else {
				password, err = lr.secret("Password")
			}
			if err != nil {
				return fmt.Errorf("read password: %w", err)
			}

			s, err := env.App().Auth.Login(cmd.Context(), auth.LoginInput{Username: username, Password: password})
			if err != nil {
				return err
			}
			fmt.Fprintf(env.Out, "Logged in as %s (%s)\n", s.Username, s.Role)
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "username (prompted when empty)")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "read the password from the first line of stdin")
	return cmd
}

func newLogoutCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := env.App().Auth.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(env.Out, "Logged out")
			return nil
		},
	}
}

type whoAmIView struct {
	Username  string `json:"username" yaml:"username"`
	UserID    string `json:"user_id,omitempty" yaml:"user_id,omitempty"`
	Role      string `json:"role" yaml:"role"`
	Staff     bool   `json:"is_staff" yaml:"is_staff"`
	ExpiresAt string `json:"expires_at,omitempty" yaml:"expires_at,omitempty"`
}

func newWhoAmICmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			svc := env.App().Auth
			s, err := svc.WhoAmI()
			if err != nil {
				return err
			}
			v := whoAmIView{Username: s.Username, UserID: s.UserID, Role: s.Role.String()}
			var expires string
			if c, err := svc.Claims(); err == nil {
				v.Staff = c.IsStaff
				v.ExpiresAt = stamp(c.ExpiresAt)
				expires = ago(c.ExpiresAt)
			}
			return env.printer().print(v, func(tw *tabwriter.Writer) {
				fmt.Fprintf(tw, "USERNAME:\t%s\n", v.Username)
				if v.UserID != "" {
					fmt.Fprintf(tw, "USER ID:\t%s\n", v.UserID)
				}
				fmt.Fprintf(tw, "ROLE:\t%s\n", v.Role)
				fmt.Fprintf(tw, "STAFF:\t%s\n", yesNo(v.Staff))
				if expires != "" {
					fmt.Fprintf(tw, "TOKEN EXPIRES:\t%s\n", strings.TrimSpace(expires))
				}
			})
		},
	}
}
