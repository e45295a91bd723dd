package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"uwevents/internal/app"
	"uwevents/internal/gate"
	"uwevents/internal/session"
)

type stateView struct {
	Status        string `json:"status"`
	Email         string `json:"email,omitempty"`
	EmailVerified bool   `json:"email_verified"`
	IsAdmin       bool   `json:"is_admin"`
}

func viewOf(s session.State) stateView {
	return stateView{Status: s.Status.String(), Email: s.Email, EmailVerified: s.EmailVerified, IsAdmin: s.IsAdmin}
}

func (c *cli) printState(out io.Writer, s session.State) error {
	return c.emit(out, viewOf(s), func(w io.Writer) error {
		if !s.Authenticated() {
			_, err := fmt.Fprintln(w, "not signed in")
			return err
		}
		_, err := fmt.Fprintf(w, "signed in as %s (verified: %s, admin: %s)\n", s.Email, yesNo(s.EmailVerified), yesNo(s.IsAdmin))
		return err
	})
}

// readSecret takes the flag value or the first line of stdin.
func (c *cli) readSecret(cmd *cobra.Command, value, what string) (string, error) {
	if value != "" {
		return value, nil
	}
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read %s: %w", what, err)
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", usageError{msg: what + " is required"}
	}
	return line, nil
}

func (c *cli) sessionCommands() []*cobra.Command {
	status := &cobra.Command{
		Use:   "status",
		Short: "Show who the session belongs to",
		Args:  cobra.NoArgs,
		RunE: c.public(func(cmd *cobra.Command, a *app.App, _ []string) error {
			return c.printState(cmd.OutOrStdout(), a.Resolver.Resolve(cmd.Context()))
		}),
	}

	var email, password string
	login := &cobra.Command{
		Use:   "login",
		Short: "Sign in with email and password (password read from stdin when not given)",
		Args:  cobra.NoArgs,
		RunE: c.public(func(cmd *cobra.Command, a *app.App, _ []string) error {
			pw, err := c.readSecret(cmd, password, "password")
			if err != nil {
				return err
			}
			state, err := a.Resolver.Login(cmd.Context(), strings.TrimSpace(email), pw)
			if err != nil {
				return err
			}
			return c.printState(cmd.OutOrStdout(), state)
		}),
	}
	login.Flags().StringVar(&email, "email", "", "account email")
	login.Flags().StringVar(&password, "password", "", "account password")
	_ = login.MarkFlagRequired("email")

	var regEmail, regPassword string
	register := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: c.public(func(cmd *cobra.Command, a *app.App, _ []string) error {
			pw, err := c.readSecret(cmd, regPassword, "password")
			if err != nil {
				return err
			}
			res, err := a.Resolver.Register(cmd.Context(), strings.TrimSpace(regEmail), pw)
			if err != nil {
				return err
			}
			return c.message(cmd.OutOrStdout(), res, fmt.Sprintf("registered %s: %s", res.Email, res.Message))
		}),
	}
	register.Flags().StringVar(&regEmail, "email", "", "account email")
	register.Flags().StringVar(&regPassword, "password", "", "account password")
	_ = register.MarkFlagRequired("email")

	logout := &cobra.Command{
		Use:   "logout",
		Short: "End the session (the admin token is kept)",
		Args:  cobra.NoArgs,
		RunE: c.public(func(cmd *cobra.Command, a *app.App, _ []string) error {
			return c.printState(cmd.OutOrStdout(), a.Resolver.Logout(cmd.Context()))
		}),
	}
	return []*cobra.Command{status, login, register, logout}
}

func (c *cli) verifyCommand() *cobra.Command {
	verify := &cobra.Command{
		Use:   "verify",
		Short: "Email verification",
	}

	resend := &cobra.Command{
		Use:   "resend",
		Short: "Send a new verification email to the signed-in address",
		Args:  cobra.NoArgs,
		RunE: c.gated(gate.SignedIn(), func(cmd *cobra.Command, a *app.App, _ []string) error {
			res, err := a.Resolver.ResendVerification(cmd.Context(), a.Resolver.State().Email)
			if err != nil {
				return err
			}
			return c.message(cmd.OutOrStdout(), res, res.Message)
		}),
	}

	recheck := &cobra.Command{
		Use:   "recheck",
		Short: "Re-resolve the session to pick up a completed verification",
		Args:  cobra.NoArgs,
		RunE: c.gated(gate.SignedIn(), func(cmd *cobra.Command, a *app.App, _ []string) error {
			return c.printState(cmd.OutOrStdout(), a.Resolver.Resolve(cmd.Context()))
		}),
	}

	email := &cobra.Command{
		Use:   "email <token>",
		Short: "Redeem the token from a verification email",
		Args:  exactArgs(1, "a verification token"),
		RunE: c.public(func(cmd *cobra.Command, a *app.App, args []string) error {
			res, err := a.Resolver.VerifyEmail(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			a.Resolver.Resolve(cmd.Context())
			return c.message(cmd.OutOrStdout(), res, res.Message)
		}),
	}

	var checkEmail string
	check := &cobra.Command{
		Use:   "check",
		Short: "Ask whether an address has been verified",
		Args:  cobra.NoArgs,
		RunE: c.public(func(cmd *cobra.Command, a *app.App, _ []string) error {
			res, err := a.Resolver.CheckVerification(cmd.Context(), strings.TrimSpace(checkEmail))
			if err != nil {
				return err
			}
			return c.message(cmd.OutOrStdout(), res, fmt.Sprintf("%s verified: %s", res.Email, yesNo(res.Verified())))
		}),
	}
	check.Flags().StringVar(&checkEmail, "email", "", "address to check")
	_ = check.MarkFlagRequired("email")

	verify.AddCommand(resend, recheck, email, check)
	return verify
}
