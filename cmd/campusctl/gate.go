package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"uwevents/internal/app"
	"uwevents/internal/gate"
)

// gateError is returned when the session does not satisfy a command's
// requirement.
type gateError struct {
	decision gate.Decision
}

func (e *gateError) Error() string {
	switch e.decision.Outcome {
	case gate.OutcomeLoading:
		return "session could not be resolved yet, try again"
	case gate.OutcomeRedirectLogin:
		return fmt.Sprintf("login required for %q: run campusctl login", e.decision.ReturnTo)
	case gate.OutcomeAccessDenied:
		return gate.AccessDeniedMessage
	case gate.OutcomeVerifyEmail:
		return fmt.Sprintf("email %s is not verified: run campusctl verify resend, then campusctl verify recheck", e.decision.Email)
	default:
		return string(e.decision.Outcome)
	}
}

type runFunc func(cmd *cobra.Command, a *app.App, args []string) error

// gated resolves the session, applies req and only then calls run. The
// command path stands in for the requested location.
func (c *cli) gated(req gate.Requirement, run runFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := c.client(cmd.Context())
		if err != nil {
			return err
		}
		if req != gate.Public() {
			state := a.Resolver.Resolve(cmd.Context())
			decision := gate.Decide(req, state, cmd.CommandPath())
			a.Metrics.IncGateDecision(string(decision.Outcome))
			if !decision.Allowed() {
				return &gateError{decision: decision}
			}
		}
		return run(cmd, a, args)
	}
}

// public runs without a session check.
func (c *cli) public(run runFunc) func(*cobra.Command, []string) error {
	return c.gated(gate.Public(), run)
}

func exactArgs(n int, names string) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) != n {
			return usageError{msg: fmt.Sprintf("expected %s", names)}
		}
		return nil
	}
}
