// Package gate decides what a protected view renders from its requirement and
// the resolved session. It is a pure function; the portal and the CLI render
// the outcome in their own way.
package gate

import "uwevents/internal/session"

// Requirement is the capability a view needs.
type Requirement struct {
	RequireAuthenticated bool
	RequireAdmin         bool
	RequireEmailVerified bool
}

// Default is the requirement of an ordinary protected view.
func Default() Requirement {
	return Requirement{RequireAuthenticated: true, RequireEmailVerified: true}
}

// Admin is the requirement of the admin views.
func Admin() Requirement {
	return Requirement{RequireAuthenticated: true, RequireAdmin: true, RequireEmailVerified: true}
}

// SignedIn lets any authenticated user through, verified or not. The
// verification actions use it.
func SignedIn() Requirement {
	return Requirement{RequireAuthenticated: true}
}

// Public lets everyone through once the session is resolved.
func Public() Requirement {
	return Requirement{}
}

// Outcome is what the view should render.
type Outcome string

const (
	OutcomeLoading       Outcome = "loading"
	OutcomeRedirectLogin Outcome = "redirect_login"
	OutcomeAccessDenied  Outcome = "access_denied"
	OutcomeVerifyEmail   Outcome = "verify_email"
	OutcomeAllow         Outcome = "allow"
)

// AccessDeniedMessage is shown to authenticated users without admin rights.
const AccessDeniedMessage = "You need admin privileges to access this page."

// Decision is the gate's verdict.
type Decision struct {
	Outcome Outcome
	// ReturnTo is the requested location, set on OutcomeRedirectLogin.
	ReturnTo string
	// Email is the address to verify, set on OutcomeVerifyEmail.
	Email string
}

// Allowed reports whether protected content may render.
func (d Decision) Allowed() bool {
	return d.Outcome == OutcomeAllow
}

// Decide applies the rules in order; the first match wins. Authentication
// takes priority over admin privilege, which takes priority over email
// verification.
func Decide(req Requirement, state session.State, location string) Decision {
	switch {
	case state.Status == session.StatusUnknown:
		return Decision{Outcome: OutcomeLoading}
	case req.RequireAuthenticated && state.Status == session.StatusAnonymous:
		return Decision{Outcome: OutcomeRedirectLogin, ReturnTo: location}
	case state.Authenticated() && req.RequireAdmin && !state.IsAdmin:
		return Decision{Outcome: OutcomeAccessDenied}
	case state.Authenticated() && req.RequireEmailVerified && !state.EmailVerified:
		return Decision{Outcome: OutcomeVerifyEmail, Email: state.Email}
	default:
		return Decision{Outcome: OutcomeAllow}
	}
}
