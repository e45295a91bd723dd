package httptransport

import (
	"net/http"
	"net/url"

	"uwevents/internal/gate"
	"uwevents/internal/platform/metrics"
	"uwevents/internal/session"
	"uwevents/pkg/platform/httputil"
)

// StateSource supplies the current session snapshot.
type StateSource interface {
	State() session.State
}

// Verification actions offered on the verify-email view.
var verifyActions = []action{
	{Method: http.MethodPost, Path: "/verification/resend", Label: "Resend verification email"},
	{Method: http.MethodPost, Path: "/verification/recheck", Label: "I've verified, check again"},
	{Method: http.MethodGet, Path: "/login", Label: "Back to login"},
}

type action struct {
	Method string `json:"method"`
	Path   string `json:"path"`
	Label  string `json:"label"`
}

type gateView struct {
	View    string   `json:"view"`
	Message string   `json:"message,omitempty"`
	Email   string   `json:"email,omitempty"`
	Actions []action `json:"actions,omitempty"`
}

// RequireGate renders the gate decision for req and only calls next when
// access is allowed. The requested URI is the return location of the login
// redirect.
func RequireGate(src StateSource, req gate.Requirement, m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			d := gate.Decide(req, src.State(), r.URL.RequestURI())
			m.IncGateDecision(string(d.Outcome))
			if d.Allowed() {
				next.ServeHTTP(w, r)
				return
			}
			renderGate(w, r, d)
		})
	}
}

func renderGate(w http.ResponseWriter, r *http.Request, d gate.Decision) {
	switch d.Outcome {
	case gate.OutcomeLoading:
		w.Header().Set("Retry-After", "1")
		httputil.WriteJSON(w, http.StatusServiceUnavailable, gateView{View: string(d.Outcome)})
	case gate.OutcomeRedirectLogin:
		http.Redirect(w, r, LoginLocation(d.ReturnTo), http.StatusSeeOther)
	case gate.OutcomeAccessDenied:
		httputil.WriteJSON(w, http.StatusForbidden, gateView{
			View:    string(d.Outcome),
			Message: gate.AccessDeniedMessage,
		})
	case gate.OutcomeVerifyEmail:
		httputil.WriteJSON(w, http.StatusForbidden, gateView{
			View:    string(d.Outcome),
			Email:   d.Email,
			Actions: verifyActions,
		})
	}
}

// LoginLocation is the login page carrying returnTo as the post-login target.
func LoginLocation(returnTo string) string {
	if returnTo == "" {
		return "/login"
	}
	return "/login?next=" + url.QueryEscape(returnTo)
}

// safeReturn accepts only local absolute paths as post-login targets.
func safeReturn(next string) (string, bool) {
	if next == "" || next[0] != '/' || len(next) > 1 && (next[1] == '/' || next[1] == '\\') {
		return "", false
	}
	u, err := url.Parse(next)
	if err != nil || u.IsAbs() || u.Host != "" {
		return "", false
	}
	return next, true
}
