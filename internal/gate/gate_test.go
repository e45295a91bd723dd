package gate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"uwevents/internal/session"
)

func states() map[string]session.State {
	return map[string]session.State{
		"unknown":          {Status: session.StatusUnknown},
		"anonymous":        session.Anonymous(),
		"member":           {Status: session.StatusAuthenticated, Email: "a@uwaterloo.ca", EmailVerified: true},
		"unverified":       {Status: session.StatusAuthenticated, Email: "a@uwaterloo.ca"},
		"admin":            {Status: session.StatusAuthenticated, Email: "b@uwaterloo.ca", IsAdmin: true, EmailVerified: true},
		"unverified admin": {Status: session.StatusAuthenticated, Email: "b@uwaterloo.ca", IsAdmin: true},
	}
}

func requirements() []Requirement {
	var out []Requirement
	for _, auth := range []bool{false, true} {
		for _, admin := range []bool{false, true} {
			for _, verified := range []bool{false, true} {
				out = append(out, Requirement{RequireAuthenticated: auth, RequireAdmin: admin, RequireEmailVerified: verified})
			}
		}
	}
	return out
}

func TestDecideExamples(t *testing.T) {
	tests := []struct {
		name  string
		req   Requirement
		state string
		want  Decision
	}{
		{name: "unknown always loads", req: Admin(), state: "unknown", want: Decision{Outcome: OutcomeLoading}},
		{name: "anonymous is redirected with location", req: Default(), state: "anonymous", want: Decision{Outcome: OutcomeRedirectLogin, ReturnTo: "/submit?step=2"}},
		{name: "member denied admin view", req: Admin(), state: "member", want: Decision{Outcome: OutcomeAccessDenied}},
		{name: "admin check precedes verification", req: Admin(), state: "unverified", want: Decision{Outcome: OutcomeAccessDenied}},
		{name: "unverified member prompted", req: Default(), state: "unverified", want: Decision{Outcome: OutcomeVerifyEmail, Email: "a@uwaterloo.ca"}},
		{name: "unverified admin prompted on admin view", req: Admin(), state: "unverified admin", want: Decision{Outcome: OutcomeVerifyEmail, Email: "b@uwaterloo.ca"}},
		{name: "verified member allowed", req: Default(), state: "member", want: Decision{Outcome: OutcomeAllow}},
		{name: "admin allowed", req: Admin(), state: "admin", want: Decision{Outcome: OutcomeAllow}},
		{name: "public view allows anonymous", req: Public(), state: "anonymous", want: Decision{Outcome: OutcomeAllow}},
		{name: "admin flag alone does not redirect anonymous", req: Requirement{RequireAdmin: true}, state: "anonymous", want: Decision{Outcome: OutcomeAllow}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decide(tt.req, states()[tt.state], "/submit?step=2")
			if tt.want.Outcome != OutcomeRedirectLogin {
				got.ReturnTo = ""
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestDecideProperties checks each outcome's exact condition across every
// requirement and state combination.
func TestDecideProperties(t *testing.T) {
	for stateName, st := range states() {
		for _, req := range requirements() {
			d := Decide(req, st, "/admin")
			authed := st.Status == session.StatusAuthenticated
			denied := authed && req.RequireAdmin && !st.IsAdmin

			assert.Equal(t, st.Status == session.StatusUnknown, d.Outcome == OutcomeLoading,
				"loading iff unknown (%s %+v)", stateName, req)
			assert.Equal(t, req.RequireAuthenticated && st.Status == session.StatusAnonymous, d.Outcome == OutcomeRedirectLogin,
				"redirect iff required and anonymous (%s %+v)", stateName, req)
			assert.Equal(t, denied, d.Outcome == OutcomeAccessDenied,
				"denied iff authenticated non-admin on admin view (%s %+v)", stateName, req)
			assert.Equal(t, authed && !denied && req.RequireEmailVerified && !st.EmailVerified, d.Outcome == OutcomeVerifyEmail,
				"verify iff authenticated, not denied, unverified (%s %+v)", stateName, req)

			if d.Outcome == OutcomeRedirectLogin {
				assert.Equal(t, "/admin", d.ReturnTo)
			}
		}
	}
}

func TestRequirementDefaults(t *testing.T) {
	assert.Equal(t, Requirement{RequireAuthenticated: true, RequireEmailVerified: true}, Default())
	assert.Equal(t, Requirement{RequireAuthenticated: true, RequireAdmin: true, RequireEmailVerified: true}, Admin())
	assert.Equal(t, Requirement{RequireAuthenticated: true}, SignedIn())
	assert.Equal(t, OutcomeAllow, Decide(SignedIn(), states()["unverified"], "/verification/resend").Outcome)
	assert.True(t, Decision{Outcome: OutcomeAllow}.Allowed())
	assert.False(t, Decision{Outcome: OutcomeLoading}.Allowed())
}
