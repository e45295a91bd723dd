package session

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"uwevents/internal/platform/metrics"
	dErrors "uwevents/pkg/domain-errors"
)

type ResolverSuite struct {
	suite.Suite
	api      *fakeAPI
	resolver *Resolver
	metrics  *metrics.Metrics
	ctx      context.Context
}

func TestResolverSuite(t *testing.T) {
	suite.Run(t, new(ResolverSuite))
}

func (s *ResolverSuite) SetupTest() {
	s.ctx = context.Background()
	s.api = newFakeAPI()
	s.metrics = metrics.New(prometheus.NewRegistry())
	s.resolver = s.api.start(s.T(), WithMetrics(s.metrics))
}

func (s *ResolverSuite) TestStartsUnknown() {
	st := s.resolver.State()
	s.Equal(StatusUnknown, st.Status)
	s.False(st.Resolved())
	s.Empty(st.Email)
}

func (s *ResolverSuite) TestResolveWithoutSessionIsAnonymous() {
	st := s.resolver.Resolve(s.ctx)
	s.Equal(StatusAnonymous, st.Status)
	s.Equal(Anonymous(), s.resolver.State())
	s.Equal(1.0, testutil.ToFloat64(s.metrics.SessionResolutions.WithLabelValues("anonymous")))
}

func (s *ResolverSuite) TestLoginThenResolve() {
	st, err := s.resolver.Login(s.ctx, "a@uwaterloo.ca", "pw")
	s.Require().NoError(err)
	s.Equal(State{Status: StatusAuthenticated, Email: "a@uwaterloo.ca", EmailVerified: true}, st)
	s.Equal(st, s.resolver.State())

	// The cookie set by login is what makes the status check succeed.
	resolved := s.resolver.Resolve(s.ctx)
	s.Equal(st, resolved)
}

func (s *ResolverSuite) TestLoginFailureLeavesStateUntouched() {
	s.resolver.Resolve(s.ctx)
	before := s.resolver.State()

	st, err := s.resolver.Login(s.ctx, "a@uwaterloo.ca", "wrong")
	s.Require().Error(err)
	s.Equal("Invalid credentials", err.Error())
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	s.Equal(before, st)
	s.Equal(before, s.resolver.State())
}

func (s *ResolverSuite) TestLoginFallbackMessage() {
	srvDown := New(newClientFor("http://127.0.0.1:1/api"))
	_, err := srvDown.Login(s.ctx, "a@uwaterloo.ca", "pw")
	s.Require().Error(err)
	s.Equal(MsgLoginFailed, err.Error())
	s.True(dErrors.HasCode(err, dErrors.CodeTransport))
	s.Equal(StatusUnknown, srvDown.State().Status)
}

func (s *ResolverSuite) TestAdminFlag() {
	st, err := s.resolver.Login(s.ctx, "admin@uwaterloo.ca", "pw")
	s.Require().NoError(err)
	s.True(st.IsAdmin)
	s.True(s.resolver.Resolve(s.ctx).IsAdmin)
}

func (s *ResolverSuite) TestLogout() {
	s.Run("clears the session", func() {
		_, err := s.resolver.Login(s.ctx, "a@uwaterloo.ca", "pw")
		s.Require().NoError(err)

		s.Equal(Anonymous(), s.resolver.Logout(s.ctx))
		s.Equal(StatusAnonymous, s.resolver.Resolve(s.ctx).Status)
	})

	s.Run("server failure still ends in anonymous", func() {
		_, err := s.resolver.Login(s.ctx, "a@uwaterloo.ca", "pw")
		s.Require().NoError(err)
		s.api.failLogout(http.StatusInternalServerError)

		s.Equal(Anonymous(), s.resolver.Logout(s.ctx))
	})

	s.Run("transport failure still ends in anonymous", func() {
		down := New(newClientFor("http://127.0.0.1:1/api"))
		s.Equal(StatusAnonymous, down.Logout(s.ctx).Status)
	})
}

func (s *ResolverSuite) TestResolveFailsClosed() {
	cases := map[string]http.HandlerFunc{
		"server error": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "boom"})
		},
		"malformed body": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"authenticated": true})
		},
		"missing flags": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"email": "a@uwaterloo.ca"})
		},
		"explicitly unauthenticated": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{
				"authenticated":  false,
				"email":          "a@uwaterloo.ca",
				"is_admin":       false,
				"email_verified": true,
			})
		},
		"not json": func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html></html>"))
		},
	}
	for name, handler := range cases {
		s.Run(name, func() {
			_, err := s.resolver.Login(s.ctx, "a@uwaterloo.ca", "pw")
			s.Require().NoError(err)

			s.api.overrideStatus(handler)
			defer s.api.overrideStatus(nil)

			st := s.resolver.Resolve(s.ctx)
			s.Equal(Anonymous(), st)
		})
	}
}

func (s *ResolverSuite) TestOnChangeFiresOnIdentityChanges() {
	var changes [][2]State
	r := s.api.start(s.T(), WithOnChange(func(prev, next State) {
		changes = append(changes, [2]State{prev, next})
	}))

	// unknown to anonymous carries no identity
	r.Resolve(s.ctx)
	s.Empty(changes)

	alice, err := r.Login(s.ctx, "a@uwaterloo.ca", "pw")
	s.Require().NoError(err)
	s.Require().Len(changes, 1)
	s.Equal(Anonymous(), changes[0][0])
	s.Equal(alice, changes[0][1])

	// same user again
	r.Resolve(s.ctx)
	s.Len(changes, 1)

	admin, err := r.Login(s.ctx, "admin@uwaterloo.ca", "pw")
	s.Require().NoError(err)
	s.Require().Len(changes, 2)
	s.Equal(alice, changes[1][0])
	s.Equal(admin, changes[1][1])

	r.Logout(s.ctx)
	s.Require().Len(changes, 3)
	s.Equal(Anonymous(), changes[2][1])

	r.Logout(s.ctx)
	s.Len(changes, 3)
}

func (s *ResolverSuite) TestOnChangeSilentAfterClose() {
	fired := false
	r := s.api.start(s.T(), WithOnChange(func(State, State) { fired = true }))
	r.Close()

	_, err := r.Login(s.ctx, "a@uwaterloo.ca", "pw")
	s.Require().NoError(err)
	s.False(fired)
}

func TestSameIdentity(t *testing.T) {
	alice := authenticated("a@uwaterloo.ca", false, false)
	cases := []struct {
		name string
		a, b State
		same bool
	}{
		{"unknown and anonymous", State{}, Anonymous(), true},
		{"verification flag ignored", alice, authenticated("a@uwaterloo.ca", true, false), true},
		{"different email", alice, authenticated("b@uwaterloo.ca", false, false), false},
		{"admin flag", alice, authenticated("a@uwaterloo.ca", false, true), false},
		{"signed out", alice, Anonymous(), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.same, tc.a.SameIdentity(tc.b))
			assert.Equal(t, tc.same, tc.b.SameIdentity(tc.a))
		})
	}
}

func (s *ResolverSuite) TestRegisterDoesNotSignIn() {
	res, err := s.resolver.Register(s.ctx, "fresh@uwaterloo.ca", "pw")
	s.Require().NoError(err)
	s.Equal("fresh@uwaterloo.ca", res.Email)
	s.False(res.EmailVerified)
	s.Equal(StatusUnknown, s.resolver.State().Status)

	_, err = s.resolver.Register(s.ctx, "fresh@uwaterloo.ca", "pw")
	s.Require().Error(err)
	s.Equal("Email already registered", err.Error())
}

func (s *ResolverSuite) TestResendVerification() {
	msg, err := s.resolver.ResendVerification(s.ctx, "new@uwaterloo.ca")
	s.Require().NoError(err)
	s.Contains(msg.Message, "Verification email sent")

	_, err = s.resolver.ResendVerification(s.ctx, "ghost@uwaterloo.ca")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ResolverSuite) TestVerifyEmailFlow() {
	_, err := s.resolver.Login(s.ctx, "new@uwaterloo.ca", "pw")
	s.Require().NoError(err)
	s.False(s.resolver.State().EmailVerified)

	msg, err := s.resolver.VerifyEmail(s.ctx, "good")
	s.Require().NoError(err)
	s.NotEmpty(msg.Message)

	status, err := s.resolver.CheckVerification(s.ctx, "new@uwaterloo.ca")
	s.Require().NoError(err)
	s.True(status.Verified())

	// State only changes on the next resolution.
	s.False(s.resolver.State().EmailVerified)
	s.True(s.resolver.Resolve(s.ctx).EmailVerified)

	_, err = s.resolver.VerifyEmail(s.ctx, "bogus")
	s.Require().Error(err)
	s.Equal("Invalid verification token", err.Error())
}

func (s *ResolverSuite) TestMountResolvesOnce() {
	s.resolver.Mount(s.ctx)
	s.resolver.Mount(s.ctx)

	select {
	case <-s.resolver.Ready():
	case <-time.After(2 * time.Second):
		s.FailNow("resolver never became ready")
	}
	s.Equal(StatusAnonymous, s.resolver.State().Status)
	s.Equal(int32(1), s.api.statusHit.Load())
}

func (s *ResolverSuite) TestResponsesAfterCloseAreDiscarded() {
	release := make(chan struct{})
	s.api.overrideStatus(func(w http.ResponseWriter, r *http.Request) {
		<-release
		writeJSON(w, http.StatusOK, map[string]any{"email": "a@uwaterloo.ca", "is_admin": false, "email_verified": true})
	})

	done := make(chan State, 1)
	go func() { done <- s.resolver.Resolve(s.ctx) }()

	s.Eventually(func() bool { return s.resolver.InProgress(OpResolve) }, time.Second, 5*time.Millisecond)
	s.resolver.Close()
	close(release)

	<-done
	s.Equal(StatusUnknown, s.resolver.State().Status)
	s.False(s.resolver.InProgress(OpResolve))
}

func (s *ResolverSuite) TestInProgress() {
	release := make(chan struct{})
	s.api.overrideStatus(func(w http.ResponseWriter, r *http.Request) {
		<-release
		writeJSON(w, http.StatusUnauthorized, map[string]any{"authenticated": false})
	})

	done := make(chan struct{})
	go func() {
		s.resolver.Resolve(s.ctx)
		close(done)
	}()

	s.Eventually(func() bool { return s.resolver.InProgress(OpResolve) }, time.Second, 5*time.Millisecond)
	s.False(s.resolver.InProgress(OpLogin))
	close(release)
	<-done
	s.False(s.resolver.InProgress(OpResolve))
}
