package main

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	"uwevents/internal/app"
	"uwevents/internal/gate"
	"uwevents/internal/platform/config"
	"uwevents/internal/platform/localstore"
)

type account struct {
	Email         string `json:"email"`
	IsAdmin       bool   `json:"is_admin"`
	EmailVerified bool   `json:"email_verified"`
}

// fakeAPI signs in one account and serves the admin endpoints.
type fakeAPI struct {
	mu       sync.Mutex
	account  account
	hits     map[string]int
	lastAuth string
}

func (f *fakeAPI) count(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[path]
}

func (f *fakeAPI) setAccount(acc account) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.account = acc
}

func (f *fakeAPI) auth() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastAuth
}

func (f *fakeAPI) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			f.mu.Lock()
			f.hits[req.URL.Path]++
			f.lastAuth = req.Header.Get("Authorization")
			f.mu.Unlock()
			w.Header().Set("Content-Type", "application/json")
			next.ServeHTTP(w, req)
		})
	})
	r.Route("/api", func(r chi.Router) {
		r.Get("/auth/status/", func(w http.ResponseWriter, req *http.Request) {
			if _, err := req.Cookie("sessionid"); err != nil {
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "not authenticated"})
				return
			}
			f.mu.Lock()
			acc := f.account
			f.mu.Unlock()
			_ = json.NewEncoder(w).Encode(acc)
		})
		r.Post("/auth/token/", func(w http.ResponseWriter, req *http.Request) {
			var body struct {
				Email    string `json:"email"`
				Password string `json:"password"`
			}
			_ = json.NewDecoder(req.Body).Decode(&body)
			if body.Password != "hunter2" {
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "Invalid credentials"})
				return
			}
			http.SetCookie(w, &http.Cookie{Name: "sessionid", Value: "s1", Path: "/"})
			f.mu.Lock()
			f.account.Email = body.Email
			acc := f.account
			f.mu.Unlock()
			_ = json.NewEncoder(w).Encode(map[string]any{
				"message": "ok", "email": acc.Email, "is_admin": acc.IsAdmin, "email_verified": acc.EmailVerified,
			})
		})
		r.Post("/auth/logout/", func(w http.ResponseWriter, _ *http.Request) {
			http.SetCookie(w, &http.Cookie{Name: "sessionid", Value: "", Path: "/", MaxAge: -1})
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "bye"})
		})
		r.Get("/promotions/events/promoted/", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"promoted_events":[{"id":7,"name":"Hack Night","club_handle":"uwcs","promotion":{"id":1,"priority":3}}]}`))
		})
	})
	return r
}

type CLISuite struct {
	suite.Suite
	api    *fakeAPI
	server *httptest.Server
	store  *localstore.Memory
}

func TestCLISuite(t *testing.T) {
	suite.Run(t, new(CLISuite))
}

func (s *CLISuite) SetupTest() {
	s.api = &fakeAPI{hits: map[string]int{}, account: account{EmailVerified: true}}
	s.server = httptest.NewServer(s.api.routes())
	s.store = localstore.NewMemory()
}

func (s *CLISuite) TearDownTest() {
	s.server.Close()
}

// exec runs one command line against a fresh client graph sharing the
// suite's storage, the way successive invocations share the storage file.
func (s *CLISuite) exec(stdin string, args ...string) (int, string, string) {
	var out, errOut bytes.Buffer
	open := func(ctx context.Context, cfg config.Config, log *slog.Logger) (*app.App, error) {
		return app.New(ctx, cfg, app.WithStore(s.store), app.WithLogger(log))
	}
	args = append([]string{"--api-url", s.server.URL + "/api"}, args...)
	code := run(context.Background(), args, strings.NewReader(stdin), &out, &errOut, open)
	return code, out.String(), errOut.String()
}

func (s *CLISuite) login() {
	code, out, errOut := s.exec("hunter2\n", "login", "--email", "a@uwaterloo.ca")
	s.Require().Equal(exitOK, code, errOut)
	s.Require().Contains(out, "signed in as a@uwaterloo.ca")
}

func (s *CLISuite) TestStatusWhenSignedOut() {
	code, out, _ := s.exec("", "status")
	s.Equal(exitOK, code)
	s.Equal("not signed in\n", out)
}

func (s *CLISuite) TestLoginPersistsSessionAcrossInvocations() {
	s.login()

	code, out, _ := s.exec("", "--json", "status")
	s.Equal(exitOK, code)
	var view stateView
	s.Require().NoError(json.Unmarshal([]byte(out), &view))
	s.Equal("authenticated", view.Status)
	s.Equal("a@uwaterloo.ca", view.Email)
}

func (s *CLISuite) TestLoginFailureKeepsServerMessage() {
	code, _, errOut := s.exec("wrong\n", "login", "--email", "a@uwaterloo.ca")
	s.Equal(exitFailed, code)
	s.Contains(errOut, "Invalid credentials")
}

func (s *CLISuite) TestAdminCommandRedirectsToLoginWhenAnonymous() {
	code, _, errOut := s.exec("", "promotions", "list")
	s.Equal(exitGate, code)
	s.Contains(errOut, "login required")
	s.Equal(0, s.api.count("/api/promotions/events/promoted/"))
}

func (s *CLISuite) TestAdminCommandDeniedForMembers() {
	s.login()
	s.Require().Equal(exitOK, first(s.exec("", "admin", "token", "set", "--value", "tok")))

	code, _, errOut := s.exec("", "promotions", "list")
	s.Equal(exitGate, code)
	s.Contains(errOut, gate.AccessDeniedMessage)
	s.Equal(0, s.api.count("/api/promotions/events/promoted/"))
}

func (s *CLISuite) TestUnverifiedMemberIsAskedToVerify() {
	s.api.setAccount(account{})
	s.login()

	code, _, errOut := s.exec("", "submissions", "list", "events")
	s.Equal(exitGate, code)
	s.Contains(errOut, "email a@uwaterloo.ca is not verified")
}

func (s *CLISuite) TestAdminListsPromotionsWithToken() {
	s.api.setAccount(account{IsAdmin: true, EmailVerified: true})
	s.login()
	s.Require().Equal(exitOK, first(s.exec("tok-1\n", "admin", "token", "set")))

	code, out, errOut := s.exec("", "promotions", "list")
	s.Require().Equal(exitOK, code, errOut)
	s.Contains(out, "Hack Night")
	s.Contains(out, "uwcs")
	s.Equal("Token tok-1", s.api.auth())
}

func (s *CLISuite) TestAdminLogoutKeepsSession() {
	s.api.setAccount(account{IsAdmin: true, EmailVerified: true})
	s.login()
	s.Require().Equal(exitOK, first(s.exec("", "admin", "token", "set", "--value", "tok-1")))

	code, out, _ := s.exec("", "admin", "logout")
	s.Equal(exitOK, code)
	s.Equal("admin token cleared\n", out)

	_, out, _ = s.exec("", "status")
	s.Contains(out, "signed in as a@uwaterloo.ca")

	code, _, errOut := s.exec("", "promotions", "list")
	s.Equal(exitFailed, code)
	s.Contains(errOut, "Admin token not found. Please log in.")
	s.Equal(0, s.api.count("/api/promotions/events/promoted/"))
}

func (s *CLISuite) TestRejectWithoutReasonSendsNothing() {
	s.api.setAccount(account{IsAdmin: true, EmailVerified: true})
	s.login()

	code, _, errOut := s.exec("", "moderation", "reject", "event", "3")
	s.Equal(exitFailed, code)
	s.Contains(errOut, "Rejection reason is required")
	s.Equal(0, s.api.count("/api/events/submissions/3/moderate/"))
}

func (s *CLISuite) TestUsageErrors() {
	s.api.setAccount(account{IsAdmin: true, EmailVerified: true})
	s.login()

	code, _, errOut := s.exec("", "promotions", "status", "abc")
	s.Equal(exitUsage, code)
	s.Contains(errOut, `invalid id "abc"`)

	code, _, _ = s.exec("", "moderation", "pending", "societies")
	s.Equal(exitUsage, code)
}

func (s *CLISuite) TestVersionNeedsNoStorage() {
	var out bytes.Buffer
	opened := false
	open := func(context.Context, config.Config, *slog.Logger) (*app.App, error) {
		opened = true
		return nil, nil
	}
	code := run(context.Background(), []string{"version"}, strings.NewReader(""), &out, &out, open)
	s.Equal(exitOK, code)
	s.Contains(out.String(), "campusctl dev")
	s.False(opened)
}

func first(code int, _ ...string) int {
	return code
}
