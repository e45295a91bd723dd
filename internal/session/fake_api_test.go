package session

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/http/cookiejar"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"uwevents/internal/apiclient"
)

type fakeUser struct {
	password string
	admin    bool
	verified bool
}

// fakeAPI mimics the auth endpoints: login sets an auth_token cookie that
// status reads back.
type fakeAPI struct {
	mu        sync.Mutex
	users     map[string]fakeUser
	sessions  map[string]string
	statusHit atomic.Int32
	// statusOverride, when set, replaces the status handler.
	statusOverride http.HandlerFunc
	logoutStatus   int
}

func (f *fakeAPI) overrideStatus(h http.HandlerFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statusOverride = h
}

func (f *fakeAPI) failLogout(status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logoutStatus = status
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		users: map[string]fakeUser{
			"a@uwaterloo.ca":     {password: "pw", verified: true},
			"admin@uwaterloo.ca": {password: "pw", admin: true, verified: true},
			"new@uwaterloo.ca":   {password: "pw"},
		},
		sessions: map[string]string{},
	}
}

func (f *fakeAPI) router() http.Handler {
	r := chi.NewRouter()
	r.Route("/api/auth", func(r chi.Router) {
		r.Get("/status/", f.status)
		r.Post("/token/", f.login)
		r.Post("/logout/", f.logout)
		r.Post("/register/", f.register)
		r.Post("/resend-verification/", f.resend)
		r.Get("/verify-email/{token}/", f.verify)
		r.Get("/check-verification/", f.check)
	})
	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (f *fakeAPI) status(w http.ResponseWriter, r *http.Request) {
	f.statusHit.Add(1)
	f.mu.Lock()
	override := f.statusOverride
	f.mu.Unlock()
	if override != nil {
		override(w, r)
		return
	}
	cookie, err := r.Cookie("auth_token")
	f.mu.Lock()
	email, ok := "", false
	if err == nil {
		email, ok = f.sessions[cookie.Value]
	}
	user := f.users[email]
	f.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"authenticated": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"authenticated":  true,
		"email":          email,
		"is_admin":       user.admin,
		"email_verified": user.verified,
	})
}

func (f *fakeAPI) login(w http.ResponseWriter, r *http.Request) {
	var in credentialsRequest
	_ = json.NewDecoder(r.Body).Decode(&in)
	if in.Email == "" || in.Password == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Email and password are required"})
		return
	}
	f.mu.Lock()
	user, ok := f.users[in.Email]
	if ok && user.password == in.Password {
		f.sessions["tok-"+in.Email] = in.Email
	}
	f.mu.Unlock()
	if !ok || user.password != in.Password {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})
		return
	}
	http.SetCookie(w, &http.Cookie{Name: "auth_token", Value: "tok-" + in.Email, Path: "/", HttpOnly: true})
	writeJSON(w, http.StatusOK, map[string]any{
		"message":        "Login successful",
		"email":          in.Email,
		"is_admin":       user.admin,
		"email_verified": user.verified,
	})
}

func (f *fakeAPI) logout(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	failWith := f.logoutStatus
	f.mu.Unlock()
	if failWith != 0 {
		writeJSON(w, failWith, map[string]string{"error": "boom"})
		return
	}
	if cookie, err := r.Cookie("auth_token"); err == nil {
		f.mu.Lock()
		delete(f.sessions, cookie.Value)
		f.mu.Unlock()
	}
	http.SetCookie(w, &http.Cookie{Name: "auth_token", Value: "", Path: "/", MaxAge: -1})
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

func (f *fakeAPI) register(w http.ResponseWriter, r *http.Request) {
	var in credentialsRequest
	_ = json.NewDecoder(r.Body).Decode(&in)
	f.mu.Lock()
	_, exists := f.users[in.Email]
	if !exists {
		f.users[in.Email] = fakeUser{password: in.Password}
	}
	f.mu.Unlock()
	if exists {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Email already registered"})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message":        "User created successfully. Please check your email to verify your account.",
		"email":          in.Email,
		"email_verified": false,
	})
}

func (f *fakeAPI) resend(w http.ResponseWriter, r *http.Request) {
	var in emailRequest
	_ = json.NewDecoder(r.Body).Decode(&in)
	f.mu.Lock()
	_, ok := f.users[in.Email]
	f.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "No account found with this email address"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Verification email sent successfully. Please check your email."})
}

func (f *fakeAPI) verify(w http.ResponseWriter, r *http.Request) {
	switch chi.URLParam(r, "token") {
	case "good":
		f.mu.Lock()
		u := f.users["new@uwaterloo.ca"]
		u.verified = true
		f.users["new@uwaterloo.ca"] = u
		f.mu.Unlock()
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<h1>Email verified</h1>"))
	case "done":
		writeJSON(w, http.StatusOK, map[string]string{"message": "Email already verified"})
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid verification token"})
	}
}

func (f *fakeAPI) check(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	f.mu.Lock()
	user, ok := f.users[email]
	f.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "No account found with this email address"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"email": email, "email_verified": user.verified})
}

// start serves the fake API and returns a resolver wired to it through a
// cookie-carrying client.
func (f *fakeAPI) start(t *testing.T, opts ...Option) *Resolver {
	t.Helper()
	srv := httptest.NewServer(f.router())
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	api := apiclient.New(srv.URL+"/api", apiclient.WithCookieJar(jar))
	return New(api, opts...)
}

func newClientFor(baseURL string) *apiclient.Client {
	return apiclient.New(baseURL, apiclient.WithTimeout(time.Second))
}
