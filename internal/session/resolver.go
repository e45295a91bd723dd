// Package session owns the single authoritative view of who the current user
// is. The identity lives in a server-issued cookie the client cannot read, so
// the resolver asks the API and folds every failure into "anonymous".
package session

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"sync"

	"uwevents/internal/apiclient"
	"uwevents/internal/platform/inflight"
	"uwevents/internal/platform/metrics"
	"uwevents/internal/platform/privacy"
)

// Operation names reported by InProgress.
const (
	OpResolve            = "resolve"
	OpLogin              = "login"
	OpRegister           = "register"
	OpLogout             = "logout"
	OpResendVerification = "resend_verification"
)

// Fallback messages shown when the server gives no "error" field.
const (
	MsgLoginFailed        = "Login failed"
	MsgRegistrationFailed = "Registration failed"
	MsgResendFailed       = "Failed to resend verification"
	MsgVerifyFailed       = "Failed to verify email"
	MsgCheckFailed        = "Failed to check verification status"
)

// Resolver resolves and mutates the session. One instance per mounted
// application; inject it wherever the state is needed.
//
// Calls are neither serialized nor de-duplicated: concurrent operations each
// apply their own result when they complete, so the last response wins.
type Resolver struct {
	api     *apiclient.Client
	logger  *slog.Logger
	metrics  *metrics.Metrics
	ops      *inflight.Tracker
	onChange ChangeHook

	mu      sync.RWMutex
	state   State
	mounted bool
	closed  bool
	cancel  context.CancelFunc

	ready     chan struct{}
	readyOnce sync.Once
}

type Option func(*Resolver)

// ChangeHook observes identity changes: a different user, a sign-in, a
// sign-out, or a change of the admin flag. It runs after the new state is
// visible and must not call back into the resolver's mutating methods.
type ChangeHook func(prev, next State)

// WithOnChange registers fn to be called whenever the identity changes.
func WithOnChange(fn ChangeHook) Option {
	return func(r *Resolver) {
		r.onChange = fn
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Resolver) {
		r.metrics = m
	}
}

// New returns a resolver in StatusUnknown. api must carry the cookie jar.
func New(api *apiclient.Client, opts ...Option) *Resolver {
	r := &Resolver{
		api:   api,
		ops:   inflight.New(),
		ready: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.New(slog.DiscardHandler)
	}
	return r
}

// Mount starts the initial resolution in the background. Calling it again
// is a no-op.
func (r *Resolver) Mount(ctx context.Context) {
	r.mu.Lock()
	if r.mounted || r.closed {
		r.mu.Unlock()
		return
	}
	r.mounted = true
	ctx, r.cancel = context.WithCancel(ctx)
	r.mu.Unlock()

	go r.Resolve(ctx)
}

// Close tears the resolver down. Responses that arrive afterwards are
// discarded.
func (r *Resolver) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	if r.cancel != nil {
		r.cancel()
	}
	r.readyOnce.Do(func() { close(r.ready) })
}

// Ready is closed once the state has left StatusUnknown or the resolver is
// closed.
func (r *Resolver) Ready() <-chan struct{} {
	return r.ready
}

// State returns the current snapshot.
func (r *Resolver) State() State {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}

// InProgress reports whether an operation of the given name is outstanding.
func (r *Resolver) InProgress(op string) bool {
	return r.ops.Active(op)
}

// Resolve asks the API who the session belongs to. Any non-2xx status,
// transport failure, malformed body or explicit "authenticated": false
// resolves to anonymous. It never fails.
func (r *Resolver) Resolve(ctx context.Context) State {
	defer r.ops.Begin(OpResolve)()

	var body statusResponse
	err := r.api.Do(ctx, apiclient.Request{
		Op:     "session.resolve",
		Method: http.MethodGet,
		Path:   "/auth/status/",
	}, &body)

	next := Anonymous()
	switch {
	case err != nil:
		r.logger.DebugContext(ctx, "session resolved anonymous", "error", err)
	case body.Authenticated != nil && !*body.Authenticated:
		r.logger.DebugContext(ctx, "session resolved anonymous", "reason", "authenticated=false")
	default:
		next = authenticated(body.Email, deref(body.EmailVerified), deref(body.IsAdmin))
	}
	r.metrics.IncSessionResolution(next.Status.String())
	return r.apply(next)
}

// Login authenticates with email and password. On success the session
// cookie is stored by the transport and the state becomes authenticated from
// the response. On failure the state is left as it was.
func (r *Resolver) Login(ctx context.Context, email, password string) (State, error) {
	defer r.ops.Begin(OpLogin)()

	var body loginResponse
	err := r.api.Do(ctx, apiclient.Request{
		Op:       "session.login",
		Method:   http.MethodPost,
		Path:     "/auth/token/",
		JSON:     credentialsRequest{Email: email, Password: password},
		Fallback: MsgLoginFailed,
	}, &body)
	if err != nil {
		r.logger.InfoContext(ctx, "login failed", "error", err)
		return r.State(), err
	}

	r.logger.InfoContext(ctx, "login succeeded",
		"email", privacy.MaskEmail(body.Email),
		"is_admin", deref(body.IsAdmin),
		"email_verified", deref(body.EmailVerified),
	)
	return r.apply(authenticated(body.Email, deref(body.EmailVerified), deref(body.IsAdmin))), nil
}

// Register creates an account. The state is never changed.
func (r *Resolver) Register(ctx context.Context, email, password string) (*RegisterResult, error) {
	defer r.ops.Begin(OpRegister)()

	var body RegisterResult
	if err := r.api.Do(ctx, apiclient.Request{
		Op:       "session.register",
		Method:   http.MethodPost,
		Path:     "/auth/register/",
		JSON:     credentialsRequest{Email: email, Password: password},
		Fallback: MsgRegistrationFailed,
	}, &body); err != nil {
		return nil, err
	}
	return &body, nil
}

// Logout ends the session. The request's outcome is ignored: the state is
// anonymous afterwards whatever the server said.
func (r *Resolver) Logout(ctx context.Context) State {
	defer r.ops.Begin(OpLogout)()

	if err := r.api.Do(ctx, apiclient.Request{
		Op:     "session.logout",
		Method: http.MethodPost,
		Path:   "/auth/logout/",
	}, nil); err != nil {
		r.logger.DebugContext(ctx, "logout request failed", "error", err)
	}
	return r.apply(Anonymous())
}

// ResendVerification asks the API to send a new verification email.
func (r *Resolver) ResendVerification(ctx context.Context, email string) (*Message, error) {
	defer r.ops.Begin(OpResendVerification)()

	var body Message
	if err := r.api.Do(ctx, apiclient.Request{
		Op:       "session.resend_verification",
		Method:   http.MethodPost,
		Path:     "/auth/resend-verification/",
		JSON:     emailRequest{Email: email},
		Fallback: MsgResendFailed,
	}, &body); err != nil {
		return nil, err
	}
	return &body, nil
}

// VerifyEmail redeems a verification token from an email link. Callers
// re-Resolve to pick up the new flag.
func (r *Resolver) VerifyEmail(ctx context.Context, token string) (*Message, error) {
	var body Message
	if err := r.api.Do(ctx, apiclient.Request{
		Op:            "session.verify_email",
		Method:        http.MethodGet,
		Path:          "/auth/verify-email/" + url.PathEscape(token) + "/",
		Fallback:      MsgVerifyFailed,
		AcceptNonJSON: true,
	}, &body); err != nil {
		return nil, err
	}
	if body.Message == "" {
		body.Message = "Email verified successfully!"
	}
	return &body, nil
}

// CheckVerification reports whether email has been verified.
func (r *Resolver) CheckVerification(ctx context.Context, email string) (*VerificationStatus, error) {
	var body VerificationStatus
	if err := r.api.Do(ctx, apiclient.Request{
		Op:       "session.check_verification",
		Method:   http.MethodGet,
		Path:     "/auth/check-verification/",
		Query:    url.Values{"email": {email}},
		Fallback: MsgCheckFailed,
	}, &body); err != nil {
		return nil, err
	}
	return &body, nil
}

func (r *Resolver) apply(next State) State {
	r.mu.Lock()
	if r.closed {
		current := r.state
		r.mu.Unlock()
		return current
	}
	prev := r.state
	r.state = next
	r.mu.Unlock()

	r.readyOnce.Do(func() { close(r.ready) })
	if r.onChange != nil && !prev.SameIdentity(next) {
		r.onChange(prev, next)
	}
	return next
}
