package httptransport

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"uwevents/internal/platform/middleware"
	dErrors "uwevents/pkg/domain-errors"
	"uwevents/pkg/platform/httputil"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *credentialsRequest) Normalize() {
	r.Email = strings.TrimSpace(r.Email)
}

type emailRequest struct {
	Email string `json:"email"`
}

type loginView struct {
	View string `json:"view"`
	Next string `json:"next,omitempty"`
}

// handleSession renders the current session snapshot.
func (h *Handler) handleSession(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, viewOf(h.session.State()))
}

func (h *Handler) handleLoginView(w http.ResponseWriter, r *http.Request) {
	next, _ := safeReturn(r.URL.Query().Get("next"))
	httputil.WriteJSON(w, http.StatusOK, loginView{View: "login", Next: next})
}

// handleLogin signs in and, when a local next target is given, redirects
// there. Otherwise it answers with the new session.
func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	req, ok := httputil.DecodeAndNormalize[credentialsRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	state, err := h.session.Login(ctx, req.Email, req.Password)
	if err != nil {
		h.logger.InfoContext(ctx, "portal login failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}
	if next, ok := safeReturn(r.URL.Query().Get("next")); ok {
		http.Redirect(w, r, next, http.StatusSeeOther)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, viewOf(state))
}

// handleLogout ends the session and sends the browser home.
func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	h.session.Logout(r.Context())
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	req, ok := httputil.DecodeAndNormalize[credentialsRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	res, err := h.session.Register(ctx, req.Email, req.Password)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, res)
}

// handleResendVerification resends to the signed-in address; a body email
// is only used when the session carries none.
func (h *Handler) handleResendVerification(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	email := h.session.State().Email
	if email == "" && r.ContentLength != 0 {
		req, ok := httputil.DecodeJSON[emailRequest](w, r, h.logger, ctx, middleware.GetRequestID(ctx))
		if !ok {
			return
		}
		email = strings.TrimSpace(req.Email)
	}
	if email == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "email is required"))
		return
	}
	res, err := h.session.ResendVerification(ctx, email)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, messageView{Message: res.Message})
}

// handleRecheckVerification re-resolves the session so a verification done
// elsewhere takes effect.
func (h *Handler) handleRecheckVerification(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, viewOf(h.session.Resolve(r.Context())))
}

func (h *Handler) handleVerifyEmail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	res, err := h.session.VerifyEmail(ctx, chi.URLParam(r, "token"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.session.Resolve(ctx)
	httputil.WriteJSON(w, http.StatusOK, messageView{View: "email_verified", Message: res.Message})
}
