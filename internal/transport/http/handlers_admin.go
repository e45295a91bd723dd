package httptransport

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"uwevents/internal/moderation"
	"uwevents/internal/platform/middleware"
	"uwevents/internal/promotion"
	dErrors "uwevents/pkg/domain-errors"
	"uwevents/pkg/platform/httputil"
)

type tokenRequest struct {
	Token string `json:"token"`
}

func (r *tokenRequest) Normalize() {
	r.Token = strings.TrimSpace(r.Token)
}

type credentialView struct {
	View    string `json:"view,omitempty"`
	Present bool   `json:"present"`
}

type moderateRequest struct {
	Verdict         moderation.Verdict `json:"verdict"`
	RejectionReason string             `json:"rejection_reason"`
}

// handleSetCredential stores the token of slot.
func (h *Handler) handleSetCredential(slot Credential) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		req, ok := httputil.DecodeAndNormalize[tokenRequest](w, r, h.logger, ctx, middleware.GetRequestID(ctx))
		if !ok {
			return
		}
		if err := slot.Set(ctx, req.Token); err != nil {
			httputil.WriteError(w, err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, credentialView{Present: true})
	}
}

func (h *Handler) handleClearCredential(slot Credential) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := slot.Clear(r.Context()); err != nil {
			httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to clear token"))
			return
		}
		httputil.WriteJSON(w, http.StatusOK, credentialView{Present: false})
	}
}

// handleAdminLogout clears the admin token only. The session is untouched
// and the answer is the admin login view, not a redirect.
func (h *Handler) handleAdminLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.admin.Clear(r.Context()); err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to clear token"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, credentialView{View: "admin_login", Present: false})
}

func (h *Handler) handleAdminStatus(w http.ResponseWriter, r *http.Request) {
	view := "admin_login"
	present := h.admin.Present(r.Context())
	if present {
		view = "admin"
	}
	httputil.WriteJSON(w, http.StatusOK, credentialView{View: view, Present: present})
}

func (h *Handler) handleListPromoted(w http.ResponseWriter, r *http.Request) {
	events, err := h.promotions.ListPromoted(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"promoted_events": events})
}

func (h *Handler) handlePromotionStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	status, err := h.promotions.Status(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, status)
}

// handlePromote serves both promote (POST) and update (PATCH).
func (h *Handler) handlePromote(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	req, ok := h.promotionRequest(w, r)
	if !ok {
		return
	}
	call, status := h.promotions.Promote, http.StatusCreated
	if r.Method == http.MethodPatch {
		call, status = h.promotions.Update, http.StatusOK
	}
	res, err := call(r.Context(), id, *req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, status, res)
}

func (h *Handler) handleUnpromote(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	res, err := h.promotions.Unpromote(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) handleDeletePromotion(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.promotions.Delete(r.Context(), id); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handlePendingEvents(w http.ResponseWriter, r *http.Request) {
	items, err := h.moderation.PendingEvents(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, items)
}

func (h *Handler) handlePendingClubs(w http.ResponseWriter, r *http.Request) {
	items, err := h.moderation.PendingClubs(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, items)
}

// handleModerate applies a decision to /admin/moderation/{kind}/{id}, where
// kind is "events" or "clubs".
func (h *Handler) handleModerate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeJSON[moderateRequest](w, r, h.logger, ctx, middleware.GetRequestID(ctx))
	if !ok {
		return
	}
	d := moderation.Decision{
		ID:              id,
		Kind:            moderation.Kind(strings.TrimSuffix(chi.URLParam(r, "kind"), "s")),
		Verdict:         req.Verdict,
		RejectionReason: req.RejectionReason,
	}
	res, err := h.moderation.Moderate(ctx, d)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if res.Club != nil {
		httputil.WriteJSON(w, http.StatusOK, res.Club)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res.Event)
}

// promotionRequest decodes an optional body; an empty body is an empty
// request.
func (h *Handler) promotionRequest(w http.ResponseWriter, r *http.Request) (*promotion.Request, bool) {
	ctx := r.Context()
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "invalid request body"))
		return nil, false
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return &promotion.Request{}, true
	}
	r.Body = io.NopCloser(strings.NewReader(string(body)))
	return httputil.DecodeJSON[promotion.Request](w, r, h.logger, ctx, middleware.GetRequestID(ctx))
}

// pathID parses the {id} URL parameter.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		var numErr *strconv.NumError
		msg := "id must be an integer"
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			msg = "id is out of range"
		}
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, msg))
		return 0, false
	}
	return id, true
}
