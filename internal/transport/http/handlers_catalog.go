package httptransport

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"uwevents/internal/catalog"
	"uwevents/internal/newsletter"
	"uwevents/internal/platform/middleware"
	dErrors "uwevents/pkg/domain-errors"
	"uwevents/pkg/platform/httputil"
)

// maxUpload bounds an event submission including its poster.
const maxUpload = 10 << 20

func (h *Handler) handleEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	events, err := h.catalog.Events(r.Context(), catalog.EventFilter{
		Search:    q.Get("search"),
		StartDate: q.Get("start_date"),
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, events)
}

func (h *Handler) handleClubs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	clubs, err := h.catalog.Clubs(r.Context(), catalog.ClubFilter{
		Search:   q.Get("search"),
		Category: q.Get("category"),
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"clubs": clubs})
}

func (h *Handler) handleMyEventSubmissions(w http.ResponseWriter, r *http.Request) {
	items, err := h.catalog.MyEventSubmissions(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, items)
}

func (h *Handler) handleMyClubSubmissions(w http.ResponseWriter, r *http.Request) {
	items, err := h.catalog.MyClubSubmissions(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, items)
}

// handleSubmitEvent accepts the same multipart form the API does and
// forwards it through the catalog client.
func (h *Handler) handleSubmitEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := r.ParseMultipartForm(maxUpload); err != nil {
		h.logger.WarnContext(ctx, "invalid event submission form", "error", err, "request_id", middleware.GetRequestID(ctx))
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "invalid multipart form"))
		return
	}
	sub, err := eventSubmission(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	var image catalog.Image
	if file, header, err := r.FormFile("image"); err == nil {
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "unreadable image"))
			return
		}
		image = catalog.Image{Filename: header.Filename, Data: data}
	}

	res, err := h.catalog.SubmitEvent(ctx, sub, image)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, res)
}

func (h *Handler) handleSubmitClub(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeJSON[catalog.ClubSubmission](w, r, h.logger, ctx, middleware.GetRequestID(ctx))
	if !ok {
		return
	}
	res, err := h.catalog.SubmitClub(ctx, *req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, res)
}

func eventSubmission(r *http.Request) (catalog.EventSubmission, error) {
	sub := catalog.EventSubmission{
		Name:        strings.TrimSpace(r.FormValue("name")),
		Date:        r.FormValue("date"),
		StartTime:   r.FormValue("startTime"),
		EndTime:     r.FormValue("endTime"),
		Location:    strings.TrimSpace(r.FormValue("location")),
		Description: r.FormValue("description"),
		Food:        r.FormValue("food"),
		ClubHandle:  r.FormValue("clubHandle"),
		ClubType:    r.FormValue("clubType"),
		URL:         r.FormValue("url"),
	}
	if raw := r.FormValue("price"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return sub, dErrors.New(dErrors.CodeValidation, "price must be a number")
		}
		sub.Price = &price
	}
	if raw := r.FormValue("registration"); raw != "" {
		registration, err := strconv.ParseBool(raw)
		if err != nil {
			return sub, dErrors.New(dErrors.CodeValidation, "registration must be true or false")
		}
		sub.Registration = registration
	}
	return sub, nil
}

func (h *Handler) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeJSON[emailRequest](w, r, h.logger, ctx, middleware.GetRequestID(ctx))
	if !ok {
		return
	}
	res, err := h.newsletter.Subscribe(ctx, req.Email)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, res)
}

func (h *Handler) handleUnsubscribeInfo(w http.ResponseWriter, r *http.Request) {
	info, err := h.newsletter.UnsubscribeInfo(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, info)
}

func (h *Handler) handleUnsubscribe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeJSON[newsletter.UnsubscribeRequest](w, r, h.logger, ctx, middleware.GetRequestID(ctx))
	if !ok {
		return
	}
	res, err := h.newsletter.Unsubscribe(ctx, chi.URLParam(r, "token"), *req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}
