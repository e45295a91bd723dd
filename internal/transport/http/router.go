package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"uwevents/internal/gate"
	"uwevents/internal/platform/middleware"
)

// NewRouter wires the portal endpoints with middleware. mounts register
// extra routes (health, metrics) on the same router.
func NewRouter(h *Handler, logger *slog.Logger, mounts ...func(chi.Router)) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.BodyLimit(maxUpload + 1<<20))
	r.Use(middleware.Timeout(30 * time.Second))

	for _, mount := range mounts {
		mount(r)
	}

	// Public views
	r.Get("/session", h.handleSession)
	r.Get("/login", h.handleLoginView)
	r.Post("/login", h.handleLogin)
	r.Post("/logout", h.handleLogout)
	r.Post("/register", h.handleRegister)
	r.Get("/verify-email/{token}", h.handleVerifyEmail)
	r.Get("/events", h.handleEvents)
	r.Get("/clubs", h.handleClubs)
	r.Post("/newsletter/subscribe", h.handleSubscribe)
	r.Get("/newsletter/unsubscribe/{token}", h.handleUnsubscribeInfo)
	r.Post("/newsletter/unsubscribe/{token}", h.handleUnsubscribe)

	r.Group(func(r chi.Router) {
		r.Use(RequireGate(h.session, gate.SignedIn(), h.metrics))
		r.Post("/verification/resend", h.handleResendVerification)
		r.Post("/verification/recheck", h.handleRecheckVerification)
	})

	// Member views
	r.Group(func(r chi.Router) {
		r.Use(RequireGate(h.session, gate.Default(), h.metrics))
		r.Get("/submissions/events", h.handleMyEventSubmissions)
		r.Get("/submissions/clubs", h.handleMyClubSubmissions)
		r.Post("/submissions/events", h.handleSubmitEvent)
		r.Post("/submissions/clubs", h.handleSubmitClub)
		r.Put("/member/token", h.handleSetCredential(h.member))
		r.Delete("/member/token", h.handleClearCredential(h.member))
	})

	// The admin token login is its own credential and is not session gated.
	r.Route("/admin", func(r chi.Router) {
		r.Get("/", h.handleAdminStatus)
		r.Put("/token", h.handleSetCredential(h.admin))
		r.Post("/logout", h.handleAdminLogout)

		r.Group(func(r chi.Router) {
			r.Use(RequireGate(h.session, gate.Admin(), h.metrics))
			r.Get("/promotions", h.handleListPromoted)
			r.Get("/promotions/{id}", h.handlePromotionStatus)
			r.Post("/promotions/{id}", h.handlePromote)
			r.Patch("/promotions/{id}", h.handlePromote)
			r.Delete("/promotions/{id}", h.handleDeletePromotion)
			r.Post("/promotions/{id}/unpromote", h.handleUnpromote)

			r.Get("/moderation/events", h.handlePendingEvents)
			r.Get("/moderation/clubs", h.handlePendingClubs)
			r.Post("/moderation/{kind}/{id}", h.handleModerate)
		})
	})

	return r
}
