package httptransport

import (
	"context"
	"log/slog"

	"uwevents/internal/catalog"
	"uwevents/internal/moderation"
	"uwevents/internal/newsletter"
	"uwevents/internal/platform/metrics"
	"uwevents/internal/promotion"
	"uwevents/internal/session"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks

// Session is the resolver surface the portal drives.
type Session interface {
	State() session.State
	Resolve(ctx context.Context) session.State
	Login(ctx context.Context, email, password string) (session.State, error)
	Register(ctx context.Context, email, password string) (*session.RegisterResult, error)
	Logout(ctx context.Context) session.State
	ResendVerification(ctx context.Context, email string) (*session.Message, error)
	VerifyEmail(ctx context.Context, token string) (*session.Message, error)
}

// Credential is a client-held token slot.
type Credential interface {
	Set(ctx context.Context, token string) error
	Clear(ctx context.Context) error
	Present(ctx context.Context) bool
}

type Promotions interface {
	Promote(ctx context.Context, eventID int64, req promotion.Request) (*promotion.Promotion, error)
	Update(ctx context.Context, eventID int64, req promotion.Request) (*promotion.Promotion, error)
	Unpromote(ctx context.Context, eventID int64) (*promotion.UnpromoteResult, error)
	Delete(ctx context.Context, eventID int64) error
	ListPromoted(ctx context.Context) ([]promotion.PromotedEvent, error)
	Status(ctx context.Context, eventID int64) (*promotion.Status, error)
}

type Moderation interface {
	Moderate(ctx context.Context, d moderation.Decision) (*moderation.Result, error)
	PendingEvents(ctx context.Context) ([]catalog.SubmittedEvent, error)
	PendingClubs(ctx context.Context) ([]catalog.SubmittedClub, error)
}

type Catalog interface {
	Events(ctx context.Context, filter catalog.EventFilter) ([]catalog.Event, error)
	Clubs(ctx context.Context, filter catalog.ClubFilter) ([]catalog.Club, error)
	MyEventSubmissions(ctx context.Context) ([]catalog.SubmittedEvent, error)
	MyClubSubmissions(ctx context.Context) ([]catalog.SubmittedClub, error)
	SubmitEvent(ctx context.Context, sub catalog.EventSubmission, image catalog.Image) (*catalog.SubmittedEvent, error)
	SubmitClub(ctx context.Context, sub catalog.ClubSubmission) (*catalog.SubmittedClub, error)
}

type Newsletter interface {
	Subscribe(ctx context.Context, email string) (*newsletter.Subscription, error)
	UnsubscribeInfo(ctx context.Context, token string) (*newsletter.UnsubscribeInfo, error)
	Unsubscribe(ctx context.Context, token string, req newsletter.UnsubscribeRequest) (*newsletter.UnsubscribeResult, error)
}

// Deps are the collaborators the portal handlers delegate to.
type Deps struct {
	Session    Session
	Admin      Credential
	Member     Credential
	Promotions Promotions
	Moderation Moderation
	Catalog    Catalog
	Newsletter Newsletter
	Metrics    *metrics.Metrics
}

// Handler is the thin HTTP layer over the client packages. It renders gate
// outcomes and client failures; every decision is made below it.
type Handler struct {
	session    Session
	admin      Credential
	member     Credential
	promotions Promotions
	moderation Moderation
	catalog    Catalog
	newsletter Newsletter
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

func NewHandler(deps Deps, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handler{
		session:    deps.Session,
		admin:      deps.Admin,
		member:     deps.Member,
		promotions: deps.Promotions,
		moderation: deps.Moderation,
		catalog:    deps.Catalog,
		newsletter: deps.Newsletter,
		metrics:    deps.Metrics,
		logger:     logger,
	}
}

// sessionView is the JSON rendering of session.State.
type sessionView struct {
	Status        string `json:"status"`
	Email         string `json:"email,omitempty"`
	EmailVerified bool   `json:"email_verified"`
	IsAdmin       bool   `json:"is_admin"`
}

func viewOf(s session.State) sessionView {
	return sessionView{
		Status:        s.Status.String(),
		Email:         s.Email,
		EmailVerified: s.EmailVerified,
		IsAdmin:       s.IsAdmin,
	}
}

// messageView acknowledges an action.
type messageView struct {
	View    string `json:"view,omitempty"`
	Message string `json:"message"`
}
