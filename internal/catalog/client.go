// Package catalog reads the public event and club listings and handles the
// signed-in member's own submissions.
package catalog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"uwevents/internal/apiclient"
	"uwevents/internal/credential"
	"uwevents/internal/platform/inflight"
	"uwevents/internal/platform/querycache"
	dErrors "uwevents/pkg/domain-errors"
	"uwevents/pkg/validation"
)

// Cache scopes.
const (
	ScopeEvents              = "events"
	ScopeClubs               = "clubs"
	ScopeUserSubmissions     = "userSubmissions"
	ScopeUserClubSubmissions = "userClubSubmissions"
)

// Operation names reported by InProgress.
const (
	OpSubmitEvent = "submit_event"
	OpSubmitClub  = "submit_club"
)

// Failure messages.
const (
	MsgEventsFailed          = "Failed to fetch events"
	MsgClubsFailed           = "Failed to fetch clubs"
	MsgSubmissionsFailed     = "Failed to fetch submissions"
	MsgClubSubmissionsFailed = "Failed to fetch club submissions"
	MsgSubmitEventFailed     = "Failed to submit event"
	MsgSubmitClubFailed      = "Failed to submit club"
	MsgAuthRequired          = "Authentication required"
	msgImageRequired         = "image is required"
)

// AllCategories is the club category filter that matches every club.
const AllCategories = "all"

// Client talks to the listing and submission endpoints. api is expected to
// carry the session cookie jar.
type Client struct {
	api    *apiclient.Client
	member *credential.Domain
	scheme string
	cache  *querycache.Cache
	ops    *inflight.Tracker
	logger *slog.Logger
}

type Option func(*Client)

// WithScheme sets the Authorization scheme used with the member token.
func WithScheme(scheme string) Option {
	return func(c *Client) {
		c.scheme = scheme
	}
}

func WithCache(cache *querycache.Cache) Option {
	return func(c *Client) {
		c.cache = cache
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New returns a catalog client. member is only read by MyClubSubmissions.
func New(api *apiclient.Client, member *credential.Domain, opts ...Option) *Client {
	c := &Client{
		api:    api,
		member: member,
		scheme: "Token",
		ops:    inflight.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.cache == nil {
		c.cache = querycache.New()
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	return c
}

// InProgress reports whether a submission of the given name is outstanding.
func (c *Client) InProgress(op string) bool {
	return c.ops.Active(op)
}

// Events lists published events matching filter.
func (c *Client) Events(ctx context.Context, filter EventFilter) ([]Event, error) {
	if err := validation.Validate(filter); err != nil {
		return nil, err
	}
	query := url.Values{}
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}
	if filter.StartDate != "" {
		query.Set("start_date", filter.StartDate)
	}
	key := querycache.NewKey(ScopeEvents, filter.Search, filter.StartDate)
	return querycache.Lookup(c.cache, key, func() ([]Event, error) {
		var out []Event
		err := c.api.Do(ctx, apiclient.Request{
			Op:                  "catalog.events",
			Method:              http.MethodGet,
			Path:                "/events/",
			Query:               query,
			Fallback:            MsgEventsFailed,
			IgnoreServerMessage: true,
		}, &out)
		return out, err
	})
}

// Clubs lists published clubs. The category is always sent, defaulting to
// AllCategories.
func (c *Client) Clubs(ctx context.Context, filter ClubFilter) ([]Club, error) {
	category := filter.Category
	if category == "" {
		category = AllCategories
	}
	query := url.Values{"category": {category}}
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}
	key := querycache.NewKey(ScopeClubs, filter.Search, category)
	return querycache.Lookup(c.cache, key, func() ([]Club, error) {
		var out clubsResponse
		err := c.api.Do(ctx, apiclient.Request{
			Op:                  "catalog.clubs",
			Method:              http.MethodGet,
			Path:                "/clubs/",
			Query:               query,
			Fallback:            MsgClubsFailed,
			IgnoreServerMessage: true,
		}, &out)
		return out.Clubs, err
	})
}

// MyEventSubmissions lists the events the signed-in user submitted.
func (c *Client) MyEventSubmissions(ctx context.Context) ([]SubmittedEvent, error) {
	return querycache.Lookup(c.cache, querycache.NewKey(ScopeUserSubmissions), func() ([]SubmittedEvent, error) {
		var out []SubmittedEvent
		err := c.api.Do(ctx, apiclient.Request{
			Op:                  "catalog.my_event_submissions",
			Method:              http.MethodGet,
			Path:                "/events/submissions/",
			Fallback:            MsgSubmissionsFailed,
			IgnoreServerMessage: true,
		}, &out)
		return out, err
	})
}

// MyClubSubmissions lists the clubs the signed-in user submitted. It needs
// the member token.
func (c *Client) MyClubSubmissions(ctx context.Context) ([]SubmittedClub, error) {
	cred, err := c.credential(ctx)
	if err != nil {
		return nil, err
	}
	return querycache.Lookup(c.cache, querycache.NewKey(ScopeUserClubSubmissions), func() ([]SubmittedClub, error) {
		var out []SubmittedClub
		err := c.api.Do(ctx, apiclient.Request{
			Op:                  "catalog.my_club_submissions",
			Method:              http.MethodGet,
			Path:                "/clubs/submissions/",
			Credential:          cred,
			Fallback:            MsgClubSubmissionsFailed,
			IgnoreServerMessage: true,
		}, &out)
		return out, err
	})
}

// SubmitEvent uploads an event proposal with its poster as a multipart form.
func (c *Client) SubmitEvent(ctx context.Context, sub EventSubmission, image Image) (*SubmittedEvent, error) {
	defer c.ops.Begin(OpSubmitEvent)()

	if err := validation.Validate(sub); err != nil {
		return nil, err
	}
	if len(image.Data) == 0 {
		return nil, dErrors.New(dErrors.CodeValidation, msgImageRequired)
	}
	if err := validation.Validate(image); err != nil {
		return nil, err
	}
	body, contentType, err := eventForm(sub, image)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, MsgSubmitEventFailed)
	}

	var out SubmittedEvent
	if err := c.api.Do(ctx, apiclient.Request{
		Op:          "catalog.submit_event",
		Method:      http.MethodPost,
		Path:        "/events/submit/",
		Body:        body,
		ContentType: contentType,
		Fallback:    MsgSubmitEventFailed,
	}, &out); err != nil {
		c.logger.InfoContext(ctx, "event submission failed", "error", err)
		return nil, err
	}
	c.cache.Invalidate(ScopeUserSubmissions)
	c.logger.InfoContext(ctx, "event submitted", "submission_id", out.ID)
	return &out, nil
}

// SubmitClub sends a club proposal.
func (c *Client) SubmitClub(ctx context.Context, sub ClubSubmission) (*SubmittedClub, error) {
	defer c.ops.Begin(OpSubmitClub)()

	if err := validation.Validate(sub); err != nil {
		return nil, err
	}
	var out SubmittedClub
	if err := c.api.Do(ctx, apiclient.Request{
		Op:       "catalog.submit_club",
		Method:   http.MethodPost,
		Path:     "/clubs/submit/",
		JSON:     sub,
		Fallback: MsgSubmitClubFailed,
	}, &out); err != nil {
		c.logger.InfoContext(ctx, "club submission failed", "error", err)
		return nil, err
	}
	c.cache.Invalidate(ScopeUserClubSubmissions)
	c.logger.InfoContext(ctx, "club submitted", "submission_id", out.ID)
	return &out, nil
}

func (c *Client) credential(ctx context.Context) (*apiclient.Credential, error) {
	token, err := c.member.Token(ctx)
	if errors.Is(err, credential.ErrMissing) {
		return nil, dErrors.New(dErrors.CodeUnauthenticated, MsgAuthRequired)
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read member token")
	}
	return &apiclient.Credential{Scheme: c.scheme, Token: token}, nil
}

// eventForm encodes sub as form fields, skipping empty values, plus the
// image part.
func eventForm(sub EventSubmission, image Image) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := []struct{ name, value string }{
		{"name", sub.Name},
		{"date", sub.Date},
		{"startTime", sub.StartTime},
		{"endTime", sub.EndTime},
		{"location", sub.Location},
		{"description", sub.Description},
		{"food", sub.Food},
		{"clubHandle", sub.ClubHandle},
		{"clubType", sub.ClubType},
		{"url", sub.URL},
		{"registration", strconv.FormatBool(sub.Registration)},
	}
	if sub.Price != nil {
		fields = append(fields, struct{ name, value string }{"price", strconv.FormatFloat(*sub.Price, 'f', -1, 64)})
	}
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		if err := w.WriteField(f.name, f.value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", f.name, err)
		}
	}

	part, err := w.CreateFormFile("image", image.Filename)
	if err != nil {
		return nil, "", fmt.Errorf("create image part: %w", err)
	}
	if _, err := part.Write(image.Data); err != nil {
		return nil, "", fmt.Errorf("write image: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close form: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}
