// Package moderation approves and rejects user submissions with the member
// bearer token, and lists the pending queues.
package moderation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"uwevents/internal/apiclient"
	"uwevents/internal/catalog"
	"uwevents/internal/credential"
	"uwevents/internal/platform/guard"
	"uwevents/internal/platform/inflight"
	"uwevents/internal/platform/querycache"
	dErrors "uwevents/pkg/domain-errors"
)

// Cache scopes for the pending queues.
const (
	ScopePendingEvents = "pendingEventSubmissions"
	ScopePendingClubs  = "pendingClubSubmissions"
)

// Operation names reported by InProgress.
const (
	OpModerateEvent = "moderate_event"
	OpModerateClub  = "moderate_club"
)

// Failure messages.
const (
	MsgAuthRequired        = "Authentication required"
	MsgModerateEventFailed = "Failed to moderate event"
	MsgModerateClubFailed  = "Failed to moderate club"
	MsgPendingEventsFailed = "Failed to fetch pending event submissions"
	MsgPendingClubsFailed  = "Failed to fetch pending club submissions"
)

// Result is the moderated submission as returned by the API. Exactly one of
// Event and Club is set, matching the decision's kind.
type Result struct {
	Event *catalog.SubmittedEvent
	Club  *catalog.SubmittedClub
}

// Client performs moderation calls.
type Client struct {
	api    *apiclient.Client
	member *credential.Domain
	scheme string
	cache  *querycache.Cache
	guard  *guard.Guard
	ops    *inflight.Tracker
	logger *slog.Logger
}

type Option func(*Client)

// WithScheme sets the Authorization scheme (default "Token").
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

// WithSingleFlight collapses concurrent decisions on the same submission.
func WithSingleFlight(enabled bool) Option {
	return func(c *Client) {
		c.guard = guard.New(enabled)
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New returns a moderation client.
func New(api *apiclient.Client, member *credential.Domain, opts ...Option) *Client {
	c := &Client{
		api:    api,
		member: member,
		scheme: "Token",
		guard:  guard.New(false),
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

// InProgress reports whether a moderation call of the given name is
// outstanding.
func (c *Client) InProgress(op string) bool {
	return c.ops.Active(op)
}

// Moderate applies d. The decision is validated before the token is read,
// and nothing is sent when either check fails. Success refreshes the pending
// queue of d's kind.
func (c *Client) Moderate(ctx context.Context, d Decision) (*Result, error) {
	op, path, fallback, scope := OpModerateEvent, "/events/submissions/%d/moderate/", MsgModerateEventFailed, ScopePendingEvents
	if d.Kind == KindClub {
		op, path, fallback, scope = OpModerateClub, "/clubs/submissions/%d/moderate/", MsgModerateClubFailed, ScopePendingClubs
	}
	defer c.ops.Begin(op)()

	if err := d.Validate(); err != nil {
		return nil, err
	}
	cred, err := c.credential(ctx)
	if err != nil {
		return nil, err
	}

	result, shared, err := guard.Do(ctx, c.guard, op, strconv.FormatInt(d.ID, 10), func(ctx context.Context) (*Result, error) {
		req := apiclient.Request{
			Op:         "moderation." + op,
			Method:     http.MethodPatch,
			Path:       fmt.Sprintf(path, d.ID),
			JSON:       d.body(),
			Credential: cred,
			Fallback:   fallback,
		}
		if d.Kind == KindClub {
			var out catalog.SubmittedClub
			if err := c.api.Do(ctx, req, &out); err != nil {
				return nil, err
			}
			return &Result{Club: &out}, nil
		}
		var out catalog.SubmittedEvent
		if err := c.api.Do(ctx, req, &out); err != nil {
			return nil, err
		}
		return &Result{Event: &out}, nil
	})
	if err != nil {
		c.logger.InfoContext(ctx, "moderation failed", "operation", op, "submission_id", d.ID, "error", err)
		return nil, err
	}

	c.cache.Invalidate(scope)
	c.logger.InfoContext(ctx, "submission moderated",
		"operation", op,
		"submission_id", d.ID,
		"verdict", string(d.Verdict),
		"shared", shared,
	)
	return result, nil
}

// PendingEvents lists event submissions awaiting moderation.
func (c *Client) PendingEvents(ctx context.Context) ([]catalog.SubmittedEvent, error) {
	cred, err := c.credential(ctx)
	if err != nil {
		return nil, err
	}
	return querycache.Lookup(c.cache, querycache.NewKey(ScopePendingEvents), func() ([]catalog.SubmittedEvent, error) {
		var out []catalog.SubmittedEvent
		err := c.api.Do(ctx, apiclient.Request{
			Op:                  "moderation.pending_events",
			Method:              http.MethodGet,
			Path:                "/events/submissions/pending/",
			Credential:          cred,
			Fallback:            MsgPendingEventsFailed,
			IgnoreServerMessage: true,
		}, &out)
		return out, err
	})
}

// PendingClubs lists club submissions awaiting moderation.
func (c *Client) PendingClubs(ctx context.Context) ([]catalog.SubmittedClub, error) {
	cred, err := c.credential(ctx)
	if err != nil {
		return nil, err
	}
	return querycache.Lookup(c.cache, querycache.NewKey(ScopePendingClubs), func() ([]catalog.SubmittedClub, error) {
		var out []catalog.SubmittedClub
		err := c.api.Do(ctx, apiclient.Request{
			Op:                  "moderation.pending_clubs",
			Method:              http.MethodGet,
			Path:                "/clubs/submissions/pending/",
			Credential:          cred,
			Fallback:            MsgPendingClubsFailed,
			IgnoreServerMessage: true,
		}, &out)
		return out, err
	})
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
