// Package promotion manages event promotions with the admin bearer token.
// The token lives in its own credential domain: it survives a session logout
// and clearing it never ends the session.
package promotion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"uwevents/internal/apiclient"
	"uwevents/internal/credential"
	"uwevents/internal/platform/guard"
	"uwevents/internal/platform/inflight"
	"uwevents/internal/platform/querycache"
	dErrors "uwevents/pkg/domain-errors"
	"uwevents/pkg/validation"
)

// Cache scopes refreshed after every successful mutation.
const (
	ScopePromotedEvents  = "promoted-events"
	ScopePromotionStatus = "promotion-status"
)

// Operation names reported by InProgress.
const (
	OpPromote   = "promote"
	OpUpdate    = "update"
	OpUnpromote = "unpromote"
	OpDelete    = "delete"
)

// Failure messages.
const (
	MsgTokenMissing     = "Admin token not found. Please log in."
	MsgPromoteFailed    = "Failed to promote event"
	MsgUpdateFailed     = "Failed to update promotion"
	MsgUnpromoteFailed  = "Failed to unpromote event"
	MsgDeleteFailed     = "Failed to delete promotion"
	MsgListFailed       = "Failed to fetch promoted events"
	MsgStatusFailed     = "Failed to fetch promotion status"
	msgInvalidEventID   = "event id must be a positive integer"
	msgCredentialUnread = "failed to read admin token"
)

// DefaultScheme is the Authorization scheme the API's token authentication
// expects.
const DefaultScheme = "Token"

// Client performs promotion operations. Every call needs the admin token and
// fails before touching the network when it is missing.
type Client struct {
	api    *apiclient.Client
	token  *credential.Domain
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

// WithCache shares a read cache with other components.
func WithCache(cache *querycache.Cache) Option {
	return func(c *Client) {
		c.cache = cache
	}
}

// WithSingleFlight collapses concurrent identical mutations on the same event.
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

// New returns a promotion client. api should not carry the session cookie jar.
func New(api *apiclient.Client, token *credential.Domain, opts ...Option) *Client {
	c := &Client{
		api:    api,
		token:  token,
		scheme: DefaultScheme,
		ops:    inflight.New(),
		guard:  guard.New(false),
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

// InProgress reports whether a mutation of the given name is outstanding.
func (c *Client) InProgress(op string) bool {
	return c.ops.Active(op)
}

// Promote promotes an event.
func (c *Client) Promote(ctx context.Context, eventID int64, req Request) (*Promotion, error) {
	return mutate(ctx, c, OpPromote, eventID, req, func(ctx context.Context, cred *apiclient.Credential) (*Promotion, error) {
		var out Promotion
		err := c.api.Do(ctx, apiclient.Request{
			Op:         "promotion.promote",
			Method:     http.MethodPost,
			Path:       promotePath(eventID),
			JSON:       req,
			Credential: cred,
			Fallback:   MsgPromoteFailed,
		}, &out)
		return &out, err
	})
}

// Update changes an existing promotion.
func (c *Client) Update(ctx context.Context, eventID int64, req Request) (*Promotion, error) {
	return mutate(ctx, c, OpUpdate, eventID, req, func(ctx context.Context, cred *apiclient.Credential) (*Promotion, error) {
		var out Promotion
		err := c.api.Do(ctx, apiclient.Request{
			Op:         "promotion.update",
			Method:     http.MethodPatch,
			Path:       promotePath(eventID),
			JSON:       req,
			Credential: cred,
			Fallback:   MsgUpdateFailed,
		}, &out)
		return &out, err
	})
}

// Unpromote deactivates an event's promotion, keeping its record.
func (c *Client) Unpromote(ctx context.Context, eventID int64) (*UnpromoteResult, error) {
	return mutate(ctx, c, OpUnpromote, eventID, nil, func(ctx context.Context, cred *apiclient.Credential) (*UnpromoteResult, error) {
		var out UnpromoteResult
		err := c.api.Do(ctx, apiclient.Request{
			Op:         "promotion.unpromote",
			Method:     http.MethodPost,
			Path:       fmt.Sprintf("/promotions/events/%d/unpromote/", eventID),
			Credential: cred,
			Fallback:   MsgUnpromoteFailed,
		}, &out)
		return &out, err
	})
}

// Delete removes an event's promotion. The API answers 204 with no body.
func (c *Client) Delete(ctx context.Context, eventID int64) error {
	_, err := mutate(ctx, c, OpDelete, eventID, nil, func(ctx context.Context, cred *apiclient.Credential) (struct{}, error) {
		return struct{}{}, c.api.Do(ctx, apiclient.Request{
			Op:         "promotion.delete",
			Method:     http.MethodDelete,
			Path:       promotePath(eventID),
			Credential: cred,
			Fallback:   MsgDeleteFailed,
		}, nil)
	})
	return err
}

// ListPromoted returns the promoted events, cached until the next mutation.
func (c *Client) ListPromoted(ctx context.Context) ([]PromotedEvent, error) {
	cred, err := c.credential(ctx)
	if err != nil {
		return nil, err
	}
	return querycache.Lookup(c.cache, querycache.NewKey(ScopePromotedEvents), func() ([]PromotedEvent, error) {
		var out promotedEventsResponse
		err := c.api.Do(ctx, apiclient.Request{
			Op:                  "promotion.list",
			Method:              http.MethodGet,
			Path:                "/promotions/events/promoted/",
			Credential:          cred,
			Fallback:            MsgListFailed,
			IgnoreServerMessage: true,
		}, &out)
		return out.PromotedEvents, err
	})
}

// Status reports whether an event is promoted, cached until the next mutation.
func (c *Client) Status(ctx context.Context, eventID int64) (*Status, error) {
	cred, err := c.credential(ctx)
	if err != nil {
		return nil, err
	}
	if eventID < 1 {
		return nil, dErrors.New(dErrors.CodeValidation, msgInvalidEventID)
	}
	key := querycache.NewKey(ScopePromotionStatus, strconv.FormatInt(eventID, 10))
	return querycache.Lookup(c.cache, key, func() (*Status, error) {
		var out Status
		if err := c.api.Do(ctx, apiclient.Request{
			Op:                  "promotion.status",
			Method:              http.MethodGet,
			Path:                fmt.Sprintf("/promotions/events/%d/promotion-status/", eventID),
			Credential:          cred,
			Fallback:            MsgStatusFailed,
			IgnoreServerMessage: true,
		}, &out); err != nil {
			return nil, err
		}
		return &out, nil
	})
}

// credential returns the Authorization value or the unauthenticated failure.
func (c *Client) credential(ctx context.Context) (*apiclient.Credential, error) {
	token, err := c.token.Token(ctx)
	if errors.Is(err, credential.ErrMissing) {
		return nil, dErrors.New(dErrors.CodeUnauthenticated, MsgTokenMissing)
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, msgCredentialUnread)
	}
	return &apiclient.Credential{Scheme: c.scheme, Token: token}, nil
}

// mutate runs a promotion mutation: credential check, input validation,
// optional single-flight, then cache invalidation on success. input may be nil.
func mutate[T any](ctx context.Context, c *Client, op string, eventID int64, input any, call func(context.Context, *apiclient.Credential) (T, error)) (T, error) {
	defer c.ops.Begin(op)()

	var zero T
	cred, err := c.credential(ctx)
	if err != nil {
		return zero, err
	}
	if eventID < 1 {
		return zero, dErrors.New(dErrors.CodeValidation, msgInvalidEventID)
	}
	if input != nil {
		if err := validation.Validate(input); err != nil {
			return zero, err
		}
	}

	result, shared, err := guard.Do(ctx, c.guard, op, strconv.FormatInt(eventID, 10), func(ctx context.Context) (T, error) {
		return call(ctx, cred)
	})
	if err != nil {
		c.logger.InfoContext(ctx, "promotion mutation failed", "operation", op, "event_id", eventID, "error", err)
		return zero, err
	}

	c.cache.Invalidate(ScopePromotedEvents, ScopePromotionStatus)
	c.logger.InfoContext(ctx, "promotion mutation succeeded", "operation", op, "event_id", eventID, "shared", shared)
	return result, nil
}

func promotePath(eventID int64) string {
	return fmt.Sprintf("/promotions/events/%d/promote/", eventID)
}
