// Package newsletter subscribes addresses to the weekly newsletter and
// handles the token-based unsubscribe flow. None of it needs a session.
package newsletter

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"uwevents/internal/apiclient"
	"uwevents/internal/platform/querycache"
	dErrors "uwevents/pkg/domain-errors"
	"uwevents/pkg/validation"
)

// ScopeUnsubscribe keys the cached unsubscribe information per token.
const ScopeUnsubscribe = "unsubscribe"

// Failure messages.
const (
	MsgSubscribeFailed   = "Something went wrong"
	MsgInfoFailed        = "Failed to load unsubscribe information"
	MsgUnsubscribeFailed = "Failed to unsubscribe"
	MsgInvalidToken      = "Invalid unsubscribe token"
	MsgNoToken           = "No unsubscribe token provided"
)

// Subscription is the API's answer to a subscribe call.
type Subscription struct {
	Message string `json:"message"`
	Email   string `json:"email" validate:"required"`
}

// UnsubscribeInfo describes the subscription a token refers to.
type UnsubscribeInfo struct {
	AlreadyUnsubscribed bool    `json:"already_unsubscribed"`
	Email               string  `json:"email" validate:"required"`
	Message             string  `json:"message"`
	UnsubscribedAt      *string `json:"unsubscribed_at"`
}

// UnsubscribeRequest is the exit survey sent with an unsubscribe.
type UnsubscribeRequest struct {
	Reason   string `json:"reason" validate:"notblank"`
	Feedback string `json:"feedback,omitempty" validate:"max=2000"`
}

// UnsubscribeResult confirms an unsubscribe.
type UnsubscribeResult struct {
	Message        string `json:"message"`
	Email          string `json:"email" validate:"required"`
	UnsubscribedAt string `json:"unsubscribed_at"`
}

type subscribeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// Client calls the newsletter endpoints.
type Client struct {
	api    *apiclient.Client
	cache  *querycache.Cache
	logger *slog.Logger
}

type Option func(*Client)

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

func New(api *apiclient.Client, opts ...Option) *Client {
	c := &Client{api: api}
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

// Subscribe adds email to the mailing list.
func (c *Client) Subscribe(ctx context.Context, email string) (*Subscription, error) {
	req := subscribeRequest{Email: strings.TrimSpace(email)}
	if err := validation.Validate(req); err != nil {
		return nil, err
	}
	var out Subscription
	if err := c.api.Do(ctx, apiclient.Request{
		Op:       "newsletter.subscribe",
		Method:   http.MethodPost,
		Path:     "/newsletter/subscribe",
		JSON:     req,
		Fallback: MsgSubscribeFailed,
	}, &out); err != nil {
		return nil, err
	}
	c.logger.InfoContext(ctx, "newsletter subscription created")
	return &out, nil
}

// UnsubscribeInfo loads what token refers to.
func (c *Client) UnsubscribeInfo(ctx context.Context, token string) (*UnsubscribeInfo, error) {
	path, err := unsubscribePath(token)
	if err != nil {
		return nil, err
	}
	return querycache.Lookup(c.cache, querycache.NewKey(ScopeUnsubscribe, token), func() (*UnsubscribeInfo, error) {
		var out UnsubscribeInfo
		if err := c.api.Do(ctx, apiclient.Request{
			Op:             "newsletter.unsubscribe_info",
			Method:         http.MethodGet,
			Path:           path,
			Fallback:       MsgInfoFailed,
			NonJSONMessage: nonJSONMessage,
		}, &out); err != nil {
			return nil, err
		}
		return &out, nil
	})
}

// Unsubscribe removes the subscription token refers to.
func (c *Client) Unsubscribe(ctx context.Context, token string, req UnsubscribeRequest) (*UnsubscribeResult, error) {
	path, err := unsubscribePath(token)
	if err != nil {
		return nil, err
	}
	if err := validation.Validate(req); err != nil {
		return nil, err
	}
	var out UnsubscribeResult
	if err := c.api.Do(ctx, apiclient.Request{
		Op:             "newsletter.unsubscribe",
		Method:         http.MethodPost,
		Path:           path,
		JSON:           req,
		Fallback:       MsgUnsubscribeFailed,
		NonJSONMessage: nonJSONMessage,
	}, &out); err != nil {
		return nil, err
	}
	c.cache.Invalidate(ScopeUnsubscribe)
	c.logger.InfoContext(ctx, "newsletter unsubscribed", "reason", req.Reason)
	return &out, nil
}

func unsubscribePath(token string) (string, error) {
	if strings.TrimSpace(token) == "" {
		return "", dErrors.New(dErrors.CodeValidation, MsgNoToken)
	}
	return "/newsletter/unsubscribe/" + url.PathEscape(token), nil
}

// nonJSONMessage covers HTML error pages, typically the framework's 404.
func nonJSONMessage(status int) string {
	if status == http.StatusNotFound {
		return MsgInvalidToken
	}
	return fmt.Sprintf("Server error: %d", status)
}
