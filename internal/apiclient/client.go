// Package apiclient is the single path every component uses to reach the
// campus API: it builds requests, attaches credentials, classifies failures
// into domain errors and validates 2xx bodies before handing them back.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"uwevents/internal/platform/metrics"
	"uwevents/internal/platform/middleware"
	"uwevents/internal/platform/tracer"
	dErrors "uwevents/pkg/domain-errors"
	"uwevents/pkg/validation"
)

//go:generate mockgen -source=client.go -destination=mocks/mocks.go -package=mocks

// HTTPDoer is the minimal interface needed from an HTTP client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

const defaultTimeout = 15 * time.Second

// maxErrorBody bounds how much of a failed response is read for its message.
const maxErrorBody = 64 << 10

// Client talks to the campus API rooted at a base URL.
type Client struct {
	baseURL string
	doer    HTTPDoer
	jar     http.CookieJar
	timeout time.Duration
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  tracer.Tracer
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. The cookie jar and
// timeout options are ignored when one is supplied.
func WithHTTPClient(doer HTTPDoer) Option {
	return func(c *Client) {
		c.doer = doer
	}
}

// WithCookieJar makes the default HTTP client carry the session cookie.
func WithCookieJar(jar http.CookieJar) Option {
	return func(c *Client) {
		c.jar = jar
	}
}

// WithTimeout sets the default HTTP client's timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

func WithTracer(t tracer.Tracer) Option {
	return func(c *Client) {
		c.tracer = t
	}
}

// New creates a client for the API at baseURL (e.g. http://localhost:8000/api).
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: defaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.doer == nil {
		c.doer = &http.Client{Timeout: c.timeout, Jar: c.jar}
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	if c.tracer == nil {
		c.tracer = tracer.NewNoop()
	}
	return c
}

// BaseURL returns the API root without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Credential is an explicit Authorization header value: "<Scheme> <Token>".
type Credential struct {
	Scheme string
	Token  string
}

func (c Credential) header() string {
	if c.Scheme == "" {
		return c.Token
	}
	return c.Scheme + " " + c.Token
}

// Request describes one API call.
type Request struct {
	// Op names the call for logs, metrics and spans (e.g. "promotion.promote").
	Op     string
	Method string
	// Path is joined to the base URL; it keeps its trailing slash.
	Path  string
	Query url.Values

	// JSON is marshalled as the request body when non-nil.
	JSON any
	// Body is sent verbatim with ContentType when JSON is nil (multipart uploads).
	Body        io.Reader
	ContentType string

	Credential *Credential

	// Fallback is the failure message used when the server supplies none.
	Fallback string
	// IgnoreServerMessage always reports Fallback on failure.
	IgnoreServerMessage bool
	// NonJSONMessage, when set, provides the message for non-2xx responses
	// whose body is not JSON.
	NonJSONMessage func(status int) string
	// AcceptNonJSON treats a 2xx body that is not JSON as success without
	// decoding it (endpoints that may answer with an HTML page).
	AcceptNonJSON bool
}

type errorBody struct {
	Error string `json:"error"`
}

// Do performs req and decodes a 2xx body into out (a pointer), then checks it
// against out's validate tags. A nil out or a 204 skips decoding. Failures are
// *domainerrors.Error values whose message is the server's "error" field or
// req.Fallback.
func (c *Client) Do(ctx context.Context, req Request, out any) (err error) {
	start := time.Now()
	ctx, span := c.tracer.Start(ctx, tracer.SpanAPIRequest,
		tracer.String(tracer.AttrOperation, req.Op),
		tracer.String(tracer.AttrMethod, req.Method),
		tracer.String(tracer.AttrPath, req.Path),
		tracer.Bool(tracer.AttrCredentialShown, req.Credential != nil),
	)
	defer func() {
		outcome := "success"
		if err != nil {
			outcome = string(dErrors.CodeOf(err))
			span.SetAttributes(tracer.String(tracer.AttrErrorCode, outcome))
		}
		c.metrics.ObserveRequest(req.Op, outcome, time.Since(start).Seconds())
		span.End(err)
	}()

	httpReq, requestID, err := c.newRequest(ctx, req)
	if err != nil {
		return err
	}
	span.SetAttributes(tracer.String(tracer.AttrRequestID, requestID))

	resp, err := c.doer.Do(httpReq)
	if err != nil {
		c.logger.WarnContext(ctx, "api request failed",
			"operation", req.Op,
			"request_id", requestID,
			"error", err,
		)
		return dErrors.Wrap(err, dErrors.CodeTransport, req.Fallback)
	}
	defer resp.Body.Close()
	span.SetAttributes(tracer.Int(tracer.AttrStatusCode, resp.StatusCode))

	c.logger.DebugContext(ctx, "api response",
		"operation", req.Op,
		"status", resp.StatusCode,
		"request_id", requestID,
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return failure(req, resp)
	}

	skip := out == nil || resp.StatusCode == http.StatusNoContent ||
		(req.AcceptNonJSON && !isJSON(resp.Header.Get("Content-Type")))
	if skip {
		span.AddEvent(tracer.EventBodySkipped)
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &dErrors.Error{
			Code:    dErrors.CodeMalformedResponse,
			Message: req.Fallback,
			Status:  resp.StatusCode,
			Err:     fmt.Errorf("decode %s response: %w", req.Op, err),
		}
	}
	if err := validation.Response(out); err != nil {
		c.logger.WarnContext(ctx, "api response failed schema check",
			"operation", req.Op,
			"request_id", requestID,
			"error", err,
		)
		return dErrors.Wrap(err, dErrors.CodeMalformedResponse, req.Fallback)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, req Request) (*http.Request, string, error) {
	target := c.baseURL + "/" + strings.TrimLeft(req.Path, "/")
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	body := req.Body
	contentType := req.ContentType
	if req.JSON != nil {
		encoded, err := json.Marshal(req.JSON)
		if err != nil {
			return nil, "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to encode request")
		}
		body = bytes.NewReader(encoded)
		contentType = "application/json"
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to create request")
	}
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	httpReq.Header.Set("Accept", "application/json")

	requestID := middleware.GetRequestID(ctx)
	if requestID == "" {
		requestID = uuid.New().String()
	}
	httpReq.Header.Set(middleware.RequestIDHeader, requestID)

	if req.Credential != nil {
		httpReq.Header.Set("Authorization", req.Credential.header())
	}
	return httpReq, requestID, nil
}

func failure(req Request, resp *http.Response) error {
	message := req.Fallback
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	if isJSON(resp.Header.Get("Content-Type")) || req.NonJSONMessage == nil {
		var parsed errorBody
		if json.Unmarshal(raw, &parsed) == nil && parsed.Error != "" && !req.IgnoreServerMessage {
			message = parsed.Error
		}
	} else {
		message = req.NonJSONMessage(resp.StatusCode)
	}

	return &dErrors.Error{
		Code:    CodeForStatus(resp.StatusCode),
		Message: message,
		Status:  resp.StatusCode,
	}
}

// CodeForStatus classifies a non-2xx status.
func CodeForStatus(status int) dErrors.Code {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return dErrors.CodeValidation
	case http.StatusUnauthorized:
		return dErrors.CodeUnauthorized
	case http.StatusForbidden:
		return dErrors.CodeForbidden
	case http.StatusNotFound:
		return dErrors.CodeNotFound
	default:
		return dErrors.CodeRequestFailed
	}
}

func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

// StatusOf returns the HTTP status recorded on err, or 0.
func StatusOf(err error) int {
	var domainErr *dErrors.Error
	if errors.As(err, &domainErr) {
		return domainErr.Status
	}
	return 0
}
