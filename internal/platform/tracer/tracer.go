// Package tracer is the span abstraction used around outbound API calls.
// Callers depend on Tracer; production wires the OpenTelemetry adapter and
// tests use the no-op.
package tracer

import (
	"context"
	"time"
)

// Span is an active trace span. End must be called exactly once.
type Span interface {
	// End completes the span, marking it failed when err is non-nil.
	End(err error)
	SetAttributes(attrs ...Attribute)
	AddEvent(name string, attrs ...Attribute)
}

// Tracer creates spans. Implementations must be safe for concurrent use.
type Tracer interface {
	Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span)
}

// Attribute is a key/value pair attached to a span.
type Attribute struct {
	Key   string
	Value any
}

func String(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

func Bool(key string, value bool) Attribute {
	return Attribute{Key: key, Value: value}
}

func Int64(key string, value int64) Attribute {
	return Attribute{Key: key, Value: value}
}

func Int(key string, value int) Attribute {
	return Attribute{Key: key, Value: int64(value)}
}

// Duration records value in milliseconds.
func Duration(key string, value time.Duration) Attribute {
	return Attribute{Key: key, Value: value.Milliseconds()}
}

// Span names.
const (
	SpanAPIRequest = "campus.api.request"
)

// Attribute keys. Token values are never recorded; only their presence.
const (
	AttrOperation       = "campus.operation"
	AttrMethod          = "http.request.method"
	AttrPath            = "url.path"
	AttrStatusCode      = "http.response.status_code"
	AttrRequestID       = "campus.request_id"
	AttrCredentialShown = "campus.credential_present"
	AttrErrorCode       = "campus.error_code"
)

// Event names.
const (
	EventBodySkipped = "response.body_skipped"
)
