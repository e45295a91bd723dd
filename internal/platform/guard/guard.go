// Package guard wraps mutation triggers in an optional single-flight guard
// keyed by operation and target id. When disabled every call runs, matching
// the plain request/response behaviour of the UI hooks.
package guard

import (
	"context"
	"strings"

	"golang.org/x/sync/singleflight"
)

// Guard collapses concurrent identical mutations when enabled.
type Guard struct {
	enabled bool
	group   singleflight.Group
}

// New returns a guard; enabled=false makes Do a pass-through.
func New(enabled bool) *Guard {
	return &Guard{enabled: enabled}
}

// Enabled reports whether calls are being collapsed.
func (g *Guard) Enabled() bool {
	return g != nil && g.enabled
}

// Do runs fn, or joins an identical in-flight call for the same op and target.
// shared reports whether the result came from another caller's call.
func Do[T any](ctx context.Context, g *Guard, op string, target string, fn func(context.Context) (T, error)) (result T, shared bool, err error) {
	if !g.Enabled() {
		result, err = fn(ctx)
		return result, false, err
	}
	key := strings.Join([]string{op, target}, ":")
	v, err, shared := g.group.Do(key, func() (any, error) {
		return fn(ctx)
	})
	if v != nil {
		result, _ = v.(T)
	}
	return result, shared, err
}
