// Package localstore is the client-local key/value storage the credential
// domains and the cookie jar persist into. It plays the role browser local
// storage plays for a web front end: string values under fixed keys.
package localstore

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has no value.
var ErrNotFound = errors.New("localstore: key not found")

// Store is the minimal key/value surface consumers need.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
