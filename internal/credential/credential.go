// Package credential holds the client-held bearer tokens. There are two
// independent domains: the admin token used for promotion management and the
// member token used for moderation. Clearing one never touches the other, and
// neither touches the cookie session.
package credential

import (
	"context"
	"errors"
	"strings"

	"uwevents/internal/platform/localstore"
	dErrors "uwevents/pkg/domain-errors"
)

// Fixed local storage keys.
const (
	AdminKey  = "admin_token"
	MemberKey = "authToken"
)

// ErrMissing is returned by Token when the domain holds no credential.
var ErrMissing = errors.New("credential: not present")

// Store is the storage a Domain reads and writes.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Domain is one credential slot.
type Domain struct {
	key      string
	store    Store
	onChange func(ctx context.Context)
}

type Option func(*Domain)

// WithOnChange registers fn to be called after Set or Clear has written the
// slot.
func WithOnChange(fn func(ctx context.Context)) Option {
	return func(d *Domain) {
		d.onChange = fn
	}
}

// NewAdmin returns the admin credential domain.
func NewAdmin(store Store, opts ...Option) *Domain {
	return newDomain(AdminKey, store, opts)
}

// NewMember returns the member credential domain.
func NewMember(store Store, opts ...Option) *Domain {
	return newDomain(MemberKey, store, opts)
}

func newDomain(key string, store Store, opts []Option) *Domain {
	d := &Domain{key: key, store: store}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Key returns the storage key of the domain.
func (d *Domain) Key() string {
	return d.key
}

// Token returns the stored token, or ErrMissing when none is stored. A blank
// value counts as missing.
func (d *Domain) Token(ctx context.Context) (string, error) {
	token, err := d.store.Get(ctx, d.key)
	if errors.Is(err, localstore.ErrNotFound) {
		return "", ErrMissing
	}
	if err != nil {
		return "", err
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrMissing
	}
	return token, nil
}

// Present reports whether a usable token is stored. Storage errors count as
// absent.
func (d *Domain) Present(ctx context.Context) bool {
	_, err := d.Token(ctx)
	return err == nil
}

// Set stores token.
func (d *Domain) Set(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return dErrors.New(dErrors.CodeValidation, "token must not be blank")
	}
	if err := d.store.Set(ctx, d.key, token); err != nil {
		return err
	}
	d.changed(ctx)
	return nil
}

// Clear removes the token. Clearing an empty domain is not an error.
func (d *Domain) Clear(ctx context.Context) error {
	err := d.store.Delete(ctx, d.key)
	if err != nil && !errors.Is(err, localstore.ErrNotFound) {
		return err
	}
	d.changed(ctx)
	return nil
}

func (d *Domain) changed(ctx context.Context) {
	if d.onChange != nil {
		d.onChange(ctx)
	}
}

var _ Store = (localstore.Store)(nil)
