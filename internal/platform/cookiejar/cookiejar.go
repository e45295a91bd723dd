// Package cookiejar provides the host-environment cookie jar the API
// transport uses. Cookies set by the API origin are mirrored into local
// storage so a session survives process restarts, the way a browser keeps
// its cookie store. Nothing above the transport reads these cookies.
package cookiejar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	stdjar "net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/net/publicsuffix"

	"uwevents/internal/platform/localstore"
)

// StorageKey is where the jar mirrors the API origin's cookies.
const StorageKey = "session_cookies"

// storedCookie keeps the attributes a restored cookie needs to match the same
// requests and expire at the same moment as the original.
type storedCookie struct {
	Name     string        `json:"name"`
	Value    string        `json:"value"`
	Path     string        `json:"path,omitempty"`
	Domain   string        `json:"domain,omitempty"`
	Expires  *time.Time    `json:"expires,omitempty"`
	Secure   bool          `json:"secure,omitempty"`
	HttpOnly bool          `json:"http_only,omitempty"`
	SameSite http.SameSite `json:"same_site,omitempty"`
}

func (c storedCookie) id() string {
	return c.Name + ";" + c.Domain + ";" + c.Path
}

func (c storedCookie) expired(now time.Time) bool {
	return c.Expires != nil && !c.Expires.After(now)
}

func (c storedCookie) cookie() *http.Cookie {
	out := &http.Cookie{
		Name:     c.Name,
		Value:    c.Value,
		Path:     c.Path,
		Domain:   c.Domain,
		Secure:   c.Secure,
		HttpOnly: c.HttpOnly,
		SameSite: c.SameSite,
	}
	if out.Path == "" {
		out.Path = "/"
	}
	if c.Expires != nil {
		out.Expires = *c.Expires
	}
	return out
}

// Jar is an http.CookieJar backed by net/http/cookiejar with persistence for
// a single origin. net/http/cookiejar cannot enumerate its entries, so the
// jar keeps its own record of every cookie the origin set, whatever its path.
type Jar struct {
	inner  *stdjar.Jar
	store  localstore.Store
	origin *url.URL
	logger *slog.Logger
	now    func() time.Time

	mu      sync.Mutex
	entries map[string]storedCookie
}

var _ http.CookieJar = (*Jar)(nil)

// New builds a jar for origin and restores previously persisted cookies.
// A nil store gives a purely in-memory jar.
func New(ctx context.Context, origin string, store localstore.Store, logger *slog.Logger) (*Jar, error) {
	u, err := url.Parse(origin)
	if err != nil {
		return nil, fmt.Errorf("parse origin: %w", err)
	}
	inner, err := stdjar.New(&stdjar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	j := &Jar{
		inner:   inner,
		store:   store,
		origin:  &url.URL{Scheme: u.Scheme, Host: u.Host, Path: "/"},
		logger:  logger,
		now:     time.Now,
		entries: make(map[string]storedCookie),
	}
	if err := j.restore(ctx); err != nil {
		return nil, err
	}
	return j, nil
}

// Cookies implements http.CookieJar.
func (j *Jar) Cookies(u *url.URL) []*http.Cookie {
	return j.inner.Cookies(u)
}

// SetCookies implements http.CookieJar. Cookies for the configured origin are
// persisted after every update, including deletions via Max-Age or Expires.
func (j *Jar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.inner.SetCookies(u, cookies)
	if j.store == nil || !strings.EqualFold(u.Host, j.origin.Host) {
		return
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	now := j.now()
	for _, c := range cookies {
		entry := record(u, c, now)
		if entry.expired(now) {
			delete(j.entries, entry.id())
			continue
		}
		j.entries[entry.id()] = entry
	}
	j.persist(now)
}

// record captures c as the jar stores it: Max-Age becomes an absolute
// expiry and a missing path takes the request's default path.
func record(u *url.URL, c *http.Cookie, now time.Time) storedCookie {
	entry := storedCookie{
		Name:     c.Name,
		Value:    c.Value,
		Path:     c.Path,
		Domain:   strings.TrimPrefix(strings.ToLower(c.Domain), "."),
		Secure:   c.Secure,
		HttpOnly: c.HttpOnly,
		SameSite: c.SameSite,
	}
	if entry.Path == "" || entry.Path[0] != '/' {
		entry.Path = defaultPath(u.Path)
	}
	switch {
	case c.MaxAge < 0:
		entry.Expires = &now
	case c.MaxAge > 0:
		at := now.Add(time.Duration(c.MaxAge) * time.Second)
		entry.Expires = &at
	case !c.Expires.IsZero():
		at := c.Expires.UTC()
		entry.Expires = &at
	}
	return entry
}

// defaultPath is the RFC 6265 section 5.1.4 default-path of a request path.
func defaultPath(p string) string {
	if p == "" || p[0] != '/' {
		return "/"
	}
	i := strings.LastIndex(p, "/")
	if i == 0 {
		return "/"
	}
	return p[:i]
}

func (j *Jar) persist(now time.Time) {
	snapshot := make([]storedCookie, 0, len(j.entries))
	for key, c := range j.entries {
		if c.expired(now) {
			delete(j.entries, key)
			continue
		}
		snapshot = append(snapshot, c)
	}
	ctx := context.Background()
	if len(snapshot) == 0 {
		if err := j.store.Delete(ctx, StorageKey); err != nil && !errors.Is(err, localstore.ErrNotFound) {
			j.logger.Warn("failed to clear persisted cookies", "error", err)
		}
		return
	}
	raw, err := json.Marshal(snapshot)
	if err != nil {
		j.logger.Warn("failed to encode cookies", "error", err)
		return
	}
	if err := j.store.Set(ctx, StorageKey, string(raw)); err != nil {
		j.logger.Warn("failed to persist cookies", "error", err)
	}
}

func (j *Jar) restore(ctx context.Context) error {
	if j.store == nil {
		return nil
	}
	raw, err := j.store.Get(ctx, StorageKey)
	if errors.Is(err, localstore.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load persisted cookies: %w", err)
	}

	var stored []storedCookie
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		// A corrupt snapshot only costs a re-login.
		j.logger.WarnContext(ctx, "discarding unreadable cookie snapshot", "error", err)
		return nil
	}
	now := j.now()
	cookies := make([]*http.Cookie, 0, len(stored))
	for _, c := range stored {
		if c.expired(now) {
			continue
		}
		if c.Path == "" {
			c.Path = "/"
		}
		j.entries[c.id()] = c
		cookies = append(cookies, c.cookie())
	}
	j.inner.SetCookies(j.origin, cookies)
	return nil
}
