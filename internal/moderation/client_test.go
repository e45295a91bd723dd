package moderation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"uwevents/internal/apiclient"
	"uwevents/internal/apiclient/mocks"
	"uwevents/internal/credential"
	"uwevents/internal/platform/localstore"
	dErrors "uwevents/pkg/domain-errors"
)

func TestRejectedDecisionsMakeNoNetworkCalls(t *testing.T) {
	ctrl := gomock.NewController(t)
	doer := mocks.NewMockHTTPDoer(ctrl)
	doer.EXPECT().Do(gomock.Any()).Times(0)

	member := credential.NewMember(localstore.NewMemory())
	client := New(apiclient.New("http://campus.test/api", apiclient.WithHTTPClient(doer)), member)
	ctx := context.Background()

	t.Run("missing reason is reported before the missing token", func(t *testing.T) {
		_, err := client.Moderate(ctx, Decision{ID: 4, Kind: KindEvent, Verdict: VerdictRejected})
		require.Error(t, err)
		assert.Equal(t, "Rejection reason is required", err.Error())
	})

	t.Run("missing token", func(t *testing.T) {
		_, err := client.Moderate(ctx, Decision{ID: 4, Kind: KindClub, Verdict: VerdictApproved})
		require.Error(t, err)
		assert.Equal(t, "Authentication required", err.Error())
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthenticated))

		_, err = client.PendingEvents(ctx)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthenticated))
		_, err = client.PendingClubs(ctx)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthenticated))
	})

	t.Run("missing reason with a token", func(t *testing.T) {
		require.NoError(t, member.Set(ctx, "member-1"))
		_, err := client.Moderate(ctx, Decision{ID: 4, Kind: KindClub, Verdict: VerdictRejected, RejectionReason: "   "})
		require.Error(t, err)
		assert.Equal(t, "Rejection reason is required", err.Error())
	})
}

// fakeQueue serves pending submissions and applies decisions to them.
type fakeQueue struct {
	mu       sync.Mutex
	events   map[int64]string
	clubs    map[int64]string
	hits     map[string]int
	lastAuth string
	lastBody map[string]any
}

func newFakeQueue() *fakeQueue {
	return &fakeQueue{
		events: map[int64]string{1: "pending", 2: "pending"},
		clubs:  map[int64]string{7: "pending"},
		hits:   map[string]int{},
	}
}

func (f *fakeQueue) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[name]
}

func (f *fakeQueue) auth() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastAuth
}

func (f *fakeQueue) body() map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastBody
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (f *fakeQueue) pending(name string, items map[int64]string, nameKey string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.hits[name]++
		f.lastAuth = r.Header.Get("Authorization")
		if f.lastAuth != "Token member-1" {
			respondJSON(w, http.StatusForbidden, map[string]string{"detail": "You do not have permission to perform this action."})
			return
		}
		out := []map[string]any{}
		for id, status := range items {
			if status == "pending" {
				out = append(out, map[string]any{"id": id, nameKey: "submission", "status": status})
			}
		}
		respondJSON(w, http.StatusOK, out)
	}
}

func (f *fakeQueue) moderate(name string, items map[int64]string, nameKey string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.hits[name]++
		f.lastAuth = r.Header.Get("Authorization")
		f.lastBody = map[string]any{}
		_ = json.NewDecoder(r.Body).Decode(&f.lastBody)

		var id int64
		_ = json.Unmarshal([]byte(chi.URLParam(r, "id")), &id)
		if items[id] != "pending" {
			respondJSON(w, http.StatusNotFound, map[string]string{"error": "Event not found or not pending"})
			return
		}
		status, _ := f.lastBody["status"].(string)
		items[id] = status
		resp := map[string]any{"id": id, nameKey: "submission", "status": status}
		if reason, ok := f.lastBody["rejection_reason"]; ok {
			resp["rejection_reason"] = reason
		}
		respondJSON(w, http.StatusOK, resp)
	}
}

func (f *fakeQueue) router() http.Handler {
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Get("/events/submissions/pending/", f.pending("pending_events", f.events, "name"))
		r.Get("/clubs/submissions/pending/", f.pending("pending_clubs", f.clubs, "club_name"))
		r.Patch("/events/submissions/{id}/moderate/", f.moderate("moderate_event", f.events, "name"))
		r.Patch("/clubs/submissions/{id}/moderate/", f.moderate("moderate_club", f.clubs, "club_name"))
	})
	return r
}

type ClientSuite struct {
	suite.Suite
	fake   *fakeQueue
	server *httptest.Server
	member *credential.Domain
	client *Client
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientSuite))
}

func (s *ClientSuite) SetupTest() {
	s.fake = newFakeQueue()
	s.server = httptest.NewServer(s.fake.router())
	s.member = credential.NewMember(localstore.NewMemory())
	s.Require().NoError(s.member.Set(context.Background(), "member-1"))
	s.client = New(apiclient.New(s.server.URL+"/api"), s.member)
}

func (s *ClientSuite) TearDownTest() {
	s.server.Close()
}

func (s *ClientSuite) TestApproveEventRefreshesPendingEvents() {
	ctx := context.Background()
	pending, err := s.client.PendingEvents(ctx)
	s.Require().NoError(err)
	s.Len(pending, 2)

	res, err := s.client.Moderate(ctx, Decision{ID: 1, Kind: KindEvent, Verdict: VerdictApproved, RejectionReason: "ignored"})
	s.Require().NoError(err)
	s.Require().NotNil(res.Event)
	s.Nil(res.Club)
	s.Equal("approved", res.Event.Status)
	s.Equal("Token member-1", s.fake.auth())
	s.Equal(map[string]any{"status": "approved"}, s.fake.body())

	pending, err = s.client.PendingEvents(ctx)
	s.Require().NoError(err)
	s.Len(pending, 1)
	s.Equal(2, s.fake.count("pending_events"))
}

func (s *ClientSuite) TestRejectClubSendsReasonAndKeepsEventQueueCached() {
	ctx := context.Background()
	_, err := s.client.PendingEvents(ctx)
	s.Require().NoError(err)
	_, err = s.client.PendingClubs(ctx)
	s.Require().NoError(err)

	res, err := s.client.Moderate(ctx, Decision{ID: 7, Kind: KindClub, Verdict: VerdictRejected, RejectionReason: "duplicate"})
	s.Require().NoError(err)
	s.Require().NotNil(res.Club)
	s.Equal("rejected", res.Club.Status)
	s.Require().NotNil(res.Club.RejectionReason)
	s.Equal("duplicate", *res.Club.RejectionReason)
	s.Equal(map[string]any{"status": "rejected", "rejection_reason": "duplicate"}, s.fake.body())

	clubs, err := s.client.PendingClubs(ctx)
	s.Require().NoError(err)
	s.Empty(clubs)
	s.Equal(2, s.fake.count("pending_clubs"))

	_, err = s.client.PendingEvents(ctx)
	s.Require().NoError(err)
	s.Equal(1, s.fake.count("pending_events"))
}

func (s *ClientSuite) TestServerMessageSurfaces() {
	_, err := s.client.Moderate(context.Background(), Decision{ID: 99, Kind: KindEvent, Verdict: VerdictApproved})
	s.Require().Error(err)
	s.Equal("Event not found or not pending", err.Error())
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ClientSuite) TestPendingReadsUseFallback() {
	s.Require().NoError(s.member.Set(context.Background(), "someone-else"))
	_, err := s.client.PendingClubs(context.Background())
	s.Require().Error(err)
	s.Equal("Failed to fetch pending club submissions", err.Error())
	s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
}
