package catalog

import (
	"context"
	"encoding/json"
	"io"
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

func TestCategoriesAcceptsListOrString(t *testing.T) {
	var fromList, fromString Categories
	require.NoError(t, json.Unmarshal([]byte(`["Academic","Social"]`), &fromList))
	require.NoError(t, json.Unmarshal([]byte(`"Academic, Social,"`), &fromString))
	assert.Equal(t, Categories{"Academic", "Social"}, fromList)
	assert.Equal(t, fromList, fromString)
	assert.Error(t, json.Unmarshal([]byte(`42`), &fromList))
}

func TestLocalValidationMakesNoNetworkCalls(t *testing.T) {
	ctrl := gomock.NewController(t)
	doer := mocks.NewMockHTTPDoer(ctrl)
	doer.EXPECT().Do(gomock.Any()).Times(0)

	client := New(apiclient.New("http://campus.test/api", apiclient.WithHTTPClient(doer)),
		credential.NewMember(localstore.NewMemory()))
	ctx := context.Background()

	t.Run("club submissions need the member token", func(t *testing.T) {
		_, err := client.MyClubSubmissions(ctx)
		require.Error(t, err)
		assert.Equal(t, "Authentication required", err.Error())
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthenticated))
	})

	t.Run("event submission without image", func(t *testing.T) {
		_, err := client.SubmitEvent(ctx, validEvent(), Image{Filename: "poster.png"})
		require.Error(t, err)
		assert.Equal(t, "image is required", err.Error())
	})

	t.Run("event submission with blank name", func(t *testing.T) {
		sub := validEvent()
		sub.Name = "  "
		_, err := client.SubmitEvent(ctx, sub, poster())
		require.Error(t, err)
		assert.Equal(t, "name must not be blank", err.Error())
	})

	t.Run("club submission with unknown type", func(t *testing.T) {
		_, err := client.SubmitClub(ctx, ClubSubmission{ClubName: "Chess", Categories: "Games", ClubType: "Varsity"})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("malformed start date filter", func(t *testing.T) {
		_, err := client.Events(ctx, EventFilter{StartDate: "next week"})
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func validEvent() EventSubmission {
	price := 5.5
	return EventSubmission{
		Name:         "Games Night",
		Date:         "2026-11-02",
		StartTime:    "18:00",
		EndTime:      "21:00",
		Location:     "SLC",
		Price:        &price,
		ClubType:     "Student Society",
		Registration: false,
	}
}

func poster() Image {
	return Image{Filename: "poster.png", Data: []byte("\x89PNG")}
}

// fakeCatalog serves the listing and submission endpoints.
type fakeCatalog struct {
	mu       sync.Mutex
	hits     map[string]int
	query    map[string]string
	form     map[string]string
	image    []byte
	lastAuth string
	fail     bool
}

func (f *fakeCatalog) hit(name string, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hits[name]++
	f.lastAuth = r.Header.Get("Authorization")
	f.query = map[string]string{}
	for k := range r.URL.Query() {
		f.query[k] = r.URL.Query().Get(k)
	}
}

func (f *fakeCatalog) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[name]
}

func (f *fakeCatalog) auth() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastAuth
}

func (f *fakeCatalog) lastQuery() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.query
}

func (f *fakeCatalog) failing() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fail
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (f *fakeCatalog) router() http.Handler {
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Get("/events/", func(w http.ResponseWriter, r *http.Request) {
			f.hit("events", r)
			if f.failing() {
				respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "db down"})
				return
			}
			respondJSON(w, http.StatusOK, []map[string]any{
				{"id": 1, "name": "Games Night", "club_handle": "uwgames", "date": "2026-11-02", "registration": false},
			})
		})
		r.Get("/clubs/", func(w http.ResponseWriter, r *http.Request) {
			f.hit("clubs", r)
			respondJSON(w, http.StatusOK, map[string]any{"clubs": []map[string]any{
				{"id": 3, "club_name": "Chess", "categories": "Games, Strategy"},
			}})
		})
		r.Get("/events/submissions/", func(w http.ResponseWriter, r *http.Request) {
			f.hit("my_events", r)
			respondJSON(w, http.StatusOK, []map[string]any{{"id": 9, "name": "Games Night", "status": "pending"}})
		})
		r.Get("/clubs/submissions/", func(w http.ResponseWriter, r *http.Request) {
			f.hit("my_clubs", r)
			respondJSON(w, http.StatusOK, []map[string]any{{"id": 4, "club_name": "Chess", "status": "rejected", "rejection_reason": "duplicate"}})
		})
		r.Post("/events/submit/", func(w http.ResponseWriter, r *http.Request) {
			f.hit("submit_event", r)
			if err := r.ParseMultipartForm(1 << 20); err != nil {
				respondJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
				return
			}
			file, _, err := r.FormFile("image")
			if err != nil {
				respondJSON(w, http.StatusBadRequest, map[string]string{"error": "Image is required"})
				return
			}
			data, _ := io.ReadAll(file)
			f.mu.Lock()
			f.form = map[string]string{}
			for k := range r.MultipartForm.Value {
				f.form[k] = r.FormValue(k)
			}
			f.image = data
			f.mu.Unlock()
			respondJSON(w, http.StatusCreated, map[string]any{"id": 10, "name": r.FormValue("name"), "status": "pending"})
		})
		r.Post("/clubs/submit/", func(w http.ResponseWriter, r *http.Request) {
			f.hit("submit_club", r)
			var body map[string]string
			_ = json.NewDecoder(r.Body).Decode(&body)
			if body["clubName"] == "Chess" {
				respondJSON(w, http.StatusBadRequest, map[string]string{"error": "A club with this name already exists"})
				return
			}
			respondJSON(w, http.StatusCreated, map[string]any{"id": 11, "club_name": body["clubName"], "categories": body["categories"], "status": "pending"})
		})
	})
	return r
}

type ClientSuite struct {
	suite.Suite
	fake   *fakeCatalog
	server *httptest.Server
	member *credential.Domain
	client *Client
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientSuite))
}

func (s *ClientSuite) SetupTest() {
	s.fake = &fakeCatalog{hits: map[string]int{}}
	s.server = httptest.NewServer(s.fake.router())
	s.member = credential.NewMember(localstore.NewMemory())
	s.client = New(apiclient.New(s.server.URL+"/api"), s.member)
}

func (s *ClientSuite) TearDownTest() {
	s.server.Close()
}

func (s *ClientSuite) TestEventsSendsFilterAndCaches() {
	ctx := context.Background()
	events, err := s.client.Events(ctx, EventFilter{Search: "games", StartDate: "2026-11-01"})
	s.Require().NoError(err)
	s.Require().Len(events, 1)
	s.Equal("uwgames", events[0].ClubHandle)
	s.Equal(map[string]string{"search": "games", "start_date": "2026-11-01"}, s.fake.lastQuery())

	_, err = s.client.Events(ctx, EventFilter{Search: "games", StartDate: "2026-11-01"})
	s.Require().NoError(err)
	s.Equal(1, s.fake.count("events"))

	_, err = s.client.Events(ctx, EventFilter{})
	s.Require().NoError(err)
	s.Equal(2, s.fake.count("events"))
	s.Empty(s.fake.lastQuery())
}

func (s *ClientSuite) TestEventsFailureUsesFallback() {
	s.fake.mu.Lock()
	s.fake.fail = true
	s.fake.mu.Unlock()

	_, err := s.client.Events(context.Background(), EventFilter{})
	s.Require().Error(err)
	s.Equal("Failed to fetch events", err.Error())
}

func (s *ClientSuite) TestClubsDefaultsCategory() {
	clubs, err := s.client.Clubs(context.Background(), ClubFilter{Search: "chess"})
	s.Require().NoError(err)
	s.Require().Len(clubs, 1)
	s.Equal(Categories{"Games", "Strategy"}, clubs[0].Categories)
	s.Equal(map[string]string{"search": "chess", "category": "all"}, s.fake.lastQuery())
}

func (s *ClientSuite) TestMySubmissions() {
	ctx := context.Background()
	events, err := s.client.MyEventSubmissions(ctx)
	s.Require().NoError(err)
	s.Equal(StatusPending, events[0].Status)

	s.Require().NoError(s.member.Set(ctx, "member-1"))
	clubs, err := s.client.MyClubSubmissions(ctx)
	s.Require().NoError(err)
	s.Require().NotNil(clubs[0].RejectionReason)
	s.Equal("duplicate", *clubs[0].RejectionReason)
	s.Equal("Token member-1", s.fake.auth())
}

func (s *ClientSuite) TestSubmitEventSendsMultipartAndInvalidates() {
	ctx := context.Background()
	_, err := s.client.MyEventSubmissions(ctx)
	s.Require().NoError(err)

	out, err := s.client.SubmitEvent(ctx, validEvent(), poster())
	s.Require().NoError(err)
	s.Equal(int64(10), out.ID)

	s.fake.mu.Lock()
	form, image := s.fake.form, s.fake.image
	s.fake.mu.Unlock()
	s.Equal("Games Night", form["name"])
	s.Equal("18:00", form["startTime"])
	s.Equal("5.5", form["price"])
	s.Equal("false", form["registration"])
	s.Equal("Student Society", form["clubType"])
	s.NotContains(form, "description")
	s.NotContains(form, "food")
	s.Equal([]byte("\x89PNG"), image)

	_, err = s.client.MyEventSubmissions(ctx)
	s.Require().NoError(err)
	s.Equal(2, s.fake.count("my_events"))
}

func (s *ClientSuite) TestSubmitClub() {
	ctx := context.Background()
	s.Require().NoError(s.member.Set(ctx, "member-1"))
	_, err := s.client.MyClubSubmissions(ctx)
	s.Require().NoError(err)

	s.Run("server message surfaces and cache survives", func() {
		_, err := s.client.SubmitClub(ctx, ClubSubmission{ClubName: "Chess", Categories: "Games"})
		s.Require().Error(err)
		s.Equal("A club with this name already exists", err.Error())
		_, err = s.client.MyClubSubmissions(ctx)
		s.Require().NoError(err)
		s.Equal(1, s.fake.count("my_clubs"))
	})

	s.Run("success invalidates own club submissions", func() {
		out, err := s.client.SubmitClub(ctx, ClubSubmission{ClubName: "Go Club", Categories: "Games", ClubType: "WUSA"})
		s.Require().NoError(err)
		s.Equal("Go Club", out.ClubName)
		_, err = s.client.MyClubSubmissions(ctx)
		s.Require().NoError(err)
		s.Equal(2, s.fake.count("my_clubs"))
	})
}
