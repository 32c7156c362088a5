package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"launderette-finder/src/token"
	"launderette-finder/src/types"
)

func seedListings(n int) []types.Listing {
	listings := make([]types.Listing, 0, n)
	for i := 0; i < n; i++ {
		listings = append(listings, types.Listing{
			ID:      fmt.Sprintf("l%d", i),
			Name:    fmt.Sprintf("Launderette %d", i),
			Address: fmt.Sprintf("%d High St", i),
			City:    "Leeds",
		})
	}
	return listings
}

func testRouter(t *testing.T, store *fakeStore) (http.Handler, *fakeSink) {
	t.Helper()
	s, sink := newTestServer(t, store)
	auth := token.New("test-key", nil)
	return s.Routes(auth), sink
}

func TestListingsAPIPagination(t *testing.T) {
	store := &fakeStore{listings: seedListings(25)}
	router, _ := testRouter(t, store)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/launderettes?page=2", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}

	var page ListingsPage
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode page: %v", err)
	}
	if page.Total != 25 || page.Page != 2 || page.LastPage != 3 {
		t.Errorf("pagination: %+v", page)
	}
	if page.PrevPage != 1 || page.NextPage != 3 {
		t.Errorf("prev/next: %+v", page)
	}
	if len(page.Listings) != 10 {
		t.Errorf("got %d listings on page 2, want 10", len(page.Listings))
	}
}

func TestListingsAPIBadPage(t *testing.T) {
	store := &fakeStore{listings: seedListings(5)}
	router, _ := testRouter(t, store)

	for _, q := range []string{"?page=0", "?page=abc", "?page=-1"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/launderettes"+q, nil))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: got %d, want 400", q, rec.Code)
		}
	}
}

func TestListingsHTMLRenders(t *testing.T) {
	store := &fakeStore{listings: seedListings(3)}
	router, _ := testRouter(t, store)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/launderettes", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Launderette 0") || !strings.Contains(body, "Total found: 3") {
		t.Errorf("page content missing:\n%s", body)
	}
}

func TestSearchFiresAnalyticsEvent(t *testing.T) {
	store := &fakeStore{listings: seedListings(2)}
	router, sink := testRouter(t, store)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/launderettes/search?q=service+wash&lat=53.8&lon=-1.5", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}

	events := sink.all()
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	ev := events[0]
	if ev.Type != types.EventSearch || ev.SearchQuery != "service wash" {
		t.Errorf("unexpected event: %+v", ev)
	}
	if ev.Location == nil || ev.Location.Lat != 53.8 {
		t.Errorf("location not attached: %+v", ev.Location)
	}
}

func TestSearchWithoutCoordinates(t *testing.T) {
	store := &fakeStore{listings: seedListings(1)}
	router, sink := testRouter(t, store)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/launderettes/search?q=soap", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}

	events := sink.all()
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if events[0].Location != nil {
		t.Error("location should be absent when no coordinates were supplied")
	}
}

func TestListingDetailFiresViewEvent(t *testing.T) {
	store := &fakeStore{listings: seedListings(2)}
	router, sink := testRouter(t, store)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/launderettes/l1", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}

	events := sink.all()
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if events[0].Type != types.EventView || events[0].LaunderetteID != "l1" {
		t.Errorf("unexpected event: %+v", events[0])
	}
}

func TestListingDetailNotFound(t *testing.T) {
	store := &fakeStore{}
	router, sink := testRouter(t, store)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/launderettes/nope", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", rec.Code)
	}
	if len(sink.all()) != 0 {
		t.Error("no view event expected for a missing listing")
	}
}

func TestRecommend(t *testing.T) {
	store := &fakeStore{nearby: []types.NearbyListing{
		{Listing: types.Listing{ID: "l1", Name: "Bubbles"}, DistanceMiles: 2.567},
	}}
	router, _ := testRouter(t, store)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/recommend?lat=53.8&lon=-1.5", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}

	var resp struct {
		Listings []Card `json:"listings"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Listings) != 1 || resp.Listings[0].Distance == nil {
		t.Fatalf("unexpected response: %s", rec.Body.String())
	}
	if *resp.Listings[0].Distance != 2.567 {
		t.Errorf("distance: got %v", *resp.Listings[0].Distance)
	}
}

func TestRecommendMissingCoordinates(t *testing.T) {
	store := &fakeStore{}
	router, _ := testRouter(t, store)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/recommend?lat=53.8", nil))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", rec.Code)
	}
}
