package handlers

import (
	"errors"
	"sync"
	"testing"

	"launderette-finder/src/ads"
	"launderette-finder/src/types"
	"launderette-finder/src/utils"
)

type statusUpdate struct {
	ID, Status, ReviewedBy string
}

// fakeStore is an in-memory DataStore for handler tests.
type fakeStore struct {
	listings    []types.Listing
	nearby      []types.NearbyListing
	reviews     []types.Review
	posts       []types.BlogPost
	contacts    []types.ContactSubmission
	corrections []types.Correction
	events      []types.AnalyticsEvent
	deleted     []string
	updates     []statusUpdate

	failContacts bool
	failEvents   bool
}

func (f *fakeStore) GetListings(limit, offset int) ([]types.Listing, int, error) {
	total := len(f.listings)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return f.listings[offset:end], total, nil
}

func (f *fakeStore) SearchListings(query, city string, limit, offset int) ([]types.Listing, int, error) {
	return f.listings, len(f.listings), nil
}

func (f *fakeStore) GetNearbyListings(lat, lon float64, limit int) ([]types.NearbyListing, error) {
	return f.nearby, nil
}

func (f *fakeStore) GetListing(id string) (*types.Listing, error) {
	for i := range f.listings {
		if f.listings[i].ID == id {
			l := f.listings[i]
			return &l, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) DeleteListing(id string) error {
	for i := range f.listings {
		if f.listings[i].ID == id {
			f.listings = append(f.listings[:i], f.listings[i+1:]...)
			f.deleted = append(f.deleted, id)
			return nil
		}
	}
	return types.ErrNotFound
}

func (f *fakeStore) GetReviews(launderetteID string) ([]types.Review, error) {
	return f.reviews, nil
}

func (f *fakeStore) InsertReview(r types.Review) error {
	f.reviews = append(f.reviews, r)
	return nil
}

func (f *fakeStore) GetBlogPosts() ([]types.BlogPost, error) {
	return f.posts, nil
}

func (f *fakeStore) GetBlogPostBySlug(slug string) (*types.BlogPost, error) {
	for i := range f.posts {
		if f.posts[i].Slug == slug {
			p := f.posts[i]
			return &p, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) InsertContactSubmission(c types.ContactSubmission) error {
	if f.failContacts {
		return errors.New("store unavailable")
	}
	f.contacts = append(f.contacts, c)
	return nil
}

func (f *fakeStore) InsertCorrection(c types.Correction) error {
	f.corrections = append(f.corrections, c)
	return nil
}

func (f *fakeStore) GetCorrectionsByStatus(status string) ([]types.Correction, error) {
	var out []types.Correction
	for _, c := range f.corrections {
		if c.Status == status {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateCorrectionStatus(id, status, reviewedBy string) error {
	for i := range f.corrections {
		if f.corrections[i].ID == id {
			f.corrections[i].Status = status
			f.updates = append(f.updates, statusUpdate{ID: id, Status: status, ReviewedBy: reviewedBy})
			return nil
		}
	}
	return types.ErrNotFound
}

func (f *fakeStore) InsertAnalyticsEvent(e types.AnalyticsEvent) error {
	if f.failEvents {
		return errors.New("store unavailable")
	}
	f.events = append(f.events, e)
	return nil
}

// fakeSink records reported events.
type fakeSink struct {
	mu     sync.Mutex
	events []types.AnalyticsEvent
}

func (f *fakeSink) Report(event types.AnalyticsEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
}

func (f *fakeSink) all() []types.AnalyticsEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]types.AnalyticsEvent(nil), f.events...)
}

func newTestServer(t *testing.T, store *fakeStore) (*Server, *fakeSink) {
	t.Helper()

	tmpl, err := LoadTemplates("../templates")
	if err != nil {
		t.Fatalf("load templates: %v", err)
	}

	sink := &fakeSink{}
	return &Server{
		Store:       store,
		Log:         utils.NewLogger(),
		Events:      sink,
		Ads:         ads.Noop{},
		Tmpl:        tmpl,
		PageSize:    10,
		NearbyLimit: 3,
	}, sink
}
