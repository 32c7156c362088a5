package types

import (
	"errors"
	"time"
)

// ErrNotFound reports that a document id has no backing record.
var ErrNotFound = errors.New("not found")

type GeoPoint struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// Price range buckets shown on listing cards.
const (
	PriceBudget   = "budget"
	PriceModerate = "moderate"
	PricePremium  = "premium"
)

type Listing struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Address      string            `json:"address"`
	City         string            `json:"city,omitempty"`
	Location     GeoPoint          `json:"location"`
	Features     []string          `json:"features"`
	IsPremium    bool              `json:"isPremium"`
	Description  string            `json:"description,omitempty"`
	Phone        string            `json:"phone,omitempty"`
	Email        string            `json:"email,omitempty"`
	Website      string            `json:"website,omitempty"`
	PhotoURLs    []string          `json:"photoUrls"`
	OpeningHours map[string]string `json:"openingHours,omitempty"`
	PriceRange   string            `json:"priceRange,omitempty"`
	CreatedAt    time.Time         `json:"createdAt,omitempty"`
}

// Normalize guarantees Features and PhotoURLs are lists, never absent.
func (l *Listing) Normalize() {
	if l.Features == nil {
		l.Features = []string{}
	}
	if l.PhotoURLs == nil {
		l.PhotoURLs = []string{}
	}
}

// NearbyListing is a Listing plus its distance from the searched point.
type NearbyListing struct {
	Listing
	DistanceMiles float64 `json:"distanceMiles"`
}

type Review struct {
	ID            string    `json:"id"`
	LaunderetteID string    `json:"launderetteId"`
	Rating        int       `json:"rating"`
	Comment       string    `json:"comment"`
	CreatedAt     time.Time `json:"createdAt"`
}

type BlogPost struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Excerpt     string    `json:"excerpt,omitempty"`
	Content     string    `json:"content"`
	ReadingTime int       `json:"readingTime"`
	PublishedAt time.Time `json:"publishedAt"`
}

// Correction statuses. A correction starts pending; approved and rejected
// are terminal.
const (
	CorrectionPending  = "pending"
	CorrectionApproved = "approved"
	CorrectionRejected = "rejected"
)

type Correction struct {
	ID             string     `json:"id"`
	LaunderetteID  string     `json:"launderetteId"`
	Field          string     `json:"field"`
	CurrentValue   string     `json:"currentValue"`
	SuggestedValue string     `json:"suggestedValue"`
	Reason         string     `json:"reason"`
	Status         string     `json:"status"`
	CreatedAt      time.Time  `json:"createdAt"`
	ReviewedAt     *time.Time `json:"reviewedAt,omitempty"`
	ReviewedBy     string     `json:"reviewedBy,omitempty"`
}

type ContactSubmission struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// Analytics event discriminants.
const (
	EventSearch = "search"
	EventView   = "view"
)

// AnalyticsEvent is a tagged union over Type. Use the constructors so the
// per-variant required fields are enforced before anything hits the wire.
type AnalyticsEvent struct {
	Type            string    `json:"type"`
	SearchQuery     string    `json:"searchQuery,omitempty"`
	Location        *GeoPoint `json:"location,omitempty"`
	LaunderetteID   string    `json:"launderetteId,omitempty"`
	LaunderetteName string    `json:"launderetteName,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

func NewSearchEvent(query string, location *GeoPoint) (AnalyticsEvent, error) {
	if query == "" {
		return AnalyticsEvent{}, errors.New("search event requires a query")
	}
	return AnalyticsEvent{
		Type:        EventSearch,
		SearchQuery: query,
		Location:    location,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

func NewViewEvent(launderetteID, launderetteName string) (AnalyticsEvent, error) {
	if launderetteID == "" {
		return AnalyticsEvent{}, errors.New("view event requires a launderette id")
	}
	return AnalyticsEvent{
		Type:            EventView,
		LaunderetteID:   launderetteID,
		LaunderetteName: launderetteName,
		CreatedAt:       time.Now().UTC(),
	}, nil
}

// Validate checks an event received off the wire against the variant rules.
func (e AnalyticsEvent) Validate() error {
	switch e.Type {
	case EventSearch:
		if e.SearchQuery == "" {
			return errors.New("search event requires searchQuery")
		}
	case EventView:
		if e.LaunderetteID == "" {
			return errors.New("view event requires launderetteId")
		}
	default:
		return errors.New("unknown event type: " + e.Type)
	}
	return nil
}

// DataStore is the document-store boundary every handler and tool talks to.
type DataStore interface {
	GetListings(limit, offset int) ([]Listing, int, error)
	SearchListings(query, city string, limit, offset int) ([]Listing, int, error)
	GetNearbyListings(lat, lon float64, limit int) ([]NearbyListing, error)
	GetListing(id string) (*Listing, error)
	DeleteListing(id string) error

	GetReviews(launderetteID string) ([]Review, error)
	InsertReview(r Review) error

	GetBlogPosts() ([]BlogPost, error)
	GetBlogPostBySlug(slug string) (*BlogPost, error)

	InsertContactSubmission(c ContactSubmission) error
	InsertCorrection(c Correction) error
	GetCorrectionsByStatus(status string) ([]Correction, error)
	UpdateCorrectionStatus(id, status, reviewedBy string) error

	InsertAnalyticsEvent(e AnalyticsEvent) error
}
