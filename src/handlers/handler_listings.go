package handlers

import (
	"html/template"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"launderette-finder/src/ads"
	"launderette-finder/src/types"
)

// ListingsPage drives both the HTML template and the JSON twin.
type ListingsPage struct {
	Name     string        `json:"name"`
	Total    int           `json:"total"`
	Listings []Card        `json:"listings"`
	Page     int           `json:"page"`
	LastPage int           `json:"lastPage"`
	PrevPage int           `json:"prevPage,omitempty"`
	NextPage int           `json:"nextPage,omitempty"`
	AdScript template.HTML `json:"-"`
	AdSlot   template.HTML `json:"-"`
}

func (s *Server) getListingsPage(w http.ResponseWriter, r *http.Request) (*ListingsPage, bool) {
	pageStr := r.URL.Query().Get("page")
	if pageStr == "" {
		pageStr = "1"
	}
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		respondError(w, http.StatusBadRequest, "invalid page number")
		return nil, false
	}

	listings, total, err := s.Store.GetListings(s.PageSize, (page-1)*s.PageSize)
	if err != nil {
		s.Log.Error("list launderettes: %v", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return nil, false
	}

	lastPage := (total + s.PageSize - 1) / s.PageSize

	cards := make([]Card, 0, len(listings))
	for _, l := range listings {
		cards = append(cards, NewCard(l))
	}

	data := &ListingsPage{
		Name:     "Launderettes",
		Listings: cards,
		Total:    total,
		Page:     page,
		LastPage: lastPage,
	}

	if page > 1 {
		data.PrevPage = page - 1
	}
	if page < lastPage {
		data.NextPage = page + 1
	}

	return data, true
}

func (s *Server) handleListingsHTML(w http.ResponseWriter, r *http.Request) {
	data, ok := s.getListingsPage(w, r)
	if !ok {
		return
	}

	data.AdScript = s.Ads.ScriptTag()
	data.AdSlot = s.Ads.Render(ads.Slot{ID: "listings-top", Format: "auto", Responsive: true})

	if err := s.Tmpl.ExecuteTemplate(w, "listings.html", data); err != nil {
		http.Error(w, "Error rendering template", http.StatusInternalServerError)
	}
}

func (s *Server) handleListingsAPI(w http.ResponseWriter, r *http.Request) {
	data, ok := s.getListingsPage(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, data)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	city := r.URL.Query().Get("city")
	if query == "" && city == "" {
		respondError(w, http.StatusBadRequest, "missing q or city parameter")
		return
	}

	listings, total, err := s.Store.SearchListings(query, city, s.PageSize, 0)
	if err != nil {
		s.Log.Error("search launderettes: %v", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	// Telemetry is best-effort and must never block the search itself.
	if ev, err := types.NewSearchEvent(searchQueryLabel(query, city), userLocation(r)); err == nil {
		s.Events.Report(ev)
	}

	cards := make([]Card, 0, len(listings))
	for _, l := range listings {
		cards = append(cards, NewCard(l))
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"total":    total,
		"listings": cards,
	})
}

func searchQueryLabel(query, city string) string {
	if query == "" {
		return city
	}
	if city == "" {
		return query
	}
	return query + " in " + city
}

// userLocation pulls optional lat/lon off the query string. Both must be
// present and valid for a location to be attached.
func userLocation(r *http.Request) *types.GeoPoint {
	latStr := r.URL.Query().Get("lat")
	lonStr := r.URL.Query().Get("lon")
	if latStr == "" || lonStr == "" {
		return nil
	}
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return nil
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return nil
	}
	return &types.GeoPoint{Lat: lat, Lon: lon}
}

func (s *Server) handleListingDetail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	listing, err := s.Store.GetListing(id)
	if err != nil {
		s.Log.Error("get launderette %s: %v", id, err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if listing == nil {
		respondError(w, http.StatusNotFound, "launderette not found")
		return
	}

	if ev, err := types.NewViewEvent(listing.ID, listing.Name); err == nil {
		s.Events.Report(ev)
	}

	respondJSON(w, http.StatusOK, NewCard(*listing))
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	latStr := r.URL.Query().Get("lat")
	lonStr := r.URL.Query().Get("lon")
	if latStr == "" || lonStr == "" {
		respondError(w, http.StatusBadRequest, "missing latitude or longitude")
		return
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid latitude")
		return
	}

	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid longitude")
		return
	}

	nearby, err := s.Store.GetNearbyListings(lat, lon, s.NearbyLimit)
	if err != nil {
		s.Log.Error("nearby launderettes: %v", err)
		respondError(w, http.StatusInternalServerError, "error fetching recommendations")
		return
	}

	cards := make([]Card, 0, len(nearby))
	for _, n := range nearby {
		cards = append(cards, NewCardWithDistance(n.Listing, n.DistanceMiles))
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"name":     "Nearby launderettes",
		"listings": cards,
	})
}
