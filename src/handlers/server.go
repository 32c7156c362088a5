package handlers

import (
	"encoding/json"
	"html/template"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"launderette-finder/src/ads"
	"launderette-finder/src/token"
	"launderette-finder/src/types"
	"launderette-finder/src/utils"
)

// EventSink receives analytics events fired by user actions. The live
// implementation is the analytics.Reporter; tests substitute a fake.
type EventSink interface {
	Report(event types.AnalyticsEvent)
}

type Server struct {
	Store       types.DataStore
	Log         *utils.Logger
	Events      EventSink
	Ads         ads.Provider
	Tmpl        *template.Template
	PageSize    int
	NearbyLimit int
}

// Routes wires every endpoint. Admin API routes sit behind the JWT
// middleware; the admin HTML shell sits behind the page gate.
func (s *Server) Routes(auth *token.Auth) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Post("/api/get_token", auth.GetToken)

	r.Get("/launderettes", s.handleListingsHTML)
	r.Get("/login", s.handleLoginPage)
	r.With(token.RequirePage(auth, "/login")).Get("/admin", s.handleAdminPage)

	r.Route("/api", func(r chi.Router) {
		r.Get("/launderettes", s.handleListingsAPI)
		r.Get("/launderettes/search", s.handleSearch)
		r.Get("/launderettes/{id}", s.handleListingDetail)
		r.Get("/launderettes/{id}/reviews", s.handleGetReviews)
		r.Post("/launderettes/{id}/reviews", s.handlePostReview)
		r.Get("/recommend", s.handleRecommend)

		r.Post("/contact", s.handleContact)
		r.Post("/analytics", s.handleAnalyticsIngest)
		r.Post("/corrections", s.handlePostCorrection)

		r.Get("/blog", s.handleBlogList)
		r.Get("/blog/{slug}", s.handleBlogPost)
		r.Get("/regions", s.handleRegions)

		r.Route("/admin", func(r chi.Router) {
			r.Use(token.JwtMiddleware(auth))
			r.Get("/corrections", s.handleAdminCorrections)
			r.Post("/corrections/{id}/approve", s.handleApproveCorrection)
			r.Post("/corrections/{id}/reject", s.handleRejectCorrection)
			r.Delete("/launderettes/{id}", s.handleDeleteListing)
		})
	})

	return r
}

// LoadTemplates parses the HTML templates with the helper FuncMap.
func LoadTemplates(dir string) (*template.Template, error) {
	return template.New("pages").Funcs(template.FuncMap{
		"sub":         func(a, b int) int { return a - b },
		"add":         func(a, b int) int { return a + b },
		"fmtDistance": FormatDistance,
	}).ParseGlob(filepath.Join(dir, "*.html"))
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "Error rendering JSON", http.StatusInternalServerError)
	}
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}
