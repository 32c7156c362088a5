package handlers

import (
	"net/http"

	"launderette-finder/src/regions"
)

// handleRegions returns the static region table, or resolves a single
// city to its region when ?city= is given.
func (s *Server) handleRegions(w http.ResponseWriter, r *http.Request) {
	if city := r.URL.Query().Get("city"); city != "" {
		respondJSON(w, http.StatusOK, map[string]string{
			"city":   city,
			"region": regions.RegionForCity(city),
		})
		return
	}

	type regionView struct {
		Name   string   `json:"name"`
		Cities []string `json:"cities"`
	}

	table := regions.Regions()
	out := make([]regionView, 0, len(table))
	for _, reg := range table {
		out = append(out, regionView{Name: reg.Name, Cities: reg.Cities})
	}

	respondJSON(w, http.StatusOK, out)
}
