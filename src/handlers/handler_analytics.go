package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"launderette-finder/src/types"
)

// handleAnalyticsIngest is the collection endpoint the fire-and-forget
// reporter posts to. Storage failures are logged but still acknowledged:
// telemetry is best-effort on both halves.
func (s *Server) handleAnalyticsIngest(w http.ResponseWriter, r *http.Request) {
	var event types.AnalyticsEvent
	if err := decodeJSON(r, &event); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if err := event.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	if err := s.Store.InsertAnalyticsEvent(event); err != nil {
		s.Log.Warn("store %s analytics event: %v", event.Type, err)
	}

	w.WriteHeader(http.StatusAccepted)
}

func decodeJSON(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}
