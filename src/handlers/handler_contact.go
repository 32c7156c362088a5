package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"launderette-finder/src/types"
)

var sanitizer = bluemonday.StrictPolicy()

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// handleContact accepts a contact-form submission. All four fields are
// required; a missing one yields a 400 and no record is written.
func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Subject = strings.TrimSpace(req.Subject)
	req.Message = strings.TrimSpace(req.Message)

	for _, f := range []struct{ name, value string }{
		{"name", req.Name},
		{"email", req.Email},
		{"subject", req.Subject},
		{"message", req.Message},
	} {
		if f.value == "" {
			respondError(w, http.StatusBadRequest, "missing required field: "+f.name)
			return
		}
	}

	submission := types.ContactSubmission{
		ID:        uuid.NewString(),
		Name:      sanitizer.Sanitize(req.Name),
		Email:     sanitizer.Sanitize(req.Email),
		Subject:   sanitizer.Sanitize(req.Subject),
		Message:   sanitizer.Sanitize(req.Message),
		CreatedAt: time.Now().UTC(),
	}

	if err := s.Store.InsertContactSubmission(submission); err != nil {
		s.Log.Error("store contact submission: %v", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
