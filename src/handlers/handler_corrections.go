package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"launderette-finder/src/token"
	"launderette-finder/src/types"
)

type correctionRequest struct {
	LaunderetteID  string `json:"launderetteId"`
	Field          string `json:"field"`
	CurrentValue   string `json:"currentValue"`
	SuggestedValue string `json:"suggestedValue"`
	Reason         string `json:"reason"`
}

// handlePostCorrection records a proposed edit. Corrections always start
// pending; review happens through the admin API.
func (s *Server) handlePostCorrection(w http.ResponseWriter, r *http.Request) {
	var req correctionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if strings.TrimSpace(req.LaunderetteID) == "" || strings.TrimSpace(req.Field) == "" ||
		strings.TrimSpace(req.SuggestedValue) == "" {
		respondError(w, http.StatusBadRequest, "launderetteId, field and suggestedValue are required")
		return
	}

	correction := types.Correction{
		ID:             uuid.NewString(),
		LaunderetteID:  req.LaunderetteID,
		Field:          req.Field,
		CurrentValue:   req.CurrentValue,
		SuggestedValue: sanitizer.Sanitize(req.SuggestedValue),
		Reason:         sanitizer.Sanitize(req.Reason),
		Status:         types.CorrectionPending,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.Store.InsertCorrection(correction); err != nil {
		s.Log.Error("store correction: %v", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{"id": correction.ID, "status": correction.Status})
}

func (s *Server) handleAdminCorrections(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status == "" {
		status = types.CorrectionPending
	}
	if status != types.CorrectionPending && status != types.CorrectionApproved &&
		status != types.CorrectionRejected {
		respondError(w, http.StatusBadRequest, "unknown status: "+status)
		return
	}

	corrections, err := s.Store.GetCorrectionsByStatus(status)
	if err != nil {
		s.Log.Error("list corrections: %v", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if corrections == nil {
		corrections = []types.Correction{}
	}

	respondJSON(w, http.StatusOK, corrections)
}

func (s *Server) handleApproveCorrection(w http.ResponseWriter, r *http.Request) {
	s.reviewCorrection(w, r, types.CorrectionApproved)
}

func (s *Server) handleRejectCorrection(w http.ResponseWriter, r *http.Request) {
	s.reviewCorrection(w, r, types.CorrectionRejected)
}

// reviewCorrection moves a pending correction to a terminal status. The
// suggested value is never auto-applied to the listing.
func (s *Server) reviewCorrection(w http.ResponseWriter, r *http.Request, status string) {
	id := chi.URLParam(r, "id")
	reviewedBy := token.UserFromContext(r.Context())

	if err := s.Store.UpdateCorrectionStatus(id, status, reviewedBy); err != nil {
		if errors.Is(err, types.ErrNotFound) {
			respondError(w, http.StatusNotFound, "correction not found")
			return
		}
		s.Log.Error("review correction %s: %v", id, err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"id": id, "status": status})
}

func (s *Server) handleDeleteListing(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.Store.DeleteListing(id); err != nil {
		if errors.Is(err, types.ErrNotFound) {
			respondError(w, http.StatusNotFound, "launderette not found")
			return
		}
		s.Log.Error("delete launderette %s: %v", id, err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	s.Log.Info("launderette %s deleted by %s", id, token.UserFromContext(r.Context()))
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
