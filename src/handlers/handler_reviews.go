package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"launderette-finder/src/types"
)

type reviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func (s *Server) handleGetReviews(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	reviews, err := s.Store.GetReviews(id)
	if err != nil {
		s.Log.Error("list reviews for %s: %v", id, err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if reviews == nil {
		reviews = []types.Review{}
	}

	respondJSON(w, http.StatusOK, reviews)
}

func (s *Server) handlePostReview(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req reviewRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		respondError(w, http.StatusBadRequest, "rating must be between 1 and 5")
		return
	}

	review := types.Review{
		ID:            uuid.NewString(),
		LaunderetteID: id,
		Rating:        req.Rating,
		Comment:       sanitizer.Sanitize(req.Comment),
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.Store.InsertReview(review); err != nil {
		s.Log.Error("store review: %v", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	respondJSON(w, http.StatusCreated, review)
}
