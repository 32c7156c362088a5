package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"launderette-finder/src/types"
)

func (s *Server) handleBlogList(w http.ResponseWriter, r *http.Request) {
	posts, err := s.Store.GetBlogPosts()
	if err != nil {
		s.Log.Error("list blog posts: %v", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if posts == nil {
		posts = []types.BlogPost{}
	}

	respondJSON(w, http.StatusOK, posts)
}

func (s *Server) handleBlogPost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	post, err := s.Store.GetBlogPostBySlug(slug)
	if err != nil {
		s.Log.Error("get blog post %s: %v", slug, err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if post == nil {
		respondError(w, http.StatusNotFound, "post not found")
		return
	}

	respondJSON(w, http.StatusOK, post)
}
