package handlers

import (
	"net/http"

	"launderette-finder/src/token"
	"launderette-finder/src/types"
)

// AdminPage is the data behind the admin shell. It is only ever rendered
// for an authenticated request; the page gate decides before this runs.
type AdminPage struct {
	User        string
	Pending     []types.Correction
	PendingSize int
}

func (s *Server) handleAdminPage(w http.ResponseWriter, r *http.Request) {
	pending, err := s.Store.GetCorrectionsByStatus(types.CorrectionPending)
	if err != nil {
		s.Log.Error("load pending corrections: %v", err)
		http.Error(w, "Error loading admin data", http.StatusInternalServerError)
		return
	}

	data := AdminPage{
		User:        token.UserFromContext(r.Context()),
		Pending:     pending,
		PendingSize: len(pending),
	}

	if err := s.Tmpl.ExecuteTemplate(w, "admin.html", data); err != nil {
		http.Error(w, "Error rendering template", http.StatusInternalServerError)
	}
}

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	if err := s.Tmpl.ExecuteTemplate(w, "login.html", nil); err != nil {
		http.Error(w, "Error rendering template", http.StatusInternalServerError)
	}
}
