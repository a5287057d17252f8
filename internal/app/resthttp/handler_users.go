package resthttp

import (
	"net/http"

	"github.com/sir_venger/foodgram/internal/models"
	"github.com/sir_venger/foodgram/pkg/httperrors"
)

// registerResp профиль без флага подписки.
type registerResp struct {
	Email     string `json:"email"`
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var in models.RegisterInput
	if err := s.decodeJSON(w, r, &in); err != nil {
		s.fail(w, r, err)
		return
	}

	p, err := s.Accounts.Register(r.Context(), in)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	httperrors.JSON(w, http.StatusCreated, registerResp{
		Email:     p.Email,
		ID:        p.ID,
		Username:  p.Username,
		FirstName: p.FirstName,
		LastName:  p.LastName,
	})
}

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	p, err := s.parsePage(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	list, total, err := s.Accounts.List(r.Context(), viewerID(r), p.limit, p.offset())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writePage(s, w, r, p, list, total)
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	p, err := s.Accounts.Get(r.Context(), viewerID(r), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	httperrors.JSON(w, http.StatusOK, p)
}

func (s *Server) me(w http.ResponseWriter, r *http.Request) {
	u, _ := currentUser(r)
	httperrors.JSON(w, http.StatusOK, models.ProfileOf(u))
}

func (s *Server) setPassword(w http.ResponseWriter, r *http.Request) {
	var in models.SetPasswordInput
	if err := s.decodeJSON(w, r, &in); err != nil {
		s.fail(w, r, err)
		return
	}

	if err := s.Accounts.SetPassword(r.Context(), viewerID(r), in); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
