package resthttp

import (
	"net/http"

	"github.com/sir_venger/foodgram/internal/models"
	"github.com/sir_venger/foodgram/pkg/httperrors"
)

type tokenResp struct {
	AuthToken string `json:"auth_token"`
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var in models.LoginInput
	if err := s.decodeJSON(w, r, &in); err != nil {
		s.fail(w, r, err)
		return
	}

	token, err := s.Accounts.Login(r.Context(), in)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	httperrors.JSON(w, http.StatusOK, tokenResp{AuthToken: token})
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	if err := s.Accounts.Logout(r.Context(), currentClaims(r)); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
