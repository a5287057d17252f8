package resthttp

import (
	"net/http"

	"github.com/sir_venger/foodgram/pkg/httperrors"
)

func (s *Server) subscribe(w http.ResponseWriter, r *http.Request) {
	authorID, err := idParam(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	limit, err := intQuery(r, "recipes_limit", 0)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	sub, err := s.Accounts.Subscribe(r.Context(), viewerID(r), authorID, limit)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	httperrors.JSON(w, http.StatusCreated, sub)
}

func (s *Server) unsubscribe(w http.ResponseWriter, r *http.Request) {
	authorID, err := idParam(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	if err := s.Accounts.Unsubscribe(r.Context(), viewerID(r), authorID); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// subscriptions лента авторов, на которых подписан пользователь.
func (s *Server) subscriptions(w http.ResponseWriter, r *http.Request) {
	p, err := s.parsePage(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	limit, err := intQuery(r, "recipes_limit", 0)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	list, total, err := s.Accounts.Subscriptions(r.Context(), viewerID(r), p.limit, p.offset(), limit)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writePage(s, w, r, p, list, total)
}
