package resthttp

import (
	"net/http"

	"github.com/sir_venger/foodgram/internal/models"
	"github.com/sir_venger/foodgram/pkg/httperrors"
)

const (
	markFavorite = models.MarkFavorite
	markCart     = models.MarkShoppingCart
)

// addMark POST /recipes/{id}/favorite и /shopping_cart.
func (s *Server) addMark(m models.Mark) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r)
		if err != nil {
			s.fail(w, r, err)
			return
		}

		short, err := s.Recipes.AddMark(r.Context(), m, viewerID(r), id)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		httperrors.JSON(w, http.StatusCreated, short)
	}
}

func (s *Server) removeMark(m models.Mark) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r)
		if err != nil {
			s.fail(w, r, err)
			return
		}

		if err := s.Recipes.RemoveMark(r.Context(), m, viewerID(r), id); err != nil {
			s.fail(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
