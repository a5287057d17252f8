package resthttp

import (
	"net/http"

	"github.com/sir_venger/foodgram/internal/models"
	"github.com/sir_venger/foodgram/pkg/httperrors"
)

func (s *Server) listTags(w http.ResponseWriter, r *http.Request) {
	tags, err := s.Catalog.Tags(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if tags == nil {
		tags = []models.Tag{}
	}
	httperrors.JSON(w, http.StatusOK, tags)
}

func (s *Server) getTag(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	tag, err := s.Catalog.Tag(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	httperrors.JSON(w, http.StatusOK, tag)
}

// listIngredients ?name= ищет по началу названия.
func (s *Server) listIngredients(w http.ResponseWriter, r *http.Request) {
	list, err := s.Catalog.Ingredients(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if list == nil {
		list = []models.Ingredient{}
	}
	httperrors.JSON(w, http.StatusOK, list)
}

func (s *Server) getIngredient(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	item, err := s.Catalog.Ingredient(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	httperrors.JSON(w, http.StatusOK, item)
}
