package resthttp

import (
	"net/http"
	"strings"

	"github.com/sir_venger/foodgram/internal/models"
	"github.com/sir_venger/foodgram/pkg/httperrors"
)

func (s *Server) listRecipes(w http.ResponseWriter, r *http.Request) {
	p, err := s.parsePage(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	author, err := intQuery(r, "author", 0)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	var slugs []string
	for _, v := range r.URL.Query()["tags"] {
		if v = strings.TrimSpace(v); v != "" {
			slugs = append(slugs, v)
		}
	}

	list, total, err := s.Recipes.List(r.Context(), viewerID(r), models.RecipeFilter{
		AuthorID:      int64(author),
		TagSlugs:      slugs,
		OnlyFavorited: boolQuery(r, "is_favorited"),
		OnlyInCart:    boolQuery(r, "is_in_shopping_cart"),
		Limit:         p.limit,
		Offset:        p.offset(),
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writePage(s, w, r, p, list, total)
}

func (s *Server) getRecipe(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	recipe, err := s.Recipes.Get(r.Context(), viewerID(r), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	httperrors.JSON(w, http.StatusOK, recipe)
}

func (s *Server) createRecipe(w http.ResponseWriter, r *http.Request) {
	var in models.RecipeInput
	if err := s.decodeJSON(w, r, &in); err != nil {
		s.fail(w, r, err)
		return
	}

	author, _ := currentUser(r)
	recipe, err := s.Recipes.Create(r.Context(), author, in)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	httperrors.JSON(w, http.StatusCreated, recipe)
}

func (s *Server) updateRecipe(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var in models.RecipeInput
	if err := s.decodeJSON(w, r, &in); err != nil {
		s.fail(w, r, err)
		return
	}

	actor, _ := currentUser(r)
	recipe, err := s.Recipes.Update(r.Context(), actor, id, in)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	httperrors.JSON(w, http.StatusOK, recipe)
}

func (s *Server) deleteRecipe(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	actor, _ := currentUser(r)
	if err := s.Recipes.Delete(r.Context(), actor, id); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
