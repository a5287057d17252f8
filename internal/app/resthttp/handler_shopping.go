package resthttp

import (
	"net/http"
	"strconv"
)

func (s *Server) downloadShoppingCart(w http.ResponseWriter, r *http.Request) {
	u, _ := currentUser(r)
	file, err := s.Recipes.ShoppingList(r.Context(), u)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename="+file.Filename)
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Body)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(file.Body)
}
