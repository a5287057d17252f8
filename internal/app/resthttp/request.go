package resthttp

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sir_venger/foodgram/internal/models"
)

// decodeJSON разбирает тело запроса; сломанный JSON: ошибка валидации.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	limit := 1<<20 + 2*s.Cfg.Media.MaxImageBytes
	body := http.MaxBytesReader(w, r.Body, limit)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		return models.NewValidationError("non_field_errors", fmt.Sprintf("Invalid JSON body: %v.", err))
	}
	return nil
}

// idParam положительный числовой {id}; иначе ErrNotFound.
func idParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, models.ErrNotFound
	}
	return id, nil
}

// intQuery неотрицательное число из query; пустое значение: def.
func intQuery(r *http.Request, key string, def int) (int, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, models.NewValidationError(key, "A valid non-negative integer is required.")
	}
	return n, nil
}

// boolQuery "1"/"true": истина.
func boolQuery(r *http.Request, key string) bool {
	switch r.URL.Query().Get(key) {
	case "1", "true", "True":
		return true
	}
	return false
}
