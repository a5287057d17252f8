// Package httperrors переводит ошибки сервисов в HTTP-ответы с JSON-телом.
package httperrors

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sir_venger/foodgram/internal/models"
)

// conflicts доменные отказы: 400 {"errors": "..."}.
var conflicts = []error{
	models.ErrAlreadyExists,
	models.ErrNotExists,
	models.ErrSelfSubscribe,
	models.ErrEmptyCart,
	models.ErrInvalidCredentials,
}

// details ошибки доступа и отсутствия: {"detail": "..."}.
var details = []struct {
	err    error
	status int
}{
	{models.ErrUnauthorized, http.StatusUnauthorized},
	{models.ErrForbidden, http.StatusForbidden},
	{models.ErrNotFound, http.StatusNotFound},
	{models.ErrNoMediaNode, http.StatusServiceUnavailable},
}

// Write пишет ответ для err и возвращает выбранный статус.
// На 500 тело не раскрывает err; логировать его должен вызывающий.
func Write(w http.ResponseWriter, err error) int {
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		return JSON(w, http.StatusBadRequest, verr.Fields)
	}

	for _, c := range conflicts {
		if errors.Is(err, c) {
			return JSON(w, http.StatusBadRequest, map[string]string{"errors": c.Error()})
		}
	}
	for _, d := range details {
		if errors.Is(err, d.err) {
			return JSON(w, d.status, map[string]string{"detail": d.err.Error()})
		}
	}

	return JSON(w, http.StatusInternalServerError, map[string]string{"detail": "internal error"})
}

// JSON пишет v с заданным статусом.
func JSON(w http.ResponseWriter, status int, v any) int {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
	return status
}
