package resthttp

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/sir_venger/foodgram/pkg/httperrors"
)

type healthResp struct {
	OK bool `json:"ok"`
}

// health проверяет доступность базы.
func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.DB.PingContext(ctx); err != nil {
		s.Log.Warn("health: db ping", zap.Error(err))
		httperrors.JSON(w, http.StatusServiceUnavailable, healthResp{OK: false})
		return
	}
	httperrors.JSON(w, http.StatusOK, healthResp{OK: true})
}
