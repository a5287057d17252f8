package resthttp

import (
	"net/http"

	"github.com/sir_venger/foodgram/internal/models"
	"github.com/sir_venger/foodgram/pkg/httperrors"
)

type addNodesRequest struct {
	Nodes []string `json:"nodes"`
}

// adminConfig текущая конфигурация без секретов.
func (s *Server) adminConfig(w http.ResponseWriter, _ *http.Request) {
	httperrors.JSON(w, http.StatusOK, s.Cfg)
}

// addMediaNodes подключает новые медиа-узлы без перезапуска.
func (s *Server) addMediaNodes(w http.ResponseWriter, r *http.Request) {
	if len(s.Cfg.Media.Nodes) == 0 {
		s.fail(w, r, models.NewValidationError("nodes", "Images are stored locally; media nodes are not in use."))
		return
	}

	var payload addNodesRequest
	if err := s.decodeJSON(w, r, &payload); err != nil {
		s.fail(w, r, err)
		return
	}
	if len(payload.Nodes) == 0 {
		s.fail(w, r, models.NewValidationError("nodes", "This list may not be empty."))
		return
	}

	s.Media.AddNodes(payload.Nodes...)
	w.WriteHeader(http.StatusNoContent)
}
