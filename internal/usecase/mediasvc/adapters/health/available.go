package health

import (
	"context"
	"sort"
	"time"

	"github.com/sir_venger/foodgram/pkg/mediaproto"
)

// Checker опрашивает /health медиа-узла.
type Checker interface {
	Health(ctx context.Context, baseURL string) (mediaproto.Health, error)
}

const checkTimeout = 2 * time.Second

// Adapter определяет готовность медиа-узлов по их health-эндпоинтам.
type Adapter struct {
	Checker Checker
	// MaxNodeBytes узлы с большим объёмом данных не получают новых файлов; 0: без ограничения.
	MaxNodeBytes int64
}

// NewAdapter инициализирует адаптер доступности.
func NewAdapter(c Checker, maxBytes int64) *Adapter {
	return &Adapter{Checker: c, MaxNodeBytes: maxBytes}
}

// Available возвращает готовые узлы, наименее загруженные первыми.
func (a *Adapter) Available(ctx context.Context, nodes []string) []string {
	if len(nodes) == 0 {
		return nil
	}

	type candidate struct {
		base string
		load int64
	}

	ready := make([]candidate, 0, len(nodes))
	for _, base := range nodes {
		hctx, cancel := context.WithTimeout(ctx, checkTimeout)
		info, err := a.Checker.Health(hctx, base)
		cancel()
		if err != nil || !info.OK {
			continue
		}
		if a.MaxNodeBytes > 0 && info.TotalBytes > a.MaxNodeBytes {
			continue
		}
		ready = append(ready, candidate{base: base, load: info.TotalBytes})
	}

	sort.SliceStable(ready, func(i, j int) bool {
		return ready[i].load < ready[j].load
	})

	result := make([]string, len(ready))
	for i, c := range ready {
		result[i] = c.base
	}
	return result
}
