package mediasvc

import (
	"context"
	"strings"
	"sync"

	"github.com/sir_venger/foodgram/internal/models"
)

// NodeAdapter источник знаний о готовности медиа-узлов.
type NodeAdapter interface {
	Available(ctx context.Context, nodes []string) []string
}

// Router выбирает медиа-узел для записи очередной картинки.
type Router struct {
	mu          sync.Mutex
	configured  []string
	next        int
	NodeAdapter NodeAdapter
}

// NewRouter создаёт маршрутизатор с адаптером доступности.
func NewRouter(adapter NodeAdapter) *Router {
	return &Router{NodeAdapter: adapter}
}

// Set заменяет список узлов на новый.
func (r *Router) Set(nodes []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.configured = r.configured[:0]
	r.next = 0
	r.addLocked(nodes)
}

// Add добавляет новые узлы, игнорируя дубликаты и пустые значения.
func (r *Router) Add(nodes ...string) {
	if len(nodes) == 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.addLocked(nodes)
}

func (r *Router) addLocked(nodes []string) {
	known := make(map[string]struct{}, len(r.configured))
	for _, n := range r.configured {
		known[n] = struct{}{}
	}

	for _, node := range nodes {
		node = strings.TrimRight(strings.TrimSpace(node), "/")
		if node == "" {
			continue
		}
		if _, exists := known[node]; exists {
			continue
		}
		r.configured = append(r.configured, node)
		known[node] = struct{}{}
	}
}

// Nodes снимок настроенных узлов.
func (r *Router) Nodes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string{}, r.configured...)
}

// Owner узел, которому принадлежит адрес location, и имя файла на нём.
func (r *Router) Owner(location string) (node, name string, ok bool) {
	for _, n := range r.Nodes() {
		if rest, found := strings.CutPrefix(location, n+"/files/"); found && rest != "" {
			return n, rest, true
		}
	}
	return "", "", false
}

// Pick возвращает наименее загруженный готовый узел. Узлы с равной загрузкой
// выбираются по кругу: перед опросом список поворачивается на следующий старт.
func (r *Router) Pick(ctx context.Context) (string, error) {
	snapshot := r.Nodes()
	if len(snapshot) == 0 {
		return "", models.ErrNoMediaNode
	}

	r.mu.Lock()
	start := r.next % len(snapshot)
	r.next = start + 1
	r.mu.Unlock()

	rotated := make([]string, 0, len(snapshot))
	rotated = append(rotated, snapshot[start:]...)
	rotated = append(rotated, snapshot[:start]...)

	available := rotated
	if r.NodeAdapter != nil {
		available = r.NodeAdapter.Available(ctx, rotated)
	}
	if len(available) == 0 {
		return "", models.ErrNoMediaNode
	}
	return available[0], nil
}
