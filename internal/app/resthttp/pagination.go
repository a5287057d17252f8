package resthttp

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/sir_venger/foodgram/internal/config"
	"github.com/sir_venger/foodgram/internal/models"
	"github.com/sir_venger/foodgram/pkg/httperrors"
)

// pageParams номер страницы (с 1) и её размер.
type pageParams struct {
	page  int
	limit int
}

func (p pageParams) offset() int {
	return (p.page - 1) * p.limit
}

var errInvalidPage = fmt.Errorf("invalid page: %w", models.ErrNotFound)

// parsePage читает page и limit. Неверный page: 404, неверный limit заменяется размером по умолчанию.
func (s *Server) parsePage(r *http.Request) (pageParams, error) {
	q := r.URL.Query()
	p := pageParams{page: 1, limit: s.Cfg.HTTP.PageSize}

	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return pageParams{}, errInvalidPage
		}
		p.page = n
	}
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			p.limit = min(n, config.MaxPageSize)
		}
	}
	return p, nil
}

// writePage отвечает страницей {count,next,previous,results}. Страница за концом списка: 404.
func writePage[T any](s *Server, w http.ResponseWriter, r *http.Request, p pageParams, items []T, count int) {
	if p.page > 1 && p.offset() >= count {
		s.fail(w, r, errInvalidPage)
		return
	}
	if items == nil {
		items = []T{}
	}

	page := models.Page[T]{Count: count, Results: items}
	if p.offset()+len(items) < count {
		next := pageURL(r, p.page+1)
		page.Next = &next
	}
	if p.page > 1 {
		prev := pageURL(r, p.page-1)
		page.Previous = &prev
	}
	httperrors.JSON(w, http.StatusOK, page)
}

// pageURL абсолютный адрес той же выборки на странице page.
func pageURL(r *http.Request, page int) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if fwd := r.Header.Get("X-Forwarded-Proto"); fwd != "" {
		scheme = fwd
	}

	q := r.URL.Query()
	if page == 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(page))
	}

	u := url.URL{Scheme: scheme, Host: r.Host, Path: r.URL.Path, RawQuery: q.Encode()}
	return u.String()
}
