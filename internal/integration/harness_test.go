package integration

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sir_venger/foodgram/internal/app/mediahttp"
	"github.com/sir_venger/foodgram/internal/app/resthttp"
	"github.com/sir_venger/foodgram/internal/config"
	"github.com/sir_venger/foodgram/internal/models"
	"github.com/sir_venger/foodgram/internal/repo/users"
)

const (
	ingredientsCSV = "name,measurement_unit\nмолоко,мл\nмука,г\nяйца,шт\n"
	tagsYAML       = `
- name: Завтрак
  color: "#E26C2D"
  slug: breakfast
- name: Ужин
  color: "#8775D2"
  slug: dinner
`
)

// stack REST-сервис поверх SQLite и набора медиа-узлов.
type stack struct {
	t     *testing.T
	rest  *httptest.Server
	srv   *resthttp.Server
	nodes []*httptest.Server
}

// newMediaNode поднимает медиа-узел над временным каталогом.
func newMediaNode(t *testing.T) (*httptest.Server, string) {
	t.Helper()
	dir := t.TempDir()
	node := httptest.NewServer(mediahttp.New(mediahttp.Options{DataDir: dir, Log: zap.NewNop()}))
	t.Cleanup(node.Close)
	return node, dir
}

func newStack(t *testing.T, nodeURLs ...string) *stack {
	t.Helper()
	ctx := context.Background()

	cfg := config.Default()
	cfg.DBDSN = "sqlite://" + filepath.Join(t.TempDir(), "foodgram.db")
	cfg.Auth.Secret = "integration-secret-0123456789"
	cfg.Media.Dir = t.TempDir()
	cfg.Media.Nodes = nodeURLs
	require.NoError(t, cfg.Validate())

	h, srv, err := resthttp.NewServer(ctx, cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = srv.Close() })
	require.NoError(t, srv.DB.ApplyMigrations(ctx))

	_, err = srv.Catalog.ImportIngredients(ctx, strings.NewReader(ingredientsCSV))
	require.NoError(t, err)
	_, err = srv.Catalog.ImportTags(ctx, strings.NewReader(tagsYAML))
	require.NoError(t, err)

	rest := httptest.NewServer(h)
	t.Cleanup(rest.Close)

	return &stack{t: t, rest: rest, srv: srv}
}

func (s *stack) call(method, path, token string, body any) (int, []byte) {
	s.t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(s.t, err)
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, s.rest.URL+path, rd)
	require.NoError(s.t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(s.t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(s.t, err)
	return resp.StatusCode, out
}

func (s *stack) signup(name string) string {
	s.t.Helper()

	code, body := s.call(http.MethodPost, "/api/users/", "", map[string]string{
		"email": name + "@example.com", "username": name,
		"first_name": name, "last_name": "Integration", "password": "Sup3r-secret",
	})
	require.Equal(s.t, http.StatusCreated, code, string(body))

	code, body = s.call(http.MethodPost, "/api/auth/token/login", "", map[string]string{
		"email": name + "@example.com", "password": "Sup3r-secret",
	})
	require.Equal(s.t, http.StatusOK, code, string(body))
	var tok struct {
		AuthToken string `json:"auth_token"`
	}
	require.NoError(s.t, json.Unmarshal(body, &tok))
	return tok.AuthToken
}

func (s *stack) promote(name string) {
	s.t.Helper()
	require.NoError(s.t, users.New(s.srv.DB).SetAdmin(context.Background(), name+"@example.com", true))
}

func (s *stack) catalog() ([]models.Tag, []models.Ingredient) {
	s.t.Helper()
	ctx := context.Background()
	tags, err := s.srv.Catalog.Tags(ctx)
	require.NoError(s.t, err)
	ingredients, err := s.srv.Catalog.Ingredients(ctx, "")
	require.NoError(s.t, err)
	return tags, ingredients
}

func imageDataURL(payload string) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("\x89PNG\r\n\x1a\n"+payload))
}

func (s *stack) recipeBody(name, payload string) map[string]any {
	tags, ingredients := s.catalog()
	return map[string]any{
		"name":         name,
		"text":         "Смешать и запечь.",
		"cooking_time": 15,
		"image":        imageDataURL(payload),
		"tags":         []int64{tags[0].ID},
		"ingredients": []map[string]any{
			{"id": ingredients[0].ID, "amount": 250},
			{"id": ingredients[1].ID, "amount": 100},
		},
	}
}
