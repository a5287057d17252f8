package resthttp

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sir_venger/foodgram/internal/config"
	"github.com/sir_venger/foodgram/internal/models"
	"github.com/sir_venger/foodgram/internal/repo/catalog"
	"github.com/sir_venger/foodgram/internal/repo/repotest"
	"github.com/sir_venger/foodgram/internal/repo/users"
)

var pngImage = "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("\x89PNG\r\n\x1a\nrest-test"))

type testServer struct {
	t           *testing.T
	h           http.Handler
	srv         *Server
	users       *users.Store
	tags        []models.Tag
	ingredients []models.Ingredient
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ctx := context.Background()
	db := repotest.Open(t)

	cfg := config.Default()
	cfg.DBDSN = "sqlite://test"
	cfg.Auth.Secret = "test-secret-0123456789"
	cfg.Media.Dir = t.TempDir()

	srv := buildServer(cfg, zap.NewNop(), db)
	t.Cleanup(srv.stopSweep)

	cs := catalog.New(db)
	_, err := cs.InsertTags(ctx, []models.Tag{
		{Name: "Завтрак", Color: "#E26C2D", Slug: "breakfast"},
		{Name: "Ужин", Color: "#8775D2", Slug: "dinner"},
	})
	require.NoError(t, err)
	_, err = cs.InsertIngredients(ctx, []models.Ingredient{
		{Name: "молоко", MeasurementUnit: "мл"},
		{Name: "мука", MeasurementUnit: "г"},
		{Name: "яйца", MeasurementUnit: "шт"},
	})
	require.NoError(t, err)
	tags, err := cs.ListTags(ctx)
	require.NoError(t, err)
	ingredients, err := cs.ListIngredients(ctx, "")
	require.NoError(t, err)

	return &testServer{
		t:           t,
		h:           srv.routes(),
		srv:         srv,
		users:       users.New(db),
		tags:        tags,
		ingredients: ingredients,
	}
}

// do выполняет запрос; body сериализуется в JSON, если это не строка.
func (ts *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	ts.t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(ts.t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}
	rec := httptest.NewRecorder()
	ts.h.ServeHTTP(rec, req)
	return rec
}

// signup регистрирует пользователя и возвращает его id и токен.
func (ts *testServer) signup(name string) (int64, string) {
	ts.t.Helper()

	rec := ts.do(http.MethodPost, "/api/users/", "", map[string]string{
		"email":      name + "@example.com",
		"username":   name,
		"first_name": name,
		"last_name":  "Tester",
		"password":   "Sup3r-secret",
	})
	require.Equal(ts.t, http.StatusCreated, rec.Code, rec.Body.String())
	var created struct {
		ID int64 `json:"id"`
	}
	decode(ts.t, rec, &created)

	rec = ts.do(http.MethodPost, "/api/auth/token/login", "", map[string]string{
		"email":    name + "@example.com",
		"password": "Sup3r-secret",
	})
	require.Equal(ts.t, http.StatusOK, rec.Code, rec.Body.String())
	var tok tokenResp
	decode(ts.t, rec, &tok)
	require.NotEmpty(ts.t, tok.AuthToken)

	return created.ID, tok.AuthToken
}

func (ts *testServer) recipeBody(name string, tagIdx ...int) map[string]any {
	tags := make([]int64, 0, len(tagIdx))
	for _, i := range tagIdx {
		tags = append(tags, ts.tags[i].ID)
	}
	return map[string]any{
		"name":         name,
		"text":         "Смешать и запечь.",
		"cooking_time": 20,
		"image":        pngImage,
		"tags":         tags,
		"ingredients": []map[string]any{
			{"id": ts.ingredients[0].ID, "amount": 200},
			{"id": ts.ingredients[2].ID, "amount": 2},
		},
	}
}

func (ts *testServer) createRecipe(token, name string, tagIdx ...int) models.Recipe {
	ts.t.Helper()
	rec := ts.do(http.MethodPost, "/api/recipes/", token, ts.recipeBody(name, tagIdx...))
	require.Equal(ts.t, http.StatusCreated, rec.Code, rec.Body.String())
	var r models.Recipe
	decode(ts.t, rec, &r)
	return r
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}
