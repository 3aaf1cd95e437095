package httpserver

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/ecommerce_hub/pkg/httperror"
	"github.com/Skotchmaster/ecommerce_hub/pkg/logging"
)

type seen struct {
	Service string `json:"service"`
	Method  string `json:"method"`
	Path    string `json:"path"`
	Query   string `json:"query"`
	Auth    string `json:"auth"`
	Body    string `json:"body"`
}

func echoBackend(t *testing.T, name string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = json.NewEncoder(w).Encode(seen{
			Service: name,
			Method:  r.Method,
			Path:    r.URL.Path,
			Query:   r.URL.RawQuery,
			Auth:    r.Header.Get("Authorization"),
			Body:    string(body),
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newGateway(t *testing.T, authURL, catalogURL string) *echo.Echo {
	t.Helper()
	e := echo.New()
	e.HTTPErrorHandler = httperror.Handler
	require.NoError(t, Register(e, &Deps{AuthURL: authURL, CatalogURL: catalogURL, Logger: logging.Discard()}))
	return e
}

func TestRouting(t *testing.T) {
	t.Parallel()
	auth := echoBackend(t, "auth")
	catalog := echoBackend(t, "catalog")
	e := newGateway(t, auth.URL, catalog.URL)

	tests := []struct {
		method  string
		target  string
		service string
		path    string
	}{
		{http.MethodPost, "/api/auth/login", "auth", "/auth/login"},
		{http.MethodGet, "/api/products", "catalog", "/products"},
		{http.MethodGet, "/api/products/LAPTOP-001", "catalog", "/products/LAPTOP-001"},
		{http.MethodPut, "/api/products/LAPTOP-001", "catalog", "/products/LAPTOP-001"},
		{http.MethodDelete, "/api/products/LAPTOP-001", "catalog", "/products/LAPTOP-001"},
		{http.MethodGet, "/api/products/search?q=sony", "catalog", "/products/search"},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, strings.NewReader(`{"a":1}`))
			req.Header.Set(echo.HeaderAuthorization, "Bearer tok")
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			var got seen
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.Equal(t, tt.service, got.Service)
			assert.Equal(t, tt.method, got.Method)
			assert.Equal(t, tt.path, got.Path)
			assert.Equal(t, "Bearer tok", got.Auth)
			assert.Equal(t, `{"a":1}`, got.Body)
		})
	}

	req := httptest.NewRequest(http.MethodGet, "/api/products/search?q=sony", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	var got seen
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "q=sony", got.Query)
}

func TestUnknownRoute(t *testing.T) {
	t.Parallel()
	e := newGateway(t, "http://127.0.0.1:1", "http://127.0.0.1:1")

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/orders", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpstreamDown(t *testing.T) {
	t.Parallel()
	down := httptest.NewServer(http.NotFoundHandler())
	url := down.URL
	down.Close()

	e := newGateway(t, url, url)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/products", nil))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.JSONEq(t, `{"error":"backend unavailable"}`, rec.Body.String())
}

func TestBadUpstreamURL(t *testing.T) {
	t.Parallel()
	e := echo.New()
	err := Register(e, &Deps{AuthURL: "not a url", CatalogURL: "http://catalog:8080", Logger: logging.Discard()})
	assert.Error(t, err)
}
