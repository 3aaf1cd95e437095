package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	pkgdb "github.com/Skotchmaster/ecommerce_hub/pkg/db"
	"github.com/Skotchmaster/ecommerce_hub/pkg/httperror"
	"github.com/Skotchmaster/ecommerce_hub/pkg/tokens"
	"github.com/Skotchmaster/ecommerce_hub/services/catalog/internal/httpserver"
	"github.com/Skotchmaster/ecommerce_hub/services/catalog/internal/repo"
	"github.com/Skotchmaster/ecommerce_hub/services/catalog/internal/service"
)

var jwtSecret = []byte("catalog-test-secret")

type testEnv struct {
	T   *testing.T
	E   *echo.Echo
	Svc *service.CatalogService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := pkgdb.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = pkgdb.Close(db) })

	r := &repo.GormRepo{DB: db}
	require.NoError(t, r.Migrate(context.Background()))

	svc := &service.CatalogService{Repo: r}
	_, err = svc.Seed(context.Background())
	require.NoError(t, err)

	e := echo.New()
	e.HTTPErrorHandler = httperror.Handler
	httpserver.Register(e, &httpserver.Deps{
		CatalogHandler: &httpserver.CatalogHTTP{Svc: svc},
		JWTSecret:      jwtSecret,
	})

	return &testEnv{T: t, E: e, Svc: svc}
}

func token(t *testing.T, role string) string {
	t.Helper()
	tok, err := tokens.NewAccessToken(jwtSecret, "user-"+role, role, role+"@example.com", time.Now().Add(time.Hour))
	require.NoError(t, err)
	return tok
}

func (env *testEnv) do(method, path string, body any, bearer string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if bearer != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}
