package loggingmw

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/ecommerce_hub/pkg/logging"
)

func lines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, ln := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if ln == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(ln), &m))
		out = append(out, m)
	}
	return out
}

func TestRequestLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	e := echo.New()
	e.Use(echomw.RequestID())
	e.Use(RequestLogger(logging.NewWithWriter("debug", &buf)))
	e.GET("/products/:sku", func(c echo.Context) error {
		logging.FromContext(c.Request().Context()).Info("handler_ran")
		if c.Param("sku") == "missing" {
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		return c.String(http.StatusOK, "ok")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products/A-1", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products/missing", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	got := lines(t, &buf)
	require.Len(t, got, 4)

	assert.Equal(t, "handler_ran", got[0]["msg"])
	assert.NotEmpty(t, got[0]["request_id"])
	assert.Equal(t, "/products/:sku", got[0]["path"])

	assert.Equal(t, "request_completed", got[1]["msg"])
	assert.Equal(t, "INFO", got[1]["level"])
	assert.EqualValues(t, 200, got[1]["status"])

	assert.Equal(t, "WARN", got[3]["level"])
	assert.EqualValues(t, 404, got[3]["status"])
}
