package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func corsEcho(origins ...string) *echo.Echo {
	cfg := DefaultCORSConfig
	if len(origins) > 0 {
		cfg.AllowOrigins = origins
	}
	e := echo.New()
	e.Use(CORS(cfg))
	e.Any("/api/scans", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	return e
}

func TestCORSPreflight(t *testing.T) {
	e := corsEcho("https://dash.example.com")

	req := httptest.NewRequest(http.MethodOptions, "/api/scans", nil)
	req.Header.Set(echo.HeaderOrigin, "https://dash.example.com")
	req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodPost)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://dash.example.com", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	assert.Contains(t, rec.Header().Get(echo.HeaderAccessControlAllowMethods), http.MethodPut)
	assert.Equal(t, "600", rec.Header().Get(echo.HeaderAccessControlMaxAge))
}

func TestCORSSimpleRequest(t *testing.T) {
	e := corsEcho()

	req := httptest.NewRequest(http.MethodGet, "/api/scans", nil)
	req.Header.Set(echo.HeaderOrigin, "https://any.example.com")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	assert.Contains(t, rec.Header().Get(echo.HeaderAccessControlExposeHeaders), echo.HeaderRetryAfter)
}

func TestCORSRejectsUnknownOrigin(t *testing.T) {
	e := corsEcho("https://dash.example.com")

	req := httptest.NewRequest(http.MethodGet, "/api/scans", nil)
	req.Header.Set(echo.HeaderOrigin, "https://evil.example.com")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
}
