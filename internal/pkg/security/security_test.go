package security

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func newTestServer() *echo.Echo {
	e := echo.New()
	e.Use(CORSMiddleware())
	e.Use(SecurityHeadersMiddleware())
	e.GET("/generate_currency", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	return e
}

func TestCORS_AnyOrigin(t *testing.T) {
	e := newTestServer()

	for _, origin := range []string{"http://localhost:5173", "https://example.org"} {
		req := httptest.NewRequest(http.MethodGet, "/generate_currency", nil)
		req.Header.Set(echo.HeaderOrigin, origin)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "*", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	}
}

func TestCORS_NoOriginHeader(t *testing.T) {
	e := newTestServer()

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/generate_currency", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
}

func TestCORS_RestrictedOriginsUnchanged(t *testing.T) {
	e := echo.New()
	e.Use(CORSMiddlewareWithConfig(CORSConfig{
		AllowOrigins: []string{"https://example.org"},
		AllowMethods: []string{http.MethodGet},
	}))
	e.GET("/generate_currency", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/generate_currency", nil))

	assert.Empty(t, rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
}

func TestCORS_Preflight(t *testing.T) {
	e := newTestServer()

	req := httptest.NewRequest(http.MethodOptions, "/generate_currency", nil)
	req.Header.Set(echo.HeaderOrigin, "http://localhost:8000")
	req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodGet)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	assert.Contains(t, rec.Header().Get(echo.HeaderAccessControlAllowMethods), http.MethodGet)
}

func TestSecurityHeaders(t *testing.T) {
	e := newTestServer()

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/generate_currency", nil))

	assert.Equal(t, "nosniff", rec.Header().Get(echo.HeaderXContentTypeOptions))
	assert.Equal(t, "DENY", rec.Header().Get(echo.HeaderXFrameOptions))
}
