package middleware

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loot-currency/internal/pkg/log"
	"loot-currency/internal/pkg/response"
	"loot-currency/internal/pkg/xerrors"
)

func newTestEcho(logger log.Logger) *echo.Echo {
	e := echo.New()
	rw := response.NewResponseHandler(logger)
	e.Use(LoggingMiddleware(logger))
	e.Use(ErrorMiddleware(rw, logger))
	e.Use(RecoveryMiddleware(rw, logger))
	return e
}

func serve(e *echo.Echo, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestErrorMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		handlerErr error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "业务错误",
			handlerErr: xerrors.NewInvalidLevelError("0"),
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Level must be between 1 and 20."}`,
		},
		{
			name:       "包装后的业务错误",
			handlerErr: errors.Join(xerrors.NewInvalidPartySizeError("7")),
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Party members must be between 1 and 6."}`,
		},
		{
			name:       "Echo 404",
			handlerErr: echo.ErrNotFound,
			wantStatus: http.StatusNotFound,
			wantBody:   `{"error":"Not found."}`,
		},
		{
			name:       "Echo 405",
			handlerErr: echo.ErrMethodNotAllowed,
			wantStatus: http.StatusMethodNotAllowed,
			wantBody:   `{"error":"Method not allowed."}`,
		},
		{
			name:       "未知错误",
			handlerErr: errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"Internal server error."}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEcho(log.Discard())
			e.GET("/fail", func(c echo.Context) error { return tt.handlerErr })

			rec := serve(e, "/fail")

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestErrorMiddleware_UnknownRoute(t *testing.T) {
	e := newTestEcho(log.Discard())
	e.GET("/generate_currency", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	rec := serve(e, "/nope")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Not found."}`, rec.Body.String())
}

func TestRecoveryMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewLogger(slog.NewTextHandler(&buf, nil))
	e := newTestEcho(logger)
	e.GET("/panic", func(c echo.Context) error { panic("dice fell off the table") })

	rec := serve(e, "/panic")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Internal server error."}`, rec.Body.String())
	assert.Contains(t, buf.String(), "dice fell off the table")
}

func TestLoggingMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewLogger(slog.NewTextHandler(&buf, nil))

	e := newTestEcho(logger)
	e.GET("/generate_currency", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"ok": "yes"})
	})
	e.GET("/health", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	rec := serve(e, "/generate_currency?level=1&members=1")
	require.Equal(t, http.StatusOK, rec.Code)

	out := buf.String()
	assert.Contains(t, out, "level=INFO")
	assert.Contains(t, out, "path=/generate_currency")
	assert.Contains(t, out, "status_code=200")
	assert.Contains(t, out, `query="level=1&members=1"`)

	buf.Reset()
	serve(e, "/health")
	assert.Empty(t, buf.String())
}

func TestLoggingMiddleware_ClientErrorIsWarn(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewLogger(slog.NewTextHandler(&buf, nil))

	e := newTestEcho(logger)
	e.GET("/generate_currency", func(c echo.Context) error {
		return xerrors.NewInvalidLevelError("abc")
	})

	serve(e, "/generate_currency?level=abc")

	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "status_code=400")
}

func TestShouldSkip(t *testing.T) {
	skip := DefaultLoggingConfig().SkipPaths
	assert.True(t, shouldSkip("/health", skip))
	assert.True(t, shouldSkip("/swagger/index.html", skip))
	assert.False(t, shouldSkip("/generate_currency", skip))
}
