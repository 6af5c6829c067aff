package trace

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractFromHeader(t *testing.T) {
	tests := []struct {
		name     string
		headers  map[string][]string
		expected string
	}{
		{
			name:     "优先使用 X-Trace-Id",
			headers:  map[string][]string{"X-Trace-Id": {"trace-a"}, "X-Request-Id": {"req-b"}},
			expected: "trace-a",
		},
		{
			name:     "忽略大小写读取 X-Request-Id",
			headers:  map[string][]string{"x-request-id": {"req-b"}},
			expected: "req-b",
		},
		{
			name:     "解析 W3C Traceparent",
			headers:  map[string][]string{"Traceparent": {"00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01"}},
			expected: "4bf92f3577b34da6a3ce929d0e0e4736",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractFromHeader(tt.headers))
		})
	}
}

func TestExtractFromHeader_GeneratesWhenMissing(t *testing.T) {
	id := ExtractFromHeader(map[string][]string{"Traceparent": {"garbage"}})
	assert.Len(t, id, 32)
	assert.NotContains(t, id, "-")
	assert.NotEqual(t, id, GenerateTraceID())
}

func TestMiddleware_SetsContextAndHeader(t *testing.T) {
	e := echo.New()
	e.Use(Middleware())

	var seen string
	e.GET("/ping", func(c echo.Context) error {
		seen = GetTraceID(c.Request().Context())
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Trace-Id", "fixed-trace")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "fixed-trace", seen)
	assert.Equal(t, "fixed-trace", rec.Header().Get(HeaderTraceID))
	assert.Empty(t, GetTraceID(context.Background()))
}
