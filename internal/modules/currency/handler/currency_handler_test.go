package handler

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loot-currency/internal/modules/currency/service"
	"loot-currency/internal/pkg/log"
	"loot-currency/internal/pkg/metrics"
	"loot-currency/internal/pkg/response"
)

type constSource struct{ v int }

func (s constSource) IntRange(lo, hi int) int {
	if s.v < lo {
		return lo
	}
	if s.v > hi {
		return hi
	}
	return s.v
}

// setupCurrencyHandler 设置测试 Handler
func setupCurrencyHandler(t *testing.T, buf *bytes.Buffer) (*CurrencyHandler, *echo.Echo) {
	t.Helper()

	logger := log.NewLogger(slog.NewTextHandler(buf, nil))
	svc := service.NewCurrencyService(service.Dependencies{
		Generator: service.NewGenerator(constSource{v: 10}),
		Metrics:   metrics.NewLootMetricsWithRegistry("test", prometheus.NewRegistry()),
		Logger:    logger,
	})
	return NewCurrencyHandler(svc, response.DefaultResponseHandler(), logger), echo.New()
}

func TestCurrencyHandler_GenerateCurrency(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		expectedStatus int
		expectedBody   string
		expectedLog    string
	}{
		{
			name:           "成功生成",
			query:          "level=2&members=3",
			expectedStatus: http.StatusOK,
			// gold=10, silver=min(10,5)=5, copper=min(10,2)=2
			expectedBody: `{"coins":{"gp":30,"sp":15,"cp":6}}`,
			expectedLog:  "Generated currency",
		},
		{
			name:           "成功生成并合并",
			query:          "level=2&members=3&reduce=true",
			expectedStatus: http.StatusOK,
			expectedBody:   `{"coins":{"gp":31,"sp":5,"cp":6}}`,
			expectedLog:    "Generated currency",
		},
		{
			name:           "等级非法",
			query:          "level=25&members=3",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"Level must be between 1 and 20."}`,
			expectedLog:    "value=25",
		},
		{
			name:           "人数非法",
			query:          "level=2&members=8",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"Party members must be between 1 and 6."}`,
			expectedLog:    "field=members",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h, e := setupCurrencyHandler(t, &buf)

			req := httptest.NewRequest(http.MethodGet, "/generate_currency?"+tt.query, nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			require.NoError(t, h.GenerateCurrency(c))
			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.JSONEq(t, tt.expectedBody, rec.Body.String())

			out := buf.String()
			assert.Contains(t, out, "Received currency request")
			assert.Contains(t, out, tt.expectedLog)
		})
	}
}

func TestCurrencyHandler_Health(t *testing.T) {
	var buf bytes.Buffer
	h, e := setupCurrencyHandler(t, &buf)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, h.Health(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
