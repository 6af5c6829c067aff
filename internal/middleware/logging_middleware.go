package middleware

import (
	"strings"
	"time"

	"loot-currency/internal/pkg/log"

	"github.com/labstack/echo/v4"
)

// LoggingConfig 日志配置
type LoggingConfig struct {
	// SkipPaths 跳过日志记录的路径
	SkipPaths []string

	// LogQuery 是否记录查询串
	LogQuery bool
}

// DefaultLoggingConfig 默认日志配置
func DefaultLoggingConfig() *LoggingConfig {
	return &LoggingConfig{
		SkipPaths: []string{
			"/health",
			"/metrics",
			"/swagger",
			"/favicon.ico",
		},
		LogQuery: true,
	}
}

// LoggingMiddleware 日志中间件
func LoggingMiddleware(logger log.Logger) echo.MiddlewareFunc {
	return LoggingMiddlewareWithConfig(logger, DefaultLoggingConfig())
}

// LoggingMiddlewareWithConfig 带配置的日志中间件
// trace_id 由 log 的 ContextHandler 从 context 中补充
func LoggingMiddlewareWithConfig(logger log.Logger, config *LoggingConfig) echo.MiddlewareFunc {
	if config == nil {
		config = DefaultLoggingConfig()
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if shouldSkip(req.URL.Path, config.SkipPaths) {
				return next(c)
			}

			start := time.Now()
			ctx := req.Context()

			fields := []any{
				log.String("method", req.Method),
				log.String("path", req.URL.Path),
				log.String("client_ip", c.RealIP()),
			}
			if config.LogQuery && req.URL.RawQuery != "" {
				fields = append(fields, log.String("query", req.URL.RawQuery))
			}

			logger.DebugContext(ctx, "请求开始", fields...)

			err := next(c)

			statusCode := c.Response().Status
			fields = append(fields,
				log.Int("status_code", statusCode),
				log.Duration("duration_ms", time.Since(start).Milliseconds()),
				log.Int64("response_size", c.Response().Size),
			)

			switch {
			case err != nil:
				fields = append(fields, log.Any("error", err))
				logger.ErrorContext(ctx, "请求处理出错", fields...)
			case statusCode >= 500:
				logger.ErrorContext(ctx, "请求完成（服务器错误）", fields...)
			case statusCode >= 400:
				logger.WarnContext(ctx, "请求完成（客户端错误）", fields...)
			default:
				logger.InfoContext(ctx, "请求完成", fields...)
			}

			return err
		}
	}
}

// shouldSkip 检查是否应该跳过日志记录
func shouldSkip(path string, skipPaths []string) bool {
	for _, skipPath := range skipPaths {
		if strings.HasPrefix(path, skipPath) {
			return true
		}
	}
	return false
}
