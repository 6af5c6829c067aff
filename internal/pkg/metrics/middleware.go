// File: internal/pkg/metrics/middleware.go
package metrics

import (
	"errors"
	"net/http"
	"time"

	"loot-currency/internal/pkg/ctxkey"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HeaderRoutePattern 回写匹配到的路由模板，便于排查指标标签
const HeaderRoutePattern = "X-Route-Pattern"

// Middleware Echo 中间件 - 记录请求数、延迟和进行中的请求数
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if IsHealthCheckEndpoint(req.URL.Path) {
				return next(c)
			}

			// 将 HTTP 方法存储到 context
			ctx := ctxkey.WithValue(req.Context(), ctxkey.HTTPMethod, req.Method)
			c.SetRequest(req.WithContext(ctx))

			m := DefaultHTTPMetrics
			service := GetServiceName()
			route := c.Path()
			c.Response().Header().Set(HeaderRoutePattern, NormalizeRoute(route))

			m.IncInProgress(service)
			start := time.Now()

			err := next(c)

			m.DecInProgress(service)
			m.RecordRequest(service, route, req.Method, statusFor(c, err), time.Since(start))
			return err
		}
	}
}

// statusFor 错误还没有被写出时，从错误中推断状态码
func statusFor(c echo.Context, err error) int {
	if err != nil && !c.Response().Committed {
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			return httpErr.Code
		}
		return http.StatusInternalServerError
	}
	return c.Response().Status
}

// Handler 返回 Prometheus metrics HTTP 处理器
func Handler() http.Handler {
	return promhttp.Handler()
}

// EchoHandler Echo 框架的 Prometheus metrics 处理器
func EchoHandler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.Handler())
}
