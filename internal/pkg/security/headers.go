package security

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// SecurityHeadersConfig 安全头配置
type SecurityHeadersConfig struct {
	XSSProtection      string
	ContentTypeNosniff string
	XFrameOptions      string
}

// DefaultSecurityHeadersConfig 返回默认的安全头配置
// 不设置 CSP，否则 swagger 页面的内联脚本会被拦截
func DefaultSecurityHeadersConfig() SecurityHeadersConfig {
	return SecurityHeadersConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
	}
}

// SecurityHeadersMiddleware 安全头中间件
func SecurityHeadersMiddleware() echo.MiddlewareFunc {
	return SecurityHeadersMiddlewareWithConfig(DefaultSecurityHeadersConfig())
}

// SecurityHeadersMiddlewareWithConfig 使用自定义配置的安全头中间件
func SecurityHeadersMiddlewareWithConfig(config SecurityHeadersConfig) echo.MiddlewareFunc {
	return middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:      config.XSSProtection,
		ContentTypeNosniff: config.ContentTypeNosniff,
		XFrameOptions:      config.XFrameOptions,
	})
}
