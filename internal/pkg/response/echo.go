// File: internal/pkg/response/echo.go
package response

import "github.com/labstack/echo/v4"

// Echo 框架适配器 - 简化 Echo Handler 中的响应处理
// 使用 c.Response() 而不是底层 Writer，保证 echo 能记录状态码和响应大小

// EchoOK Echo 成功响应
func EchoOK[T any](c echo.Context, h Writer, data T) error {
	return h.WriteSuccess(c.Request().Context(), c.Response(), data)
}

// EchoError Echo 错误响应
func EchoError(c echo.Context, h Writer, err error) error {
	return h.WriteError(c.Request().Context(), c.Response(), err)
}
