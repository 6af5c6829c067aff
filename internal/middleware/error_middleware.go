package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"loot-currency/internal/pkg/log"
	"loot-currency/internal/pkg/response"
	"loot-currency/internal/pkg/xerrors"

	"github.com/labstack/echo/v4"
)

// ErrorMiddleware 统一错误处理中间件
func ErrorMiddleware(respWriter response.Writer, logger log.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if err == nil || c.Response().Committed {
				return err
			}

			ctx := c.Request().Context()

			if appErr, ok := xerrors.As(err); ok {
				return respWriter.WriteError(ctx, c.Response(), appErr)
			}

			var httpErr *echo.HTTPError
			if errors.As(err, &httpErr) {
				return respWriter.WriteError(ctx, c.Response(), convertEchoError(httpErr))
			}

			// 其他未知错误，包装为系统错误
			appErr := xerrors.NewWithError(
				xerrors.CodeInternalError,
				xerrors.CodeInternalError.Message(),
				err,
			).WithService("echo-middleware", "error_handler")

			logger.ErrorContext(ctx, "未处理的错误",
				log.Any("original_error", err),
				log.String("error_type", fmt.Sprintf("%T", err)),
			)

			return respWriter.WriteError(ctx, c.Response(), appErr)
		}
	}
}

// convertEchoError 将 Echo 错误转换为业务错误
func convertEchoError(echoErr *echo.HTTPError) *xerrors.AppError {
	var code xerrors.ErrorCode
	switch echoErr.Code {
	case http.StatusBadRequest:
		code = xerrors.CodeInvalidRequest
	case http.StatusNotFound:
		code = xerrors.CodeResourceNotFound
	case http.StatusMethodNotAllowed:
		code = xerrors.CodeMethodNotAllowed
	default:
		return xerrors.FromCode(xerrors.CodeInternalError).
			WithMetadata("echo_code", echoErr.Code).
			WithMetadata("echo_message", fmt.Sprintf("%v", echoErr.Message))
	}
	return xerrors.FromCode(code).
		WithMetadata("echo_message", fmt.Sprintf("%v", echoErr.Message))
}
