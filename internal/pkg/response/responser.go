package response

import (
	"context"
	"encoding/json"
	"net/http"

	"loot-currency/internal/pkg/log"
	"loot-currency/internal/pkg/xerrors"
)

// ErrorBody 失败响应体
type ErrorBody struct {
	Error string `json:"error" example:"Level must be between 1 and 20."`
}

// Writer 统一的响应输出
type Writer interface {
	WriteSuccess(ctx context.Context, w http.ResponseWriter, data any) error
	WriteError(ctx context.Context, w http.ResponseWriter, err error) error
	WriteJSON(ctx context.Context, w http.ResponseWriter, data any, statusCode int) error
}

// ResponseHandler Writer 的默认实现
type ResponseHandler struct {
	logger log.Logger
}

// NewResponseHandler 创建响应处理器
func NewResponseHandler(logger log.Logger) *ResponseHandler {
	return &ResponseHandler{logger: logger}
}

// DefaultResponseHandler 测试和工具中使用
func DefaultResponseHandler() *ResponseHandler {
	return NewResponseHandler(log.Discard())
}

// WriteSuccess 200 + 数据本身
func (h *ResponseHandler) WriteSuccess(ctx context.Context, w http.ResponseWriter, data any) error {
	return h.WriteJSON(ctx, w, data, http.StatusOK)
}

// WriteError 将错误转换为 {"error": "..."} 输出
func (h *ResponseHandler) WriteError(ctx context.Context, w http.ResponseWriter, err error) error {
	appErr, ok := xerrors.As(err)
	if !ok {
		appErr = xerrors.NewWithError(xerrors.CodeInternalError, xerrors.CodeInternalError.Message(), err)
	}

	status := appErr.HTTPStatus()
	if status >= http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, "请求处理失败", log.Any("app_error", appErr))
	}

	return h.WriteJSON(ctx, w, ErrorBody{Error: appErr.Message}, status)
}

// WriteJSON 直接输出 JSON
func (h *ResponseHandler) WriteJSON(ctx context.Context, w http.ResponseWriter, data any, statusCode int) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		// header 已写出，只能记录日志
		h.logger.ErrorContext(ctx, "写入JSON响应失败", log.Any("error", err))
		return err
	}
	return nil
}
