// File: internal/pkg/xerrors/codes.go
package xerrors

import (
	"fmt"
	"net/http"
)

// ErrorCode 错误码类型（类型安全）
type ErrorCode int

// String 返回错误码的字符串表示
func (c ErrorCode) String() string {
	if msg, ok := codeMessages[c]; ok {
		return fmt.Sprintf("%d (%s)", c, msg)
	}
	return fmt.Sprintf("%d (未定义的错误码)", c)
}

// Message 返回错误码对应的消息
func (c ErrorCode) Message() string {
	if msg, ok := codeMessages[c]; ok {
		return msg
	}
	return codeMessages[CodeInternalError]
}

// ToInt 转换为 int（用于 JSON 序列化等场景）
func (c ErrorCode) ToInt() int {
	return int(c)
}

// -----------------------------------------------------------------------------
// 业务错误码统一定义
// 按模块或领域对错误码进行分段，便于管理。
// -----------------------------------------------------------------------------
const (
	// 1xxxxx: 通用错误码
	CodeSuccess          ErrorCode = 100000 // 操作成功
	CodeInternalError    ErrorCode = 100001 // 内部服务错误
	CodeInvalidParams    ErrorCode = 100002 // 参数错误
	CodeInvalidRequest   ErrorCode = 100003 // 请求格式错误
	CodeResourceNotFound ErrorCode = 100404 // 资源不存在
	CodeMethodNotAllowed ErrorCode = 100405 // 请求方法不被允许

	// 7xxxxx: 外部服务错误码
	CodeMessageQueueError ErrorCode = 700005 // 消息队列错误

	// 8xxxxx: 游戏业务错误码
	// 掉落相关 (83xxxx)
	CodeInvalidLevel     ErrorCode = 830001 // 等级超出范围
	CodeInvalidPartySize ErrorCode = 830002 // 队伍人数超出范围
)

// -----------------------------------------------------------------------------
// 错误消息映射
// 这些消息会原样返回给调用方，保持英文
// -----------------------------------------------------------------------------
var codeMessages = map[ErrorCode]string{
	CodeSuccess:          "OK",
	CodeInternalError:    "Internal server error.",
	CodeInvalidParams:    "Invalid parameters.",
	CodeInvalidRequest:   "Invalid request.",
	CodeResourceNotFound: "Not found.",
	CodeMethodNotAllowed: "Method not allowed.",

	CodeMessageQueueError: "Message queue unavailable.",

	CodeInvalidLevel:     "Level must be between 1 and 20.",
	CodeInvalidPartySize: "Party members must be between 1 and 6.",
}

// GetHTTPStatus 根据业务错误码获取HTTP状态码
func GetHTTPStatus(code ErrorCode) int {
	switch {
	case code == CodeSuccess:
		return http.StatusOK
	case code == CodeResourceNotFound:
		return http.StatusNotFound
	case code == CodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case code == CodeInvalidParams || code == CodeInvalidRequest:
		return http.StatusBadRequest
	case code >= 700000 && code < 800000:
		return http.StatusServiceUnavailable
	case code >= 800000 && code < 900000:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// 辅助函数
// getCategoryByCode 根据错误码获取分类
func getCategoryByCode(code ErrorCode) string {
	switch {
	case code >= 100000 && code < 200000:
		return "system"
	case code >= 700000 && code < 800000:
		return "external"
	case code >= 800000 && code < 900000:
		return "game"
	default:
		return "unknown"
	}
}

// getLevelByCode 根据错误码获取级别
func getLevelByCode(code ErrorCode) ErrorLevel {
	switch {
	case code == CodeSuccess:
		return LevelInfo
	case code >= 100002 && code <= 100405: // 参数错误、路由错误等
		return LevelWarn
	case code >= 800000 && code < 900000: // 玩家输入错误
		return LevelWarn
	case code >= 700000 && code < 800000: // 外部服务错误
		return LevelCritical
	default:
		return LevelError
	}
}

// isRetryableByCode 根据错误码判断是否可重试
func isRetryableByCode(code ErrorCode) bool {
	switch code {
	case CodeInternalError, CodeMessageQueueError:
		return true
	default:
		return false
	}
}
