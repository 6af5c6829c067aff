// File: internal/pkg/log/log.go
package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
)

// Logger 接口定义（在消费端定义）
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, err error, args ...any)

	DebugContext(ctx context.Context, msg string, args ...any)
	InfoContext(ctx context.Context, msg string, args ...any)
	WarnContext(ctx context.Context, msg string, args ...any)
	ErrorContext(ctx context.Context, msg string, args ...any)

	With(args ...any) Logger
	WithGroup(name string) Logger
}

// Options 日志初始化参数
type Options struct {
	Level slog.Level
	// Production 为 true 时输出 JSON，否则输出文本
	Production bool
	// FilePath 追加写入的日志文件，为空时只输出到控制台
	FilePath string
	// QueueSize 文件写入队列长度
	QueueSize int
	// Console 控制台输出，默认 os.Stdout
	Console io.Writer
	// ErrOutput 文件写入失败时的报告通道，默认 os.Stderr
	ErrOutput io.Writer
}

// StructuredLogger slog的包装器
type StructuredLogger struct {
	logger *slog.Logger
}

var (
	globalMu     sync.RWMutex
	globalLogger Logger
)

// New 根据配置创建 logger，返回的 closer 负责把文件队列写完并关闭文件
func New(opts Options) (Logger, func() error) {
	console := opts.Console
	if console == nil {
		console = os.Stdout
	}

	out := console
	closer := func() error { return nil }
	if opts.FilePath != "" {
		fileWriter := NewAsyncFileWriter(opts.FilePath, opts.QueueSize, opts.ErrOutput)
		out = io.MultiWriter(console, fileWriter)
		closer = fileWriter.Close
		setFileWriter(fileWriter)
	}

	var handler slog.Handler
	// 根据环境配置不同的handler
	if opts.Production {
		handler = slog.NewJSONHandler(out, &slog.HandlerOptions{
			Level: opts.Level,
		})
	} else {
		handler = slog.NewTextHandler(out, &slog.HandlerOptions{
			Level: opts.Level,
		})
	}

	return NewLogger(NewContextHandler(handler)), closer
}

// Init 初始化全局日志器
func Init(opts Options) func() error {
	logger, closer := New(opts)
	SetLogger(logger)
	return closer
}

// SetLogger 替换全局 logger
func SetLogger(logger Logger) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalLogger = logger
	if sl, ok := logger.(*StructuredLogger); ok {
		slog.SetDefault(sl.logger)
	}
}

// GetLogger 获取全局logger
func GetLogger() Logger {
	globalMu.RLock()
	logger := globalLogger
	globalMu.RUnlock()
	if logger != nil {
		return logger
	}

	// 如果没有初始化，使用默认配置
	logger, _ = New(Options{Level: slog.LevelInfo})
	SetLogger(logger)
	return logger
}

// NewLogger 创建新的logger实例
func NewLogger(handler slog.Handler) Logger {
	return &StructuredLogger{
		logger: slog.New(handler),
	}
}

// Discard 丢弃所有输出的 logger，测试中使用
func Discard() Logger {
	return NewLogger(slog.NewTextHandler(io.Discard, nil))
}

func (l *StructuredLogger) Debug(msg string, args ...any) {
	l.logger.Debug(msg, args...)
}

func (l *StructuredLogger) Info(msg string, args ...any) {
	l.logger.Info(msg, args...)
}

func (l *StructuredLogger) Warn(msg string, args ...any) {
	l.logger.Warn(msg, args...)
}

func (l *StructuredLogger) Error(msg string, err error, args ...any) {
	if err != nil {
		args = append(args, slog.Any("error", err))
	}
	l.logger.Error(msg, args...)
}

func (l *StructuredLogger) DebugContext(ctx context.Context, msg string, args ...any) {
	l.logger.DebugContext(ctx, msg, args...)
}

func (l *StructuredLogger) InfoContext(ctx context.Context, msg string, args ...any) {
	l.logger.InfoContext(ctx, msg, args...)
}

func (l *StructuredLogger) WarnContext(ctx context.Context, msg string, args ...any) {
	l.logger.WarnContext(ctx, msg, args...)
}

func (l *StructuredLogger) ErrorContext(ctx context.Context, msg string, args ...any) {
	l.logger.ErrorContext(ctx, msg, args...)
}

func (l *StructuredLogger) With(args ...any) Logger {
	return &StructuredLogger{
		logger: l.logger.With(args...),
	}
}

func (l *StructuredLogger) WithGroup(name string) Logger {
	return &StructuredLogger{
		logger: l.logger.WithGroup(name),
	}
}

// 结构化日志辅助函数

// String 字符串属性
func String(key, value string) slog.Attr {
	return slog.String(key, value)
}

// Int 整数属性
func Int(key string, value int) slog.Attr {
	return slog.Int(key, value)
}

func Int64(key string, value int64) slog.Attr {
	return slog.Int64(key, value)
}

// Bool 布尔属性
func Bool(key string, value bool) slog.Attr {
	return slog.Bool(key, value)
}

// Any 任意类型属性
func Any(key string, value interface{}) slog.Attr {
	return slog.Any(key, value)
}

// Duration 耗时属性（毫秒）
func Duration(key string, duration int64) slog.Attr {
	return slog.Int64(key, duration)
}
