package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
)

// DefaultQueueSize 文件写入队列默认长度
const DefaultQueueSize = 1024

// AsyncFileWriter 异步追加写文件
// Write 只负责入队，不会阻塞调用方；队列满时丢弃并计数。
// 写文件失败只报告到 errOut，不向上传播；关闭文件失败由 Close 返回。
type AsyncFileWriter struct {
	path     string
	errOut   io.Writer
	openFile func() (io.WriteCloser, error)
	closeErr error

	mu      sync.RWMutex
	closed  bool
	queue   chan []byte
	done    chan struct{}
	once    sync.Once
	dropped atomic.Int64
	failed  atomic.Int64
}

// NewAsyncFileWriter 创建并启动写入协程
func NewAsyncFileWriter(path string, queueSize int, errOut io.Writer) *AsyncFileWriter {
	w := newAsyncWriter(path, queueSize, errOut, nil)
	w.openFile = w.open
	go w.run()
	return w
}

func newAsyncWriter(path string, queueSize int, errOut io.Writer, open func() (io.WriteCloser, error)) *AsyncFileWriter {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	if errOut == nil {
		errOut = os.Stderr
	}

	return &AsyncFileWriter{
		path:     path,
		errOut:   errOut,
		openFile: open,
		queue:    make(chan []byte, queueSize),
		done:     make(chan struct{}),
	}
}

// Write 实现 io.Writer，始终返回 len(p), nil
func (w *AsyncFileWriter) Write(p []byte) (int, error) {
	// slog handler 会复用缓冲区，这里必须拷贝
	line := make([]byte, len(p))
	copy(line, p)

	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.closed {
		w.dropped.Add(1)
		return len(p), nil
	}

	select {
	case w.queue <- line:
	default:
		w.dropped.Add(1)
	}
	return len(p), nil
}

// Close 停止接收新日志，写完队列中剩余内容后关闭文件
// 返回关闭文件时的错误，重复调用返回同一结果
func (w *AsyncFileWriter) Close() error {
	w.once.Do(func() {
		w.mu.Lock()
		w.closed = true
		close(w.queue)
		w.mu.Unlock()
	})
	<-w.done
	return w.closeErr
}

// Dropped 队列满或已关闭时丢弃的行数
func (w *AsyncFileWriter) Dropped() int64 {
	return w.dropped.Load()
}

// Failed 写文件失败的行数
func (w *AsyncFileWriter) Failed() int64 {
	return w.failed.Load()
}

func (w *AsyncFileWriter) run() {
	defer close(w.done)

	var file io.WriteCloser
	defer func() {
		if file != nil {
			if err := file.Close(); err != nil {
				w.closeErr = fmt.Errorf("close log file %s: %w", w.path, err)
			}
		}
	}()

	for line := range w.queue {
		if file == nil {
			f, err := w.openFile()
			if err != nil {
				w.failed.Add(1)
				fmt.Fprintf(w.errOut, "Failed to write log: %v\n", err)
				continue
			}
			file = f
		}

		if _, err := file.Write(line); err != nil {
			w.failed.Add(1)
			fmt.Fprintf(w.errOut, "Failed to write log: %v\n", err)
		}
	}
}

func (w *AsyncFileWriter) open() (io.WriteCloser, error) {
	if dir := filepath.Dir(w.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return os.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
}

var activeFileWriter atomic.Pointer[AsyncFileWriter]

func setFileWriter(w *AsyncFileWriter) {
	activeFileWriter.Store(w)
}

// DroppedLines 当前文件输出丢弃的日志行数（用于指标导出）
func DroppedLines() float64 {
	if w := activeFileWriter.Load(); w != nil {
		return float64(w.Dropped())
	}
	return 0
}

// FailedLines 当前文件输出写失败的日志行数（用于指标导出）
func FailedLines() float64 {
	if w := activeFileWriter.Load(); w != nil {
		return float64(w.Failed())
	}
	return 0
}
