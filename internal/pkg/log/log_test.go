package log

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loot-currency/internal/pkg/ctxkey"
)

// syncBuffer 并发安全的 buffer
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestNew_WritesConsoleAndFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs.txt")
	console := &syncBuffer{}

	logger, closer := New(Options{
		FilePath: path,
		Console:  console,
	})

	logger.Info("Received currency request", Int("members", 2))
	logger.Error("Invalid level", errors.New("out of range"), String("value", "21"))
	require.NoError(t, closer())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "level=INFO")
	assert.Contains(t, lines[0], "time=")
	assert.Contains(t, lines[0], "members=2")
	assert.Contains(t, lines[1], "level=ERROR")
	assert.Contains(t, lines[1], "out of range")

	assert.Equal(t, string(data), console.String())
}

func TestNew_AppendsToExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs.txt")
	require.NoError(t, os.WriteFile(path, []byte("previous line\n"), 0o644))

	logger, closer := New(Options{FilePath: path, Console: &syncBuffer{}})
	logger.Info("next")
	require.NoError(t, closer())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "previous line\n"))
	assert.Contains(t, string(data), "msg=next")
}

func TestNew_ProductionUsesJSON(t *testing.T) {
	console := &syncBuffer{}
	logger, closer := New(Options{Production: true, Console: console})
	logger.Info("json line")
	require.NoError(t, closer())

	assert.Contains(t, console.String(), `"msg":"json line"`)
	assert.Contains(t, console.String(), `"level":"INFO"`)
}

func TestContextHandler_AddsTraceID(t *testing.T) {
	console := &syncBuffer{}
	logger, _ := New(Options{Console: console})

	ctx := ctxkey.WithValue(context.Background(), ctxkey.TraceID, "abc123")
	logger.InfoContext(ctx, "with trace")

	assert.Contains(t, console.String(), "trace_id=abc123")
}

func TestAsyncFileWriter_FailureIsReportedNotPropagated(t *testing.T) {
	dir := t.TempDir()
	// 用目录占住文件路径，使 OpenFile 失败
	blocked := filepath.Join(dir, "logs.txt")
	require.NoError(t, os.Mkdir(blocked, 0o755))

	errOut := &syncBuffer{}
	w := NewAsyncFileWriter(blocked, 4, errOut)

	n, err := w.Write([]byte("line\n"))
	assert.NoError(t, err)
	assert.Equal(t, 5, n)
	require.NoError(t, w.Close())

	assert.Contains(t, errOut.String(), "Failed to write log")
	assert.Equal(t, int64(1), w.Failed())
}

// failingCloser 写入成功但关闭失败
type failingCloser struct {
	syncBuffer
	err error
}

func (f *failingCloser) Close() error { return f.err }

func TestAsyncFileWriter_CloseReturnsFileError(t *testing.T) {
	closeErr := errors.New("disk quota exceeded")
	file := &failingCloser{err: closeErr}
	w := newAsyncWriter("logs.txt", 4, &syncBuffer{}, func() (io.WriteCloser, error) {
		return file, nil
	})
	go w.run()

	_, _ = w.Write([]byte("line\n"))
	err := w.Close()

	require.Error(t, err)
	assert.ErrorIs(t, err, closeErr)
	assert.Contains(t, err.Error(), "logs.txt")
	assert.Equal(t, "line\n", file.String())
	// 重复关闭返回同一个错误
	assert.ErrorIs(t, w.Close(), closeErr)
}

func TestAsyncFileWriter_DropsAfterClose(t *testing.T) {
	w := NewAsyncFileWriter(filepath.Join(t.TempDir(), "logs.txt"), 1, &syncBuffer{})
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	n, err := w.Write([]byte("late\n"))
	assert.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, int64(1), w.Dropped())
}

func TestAsyncFileWriter_ConcurrentWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs.txt")
	w := NewAsyncFileWriter(path, 1000, &syncBuffer{})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_, _ = w.Write([]byte("x\n"))
			}
		}()
	}
	wg.Wait()
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	written := int64(strings.Count(string(data), "x\n"))
	assert.Equal(t, int64(500), written+w.Dropped())
}
