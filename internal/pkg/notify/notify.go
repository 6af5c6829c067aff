package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/nats-io/nats.go"

	"loot-currency/internal/pkg/log"
)

// Default subjects
const (
	SubjectLootCurrencyGenerated = "loot.currency.generated"
)

var (
	ncMu sync.RWMutex
	nc   *nats.Conn
)

// Publisher 事件发布接口
type Publisher interface {
	Publish(ctx context.Context, subject string, payload any) error
}

// SetNatsConn 设置全局 NATS 连接（由 main 提供）
func SetNatsConn(conn *nats.Conn) {
	ncMu.Lock()
	defer ncMu.Unlock()
	nc = conn
}

func currentConn() *nats.Conn {
	ncMu.RLock()
	defer ncMu.RUnlock()
	return nc
}

// Connect 连接 NATS，断线重连事件写日志
func Connect(url string, logger log.Logger) (*nats.Conn, error) {
	conn, err := nats.Connect(url,
		nats.Name("loot-currency"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logger.Warn("NATS disconnected", log.Any("error", err))
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.Info("NATS reconnected", log.String("url", c.ConnectedUrl()))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats %s: %w", url, err)
	}
	return conn, nil
}

// NATSPublisher 通过全局连接发布 JSON 事件
type NATSPublisher struct{}

// NewNATSPublisher 创建发布器
func NewNATSPublisher() *NATSPublisher {
	return &NATSPublisher{}
}

// Publish 发布事件，没有连接时静默降级
func (p *NATSPublisher) Publish(ctx context.Context, subject string, payload any) error {
	return PublishEvent(ctx, subject, payload)
}

// PublishEvent 发布事件到指定 subject
func PublishEvent(ctx context.Context, subject string, payload any) error {
	conn := currentConn()
	if conn == nil {
		return nil // 没有连接时静默降级
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal loot event failed: %w", err)
	}
	return conn.Publish(subject, data)
}

// Connected 当前是否持有可用连接
func Connected() bool {
	conn := currentConn()
	return conn != nil && conn.IsConnected() && !conn.IsClosed()
}

// NopPublisher 丢弃所有事件
type NopPublisher struct{}

// Publish 实现 Publisher
func (NopPublisher) Publish(context.Context, string, any) error { return nil }
