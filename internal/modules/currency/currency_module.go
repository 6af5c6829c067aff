package currency

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "loot-currency/docs/currency" // Swagger 生成的文档
	custommiddleware "loot-currency/internal/middleware"
	"loot-currency/internal/modules/currency/handler"
	"loot-currency/internal/modules/currency/service"
	"loot-currency/internal/pkg/config"
	"loot-currency/internal/pkg/log"
	"loot-currency/internal/pkg/metrics"
	"loot-currency/internal/pkg/notify"
	"loot-currency/internal/pkg/response"
	"loot-currency/internal/pkg/security"
	"loot-currency/internal/pkg/trace"
	"loot-currency/internal/pkg/validator"
)

// ServiceName 指标和日志中使用的服务名
const ServiceName = "currency"

// Option 模块可选项
type Option func(*CurrencyModule)

// WithRandomSource 替换随机源（测试中注入固定序列）
func WithRandomSource(rng service.RandomSource) Option {
	return func(m *CurrencyModule) { m.rng = rng }
}

// WithPublisher 替换掉落事件发布器
func WithPublisher(p notify.Publisher) Option {
	return func(m *CurrencyModule) { m.publisher = p }
}

// CurrencyModule 货币掉落 HTTP 服务
type CurrencyModule struct {
	cfg    config.Config
	logger log.Logger

	rng       service.RandomSource
	publisher notify.Publisher

	httpServer      *echo.Echo
	respWriter      response.Writer
	currencyService *service.CurrencyService
	currencyHandler *handler.CurrencyHandler
}

// New 创建模块并完成中间件与路由配置
func New(cfg config.Config, logger log.Logger, opts ...Option) *CurrencyModule {
	m := &CurrencyModule{
		cfg:       cfg,
		logger:    logger,
		publisher: notify.NewNATSPublisher(),
	}
	for _, opt := range opts {
		opt(m)
	}

	metrics.SetServiceName(ServiceName)
	if err := metrics.RegisterLogSinkMetrics(metrics.GetRegisterer(), log.DroppedLines, log.FailedLines); err != nil {
		logger.Warn("注册日志指标失败", log.Any("error", err))
	}
	if err := metrics.RegisterNATSMetrics(metrics.GetRegisterer(), natsConnected); err != nil {
		logger.Warn("注册 NATS 指标失败", log.Any("error", err))
	}

	m.initResponseWriter()
	m.initHTTPServer()
	m.initServicesAndHandlers()
	m.setupRoutes()

	return m
}

// initResponseWriter initializes response writer
func (m *CurrencyModule) initResponseWriter() {
	m.respWriter = response.NewResponseHandler(m.logger)
}

// initHTTPServer initializes HTTP server
func (m *CurrencyModule) initHTTPServer() {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validator.New()

	// ========== 中间件配置（顺序很重要！） ==========

	// 0. 路由前去掉结尾斜杠，/generate_currency/ 与 /generate_currency 等价
	e.Pre(middleware.RemoveTrailingSlash())

	// 1. TraceID 中间件 - 最先执行，生成或提取 TraceID
	e.Use(trace.Middleware())

	// 2. Metrics 中间件 - Prometheus 请求指标
	e.Use(metrics.Middleware())

	// 3. Logging 中间件 - 记录请求日志（依赖 TraceID）
	e.Use(custommiddleware.LoggingMiddleware(m.logger))

	// 4. Recovery 中间件 - 捕获 panic
	e.Use(custommiddleware.RecoveryMiddleware(m.respWriter, m.logger))

	// 5. Error 中间件 - 统一错误处理
	e.Use(custommiddleware.ErrorMiddleware(m.respWriter, m.logger))

	// 6. CORS 与安全响应头
	e.Use(security.CORSMiddleware())
	e.Use(security.SecurityHeadersMiddleware())

	m.httpServer = e
}

// initServicesAndHandlers initializes services and HTTP handlers
func (m *CurrencyModule) initServicesAndHandlers() {
	m.currencyService = service.NewCurrencyService(service.Dependencies{
		Generator: service.NewGenerator(m.rng),
		Validator: validator.New(),
		Publisher: m.publisher,
		Metrics:   metrics.DefaultLootMetrics,
		Logger:    m.logger,
		Subject:   m.cfg.LootSubject,
	})
	m.currencyHandler = handler.NewCurrencyHandler(m.currencyService, m.respWriter, m.logger)
}

// setupRoutes 注册路由
func (m *CurrencyModule) setupRoutes() {
	e := m.httpServer

	e.GET("/generate_currency", m.currencyHandler.GenerateCurrency)
	e.GET("/health", m.currencyHandler.Health)
	e.GET("/metrics", metrics.EchoHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)
}

// Handler 返回完整的 HTTP 处理链
func (m *CurrencyModule) Handler() http.Handler {
	return m.httpServer
}

// Run 启动 HTTP 服务，ctx 取消后优雅关闭
func (m *CurrencyModule) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", m.cfg.Addr())
	if err != nil {
		return fmt.Errorf("listen %s: %w", m.cfg.Addr(), err)
	}
	return m.Serve(ctx, ln)
}

// Serve 在给定 listener 上提供服务
func (m *CurrencyModule) Serve(ctx context.Context, ln net.Listener) error {
	m.httpServer.Listener = ln

	port := m.cfg.Port
	if addr, ok := ln.Addr().(*net.TCPAddr); ok {
		port = fmt.Sprint(addr.Port)
	}
	m.logger.Info(fmt.Sprintf("Currency Generator Microservice running on port %s", port),
		log.String("environment", m.cfg.Environment),
	)

	errCh := make(chan error, 1)
	go func() {
		if err := m.httpServer.Start(ln.Addr().String()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), m.cfg.ShutdownTimeout)
	defer cancel()

	m.logger.Info("HTTP server shutting down")
	if err := m.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	m.logger.Info("HTTP server closed")
	return nil
}

func natsConnected() float64 {
	if notify.Connected() {
		return 1
	}
	return 0
}
