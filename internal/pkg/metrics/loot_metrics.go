package metrics

import (
	"errors"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// LootMetrics 掉落业务指标
type LootMetrics struct {
	// 生成次数（按是否合并分组）
	GeneratedTotal *prometheus.CounterVec

	// 发出的硬币总数（按面额分组：gp/sp/cp）
	CoinsTotal *prometheus.CounterVec

	// 单次生成的金币数分布
	GoldPerLoot *prometheus.HistogramVec

	// 参数校验失败次数（按字段分组）
	ValidationFailuresTotal *prometheus.CounterVec

	// 掉落事件发布失败次数
	PublishFailuresTotal *prometheus.CounterVec
}

// DefaultLootMetrics 默认的掉落指标实例
var DefaultLootMetrics *LootMetrics

// GoldBuckets 单次金币数 buckets
// 最小 1（1 级 1 人），最大 200*6 再加上合并进位
var GoldBuckets = []float64{10, 25, 50, 100, 200, 400, 800, 1300}

func init() {
	DefaultLootMetrics = NewLootMetrics(Namespace)
}

// NewLootMetrics 创建掉落指标
func NewLootMetrics(namespace string) *LootMetrics {
	return NewLootMetricsWithRegistry(namespace, GetRegisterer())
}

// NewLootMetricsWithRegistry 创建掉落指标（使用自定义注册表）
func NewLootMetricsWithRegistry(namespace string, registerer prometheus.Registerer) *LootMetrics {
	factory := promauto.With(registerer)

	return &LootMetrics{
		GeneratedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "currency",
				Name:      "generated_total",
				Help:      "Total number of generated coin bundles by reduce flag",
			},
			[]string{"service", "reduce"},
		),

		CoinsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "currency",
				Name:      "coins_total",
				Help:      "Total number of coins handed out by denomination",
			},
			[]string{"service", "denomination"},
		),

		GoldPerLoot: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "currency",
				Name:      "gold_per_loot",
				Help:      "Distribution of gold pieces per generated bundle",
				Buckets:   GoldBuckets,
			},
			[]string{"service"},
		),

		ValidationFailuresTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "currency",
				Name:      "validation_failures_total",
				Help:      "Total number of rejected requests by invalid field",
			},
			[]string{"service", "field"},
		),

		PublishFailuresTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "currency",
				Name:      "publish_failures_total",
				Help:      "Total number of loot events that could not be published",
			},
			[]string{"service"},
		),
	}
}

// RecordLoot 记录一次生成结果
func (m *LootMetrics) RecordLoot(reduce bool, gp, sp, cp int) {
	service := GetServiceName()
	m.GeneratedTotal.WithLabelValues(service, strconv.FormatBool(reduce)).Inc()
	m.CoinsTotal.WithLabelValues(service, "gp").Add(float64(gp))
	m.CoinsTotal.WithLabelValues(service, "sp").Add(float64(sp))
	m.CoinsTotal.WithLabelValues(service, "cp").Add(float64(cp))
	m.GoldPerLoot.WithLabelValues(service).Observe(float64(gp))
}

// RecordValidationFailure 记录一次参数校验失败
func (m *LootMetrics) RecordValidationFailure(field string) {
	m.ValidationFailuresTotal.WithLabelValues(GetServiceName(), field).Inc()
}

// RecordPublishFailure 记录一次事件发布失败
func (m *LootMetrics) RecordPublishFailure() {
	m.PublishFailuresTotal.WithLabelValues(GetServiceName()).Inc()
}

// RegisterLogSinkMetrics 导出日志文件输出的丢弃/失败行数
func RegisterLogSinkMetrics(registerer prometheus.Registerer, dropped, failed func() float64) error {
	collectors := []prometheus.Collector{
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "log",
			Name:      "dropped_lines_total",
			Help:      "Log lines dropped because the file queue was full or closed",
		}, dropped),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "log",
			Name:      "failed_lines_total",
			Help:      "Log lines that could not be appended to the log file",
		}, failed),
	}
	for _, c := range collectors {
		if err := registerer.Register(c); err != nil {
			var already prometheus.AlreadyRegisteredError
			if errors.As(err, &already) {
				continue
			}
			return err
		}
	}
	return nil
}

// RegisterNATSMetrics 导出事件总线的连接状态（1 已连接，0 未连接）
func RegisterNATSMetrics(registerer prometheus.Registerer, connected func() float64) error {
	gauge := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: Namespace,
		Subsystem: "nats",
		Name:      "connected",
		Help:      "Whether the loot event publisher holds a live NATS connection",
	}, connected)
	if err := registerer.Register(gauge); err != nil {
		var already prometheus.AlreadyRegisteredError
		if !errors.As(err, &already) {
			return err
		}
	}
	return nil
}
