package dto

import "time"

// LootRequest 掉落请求参数（已完成解析）
type LootRequest struct {
	Level   int  `json:"level" validate:"min=1,max=20" example:"5"`
	Members int  `json:"members" validate:"min=1,max=6" example:"2"`
	Reduce  bool `json:"reduce" example:"true"`
}

// CoinBundle 一次掉落的货币
type CoinBundle struct {
	GP int `json:"gp" example:"77"` // 金币
	SP int `json:"sp" example:"6"`  // 银币
	CP int `json:"cp" example:"4"`  // 铜币
}

// GenerateCurrencyResponse 生成货币响应
type GenerateCurrencyResponse struct {
	Coins CoinBundle `json:"coins"`
}

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

// LootGeneratedEvent 掉落生成事件（发布到 NATS）
type LootGeneratedEvent struct {
	EventID     string     `json:"event_id"`
	TraceID     string     `json:"trace_id,omitempty"`
	Level       int        `json:"level"`
	Members     int        `json:"members"`
	Reduce      bool       `json:"reduce"`
	Coins       CoinBundle `json:"coins"`
	GeneratedAt time.Time  `json:"generated_at"`
}
