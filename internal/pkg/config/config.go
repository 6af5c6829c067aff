// File: internal/pkg/config/config.go
package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultPort            = "3000"
	DefaultEnvironment     = "development"
	DefaultLogPath         = "logs.txt"
	DefaultLootSubject     = "loot.currency.generated"
	DefaultShutdownTimeout = 10 * time.Second
)

// Config 服务配置，启动时读取一次，运行期间不再修改
type Config struct {
	Port        string
	Environment string

	LogPath      string
	LogLevel     slog.Level
	LogQueueSize int

	// NATSURL 为空时不发布掉落事件
	NATSURL     string
	LootSubject string

	ShutdownTimeout time.Duration
}

// Load 加载 .env（如果存在）后从环境变量构建配置
func Load(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, err
	}
	return FromEnv(), nil
}

// FromEnv 只从当前进程环境变量构建配置
func FromEnv() Config {
	return Config{
		Port:            GetEnvOrDefault("PORT", DefaultPort),
		Environment:     GetEnvOrDefault("ENVIRONMENT", DefaultEnvironment),
		LogPath:         GetEnvOrDefault("LOG_PATH", DefaultLogPath),
		LogLevel:        parseLevel(GetEnvOrDefault("LOG_LEVEL", "info")),
		LogQueueSize:    GetEnvInt("LOG_QUEUE_SIZE", 1024),
		NATSURL:         GetEnvOrDefault("NATS_URL", ""),
		LootSubject:     GetEnvOrDefault("LOOT_SUBJECT", DefaultLootSubject),
		ShutdownTimeout: GetEnvDuration("SHUTDOWN_TIMEOUT", DefaultShutdownTimeout),
	}
}

// Addr 监听地址
func (c Config) Addr() string {
	return ":" + c.Port
}

// IsProduction 是否生产环境
func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
