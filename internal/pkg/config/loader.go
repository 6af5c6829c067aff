package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// GetEnvOrDefault 获取环境变量，如果不存在则返回默认值
// 这是配置加载的核心函数：环境变量 > 默认值
func GetEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// GetEnvInt 读取整数环境变量，缺失或非法时返回默认值
func GetEnvInt(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid %s environment variable, %s set to %d\n", key, key, defaultValue)
		return defaultValue
	}
	return value
}

// GetEnvDuration 读取时长环境变量（如 "10s"），缺失或非法时返回默认值
func GetEnvDuration(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid %s environment variable, %s set to %s\n", key, key, defaultValue)
		return defaultValue
	}
	return value
}
