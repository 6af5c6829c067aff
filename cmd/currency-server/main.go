package main

import (
	"os"

	"loot-currency/cmd/currency-server/commands"
)

// @title           Loot Currency API
// @version         1.0
// @description     随机货币掉落生成服务
// @BasePath        /

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
