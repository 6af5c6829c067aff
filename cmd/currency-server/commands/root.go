package commands

import (
	"github.com/spf13/cobra"
)

var envFile string

// Execute 运行命令行入口
func Execute() error {
	return NewRootCommand().Execute()
}

// NewRootCommand 构建根命令，不带子命令时等同于 serve
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "currency-server",
		Short:        "Randomized tabletop currency loot generator",
		SilenceUsage: true,
		RunE:         runServe,
	}

	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")

	root.AddCommand(serveCmd(), rollCmd())
	return root
}
