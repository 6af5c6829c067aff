package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"

	"loot-currency/internal/modules/currency"
	"loot-currency/internal/pkg/config"
	"loot-currency/internal/pkg/log"
	"loot-currency/internal/pkg/notify"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(envFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	closeLog := log.Init(log.Options{
		Level:      cfg.LogLevel,
		Production: cfg.IsProduction(),
		FilePath:   cfg.LogPath,
		QueueSize:  cfg.LogQueueSize,
		ErrOutput:  os.Stderr,
	})
	defer func() {
		if err := closeLog(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to close log file: %v\n", err)
		}
	}()
	logger := log.GetLogger()

	printBanner(cmd, cfg)

	if nc := connectNATS(cfg, logger); nc != nil {
		notify.SetNatsConn(nc)
		defer func() {
			notify.SetNatsConn(nil)
			_ = nc.Drain()
		}()
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := currency.New(cfg, logger).Run(ctx); err != nil {
		logger.Error("HTTP server error", err)
		return err
	}
	return nil
}

// connectNATS NATS_URL 为空或连接失败时返回 nil，服务照常启动
func connectNATS(cfg config.Config, logger log.Logger) *nats.Conn {
	if cfg.NATSURL == "" {
		logger.Info("NATS_URL not set, loot events disabled")
		return nil
	}
	nc, err := notify.Connect(cfg.NATSURL, logger)
	if err != nil {
		logger.Warn("NATS unavailable, loot events disabled", log.Any("error", err))
		return nil
	}
	logger.Info("Connected to NATS", log.String("url", nc.ConnectedUrl()), log.String("subject", cfg.LootSubject))
	return nc
}

func printBanner(cmd *cobra.Command, cfg config.Config) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "==============================================")
	fmt.Fprintln(out, "  Currency Generator Microservice")
	fmt.Fprintf(out, "  Environment: %s\n", cfg.Environment)
	fmt.Fprintf(out, "  Log file: %s\n", cfg.LogPath)
	fmt.Fprintln(out, "==============================================")
}
