package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/preston-bernstein/lazyman-service/internal/config"
	"github.com/preston-bernstein/lazyman-service/internal/logging"
	"github.com/preston-bernstein/lazyman-service/internal/server"
)

const appVersion = "dev"

var envPaths = []string{".env", "../.env"}

func main() {
	if os.Getenv("SKIP_SERVER_RUN") == "1" {
		return
	}

	envFile := loadEnvFile(envPaths)
	cfg := config.Load()
	logger := logging.NewLogger(logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.Metrics.ServiceName,
		Version: appVersion,
	})
	if envFile != "" {
		logger.Info("loaded env file", slog.String("path", envFile))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, logger)
	srv.Run(ctx, stop)
}

// loadEnvFile loads the first readable .env file. Existing variables win.
func loadEnvFile(paths []string) string {
	for _, path := range paths {
		if err := godotenv.Load(path); err == nil {
			return path
		}
	}
	return ""
}
