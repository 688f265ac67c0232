package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kuliner-chatbot-be/internal/bootstrap"
	"kuliner-chatbot-be/internal/config"
	"kuliner-chatbot-be/internal/pkg/logger"
	"kuliner-chatbot-be/internal/server"
	"kuliner-chatbot-be/internal/tracer"
	"kuliner-chatbot-be/pkg/database"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	defer sysLogger.Sync()

	// 2. Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer(cfg.Tracing, sysLogger)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracer(ctx)
	}()

	// 3. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection, cfg.App.Environment != "production")
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 4. Bootstrap Dependencies (Container)
	container, err := bootstrap.NewContainer(gormDB, cfg, sysLogger)
	if err != nil {
		log.Panicf("Unable to bootstrap container: %v", err)
	}
	defer container.Close()

	// 5. Initialize Server
	srv := server.New(cfg, container)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		sysLogger.Info("Server", "Shutting down", nil)
		if err := srv.Shutdown(); err != nil {
			sysLogger.Error("Server", "Shutdown failed", map[string]interface{}{"error": err.Error()})
		}
	}()

	// 6. Run Server
	if err := srv.Run(); err != nil {
		sysLogger.Error("Server", "Server stopped", map[string]interface{}{"error": err.Error()})
	}
}
