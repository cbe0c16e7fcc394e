package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/garyjia/expense-bills/internal/config"
	"github.com/garyjia/expense-bills/internal/container"
	httpserver "github.com/garyjia/expense-bills/internal/interfaces/http"
	"github.com/garyjia/expense-bills/pkg/utils"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "path to the YAML configuration file")
	flag.Parse()

	explicit := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "config" {
			explicit = true
		}
	})

	// Load configuration
	path, err := config.ResolvePath(*configPath, explicit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting expense bills service",
		zap.String("version", "1.0.0"),
		zap.Int("port", cfg.Server.Port))

	app, err := container.New(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize application", zap.Error(err))
	}
	defer app.Close()

	if cfg.Logger.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	server := httpserver.NewServer(
		httpserver.ServerConfig{
			Addr:           cfg.Server.Address(),
			ReadTimeout:    cfg.Server.ReadTimeout,
			WriteTimeout:   cfg.Server.WriteTimeout,
			MaxUploadBytes: cfg.Server.MaxUploadBytes,
		},
		app.Bills(),
		app.Exporter(),
		utils.NewKVLogger(logger.Named("http")),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("Shutdown complete")
}
