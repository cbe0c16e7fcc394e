// Package container wires the bill service and its infrastructure and owns
// their lifecycle. Components start in dependency order and close in reverse.
package container

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/garyjia/expense-bills/internal/application/port"
	"github.com/garyjia/expense-bills/internal/application/service"
	"github.com/garyjia/expense-bills/internal/config"
	"github.com/garyjia/expense-bills/internal/export"
	"github.com/garyjia/expense-bills/internal/infrastructure/persistence/repository"
	"github.com/garyjia/expense-bills/internal/infrastructure/persistence/sqlite"
	"github.com/garyjia/expense-bills/internal/infrastructure/storage"
	"github.com/garyjia/expense-bills/pkg/database"
	"github.com/garyjia/expense-bills/pkg/utils"
)

// Container holds the wired application
type Container struct {
	config *config.Config
	logger *zap.Logger

	db       *database.DB
	bills    port.BillRepository
	files    port.FileStorage
	service  service.BillService
	exporter *export.ExcelExporter

	mu     sync.Mutex
	closed bool
}

// New opens the database, applies pending migrations and builds the services.
func New(cfg *config.Config, logger *zap.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	c := &Container{config: cfg, logger: logger}
	if err := c.initDatabase(); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	c.initServices()

	logger.Info("Container started",
		zap.String("database", cfg.Database.Path),
		zap.String("receipts", cfg.Storage.ReceiptDir))
	return c, nil
}

func (c *Container) initDatabase() error {
	cfg := c.config.Database
	if cfg.Path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0755); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := database.New(database.Config{
		Path:            cfg.Path,
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	}, c.logger)
	if err != nil {
		return err
	}

	applied, err := database.NewMigrator(db, c.logger).Run()
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	if applied > 0 {
		c.logger.Info("Migrations applied", zap.Int("count", applied))
	}

	c.db = db
	return nil
}

func (c *Container) initServices() {
	c.bills = repository.NewBillRepository(c.db.DB, c.logger)
	c.files = storage.NewLocalFileStorage(c.config.Storage.ReceiptDir, c.logger)
	c.service = service.NewBillService(
		c.bills,
		c.files,
		sqlite.NewTxManager(c.db.DB, c.logger),
		utils.NewKVLogger(c.logger.Named("bills")),
	)
	c.exporter = export.NewExcelExporter(c.logger)
}

// Bills returns the bill service
func (c *Container) Bills() service.BillService {
	return c.service
}

// Exporter returns the xlsx exporter
func (c *Container) Exporter() *export.ExcelExporter {
	return c.exporter
}

// Logger returns the container's logger
func (c *Container) Logger() *zap.Logger {
	return c.logger
}

// Close releases the database. Calling it twice is an error.
func (c *Container) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return fmt.Errorf("container already closed")
	}
	c.closed = true

	if err := c.db.Close(); err != nil {
		c.logger.Error("Failed to close database", zap.Error(err))
		return fmt.Errorf("close database: %w", err)
	}
	c.logger.Info("Container closed")
	return nil
}
