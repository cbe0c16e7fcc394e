// Package http exposes the employee bill pages and the bill API over gin.
// Handlers are thin: they read the request, call the bill service with the
// current user and render the resulting view.
package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/garyjia/expense-bills/internal/application/service"
	"github.com/garyjia/expense-bills/internal/format"
)

// Logger interface for logging operations
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// BillExporter renders a bill list as a downloadable document
type BillExporter interface {
	WriteBills(w io.Writer, bills []format.BillView) error
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	MaxUploadBytes int64
}

// DefaultServerConfig returns default server configuration
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:           "0.0.0.0:8080",
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		MaxUploadBytes: 10 << 20,
	}
}

// Server is the HTTP server adapter
type Server struct {
	config     ServerConfig
	httpServer *http.Server
	router     *gin.Engine
	logger     Logger
}

// NewServer creates a new HTTP server over the bill service
func NewServer(
	config ServerConfig,
	bills service.BillService,
	exporter BillExporter,
	logger Logger,
) *Server {
	router := gin.New()

	s := &Server{
		config: config,
		router: router,
		logger: logger,
	}

	router.Use(gin.Recovery())
	router.Use(s.loggingMiddleware())

	s.setupRoutes(NewHandlers(bills, exporter, config.MaxUploadBytes, logger))
	return s
}

// loggingMiddleware logs every request once it has been served
func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		s.logger.Info("HTTP request",
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"latency", time.Since(start).String(),
			"client_ip", c.ClientIP(),
		)
	}
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes(h *Handlers) {
	s.router.GET("/health", h.HealthCheck)

	pages := s.router.Group("/", currentUserMiddleware())
	{
		pages.GET(RoutePathBills, h.BillsPage)
		pages.GET(RoutePathNewBill, h.NewBillPage)
	}

	api := s.router.Group("/api", currentUserMiddleware())
	{
		api.GET("/bills", h.ListBills)
		api.GET("/bills/:id", h.GetBill)
		api.GET("/bills/:id/receipt", h.GetReceipt)
		api.POST("/bills/receipt", h.UploadReceipt)
		api.POST("/bills", h.SubmitBill)
		api.PUT("/bills/:id", h.ReviewBill)
		api.GET("/export/bills.xlsx", h.ExportBills)
	}
}

// Start serves until ctx is cancelled or the listener fails
func (s *Server) Start(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:         s.config.Addr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	s.logger.Info("Starting HTTP server", "address", s.config.Addr)

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("HTTP server shutdown requested")
		return s.Stop()
	case err := <-errCh:
		s.logger.Error("HTTP server error", "error", err)
		return err
	}
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("HTTP server shutdown error", "error", err)
		return err
	}

	s.logger.Info("HTTP server stopped")
	return nil
}

// Router returns the underlying gin router (for testing)
func (s *Server) Router() *gin.Engine {
	return s.router
}
