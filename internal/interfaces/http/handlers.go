package http

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/garyjia/expense-bills/internal/application/service"
	"github.com/garyjia/expense-bills/internal/domain/entity"
	"github.com/garyjia/expense-bills/internal/export"
	"github.com/garyjia/expense-bills/internal/format"
	"github.com/garyjia/expense-bills/internal/infrastructure/storage"
)

// Page paths the front end navigates between
const (
	RoutePathBills   = "/employee/bills"
	RoutePathNewBill = "/employee/bill/new"
)

// Handlers contains all HTTP request handlers
type Handlers struct {
	bills          service.BillService
	exporter       BillExporter
	maxUploadBytes int64
	logger         Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(bills service.BillService, exporter BillExporter, maxUploadBytes int64, logger Logger) *Handlers {
	return &Handlers{
		bills:          bills,
		exporter:       exporter,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

// Response represents a standard JSON response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// PageView is what a page route renders
type PageView struct {
	Page     string               `json:"page"`
	Title    string               `json:"title"`
	Path     string               `json:"path"`
	Bills    []format.BillView    `json:"bills,omitempty"`
	Form     *service.NewBillForm `json:"form,omitempty"`
	Error    string               `json:"error,omitempty"`
	Redirect string               `json:"redirect,omitempty"`
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: HealthResponse{
			Status:    "healthy",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Version:   "1.0.0",
		},
	})
}

// BillsPage handles GET /employee/bills. A storage failure renders the
// error page instead of the table.
func (h *Handlers) BillsPage(c *gin.Context) {
	views, err := h.bills.ListBills(c.Request.Context(), currentUser(c), service.ListOptions{})
	if err != nil {
		h.logger.Error("Failed to render bills page", "error", err)
		status := statusFor(err)
		title := fmt.Sprintf("Erreur %d", status)
		message := err.Error()
		if status >= http.StatusInternalServerError {
			message = title
		}
		c.JSON(status, Response{
			Success: false,
			Data: PageView{
				Page:  "error",
				Title: title,
				Path:  RoutePathBills,
				Error: message,
			},
			Error: title,
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: PageView{
			Page:  "bills",
			Title: "Mes notes de frais",
			Path:  RoutePathBills,
			Bills: views,
		},
	})
}

// NewBillPage handles GET /employee/bill/new
func (h *Handlers) NewBillPage(c *gin.Context) {
	form := h.bills.NewBillForm()
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: PageView{
			Page:  "new-bill",
			Title: "Envoyer une note de frais",
			Path:  RoutePathNewBill,
			Form:  &form,
		},
	})
}

// ListBills handles GET /api/bills?limit=&offset=
func (h *Handlers) ListBills(c *gin.Context) {
	opts, err := listOptions(c)
	if err != nil {
		h.fail(c, "Invalid paging", err)
		return
	}

	views, err := h.bills.ListBills(c.Request.Context(), currentUser(c), opts)
	if err != nil {
		h.fail(c, "Failed to list bills", err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: views})
}

// GetBill handles GET /api/bills/:id
func (h *Handlers) GetBill(c *gin.Context) {
	view, err := h.bills.GetBill(c.Request.Context(), currentUser(c), c.Param("id"))
	if err != nil {
		h.fail(c, "Failed to get bill", err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: view})
}

// GetReceipt handles GET /api/bills/:id/receipt
func (h *Handlers) GetReceipt(c *gin.Context) {
	receipt, err := h.bills.Receipt(c.Request.Context(), currentUser(c), c.Param("id"))
	if err != nil {
		h.fail(c, "Failed to load receipt", err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="%s"`, storage.SanitizeName(receipt.FileName)))
	c.Data(http.StatusOK, receipt.MimeType, receipt.Content)
}

// UploadReceipt handles POST /api/bills/receipt (multipart field "file")
func (h *Handlers) UploadReceipt(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)

	var (
		candidate *format.UploadCandidate
		content   []byte
	)
	header, err := c.FormFile("file")
	switch {
	case err == nil:
		candidate = &format.UploadCandidate{
			Name: header.Filename,
			Type: header.Header.Get("Content-Type"),
			Size: header.Size,
		}
		content, err = readUpload(header)
		if err != nil {
			h.fail(c, "Failed to read upload", fmt.Errorf("%w: %v", entity.ErrInvalidReceipt, err))
			return
		}
	case errors.Is(err, http.ErrMissingFile):
		// an absent file is a rejected receipt, reported by the service
	default:
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, Response{Success: false, Error: "file too large"})
			return
		}
		h.fail(c, "Invalid upload", fmt.Errorf("%w: %v", entity.ErrInvalidReceipt, err))
		return
	}

	upload, err := h.bills.UploadReceipt(c.Request.Context(), currentUser(c), candidate, content)
	if err != nil {
		h.fail(c, "Failed to upload receipt", err)
		return
	}
	c.JSON(http.StatusCreated, Response{Success: true, Data: upload})
}

// SubmitBill handles POST /api/bills
func (h *Handlers) SubmitBill(c *gin.Context) {
	var input service.SubmitBillInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.fail(c, "Invalid bill payload", fmt.Errorf("%w: %v", entity.ErrInvalidBill, err))
		return
	}

	bill, err := h.bills.SubmitBill(c.Request.Context(), currentUser(c), input)
	if err != nil {
		h.fail(c, "Failed to submit bill", err)
		return
	}

	view := format.ViewOf(bill)
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: gin.H{
			"bill":     view,
			"redirect": RoutePathBills,
		},
	})
}

// ReviewBill handles PUT /api/bills/:id
func (h *Handlers) ReviewBill(c *gin.Context) {
	var input service.ReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.fail(c, "Invalid review payload", fmt.Errorf("%w: %v", entity.ErrInvalidBill, err))
		return
	}

	bill, err := h.bills.ReviewBill(c.Request.Context(), currentUser(c), c.Param("id"), input)
	if err != nil {
		h.fail(c, "Failed to review bill", err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: format.ViewOf(bill)})
}

// ExportBills handles GET /api/export/bills.xlsx
func (h *Handlers) ExportBills(c *gin.Context) {
	views, err := h.bills.ListBills(c.Request.Context(), currentUser(c), service.ListOptions{})
	if err != nil {
		h.fail(c, "Failed to list bills for export", err)
		return
	}

	var buf bytes.Buffer
	if err := h.exporter.WriteBills(&buf, views); err != nil {
		h.fail(c, "Failed to export bills", err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="notes-de-frais.xlsx"`)
	c.Data(http.StatusOK, export.ContentType, buf.Bytes())
}

// fail logs err and writes the matching error response
func (h *Handlers) fail(c *gin.Context, msg string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error(msg, "path", c.Request.URL.Path, "error", err)
		c.JSON(status, Response{Success: false, Error: "internal error"})
		return
	}
	h.logger.Info(msg, "path", c.Request.URL.Path, "status", status, "error", err)
	c.JSON(status, Response{Success: false, Error: err.Error()})
}

// listOptions reads the optional limit and offset query parameters
func listOptions(c *gin.Context) (service.ListOptions, error) {
	var opts service.ListOptions
	for name, dst := range map[string]*int{"limit": &opts.Limit, "offset": &opts.Offset} {
		raw := c.Query(name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return opts, fmt.Errorf("%w: %s must be a number", entity.ErrInvalidBill, name)
		}
		*dst = n
	}
	return opts, nil
}

// statusFor maps domain errors to HTTP statuses
func statusFor(err error) int {
	switch {
	case errors.Is(err, entity.ErrBillNotFound):
		return http.StatusNotFound
	case errors.Is(err, entity.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, entity.ErrInvalidReceipt), errors.Is(err, entity.ErrInvalidBill):
		return http.StatusBadRequest
	case errors.Is(err, entity.ErrAlreadySubmitted):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func readUpload(header *multipart.FileHeader) ([]byte, error) {
	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
