package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/garyjia/expense-bills/internal/application/port"
	"github.com/garyjia/expense-bills/internal/domain/entity"
	"github.com/garyjia/expense-bills/internal/domain/workflow"
	"github.com/garyjia/expense-bills/internal/format"
)

// Logger interface for minimal logging dependency
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// ReceiptUpload is what the new bill page gets back after picking a file
type ReceiptUpload struct {
	Key      string `json:"key"`
	FileURL  string `json:"fileUrl"`
	FileName string `json:"fileName"`
}

// SubmitBillInput carries the new bill form fields
type SubmitBillInput struct {
	Key        string `json:"key"`
	Type       string `json:"type"`
	Name       string `json:"name"`
	Amount     int    `json:"amount"`
	Date       string `json:"date"`
	VAT        string `json:"vat"`
	PCT        int    `json:"pct"`
	Commentary string `json:"commentary"`
}

// ReviewInput is an admin decision on a bill
type ReviewInput struct {
	Status       string `json:"status"`
	CommentAdmin string `json:"commentAdmin"`
}

// Receipt is a stored receipt image ready to be sent to the browser
type Receipt struct {
	FileName string
	MimeType string
	Content  []byte
}

// ListOptions pages a bill list. A zero Limit returns every bill.
type ListOptions struct {
	Limit  int
	Offset int
}

// BillDetail is a single bill with what its reader may do next
type BillDetail struct {
	format.BillView
	// ReviewStatuses is filled for admins only
	ReviewStatuses []string `json:"review_statuses,omitempty"`
}

// NewBillForm describes the new bill page
type NewBillForm struct {
	ExpenseTypes  []string `json:"expense_types"`
	DefaultPCT    int      `json:"default_pct"`
	AcceptedTypes []string `json:"accepted_types"`
}

// BillService manages expense bills for the employee pages
type BillService interface {
	// ListBills returns the bills visible to user, newest first, with display strings
	ListBills(ctx context.Context, user entity.User, opts ListOptions) ([]format.BillView, error)

	// GetBill returns one bill visible to user
	GetBill(ctx context.Context, user entity.User, id string) (*BillDetail, error)

	// NewBillForm returns the metadata of the new bill page
	NewBillForm() NewBillForm

	// UploadReceipt stores a receipt and opens a draft bill holding it
	UploadReceipt(ctx context.Context, user entity.User, file *format.UploadCandidate, content []byte) (*ReceiptUpload, error)

	// SubmitBill fills in a draft bill and marks it pending
	SubmitBill(ctx context.Context, user entity.User, input SubmitBillInput) (*entity.Bill, error)

	// ReviewBill lets an admin accept or refuse a bill
	ReviewBill(ctx context.Context, user entity.User, id string, input ReviewInput) (*entity.Bill, error)

	// Receipt loads the receipt image of a bill
	Receipt(ctx context.Context, user entity.User, id string) (*Receipt, error)
}

type billServiceImpl struct {
	billRepo  port.BillRepository
	files     port.FileStorage
	txManager port.TransactionManager
	logger    Logger
	newKey    func() string
}

// NewBillService creates a new BillService
func NewBillService(
	billRepo port.BillRepository,
	files port.FileStorage,
	txManager port.TransactionManager,
	logger Logger,
) BillService {
	return &billServiceImpl{
		billRepo:  billRepo,
		files:     files,
		txManager: txManager,
		logger:    logger,
		newKey:    uuid.NewString,
	}
}

// ListBills lists the user's submitted bills; admins see everyone's
func (s *billServiceImpl) ListBills(ctx context.Context, user entity.User, opts ListOptions) ([]format.BillView, error) {
	if opts.Limit < 0 || opts.Offset < 0 {
		return nil, fmt.Errorf("%w: limit and offset must not be negative", entity.ErrInvalidBill)
	}

	filter := port.BillFilter{Email: user.Email, Limit: opts.Limit, Offset: opts.Offset}
	if user.IsAdmin() {
		filter.Email = ""
	}

	bills, err := s.billRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list bills", "email", user.Email, "error", err)
		return nil, fmt.Errorf("list bills: %w", err)
	}

	views := format.FormatBills(bills)
	for _, v := range views {
		if v.DisplayDate == v.Date {
			s.logger.Info("Bill date left unformatted", "bill_id", v.ID, "date", v.Date)
		}
	}
	return views, nil
}

// GetBill returns a single bill
func (s *billServiceImpl) GetBill(ctx context.Context, user entity.User, id string) (*BillDetail, error) {
	bill, err := s.visibleBill(ctx, user, id)
	if err != nil {
		return nil, err
	}

	detail := &BillDetail{BillView: format.ViewOf(bill)}
	if user.IsAdmin() {
		lifecycle, err := workflow.NewBillMachine(bill.Status)
		if err != nil {
			return nil, fmt.Errorf("get bill: %w", err)
		}
		detail.ReviewStatuses = workflow.ReviewStatuses(lifecycle)
	}
	return detail, nil
}

// NewBillForm returns the static parts of the new bill page
func (s *billServiceImpl) NewBillForm() NewBillForm {
	return NewBillForm{
		ExpenseTypes:  append([]string(nil), entity.ExpenseTypes...),
		DefaultPCT:    entity.DefaultPCT,
		AcceptedTypes: append([]string(nil), format.AcceptedReceiptTypes...),
	}
}

// UploadReceipt checks the picked file, stores it and opens a draft bill
func (s *billServiceImpl) UploadReceipt(ctx context.Context, user entity.User, file *format.UploadCandidate, content []byte) (*ReceiptUpload, error) {
	if !format.IsAcceptableReceipt(file) {
		s.logger.Info("Receipt rejected at selection", "email", user.Email, "type", receiptType(file))
		return nil, entity.ErrInvalidReceipt
	}
	if err := checkContent(content); err != nil {
		s.logger.Info("Receipt content rejected", "email", user.Email, "file_name", file.Name, "error", err)
		return nil, err
	}

	key := s.newKey()
	filePath := receiptFilePath(key, file.Type)
	if err := s.files.Save(ctx, filePath, content); err != nil {
		s.logger.Error("Failed to store receipt", "key", key, "error", err)
		return nil, fmt.Errorf("store receipt: %w", err)
	}

	bill := &entity.Bill{
		ID:       key,
		Email:    user.Email,
		Status:   entity.BillStatusDraft,
		PCT:      entity.DefaultPCT,
		FileURL:  ReceiptURL(key),
		FileName: file.Name,
		FileType: file.Type,
		FilePath: filePath,
	}
	if err := s.billRepo.Create(ctx, bill); err != nil {
		if delErr := s.files.Delete(ctx, filePath); delErr != nil {
			s.logger.Error("Failed to clean up orphan receipt", "path", filePath, "error", delErr)
		}
		s.logger.Error("Failed to create draft bill", "key", key, "error", err)
		return nil, fmt.Errorf("create bill: %w", err)
	}

	s.logger.Info("Receipt uploaded", "key", key, "email", user.Email, "file_name", file.Name)
	return &ReceiptUpload{Key: key, FileURL: bill.FileURL, FileName: bill.FileName}, nil
}

// SubmitBill completes a draft bill. The receipt is checked again here so a
// client skipping the upload step check cannot attach anything else.
func (s *billServiceImpl) SubmitBill(ctx context.Context, user entity.User, input SubmitBillInput) (*entity.Bill, error) {
	if err := validateSubmission(&input); err != nil {
		return nil, err
	}

	var bill *entity.Bill
	err := s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		bill, err = s.billRepo.GetByID(ctx, input.Key)
		if err != nil {
			return err
		}
		if bill.Email != user.Email {
			return entity.ErrForbidden
		}
		lifecycle, err := workflow.NewBillMachine(bill.Status)
		if err != nil {
			return err
		}
		if !lifecycle.CanFire(workflow.TriggerSubmit) {
			return entity.ErrAlreadySubmitted
		}
		if err := s.recheckReceipt(ctx, bill); err != nil {
			return err
		}
		if err := lifecycle.Fire(workflow.TriggerSubmit); err != nil {
			return err
		}

		bill.Type = input.Type
		bill.Name = input.Name
		bill.Amount = input.Amount
		bill.Date = input.Date
		bill.VAT = input.VAT
		bill.PCT = input.PCT
		bill.Commentary = input.Commentary
		bill.Status = lifecycle.State().String()
		return s.billRepo.Update(ctx, bill)
	})
	if err != nil {
		s.logger.Error("Failed to submit bill", "key", input.Key, "email", user.Email, "error", err)
		return nil, fmt.Errorf("submit bill: %w", err)
	}

	s.logger.Info("Bill submitted", "bill_id", bill.ID, "email", user.Email, "amount", bill.Amount)
	return bill, nil
}

// ReviewBill records an admin decision
func (s *billServiceImpl) ReviewBill(ctx context.Context, user entity.User, id string, input ReviewInput) (*entity.Bill, error) {
	if !user.IsAdmin() {
		return nil, entity.ErrForbidden
	}
	trigger, ok := workflow.ReviewTrigger(input.Status)
	if !ok {
		return nil, fmt.Errorf("%w: unknown status %q", entity.ErrInvalidBill, input.Status)
	}

	var bill *entity.Bill
	err := s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		bill, err = s.billRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		lifecycle, err := workflow.NewBillMachine(bill.Status)
		if err != nil {
			return err
		}
		if err := lifecycle.Fire(trigger); err != nil {
			return fmt.Errorf("%w: %v", entity.ErrInvalidBill, err)
		}
		bill.Status = lifecycle.State().String()
		bill.CommentAdmin = input.CommentAdmin
		return s.billRepo.Update(ctx, bill)
	})
	if err != nil {
		s.logger.Error("Failed to review bill", "bill_id", id, "error", err)
		return nil, fmt.Errorf("review bill: %w", err)
	}

	s.logger.Info("Bill reviewed", "bill_id", id, "status", input.Status, "reviewer", user.Email)
	return bill, nil
}

// Receipt returns the stored receipt of a bill
func (s *billServiceImpl) Receipt(ctx context.Context, user entity.User, id string) (*Receipt, error) {
	bill, err := s.visibleBill(ctx, user, id)
	if err != nil {
		return nil, err
	}

	if bill.FilePath == "" || !s.files.Exists(ctx, bill.FilePath) {
		s.logger.Info("Receipt file missing", "bill_id", id, "path", bill.FilePath)
		return nil, fmt.Errorf("%w: receipt of bill %s", entity.ErrBillNotFound, id)
	}

	content, err := s.files.Read(ctx, bill.FilePath)
	if err != nil {
		s.logger.Error("Failed to read receipt", "bill_id", id, "path", bill.FilePath, "error", err)
		return nil, fmt.Errorf("read receipt: %w", err)
	}

	return &Receipt{
		FileName: bill.FileName,
		MimeType: mimetype.Detect(content).String(),
		Content:  content,
	}, nil
}

func (s *billServiceImpl) visibleBill(ctx context.Context, user entity.User, id string) (*entity.Bill, error) {
	bill, err := s.billRepo.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, entity.ErrBillNotFound) {
			s.logger.Error("Failed to get bill", "bill_id", id, "error", err)
		}
		return nil, fmt.Errorf("get bill: %w", err)
	}
	if !user.CanSee(bill) {
		return nil, entity.ErrForbidden
	}
	return bill, nil
}

func (s *billServiceImpl) recheckReceipt(ctx context.Context, bill *entity.Bill) error {
	if !format.IsAcceptableReceipt(&format.UploadCandidate{Name: bill.FileName, Type: bill.FileType}) {
		return entity.ErrInvalidReceipt
	}
	content, err := s.files.Read(ctx, bill.FilePath)
	if err != nil {
		return fmt.Errorf("%w: receipt file missing", entity.ErrInvalidReceipt)
	}
	return checkContent(content)
}

// ReceiptURL is where the browser fetches the receipt of a bill
func ReceiptURL(billID string) string {
	return "/api/bills/" + billID + "/receipt"
}

// checkContent sniffs the bytes so a renamed text file does not pass as an image
func checkContent(content []byte) error {
	if len(content) == 0 {
		return fmt.Errorf("%w: empty file", entity.ErrInvalidReceipt)
	}
	detected := mimetype.Detect(content)
	if !format.IsAcceptableReceiptType(detected.String()) {
		return fmt.Errorf("%w: content is %s", entity.ErrInvalidReceipt, detected.String())
	}
	return nil
}

func receiptFilePath(key, mimeType string) string {
	ext := ".jpg"
	if mimeType == "image/png" {
		ext = ".png"
	}
	prefix := key
	if len(prefix) > 2 {
		prefix = prefix[:2]
	}
	return path.Join(prefix, key+ext)
}

func receiptType(file *format.UploadCandidate) string {
	if file == nil {
		return ""
	}
	return file.Type
}

func validateSubmission(input *SubmitBillInput) error {
	input.Key = strings.TrimSpace(input.Key)
	if input.Key == "" {
		return fmt.Errorf("%w: missing receipt key", entity.ErrInvalidBill)
	}
	if !isCanonicalDate(input.Date) {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", entity.ErrInvalidBill)
	}
	if input.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", entity.ErrInvalidBill)
	}
	if input.PCT == 0 {
		input.PCT = entity.DefaultPCT
	}
	if input.PCT < 0 || input.PCT > 100 {
		return fmt.Errorf("%w: pct must be between 0 and 100", entity.ErrInvalidBill)
	}
	if input.Type == "" {
		input.Type = entity.ExpenseTypes[0]
	}
	return nil
}

// isCanonicalDate accepts only zero-padded YYYY-MM-DD calendar dates. Bills
// are ordered by comparing stored dates as strings.
func isCanonicalDate(s string) bool {
	if len(s) != len(time.DateOnly) {
		return false
	}
	for i := 0; i < len(s); i++ {
		if i == 4 || i == 7 {
			if s[i] != '-' {
				return false
			}
			continue
		}
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	_, err := time.Parse(time.DateOnly, s)
	return err == nil
}
