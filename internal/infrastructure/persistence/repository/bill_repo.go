package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/garyjia/expense-bills/internal/application/port"
	"github.com/garyjia/expense-bills/internal/domain/entity"
	"github.com/garyjia/expense-bills/internal/infrastructure/persistence/sqlite"
)

const billColumns = `id, email, type, name, amount, vat, pct, date, commentary, status,
	comment_admin, file_url, file_name, file_type, file_path, created_at, updated_at`

// BillRepository implements port.BillRepository
type BillRepository struct {
	db     *sql.DB
	logger *zap.Logger
	now    func() time.Time
}

// NewBillRepository creates a new bill repository
func NewBillRepository(db *sql.DB, logger *zap.Logger) *BillRepository {
	return &BillRepository{
		db:     db,
		logger: logger,
		now:    time.Now,
	}
}

// List returns bills matching the filter, newest date first
func (r *BillRepository) List(ctx context.Context, filter port.BillFilter) ([]*entity.Bill, error) {
	var (
		where []string
		args  []interface{}
	)
	if filter.Email != "" {
		where = append(where, "email = ?")
		args = append(args, filter.Email)
	}
	where = append(where, "status <> ?")
	args = append(args, entity.BillStatusDraft)

	query := "SELECT " + billColumns + " FROM bills WHERE " + strings.Join(where, " AND ")
	query += " ORDER BY date DESC, created_at DESC"
	if filter.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := sqlite.ExecutorFrom(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list bills",
			zap.String("email", filter.Email),
			zap.Error(err))
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	defer rows.Close()

	bills := []*entity.Bill{}
	for rows.Next() {
		bill, err := scanBill(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bill: %w", err)
		}
		bills = append(bills, bill)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bills: %w", err)
	}
	return bills, nil
}

// GetByID retrieves a bill by its ID
func (r *BillRepository) GetByID(ctx context.Context, id string) (*entity.Bill, error) {
	row := sqlite.ExecutorFrom(ctx, r.db).QueryRowContext(ctx,
		"SELECT "+billColumns+" FROM bills WHERE id = ?", id)

	bill, err := scanBill(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrBillNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get bill by ID",
			zap.String("id", id),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}
	return bill, nil
}

// Create inserts a new bill
func (r *BillRepository) Create(ctx context.Context, bill *entity.Bill) error {
	if bill.ID == "" {
		bill.ID = uuid.NewString()
	}
	now := r.now().UTC()
	if bill.CreatedAt.IsZero() {
		bill.CreatedAt = now
	}
	bill.UpdatedAt = now
	if bill.Status == "" {
		bill.Status = entity.BillStatusDraft
	}

	query := `
		INSERT INTO bills (` + billColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := sqlite.ExecutorFrom(ctx, r.db).ExecContext(ctx, query,
		bill.ID, bill.Email, bill.Type, bill.Name, bill.Amount, bill.VAT, bill.PCT,
		bill.Date, bill.Commentary, bill.Status, bill.CommentAdmin,
		bill.FileURL, bill.FileName, bill.FileType, bill.FilePath,
		bill.CreatedAt, bill.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create bill",
			zap.String("id", bill.ID),
			zap.String("email", bill.Email),
			zap.Error(err))
		return fmt.Errorf("failed to create bill: %w", err)
	}
	return nil
}

// Update overwrites the mutable columns of a bill
func (r *BillRepository) Update(ctx context.Context, bill *entity.Bill) error {
	bill.UpdatedAt = r.now().UTC()

	query := `
		UPDATE bills SET
			type = ?, name = ?, amount = ?, vat = ?, pct = ?, date = ?,
			commentary = ?, status = ?, comment_admin = ?,
			file_url = ?, file_name = ?, file_type = ?, file_path = ?,
			updated_at = ?
		WHERE id = ?
	`
	result, err := sqlite.ExecutorFrom(ctx, r.db).ExecContext(ctx, query,
		bill.Type, bill.Name, bill.Amount, bill.VAT, bill.PCT, bill.Date,
		bill.Commentary, bill.Status, bill.CommentAdmin,
		bill.FileURL, bill.FileName, bill.FileType, bill.FilePath,
		bill.UpdatedAt, bill.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update bill",
			zap.String("id", bill.ID),
			zap.Error(err))
		return fmt.Errorf("failed to update bill: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return entity.ErrBillNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBill(row rowScanner) (*entity.Bill, error) {
	var b entity.Bill
	err := row.Scan(
		&b.ID, &b.Email, &b.Type, &b.Name, &b.Amount, &b.VAT, &b.PCT,
		&b.Date, &b.Commentary, &b.Status, &b.CommentAdmin,
		&b.FileURL, &b.FileName, &b.FileType, &b.FilePath,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Verify interface compliance
var _ port.BillRepository = (*BillRepository)(nil)
