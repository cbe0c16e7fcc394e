package port

import (
	"context"

	"github.com/garyjia/expense-bills/internal/domain/entity"
)

// BillFilter narrows BillRepository.List. Drafts are never listed.
type BillFilter struct {
	Email  string // empty means every owner
	Limit  int    // 0 means no limit
	Offset int
}

// BillRepository defines persistence operations for Bill
type BillRepository interface {
	// List returns bills matching the filter, newest date first
	List(ctx context.Context, filter BillFilter) ([]*entity.Bill, error)

	// GetByID returns entity.ErrBillNotFound when the bill does not exist
	GetByID(ctx context.Context, id string) (*entity.Bill, error)

	// Create stores a new bill; ID, CreatedAt and UpdatedAt are filled in when empty
	Create(ctx context.Context, bill *entity.Bill) error

	// Update overwrites every mutable column of an existing bill
	Update(ctx context.Context, bill *entity.Bill) error
}

// TransactionManager handles database transactions
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
