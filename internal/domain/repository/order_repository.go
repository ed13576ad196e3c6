package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/commandes-api/internal/domain/entity"
	"github.com/sangkips/commandes-api/internal/domain/enum"
	"github.com/sangkips/commandes-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// OrderRepository defines the interface for order data operations
type OrderRepository interface {
	// Create inserts the order and its items.
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	// GetWithItems loads the order with its client, type and items ordered by position.
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	// Update saves the order header only. Items are changed through ReplaceItems.
	Update(ctx context.Context, order *entity.Order) error
	// ReplaceItems deletes every item of the order and inserts items.
	ReplaceItems(ctx context.Context, orderID uuid.UUID, items []entity.Item) error
	UpdatePayment(ctx context.Context, id uuid.UUID, paid, rest decimal.Decimal) error
	// Delete removes the order and its items.
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *OrderFilterParams) ([]entity.Order, int64, error)
	// ListWithCursor returns up to limit+1 orders after the cursor. Walking
	// backwards (Direction prev with a cursor) yields newest first.
	ListWithCursor(ctx context.Context, params *OrderCursorFilterParams) ([]entity.Order, error)
	// ListForExport returns every matching order with its client, type and items, oldest date first.
	ListForExport(ctx context.Context, filter OrderFilter) ([]entity.Order, error)
	// WithTx runs fn inside a transaction with a repository bound to it.
	WithTx(ctx context.Context, fn func(txRepo OrderRepository) error) error
}

// OrderFilter holds the filters shared by page and cursor listings
type OrderFilter struct {
	ClientID  *uuid.UUID
	TypeID    *uuid.UUID
	Status    string
	Variant   *enum.OrderVariant
	StartDate *time.Time
	EndDate   *time.Time
}

// OrderFilterParams contains filtering parameters for order queries
type OrderFilterParams struct {
	OrderFilter
	Pagination *pagination.PaginationParams
	SortBy     string
	SortOrder  string
}

// OrderCursorFilterParams contains cursor-based filtering for order queries
type OrderCursorFilterParams struct {
	OrderFilter
	Cursor *pagination.CursorParams
}
