package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/commandes-api/internal/domain/entity"
	domainRepo "github.com/sangkips/commandes-api/internal/domain/repository"
	"github.com/sangkips/commandes-api/pkg/pagination"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *gorm.DB) domainRepo.OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) WithTx(ctx context.Context, fn func(txRepo domainRepo.OrderRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&orderRepository{db: tx})
	})
}

func (r *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	for i := range order.Items {
		order.Items[i].Position = i
	}
	return r.db.WithContext(ctx).Omit("Client", "Type").Create(order).Error
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var order entity.Order
	err := r.db.WithContext(ctx).First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *orderRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var order entity.Order
	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Type").
		Preload("Items", itemsByPosition).
		First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *orderRepository) Update(ctx context.Context, order *entity.Order) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(order).Error
}

func (r *orderRepository) ReplaceItems(ctx context.Context, orderID uuid.UUID, items []entity.Item) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("order_id = ?", orderID).Delete(&entity.Item{}).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].ID = uuid.Nil
		items[i].OrderID = orderID
		items[i].Position = i
	}
	return db.Create(&items).Error
}

func (r *orderRepository) UpdatePayment(ctx context.Context, id uuid.UUID, paid, rest decimal.Decimal) error {
	return r.db.WithContext(ctx).Model(&entity.Order{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"paid_amount": paid, "rest": rest}).Error
}

func (r *orderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&entity.Item{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Order{}, "id = ?", id).Error
	})
}

func (r *orderRepository) List(ctx context.Context, params *domainRepo.OrderFilterParams) ([]entity.Order, int64, error) {
	var orders []entity.Order
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Order{}).Scopes(OrderFilterScope(params.OrderFilter))
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Client").
		Preload("Type").
		Order(orderSort(params.SortBy, params.SortOrder)).
		Find(&orders).Error

	return orders, total, err
}

// ListWithCursor fetches limit+1 rows past the cursor so the caller can detect
// a further page. Rows are ordered by (created_at, id) ascending, or descending
// when walking backwards from a cursor.
func (r *orderRepository) ListWithCursor(ctx context.Context, params *domainRepo.OrderCursorFilterParams) ([]entity.Order, error) {
	var orders []entity.Order

	if params.Cursor == nil {
		params.Cursor = pagination.DefaultCursorParams()
	}
	params.Cursor.Validate()
	cursor, err := params.Cursor.DecodeCursor()
	if err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx).Model(&entity.Order{}).Scopes(OrderFilterScope(params.OrderFilter))
	backwards := params.Cursor.Backwards()
	if cursor != nil {
		if backwards {
			query = query.Where("(commandes.created_at, commandes.id) < (?, ?)", cursor.CreatedAt, cursor.ID)
		} else {
			query = query.Where("(commandes.created_at, commandes.id) > (?, ?)", cursor.CreatedAt, cursor.ID)
		}
	}

	order := "commandes.created_at ASC, commandes.id ASC"
	if backwards {
		order = "commandes.created_at DESC, commandes.id DESC"
	}
	err = query.Limit(params.Cursor.Limit + 1).
		Preload("Client").
		Preload("Type").
		Order(order).
		Find(&orders).Error
	return orders, err
}

func (r *orderRepository) ListForExport(ctx context.Context, filter domainRepo.OrderFilter) ([]entity.Order, error) {
	var orders []entity.Order
	err := r.db.WithContext(ctx).Model(&entity.Order{}).
		Scopes(OrderFilterScope(filter)).
		Preload("Client").
		Preload("Type").
		Preload("Items", itemsByPosition).
		Order("commandes.date ASC, commandes.created_at ASC").
		Find(&orders).Error
	return orders, err
}
