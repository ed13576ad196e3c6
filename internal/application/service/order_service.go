package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/commandes-api/internal/domain/entity"
	"github.com/sangkips/commandes-api/internal/domain/enum"
	"github.com/sangkips/commandes-api/internal/domain/ledger"
	"github.com/sangkips/commandes-api/internal/domain/repository"
	"github.com/sangkips/commandes-api/pkg/apperror"
	"github.com/sangkips/commandes-api/pkg/pagination"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// OrderService handles order-related operations
type OrderService struct {
	orderRepo  repository.OrderRepository
	clientRepo repository.ClientRepository
	typeRepo   repository.TypeRepository
	policy     ledger.Policy
	log        *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(
	orderRepo repository.OrderRepository,
	clientRepo repository.ClientRepository,
	typeRepo repository.TypeRepository,
	log *zap.Logger,
) *OrderService {
	return &OrderService{
		orderRepo:  orderRepo,
		clientRepo: clientRepo,
		typeRepo:   typeRepo,
		policy:     ledger.DefaultPolicy,
		log:        log,
	}
}

// OrderItemInput represents an item in an order
type OrderItemInput struct {
	Designation string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
}

// OrderInput is the full set of caller-supplied order fields. Updates replace
// every field and every item.
type OrderInput struct {
	ClientID        uuid.UUID
	TypeID          uuid.UUID
	Date            time.Time
	Status          string
	Variant         enum.OrderVariant
	PreviousBalance decimal.Decimal
	Items           []OrderItemInput
}

// CreateOrderInput represents the create order input
type CreateOrderInput struct {
	OrderInput
	PaidAmount decimal.Decimal
}

// UpdateOrderInput represents the update order input
type UpdateOrderInput struct {
	ID uuid.UUID
	OrderInput
}

// priced is a validated order input with its ledger totals
type priced struct {
	input  *OrderInput
	totals ledger.Totals
}

// price validates in against the ledger policy and computes its totals.
// Nothing is read or written before it succeeds.
func (s *OrderService) price(in *OrderInput) (*priced, error) {
	var errs []apperror.FieldError
	if in.ClientID == uuid.Nil {
		errs = append(errs, apperror.FieldError{Field: "client_id", Message: "is required"})
	}
	if in.TypeID == uuid.Nil {
		errs = append(errs, apperror.FieldError{Field: "type_id", Message: "is required"})
	}
	if in.Date.IsZero() {
		errs = append(errs, apperror.FieldError{Field: "date", Message: "is required"})
	}
	in.Status = strings.TrimSpace(in.Status)
	if in.Status == "" {
		errs = append(errs, apperror.FieldError{Field: "status", Message: "is required"})
	}
	if in.Variant == "" {
		in.Variant = enum.OrderVariantMultiItem
	}
	if !in.Variant.Valid() {
		errs = append(errs, apperror.FieldError{Field: "variant", Message: "must be multi_item or single_line"})
	}
	if in.Variant == enum.OrderVariantSingleLine {
		if len(in.Items) != 1 {
			errs = append(errs, apperror.FieldError{Field: "items", Message: "a single-line order has exactly one item"})
		}
		if !in.PreviousBalance.IsZero() {
			errs = append(errs, apperror.FieldError{Field: "previous_balance", Message: "a single-line order has no previous balance"})
		}
	}

	lines := make([]ledger.Line, len(in.Items))
	for i, it := range in.Items {
		lines[i] = ledger.Line{
			Designation: strings.TrimSpace(it.Designation),
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		}
	}
	errs = append(errs, s.policy.Validate(lines)...)
	if in.PreviousBalance.IsNegative() {
		errs = append(errs, apperror.FieldError{Field: "previous_balance", Message: "must not be negative"})
	}
	if len(errs) > 0 {
		return nil, apperror.NewValidationError(errs)
	}

	totals, err := s.policy.ComputeTotals(lines, in.PreviousBalance)
	if err != nil {
		return nil, err
	}
	return &priced{input: in, totals: totals}, nil
}

// items stamps each line total computed by the ledger
func (p *priced) items() []entity.Item {
	items := make([]entity.Item, len(p.input.Items))
	for i, it := range p.input.Items {
		items[i] = entity.Item{
			Position:    i,
			Designation: strings.TrimSpace(it.Designation),
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Total:       p.totals.Lines[i],
		}
	}
	return items
}

// apply copies the header fields and totals onto order
func (p *priced) apply(order *entity.Order) {
	order.ClientID = p.input.ClientID
	order.TypeID = p.input.TypeID
	order.Date = p.input.Date
	order.Status = p.input.Status
	order.Variant = p.input.Variant
	order.Subtotal = p.totals.Subtotal
	order.PreviousBalance = p.input.PreviousBalance
	order.TotalDue = p.totals.TotalDue
}

// settle returns the rest once paid is recorded against the total due
func (p *priced) settle(paid decimal.Decimal) (decimal.Decimal, error) {
	if p.input.Variant == enum.OrderVariantSingleLine {
		it := p.input.Items[0]
		legacy, err := ledger.ComputeLegacyTotals(it.Quantity, it.UnitPrice, paid)
		if err != nil {
			return decimal.Zero, err
		}
		return legacy.Rest, nil
	}
	return ledger.SettlePayment(p.totals.TotalDue, paid)
}

func (s *OrderService) ensureReferences(ctx context.Context, clientID, typeID uuid.UUID) error {
	client, err := s.clientRepo.GetByID(ctx, clientID)
	if err != nil {
		return err
	}
	if client == nil {
		return apperror.NewNotFoundError("Client")
	}
	t, err := s.typeRepo.GetByID(ctx, typeID)
	if err != nil {
		return err
	}
	if t == nil {
		return apperror.NewNotFoundError("Type")
	}
	return nil
}

// CreateOrder validates the input, computes totals and stores the order with its items
func (s *OrderService) CreateOrder(ctx context.Context, input *CreateOrderInput) (*entity.Order, error) {
	p, err := s.price(&input.OrderInput)
	if err != nil {
		return nil, err
	}
	rest, err := p.settle(input.PaidAmount)
	if err != nil {
		return nil, err
	}
	if err := s.ensureReferences(ctx, input.ClientID, input.TypeID); err != nil {
		return nil, err
	}

	order := &entity.Order{PaidAmount: input.PaidAmount, Rest: rest, Items: p.items()}
	p.apply(order)

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}
	s.log.Info("order created",
		zap.String("order_id", order.ID.String()),
		zap.String("variant", order.Variant.String()),
		zap.Int("items", len(order.Items)),
		zap.String("total_due", order.TotalDue.StringFixed(2)),
	)

	return s.GetOrder(ctx, order.ID)
}

// UpdateOrder replaces the order header and all of its items. The amount
// already paid is carried forward, so the new total due may not fall below it.
func (s *OrderService) UpdateOrder(ctx context.Context, input *UpdateOrderInput) (*entity.Order, error) {
	p, err := s.price(&input.OrderInput)
	if err != nil {
		return nil, err
	}
	if err := s.ensureReferences(ctx, input.ClientID, input.TypeID); err != nil {
		return nil, err
	}

	err = s.orderRepo.WithTx(ctx, func(tx repository.OrderRepository) error {
		order, err := tx.GetByID(ctx, input.ID)
		if err != nil {
			return err
		}
		if order == nil {
			return apperror.NewNotFoundError("Order")
		}

		rest, err := p.settle(order.PaidAmount)
		if err != nil {
			return apperror.NewFieldError("items",
				"order total "+p.totals.TotalDue.StringFixed(2)+" is below the amount already paid ("+order.PaidAmount.StringFixed(2)+")")
		}

		p.apply(order)
		order.Rest = rest
		if err := tx.Update(ctx, order); err != nil {
			return err
		}
		return tx.ReplaceItems(ctx, order.ID, p.items())
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("order updated",
		zap.String("order_id", input.ID.String()),
		zap.Int("items", len(input.Items)),
		zap.String("total_due", p.totals.TotalDue.StringFixed(2)),
	)
	return s.GetOrder(ctx, input.ID)
}

// RecordPayment sets the amount paid on an order and recomputes what is still owed
func (s *OrderService) RecordPayment(ctx context.Context, id uuid.UUID, paid decimal.Decimal) (*entity.Order, error) {
	err := s.orderRepo.WithTx(ctx, func(tx repository.OrderRepository) error {
		order, err := tx.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if order == nil {
			return apperror.NewNotFoundError("Order")
		}

		rest, err := ledger.SettlePayment(order.TotalDue, paid)
		if err != nil {
			return err
		}
		return tx.UpdatePayment(ctx, id, paid, rest)
	})
	if err != nil {
		return nil, err
	}
	return s.GetOrder(ctx, id)
}

// GetOrder retrieves an order with its client, type and items
func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return order, nil
}

// DeleteOrder deletes an order and its items
func (s *OrderService) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if order == nil {
		return apperror.NewNotFoundError("Order")
	}
	if err := s.orderRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("order deleted", zap.String("order_id", id.String()))
	return nil
}

// ListOrders lists orders with filtering
func (s *OrderService) ListOrders(ctx context.Context, params *repository.OrderFilterParams) (*pagination.PaginatedResult[entity.Order], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()

	orders, total, err := s.orderRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(orders, pag), nil
}

// ListOrdersWithCursor lists orders with cursor-based pagination
func (s *OrderService) ListOrdersWithCursor(ctx context.Context, params *repository.OrderCursorFilterParams) (*pagination.CursorPaginatedResult[entity.Order], error) {
	if params.Cursor == nil {
		params.Cursor = pagination.DefaultCursorParams()
	}
	params.Cursor.Validate()
	if _, err := params.Cursor.DecodeCursor(); err != nil {
		return nil, apperror.NewFieldError("cursor", "is invalid")
	}

	orders, err := s.orderRepo.ListWithCursor(ctx, params)
	if err != nil {
		return nil, err
	}

	return pagination.Keyset(orders, params.Cursor, orderKey), nil
}

func orderKey(o entity.Order) pagination.Cursor {
	return pagination.Cursor{ID: o.ID.String(), CreatedAt: o.CreatedAt}
}
