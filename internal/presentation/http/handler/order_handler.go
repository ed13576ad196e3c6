package handler

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/commandes-api/internal/application/service"
	"github.com/sangkips/commandes-api/internal/domain/enum"
	"github.com/sangkips/commandes-api/internal/domain/repository"
	"github.com/sangkips/commandes-api/internal/presentation/http/dto/request"
	"github.com/sangkips/commandes-api/internal/presentation/http/dto/response"
	"github.com/sangkips/commandes-api/pkg/apperror"
	"github.com/sangkips/commandes-api/pkg/pagination"
	"github.com/sangkips/commandes-api/pkg/utils"
)

// OrderHandler handles order-related HTTP requests
type OrderHandler struct {
	orderService  *service.OrderService
	exportService *service.ExportService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService, exportService *service.ExportService) *OrderHandler {
	return &OrderHandler{orderService: orderService, exportService: exportService}
}

// orderFilter turns the query string into repository filters
func orderFilter(req *request.OrderFilterRequest) (repository.OrderFilter, error) {
	var (
		f    repository.OrderFilter
		errs []apperror.FieldError
	)

	clientID, err := utils.ParseOptionalUUID(req.ClientID)
	if err != nil {
		errs = append(errs, apperror.FieldError{Field: "client_id", Message: "must be a UUID"})
	}
	f.ClientID = clientID

	typeID, err := utils.ParseOptionalUUID(req.TypeID)
	if err != nil {
		errs = append(errs, apperror.FieldError{Field: "type_id", Message: "must be a UUID"})
	}
	f.TypeID = typeID

	f.Status = req.Status
	if req.Variant != "" {
		v := enum.OrderVariant(req.Variant)
		if !v.Valid() {
			errs = append(errs, apperror.FieldError{Field: "variant", Message: "must be multi_item or single_line"})
		}
		f.Variant = &v
	}

	if f.StartDate, err = parseDate("date_from", req.DateFrom); err != nil {
		errs = append(errs, apperror.GetAppError(err).Errors...)
	}
	if f.EndDate, err = parseDate("date_to", req.DateTo); err != nil {
		errs = append(errs, apperror.GetAppError(err).Errors...)
	}

	if len(errs) > 0 {
		return f, apperror.NewValidationError(errs)
	}
	return f, nil
}

// orderInput maps a request body onto the service input. A body without
// items but with a root quantity or unit price is a single-line order.
func orderInput(req *request.OrderRequest) (service.OrderInput, error) {
	date, err := parseDate("date", req.Date)
	if err != nil {
		return service.OrderInput{}, err
	}

	in := service.OrderInput{
		ClientID:        req.ClientID,
		TypeID:          req.TypeID,
		Status:          req.Status,
		Variant:         enum.OrderVariant(req.Variant),
		PreviousBalance: req.PreviousBalance.Value,
	}
	if date != nil {
		in.Date = *date
	}

	root := rootLine(req)
	lines := req.Items
	if root {
		lines = []request.OrderItemRequest{{
			Designation: req.Designation,
			Quantity:    req.Quantity,
			UnitPrice:   req.UnitPrice,
		}}
		if in.Variant == "" {
			in.Variant = enum.OrderVariantSingleLine
		}
	}

	var errs []apperror.FieldError
	if req.PreviousBalance.Invalid {
		errs = append(errs, apperror.FieldError{Field: "previous_balance", Message: "must be a number"})
	}
	in.Items = make([]service.OrderItemInput, len(lines))
	for i, it := range lines {
		prefix := fmt.Sprintf("items[%d].", i)
		if root {
			prefix = ""
		}
		if msg := it.Quantity.Check(); msg != "" {
			errs = append(errs, apperror.FieldError{Field: prefix + "quantity", Message: msg})
		}
		if msg := it.UnitPrice.Check(); msg != "" {
			errs = append(errs, apperror.FieldError{Field: prefix + "unit_price", Message: msg})
		}
		in.Items[i] = service.OrderItemInput{
			Designation: it.Designation,
			Quantity:    it.Quantity.Value,
			UnitPrice:   it.UnitPrice.Value,
		}
	}
	if len(errs) > 0 {
		return in, apperror.NewValidationError(errs)
	}
	return in, nil
}

// rootLine reports whether the single line of the order was sent at the root
func rootLine(req *request.OrderRequest) bool {
	return len(req.Items) == 0 && (req.Quantity.Set || req.UnitPrice.Set)
}

// rootFields renames item errors of a root line to the fields the caller sent
func rootFields(req *request.OrderRequest, err error) error {
	if !rootLine(req) || !apperror.IsValidation(err) {
		return err
	}
	src := apperror.GetAppError(err).Errors
	errs := make([]apperror.FieldError, len(src))
	for i, fe := range src {
		fe.Field = strings.TrimPrefix(fe.Field, "items[0].")
		errs[i] = fe
	}
	return apperror.NewValidationError(errs)
}

// List handles listing orders (supports both page-based and cursor-based pagination)
func (h *OrderHandler) List(c *gin.Context) {
	var req request.OrderFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	filter, err := orderFilter(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	if req.Cursor != "" || req.Limit > 0 {
		h.listWithCursor(c, &req, filter)
		return
	}

	result, err := h.orderService.ListOrders(c.Request.Context(), &repository.OrderFilterParams{
		OrderFilter: filter,
		Pagination:  pageParams(req.Page, req.PerPage),
		SortBy:      req.SortBy,
		SortOrder:   req.SortOrder,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Orders retrieved successfully", result)
}

// listWithCursor handles listing orders with cursor-based pagination
func (h *OrderHandler) listWithCursor(c *gin.Context, req *request.OrderFilterRequest, filter repository.OrderFilter) {
	result, err := h.orderService.ListOrdersWithCursor(c.Request.Context(), &repository.OrderCursorFilterParams{
		OrderFilter: filter,
		Cursor: &pagination.CursorParams{
			Cursor:    req.Cursor,
			Direction: pagination.CursorDirection(req.Direction),
			Limit:     req.Limit,
		},
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithCursor(c, 200, "Orders retrieved successfully", result)
}

// Create handles creating an order
// @Summary Create order
// @Tags orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param Idempotency-Key header string true "Idempotency key"
// @Param request body request.OrderRequest true "Order"
// @Success 201 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /orders [post]
func (h *OrderHandler) Create(c *gin.Context) {
	var req request.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	in, err := orderInput(&req)
	if err != nil {
		response.Error(c, err)
		return
	}
	if req.PaidAmount.Invalid {
		response.Error(c, apperror.NewFieldError("paid_amount", "must be a number"))
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), &service.CreateOrderInput{
		OrderInput: in,
		PaidAmount: req.PaidAmount.Value,
	})
	if err != nil {
		response.Error(c, rootFields(&req, err))
		return
	}

	response.Created(c, "Order created successfully", order)
}

// Get handles getting a single order
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "order")
	if !ok {
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order retrieved successfully", order)
}

// Update handles replacing an order and all of its items
func (h *OrderHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "order")
	if !ok {
		return
	}

	var req request.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	in, err := orderInput(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	order, err := h.orderService.UpdateOrder(c.Request.Context(), &service.UpdateOrderInput{ID: id, OrderInput: in})
	if err != nil {
		response.Error(c, rootFields(&req, err))
		return
	}

	response.OK(c, "Order updated successfully", order)
}

// Delete handles deleting an order and its items
func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "order")
	if !ok {
		return
	}

	if err := h.orderService.DeleteOrder(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// RecordPayment handles setting the amount paid on an order
func (h *OrderHandler) RecordPayment(c *gin.Context) {
	id, ok := paramID(c, "order")
	if !ok {
		return
	}

	var req request.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	order, err := h.orderService.RecordPayment(c.Request.Context(), id, req.PaidAmount)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment recorded successfully", order)
}

// Export handles downloading the filtered orders as a spreadsheet
func (h *OrderHandler) Export(c *gin.Context) {
	var req request.OrderFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	filter, err := orderFilter(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	file, err := h.exportService.ExportOrders(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Attachment(c, file.Filename, file.ContentType, file.Data)
}
