package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/commandes-api/internal/application/service"
	"github.com/sangkips/commandes-api/internal/domain/enum"
	"github.com/sangkips/commandes-api/internal/presentation/http/dto/request"
	"github.com/sangkips/commandes-api/internal/presentation/http/dto/response"
	"github.com/sangkips/commandes-api/pkg/apperror"
	"github.com/sangkips/commandes-api/pkg/receipt"
)

// ReceiptHandler serves rendered receipts
type ReceiptHandler struct {
	receiptService *service.ReceiptService
}

// NewReceiptHandler creates a new receipt handler
func NewReceiptHandler(receiptService *service.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService}
}

func receiptFormat(c *gin.Context) (enum.ReceiptFormat, bool) {
	format, ok := enum.ParseReceiptFormat(c.Query("format"))
	if !ok {
		response.Error(c, apperror.NewFieldError("format", "must be pdf or escpos"))
	}
	return format, ok
}

func sendReceipt(c *gin.Context, file *service.DownloadFile) {
	c.Header("X-Receipt-Pages", strconv.Itoa(file.Pages))
	response.Attachment(c, file.Filename, file.ContentType, file.Data)
}

// Download handles rendering the receipt of a stored order
// @Summary Order receipt
// @Tags receipts
// @Security BearerAuth
// @Produce application/pdf
// @Param id path string true "Order ID"
// @Param format query string false "pdf (default) or escpos"
// @Success 200 {file} file
// @Failure 404 {object} response.APIResponse
// @Router /orders/{id}/receipt [get]
func (h *ReceiptHandler) Download(c *gin.Context) {
	id, ok := paramID(c, "order")
	if !ok {
		return
	}
	format, ok := receiptFormat(c)
	if !ok {
		return
	}

	file, err := h.receiptService.OrderReceipt(c.Request.Context(), id, format)
	if err != nil {
		response.Error(c, err)
		return
	}

	sendReceipt(c, file)
}

// Preview handles rendering a receipt that is not stored
func (h *ReceiptHandler) Preview(c *gin.Context) {
	format, ok := receiptFormat(c)
	if !ok {
		return
	}

	var req request.ReceiptPreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	date, err := parseDate("date", req.Date)
	if err != nil {
		response.Error(c, err)
		return
	}

	view := receipt.View{
		Title:      req.Title,
		ClientName: req.ClientName,
		TypeName:   req.TypeName,
		Status:     req.Status,
		Items:      make([]receipt.Item, len(req.Items)),
	}
	if date != nil {
		view.Date = *date
	}
	for i, it := range req.Items {
		view.Items[i] = receipt.Item{
			Designation: it.Designation,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		}
	}

	file, err := h.receiptService.Preview(c.Request.Context(), view, format)
	if err != nil {
		response.Error(c, err)
		return
	}

	sendReceipt(c, file)
}
