package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/commandes-api/internal/application/service"
	"github.com/sangkips/commandes-api/internal/presentation/http/dto/response"
)

// PrinterHandler handles receipt printer requests
type PrinterHandler struct {
	printerService *service.PrinterService
}

// NewPrinterHandler creates a new printer handler
func NewPrinterHandler(printerService *service.PrinterService) *PrinterHandler {
	return &PrinterHandler{printerService: printerService}
}

// Status handles reporting the printer state
func (h *PrinterHandler) Status(c *gin.Context) {
	response.OK(c, "Printer status retrieved successfully", h.printerService.Status(c.Request.Context()))
}

// PrintOrder handles sending an order ticket to the printer
func (h *PrinterHandler) PrintOrder(c *gin.Context) {
	id, ok := paramID(c, "order")
	if !ok {
		return
	}

	result, err := h.printerService.PrintOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Ticket sent to printer", result)
}
