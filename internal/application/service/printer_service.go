package service

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/sangkips/commandes-api/internal/domain/enum"
	"github.com/sangkips/commandes-api/pkg/apperror"
	"github.com/sangkips/commandes-api/pkg/printer"
	"go.uber.org/zap"
)

// PrinterService sends order tickets to the receipt printer
type PrinterService struct {
	receipts *ReceiptService
	printer  printer.Printer
	log      *zap.Logger
}

// NewPrinterService creates a new printer service
func NewPrinterService(receipts *ReceiptService, p printer.Printer, log *zap.Logger) *PrinterService {
	return &PrinterService{receipts: receipts, printer: p, log: log}
}

// PrinterStatus describes the configured printer
type PrinterStatus struct {
	Kind       string `json:"kind"`
	Configured bool   `json:"configured"`
	Reachable  bool   `json:"reachable"`
	Error      string `json:"error,omitempty"`
}

// Status reports whether the printer can be reached right now
func (s *PrinterService) Status(ctx context.Context) *PrinterStatus {
	st := &PrinterStatus{Kind: s.printer.Kind(), Configured: s.printer.Kind() != printer.KindNone}
	if !st.Configured {
		return st
	}
	if err := s.printer.Ping(ctx); err != nil {
		st.Error = err.Error()
		return st
	}
	st.Reachable = true
	return st
}

// PrintResult describes a ticket that was sent
type PrintResult struct {
	OrderID uuid.UUID `json:"order_id"`
	Printer string    `json:"printer"`
	Bytes   int       `json:"bytes"`
	Pages   int       `json:"pages"`
}

// PrintOrder renders the order ticket and sends it to the printer
func (s *PrinterService) PrintOrder(ctx context.Context, orderID uuid.UUID) (*PrintResult, error) {
	file, err := s.receipts.OrderReceipt(ctx, orderID, enum.ReceiptFormatESCPOS)
	if err != nil {
		return nil, err
	}

	if err := s.printer.Print(ctx, file.Data); err != nil {
		if errors.Is(err, printer.ErrNotConfigured) {
			return nil, apperror.NewPrinterError(http.StatusServiceUnavailable, "No receipt printer configured", err)
		}
		s.log.Warn("ticket not printed", zap.String("order_id", orderID.String()), zap.Error(err))
		return nil, apperror.NewPrinterError(http.StatusBadGateway, "Receipt printer unavailable", err)
	}

	s.log.Info("ticket printed",
		zap.String("order_id", orderID.String()),
		zap.String("printer", s.printer.Kind()),
		zap.Int("bytes", len(file.Data)),
	)
	return &PrintResult{OrderID: orderID, Printer: s.printer.Kind(), Bytes: len(file.Data), Pages: file.Pages}, nil
}
