package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/commandes-api/internal/domain/entity"
	"github.com/sangkips/commandes-api/internal/domain/enum"
	"github.com/sangkips/commandes-api/internal/domain/repository"
	"github.com/sangkips/commandes-api/pkg/apperror"
	"github.com/sangkips/commandes-api/pkg/receipt"
	"go.uber.org/zap"
)

// ReceiptSettings controls how receipts look
type ReceiptSettings struct {
	Currency    string
	Title       string
	TicketWidth int
}

// ReceiptService renders order receipts. It never writes to the store, so a
// failed render leaves the order untouched.
type ReceiptService struct {
	orderRepo repository.OrderRepository
	settings  ReceiptSettings
	log       *zap.Logger
	now       func() time.Time
}

// NewReceiptService creates a new receipt service
func NewReceiptService(orderRepo repository.OrderRepository, settings ReceiptSettings, log *zap.Logger) *ReceiptService {
	if settings.TicketWidth <= 0 {
		settings.TicketWidth = receipt.TicketWidth58mm
	}
	return &ReceiptService{
		orderRepo: orderRepo,
		settings:  settings,
		log:       log,
		now:       time.Now,
	}
}

// DownloadFile is a rendered document ready to be downloaded
type DownloadFile struct {
	Filename    string
	ContentType string
	Pages       int
	Data        []byte
}

// ViewFromOrder builds the receipt view of a loaded order
func ViewFromOrder(order *entity.Order) receipt.View {
	v := receipt.View{
		Date:   order.Date,
		Status: order.Status,
		Items:  make([]receipt.Item, len(order.Items)),
	}
	if order.Client != nil {
		v.ClientName = order.Client.Name
	}
	if order.Type != nil {
		v.TypeName = order.Type.Name
	}
	for i, it := range order.Items {
		v.Items[i] = receipt.Item{
			Designation: it.Designation,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		}
	}
	return v
}

// OrderReceipt renders the receipt of a stored order
func (s *ReceiptService) OrderReceipt(ctx context.Context, orderID uuid.UUID, format enum.ReceiptFormat) (*DownloadFile, error) {
	order, err := s.orderRepo.GetWithItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}

	file, err := s.render(ViewFromOrder(order), format)
	if err != nil {
		s.log.Warn("receipt render failed", zap.String("order_id", orderID.String()), zap.Error(err))
		return nil, err
	}
	return file, nil
}

// Preview renders a receipt for a view that is not stored anywhere
func (s *ReceiptService) Preview(_ context.Context, v receipt.View, format enum.ReceiptFormat) (*DownloadFile, error) {
	file, err := s.render(v, format)
	if err != nil {
		s.log.Debug("receipt preview failed", zap.Error(err))
		return nil, err
	}
	return file, nil
}

func (s *ReceiptService) render(v receipt.View, format enum.ReceiptFormat) (*DownloadFile, error) {
	var opts []receipt.Option
	if s.settings.Currency != "" {
		opts = append(opts, receipt.WithCurrency(s.settings.Currency))
	}
	if s.settings.Title != "" {
		opts = append(opts, receipt.WithTitle(s.settings.Title))
	}
	doc, err := receipt.Render(v, opts...)
	if err != nil {
		return nil, err
	}

	file := &DownloadFile{
		Filename: receipt.Filename(s.now(), format.Extension()),
		Pages:    len(doc.Pages),
	}
	switch format {
	case enum.ReceiptFormatESCPOS:
		file.ContentType = receipt.TicketContentType
		file.Data = doc.Ticket(s.settings.TicketWidth)
	case enum.ReceiptFormatPDF:
		file.ContentType = receipt.PDFContentType
		data, err := doc.PDF()
		if err != nil {
			return nil, err
		}
		file.Data = data
	default:
		return nil, apperror.NewFieldError("format", "must be pdf or escpos")
	}
	return file, nil
}
