package service

import (
	"context"
	"time"

	"github.com/sangkips/commandes-api/internal/domain/entity"
	"github.com/sangkips/commandes-api/internal/domain/repository"
	"github.com/xuri/excelize/v2"
)

const (
	exportSheet = "Orders"
	// XLSXContentType is the MIME type of an exported workbook
	XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var exportHeader = []interface{}{
	"Date", "Client", "Type", "Status", "Items",
	"Subtotal", "Previous Balance", "Total Due", "Paid", "Rest",
}

// ExportService writes order listings to spreadsheets
type ExportService struct {
	orderRepo repository.OrderRepository
	now       func() time.Time
}

// NewExportService creates a new export service
func NewExportService(orderRepo repository.OrderRepository) *ExportService {
	return &ExportService{orderRepo: orderRepo, now: time.Now}
}

// ExportOrders returns an XLSX workbook with one row per matching order
func (s *ExportService) ExportOrders(ctx context.Context, filter repository.OrderFilter) (*DownloadFile, error) {
	orders, err := s.orderRepo.ListForExport(ctx, filter)
	if err != nil {
		return nil, err
	}

	data, err := ordersWorkbook(orders)
	if err != nil {
		return nil, err
	}
	return &DownloadFile{
		Filename:    "orders-" + s.now().Format("20060102-150405") + ".xlsx",
		ContentType: XLSXContentType,
		Data:        data,
	}, nil
}

func ordersWorkbook(orders []entity.Order) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: 2})
	if err != nil {
		return nil, err
	}

	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return nil, err
	}
	if err := f.SetRowStyle(exportSheet, 1, 1, bold); err != nil {
		return nil, err
	}

	for i, o := range orders {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []interface{}{
			o.Date.Format("2006-01-02"),
			clientName(o.Client),
			typeName(o.Type),
			o.Status,
			len(o.Items),
			o.Subtotal.InexactFloat64(),
			o.PreviousBalance.InexactFloat64(),
			o.TotalDue.InexactFloat64(),
			o.PaidAmount.InexactFloat64(),
			o.Rest.InexactFloat64(),
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	if len(orders) > 0 {
		last, err := excelize.CoordinatesToCellName(10, len(orders)+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(exportSheet, "F2", last, money); err != nil {
			return nil, err
		}
	}
	if err := f.SetColWidth(exportSheet, "A", "J", 16); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func clientName(c *entity.Client) string {
	if c == nil {
		return ""
	}
	return c.Name
}

func typeName(t *entity.ProductType) string {
	if t == nil {
		return ""
	}
	return t.Name
}
