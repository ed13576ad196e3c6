package request

import "github.com/shopspring/decimal"

// ReceiptItemRequest is one line of a receipt preview
type ReceiptItemRequest struct {
	Designation string          `json:"designation"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// ReceiptPreviewRequest renders a receipt that is not stored
type ReceiptPreviewRequest struct {
	Title      string               `json:"title"`
	ClientName string               `json:"client_name"`
	TypeName   string               `json:"type_name"`
	Date       string               `json:"date"`
	Status     string               `json:"status"`
	Items      []ReceiptItemRequest `json:"items"`
}
