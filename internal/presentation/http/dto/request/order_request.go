package request

import (
	"bytes"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Number is a decimal field that remembers whether it was sent and whether it
// parsed, so a bad value is reported on its field instead of failing the body.
type Number struct {
	Value   decimal.Decimal
	Set     bool
	Invalid bool
}

// NewNumber is a Number that was sent as d
func NewNumber(d decimal.Decimal) Number {
	return Number{Value: d, Set: true}
}

func (n *Number) UnmarshalJSON(b []byte) error {
	*n = Number{}
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	n.Set = true
	if err := n.Value.UnmarshalJSON(b); err != nil {
		n.Invalid = true
	}
	return nil
}

// Check returns the problem with the field, or "" when it holds a number
func (n Number) Check() string {
	switch {
	case !n.Set:
		return "is required"
	case n.Invalid:
		return "must be a number"
	}
	return ""
}

// OrderItemRequest is one line of an order body
type OrderItemRequest struct {
	Designation string `json:"designation" binding:"max=255"`
	Quantity    Number `json:"quantity"`
	UnitPrice   Number `json:"unit_price"`
}

// OrderRequest is the body of order create and update.
// A single-line order may carry its one line at the root instead of in items.
type OrderRequest struct {
	ClientID        uuid.UUID          `json:"client_id"`
	TypeID          uuid.UUID          `json:"type_id"`
	Date            string             `json:"date"` // YYYY-MM-DD
	Status          string             `json:"status" binding:"max=100"`
	Variant         string             `json:"variant" binding:"omitempty,oneof=multi_item single_line"`
	PreviousBalance Number             `json:"previous_balance"`
	Items           []OrderItemRequest `json:"items" binding:"dive"`

	Designation string `json:"designation" binding:"max=255"`
	Quantity    Number `json:"quantity"`
	UnitPrice   Number `json:"unit_price"`

	// only read on create
	PaidAmount Number `json:"paid_amount"`
}

// PaymentRequest sets the amount paid on an order
type PaymentRequest struct {
	PaidAmount decimal.Decimal `json:"paid_amount"`
}

// OrderFilterRequest represents order filter parameters
type OrderFilterRequest struct {
	ClientID  string `form:"client_id"`
	TypeID    string `form:"type_id"`
	Status    string `form:"status"`
	Variant   string `form:"variant"`
	DateFrom  string `form:"date_from"`
	DateTo    string `form:"date_to"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
	Cursor    string `form:"cursor"`
	Direction string `form:"direction"`
	Limit     int    `form:"limit"` // For cursor-based pagination
}
