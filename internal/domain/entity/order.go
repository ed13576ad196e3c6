package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/commandes-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Order ("commande") bills one client for one type of goods.
// Monetary fields are derived by the ledger on every write.
type Order struct {
	ID              uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID        uuid.UUID         `gorm:"type:uuid;not null;index" json:"client_id"`
	TypeID          uuid.UUID         `gorm:"type:uuid;not null;index" json:"type_id"`
	Date            time.Time         `gorm:"type:date;not null" json:"date"`
	Status          string            `gorm:"size:100;not null" json:"status"`
	Variant         enum.OrderVariant `gorm:"size:20;not null;default:'multi_item'" json:"variant"`
	Subtotal        decimal.Decimal   `gorm:"type:numeric;not null;default:0" json:"-"`
	PreviousBalance decimal.Decimal   `gorm:"type:numeric;not null;default:0" json:"-"`
	TotalDue        decimal.Decimal   `gorm:"type:numeric;not null;default:0" json:"-"`
	PaidAmount      decimal.Decimal   `gorm:"type:numeric;not null;default:0" json:"-"`
	Rest            decimal.Decimal   `gorm:"type:numeric;not null;default:0" json:"-"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`

	// Relationships
	Client *Client      `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE" json:"client,omitempty"`
	Type   *ProductType `gorm:"foreignKey:TypeID;constraint:OnDelete:CASCADE" json:"type,omitempty"`
	Items  []Item       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// legacyLine is the flat quantity/unit price view of a single-line order
type legacyLine struct {
	Quantity    string `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	TotalAmount string `json:"total_amount"`
}

// MarshalJSON renders money with two decimals and adds the flat
// quantity/unit_price/total_amount fields for single-line orders
func (o Order) MarshalJSON() ([]byte, error) {
	type Alias Order
	out := struct {
		Alias
		Subtotal        string `json:"subtotal"`
		PreviousBalance string `json:"previous_balance"`
		TotalDue        string `json:"total_due"`
		PaidAmount      string `json:"paid_amount"`
		Rest            string `json:"rest"`
		*legacyLine
	}{
		Alias:           Alias(o),
		Subtotal:        o.Subtotal.StringFixed(2),
		PreviousBalance: o.PreviousBalance.StringFixed(2),
		TotalDue:        o.TotalDue.StringFixed(2),
		PaidAmount:      o.PaidAmount.StringFixed(2),
		Rest:            o.Rest.StringFixed(2),
	}
	if o.Variant == enum.OrderVariantSingleLine && len(o.Items) == 1 {
		out.legacyLine = &legacyLine{
			Quantity:    o.Items[0].Quantity.String(),
			UnitPrice:   o.Items[0].UnitPrice.StringFixed(2),
			TotalAmount: o.Subtotal.StringFixed(2),
		}
	}
	return json.Marshal(out)
}

// BeforeCreate generates a UUID before creating a new order
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.Variant == "" {
		o.Variant = enum.OrderVariantMultiItem
	}
	return nil
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "commandes"
}

// Item is one line of an order. It only exists through its order.
type Item struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"order_id"`
	Position    int             `gorm:"not null;default:0" json:"position"`
	Designation string          `gorm:"column:part_name;size:255;not null" json:"designation"`
	Quantity    decimal.Decimal `gorm:"type:numeric;not null" json:"-"`
	UnitPrice   decimal.Decimal `gorm:"column:rate;type:numeric;not null" json:"-"`
	Total       decimal.Decimal `gorm:"type:numeric;not null" json:"-"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// MarshalJSON renders money with two decimals
func (i Item) MarshalJSON() ([]byte, error) {
	type Alias Item
	return json.Marshal(&struct {
		Alias
		Quantity  string `json:"quantity"`
		UnitPrice string `json:"unit_price"`
		Total     string `json:"total"`
	}{
		Alias:     Alias(i),
		Quantity:  i.Quantity.String(),
		UnitPrice: i.UnitPrice.StringFixed(2),
		Total:     i.Total.StringFixed(2),
	})
}

// BeforeCreate generates a UUID before creating a new item
func (i *Item) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Item model
func (Item) TableName() string {
	return "commande_items"
}
