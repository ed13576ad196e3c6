package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// OrderVariant tells how an order was captured
type OrderVariant string

const (
	// OrderVariantMultiItem is an order with any number of lines and an
	// optional previous balance
	OrderVariantMultiItem OrderVariant = "multi_item"
	// OrderVariantSingleLine is a quantity × unit price order. It is stored
	// as exactly one item and never carries a previous balance.
	OrderVariantSingleLine OrderVariant = "single_line"
)

func (v OrderVariant) String() string {
	return string(v)
}

// Valid reports whether v is a known variant
func (v OrderVariant) Valid() bool {
	return v == OrderVariantMultiItem || v == OrderVariantSingleLine
}

func (v *OrderVariant) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed := OrderVariant(str)
	if !parsed.Valid() {
		return fmt.Errorf("unknown order variant %q", str)
	}
	*v = parsed
	return nil
}

func (v OrderVariant) Value() (driver.Value, error) {
	if v == "" {
		return string(OrderVariantMultiItem), nil
	}
	return string(v), nil
}

func (v *OrderVariant) Scan(value interface{}) error {
	switch s := value.(type) {
	case nil:
		*v = OrderVariantMultiItem
	case string:
		*v = OrderVariant(s)
	case []byte:
		*v = OrderVariant(s)
	default:
		return fmt.Errorf("cannot scan %T into OrderVariant", value)
	}
	return nil
}
