// Package ledger derives the monetary fields of an order from its lines.
//
// Every function here is pure: callers persist the results. Amounts are
// decimals and no intermediate rounding is applied.
package ledger

import (
	"fmt"
	"strings"

	"github.com/sangkips/commandes-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// Line is one billable row of an order.
type Line struct {
	Designation string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
}

// Total returns quantity × unit price.
func (l Line) Total() decimal.Decimal {
	return l.Quantity.Mul(l.UnitPrice)
}

// Totals holds the derived fields of a multi-item order.
type Totals struct {
	Subtotal decimal.Decimal
	TotalDue decimal.Decimal
	// Lines[i] is the total of the i-th input line.
	Lines []decimal.Decimal
}

// LegacyTotals holds the derived fields of a single-line order.
type LegacyTotals struct {
	TotalAmount decimal.Decimal
	Rest        decimal.Decimal
}

// Policy is the per-line validation applied before any total is computed.
type Policy struct {
	MinQuantity          decimal.Decimal
	RequireWholeQuantity bool
}

// DefaultPolicy accepts any non-negative quantity, fractional included.
// Create and update paths share it.
var DefaultPolicy = Policy{MinQuantity: decimal.Zero}

// Validate checks lines against the policy and returns every violation at once.
func (p Policy) Validate(lines []Line) []apperror.FieldError {
	var errs []apperror.FieldError
	if len(lines) == 0 {
		return append(errs, apperror.FieldError{Field: "items", Message: "at least one item is required"})
	}
	for i, l := range lines {
		prefix := fmt.Sprintf("items[%d].", i)
		if strings.TrimSpace(l.Designation) == "" {
			errs = append(errs, apperror.FieldError{Field: prefix + "designation", Message: "is required"})
		}
		if l.Quantity.LessThan(p.MinQuantity) {
			errs = append(errs, apperror.FieldError{
				Field:   prefix + "quantity",
				Message: "must be at least " + p.MinQuantity.String(),
			})
		}
		if p.RequireWholeQuantity && !l.Quantity.Equal(l.Quantity.Truncate(0)) {
			errs = append(errs, apperror.FieldError{Field: prefix + "quantity", Message: "must be a whole number"})
		}
		if l.UnitPrice.IsNegative() {
			errs = append(errs, apperror.FieldError{Field: prefix + "unit_price", Message: "must not be negative"})
		}
	}
	return errs
}

// ComputeTotals uses DefaultPolicy.
func ComputeTotals(lines []Line, previousBalance decimal.Decimal) (Totals, error) {
	return DefaultPolicy.ComputeTotals(lines, previousBalance)
}

// ComputeTotals validates lines and returns subtotal and total due.
//
//	subtotal  = Σ quantity × unit price
//	total due = subtotal + previous balance
func (p Policy) ComputeTotals(lines []Line, previousBalance decimal.Decimal) (Totals, error) {
	errs := p.Validate(lines)
	if previousBalance.IsNegative() {
		errs = append(errs, apperror.FieldError{Field: "previous_balance", Message: "must not be negative"})
	}
	if len(errs) > 0 {
		return Totals{}, apperror.NewValidationError(errs)
	}

	t := Totals{Subtotal: decimal.Zero, Lines: make([]decimal.Decimal, len(lines))}
	for i, l := range lines {
		t.Lines[i] = l.Total()
		t.Subtotal = t.Subtotal.Add(t.Lines[i])
	}
	t.TotalDue = t.Subtotal.Add(previousBalance)
	return t, nil
}

// ComputeLegacyTotals derives the fields of a single-line order.
func ComputeLegacyTotals(quantity, unitPrice, paid decimal.Decimal) (LegacyTotals, error) {
	var errs []apperror.FieldError
	if quantity.IsNegative() {
		errs = append(errs, apperror.FieldError{Field: "quantity", Message: "must not be negative"})
	}
	if unitPrice.IsNegative() {
		errs = append(errs, apperror.FieldError{Field: "unit_price", Message: "must not be negative"})
	}
	if len(errs) > 0 {
		return LegacyTotals{}, apperror.NewValidationError(errs)
	}

	total := quantity.Mul(unitPrice)
	rest, err := SettlePayment(total, paid)
	if err != nil {
		return LegacyTotals{}, err
	}
	return LegacyTotals{TotalAmount: total, Rest: rest}, nil
}

// SettlePayment returns what is still owed once paid has been recorded
// against totalDue. Overpayment is rejected so the rest never goes negative.
func SettlePayment(totalDue, paid decimal.Decimal) (decimal.Decimal, error) {
	if paid.IsNegative() {
		return decimal.Zero, apperror.NewFieldError("paid_amount", "must not be negative")
	}
	if paid.GreaterThan(totalDue) {
		return decimal.Zero, apperror.NewFieldError("paid_amount", "must not exceed the amount due ("+totalDue.StringFixed(2)+")")
	}
	return totalDue.Sub(paid), nil
}
