package ledger_test

import (
	"testing"

	"github.com/sangkips/commandes-api/internal/domain/ledger"
	"github.com/sangkips/commandes-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name         string
		lines        []ledger.Line
		previous     decimal.Decimal
		wantSubtotal string
		wantDue      string
	}{
		{
			name:         "bone_grind",
			lines:        []ledger.Line{{Designation: "Bone grind", Quantity: d("6760"), UnitPrice: d("0.80")}},
			previous:     decimal.Zero,
			wantSubtotal: "5408.00",
			wantDue:      "5408.00",
		},
		{
			name: "several_lines_with_previous_balance",
			lines: []ledger.Line{
				{Designation: "Bolt", Quantity: d("3"), UnitPrice: d("1.10")},
				{Designation: "Nut", Quantity: d("7"), UnitPrice: d("0.30")},
			},
			previous:     d("12.50"),
			wantSubtotal: "5.40",
			wantDue:      "17.90",
		},
		{
			name:         "zero_quantity_placeholder",
			lines:        []ledger.Line{{Designation: "TBD", Quantity: decimal.Zero, UnitPrice: d("9.99")}},
			previous:     decimal.Zero,
			wantSubtotal: "0.00",
			wantDue:      "0.00",
		},
		{
			name: "no_float_drift",
			lines: []ledger.Line{
				{Designation: "a", Quantity: d("1"), UnitPrice: d("0.10")},
				{Designation: "b", Quantity: d("1"), UnitPrice: d("0.20")},
			},
			previous:     decimal.Zero,
			wantSubtotal: "0.30",
			wantDue:      "0.30",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ledger.ComputeTotals(tt.lines, tt.previous)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSubtotal, got.Subtotal.StringFixed(2))
			assert.Equal(t, tt.wantDue, got.TotalDue.StringFixed(2))
			require.Len(t, got.Lines, len(tt.lines))
		})
	}
}

func TestComputeTotals_TotalDueIsSubtotalPlusPrevious(t *testing.T) {
	lines := []ledger.Line{
		{Designation: "x", Quantity: d("2.5"), UnitPrice: d("4.20")},
		{Designation: "y", Quantity: d("11"), UnitPrice: d("0.07")},
	}
	base, err := ledger.ComputeTotals(lines, decimal.Zero)
	require.NoError(t, err)

	for _, pb := range []string{"0", "0.01", "100", "99999.99"} {
		got, err := ledger.ComputeTotals(lines, d(pb))
		require.NoError(t, err)
		assert.True(t, got.TotalDue.Equal(base.Subtotal.Add(d(pb))), "previous balance %s", pb)
		assert.True(t, got.Subtotal.Equal(base.Subtotal))
	}
}

func TestComputeTotals_Validation(t *testing.T) {
	tests := []struct {
		name      string
		lines     []ledger.Line
		previous  decimal.Decimal
		wantField string
	}{
		{name: "empty", lines: nil, wantField: "items"},
		{
			name:      "negative_quantity",
			lines:     []ledger.Line{{Designation: "a", Quantity: d("-1"), UnitPrice: d("1")}},
			wantField: "items[0].quantity",
		},
		{
			name:      "negative_price",
			lines:     []ledger.Line{{Designation: "a", Quantity: d("1"), UnitPrice: d("-0.01")}},
			wantField: "items[0].unit_price",
		},
		{
			name:      "blank_designation",
			lines:     []ledger.Line{{Designation: "  ", Quantity: d("1"), UnitPrice: d("1")}},
			wantField: "items[0].designation",
		},
		{
			name:      "negative_previous_balance",
			lines:     []ledger.Line{{Designation: "a", Quantity: d("1"), UnitPrice: d("1")}},
			previous:  d("-5"),
			wantField: "previous_balance",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ledger.ComputeTotals(tt.lines, tt.previous)
			require.Error(t, err)
			assert.True(t, apperror.IsValidation(err))

			appErr := apperror.GetAppError(err)
			fields := make([]string, 0, len(appErr.Errors))
			for _, fe := range appErr.Errors {
				fields = append(fields, fe.Field)
			}
			assert.Contains(t, fields, tt.wantField)
		})
	}
}

func TestPolicy_RequireWholeQuantity(t *testing.T) {
	p := ledger.Policy{MinQuantity: d("1"), RequireWholeQuantity: true}

	_, err := p.ComputeTotals([]ledger.Line{{Designation: "a", Quantity: d("1.5"), UnitPrice: d("1")}}, decimal.Zero)
	assert.True(t, apperror.IsValidation(err))

	_, err = p.ComputeTotals([]ledger.Line{{Designation: "a", Quantity: d("0"), UnitPrice: d("1")}}, decimal.Zero)
	assert.True(t, apperror.IsValidation(err))

	got, err := p.ComputeTotals([]ledger.Line{{Designation: "a", Quantity: d("2"), UnitPrice: d("1.25")}}, decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, "2.50", got.Subtotal.StringFixed(2))
}

func TestComputeLegacyTotals(t *testing.T) {
	got, err := ledger.ComputeLegacyTotals(d("10"), d("2.5"), decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, "25.00", got.TotalAmount.StringFixed(2))
	assert.Equal(t, "25.00", got.Rest.StringFixed(2))

	rest, err := ledger.SettlePayment(got.TotalAmount, d("10"))
	require.NoError(t, err)
	assert.Equal(t, "15.00", rest.StringFixed(2))
}

func TestComputeLegacyTotals_Rejects(t *testing.T) {
	_, err := ledger.ComputeLegacyTotals(d("-1"), d("2"), decimal.Zero)
	assert.True(t, apperror.IsValidation(err))

	_, err = ledger.ComputeLegacyTotals(d("1"), d("2"), d("3"))
	assert.True(t, apperror.IsValidation(err), "overpayment")
}

func TestSettlePayment(t *testing.T) {
	rest, err := ledger.SettlePayment(d("40"), d("40"))
	require.NoError(t, err)
	assert.True(t, rest.IsZero())

	_, err = ledger.SettlePayment(d("40"), d("40.01"))
	assert.True(t, apperror.IsValidation(err))

	_, err = ledger.SettlePayment(d("40"), d("-1"))
	assert.True(t, apperror.IsValidation(err))
}
