package receipt_test

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/sangkips/commandes-api/internal/domain/ledger"
	"github.com/sangkips/commandes-api/pkg/apperror"
	"github.com/sangkips/commandes-api/pkg/receipt"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func viewWithItems(n int) receipt.View {
	items := make([]receipt.Item, n)
	for i := range items {
		items[i] = receipt.Item{
			Designation: fmt.Sprintf("Part %03d", i),
			Quantity:    decimal.NewFromInt(int64(i%5 + 1)),
			UnitPrice:   d("1.35"),
		}
	}
	return receipt.View{
		ClientName: "Atelier Nord",
		TypeName:   "Spare parts",
		Date:       time.Date(2025, 5, 12, 0, 0, 0, 0, time.UTC),
		Status:     "pending",
		Items:      items,
	}
}

func itemDesignations(doc *receipt.Document) []string {
	var out []string
	for _, p := range doc.Pages {
		for _, r := range p.Rows {
			if r.Kind == receipt.RowItem {
				out = append(out, r.Cells[0])
			}
		}
	}
	return out
}

func TestRender_SinglePage(t *testing.T) {
	v := receipt.View{
		ClientName: "Client A",
		TypeName:   "Bones",
		Date:       time.Date(2025, 5, 12, 0, 0, 0, 0, time.UTC),
		Status:     "paid",
		Items:      []receipt.Item{{Designation: "Bone grind", Quantity: d("6760"), UnitPrice: d("0.80")}},
	}

	doc, err := receipt.Render(v)
	require.NoError(t, err)
	require.Len(t, doc.Pages, 1)
	assert.Equal(t, "5408.00", doc.Total.StringFixed(2))

	rows := doc.Pages[0].Rows
	assert.Equal(t, receipt.RowTitle, rows[0].Kind)
	assert.Equal(t, 15.0, rows[0].Y)
	assert.Equal(t, "Date: 2025-05-12", rows[1].Cells[0])
	assert.Equal(t, "Client: Client A", rows[2].Cells[0])
	assert.Equal(t, "Product Type: Bones", rows[3].Cells[0])
	assert.Equal(t, "Status: paid", rows[4].Cells[0])
	assert.Equal(t, []string{"Designation", "Qty", "Unit Price", "Subtotal"}, rows[6].Cells)

	item := rows[8]
	assert.Equal(t, receipt.RowItem, item.Kind)
	assert.Equal(t, 83.0, item.Y)
	assert.Equal(t, []string{"Bone grind", "6760", "$0.80", "$5408.00"}, item.Cells)

	last := rows[len(rows)-1]
	assert.Equal(t, receipt.RowTotal, last.Kind)
	assert.Equal(t, "Total: $5408.00", last.Cells[0])
}

func TestRender_TotalMatchesLedger(t *testing.T) {
	v := viewWithItems(17)
	v.Items[3].UnitPrice = d("0.10")
	v.Items[4].UnitPrice = d("0.20")

	doc, err := receipt.Render(v)
	require.NoError(t, err)

	lines := make([]ledger.Line, len(v.Items))
	for i, it := range v.Items {
		lines[i] = ledger.Line{Designation: it.Designation, Quantity: it.Quantity, UnitPrice: it.UnitPrice}
	}
	totals, err := ledger.ComputeTotals(lines, decimal.Zero)
	require.NoError(t, err)

	assert.True(t, doc.Total.Equal(totals.Subtotal), "render %s ledger %s", doc.Total, totals.Subtotal)
}

func TestRender_Pagination(t *testing.T) {
	tests := []struct {
		name      string
		items     int
		wantPages int
	}{
		{name: "fits_first_page", items: 19, wantPages: 1},
		// 20 items leave the cursor at 243, the 28mm total block would end at 271
		{name: "total_block_pushed", items: 20, wantPages: 2},
		// the 24th row crosses 270
		{name: "first_page_full", items: 24, wantPages: 2},
		{name: "three_pages", items: 24 + 32 + 1, wantPages: 3},
		{name: "many", items: 250, wantPages: 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viewWithItems(tt.items)
			doc, err := receipt.Render(v)
			require.NoError(t, err)
			assert.Len(t, doc.Pages, tt.wantPages)

			got := itemDesignations(doc)
			require.Len(t, got, tt.items)
			for i, it := range v.Items {
				assert.Equal(t, it.Designation, got[i])
			}
			assert.Equal(t, tt.items, doc.ItemCount())

			for pi, p := range doc.Pages {
				require.NotEmpty(t, p.Rows, "page %d", pi)
				assert.Equal(t, receipt.DefaultMetrics.TopMargin, p.Rows[0].Y, "page %d starts at the top margin", pi)
			}
		})
	}
}

func TestRender_OverflowCheckedAfterEachRow(t *testing.T) {
	doc, err := receipt.Render(viewWithItems(30))
	require.NoError(t, err)
	require.Len(t, doc.Pages, 2)

	// first page keeps the row that crossed the threshold
	first := doc.Pages[0].Rows
	lastItem := first[len(first)-1]
	assert.Equal(t, receipt.RowItem, lastItem.Kind)
	assert.Greater(t, lastItem.Y+lastItem.Height, receipt.DefaultMetrics.OverflowY)
	assert.LessOrEqual(t, lastItem.Y, receipt.DefaultMetrics.OverflowY)

	second := doc.Pages[1].Rows
	assert.Equal(t, receipt.RowItem, second[0].Kind)
	assert.Equal(t, receipt.RowTotal, second[len(second)-1].Kind)
}

func TestRender_CustomMetrics(t *testing.T) {
	m := receipt.DefaultMetrics
	m.OverflowY = 100

	doc, err := receipt.Render(viewWithItems(10), receipt.WithMetrics(m), receipt.WithCurrency("€"))
	require.NoError(t, err)
	assert.Greater(t, len(doc.Pages), 1)
	assert.Equal(t, 10, doc.ItemCount())
	assert.Equal(t, "€", doc.Currency)
}

func TestRender_Errors(t *testing.T) {
	_, err := receipt.Render(receipt.View{ClientName: "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, receipt.ErrNoItems)
	assert.Equal(t, 500, apperror.GetAppError(err).Code)

	_, err = receipt.Render(receipt.View{Items: []receipt.Item{{Designation: "x", Quantity: d("-1"), UnitPrice: d("1")}}})
	require.Error(t, err)
	assert.Equal(t, "Receipt rendering failed", apperror.GetAppError(err).Message)
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$0.00", receipt.FormatMoney("$", decimal.Zero))
	assert.Equal(t, "$5408.00", receipt.FormatMoney("$", d("5408")))
	assert.Equal(t, "$0.13", receipt.FormatMoney("$", d("0.125")))
	assert.Equal(t, "€1.50", receipt.FormatMoney("€", d("1.5")))
}

func TestFilename_Unique(t *testing.T) {
	now := time.UnixMilli(1715472000000)
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		name := receipt.Filename(now, "pdf")
		assert.True(t, strings.HasPrefix(name, "receipt-1715472000000-"))
		assert.True(t, strings.HasSuffix(name, ".pdf"))
		assert.False(t, seen[name], "duplicate %s", name)
		seen[name] = true
	}
}

func TestDocument_PDF(t *testing.T) {
	doc, err := receipt.Render(viewWithItems(40))
	require.NoError(t, err)

	data, err := doc.PDF()
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

var pdfPage = regexp.MustCompile(`/Type\s*/Page\b`)

func TestDocument_PDFPagesMatchLayout(t *testing.T) {
	long := viewWithItems(30)
	for i := range long.Items {
		long.Items[i].Designation = strings.Repeat("Reconditioned hydraulic pump housing ", 8)
	}

	tests := []struct {
		name string
		view receipt.View
	}{
		{name: "one_item", view: viewWithItems(1)},
		{name: "total_block_pushed", view: viewWithItems(20)},
		{name: "first_page_full", view: viewWithItems(24)},
		{name: "three_pages", view: viewWithItems(57)},
		{name: "many", view: viewWithItems(250)},
		{name: "long_designations", view: long},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := receipt.Render(tt.view)
			require.NoError(t, err)

			data, err := doc.PDF()
			require.NoError(t, err)
			assert.Len(t, pdfPage.FindAll(data, -1), len(doc.Pages))
		})
	}
}

func TestDocument_Ticket(t *testing.T) {
	doc, err := receipt.Render(receipt.View{
		ClientName: "Client A",
		Items:      []receipt.Item{{Designation: "Bone grind", Quantity: d("6760"), UnitPrice: d("0.80")}},
	})
	require.NoError(t, err)

	out := doc.Ticket(receipt.TicketWidth58mm)
	assert.True(t, bytes.HasPrefix(out, []byte{0x1B, '@'}))
	assert.True(t, bytes.HasSuffix(out, []byte{0x1D, 'V', 0x01}))
	assert.Contains(t, string(out), "Bone grind")
	assert.Contains(t, string(out), "Total: $5408.00")
	assert.Contains(t, string(out), strings.Repeat("-", receipt.TicketWidth58mm))
}
