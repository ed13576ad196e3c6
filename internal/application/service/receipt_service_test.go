package service

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/commandes-api/internal/domain/enum"
	"github.com/sangkips/commandes-api/internal/domain/ledger"
	"github.com/sangkips/commandes-api/pkg/apperror"
	"github.com/sangkips/commandes-api/pkg/receipt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReceiptService_OrderReceipt(t *testing.T) {
	env := newTestEnv(t)
	c, pt := env.seed(t, "Acme")
	ctx := context.Background()

	order, err := env.orders.CreateOrder(ctx, &CreateOrderInput{
		OrderInput: orderInput(c, pt, line("Bone grind", "6760", "0.80"), line("Sawdust", "2", "1.25")),
	})
	require.NoError(t, err)

	pdf, err := env.receipts.OrderReceipt(ctx, order.ID, enum.ReceiptFormatPDF)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf.Data, []byte("%PDF")))
	assert.Equal(t, receipt.PDFContentType, pdf.ContentType)
	assert.True(t, strings.HasPrefix(pdf.Filename, "receipt-"))
	assert.True(t, strings.HasSuffix(pdf.Filename, ".pdf"))
	assert.Equal(t, 1, pdf.Pages)

	ticket, err := env.receipts.OrderReceipt(ctx, order.ID, enum.ReceiptFormatESCPOS)
	require.NoError(t, err)
	assert.Contains(t, string(ticket.Data), "Total: $5410.50")
	assert.Contains(t, string(ticket.Data), "Client: Acme")
	assert.NotEqual(t, pdf.Filename, ticket.Filename)
}

func TestReceiptService_TotalMatchesLedger(t *testing.T) {
	env := newTestEnv(t)
	c, pt := env.seed(t, "Acme")
	ctx := context.Background()

	in := orderInput(c, pt, line("a", "3", "0.10"), line("b", "7", "0.20"), line("c", "0.5", "19.99"))
	in.PreviousBalance = dec("40")
	order, err := env.orders.CreateOrder(ctx, &CreateOrderInput{OrderInput: in})
	require.NoError(t, err)

	doc, err := receipt.Render(ViewFromOrder(order))
	require.NoError(t, err)

	lines := make([]ledger.Line, len(order.Items))
	for i, it := range order.Items {
		lines[i] = ledger.Line{Designation: it.Designation, Quantity: it.Quantity, UnitPrice: it.UnitPrice}
	}
	totals, err := ledger.ComputeTotals(lines, dec("0"))
	require.NoError(t, err)

	assert.True(t, doc.Total.Equal(totals.Subtotal))
	assert.True(t, doc.Total.Equal(order.Subtotal))
}

func TestReceiptService_MissingOrder(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.receipts.OrderReceipt(context.Background(), uuid.New(), enum.ReceiptFormatPDF)
	assert.True(t, apperror.IsNotFound(err))
}

func TestReceiptService_PreviewFailureIsRenderError(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.receipts.Preview(context.Background(), receipt.View{ClientName: "Acme"}, enum.ReceiptFormatPDF)
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, http.StatusInternalServerError, appErr.Code)
	assert.Equal(t, "Receipt rendering failed", appErr.Message)
	assert.ErrorIs(t, err, receipt.ErrNoItems)

	orders, _ := env.countOrders(t)
	assert.Zero(t, orders)
}

func TestReceiptService_PreviewMultiPage(t *testing.T) {
	env := newTestEnv(t)

	v := receipt.View{ClientName: "Acme", TypeName: "Grinding", Date: time.Now(), Status: "pending"}
	for i := 0; i < 60; i++ {
		v.Items = append(v.Items, receipt.Item{Designation: "part", Quantity: dec("1"), UnitPrice: dec("1")})
	}

	file, err := env.receipts.Preview(context.Background(), v, enum.ReceiptFormatPDF)
	require.NoError(t, err)
	assert.Equal(t, 3, file.Pages)
	assert.True(t, bytes.HasPrefix(file.Data, []byte("%PDF")))
}
