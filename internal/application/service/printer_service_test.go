package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/commandes-api/pkg/apperror"
	"github.com/sangkips/commandes-api/pkg/printer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingPrinter struct {
	jobs [][]byte
	err  error
}

func (p *recordingPrinter) Kind() string { return printer.KindNetwork }

func (p *recordingPrinter) Ping(context.Context) error { return p.err }

func (p *recordingPrinter) Print(_ context.Context, data []byte) error {
	if p.err != nil {
		return p.err
	}
	p.jobs = append(p.jobs, data)
	return nil
}

func TestPrinterService_PrintOrder(t *testing.T) {
	env := newTestEnv(t)
	c, pt := env.seed(t, "Acme")
	ctx := context.Background()

	order, err := env.orders.CreateOrder(ctx, &CreateOrderInput{
		OrderInput: orderInput(c, pt, line("Bone grind", "6760", "0.80")),
	})
	require.NoError(t, err)

	rec := &recordingPrinter{}
	svc := NewPrinterService(env.receipts, rec, zap.NewNop())

	res, err := svc.PrintOrder(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, rec.jobs, 1)
	assert.Equal(t, len(rec.jobs[0]), res.Bytes)
	assert.Contains(t, string(rec.jobs[0]), "Total: $5408.00")
	assert.True(t, svc.Status(ctx).Reachable)

	_, err = svc.PrintOrder(ctx, uuid.New())
	assert.True(t, apperror.IsNotFound(err))
}

func TestPrinterService_Failures(t *testing.T) {
	env := newTestEnv(t)
	c, pt := env.seed(t, "Acme")
	ctx := context.Background()
	order, err := env.orders.CreateOrder(ctx, &CreateOrderInput{
		OrderInput: orderInput(c, pt, line("Bone grind", "1", "1")),
	})
	require.NoError(t, err)

	_, err = NewPrinterService(env.receipts, printer.None{}, zap.NewNop()).PrintOrder(ctx, order.ID)
	assert.Equal(t, http.StatusServiceUnavailable, apperror.GetAppError(err).Code)

	offline := &recordingPrinter{err: errors.New("connection refused")}
	svc := NewPrinterService(env.receipts, offline, zap.NewNop())
	_, err = svc.PrintOrder(ctx, order.ID)
	assert.Equal(t, http.StatusBadGateway, apperror.GetAppError(err).Code)

	st := svc.Status(ctx)
	assert.True(t, st.Configured)
	assert.False(t, st.Reachable)
	assert.Equal(t, "connection refused", st.Error)
}
