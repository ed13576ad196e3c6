package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardService_GetDashboardStats(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	empty, err := env.dashboard.GetDashboardStats(ctx)
	require.NoError(t, err)
	assert.Zero(t, empty.TotalOrders)
	assert.Equal(t, "0.00", empty.Outstanding)
	assert.NotNil(t, empty.TopDebtors)

	c, pt := env.seed(t, "Acme")
	paid, _ := env.seed(t, "Paid Up")

	_, err = env.orders.CreateOrder(ctx, &CreateOrderInput{
		OrderInput: orderInput(c, pt, line("a", "4", "25")),
		PaidAmount: dec("40"),
	})
	require.NoError(t, err)
	in := orderInput(paid, pt, line("b", "1", "10"))
	in.Status = "delivered"
	_, err = env.orders.CreateOrder(ctx, &CreateOrderInput{OrderInput: in, PaidAmount: dec("10")})
	require.NoError(t, err)

	stats, err := env.dashboard.GetDashboardStats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.TotalClients)
	assert.EqualValues(t, 2, stats.TotalTypes)
	assert.EqualValues(t, 2, stats.TotalOrders)
	assert.EqualValues(t, 1, stats.OpenOrders)
	assert.Equal(t, "110.00", stats.TotalDue)
	assert.Equal(t, "50.00", stats.PaidAmount)
	assert.Equal(t, "60.00", stats.Outstanding)
	require.Len(t, stats.TopDebtors, 1)
	assert.Equal(t, "Acme", stats.TopDebtors[0].ClientName)
	assert.Len(t, stats.OrdersByStatus, 2)
}
