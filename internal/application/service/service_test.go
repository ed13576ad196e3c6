package service

import (
	"context"
	"testing"
	"time"

	"github.com/sangkips/commandes-api/internal/domain/entity"
	"github.com/sangkips/commandes-api/internal/infrastructure/database"
	infraRepo "github.com/sangkips/commandes-api/internal/infrastructure/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// testEnv wires the services against an in-memory database
type testEnv struct {
	db        *gorm.DB
	clients   *ClientService
	types     *TypeService
	orders    *OrderService
	receipts  *ReceiptService
	exports   *ExportService
	dashboard *DashboardService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db, zap.NewNop()))

	clientRepo := infraRepo.NewClientRepository(db)
	typeRepo := infraRepo.NewTypeRepository(db)
	orderRepo := infraRepo.NewOrderRepository(db)

	return &testEnv{
		db:        db,
		clients:   NewClientService(clientRepo),
		types:     NewTypeService(typeRepo),
		orders:    NewOrderService(orderRepo, clientRepo, typeRepo, zap.NewNop()),
		receipts:  NewReceiptService(orderRepo, ReceiptSettings{Currency: "$"}, zap.NewNop()),
		exports:   NewExportService(orderRepo),
		dashboard: NewDashboardService(clientRepo, typeRepo, infraRepo.NewAnalyticsRepository(db)),
	}
}

func (e *testEnv) seed(t *testing.T, clientName string) (*entity.Client, *entity.ProductType) {
	t.Helper()
	ctx := context.Background()
	c, err := e.clients.CreateClient(ctx, &CreateClientInput{Name: clientName})
	require.NoError(t, err)
	pt, err := e.types.CreateType(ctx, "Grinding")
	require.NoError(t, err)
	return c, pt
}

func (e *testEnv) countOrders(t *testing.T) (orders, items int64) {
	t.Helper()
	require.NoError(t, e.db.Model(&entity.Order{}).Count(&orders).Error)
	require.NoError(t, e.db.Model(&entity.Item{}).Count(&items).Error)
	return orders, items
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func line(designation, qty, price string) OrderItemInput {
	return OrderItemInput{Designation: designation, Quantity: dec(qty), UnitPrice: dec(price)}
}

func orderInput(c *entity.Client, pt *entity.ProductType, items ...OrderItemInput) OrderInput {
	return OrderInput{
		ClientID: c.ID,
		TypeID:   pt.ID,
		Date:     time.Date(2025, 5, 12, 0, 0, 0, 0, time.UTC),
		Status:   "pending",
		Items:    items,
	}
}
