package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LedgerSummary aggregates the money fields of every order
type LedgerSummary struct {
	OrderCount     int64
	Subtotal       decimal.Decimal
	TotalDue       decimal.Decimal
	PaidAmount     decimal.Decimal
	Outstanding    decimal.Decimal
	OpenOrderCount int64
}

// ClientBalance is what one client still owes across its orders
type ClientBalance struct {
	ClientID    uuid.UUID
	ClientName  string
	OrderCount  int64
	Outstanding decimal.Decimal
}

// StatusCount is the number of orders sharing a status
type StatusCount struct {
	Status string
	Count  int64
}

// AnalyticsRepository defines interface for aggregation queries
type AnalyticsRepository interface {
	Summary(ctx context.Context) (*LedgerSummary, error)
	// OutstandingByClient returns clients with the largest unpaid rest first
	OutstandingByClient(ctx context.Context, limit int) ([]ClientBalance, error)
	CountByStatus(ctx context.Context) ([]StatusCount, error)
}
