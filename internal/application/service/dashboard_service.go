package service

import (
	"context"

	"github.com/sangkips/commandes-api/internal/domain/repository"
)

const topDebtorsLimit = 5

// DashboardService provides dashboard statistics
type DashboardService struct {
	clientRepo    repository.ClientRepository
	typeRepo      repository.TypeRepository
	analyticsRepo repository.AnalyticsRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	clientRepo repository.ClientRepository,
	typeRepo repository.TypeRepository,
	analyticsRepo repository.AnalyticsRepository,
) *DashboardService {
	return &DashboardService{
		clientRepo:    clientRepo,
		typeRepo:      typeRepo,
		analyticsRepo: analyticsRepo,
	}
}

// DashboardStats represents dashboard statistics. Amounts carry two decimals.
type DashboardStats struct {
	TotalClients   int64          `json:"total_clients"`
	TotalTypes     int64          `json:"total_types"`
	TotalOrders    int64          `json:"total_orders"`
	OpenOrders     int64          `json:"open_orders"`
	Subtotal       string         `json:"subtotal"`
	TotalDue       string         `json:"total_due"`
	PaidAmount     string         `json:"paid_amount"`
	Outstanding    string         `json:"outstanding"`
	OrdersByStatus []StatusPoint  `json:"orders_by_status"`
	TopDebtors     []ClientDebtor `json:"top_debtors"`
}

// StatusPoint is the number of orders sharing a status
type StatusPoint struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// ClientDebtor is a client with money still owed
type ClientDebtor struct {
	ClientID    string `json:"client_id"`
	ClientName  string `json:"client_name"`
	OrderCount  int64  `json:"order_count"`
	Outstanding string `json:"outstanding"`
}

// GetDashboardStats returns dashboard statistics
func (s *DashboardService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{
		OrdersByStatus: []StatusPoint{},
		TopDebtors:     []ClientDebtor{},
	}

	var err error
	if stats.TotalClients, err = s.clientRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalTypes, err = s.typeRepo.Count(ctx); err != nil {
		return nil, err
	}

	summary, err := s.analyticsRepo.Summary(ctx)
	if err != nil {
		return nil, err
	}
	stats.TotalOrders = summary.OrderCount
	stats.OpenOrders = summary.OpenOrderCount
	stats.Subtotal = summary.Subtotal.StringFixed(2)
	stats.TotalDue = summary.TotalDue.StringFixed(2)
	stats.PaidAmount = summary.PaidAmount.StringFixed(2)
	stats.Outstanding = summary.Outstanding.StringFixed(2)

	statuses, err := s.analyticsRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	for _, sc := range statuses {
		stats.OrdersByStatus = append(stats.OrdersByStatus, StatusPoint{Status: sc.Status, Count: sc.Count})
	}

	debtors, err := s.analyticsRepo.OutstandingByClient(ctx, topDebtorsLimit)
	if err != nil {
		return nil, err
	}
	for _, d := range debtors {
		stats.TopDebtors = append(stats.TopDebtors, ClientDebtor{
			ClientID:    d.ClientID.String(),
			ClientName:  d.ClientName,
			OrderCount:  d.OrderCount,
			Outstanding: d.Outstanding.StringFixed(2),
		})
	}

	return stats, nil
}
