package services

import (
	"context"
	"fmt"

	"github.com/tagadou/backend/internal/models"
	"go.uber.org/zap"
)

// Dashboard is the aggregate payload of the customer dashboard.
type Dashboard struct {
	Orders  []*models.Order
	Doudous []*models.Doudou
	Stats   models.DashboardStats
}

// DashboardService assembles the customer dashboard.
type DashboardService interface {
	GetDashboard(ctx context.Context, email string) (*Dashboard, error)
}

// DashboardServiceImpl implements DashboardService.
type DashboardServiceImpl struct {
	orderStorage OrderStorage
	logger       *zap.SugaredLogger
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(orderStorage OrderStorage, logger *zap.SugaredLogger) *DashboardServiceImpl {
	return &DashboardServiceImpl{orderStorage: orderStorage, logger: logger}
}

// GetDashboard fetches the customer's orders and toy records and
// computes the running totals. The aggregates run over the complete
// order set, never a page of it. A failure fetching the toy records is
// logged and tolerated: the dashboard still renders with orders only.
func (s *DashboardServiceImpl) GetDashboard(ctx context.Context, email string) (*Dashboard, error) {
	orders, err := s.orderStorage.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to get orders: %w", err)
	}

	doudous, err := s.orderStorage.GetDoudousByEmail(ctx, email)
	if err != nil {
		s.logger.Errorw("failed to get doudous for dashboard", "email", email, "error", err)
		doudous = nil
	}

	stats := models.DashboardStats{TotalOrders: len(orders)}
	for _, o := range orders {
		total, _ := o.TotalAmount.Float64()
		savings, _ := o.SavingsAmount.Float64()
		stats.TotalSpent += total
		stats.TotalSavings += savings
	}

	return &Dashboard{Orders: orders, Doudous: doudous, Stats: stats}, nil
}
