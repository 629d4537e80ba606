package services

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/tagadou/backend/internal/models"
	"github.com/tagadou/backend/internal/storage"
	"go.uber.org/zap"
)

func TestDashboardService_GetDashboard(t *testing.T) {
	ctx := context.Background()

	t.Run("aggregates over all orders", func(t *testing.T) {
		orders := []*models.Order{
			{OrderNumber: "TGD-00001", TotalAmount: decimal.NewFromFloat(33.40), SavingsAmount: decimal.NewFromInt(5)},
			{OrderNumber: "TGD-00002", TotalAmount: decimal.NewFromFloat(48.50), SavingsAmount: decimal.Zero},
			{OrderNumber: "TGD-00003", TotalAmount: decimal.NewFromFloat(20.10), SavingsAmount: decimal.NewFromFloat(2.50)},
		}
		doudous := []*models.Doudou{{Name: "Pinpin", AnimalType: "lapin"}}

		svc := NewDashboardService(&storage.MockOrderStorage{
			GetByEmailFunc: func(ctx context.Context, email string) ([]*models.Order, error) {
				return orders, nil
			},
			GetDoudousByEmailFunc: func(ctx context.Context, email string) ([]*models.Doudou, error) {
				return doudous, nil
			},
		}, zap.NewNop().Sugar())

		dash, err := svc.GetDashboard(ctx, "parent@example.com")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if dash.Stats.TotalOrders != 3 {
			t.Errorf("expected 3 orders, got %d", dash.Stats.TotalOrders)
		}
		if math.Abs(dash.Stats.TotalSpent-102.00) > 1e-9 {
			t.Errorf("expected total spent 102.00, got %.2f", dash.Stats.TotalSpent)
		}
		if math.Abs(dash.Stats.TotalSavings-7.50) > 1e-9 {
			t.Errorf("expected total savings 7.50, got %.2f", dash.Stats.TotalSavings)
		}
		if len(dash.Doudous) != 1 || dash.Doudous[0].Name != "Pinpin" {
			t.Errorf("unexpected doudous: %+v", dash.Doudous)
		}
	})

	t.Run("no orders", func(t *testing.T) {
		svc := NewDashboardService(&storage.MockOrderStorage{}, zap.NewNop().Sugar())
		dash, err := svc.GetDashboard(ctx, "new@example.com")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if dash.Stats.TotalOrders != 0 || dash.Stats.TotalSpent != 0 {
			t.Errorf("expected zeroed stats, got %+v", dash.Stats)
		}
	})

	t.Run("order fetch failure fails the dashboard", func(t *testing.T) {
		svc := NewDashboardService(&storage.MockOrderStorage{
			GetByEmailFunc: func(ctx context.Context, email string) ([]*models.Order, error) {
				return nil, errors.New("db down")
			},
		}, zap.NewNop().Sugar())

		if _, err := svc.GetDashboard(ctx, "parent@example.com"); err == nil {
			t.Fatal("expected an error")
		}
	})

	t.Run("doudou fetch failure tolerated", func(t *testing.T) {
		svc := NewDashboardService(&storage.MockOrderStorage{
			GetByEmailFunc: func(ctx context.Context, email string) ([]*models.Order, error) {
				return []*models.Order{{OrderNumber: "TGD-00001", TotalAmount: decimal.NewFromInt(10)}}, nil
			},
			GetDoudousByEmailFunc: func(ctx context.Context, email string) ([]*models.Doudou, error) {
				return nil, errors.New("db down")
			},
		}, zap.NewNop().Sugar())

		dash, err := svc.GetDashboard(ctx, "parent@example.com")
		if err != nil {
			t.Fatalf("expected the dashboard to render without doudous, got %v", err)
		}
		if dash.Doudous != nil {
			t.Errorf("expected nil doudous, got %+v", dash.Doudous)
		}
		if dash.Stats.TotalOrders != 1 {
			t.Errorf("expected stats over orders, got %+v", dash.Stats)
		}
	})
}
