package service

import (
	"context"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/playfiesta/store_api/internal/models"
	"github.com/playfiesta/store_api/internal/repository"
)

// lowStockThreshold is the stock level at or below which an available
// product counts as low stock on the dashboard.
const lowStockThreshold = 5

// StatsStore is the aggregate query surface backing the dashboard.
// Implemented by *repository.StatsRepository.
type StatsStore interface {
	CountOrders(ctx context.Context) (int, error)
	CountOrdersByStatus(ctx context.Context, status models.OrderStatus) (int, error)
	SumPaidRevenue(ctx context.Context) (decimal.Decimal, error)
	CountProducts(ctx context.Context) (int, error)
	CountLowStock(ctx context.Context, threshold int) (int, error)
	CountCustomers(ctx context.Context) (int, error)
	CustomersByMonth(ctx context.Context) ([]repository.MonthCount, error)
	CustomersBySource(ctx context.Context) ([]repository.SourceCount, error)
}

// StatsService produces the admin dashboard rollup. Read-only.
type StatsService struct {
	stats StatsStore
}

// NewStatsService constructs a StatsService.
func NewStatsService(stats StatsStore) *StatsService {
	return &StatsService{stats: stats}
}

// Dashboard is the combined rollup. Revenue is rendered as a string to keep
// decimal precision on the wire.
type Dashboard struct {
	TotalOrders      int                      `json:"totalOrders"`
	PendingOrders    int                      `json:"pendingOrders"`
	PaidRevenue      string                   `json:"paidRevenue"`
	TotalProducts    int                      `json:"totalProducts"`
	LowStockProducts int                      `json:"lowStockProducts"`
	TotalCustomers   int                      `json:"totalCustomers"`
	CustomersByMonth []repository.MonthCount  `json:"customersByMonth"`
	CustomersBySrc   []repository.SourceCount `json:"customersBySource"`
}

// GetDashboard runs all aggregate queries concurrently and combines the
// results once every query has completed. The queries are independent, so
// no ordering is imposed. If any of them fails the whole call fails:
// dashboard correctness over partial availability.
func (s *StatsService) GetDashboard(ctx context.Context) (*Dashboard, error) {
	var d Dashboard
	var revenue decimal.Decimal

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		d.TotalOrders, err = s.stats.CountOrders(gctx)
		return err
	})
	g.Go(func() (err error) {
		d.PendingOrders, err = s.stats.CountOrdersByStatus(gctx, models.StatusPending)
		return err
	})
	g.Go(func() (err error) {
		revenue, err = s.stats.SumPaidRevenue(gctx)
		return err
	})
	g.Go(func() (err error) {
		d.TotalProducts, err = s.stats.CountProducts(gctx)
		return err
	})
	g.Go(func() (err error) {
		d.LowStockProducts, err = s.stats.CountLowStock(gctx, lowStockThreshold)
		return err
	})
	g.Go(func() (err error) {
		d.TotalCustomers, err = s.stats.CountCustomers(gctx)
		return err
	})
	g.Go(func() (err error) {
		d.CustomersByMonth, err = s.stats.CustomersByMonth(gctx)
		return err
	})
	g.Go(func() (err error) {
		d.CustomersBySrc, err = s.stats.CustomersBySource(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	d.PaidRevenue = revenue.StringFixed(2)
	return &d, nil
}
