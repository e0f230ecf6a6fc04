package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/playfiesta/store_api/internal/models"
)

// StatsRepository runs the read-only aggregate queries backing the admin
// dashboard. All methods take a context so the dashboard fan-out can cancel
// the remaining queries as soon as one fails.
type StatsRepository struct {
	db *sqlx.DB
}

// NewStatsRepository creates a new StatsRepository.
func NewStatsRepository(db *sqlx.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// MonthCount is a per-month signup count (month formatted YYYY-MM).
type MonthCount struct {
	Month string `db:"month" json:"month"`
	Count int    `db:"count" json:"count"`
}

// SourceCount is a per-signup-source customer count.
type SourceCount struct {
	Source string `db:"source" json:"source"`
	Count  int    `db:"count" json:"count"`
}

// CountOrders returns the total number of orders.
func (r *StatsRepository) CountOrders(ctx context.Context) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, `SELECT COUNT(1) FROM orders`)
	return n, err
}

// CountOrdersByStatus returns the number of orders in a given status.
func (r *StatsRepository) CountOrdersByStatus(ctx context.Context, status models.OrderStatus) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, `SELECT COUNT(1) FROM orders WHERE status = $1`, status)
	return n, err
}

// SumPaidRevenue returns the total of all paid orders.
func (r *StatsRepository) SumPaidRevenue(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.GetContext(ctx, &total,
		`SELECT COALESCE(SUM(total), 0) FROM orders WHERE paid = true`)
	return total, err
}

// CountProducts returns the total number of products.
func (r *StatsRepository) CountProducts(ctx context.Context) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, `SELECT COUNT(1) FROM products`)
	return n, err
}

// CountLowStock returns the number of available products at or below the
// given stock threshold.
func (r *StatsRepository) CountLowStock(ctx context.Context, threshold int) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n,
		`SELECT COUNT(1) FROM products WHERE is_available = true AND stock <= $1`, threshold)
	return n, err
}

// CountCustomers returns the total number of user accounts.
func (r *StatsRepository) CountCustomers(ctx context.Context) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, `SELECT COUNT(1) FROM users`)
	return n, err
}

// CustomersByMonth returns signup counts per month, newest first.
func (r *StatsRepository) CustomersByMonth(ctx context.Context) ([]MonthCount, error) {
	var rows []MonthCount
	err := r.db.SelectContext(ctx, &rows, `
        SELECT TO_CHAR(created_at, 'YYYY-MM') AS month, COUNT(1) AS count
        FROM users GROUP BY 1 ORDER BY 1 DESC LIMIT 12`)
	return rows, err
}

// CustomersBySource returns customer counts per signup source.
func (r *StatsRepository) CustomersBySource(ctx context.Context) ([]SourceCount, error) {
	var rows []SourceCount
	err := r.db.SelectContext(ctx, &rows, `
        SELECT signup_source AS source, COUNT(1) AS count
        FROM users GROUP BY 1 ORDER BY 2 DESC`)
	return rows, err
}
