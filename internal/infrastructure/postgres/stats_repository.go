package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/medinventory-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.StatsRepository = (*StatsRepo)(nil)

// StatsRepo consultas de solo lectura para el dashboard.
type StatsRepo struct {
	pool *pgxpool.Pool
}

// NewStatsRepository construye el adaptador de estadísticas.
func NewStatsRepository(pool *pgxpool.Pool) *StatsRepo {
	return &StatsRepo{pool: pool}
}

func (r *StatsRepo) count(ctx context.Context, name, query string, args ...any) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", name, err)
	}
	return n, nil
}

func (r *StatsRepo) CountProducts(ctx context.Context) (int, error) {
	return r.count(ctx, "products", `SELECT COUNT(*) FROM products`)
}

func (r *StatsRepo) CountLowStock(ctx context.Context) (int, error) {
	return r.count(ctx, "low stock", `SELECT COUNT(*) FROM products WHERE quantity <= reorder_level`)
}

// CountExpiring cuenta vencimientos en (now, until]. expiry_date es DATE: se compara contra la medianoche UTC.
func (r *StatsRepo) CountExpiring(ctx context.Context, now, until time.Time) (int, error) {
	return r.count(ctx, "expiring",
		`SELECT COUNT(*) FROM products WHERE expiry_date::timestamp AT TIME ZONE 'UTC' > $1 AND expiry_date::timestamp AT TIME ZONE 'UTC' <= $2`,
		now, until)
}

func (r *StatsRepo) CountClients(ctx context.Context) (int, error) {
	return r.count(ctx, "clients", `SELECT COUNT(*) FROM clients`)
}

func (r *StatsRepo) CountActiveUsers(ctx context.Context) (int, error) {
	return r.count(ctx, "active users", `SELECT COUNT(*) FROM users WHERE status = 'active'`)
}

func (r *StatsRepo) CountInvoices(ctx context.Context) (int, error) {
	return r.count(ctx, "invoices", `SELECT COUNT(*) FROM invoices`)
}

// PendingPayments cuenta facturas con saldo por cobrar y suma ese saldo.
func (r *StatsRepo) PendingPayments(ctx context.Context) (int, decimal.Decimal, error) {
	const query = `
		SELECT COUNT(*), COALESCE(SUM(total_amount - paid_amount), 0)
		FROM invoices
		WHERE status IN ('issued', 'partial', 'overdue')`
	var (
		n     int
		total decimal.Decimal
	)
	if err := r.pool.QueryRow(ctx, query).Scan(&n, &total); err != nil {
		return 0, decimal.Zero, fmt.Errorf("pending payments: %w", err)
	}
	return n, total, nil
}
