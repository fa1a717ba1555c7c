package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// StatsRepository agrupa las consultas de conteo del dashboard.
// Las implementaciones son read-only.
type StatsRepository interface {
	CountProducts(ctx context.Context) (int, error)
	// CountLowStock cuenta productos con quantity <= reorder_level.
	CountLowStock(ctx context.Context) (int, error)
	// CountExpiring cuenta productos con vencimiento en (now, until].
	CountExpiring(ctx context.Context, now, until time.Time) (int, error)
	CountClients(ctx context.Context) (int, error)
	CountActiveUsers(ctx context.Context) (int, error)
	CountInvoices(ctx context.Context) (int, error)
	// PendingPayments cuenta facturas issued/partial/overdue y su saldo pendiente.
	PendingPayments(ctx context.Context) (int, decimal.Decimal, error)
}
