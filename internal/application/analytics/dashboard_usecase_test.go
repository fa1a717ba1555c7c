package analytics

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/medinventory-api/internal/domain/entity"
	"github.com/jhoicas/medinventory-api/internal/infrastructure/memory"
	"github.com/jhoicas/medinventory-api/pkg/logger"
)

type fakeCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func (c *fakeCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *fakeCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.data == nil {
		c.data = map[string][]byte{}
	}
	c.data[key] = value
	c.sets++
	return nil
}

func seed(t *testing.T, store *memory.Store, now time.Time) {
	t.Helper()
	ctx := context.Background()
	products := memory.NewProductRepo(store)
	require.NoError(t, products.Create(ctx, &entity.Product{ID: "p1", Name: "Masks", Quantity: 5, ReorderLevel: 10, ExpiryDate: now.AddDate(0, 0, 20)}))
	require.NoError(t, products.Create(ctx, &entity.Product{ID: "p2", Name: "Gloves", Quantity: 50, ReorderLevel: 10, ExpiryDate: now.AddDate(0, 0, 200)}))
	require.NoError(t, products.Create(ctx, &entity.Product{ID: "p3", Name: "Syringes", Quantity: 0, ReorderLevel: 0, ExpiryDate: now.AddDate(0, 0, -1)}))
	require.NoError(t, memory.NewClientRepo(store).Create(ctx, &entity.Client{ID: "c1", Name: "ICU", Type: entity.ClientTypeDepartment, DepartmentID: "D1"}))
	require.NoError(t, memory.NewUserRepo(store).Create(ctx, &entity.User{ID: "u1", Email: "a@b.co", Status: entity.UserStatusActive}))
	invoices := memory.NewInvoiceRepo(store)
	require.NoError(t, invoices.Create(ctx, &entity.Invoice{ID: "i1", InvoiceNumber: "INV1", Status: entity.InvoiceStatusPartial,
		TotalAmount: decimal.RequireFromString("100"), PaidAmount: decimal.RequireFromString("40")}))
	require.NoError(t, invoices.Create(ctx, &entity.Invoice{ID: "i2", InvoiceNumber: "INV2", Status: entity.InvoiceStatusPaid,
		TotalAmount: decimal.RequireFromString("50"), PaidAmount: decimal.RequireFromString("50")}))
	for i := 0; i < 7; i++ {
		require.NoError(t, memory.NewActivityRepo(store).Create(ctx, &entity.ActivityLog{ID: string(rune('a' + i)), Action: entity.ActionCreated, CreatedAt: now.Add(time.Duration(i) * time.Minute)}))
	}
}

func TestGetSummary(t *testing.T) {
	store := memory.NewStore()
	now := time.Now()
	seed(t, store, now)
	uc := NewDashboardUseCase(memory.NewStatsRepo(store), memory.NewAssignmentRepo(store), memory.NewActivityRepo(store), nil, 0, logger.Nop())

	got, err := uc.GetSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, got.TotalProducts)
	assert.Equal(t, 2, got.LowStockItems)
	assert.Equal(t, 1, got.ExpiringItems)
	assert.Equal(t, 1, got.TotalClients)
	assert.Equal(t, 1, got.ActiveUsers)
	assert.Equal(t, 2, got.TotalInvoices)
	assert.Equal(t, 1, got.PendingPayments)
	assert.True(t, decimal.NewFromInt(60).Equal(got.OutstandingAmount))
	assert.Len(t, got.RecentActivities, 5)
	assert.Empty(t, got.RecentAssignments)
}

func TestGetSummary_UsesCache(t *testing.T) {
	store := memory.NewStore()
	seed(t, store, time.Now())
	cache := &fakeCache{}
	uc := NewDashboardUseCase(memory.NewStatsRepo(store), memory.NewAssignmentRepo(store), memory.NewActivityRepo(store), cache, time.Minute, logger.Nop())

	first, err := uc.GetSummary(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, cache.sets)

	require.NoError(t, memory.NewProductRepo(store).Create(context.Background(), &entity.Product{ID: "p4", Name: "Gauze", Quantity: 100}))
	second, err := uc.GetSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first.TotalProducts, second.TotalProducts, "dentro del TTL se sirve el resumen cacheado")
	assert.Equal(t, 1, cache.sets)
}
