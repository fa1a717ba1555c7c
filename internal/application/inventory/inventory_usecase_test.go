package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/medinventory-api/internal/application/activity"
	"github.com/jhoicas/medinventory-api/internal/application/dto"
	"github.com/jhoicas/medinventory-api/internal/domain"
	"github.com/jhoicas/medinventory-api/internal/domain/entity"
	"github.com/jhoicas/medinventory-api/internal/domain/repository"
	"github.com/jhoicas/medinventory-api/internal/infrastructure/memory"
	"github.com/jhoicas/medinventory-api/pkg/logger"
)

var testActor = dto.Actor{ID: "user-1", Name: "Nurse Joy", Role: entity.RoleAuthenticated}

type fixture struct {
	store        *memory.Store
	products     *ProductUseCase
	stock        *StockUseCase
	assignments  *AssignmentUseCase
	replenish    *ReplenishmentUseCase
	activityRepo *memory.ActivityRepo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	tx := memory.NewTxRunner(store)
	activityRepo := memory.NewActivityRepo(store)
	act := activity.NewActivityUseCase(activityRepo, logger.Nop())
	productRepo := memory.NewProductRepo(store)
	stock := NewStockUseCase(tx, memory.NewStockMovementRepo(store))

	require.NoError(t, memory.NewClientRepo(store).Create(context.Background(), &entity.Client{
		ID: "client-1", Name: "Emergency Department", Type: entity.ClientTypeDepartment, DepartmentID: "DEP-ER",
	}))

	return &fixture{
		store:        store,
		products:     NewProductUseCase(productRepo, act, 30),
		stock:        stock,
		assignments:  NewAssignmentUseCase(tx, stock, memory.NewAssignmentRepo(store), memory.NewClientRepo(store), act),
		replenish:    NewReplenishmentUseCase(productRepo, 30),
		activityRepo: activityRepo,
	}
}

func (f *fixture) createProduct(t *testing.T, name string, qty, reorder int, expiry string) *dto.ProductResponse {
	t.Helper()
	p, err := f.products.Create(context.Background(), testActor, dto.CreateProductRequest{
		Name: name, Category: "PPE", Unit: "boxes", Quantity: qty, ReorderLevel: reorder,
		ExpiryDate: expiry, CostPerUnit: decimal.NewFromInt(10),
	})
	require.NoError(t, err)
	return p
}

func TestProductCreate_Flags(t *testing.T) {
	f := newFixture(t)
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	f.products.now = func() time.Time { return now }

	p := f.createProduct(t, "Surgical Masks", 5, 10, "2025-03-15")
	assert.True(t, p.LowStock)
	assert.True(t, p.ExpiringSoon)
	assert.False(t, p.Expired)
	assert.Equal(t, 14, p.DaysRemaining)

	_, err := f.products.Create(context.Background(), testActor, dto.CreateProductRequest{
		Name: "Bad", Category: "PPE", Unit: "boxes", ExpiryDate: "15/03/2025",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.products.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductUpdateAndDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.createProduct(t, "Gloves", 50, 10, "2027-01-01")

	name := "Nitrile Gloves"
	qty := 70
	got, err := f.products.Update(ctx, testActor, p.ID, dto.UpdateProductRequest{Name: &name, Quantity: &qty})
	require.NoError(t, err)
	assert.Equal(t, "Nitrile Gloves", got.Name)
	assert.Equal(t, 70, got.Quantity)

	require.NoError(t, f.products.Delete(ctx, testActor, p.ID))
	assert.ErrorIs(t, f.products.Delete(ctx, testActor, p.ID), domain.ErrNotFound)

	logs, err := f.activityRepo.List(ctx, repository.ActivityFilter{EntityID: p.ID})
	require.NoError(t, err)
	require.Len(t, logs, 3)
	assert.Equal(t, entity.ActionDeleted, logs[0].Action, "el registro más reciente va primero")
}

func TestAddStock_WeightedAverageCost(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.createProduct(t, "Syringes", 10, 5, "2027-01-01")

	cost := decimal.NewFromInt(20)
	mov, err := f.stock.AddStock(ctx, testActor, p.ID, dto.AddStockRequest{Quantity: 10, UnitCost: &cost})
	require.NoError(t, err)
	assert.Equal(t, entity.MovementTypeIn, mov.Type)

	got, err := f.products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 20, got.Quantity)
	assert.True(t, decimal.NewFromInt(15).Equal(got.CostPerUnit), "costo promedio: (10*10 + 10*20) / 20")

	_, err = f.stock.AddStock(ctx, testActor, p.ID, dto.AddStockRequest{Quantity: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.stock.AddStock(ctx, testActor, "missing", dto.AddStockRequest{Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAssignmentCreate_DecrementsStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.createProduct(t, "Bandages", 40, 10, "2027-01-01")

	a, err := f.assignments.Create(ctx, testActor, dto.CreateAssignmentRequest{ProductID: p.ID, ClientID: "client-1", Quantity: 15})
	require.NoError(t, err)
	assert.Equal(t, "Bandages", a.ProductName)
	assert.Equal(t, "Emergency Department", a.ClientName)
	assert.Equal(t, "Nurse Joy", a.AssignedByName)

	got, err := f.products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 25, got.Quantity)

	movs, err := f.stock.Movements(ctx, p.ID, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypeOut, movs[0].Type)
	assert.Equal(t, a.ID, movs[0].ReferenceID)

	// El snapshot no cambia al renombrar el producto.
	name := "Elastic Bandages"
	_, err = f.products.Update(ctx, testActor, p.ID, dto.UpdateProductRequest{Name: &name})
	require.NoError(t, err)
	stored, err := f.assignments.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bandages", stored.ProductName)

	// Borrar la asignación no devuelve stock.
	require.NoError(t, f.assignments.Delete(ctx, testActor, a.ID))
	got, err = f.products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 25, got.Quantity)
}

func TestAssignmentCreate_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.createProduct(t, "Bandages", 5, 10, "2027-01-01")

	_, err := f.assignments.Create(ctx, testActor, dto.CreateAssignmentRequest{ProductID: p.ID, ClientID: "client-1", Quantity: 6})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	_, err = f.assignments.Create(ctx, testActor, dto.CreateAssignmentRequest{ProductID: p.ID, ClientID: "nobody", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.assignments.Create(ctx, testActor, dto.CreateAssignmentRequest{ProductID: "missing", ClientID: "client-1", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := f.products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Quantity)

	list, err := f.assignments.List(ctx, dto.AssignmentFilterRequest{}, dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestAssignmentList_Filters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.createProduct(t, "Gauze", 100, 10, "2027-01-01")
	for i := 0; i < 3; i++ {
		_, err := f.assignments.Create(ctx, testActor, dto.CreateAssignmentRequest{ProductID: p.ID, ClientID: "client-1", Quantity: 1})
		require.NoError(t, err)
	}
	today := dto.FormatDate(time.Now().UTC())

	list, err := f.assignments.List(ctx, dto.AssignmentFilterRequest{StartDate: today, EndDate: today, Category: "PPE"}, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, list, 3)

	list, err = f.assignments.List(ctx, dto.AssignmentFilterRequest{Category: "Medicines"}, dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = f.assignments.List(ctx, dto.AssignmentFilterRequest{StartDate: "yesterday"}, dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReplenishment(t *testing.T) {
	f := newFixture(t)
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	f.products.now = func() time.Time { return now }
	f.replenish.now = func() time.Time { return now }

	f.createProduct(t, "Masks", 4, 10, "2025-03-10")
	f.createProduct(t, "Gowns", 9, 10, "2026-01-01")
	f.createProduct(t, "Caps", 50, 10, "2025-02-01")

	low, err := f.replenish.LowStock(context.Background())
	require.NoError(t, err)
	require.Len(t, low, 2)
	assert.Equal(t, "Masks", low[0].Name)

	expiring, err := f.replenish.Expiring(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, expiring, 1, "los vencidos no cuentan como por vencer")
	assert.Equal(t, "Masks", expiring[0].Name)

	suggestions, err := f.replenish.ReorderSuggestions(context.Background())
	require.NoError(t, err)
	require.Len(t, suggestions, 2)
	assert.Equal(t, "Masks", suggestions[0].ProductName)
	assert.Equal(t, 15, suggestions[0].IdealStock)
	assert.Equal(t, 11, suggestions[0].SuggestedOrder)
	assert.Equal(t, 6, suggestions[1].SuggestedOrder)
}
