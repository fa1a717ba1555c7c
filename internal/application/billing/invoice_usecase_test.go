package billing

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/medinventory-api/internal/application/activity"
	"github.com/jhoicas/medinventory-api/internal/application/dto"
	"github.com/jhoicas/medinventory-api/internal/application/inventory"
	"github.com/jhoicas/medinventory-api/internal/domain"
	"github.com/jhoicas/medinventory-api/internal/domain/entity"
	"github.com/jhoicas/medinventory-api/internal/infrastructure/memory"
	"github.com/jhoicas/medinventory-api/pkg/logger"
)

var testActor = dto.Actor{ID: "user-1", Name: "Admin", Role: entity.RoleAdmin}

type fixture struct {
	store    *memory.Store
	invoices *InvoiceUseCase
	payments *PaymentUseCase
	products *memory.ProductRepo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	tx := memory.NewTxRunner(store)
	act := activity.NewActivityUseCase(memory.NewActivityRepo(store), logger.Nop())
	stock := inventory.NewStockUseCase(tx, memory.NewStockMovementRepo(store))
	products := memory.NewProductRepo(store)

	require.NoError(t, products.Create(context.Background(), &entity.Product{
		ID: "prod-1", Name: "Paracetamol 500mg", Category: "Medicines", Unit: "tablets",
		Quantity: 100, ReorderLevel: 20, CostPerUnit: decimal.RequireFromString("2.00"),
		ExpiryDate: time.Now().AddDate(1, 0, 0),
	}))
	require.NoError(t, memory.NewPharmacyRepo(store).Create(context.Background(), &entity.Pharmacy{
		ID: "ph-1", Name: "Central Pharmacy", RegistrationNumber: "REG-001", PaymentTerms: 30,
	}))

	return &fixture{
		store:    store,
		invoices: NewInvoiceUseCase(tx, stock, memory.NewPharmacyRepo(store), memory.NewInvoiceRepo(store), act, logger.Nop()),
		payments: NewPaymentUseCase(tx, memory.NewPaymentRepo(store), act),
		products: products,
	}
}

func (f *fixture) quantity(t *testing.T, id string) int {
	t.Helper()
	p, err := f.products.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Quantity
}

func sampleInvoice() dto.CreateInvoiceRequest {
	return dto.CreateInvoiceRequest{
		PharmacyID:         "ph-1",
		IssueDate:          "2025-03-01",
		DiscountPercentage: decimal.NewFromInt(10),
		TaxPercentage:      decimal.NewFromInt(10),
		Items: []dto.InvoiceItemRequest{
			{ProductID: "prod-1", Quantity: 10},
		},
	}
}

func TestInvoiceCreate_TotalsAndStock(t *testing.T) {
	f := newFixture(t)

	inv, err := f.invoices.Create(context.Background(), testActor, sampleInvoice())
	require.NoError(t, err)

	assertDecimal(t, "20", inv.Subtotal)
	assertDecimal(t, "2", inv.DiscountAmount)
	assertDecimal(t, "1.8", inv.TaxAmount)
	assertDecimal(t, "19.8", inv.TotalAmount)
	assert.Equal(t, entity.InvoiceStatusDraft, inv.Status)
	assert.Equal(t, "2025-03-31", inv.DueDate, "vencimiento = emisión + plazo de la farmacia")
	assert.Regexp(t, `^INV\d{8}$`, inv.InvoiceNumber)
	require.Len(t, inv.Items, 1)
	assert.Equal(t, "Paracetamol 500mg", inv.Items[0].ProductName)

	assert.Equal(t, 90, f.quantity(t, "prod-1"))
}

func TestInvoiceCreate_InsufficientStockRollsBack(t *testing.T) {
	f := newFixture(t)
	req := sampleInvoice()
	req.Items = append(req.Items, dto.InvoiceItemRequest{ProductID: "prod-1", Quantity: 95})

	_, err := f.invoices.Create(context.Background(), testActor, req)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, 100, f.quantity(t, "prod-1"), "la primera línea no debe quedar aplicada")
	list, err := f.invoices.List(context.Background(), "", "", "", dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, list.Items)
}

func TestInvoiceCreate_RetriesOnDuplicateNumber(t *testing.T) {
	f := newFixture(t)
	numbers := []string{"INV25030001", "INV25030001", "INV25030002"}
	calls := 0
	f.invoices.newNumber = func(time.Time) string {
		n := numbers[calls]
		calls++
		return n
	}

	first, err := f.invoices.Create(context.Background(), testActor, sampleInvoice())
	require.NoError(t, err)
	second, err := f.invoices.Create(context.Background(), testActor, sampleInvoice())
	require.NoError(t, err)

	assert.Equal(t, "INV25030001", first.InvoiceNumber)
	assert.Equal(t, "INV25030002", second.InvoiceNumber)
	assert.Equal(t, 3, calls)
	assert.Equal(t, 80, f.quantity(t, "prod-1"), "el intento fallido no descuenta stock")
}

func TestInvoiceCreate_Validation(t *testing.T) {
	f := newFixture(t)

	req := sampleInvoice()
	req.TaxPercentage = decimal.NewFromInt(150)
	_, err := f.invoices.Create(context.Background(), testActor, req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	req = sampleInvoice()
	req.PharmacyID = "missing"
	_, err = f.invoices.Create(context.Background(), testActor, req)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	req = sampleInvoice()
	req.Items = nil
	_, err = f.invoices.Create(context.Background(), testActor, req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestInvoice_AddAndRemoveItem(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	inv, err := f.invoices.Create(ctx, testActor, sampleInvoice())
	require.NoError(t, err)

	price := decimal.RequireFromString("5")
	inv, err = f.invoices.AddItem(ctx, testActor, inv.ID, dto.InvoiceItemRequest{ProductID: "prod-1", Quantity: 2, UnitPrice: &price})
	require.NoError(t, err)
	require.Len(t, inv.Items, 2)
	assertDecimal(t, "30", inv.Subtotal)
	assert.Equal(t, 88, f.quantity(t, "prod-1"))

	inv, err = f.invoices.RemoveItem(ctx, testActor, inv.ID, inv.Items[0].ID)
	require.NoError(t, err)
	require.Len(t, inv.Items, 1)
	assertDecimal(t, "10", inv.Subtotal)
	assert.Equal(t, 88, f.quantity(t, "prod-1"), "quitar una línea no devuelve stock")

	_, err = f.invoices.UpdateStatus(ctx, testActor, inv.ID, entity.InvoiceStatusCancelled)
	require.NoError(t, err)
	_, err = f.invoices.AddItem(ctx, testActor, inv.ID, dto.InvoiceItemRequest{ProductID: "prod-1", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestInvoice_FractionalAmountsSurviveReread(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.products.Create(ctx, &entity.Product{
		ID: "prod-2", Name: "Insulin Glargine", Category: "Medicines", Unit: "vial",
		Quantity: 50, CostPerUnit: decimal.RequireFromString("1.2345"),
		ExpiryDate: time.Now().AddDate(1, 0, 0),
	}))

	req := dto.CreateInvoiceRequest{
		PharmacyID:         "ph-1",
		IssueDate:          "2025-03-01",
		DiscountPercentage: decimal.RequireFromString("12.345"),
		TaxPercentage:      decimal.RequireFromString("19"),
		Items:              []dto.InvoiceItemRequest{{ProductID: "prod-2", Quantity: 3}},
	}
	created, err := f.invoices.Create(ctx, testActor, req)
	require.NoError(t, err)
	assertDecimal(t, "1.2345", created.Items[0].UnitPrice)
	assertDecimal(t, "3.7035", created.Items[0].TotalAmount)

	updated, err := f.invoices.AddItem(ctx, testActor, created.ID, dto.InvoiceItemRequest{ProductID: "prod-2", Quantity: 3})
	require.NoError(t, err)

	got, err := f.invoices.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assertDecimal(t, got.Subtotal.String(), updated.Subtotal)
	assertDecimal(t, got.DiscountAmount.String(), updated.DiscountAmount)
	assertDecimal(t, got.TaxAmount.String(), updated.TaxAmount)
	assertDecimal(t, got.TotalAmount.String(), updated.TotalAmount)
	assertDecimal(t, "7.407", got.Subtotal)

	sum := decimal.Zero
	require.Len(t, got.Items, 2)
	for i, it := range got.Items {
		assertDecimal(t, updated.Items[i].UnitPrice.String(), it.UnitPrice)
		assertDecimal(t, updated.Items[i].TotalAmount.String(), it.TotalAmount)
		sum = sum.Add(it.TotalAmount)
	}
	assertDecimal(t, sum.String(), got.Subtotal, "subtotal = suma de las líneas")

	res, err := f.payments.Add(ctx, testActor, created.ID, dto.CreatePaymentRequest{
		Amount: decimal.RequireFromString("0.001"), Method: entity.PaymentMethodCash,
	})
	require.NoError(t, err)
	assertDecimal(t, "0.001", res.Payment.Amount)
	assert.Equal(t, entity.InvoiceStatusPartial, res.Invoice.Status)
}

func TestInvoice_UpdateRecalculates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	inv, err := f.invoices.Create(ctx, testActor, sampleInvoice())
	require.NoError(t, err)

	zero := decimal.Zero
	notes := "  entregar en bodega  "
	inv, err = f.invoices.Update(ctx, testActor, inv.ID, dto.UpdateInvoiceRequest{
		DiscountPercentage: &zero,
		TaxPercentage:      &zero,
		Notes:              &notes,
	})
	require.NoError(t, err)
	assertDecimal(t, "20", inv.TotalAmount)
	assert.Equal(t, "entregar en bodega", inv.Notes)

	bad := "2025-01-01"
	_, err = f.invoices.Update(ctx, testActor, inv.ID, dto.UpdateInvoiceRequest{DueDate: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPaymentAdd_StatusTransitions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	inv, err := f.invoices.Create(ctx, testActor, sampleInvoice())
	require.NoError(t, err)

	res, err := f.payments.Add(ctx, testActor, inv.ID, dto.CreatePaymentRequest{
		Amount: decimal.RequireFromString("9.8"), Method: entity.PaymentMethodCash,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusPartial, res.Invoice.Status)
	assertDecimal(t, "10", res.Invoice.Balance)

	res, err = f.payments.Add(ctx, testActor, inv.ID, dto.CreatePaymentRequest{
		Amount: decimal.RequireFromString("15"), Method: entity.PaymentMethodBankTransfer, ReferenceNumber: "TRX-1",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusPaid, res.Invoice.Status)
	assertDecimal(t, "24.8", res.Invoice.PaidAmount, "el sobrepago se acepta")

	payments, err := f.payments.List(ctx, inv.ID, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, payments, 2)

	// Borrar un abono no recalcula la factura.
	require.NoError(t, f.payments.Delete(ctx, testActor, res.Payment.ID))
	got, err := f.invoices.GetByID(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusPaid, got.Status)
}

func TestPaymentAdd_Invalid(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.payments.Add(ctx, testActor, "missing", dto.CreatePaymentRequest{Amount: decimal.NewFromInt(1), Method: entity.PaymentMethodCash})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.payments.Add(ctx, testActor, "missing", dto.CreatePaymentRequest{Amount: decimal.Zero, Method: entity.PaymentMethodCash})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.payments.Add(ctx, testActor, "missing", dto.CreatePaymentRequest{Amount: decimal.NewFromInt(1), Method: "barter"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestInvoiceMarkOverdue(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.invoices.now = func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }

	inv, err := f.invoices.Create(ctx, testActor, sampleInvoice())
	require.NoError(t, err)
	_, err = f.invoices.UpdateStatus(ctx, testActor, inv.ID, entity.InvoiceStatusIssued)
	require.NoError(t, err)

	draft, err := f.invoices.Create(ctx, testActor, sampleInvoice())
	require.NoError(t, err)

	f.invoices.now = func() time.Time { return time.Date(2025, 4, 15, 8, 0, 0, 0, time.UTC) }
	res, err := f.invoices.MarkOverdue(ctx, dto.SystemActor)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Updated)
	assert.Equal(t, []string{inv.ID}, res.InvoiceIDs)

	got, err := f.invoices.GetByID(ctx, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusDraft, got.Status, "los borradores no vencen")
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.Truef(t, decimal.RequireFromString(want).Equal(got), "esperado %s, obtenido %s %v", want, got, msgAndArgs)
}
