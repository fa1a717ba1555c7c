package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/medinventory-api/internal/application/dto"
	"github.com/jhoicas/medinventory-api/internal/domain/entity"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$1,234.50", formatMoney(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "$0.00", formatMoney(decimal.Zero))
	assert.Equal(t, "-$24.80", formatMoney(decimal.RequireFromString("-24.8")))
}

func TestColumnSizes(t *testing.T) {
	assert.Equal(t, []int{2, 2, 2, 2, 2, 2}, columnSizes(6))
	assert.Equal(t, []int{4, 2, 2, 2, 2}, columnSizes(5))
	assert.Len(t, columnSizes(20), 12)
	assert.Nil(t, columnSizes(0))
}

func TestGenerateInvoicePDF(t *testing.T) {
	issue := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	inv := &entity.Invoice{
		InvoiceNumber: "INV25031234",
		Pharmacy:      entity.PharmacySnapshot{Name: "Central Pharmacy", RegistrationNumber: "REG-1"},
		IssueDate:     issue,
		DueDate:       issue.AddDate(0, 0, 30),
		Items: []*entity.InvoiceItem{{
			Product:            entity.ProductSnapshot{Name: "Paracetamol", BatchNumber: "B-1"},
			Quantity:           10,
			UnitPrice:          decimal.NewFromInt(2),
			DiscountPercentage: decimal.Zero,
			TotalAmount:        decimal.NewFromInt(20),
		}},
		Subtotal:    decimal.NewFromInt(20),
		TotalAmount: decimal.NewFromInt(20),
		Status:      entity.InvoiceStatusIssued,
		Notes:       "Deliver before noon",
	}

	out, err := NewMarotoPDFGenerator("").GenerateInvoicePDF(context.Background(), inv)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))

	_, err = NewMarotoPDFGenerator("").GenerateInvoicePDF(context.Background(), nil)
	assert.Error(t, err)
}

func TestReportExporter(t *testing.T) {
	e := NewReportExporter()
	assert.Equal(t, "pdf", e.Extension())
	assert.Equal(t, "application/pdf", e.ContentType())

	out, err := e.Export(&dto.Report{
		Title:       "Inventory Report",
		GeneratedAt: time.Now(),
		Filters:     []string{"Category: Medicines"},
		Table: dto.ReportTable{
			Headers: []string{"Product Name", "Category", "Quantity"},
			Rows:    [][]string{{"Paracetamol", "Medicines", "10"}},
		},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))

	empty, err := e.Export(&dto.Report{Title: "Expiry Report", GeneratedAt: time.Now()})
	require.NoError(t, err)
	assert.NotEmpty(t, empty)
}
