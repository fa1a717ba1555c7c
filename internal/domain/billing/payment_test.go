package billing

import (
	"testing"
	"time"

	"github.com/jhoicas/medinventory-api/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestApplyPayment(t *testing.T) {
	total := d("100")
	cases := []struct {
		name       string
		paid       string
		amount     string
		wantPaid   string
		wantStatus string
	}{
		{"abono parcial", "0", "40", "40", entity.InvoiceStatusPartial},
		{"completa el pago", "40", "60", "100", entity.InvoiceStatusPaid},
		{"sobrepago", "90", "50", "140", entity.InvoiceStatusPaid},
		{"sin abonos", "0", "0", "0", entity.InvoiceStatusIssued},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			paid, status := ApplyPayment(d(tc.paid), total, d(tc.amount))
			assert.True(t, paid.Equal(d(tc.wantPaid)), "paid %s", paid)
			assert.Equal(t, tc.wantStatus, status)
		})
	}
}

func TestApplyPayment_ZeroTotalIsPaid(t *testing.T) {
	_, status := ApplyPayment(decimal.Zero, decimal.Zero, decimal.Zero)
	assert.Equal(t, entity.InvoiceStatusPaid, status)
}

func TestApplyPayment_Sequence(t *testing.T) {
	total := d("250.75")
	paid := decimal.Zero
	status := ""
	for _, a := range []string{"50", "100.25", "100.50"} {
		paid, status = ApplyPayment(paid, total, d(a))
	}
	assert.True(t, paid.Equal(total))
	assert.Equal(t, entity.InvoiceStatusPaid, status)
}

func TestIsOverdue(t *testing.T) {
	now := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)
	yesterday := time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)
	today := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	assert.True(t, IsOverdue(entity.InvoiceStatusIssued, yesterday, now))
	assert.True(t, IsOverdue(entity.InvoiceStatusPartial, yesterday, now))
	assert.False(t, IsOverdue(entity.InvoiceStatusIssued, today, now))
	assert.False(t, IsOverdue(entity.InvoiceStatusPaid, yesterday, now))
	assert.False(t, IsOverdue(entity.InvoiceStatusDraft, yesterday, now))
}

func TestFormatInvoiceNumber(t *testing.T) {
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "INV25030427", FormatInvoiceNumber(now, 427))
	assert.Regexp(t, `^INV2503\d{4}$`, NewInvoiceNumber(now))
}
