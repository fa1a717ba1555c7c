package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/medinventory-api/internal/application/activity"
	"github.com/jhoicas/medinventory-api/internal/application/dto"
	"github.com/jhoicas/medinventory-api/internal/domain"
	"github.com/jhoicas/medinventory-api/internal/domain/billing"
	"github.com/jhoicas/medinventory-api/internal/domain/entity"
	"github.com/jhoicas/medinventory-api/internal/domain/repository"
)

// PaymentUseCase registra abonos y actualiza lo pagado y el estado de la factura
// en una sola transacción.
type PaymentUseCase struct {
	txRunner    BillingTxRunner
	paymentRepo repository.PaymentRepository
	activity    *activity.ActivityUseCase
	now         func() time.Time
}

// NewPaymentUseCase construye el caso de uso.
func NewPaymentUseCase(txRunner BillingTxRunner, paymentRepo repository.PaymentRepository, act *activity.ActivityUseCase) *PaymentUseCase {
	return &PaymentUseCase{txRunner: txRunner, paymentRepo: paymentRepo, activity: act, now: time.Now}
}

// Add aplica un abono: pagado += monto y el estado se deriva con billing.ApplyPayment.
// Un sobrepago se acepta y deja la factura en paid.
func (uc *PaymentUseCase) Add(ctx context.Context, actor dto.Actor, invoiceID string, in dto.CreatePaymentRequest) (*dto.PaymentResultResponse, error) {
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: el monto debe ser mayor a cero", domain.ErrInvalidInput)
	}
	if !entity.IsValidPaymentMethod(in.Method) {
		return nil, domain.ErrInvalidInput
	}
	now := uc.now()
	paymentDate := dateOf(now)
	if in.PaymentDate != "" {
		d, err := dto.ParseDate(in.PaymentDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		paymentDate = d
	}

	var (
		inv *entity.Invoice
		p   *entity.Payment
	)
	err := uc.txRunner.Run(ctx, func(tx repository.TxRepositories) error {
		var err error
		if inv, err = lockInvoice(ctx, tx, invoiceID); err != nil {
			return err
		}
		inv.PaidAmount, inv.Status = billing.ApplyPayment(inv.PaidAmount, inv.TotalAmount, in.Amount)
		inv.UpdatedAt = now
		if err := tx.Invoices.Update(ctx, inv); err != nil {
			return err
		}
		p = &entity.Payment{
			ID:              uuid.New().String(),
			InvoiceID:       inv.ID,
			InvoiceNumber:   inv.InvoiceNumber,
			PaymentDate:     paymentDate,
			Amount:          in.Amount,
			Method:          in.Method,
			ReferenceNumber: strings.TrimSpace(in.ReferenceNumber),
			Notes:           strings.TrimSpace(in.Notes),
			CreatedByID:     actor.ID,
			CreatedAt:       now,
		}
		if err := tx.Payments.Create(ctx, p); err != nil {
			return err
		}
		return tx.Activity.Create(ctx, activity.NewEntry(actor, entity.ActionPaid, entity.EntityPayment, p.ID,
			fmt.Sprintf("Recorded payment of %s for invoice %s (%s)", in.Amount.StringFixed(2), inv.InvoiceNumber, inv.Status)))
	})
	if err != nil {
		return nil, err
	}
	return &dto.PaymentResultResponse{
		Payment: *toPaymentResponse(p),
		Invoice: *toInvoiceResponse(inv, false),
	}, nil
}

// Delete elimina el abono. Lo pagado y el estado de la factura no se recalculan.
func (uc *PaymentUseCase) Delete(ctx context.Context, actor dto.Actor, id string) error {
	p, err := uc.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	if err := uc.paymentRepo.Delete(ctx, id); err != nil {
		return err
	}
	uc.activity.Record(ctx, actor, entity.ActionDeleted, entity.EntityPayment, id,
		fmt.Sprintf("Deleted payment of %s for invoice %s", p.Amount.StringFixed(2), p.InvoiceNumber))
	return nil
}

// List lista abonos, de una factura o de todas.
func (uc *PaymentUseCase) List(ctx context.Context, invoiceID string, page dto.PageRequest) ([]dto.PaymentResponse, error) {
	page.DefaultPage()
	list, err := uc.paymentRepo.List(ctx, repository.PaymentFilter{InvoiceID: invoiceID, Limit: page.Limit, Offset: page.Offset})
	if err != nil {
		return nil, err
	}
	out := make([]dto.PaymentResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toPaymentResponse(p))
	}
	return out, nil
}

func toPaymentResponse(p *entity.Payment) *dto.PaymentResponse {
	return &dto.PaymentResponse{
		ID:              p.ID,
		InvoiceID:       p.InvoiceID,
		InvoiceNumber:   p.InvoiceNumber,
		PaymentDate:     dto.FormatDate(p.PaymentDate),
		Amount:          p.Amount,
		Method:          p.Method,
		ReferenceNumber: p.ReferenceNumber,
		Notes:           p.Notes,
		CreatedByID:     p.CreatedByID,
		CreatedAt:       p.CreatedAt,
	}
}
