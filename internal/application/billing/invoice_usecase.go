package billing

import (
	"context"
	"errors"
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
	"github.com/jhoicas/medinventory-api/pkg/logger"
)

// maxNumberAttempts reintentos ante colisión del número aleatorio de factura.
const maxNumberAttempts = 5

// InvoiceUseCase crea y mantiene facturas; el descuento de inventario ocurre en la misma transacción.
type InvoiceUseCase struct {
	txRunner     BillingTxRunner
	inventoryUC  InventoryUseCase
	pharmacyRepo repository.PharmacyRepository
	invoiceRepo  repository.InvoiceRepository
	activity     *activity.ActivityUseCase
	log          *logger.Logger
	now          func() time.Time
	newNumber    func(time.Time) string
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(
	txRunner BillingTxRunner,
	inventoryUC InventoryUseCase,
	pharmacyRepo repository.PharmacyRepository,
	invoiceRepo repository.InvoiceRepository,
	act *activity.ActivityUseCase,
	log *logger.Logger,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		txRunner:     txRunner,
		inventoryUC:  inventoryUC,
		pharmacyRepo: pharmacyRepo,
		invoiceRepo:  invoiceRepo,
		activity:     act,
		log:          log,
		now:          time.Now,
		newNumber:    billing.NewInvoiceNumber,
	}
}

// Create crea la factura en borrador, registra salidas de inventario por cada línea
// y guarda cabecera y líneas con los snapshots de farmacia y productos.
func (uc *InvoiceUseCase) Create(ctx context.Context, actor dto.Actor, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if in.PharmacyID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if !billing.ValidPercentage(in.DiscountPercentage) || !billing.ValidPercentage(in.TaxPercentage) {
		return nil, fmt.Errorf("%w: los porcentajes deben estar entre 0 y 100", domain.ErrInvalidInput)
	}
	for _, it := range in.Items {
		if err := validateItem(it); err != nil {
			return nil, err
		}
	}

	pharmacy, err := uc.pharmacyRepo.GetByID(ctx, in.PharmacyID)
	if err != nil {
		return nil, err
	}
	if pharmacy == nil {
		return nil, fmt.Errorf("%w: farmacia %s", domain.ErrNotFound, in.PharmacyID)
	}

	now := uc.now()
	issueDate := dateOf(now)
	if in.IssueDate != "" {
		if issueDate, err = dto.ParseDate(in.IssueDate); err != nil {
			return nil, domain.ErrInvalidInput
		}
	}
	dueDate := issueDate.AddDate(0, 0, pharmacy.PaymentTerms)
	if in.DueDate != "" {
		if dueDate, err = dto.ParseDate(in.DueDate); err != nil {
			return nil, domain.ErrInvalidInput
		}
	}
	if dueDate.Before(issueDate) {
		return nil, fmt.Errorf("%w: la fecha de vencimiento es anterior a la de emisión", domain.ErrInvalidInput)
	}

	var inv *entity.Invoice
	for attempt := 1; ; attempt++ {
		inv = &entity.Invoice{
			ID:                 uuid.New().String(),
			InvoiceNumber:      uc.newNumber(now),
			PharmacyID:         pharmacy.ID,
			Pharmacy:           pharmacy.Snapshot(),
			IssueDate:          issueDate,
			DueDate:            dueDate,
			DiscountPercentage: in.DiscountPercentage,
			TaxPercentage:      in.TaxPercentage,
			Status:             entity.InvoiceStatusDraft,
			Notes:              strings.TrimSpace(in.Notes),
			CreatedByID:        actor.ID,
			CreatedByName:      actor.Name,
			CreatedAt:          now,
			UpdatedAt:          now,
		}
		err = uc.txRunner.Run(ctx, func(tx repository.TxRepositories) error {
			for _, it := range in.Items {
				if _, err := uc.addLineInTx(ctx, tx, actor, inv, it, now); err != nil {
					return err
				}
			}
			recalculate(inv)
			if err := tx.Invoices.Create(ctx, inv); err != nil {
				return err
			}
			return tx.Activity.Create(ctx, activity.NewEntry(actor, entity.ActionCreated, entity.EntityInvoice, inv.ID,
				fmt.Sprintf("Created invoice %s for %s", inv.InvoiceNumber, inv.Pharmacy.Name)))
		})
		if !errors.Is(err, domain.ErrDuplicate) || attempt >= maxNumberAttempts {
			break
		}
		uc.log.Warn().Str("invoice_number", inv.InvoiceNumber).Int("attempt", attempt).
			Msg("número de factura repetido, se genera otro")
	}
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv, true), nil
}

// addLineInTx bloquea el producto, descuenta stock y agrega la línea calculada a inv.Items.
func (uc *InvoiceUseCase) addLineInTx(
	ctx context.Context,
	tx repository.TxRepositories,
	actor dto.Actor,
	inv *entity.Invoice,
	in dto.InvoiceItemRequest,
	now time.Time,
) (*entity.InvoiceItem, error) {
	product, err := tx.Products.GetForUpdate(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, in.ProductID)
	}
	snapshot := product.Snapshot()
	price := product.CostPerUnit
	if in.UnitPrice != nil {
		price = *in.UnitPrice
	}
	if err := uc.inventoryUC.RegisterOUTInTx(ctx, tx, product, in.Quantity, actor.ID, inv.ID, now); err != nil {
		return nil, err
	}
	line := billing.Line{Quantity: in.Quantity, UnitPrice: price, DiscountPercentage: in.DiscountPercentage}
	amounts := billing.CalculateLine(line)
	item := &entity.InvoiceItem{
		ID:                 uuid.New().String(),
		InvoiceID:          inv.ID,
		Position:           nextPosition(inv),
		ProductID:          product.ID,
		Product:            snapshot,
		Quantity:           in.Quantity,
		UnitPrice:          price,
		DiscountPercentage: in.DiscountPercentage,
		DiscountAmount:     amounts.DiscountAmount,
		TotalAmount:        amounts.TotalAmount,
		CreatedAt:          now,
	}
	inv.Items = append(inv.Items, item)
	return item, nil
}

// GetByID obtiene la factura con sus líneas.
func (uc *InvoiceUseCase) GetByID(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return toInvoiceResponse(inv, true), nil
}

// List lista cabeceras por farmacia, estado y búsqueda.
func (uc *InvoiceUseCase) List(ctx context.Context, pharmacyID, status, search string, page dto.PageRequest) (*dto.InvoiceListResponse, error) {
	if status != "" && !entity.IsValidInvoiceStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()
	list, err := uc.invoiceRepo.List(ctx, repository.InvoiceFilter{
		PharmacyID: pharmacyID,
		Status:     status,
		Search:     search,
		Limit:      page.Limit,
		Offset:     page.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		items = append(items, *toInvoiceResponse(inv, false))
	}
	return &dto.InvoiceListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}

// Update modifica vencimiento, notas y porcentajes de cabecera; recalcula totales.
func (uc *InvoiceUseCase) Update(ctx context.Context, actor dto.Actor, id string, in dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if in.DiscountPercentage != nil && !billing.ValidPercentage(*in.DiscountPercentage) {
		return nil, domain.ErrInvalidInput
	}
	if in.TaxPercentage != nil && !billing.ValidPercentage(*in.TaxPercentage) {
		return nil, domain.ErrInvalidInput
	}
	var inv *entity.Invoice
	err := uc.txRunner.Run(ctx, func(tx repository.TxRepositories) error {
		var err error
		if inv, err = lockInvoice(ctx, tx, id); err != nil {
			return err
		}
		if in.DueDate != nil {
			due, err := dto.ParseDate(*in.DueDate)
			if err != nil || due.Before(inv.IssueDate) {
				return domain.ErrInvalidInput
			}
			inv.DueDate = due
		}
		if in.Notes != nil {
			inv.Notes = strings.TrimSpace(*in.Notes)
		}
		if in.DiscountPercentage != nil {
			inv.DiscountPercentage = *in.DiscountPercentage
		}
		if in.TaxPercentage != nil {
			inv.TaxPercentage = *in.TaxPercentage
		}
		recalculate(inv)
		refreshStatus(inv)
		inv.UpdatedAt = uc.now()
		if err := tx.Invoices.Update(ctx, inv); err != nil {
			return err
		}
		return tx.Activity.Create(ctx, activity.NewEntry(actor, entity.ActionUpdated, entity.EntityInvoice, inv.ID,
			fmt.Sprintf("Updated invoice %s", inv.InvoiceNumber)))
	})
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv, true), nil
}

// AddItem agrega una línea, descuenta stock y recalcula totales.
func (uc *InvoiceUseCase) AddItem(ctx context.Context, actor dto.Actor, invoiceID string, in dto.InvoiceItemRequest) (*dto.InvoiceResponse, error) {
	if err := validateItem(in); err != nil {
		return nil, err
	}
	var inv *entity.Invoice
	err := uc.txRunner.Run(ctx, func(tx repository.TxRepositories) error {
		var err error
		if inv, err = lockEditableInvoice(ctx, tx, invoiceID); err != nil {
			return err
		}
		now := uc.now()
		item, err := uc.addLineInTx(ctx, tx, actor, inv, in, now)
		if err != nil {
			return err
		}
		if err := tx.Invoices.CreateItem(ctx, item); err != nil {
			return err
		}
		recalculate(inv)
		refreshStatus(inv)
		inv.UpdatedAt = now
		if err := tx.Invoices.Update(ctx, inv); err != nil {
			return err
		}
		return tx.Activity.Create(ctx, activity.NewEntry(actor, entity.ActionUpdated, entity.EntityInvoice, inv.ID,
			fmt.Sprintf("Added %d x %s to invoice %s", item.Quantity, item.Product.Name, inv.InvoiceNumber)))
	})
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv, true), nil
}

// RemoveItem elimina una línea y recalcula totales. El stock descontado no se devuelve.
func (uc *InvoiceUseCase) RemoveItem(ctx context.Context, actor dto.Actor, invoiceID, itemID string) (*dto.InvoiceResponse, error) {
	var inv *entity.Invoice
	err := uc.txRunner.Run(ctx, func(tx repository.TxRepositories) error {
		var err error
		if inv, err = lockEditableInvoice(ctx, tx, invoiceID); err != nil {
			return err
		}
		idx := -1
		for i, it := range inv.Items {
			if it.ID == itemID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return fmt.Errorf("%w: línea %s", domain.ErrNotFound, itemID)
		}
		removed := inv.Items[idx]
		if err := tx.Invoices.DeleteItem(ctx, inv.ID, itemID); err != nil {
			return err
		}
		inv.Items = append(inv.Items[:idx], inv.Items[idx+1:]...)
		recalculate(inv)
		refreshStatus(inv)
		inv.UpdatedAt = uc.now()
		if err := tx.Invoices.Update(ctx, inv); err != nil {
			return err
		}
		return tx.Activity.Create(ctx, activity.NewEntry(actor, entity.ActionUpdated, entity.EntityInvoice, inv.ID,
			fmt.Sprintf("Removed %s from invoice %s", removed.Product.Name, inv.InvoiceNumber)))
	})
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv, true), nil
}

// UpdateStatus fija el estado manualmente (emitir, cancelar, etc.). Solo valida el valor.
func (uc *InvoiceUseCase) UpdateStatus(ctx context.Context, actor dto.Actor, id, status string) (*dto.InvoiceResponse, error) {
	if !entity.IsValidInvoiceStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	var inv *entity.Invoice
	err := uc.txRunner.Run(ctx, func(tx repository.TxRepositories) error {
		var err error
		if inv, err = lockInvoice(ctx, tx, id); err != nil {
			return err
		}
		prev := inv.Status
		inv.Status = status
		inv.UpdatedAt = uc.now()
		if err := tx.Invoices.Update(ctx, inv); err != nil {
			return err
		}
		return tx.Activity.Create(ctx, activity.NewEntry(actor, entity.ActionUpdated, entity.EntityInvoice, inv.ID,
			fmt.Sprintf("Changed invoice %s status from %s to %s", inv.InvoiceNumber, prev, status)))
	})
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv, true), nil
}

// Delete elimina la factura y sus líneas. Los abonos registrados no se tocan.
func (uc *InvoiceUseCase) Delete(ctx context.Context, actor dto.Actor, id string) error {
	inv, err := uc.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if inv == nil {
		return domain.ErrNotFound
	}
	if err := uc.invoiceRepo.Delete(ctx, id); err != nil {
		return err
	}
	uc.activity.Record(ctx, actor, entity.ActionDeleted, entity.EntityInvoice, id,
		fmt.Sprintf("Deleted invoice %s", inv.InvoiceNumber))
	return nil
}

// MarkOverdue pasa a overdue las facturas emitidas o parciales vencidas antes de hoy.
func (uc *InvoiceUseCase) MarkOverdue(ctx context.Context, actor dto.Actor) (*dto.MarkOverdueResponse, error) {
	ids, err := uc.invoiceRepo.MarkOverdue(ctx, billing.StartOfDay(uc.now()))
	if err != nil {
		return nil, fmt.Errorf("marcar vencidas: %w", err)
	}
	for _, id := range ids {
		uc.activity.Record(ctx, actor, entity.ActionUpdated, entity.EntityInvoice, id, "Invoice marked as overdue")
	}
	if len(ids) > 0 {
		uc.log.Info().Int("count", len(ids)).Msg("facturas marcadas como vencidas")
	}
	if ids == nil {
		ids = []string{}
	}
	return &dto.MarkOverdueResponse{Updated: len(ids), InvoiceIDs: ids}, nil
}

func validateItem(it dto.InvoiceItemRequest) error {
	if it.ProductID == "" || it.Quantity <= 0 {
		return domain.ErrInvalidInput
	}
	if !billing.ValidPercentage(it.DiscountPercentage) {
		return fmt.Errorf("%w: los porcentajes deben estar entre 0 y 100", domain.ErrInvalidInput)
	}
	if it.UnitPrice != nil && it.UnitPrice.IsNegative() {
		return domain.ErrInvalidInput
	}
	return nil
}

func lockInvoice(ctx context.Context, tx repository.TxRepositories, id string) (*entity.Invoice, error) {
	inv, err := tx.Invoices.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return inv, nil
}

// lockEditableInvoice rechaza cambios de líneas sobre facturas canceladas.
func lockEditableInvoice(ctx context.Context, tx repository.TxRepositories, id string) (*entity.Invoice, error) {
	inv, err := lockInvoice(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if inv.Status == entity.InvoiceStatusCancelled {
		return nil, fmt.Errorf("%w: la factura está cancelada", domain.ErrConflict)
	}
	return inv, nil
}

// recalculate deriva los montos de cabecera desde las líneas.
func recalculate(inv *entity.Invoice) {
	lines := make([]billing.Line, 0, len(inv.Items))
	for _, it := range inv.Items {
		lines = append(lines, billing.Line{
			Quantity:           it.Quantity,
			UnitPrice:          it.UnitPrice,
			DiscountPercentage: it.DiscountPercentage,
		})
	}
	t := billing.CalculateTotals(lines, inv.DiscountPercentage, inv.TaxPercentage)
	inv.Subtotal = t.Subtotal
	inv.DiscountAmount = t.DiscountAmount
	inv.TaxAmount = t.TaxAmount
	inv.TotalAmount = t.TotalAmount
}

// refreshStatus re-deriva el estado si la factura ya tenía abonos y cambió su total.
func refreshStatus(inv *entity.Invoice) {
	switch inv.Status {
	case entity.InvoiceStatusPartial, entity.InvoiceStatusPaid:
		inv.Status = billing.StatusForPaid(inv.PaidAmount, inv.TotalAmount)
	}
}

func nextPosition(inv *entity.Invoice) int {
	pos := 0
	for _, it := range inv.Items {
		if it.Position > pos {
			pos = it.Position
		}
	}
	return pos + 1
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func toInvoiceResponse(inv *entity.Invoice, withItems bool) *dto.InvoiceResponse {
	out := &dto.InvoiceResponse{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		PharmacyID:    inv.PharmacyID,
		PharmacyName:  inv.Pharmacy.Name,
		Pharmacy: &dto.PharmacySnapshotDTO{
			Name:               inv.Pharmacy.Name,
			ContactPerson:      inv.Pharmacy.ContactPerson,
			ContactNumber:      inv.Pharmacy.ContactNumber,
			Email:              inv.Pharmacy.Email,
			Address:            inv.Pharmacy.Address,
			RegistrationNumber: inv.Pharmacy.RegistrationNumber,
		},
		IssueDate:          dto.FormatDate(inv.IssueDate),
		DueDate:            dto.FormatDate(inv.DueDate),
		Subtotal:           inv.Subtotal,
		DiscountPercentage: inv.DiscountPercentage,
		DiscountAmount:     inv.DiscountAmount,
		TaxPercentage:      inv.TaxPercentage,
		TaxAmount:          inv.TaxAmount,
		TotalAmount:        inv.TotalAmount,
		PaidAmount:         inv.PaidAmount,
		Balance:            inv.Balance(),
		Status:             inv.Status,
		Notes:              inv.Notes,
		CreatedByID:        inv.CreatedByID,
		CreatedByName:      inv.CreatedByName,
		CreatedAt:          inv.CreatedAt,
		UpdatedAt:          inv.UpdatedAt,
	}
	if !withItems {
		out.Pharmacy = nil
		return out
	}
	out.Items = make([]dto.InvoiceItemResponse, 0, len(inv.Items))
	for _, it := range inv.Items {
		out.Items = append(out.Items, dto.InvoiceItemResponse{
			ID:                 it.ID,
			ProductID:          it.ProductID,
			ProductName:        it.Product.Name,
			BatchNumber:        it.Product.BatchNumber,
			Unit:               it.Product.Unit,
			Quantity:           it.Quantity,
			UnitPrice:          it.UnitPrice,
			DiscountPercentage: it.DiscountPercentage,
			DiscountAmount:     it.DiscountAmount,
			TotalAmount:        it.TotalAmount,
		})
	}
	return out
}
