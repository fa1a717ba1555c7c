package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/medinventory-api/internal/domain"
	"github.com/jhoicas/medinventory-api/internal/domain/entity"
	"github.com/jhoicas/medinventory-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

const invoiceColumns = `id, invoice_number, pharmacy_id, pharmacy, issue_date, due_date, subtotal,
	discount_percentage, discount_amount, tax_percentage, tax_amount, total_amount, paid_amount,
	status, notes, created_by_id, created_by_name, created_at, updated_at`

const invoiceItemColumns = `id, invoice_id, position, product_id, product, quantity, unit_price,
	discount_percentage, discount_amount, total_amount, created_at`

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create persiste la cabecera y las líneas. Se espera que corra dentro de una tx.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err := r.q.Exec(ctx, query,
		inv.ID, inv.InvoiceNumber, inv.PharmacyID, inv.Pharmacy, inv.IssueDate, inv.DueDate, inv.Subtotal,
		inv.DiscountPercentage, inv.DiscountAmount, inv.TaxPercentage, inv.TaxAmount, inv.TotalAmount, inv.PaidAmount,
		inv.Status, inv.Notes, inv.CreatedByID, inv.CreatedByName, inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("invoice number already exists: %w", domain.ErrDuplicate)
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	for _, it := range inv.Items {
		if err := r.CreateItem(ctx, it); err != nil {
			return err
		}
	}
	return nil
}

// CreateItem persiste una línea.
func (r *InvoiceRepo) CreateItem(ctx context.Context, it *entity.InvoiceItem) error {
	query := `
		INSERT INTO invoice_items (` + invoiceItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		it.ID, it.InvoiceID, it.Position, it.ProductID, it.Product, it.Quantity, it.UnitPrice,
		it.DiscountPercentage, it.DiscountAmount, it.TotalAmount, it.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert invoice item: %w", err)
	}
	return nil
}

// GetByID obtiene la factura con sus líneas.
func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	return r.get(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id)
}

// GetForUpdate bloquea la cabecera (SELECT FOR UPDATE) y carga las líneas.
func (r *InvoiceRepo) GetForUpdate(ctx context.Context, id string) (*entity.Invoice, error) {
	return r.get(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1 FOR UPDATE`, id)
}

func (r *InvoiceRepo) get(ctx context.Context, query, id string) (*entity.Invoice, error) {
	inv, err := scanInvoice(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	if inv.Items, err = r.items(ctx, inv.ID); err != nil {
		return nil, err
	}
	return inv, nil
}

func (r *InvoiceRepo) items(ctx context.Context, invoiceID string) ([]*entity.InvoiceItem, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+invoiceItemColumns+` FROM invoice_items WHERE invoice_id = $1 ORDER BY position`, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice items: %w", err)
	}
	defer rows.Close()
	var list []*entity.InvoiceItem
	for rows.Next() {
		var it entity.InvoiceItem
		if err := rows.Scan(&it.ID, &it.InvoiceID, &it.Position, &it.ProductID, &it.Product, &it.Quantity,
			&it.UnitPrice, &it.DiscountPercentage, &it.DiscountAmount, &it.TotalAmount, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan invoice item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// Update persiste la cabecera: fechas, porcentajes, montos, estado y notas.
func (r *InvoiceRepo) Update(ctx context.Context, inv *entity.Invoice) error {
	query := `
		UPDATE invoices
		SET due_date            = $2,
		    subtotal            = $3,
		    discount_percentage = $4,
		    discount_amount     = $5,
		    tax_percentage      = $6,
		    tax_amount          = $7,
		    total_amount        = $8,
		    paid_amount         = $9,
		    status              = $10,
		    notes               = $11,
		    updated_at          = $12
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		inv.ID, inv.DueDate, inv.Subtotal, inv.DiscountPercentage, inv.DiscountAmount,
		inv.TaxPercentage, inv.TaxAmount, inv.TotalAmount, inv.PaidAmount, inv.Status, inv.Notes, inv.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteItem elimina una línea de la factura indicada.
func (r *InvoiceRepo) DeleteItem(ctx context.Context, invoiceID, itemID string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM invoice_items WHERE id = $1 AND invoice_id = $2`, itemID, invoiceID)
	if err != nil {
		return fmt.Errorf("delete invoice item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la factura; las líneas caen por ON DELETE CASCADE.
func (r *InvoiceRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	return nil
}

// List lista cabeceras (sin líneas), más recientes primero.
func (r *InvoiceRepo) List(ctx context.Context, f repository.InvoiceFilter) ([]*entity.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + ` FROM invoices
		WHERE ($1 = '' OR pharmacy_id::text = $1)
		  AND ($2 = '' OR status = $2)
		  AND ($3 = '' OR invoice_number ILIKE $4 OR pharmacy->>'name' ILIKE $4)
		ORDER BY created_at DESC
		LIMIT $5 OFFSET $6`
	rows, err := r.q.Query(ctx, query, f.PharmacyID, f.Status, f.Search, likePattern(f.Search), limitOrAll(f.Limit), f.Offset)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

// MarkOverdue actualiza en una sola sentencia y retorna los IDs afectados.
func (r *InvoiceRepo) MarkOverdue(ctx context.Context, before time.Time) ([]string, error) {
	rows, err := r.q.Query(ctx, `
		UPDATE invoices SET status = 'overdue', updated_at = now()
		WHERE status IN ('issued', 'partial') AND due_date < $1
		RETURNING id::text`, before)
	if err != nil {
		return nil, fmt.Errorf("mark overdue: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("mark overdue: %w", err)
	}
	return ids, nil
}

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	err := row.Scan(
		&inv.ID, &inv.InvoiceNumber, &inv.PharmacyID, &inv.Pharmacy, &inv.IssueDate, &inv.DueDate, &inv.Subtotal,
		&inv.DiscountPercentage, &inv.DiscountAmount, &inv.TaxPercentage, &inv.TaxAmount, &inv.TotalAmount, &inv.PaidAmount,
		&inv.Status, &inv.Notes, &inv.CreatedByID, &inv.CreatedByName, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}
