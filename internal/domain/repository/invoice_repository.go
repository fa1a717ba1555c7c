package repository

import (
	"context"
	"time"

	"github.com/jhoicas/medinventory-api/internal/domain/entity"
)

// InvoiceFilter filtra el listado de facturas.
type InvoiceFilter struct {
	PharmacyID string
	Status     string
	Search     string // número de factura o nombre de farmacia
	Limit      int
	Offset     int
}

// InvoiceRepository define el puerto de persistencia para Invoice y sus líneas.
type InvoiceRepository interface {
	// Create inserta cabecera y líneas. Número repetido -> domain.ErrDuplicate.
	Create(ctx context.Context, invoice *entity.Invoice) error
	// GetByID retorna la factura con sus líneas ordenadas por posición.
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Invoice, error)
	// Update persiste solo la cabecera (fechas, porcentajes, montos, estado, notas).
	Update(ctx context.Context, invoice *entity.Invoice) error
	CreateItem(ctx context.Context, item *entity.InvoiceItem) error
	DeleteItem(ctx context.Context, invoiceID, itemID string) error
	Delete(ctx context.Context, id string) error
	// List retorna cabeceras sin líneas, más recientes primero.
	List(ctx context.Context, filter InvoiceFilter) ([]*entity.Invoice, error)
	// MarkOverdue pasa a overdue las facturas issued/partial con vencimiento anterior a before.
	MarkOverdue(ctx context.Context, before time.Time) ([]string, error)
}
