package billing

import (
	"context"
	"time"

	"github.com/jhoicas/medinventory-api/internal/domain/entity"
	"github.com/jhoicas/medinventory-api/internal/domain/repository"
)

// BillingTxRunner ejecuta una función dentro de una transacción que incluye repos de inventario y facturación.
type BillingTxRunner interface {
	Run(ctx context.Context, fn func(tx repository.TxRepositories) error) error
}

// InventoryUseCase interfaz para integrar facturación con inventario.
// RegisterOUTInTx ejecuta una salida (OUT) usando los repositorios del caller (misma transacción).
// Si retorna error (ej: ErrInsufficientStock), el caller debe hacer rollback.
type InventoryUseCase interface {
	RegisterOUTInTx(
		ctx context.Context,
		tx repository.TxRepositories,
		product *entity.Product,
		quantity int,
		userID, referenceID string,
		now time.Time,
	) error
}

// InvoicePDFGenerator genera la representación PDF de una factura.
// La factura llega con sus líneas y el snapshot de la farmacia.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, invoice *entity.Invoice) ([]byte, error)
}
