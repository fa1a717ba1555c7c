package inventory

import (
	"context"

	"github.com/jhoicas/medinventory-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad entre el descuento de stock y el registro que lo origina.
type TxRunner interface {
	Run(ctx context.Context, fn func(tx repository.TxRepositories) error) error
}
