package memory

import (
	"context"

	"github.com/jhoicas/medinventory-api/internal/domain/repository"
)

// TxRunner serializa las transacciones y restaura el estado previo si fn falla.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// Run ejecuta fn con todos los cambios visibles solo si retorna nil.
func (r *TxRunner) Run(ctx context.Context, fn func(tx repository.TxRepositories) error) error {
	r.s.txMu.Lock()
	defer r.s.txMu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	snap := r.s.snapshot()
	if err := fn(r.s.txRepositories()); err != nil {
		r.s.restore(snap)
		return err
	}
	return nil
}
