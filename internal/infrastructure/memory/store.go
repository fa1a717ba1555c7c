// Package memory implementa los repositorios en memoria. Se usa en tests y con
// DB_DRIVER=memory para desarrollo local sin PostgreSQL.
package memory

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/medinventory-api/internal/domain/entity"
	"github.com/jhoicas/medinventory-api/internal/domain/repository"
)

// Store guarda todas las tablas. mu protege cada operación. txMu serializa las
// transacciones y las escrituras hechas fuera de ellas, así un rollback nunca
// pisa cambios ajenos.
type Store struct {
	mu    sync.RWMutex
	txMu  sync.Mutex
	state state
}

type state struct {
	products    []entity.Product
	clients     []entity.Client
	pharmacies  []entity.Pharmacy
	assignments []entity.Assignment
	invoices    []entity.Invoice // sin Items; las líneas viven en items
	items       []entity.InvoiceItem
	payments    []entity.Payment
	activity    []entity.ActivityLog
	movements   []entity.StockMovement
	users       []entity.User
}

// NewStore crea un almacenamiento vacío.
func NewStore() *Store {
	return &Store{}
}

func (st state) clone() state {
	return state{
		products:    append([]entity.Product(nil), st.products...),
		clients:     append([]entity.Client(nil), st.clients...),
		pharmacies:  append([]entity.Pharmacy(nil), st.pharmacies...),
		assignments: append([]entity.Assignment(nil), st.assignments...),
		invoices:    append([]entity.Invoice(nil), st.invoices...),
		items:       append([]entity.InvoiceItem(nil), st.items...),
		payments:    append([]entity.Payment(nil), st.payments...),
		activity:    append([]entity.ActivityLog(nil), st.activity...),
		movements:   append([]entity.StockMovement(nil), st.movements...),
		users:       append([]entity.User(nil), st.users...),
	}
}

func (s *Store) snapshot() state {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

func (s *Store) restore(st state) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = st
}

// lockWrite toma el candado de escritura y retorna la función que lo libera.
// Fuera de una transacción espera además a txMu; dentro, el runner ya lo tiene.
func (s *Store) lockWrite(inTx bool) func() {
	if !inTx {
		s.txMu.Lock()
	}
	s.mu.Lock()
	return func() {
		s.mu.Unlock()
		if !inTx {
			s.txMu.Unlock()
		}
	}
}

// txRepositories retorna el juego de repos ligados a la transacción en curso.
// Solo es válido dentro de TxRunner.Run.
func (s *Store) txRepositories() repository.TxRepositories {
	return repository.TxRepositories{
		Products:    &ProductRepo{s: s, inTx: true},
		Assignments: &AssignmentRepo{s: s, inTx: true},
		Invoices:    &InvoiceRepo{s: s, inTx: true},
		Payments:    &PaymentRepo{s: s, inTx: true},
		Movements:   &StockMovementRepo{s: s, inTx: true},
		Activity:    &ActivityRepo{s: s, inTx: true},
	}
}

// contains compara sin distinguir mayúsculas.
func contains(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// page aplica offset/limit; limit <= 0 retorna el resto.
func page[T any](in []T, limit, offset int) []T {
	if offset >= len(in) {
		return []T{}
	}
	in = in[offset:]
	if limit > 0 && limit < len(in) {
		in = in[:limit]
	}
	return in
}

// newestFirst invierte el orden de inserción y ordena por fecha descendente (estable).
func newestFirst[T any](in []T, createdAt func(T) time.Time) []T {
	out := make([]T, len(in))
	for i, v := range in {
		out[len(in)-1-i] = v
	}
	sort.SliceStable(out, func(i, j int) bool { return createdAt(out[i]).After(createdAt(out[j])) })
	return out
}
