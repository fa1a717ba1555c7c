package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/medinventory-api/internal/application/activity"
	"github.com/jhoicas/medinventory-api/internal/application/dto"
	"github.com/jhoicas/medinventory-api/internal/domain"
	"github.com/jhoicas/medinventory-api/internal/domain/entity"
	"github.com/jhoicas/medinventory-api/internal/domain/repository"
)

// AssignmentUseCase entrega producto a clientes descontando stock en la misma transacción.
type AssignmentUseCase struct {
	txRunner   TxRunner
	stock      *StockUseCase
	repo       repository.AssignmentRepository
	clientRepo repository.ClientRepository
	activity   *activity.ActivityUseCase
}

// NewAssignmentUseCase construye el caso de uso.
func NewAssignmentUseCase(
	txRunner TxRunner,
	stock *StockUseCase,
	repo repository.AssignmentRepository,
	clientRepo repository.ClientRepository,
	act *activity.ActivityUseCase,
) *AssignmentUseCase {
	return &AssignmentUseCase{
		txRunner:   txRunner,
		stock:      stock,
		repo:       repo,
		clientRepo: clientRepo,
		activity:   act,
	}
}

// Create registra la asignación: bloquea el producto, valida existencia, descuenta
// la cantidad (current - requested) y guarda snapshots de producto y cliente.
func (uc *AssignmentUseCase) Create(ctx context.Context, actor dto.Actor, in dto.CreateAssignmentRequest) (*dto.AssignmentResponse, error) {
	if in.Quantity <= 0 || in.ProductID == "" || in.ClientID == "" {
		return nil, domain.ErrInvalidInput
	}
	client, err := uc.clientRepo.GetByID(ctx, in.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	a := &entity.Assignment{
		ID:             uuid.New().String(),
		ProductID:      in.ProductID,
		ClientID:       client.ID,
		Client:         client.Snapshot(),
		Quantity:       in.Quantity,
		AssignedByID:   actor.ID,
		AssignedByName: actor.Name,
		Notes:          in.Notes,
		CreatedAt:      now,
	}
	err = uc.txRunner.Run(ctx, func(tx repository.TxRepositories) error {
		product, err := tx.Products.GetForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		a.Product = product.Snapshot()
		if err := uc.stock.RegisterOUTInTx(ctx, tx, product, in.Quantity, actor.ID, a.ID, now); err != nil {
			return err
		}
		if err := tx.Assignments.Create(ctx, a); err != nil {
			return err
		}
		return tx.Activity.Create(ctx, activity.NewEntry(actor, entity.ActionAssigned, entity.EntityAssignment, a.ID,
			fmt.Sprintf("Assigned %d %s of %s to %s", in.Quantity, product.Unit, product.Name, client.Name)))
	})
	if err != nil {
		return nil, err
	}
	return ToAssignmentResponse(a), nil
}

// GetByID obtiene una asignación.
func (uc *AssignmentUseCase) GetByID(ctx context.Context, id string) (*dto.AssignmentResponse, error) {
	a, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	return ToAssignmentResponse(a), nil
}

// Delete elimina la asignación. No devuelve la cantidad al stock.
func (uc *AssignmentUseCase) Delete(ctx context.Context, actor dto.Actor, id string) error {
	a, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if a == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.activity.Record(ctx, actor, entity.ActionDeleted, entity.EntityAssignment, id,
		fmt.Sprintf("Deleted assignment of %s to %s", a.Product.Name, a.Client.Name))
	return nil
}

// List filtra por rango de fechas (fin inclusivo hasta 23:59:59), cliente y categoría.
func (uc *AssignmentUseCase) List(ctx context.Context, in dto.AssignmentFilterRequest, page dto.PageRequest) ([]dto.AssignmentResponse, error) {
	filter, err := BuildAssignmentFilter(in.StartDate, in.EndDate, in.ClientID, in.Category)
	if err != nil {
		return nil, err
	}
	page.DefaultPage()
	filter.Limit, filter.Offset = page.Limit, page.Offset
	list, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ToAssignmentResponses(list), nil
}

// BuildAssignmentFilter interpreta las fechas YYYY-MM-DD; end cubre el día completo.
func BuildAssignmentFilter(start, end, clientID, category string) (repository.AssignmentFilter, error) {
	f := repository.AssignmentFilter{ClientID: clientID, Category: category}
	if start != "" {
		t, err := dto.ParseDate(start)
		if err != nil {
			return f, domain.ErrInvalidInput
		}
		f.From = &t
	}
	if end != "" {
		t, err := dto.ParseDate(end)
		if err != nil {
			return f, domain.ErrInvalidInput
		}
		t = t.Add(24*time.Hour - time.Second)
		f.To = &t
	}
	if f.From != nil && f.To != nil && f.From.After(*f.To) {
		return f, domain.ErrInvalidInput
	}
	return f, nil
}

// ToAssignmentResponse convierte la entidad a DTO usando los snapshots.
func ToAssignmentResponse(a *entity.Assignment) *dto.AssignmentResponse {
	return &dto.AssignmentResponse{
		ID:             a.ID,
		ProductID:      a.ProductID,
		ProductName:    a.Product.Name,
		Category:       a.Product.Category,
		BatchNumber:    a.Product.BatchNumber,
		Unit:           a.Product.Unit,
		ClientID:       a.ClientID,
		ClientName:     a.Client.Name,
		ClientType:     a.Client.Type,
		Quantity:       a.Quantity,
		AssignedByID:   a.AssignedByID,
		AssignedByName: a.AssignedByName,
		Notes:          a.Notes,
		CreatedAt:      a.CreatedAt,
	}
}

// ToAssignmentResponses convierte una lista.
func ToAssignmentResponses(list []*entity.Assignment) []dto.AssignmentResponse {
	out := make([]dto.AssignmentResponse, 0, len(list))
	for _, a := range list {
		out = append(out, *ToAssignmentResponse(a))
	}
	return out
}
