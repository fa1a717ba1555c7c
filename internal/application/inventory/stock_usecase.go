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
	"github.com/jhoicas/medinventory-api/internal/domain/inventory"
	"github.com/jhoicas/medinventory-api/internal/domain/repository"
)

// StockUseCase registra entradas y salidas de stock de forma transaccional
// con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
type StockUseCase struct {
	txRunner     TxRunner
	movementRepo repository.StockMovementRepository
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(txRunner TxRunner, movementRepo repository.StockMovementRepository) *StockUseCase {
	return &StockUseCase{txRunner: txRunner, movementRepo: movementRepo}
}

// AddStock suma cantidad al producto. Con UnitCost recalcula el costo promedio ponderado.
func (uc *StockUseCase) AddStock(ctx context.Context, actor dto.Actor, productID string, in dto.AddStockRequest) (*dto.StockMovementResponse, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.UnitCost != nil && in.UnitCost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	var mov *entity.StockMovement
	err := uc.txRunner.Run(ctx, func(tx repository.TxRepositories) error {
		product, err := tx.Products.GetForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		cost := product.CostPerUnit
		unitCost := product.CostPerUnit
		if in.UnitCost != nil {
			unitCost = *in.UnitCost
			cost = inventory.WeightedAverageCost(product.Quantity, product.CostPerUnit, in.Quantity, unitCost)
		}
		if err := tx.Products.UpdateStock(ctx, product.ID, product.Quantity+in.Quantity, cost); err != nil {
			return err
		}
		mov = &entity.StockMovement{
			ID:        uuid.New().String(),
			ProductID: product.ID,
			Type:      entity.MovementTypeIn,
			Quantity:  in.Quantity,
			UnitCost:  unitCost,
			Notes:     in.Notes,
			CreatedBy: actor.ID,
			CreatedAt: time.Now(),
		}
		if err := tx.Movements.Create(ctx, mov); err != nil {
			return err
		}
		return tx.Activity.Create(ctx, activity.NewEntry(actor, entity.ActionUpdated, entity.EntityProduct, product.ID,
			fmt.Sprintf("Updated stock quantity for: %s (+%d %s)", product.Name, in.Quantity, product.Unit)))
	})
	if err != nil {
		return nil, err
	}
	return toMovementResponse(mov), nil
}

// RegisterOUTInTx descuenta quantity del producto ya bloqueado usando los repos del caller
// (misma transacción) y registra el movimiento. Si retorna ErrInsufficientStock el caller
// debe hacer rollback.
func (uc *StockUseCase) RegisterOUTInTx(
	ctx context.Context,
	tx repository.TxRepositories,
	product *entity.Product,
	quantity int,
	userID, referenceID string,
	now time.Time,
) error {
	if quantity <= 0 {
		return domain.ErrInvalidInput
	}
	if quantity > product.Quantity {
		return domain.ErrInsufficientStock
	}
	product.Quantity -= quantity
	if err := tx.Products.UpdateStock(ctx, product.ID, product.Quantity, product.CostPerUnit); err != nil {
		return err
	}
	return tx.Movements.Create(ctx, &entity.StockMovement{
		ID:          uuid.New().String(),
		ProductID:   product.ID,
		Type:        entity.MovementTypeOut,
		Quantity:    quantity,
		UnitCost:    product.CostPerUnit,
		ReferenceID: referenceID,
		CreatedBy:   userID,
		CreatedAt:   now,
	})
}

// Movements lista el kardex de un producto, más recientes primero.
func (uc *StockUseCase) Movements(ctx context.Context, productID string, page dto.PageRequest) ([]dto.StockMovementResponse, error) {
	page.DefaultPage()
	movs, err := uc.movementRepo.ListByProduct(ctx, productID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockMovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, *toMovementResponse(m))
	}
	return out, nil
}

func toMovementResponse(m *entity.StockMovement) *dto.StockMovementResponse {
	return &dto.StockMovementResponse{
		ID:          m.ID,
		ProductID:   m.ProductID,
		Type:        m.Type,
		Quantity:    m.Quantity,
		UnitCost:    m.UnitCost,
		ReferenceID: m.ReferenceID,
		Notes:       m.Notes,
		CreatedBy:   m.CreatedBy,
		CreatedAt:   m.CreatedAt,
	}
}
