// Package activity expone el log de auditoría: registro append-only y consulta.
package activity

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/medinventory-api/internal/application/dto"
	"github.com/jhoicas/medinventory-api/internal/domain/entity"
	"github.com/jhoicas/medinventory-api/internal/domain/repository"
	"github.com/jhoicas/medinventory-api/pkg/logger"
)

// DefaultListLimit registros retornados cuando no se indica límite.
const DefaultListLimit = 50

// ActivityUseCase registra y consulta actividad.
type ActivityUseCase struct {
	repo repository.ActivityRepository
	log  *logger.Logger
}

// NewActivityUseCase construye el caso de uso.
func NewActivityUseCase(repo repository.ActivityRepository, log *logger.Logger) *ActivityUseCase {
	return &ActivityUseCase{repo: repo, log: log}
}

// NewEntry arma un registro con id y fecha; lo usan también los casos de uso que
// escriben el log dentro de su propia transacción.
func NewEntry(actor dto.Actor, action, entityType, entityID, details string) *entity.ActivityLog {
	return &entity.ActivityLog{
		ID:         uuid.New().String(),
		UserID:     actor.ID,
		UserName:   actor.Name,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    details,
		CreatedAt:  time.Now(),
	}
}

// Record inserta un registro fuera de transacción. Un fallo del log no revierte la
// operación auditada: se reporta en el logger y se continúa.
func (uc *ActivityUseCase) Record(ctx context.Context, actor dto.Actor, action, entityType, entityID, details string) {
	entry := NewEntry(actor, action, entityType, entityID, details)
	if err := uc.repo.Create(ctx, entry); err != nil {
		uc.log.Error().Err(err).
			Str("action", action).
			Str("entity_type", entityType).
			Str("entity_id", entityID).
			Msg("no se pudo registrar actividad")
	}
}

// List retorna la actividad más reciente primero.
func (uc *ActivityUseCase) List(ctx context.Context, filter repository.ActivityFilter) ([]dto.ActivityResponse, error) {
	if filter.Limit <= 0 {
		filter.Limit = DefaultListLimit
	}
	logs, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ToResponses(logs), nil
}

// ToResponses convierte registros a DTO.
func ToResponses(logs []*entity.ActivityLog) []dto.ActivityResponse {
	out := make([]dto.ActivityResponse, 0, len(logs))
	for _, l := range logs {
		out = append(out, dto.ActivityResponse{
			ID:         l.ID,
			UserID:     l.UserID,
			UserName:   l.UserName,
			Action:     l.Action,
			EntityType: l.EntityType,
			EntityID:   l.EntityID,
			Details:    l.Details,
			CreatedAt:  l.CreatedAt,
		})
	}
	return out
}
