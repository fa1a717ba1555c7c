// Package clients contiene los casos de uso de pacientes y departamentos.
package clients

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/medinventory-api/internal/application/activity"
	"github.com/jhoicas/medinventory-api/internal/application/dto"
	"github.com/jhoicas/medinventory-api/internal/domain"
	"github.com/jhoicas/medinventory-api/internal/domain/entity"
	"github.com/jhoicas/medinventory-api/internal/domain/repository"
)

// ClientUseCase CRUD de clientes.
type ClientUseCase struct {
	repo     repository.ClientRepository
	activity *activity.ActivityUseCase
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(repo repository.ClientRepository, act *activity.ActivityUseCase) *ClientUseCase {
	return &ClientUseCase{repo: repo, activity: act}
}

// Create registra un cliente validando el identificador según su tipo.
func (uc *ClientUseCase) Create(ctx context.Context, actor dto.Actor, in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	client := &entity.Client{ID: uuid.New().String()}
	if err := apply(client, in); err != nil {
		return nil, err
	}
	client.CreatedAt = time.Now()
	client.UpdatedAt = client.CreatedAt
	if err := uc.repo.Create(ctx, client); err != nil {
		return nil, err
	}
	uc.activity.Record(ctx, actor, entity.ActionCreated, entity.EntityClient, client.ID,
		fmt.Sprintf("Created client: %s", client.Name))
	return toResponse(client), nil
}

// GetByID obtiene un cliente.
func (uc *ClientUseCase) GetByID(ctx context.Context, id string) (*dto.ClientResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return toResponse(c), nil
}

// Update reemplaza los datos del cliente.
func (uc *ClientUseCase) Update(ctx context.Context, actor dto.Actor, id string, in dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	client, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	if err := apply(client, in); err != nil {
		return nil, err
	}
	client.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, client); err != nil {
		return nil, err
	}
	uc.activity.Record(ctx, actor, entity.ActionUpdated, entity.EntityClient, client.ID,
		fmt.Sprintf("Updated client: %s", client.Name))
	return toResponse(client), nil
}

// Delete elimina el cliente; las asignaciones conservan su snapshot.
func (uc *ClientUseCase) Delete(ctx context.Context, actor dto.Actor, id string) error {
	client, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if client == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.activity.Record(ctx, actor, entity.ActionDeleted, entity.EntityClient, id,
		fmt.Sprintf("Deleted client: %s", client.Name))
	return nil
}

// List lista clientes por tipo y búsqueda.
func (uc *ClientUseCase) List(ctx context.Context, clientType, search string, page dto.PageRequest) ([]dto.ClientResponse, error) {
	if clientType != "" && !entity.IsValidClientType(clientType) {
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()
	list, err := uc.repo.List(ctx, repository.ClientFilter{Type: clientType, Search: search, Limit: page.Limit, Offset: page.Offset})
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClientResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toResponse(c))
	}
	return out, nil
}

// apply copia la request a la entidad. Solo se guarda el identificador del tipo elegido.
func apply(c *entity.Client, in dto.CreateClientRequest) error {
	name := strings.TrimSpace(in.Name)
	if name == "" || !entity.IsValidClientType(in.Type) {
		return domain.ErrInvalidInput
	}
	c.Name = name
	c.Type = in.Type
	c.ContactPerson = in.ContactPerson
	c.ContactNumber = in.ContactNumber
	c.Email = in.Email
	c.PatientID, c.DepartmentID = "", ""
	switch in.Type {
	case entity.ClientTypePatient:
		c.PatientID = strings.TrimSpace(in.PatientID)
	case entity.ClientTypeDepartment:
		c.DepartmentID = strings.TrimSpace(in.DepartmentID)
	}
	if c.Identifier() == "" {
		return domain.ErrInvalidInput
	}
	return nil
}

func toResponse(c *entity.Client) *dto.ClientResponse {
	return &dto.ClientResponse{
		ID:            c.ID,
		Name:          c.Name,
		Type:          c.Type,
		ContactPerson: c.ContactPerson,
		ContactNumber: c.ContactNumber,
		Email:         c.Email,
		PatientID:     c.PatientID,
		DepartmentID:  c.DepartmentID,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}
