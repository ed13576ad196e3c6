package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/commandes-api/internal/domain/entity"
	"github.com/sangkips/commandes-api/internal/domain/repository"
	"github.com/sangkips/commandes-api/pkg/apperror"
	"github.com/sangkips/commandes-api/pkg/pagination"
)

// ClientService handles client-related operations
type ClientService struct {
	clientRepo repository.ClientRepository
}

// NewClientService creates a new client service
func NewClientService(clientRepo repository.ClientRepository) *ClientService {
	return &ClientService{clientRepo: clientRepo}
}

// CreateClientInput represents the create client input
type CreateClientInput struct {
	Name      string
	Telephone *string
}

// CreateClient creates a new client
func (s *ClientService) CreateClient(ctx context.Context, input *CreateClientInput) (*entity.Client, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperror.NewFieldError("name", "is required")
	}

	client := &entity.Client{
		Name:      name,
		Telephone: trimOptional(input.Telephone),
	}
	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

// GetClient retrieves a client by ID
func (s *ClientService) GetClient(ctx context.Context, id uuid.UUID) (*entity.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, apperror.NewNotFoundError("Client")
	}
	return client, nil
}

// ListClients lists clients whose name contains search
func (s *ClientService) ListClients(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Client], error) {
	clients, total, err := s.clientRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(clients, pag), nil
}

// UpdateClientInput represents the update client input. Nil fields are left unchanged.
type UpdateClientInput struct {
	ID        uuid.UUID
	Name      *string
	Telephone *string
}

// UpdateClient updates a client
func (s *ClientService) UpdateClient(ctx context.Context, input *UpdateClientInput) (*entity.Client, error) {
	client, err := s.GetClient(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperror.NewFieldError("name", "is required")
		}
		client.Name = name
	}
	if input.Telephone != nil {
		client.Telephone = trimOptional(input.Telephone)
	}

	if err := s.clientRepo.Update(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

// DeleteClient deletes a client along with all of its orders
func (s *ClientService) DeleteClient(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetClient(ctx, id); err != nil {
		return err
	}
	return s.clientRepo.Delete(ctx, id)
}

// trimOptional returns nil for a missing or blank value
func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
