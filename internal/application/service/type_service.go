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

// TypeService handles product type operations
type TypeService struct {
	typeRepo repository.TypeRepository
}

// NewTypeService creates a new type service
func NewTypeService(typeRepo repository.TypeRepository) *TypeService {
	return &TypeService{typeRepo: typeRepo}
}

// CreateType creates a new product type
func (s *TypeService) CreateType(ctx context.Context, name string) (*entity.ProductType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.NewFieldError("name", "is required")
	}

	t := &entity.ProductType{Name: name}
	if err := s.typeRepo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// GetType retrieves a product type by ID
func (s *TypeService) GetType(ctx context.Context, id uuid.UUID) (*entity.ProductType, error) {
	t, err := s.typeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, apperror.NewNotFoundError("Type")
	}
	return t, nil
}

// ListTypes lists product types
func (s *TypeService) ListTypes(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.ProductType], error) {
	types, total, err := s.typeRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(types, pag), nil
}

// UpdateType renames a product type
func (s *TypeService) UpdateType(ctx context.Context, id uuid.UUID, name string) (*entity.ProductType, error) {
	t, err := s.GetType(ctx, id)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.NewFieldError("name", "is required")
	}
	t.Name = name

	if err := s.typeRepo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// DeleteType deletes a product type along with all of its orders
func (s *TypeService) DeleteType(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetType(ctx, id); err != nil {
		return err
	}
	return s.typeRepo.Delete(ctx, id)
}
