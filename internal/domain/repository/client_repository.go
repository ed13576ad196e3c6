package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/commandes-api/internal/domain/entity"
	"github.com/sangkips/commandes-api/pkg/pagination"
)

// ClientRepository defines the interface for client data operations
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Client, error)
	Update(ctx context.Context, client *entity.Client) error
	// Delete removes the client together with its orders and their items.
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Client, int64, error)
	Count(ctx context.Context) (int64, error)
}

// TypeRepository defines the interface for product type data operations
type TypeRepository interface {
	Create(ctx context.Context, t *entity.ProductType) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.ProductType, error)
	Update(ctx context.Context, t *entity.ProductType) error
	// Delete removes the type together with its orders and their items.
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.ProductType, int64, error)
	Count(ctx context.Context) (int64, error)
}
