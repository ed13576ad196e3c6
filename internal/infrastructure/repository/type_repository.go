package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/commandes-api/internal/domain/entity"
	domainRepo "github.com/sangkips/commandes-api/internal/domain/repository"
	"github.com/sangkips/commandes-api/pkg/pagination"
	"gorm.io/gorm"
)

type typeRepository struct {
	db *gorm.DB
}

// NewTypeRepository creates a new product type repository
func NewTypeRepository(db *gorm.DB) domainRepo.TypeRepository {
	return &typeRepository{db: db}
}

func (r *typeRepository) Create(ctx context.Context, t *entity.ProductType) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *typeRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.ProductType, error) {
	var t entity.ProductType
	err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &t, err
}

func (r *typeRepository) Update(ctx context.Context, t *entity.ProductType) error {
	return r.db.WithContext(ctx).Omit("Orders").Save(t).Error
}

func (r *typeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return deleteOwnerCascade(tx, "type_id", id, &entity.ProductType{})
	})
}

func (r *typeRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.ProductType, int64, error) {
	var types []entity.ProductType
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.ProductType{}).Scopes(NameSearch(search))
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("name ASC").
		Find(&types).Error

	return types, total, err
}

func (r *typeRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.ProductType{}).Count(&count).Error
	return count, err
}
