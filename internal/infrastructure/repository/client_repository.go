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

type clientRepository struct {
	db *gorm.DB
}

// NewClientRepository creates a new client repository
func NewClientRepository(db *gorm.DB) domainRepo.ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) Create(ctx context.Context, client *entity.Client) error {
	return r.db.WithContext(ctx).Create(client).Error
}

func (r *clientRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Client, error) {
	var client entity.Client
	err := r.db.WithContext(ctx).First(&client, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &client, err
}

func (r *clientRepository) Update(ctx context.Context, client *entity.Client) error {
	return r.db.WithContext(ctx).Omit("Orders").Save(client).Error
}

func (r *clientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return deleteOwnerCascade(tx, "client_id", id, &entity.Client{})
	})
}

func (r *clientRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Client, int64, error) {
	var clients []entity.Client
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Client{}).Scopes(NameSearch(search))
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("name ASC").
		Find(&clients).Error

	return clients, total, err
}

func (r *clientRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Client{}).Count(&count).Error
	return count, err
}

// deleteOwnerCascade removes the items and orders referencing owner through
// column, then owner itself. tx must already be a transaction.
func deleteOwnerCascade(tx *gorm.DB, column string, id uuid.UUID, owner interface{}) error {
	orderIDs := tx.Model(&entity.Order{}).Select("id").Where(column+" = ?", id)
	if err := tx.Where("order_id IN (?)", orderIDs).Delete(&entity.Item{}).Error; err != nil {
		return err
	}
	if err := tx.Where(column+" = ?", id).Delete(&entity.Order{}).Error; err != nil {
		return err
	}
	return tx.Delete(owner, "id = ?", id).Error
}
