package repository

import (
	"context"

	domainRepo "github.com/sangkips/commandes-api/internal/domain/repository"
	"gorm.io/gorm"
)

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) domainRepo.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) Summary(ctx context.Context) (*domainRepo.LedgerSummary, error) {
	var summary domainRepo.LedgerSummary

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) AS order_count,
			COALESCE(SUM(subtotal), 0) AS subtotal,
			COALESCE(SUM(total_due), 0) AS total_due,
			COALESCE(SUM(paid_amount), 0) AS paid_amount,
			COALESCE(SUM(rest), 0) AS outstanding,
			COALESCE(SUM(CASE WHEN rest > 0 THEN 1 ELSE 0 END), 0) AS open_order_count
		FROM commandes
	`).Scan(&summary).Error
	if err != nil {
		return nil, err
	}

	return &summary, nil
}

func (r *analyticsRepository) OutstandingByClient(ctx context.Context, limit int) ([]domainRepo.ClientBalance, error) {
	var results []domainRepo.ClientBalance

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			c.id AS client_id,
			c.name AS client_name,
			COUNT(o.id) AS order_count,
			COALESCE(SUM(o.rest), 0) AS outstanding
		FROM commandes o
		JOIN clients c ON c.id = o.client_id
		GROUP BY c.id, c.name
		HAVING SUM(o.rest) > 0
		ORDER BY outstanding DESC, c.name ASC
		LIMIT ?
	`, limit).Scan(&results).Error
	if err != nil {
		return nil, err
	}

	return results, nil
}

func (r *analyticsRepository) CountByStatus(ctx context.Context) ([]domainRepo.StatusCount, error) {
	var results []domainRepo.StatusCount

	err := r.db.WithContext(ctx).Raw(`
		SELECT status, COUNT(*) AS count
		FROM commandes
		GROUP BY status
		ORDER BY count DESC, status ASC
	`).Scan(&results).Error
	if err != nil {
		return nil, err
	}

	return results, nil
}
