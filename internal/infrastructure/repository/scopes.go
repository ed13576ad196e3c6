package repository

import (
	"strings"

	domainRepo "github.com/sangkips/commandes-api/internal/domain/repository"
	"gorm.io/gorm"
)

// NameSearch matches name case-insensitively on both postgres and sqlite
func NameSearch(term string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		term = strings.TrimSpace(term)
		if term == "" {
			return db
		}
		return db.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(term)+"%")
	}
}

// OrderFilterScope applies the shared order listing filters
func OrderFilterScope(f domainRepo.OrderFilter) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.ClientID != nil {
			db = db.Where("commandes.client_id = ?", *f.ClientID)
		}
		if f.TypeID != nil {
			db = db.Where("commandes.type_id = ?", *f.TypeID)
		}
		if f.Status != "" {
			db = db.Where("commandes.status = ?", f.Status)
		}
		if f.Variant != nil {
			db = db.Where("commandes.variant = ?", *f.Variant)
		}
		if f.StartDate != nil {
			db = db.Where("commandes.date >= ?", *f.StartDate)
		}
		if f.EndDate != nil {
			db = db.Where("commandes.date <= ?", *f.EndDate)
		}
		return db
	}
}

// itemsByPosition preloads order items in entry order
func itemsByPosition(db *gorm.DB) *gorm.DB {
	return db.Order("commande_items.position ASC")
}

var orderSortColumns = map[string]string{
	"created_at": "commandes.created_at",
	"date":       "commandes.date",
	"total_due":  "commandes.total_due",
	"rest":       "commandes.rest",
	"status":     "commandes.status",
}

// orderSort whitelists the sortable columns, defaulting to newest first
func orderSort(sortBy, sortOrder string) string {
	col, ok := orderSortColumns[sortBy]
	if !ok {
		col = "commandes.created_at"
	}
	dir := "DESC"
	if strings.EqualFold(sortOrder, "asc") {
		dir = "ASC"
	}
	return col + " " + dir + ", commandes.id " + dir
}
