package database

import (
	"gorm.io/gorm"
)

// OwnedBy restricts a query to rows whose user_id matches ownerID. Every task
// read, update and delete goes through it.
func OwnedBy(ownerID uint64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", ownerID)
	}
}

// CreationOrder lists rows oldest first.
func CreationOrder(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC").Order("id ASC")
}
