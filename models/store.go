package models

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// storeError turns a store failure into a domain error. Unique-constraint
// violations that slipped past the prechecks surface as validation errors.
func storeError(op, field string, err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return invalid(field, "already exists")
	}
	return fmt.Errorf("%s: %w", op, err)
}

// ensureUnique rejects value when another row (other than excludeID) already holds it.
func ensureUnique(tx *gorm.DB, model any, column, value string, excludeID uint) error {
	var n int64
	q := tx.Model(model).Where(column+" = ?", value)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&n).Error; err != nil {
		return fmt.Errorf("checking %s uniqueness: %w", column, err)
	}
	if n > 0 {
		return invalid(column, "%q already exists", value)
	}
	return nil
}

func countWhere(tx *gorm.DB, model any, query string, args ...any) (int64, error) {
	var n int64
	err := tx.Model(model).Where(query, args...).Count(&n).Error
	return n, err
}

// findByID loads one row or returns notFound.
func findByID(tx *gorm.DB, dest any, id uint, notFound error) error {
	if err := tx.First(dest, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound
		}
		return err
	}
	return nil
}
