package database

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// RangeFilter bounds a query on a timestamp column.
type RangeFilter struct {
	After  *time.Time
	Before *time.Time
}

func (f RangeFilter) apply(tx *gorm.DB, column string) *gorm.DB {
	if f.After != nil {
		tx = tx.Where(column+" >= ?", *f.After)
	}
	if f.Before != nil {
		tx = tx.Where(column+" <= ?", *f.Before)
	}
	return tx
}

// applyOrdering translates an API ordering key ("title", "-created_at", ...)
// into an ORDER BY clause. Only whitelisted columns are accepted; anything
// else falls back to the default so user input never reaches SQL verbatim.
func applyOrdering(tx *gorm.DB, ordering, defaultOrder string, allowed map[string]string) *gorm.DB {
	key := strings.TrimPrefix(ordering, "-")
	column, ok := allowed[key]
	if !ok {
		return tx.Order(defaultOrder)
	}
	if strings.HasPrefix(ordering, "-") {
		return tx.Order(column + " DESC")
	}
	return tx.Order(column + " ASC")
}

func applyPagination(tx *gorm.DB, limit, offset int) *gorm.DB {
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	if offset > 0 {
		tx = tx.Offset(offset)
	}
	return tx
}
