// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"errors"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// pqUniqueViolation is the PostgreSQL error code for a unique constraint violation.
const pqUniqueViolation = "23505"

// isUniqueViolation reports whether err comes from a unique index.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation
}
