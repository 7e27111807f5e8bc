package db

import (
	"errors"

	"github.com/lib/pq"
)

var (
	// ErrNotFound covers both "row absent" and "row not owned by caller"
	// where those must stay indistinguishable.
	ErrNotFound = errors.New("not found")

	ErrDuplicateEmail   = errors.New("email already registered")
	ErrAlreadyCheckedIn = errors.New("already checked in")
)

// isUniqueViolation reports whether err is a Postgres unique_violation.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
