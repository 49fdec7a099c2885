package persistence

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Sentinel errors surfaced by the stores; domain repos translate them into
// their own error vocabulary.
var (
	ErrRoomNotFound      = errors.New("room not found")
	ErrRoomConflict      = errors.New("room conflict")
	ErrTenantNotFound    = errors.New("tenant not found")
	ErrComplaintNotFound = errors.New("complaint not found")
)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
