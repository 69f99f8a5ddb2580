package scan

import (
	"scanlens-api/internal/common"
)

// Repository persists scan records.
type Repository interface {
	Create(record *Record) error
	// ListByUser returns up to limit records, newest first.
	ListByUser(userID common.UserID, limit int) ([]Record, error)
	// StatsByUser aggregates over all of the user's records.
	StatsByUser(userID common.UserID) (*Stats, error)
}
