package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"maize_maturity/internal/models"
)

// ErrEventLogDisabled is returned by List when no database is attached.
var ErrEventLogDisabled = errors.New("event log disabled")

type EventRepo interface {
	Append(ctx context.Context, e models.PredictionEvent) error
	List(ctx context.Context, from, to time.Time, typ string) ([]models.PredictionEvent, error)
}

type Repository struct {
	EventRepo EventRepo
}

// NewRepository wires the SQLite-backed repositories. A nil db yields a
// repository whose event log silently drops writes.
func NewRepository(db *sql.DB) *Repository {
	if db == nil {
		return &Repository{EventRepo: DisabledEventRepo{}}
	}
	return &Repository{
		EventRepo: NewEventSQLite(db),
	}
}

// DisabledEventRepo stands in when the database could not be opened.
type DisabledEventRepo struct{}

func (DisabledEventRepo) Append(context.Context, models.PredictionEvent) error { return nil }

func (DisabledEventRepo) List(context.Context, time.Time, time.Time, string) ([]models.PredictionEvent, error) {
	return nil, ErrEventLogDisabled
}
