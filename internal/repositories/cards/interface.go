package cards

import (
	"context"

	"github.com/bookdesk/bookdesk/internal/models"
)

// Repository describes the persistence operations for card records.
// Implementations are typically backed by a local SQLite database.
type Repository interface {
	// ReplaceAll clears every persisted card record and writes the given
	// records as the new durable state. The replacement is a single atomic
	// batch: after an error the previous state is intact.
	ReplaceAll(ctx context.Context, records []models.CardRecord) error

	// GetAll returns every persisted card record, ordered by desk index
	// and order index.
	GetAll(ctx context.Context) ([]models.CardRecord, error)

	// UpdateHandle overwrites the durable-location handle of one record.
	// Used by repair-on-read when a stale handle is refreshed.
	UpdateHandle(ctx context.Context, id string, handle []byte) error
}
