// Package cards provides the persistence layer for card records.
package cards

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/bookdesk/bookdesk/internal/common"
	"github.com/bookdesk/bookdesk/internal/dbx"
	"github.com/bookdesk/bookdesk/internal/models"
)

// SQLiteRepository implements Repository on a local SQLite database.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given database.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// ReplaceAll deletes every card row and reinserts the given records inside
// one transaction, so an interrupted save never leaves a half-written mix of
// old and new state.
func (r *SQLiteRepository) ReplaceAll(ctx context.Context, records []models.CardRecord) error {
	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM cards`); err != nil {
			return fmt.Errorf("failed to clear cards: %w", err)
		}

		query := `INSERT INTO cards (id, handle, path, thumbnail, pos_x, pos_y, width, height, desk_index, order_index)
			values (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`
		for _, rec := range records {
			_, err := tx.ExecContext(ctx, query,
				rec.ID, rec.Handle, rec.Path, rec.Thumbnail,
				rec.PosX, rec.PosY, rec.Width, rec.Height,
				rec.DeskIndex, rec.OrderIndex)
			if err != nil {
				return fmt.Errorf("failed to insert card %s: %w", rec.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to replace cards: %w", err)
	}
	return nil
}

// GetAll lists every persisted card record, ordered by desk and order index.
func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.CardRecord, error) {
	query := `select id, handle, path, thumbnail, pos_x, pos_y, width, height, desk_index, order_index
		from cards order by desk_index, order_index`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select cards: %w", err)
	}
	defer rows.Close()

	var result []models.CardRecord
	for rows.Next() {
		var rec models.CardRecord
		var path sql.NullString
		if err := rows.Scan(&rec.ID, &rec.Handle, &path, &rec.Thumbnail,
			&rec.PosX, &rec.PosY, &rec.Width, &rec.Height,
			&rec.DeskIndex, &rec.OrderIndex); err != nil {
			return nil, err
		}
		rec.Path = path.String
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateHandle overwrites the durable handle of one record. It expects
// exactly one row to be affected.
func (r *SQLiteRepository) UpdateHandle(ctx context.Context, id string, handle []byte) error {
	res, err := r.db.ExecContext(ctx, `update cards set handle=? where id=?`, handle, id)
	if err != nil {
		return fmt.Errorf("failed to update handle: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra != 1 {
		return fmt.Errorf("card %s: %w", id, common.ErrorNotFound)
	}
	return nil
}
