package cards

import (
	"context"
	"database/sql"
	"testing"

	"github.com/bookdesk/bookdesk/internal/common"
	"github.com/bookdesk/bookdesk/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	// shared cache so the ReplaceAll transaction sees the same in-memory DB
	// regardless of which pooled connection it lands on
	db, err := sql.Open("sqlite", "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(4)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE cards (
  id          TEXT PRIMARY KEY,
  handle      BLOB,
  path        TEXT,
  thumbnail   BLOB,
  pos_x       REAL NOT NULL DEFAULT 0,
  pos_y       REAL NOT NULL DEFAULT 0,
  width       REAL NOT NULL DEFAULT 0,
  height      REAL NOT NULL DEFAULT 0,
  desk_index  INTEGER NOT NULL DEFAULT 0,
  order_index INTEGER NOT NULL DEFAULT 0
);
`)
	require.NoError(t, err)

	return db
}

func rec(id string, desk, order int) models.CardRecord {
	return models.CardRecord{
		ID:         id,
		Handle:     []byte(`{"path":"/library/` + id + `.pdf"}`),
		Path:       "/library/" + id + ".pdf",
		Thumbnail:  []byte{0x89, 0x50},
		PosX:       10.5,
		PosY:       20.25,
		Width:      100,
		Height:     140,
		DeskIndex:  desk,
		OrderIndex: order,
	}
}

func TestReplaceAll_WritesAllRecords(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.ReplaceAll(ctx, []models.CardRecord{
		rec("a", 0, 0), rec("b", 0, 1), rec("c", 4, 0),
	}))

	got, err := r.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "b", got[1].ID)
	assert.Equal(t, "c", got[2].ID)
	assert.Equal(t, 10.5, got[0].PosX)
	assert.Equal(t, 20.25, got[0].PosY)
	assert.Equal(t, 4, got[2].DeskIndex)
}

func TestReplaceAll_ClearsPreviousState(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.ReplaceAll(ctx, []models.CardRecord{rec("old", 0, 0)}))
	require.NoError(t, r.ReplaceAll(ctx, []models.CardRecord{rec("new", 1, 0)}))

	got, err := r.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "new", got[0].ID)
}

func TestReplaceAll_EmptySetClearsEverything(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.ReplaceAll(ctx, []models.CardRecord{rec("a", 0, 0)}))
	require.NoError(t, r.ReplaceAll(ctx, nil))

	got, err := r.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestReplaceAll_AtomicOnFailure(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.ReplaceAll(ctx, []models.CardRecord{rec("keep", 0, 0)}))

	// duplicate primary key makes the second insert fail mid-batch
	err := r.ReplaceAll(ctx, []models.CardRecord{rec("x", 0, 0), rec("x", 0, 1)})
	require.Error(t, err)

	got, err := r.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "keep", got[0].ID, "failed replace must leave previous state intact")
}

func TestGetAll_OrderedByDeskThenOrderIndex(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.ReplaceAll(ctx, []models.CardRecord{
		rec("d1-second", 1, 1), rec("d0", 0, 0), rec("d1-first", 1, 0),
	}))

	got, err := r.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "d0", got[0].ID)
	assert.Equal(t, "d1-first", got[1].ID)
	assert.Equal(t, "d1-second", got[2].ID)
}

func TestGetAll_NullableColumns(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	_, err := db.Exec(`INSERT INTO cards(id, handle, path, thumbnail) VALUES ('bare', NULL, NULL, NULL)`)
	require.NoError(t, err)

	r := NewSQLiteRepository(db)
	got, err := r.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Nil(t, got[0].Handle)
	assert.Empty(t, got[0].Path)
	assert.Nil(t, got[0].Thumbnail)
}

func TestUpdateHandle(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.ReplaceAll(ctx, []models.CardRecord{rec("a", 0, 0)}))

	require.NoError(t, r.UpdateHandle(ctx, "a", []byte(`{"path":"/library/moved.pdf"}`)))

	got, err := r.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"path":"/library/moved.pdf"}`), got[0].Handle)

	err = r.UpdateHandle(ctx, "missing", []byte(`{}`))
	assert.ErrorIs(t, err, common.ErrorNotFound)
}
