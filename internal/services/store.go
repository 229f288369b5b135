// Package services implements the application services on top of the
// repositories: the card store (save/load of the five desks), the document
// importer, and the per-document page memory.
package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/bookdesk/bookdesk/internal/bookmark"
	"github.com/bookdesk/bookdesk/internal/filex"
	"github.com/bookdesk/bookdesk/internal/logging"
	"github.com/bookdesk/bookdesk/internal/models"
	"github.com/bookdesk/bookdesk/internal/repositories/cards"
	"github.com/bookdesk/bookdesk/internal/thumbs"
)

// CardStore maps the in-memory DeskSet to and from durable card records.
//
// Save is a full replace: every previously persisted record is cleared and
// the current state written wholesale, one row per card. Load resolves each
// record's file location (durable handle first, plain path as fallback),
// refreshes stale handles as a side effect (repair-on-read), and silently
// drops records whose location no longer resolves, logging each drop.
type CardStore struct {
	repo       cards.Repository
	libraryDir string
	log        logging.Logger
}

func NewCardStore(repo cards.Repository, libraryDir string, log logging.Logger) *CardStore {
	return &CardStore{repo: repo, libraryDir: libraryDir, log: log}
}

// Save persists the entire desk set. Each card is tagged with its desk index
// and a zero-based order index reflecting its current position on that desk.
func (s *CardStore) Save(ctx context.Context, desks *models.DeskSet) error {
	records := make([]models.CardRecord, 0, desks.Len())

	for desk := 0; desk < models.DeskCount; desk++ {
		onDesk, err := desks.Cards(desk)
		if err != nil {
			return err
		}
		for order, c := range onDesk {
			var handleBlob []byte
			if c.Handle != nil {
				handleBlob, err = c.Handle.Encode()
				if err != nil {
					// the plain path still persists, so keep the card
					s.log.Warn(ctx, "card handle not serializable", "id", c.ID, "error", err)
					handleBlob = nil
				}
			}
			records = append(records, models.CardRecord{
				ID:         c.ID,
				Handle:     handleBlob,
				Path:       c.Path,
				Thumbnail:  c.Thumbnail,
				PosX:       c.Position.X,
				PosY:       c.Position.Y,
				Width:      c.Size.Width,
				Height:     c.Size.Height,
				DeskIndex:  desk,
				OrderIndex: order,
			})
		}
	}

	if err := s.repo.ReplaceAll(ctx, records); err != nil {
		return fmt.Errorf("save desks: %w", err)
	}
	return nil
}

// Load reconstructs the desk set from persisted records.
//
// Records whose location cannot be resolved by handle or path are dropped
// from the result without failing the load. Desk indexes are clamped into
// the valid range. Within each desk, cards are ordered by their stored order
// index, with vertical position and then id as tie breaks.
func (s *CardStore) Load(ctx context.Context) (*models.DeskSet, error) {
	records, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load desks: %w", err)
	}

	type placed struct {
		card  *models.Card
		order int
	}
	var perDesk [models.DeskCount][]placed

	for _, rec := range records {
		card := s.restore(ctx, rec)
		if card == nil {
			continue
		}
		desk := models.ClampDeskIndex(rec.DeskIndex)
		if desk != rec.DeskIndex {
			s.log.Warn(ctx, "desk index clamped", "id", rec.ID, "stored", rec.DeskIndex, "clamped", desk)
		}
		perDesk[desk] = append(perDesk[desk], placed{card: card, order: rec.OrderIndex})
	}

	result := models.NewDeskSet()
	for desk := range perDesk {
		sort.SliceStable(perDesk[desk], func(i, j int) bool {
			a, b := perDesk[desk][i], perDesk[desk][j]
			if a.order != b.order {
				return a.order < b.order
			}
			if a.card.Position.Y != b.card.Position.Y {
				return a.card.Position.Y < b.card.Position.Y
			}
			return a.card.ID < b.card.ID
		})
		for _, p := range perDesk[desk] {
			if err := result.Append(desk, p.card); err != nil {
				return nil, err
			}
		}
	}

	return result, nil
}

// restore turns one persisted record into a Card, or nil when its file
// location no longer resolves.
func (s *CardStore) restore(ctx context.Context, rec models.CardRecord) *models.Card {
	path, handle := s.resolveLocation(ctx, rec)
	if path == "" {
		s.log.Warn(ctx, "card dropped, location unresolvable", "id", rec.ID, "path", rec.Path)
		return nil
	}

	thumb, err := thumbs.Ensure(rec.Thumbnail, rec.Width, rec.Height)
	if err != nil {
		s.log.Warn(ctx, "thumbnail placeholder failed", "id", rec.ID, "error", err)
		thumb = rec.Thumbnail
	}

	return &models.Card{
		ID:        rec.ID,
		Path:      path,
		Handle:    handle,
		Thumbnail: thumb,
		Position:  models.Point{X: rec.PosX, Y: rec.PosY},
		Size:      models.Size{Width: rec.Width, Height: rec.Height},
	}
}

// resolveLocation tries the durable handle first and falls back to the plain
// path. A stale handle that still resolves is refreshed and persisted.
func (s *CardStore) resolveLocation(ctx context.Context, rec models.CardRecord) (string, *bookmark.Handle) {
	if len(rec.Handle) > 0 {
		h, err := bookmark.Decode(rec.Handle)
		if err != nil {
			s.log.Warn(ctx, "stored handle undecodable", "id", rec.ID, "error", err)
		} else if res, err := h.Resolve(s.libraryDir); err == nil {
			if res.Stale {
				h = s.repairHandle(ctx, rec.ID, res.Path, h)
			}
			return res.Path, h
		}
	}

	if rec.Path != "" && filex.IsReadable(rec.Path) {
		return rec.Path, nil
	}
	return "", nil
}

// repairHandle regenerates a stale handle for the file's new location and
// persists it. Repair is best-effort: on failure the old handle is kept and
// the card still loads.
func (s *CardStore) repairHandle(ctx context.Context, id, path string, old *bookmark.Handle) *bookmark.Handle {
	fresh, err := bookmark.New(path)
	if err != nil {
		s.log.Warn(ctx, "handle refresh failed", "id", id, "path", path, "error", err)
		return old
	}

	blob, err := fresh.Encode()
	if err != nil {
		s.log.Warn(ctx, "handle refresh failed", "id", id, "path", path, "error", err)
		return old
	}
	if err := s.repo.UpdateHandle(ctx, id, blob); err != nil {
		s.log.Warn(ctx, "handle refresh not persisted", "id", id, "error", err)
	} else {
		s.log.Info(ctx, "stale handle repaired", "id", id, "path", path)
	}
	return fresh
}
