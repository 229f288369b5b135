package services

import (
	"context"
	"math"

	"github.com/bookdesk/bookdesk/internal/bookmark"
	"github.com/bookdesk/bookdesk/internal/common"
	"github.com/bookdesk/bookdesk/internal/filex"
	"github.com/bookdesk/bookdesk/internal/logging"
	"github.com/bookdesk/bookdesk/internal/models"
	"github.com/bookdesk/bookdesk/internal/thumbs"
	"github.com/google/uuid"
)

// cascadeWrap limits how far the import cascade drifts before it restarts
// from the corner.
const cascadeWrap = 10

// Importer copies source documents into the app-private library directory
// and creates cards for them. The copy insulates cards against the source
// file moving or disappearing later.
type Importer struct {
	libraryDir string
	canvas     models.Size
	log        logging.Logger
}

func NewImporter(libraryDir string, canvas models.Size, log logging.Logger) *Importer {
	return &Importer{libraryDir: libraryDir, canvas: canvas, log: log}
}

// Import brings the given source documents onto one desk. Each document is
// copied into the library (name collisions get a random suffix), given a
// fresh card with a durable handle and a placeholder thumbnail, and appended
// to the desk. A document that cannot be read or copied is skipped with a
// log entry; the rest of the batch proceeds.
func (imp *Importer) Import(ctx context.Context, desks *models.DeskSet, desk int, sources []string) ([]*models.Card, error) {
	if desk < 0 || desk >= models.DeskCount {
		return nil, common.ErrorDeskIndexOutOfRange
	}

	if err := filex.EnsureDir(imp.libraryDir); err != nil {
		return nil, err
	}

	onDesk, err := desks.Cards(desk)
	if err != nil {
		return nil, err
	}
	order := len(onDesk)

	var imported []*models.Card
	for _, src := range sources {
		dst, err := filex.CopyFile(src, imp.libraryDir)
		if err != nil {
			imp.log.Warn(ctx, "import skipped", "source", src, "error", err)
			continue
		}

		handle, err := bookmark.New(dst)
		if err != nil {
			// the card still works through its plain path
			imp.log.Warn(ctx, "handle creation failed", "path", dst, "error", err)
			handle = nil
		}

		size := imp.cardSize()
		thumb, err := thumbs.Placeholder(size.Width, size.Height)
		if err != nil {
			imp.log.Warn(ctx, "placeholder thumbnail failed", "path", dst, "error", err)
			thumb = nil
		}

		card := &models.Card{
			ID:        uuid.NewString(),
			Path:      dst,
			Handle:    handle,
			Thumbnail: thumb,
			Position:  imp.cardPosition(size, order),
			Size:      size,
		}
		if err := desks.Append(desk, card); err != nil {
			return imported, err
		}

		imp.log.Info(ctx, "document imported", "id", card.ID, "path", dst, "desk", desk)
		imported = append(imported, card)
		order++
	}

	return imported, nil
}

// cardSize derives the fixed card size from the canvas: a fifth of the
// canvas width, with the portrait aspect of a typical document page.
func (imp *Importer) cardSize() models.Size {
	w := imp.canvas.Width / 5
	if w < 1 {
		w = 1
	}
	return models.Size{Width: w, Height: math.Round(w * 1.4)}
}

// cardPosition cascades newly imported cards diagonally from the top-left
// corner so consecutive imports do not fully overlap.
func (imp *Importer) cardPosition(size models.Size, order int) models.Point {
	step := size.Width / 4
	offset := float64(order%cascadeWrap) * step
	return models.Point{X: offset + step, Y: offset + step}
}
