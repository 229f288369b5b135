package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/bookdesk/bookdesk/internal/logging"
	"github.com/bookdesk/bookdesk/internal/repositories/settings"
)

// PageMemory remembers the last-viewed page per document in the settings
// store. Keys are derived deterministically from the document's absolute
// location, so reopening the same document restores its page. Entries are
// never expired.
type PageMemory struct {
	settings settings.Repository
	log      logging.Logger
}

func NewPageMemory(repo settings.Repository, log logging.Logger) *PageMemory {
	return &PageMemory{settings: repo, log: log}
}

// pageKey derives the settings key for a document from its cleaned absolute
// path, hashed so arbitrary paths make well-behaved keys.
func pageKey(docPath string) string {
	abs, err := filepath.Abs(docPath)
	if err != nil {
		abs = filepath.Clean(docPath)
	}
	sum := sha256.Sum256([]byte(abs))
	return "page:" + hex.EncodeToString(sum[:])
}

// Page returns the remembered zero-based page index for the document, or 0
// when nothing is stored. A corrupted stored value is treated as unset.
func (p *PageMemory) Page(ctx context.Context, docPath string) (int, error) {
	value, err := p.settings.Get(ctx, pageKey(docPath))
	if err != nil {
		return 0, fmt.Errorf("get page for %s: %w", docPath, err)
	}
	if value == nil {
		return 0, nil
	}

	page, err := strconv.Atoi(string(value))
	if err != nil || page < 0 {
		p.log.Warn(ctx, "stored page index unusable", "path", docPath, "value", string(value))
		return 0, nil
	}
	return page, nil
}

// SetPage stores the last-viewed page index for the document. Negative
// indexes are clamped to 0.
func (p *PageMemory) SetPage(ctx context.Context, docPath string, page int) error {
	if page < 0 {
		page = 0
	}
	if err := p.settings.Set(ctx, pageKey(docPath), []byte(strconv.Itoa(page))); err != nil {
		return fmt.Errorf("set page for %s: %w", docPath, err)
	}
	return nil
}
