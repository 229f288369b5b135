// Package models defines the in-memory desk/card data model and the persisted
// record shape used by the card repositories.
package models

import "github.com/bookdesk/bookdesk/internal/bookmark"

// Point is a position in desk-canvas coordinates. Cards may be dragged
// partly off-canvas, so no bounds are enforced here.
type Point struct {
	X float64
	Y float64
}

// Size is a card's fixed display size, assigned at import time.
type Size struct {
	Width  float64
	Height float64
}

// Card is one imported document placed on a desk. The desk it belongs to is
// the partition it lives in (see DeskSet), not a field of the card itself.
type Card struct {
	// ID is a globally unique identifier assigned at import, never reused.
	ID string

	// Path is the plain-path fallback location of the document.
	Path string

	// Handle is the durable, relocation-tolerant location reference.
	// It may be nil when no handle could be created.
	Handle *bookmark.Handle

	// Thumbnail holds PNG-encoded preview bytes so display never has to
	// re-render the source document eagerly.
	Thumbnail []byte

	// Position is mutated freely by drag interaction.
	Position Point

	// Size is fixed after import.
	Size Size
}

// CardRecord is the persisted row for one card: the Card fields flattened for
// storage, plus the desk partition and the explicit ordering index used to
// reconstruct a deterministic order on load.
type CardRecord struct {
	ID         string
	Handle     []byte
	Path       string
	Thumbnail  []byte
	PosX       float64
	PosY       float64
	Width      float64
	Height     float64
	DeskIndex  int
	OrderIndex int
}
