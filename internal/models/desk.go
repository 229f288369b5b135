package models

import "github.com/bookdesk/bookdesk/internal/common"

// DeskCount is the fixed number of desks. Desk indexes run 0..DeskCount-1.
const DeskCount = 5

// DeskSet is the in-memory collection of five ordered card sequences. It is
// the unit of mutation for add/move/delete and is only ever touched from a
// single goroutine; callers are responsible for persisting after mutations.
type DeskSet struct {
	desks [DeskCount][]*Card
}

// NewDeskSet returns a DeskSet with five empty desks.
func NewDeskSet() *DeskSet {
	return &DeskSet{}
}

// ClampDeskIndex coerces idx into the valid desk range. Out-of-range values
// in stored data are repaired rather than rejected.
func ClampDeskIndex(idx int) int {
	if idx < 0 {
		return 0
	}
	if idx >= DeskCount {
		return DeskCount - 1
	}
	return idx
}

// Append places card at the end of the given desk.
func (d *DeskSet) Append(desk int, card *Card) error {
	if desk < 0 || desk >= DeskCount {
		return common.ErrorDeskIndexOutOfRange
	}
	d.desks[desk] = append(d.desks[desk], card)
	return nil
}

// Cards returns a copy of the ordered card sequence of one desk.
func (d *DeskSet) Cards(desk int) ([]*Card, error) {
	if desk < 0 || desk >= DeskCount {
		return nil, common.ErrorDeskIndexOutOfRange
	}
	out := make([]*Card, len(d.desks[desk]))
	copy(out, d.desks[desk])
	return out, nil
}

// Len returns the total number of cards across all desks.
func (d *DeskSet) Len() int {
	n := 0
	for i := range d.desks {
		n += len(d.desks[i])
	}
	return n
}

// Find returns the card with the given id and the desk it sits on.
func (d *DeskSet) Find(id string) (*Card, int, error) {
	for desk := range d.desks {
		for _, c := range d.desks[desk] {
			if c.ID == id {
				return c, desk, nil
			}
		}
	}
	return nil, 0, common.ErrorCardNotFound
}

// Remove deletes the card with the given id from whichever desk holds it.
func (d *DeskSet) Remove(id string) error {
	for desk := range d.desks {
		for i, c := range d.desks[desk] {
			if c.ID == id {
				d.desks[desk] = append(d.desks[desk][:i], d.desks[desk][i+1:]...)
				return nil
			}
		}
	}
	return common.ErrorCardNotFound
}

// SetPosition updates a card's position in place (drag-end).
func (d *DeskSet) SetPosition(id string, p Point) error {
	card, _, err := d.Find(id)
	if err != nil {
		return err
	}
	card.Position = p
	return nil
}

// Move transfers the card with the given id to the end of another desk.
// Moving a card to the desk it is already on re-appends it at the end.
func (d *DeskSet) Move(id string, toDesk int) error {
	if toDesk < 0 || toDesk >= DeskCount {
		return common.ErrorDeskIndexOutOfRange
	}
	card, _, err := d.Find(id)
	if err != nil {
		return err
	}
	if err := d.Remove(id); err != nil {
		return err
	}
	d.desks[toDesk] = append(d.desks[toDesk], card)
	return nil
}
