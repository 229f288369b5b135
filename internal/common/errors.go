// Package common defines shared constants and sentinel errors used across
// BookDesk components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Desk model errors.
	ErrorDeskIndexOutOfRange = errors.New("desk index out of range")
	ErrorCardNotFound        = errors.New("card not found")

	// Location resolution errors.
	ErrorUnresolvable  = errors.New("file location unresolvable")
	ErrorInvalidHandle = errors.New("invalid durable handle")

	// Import errors.
	ErrorSourceUnreadable = errors.New("source document unreadable")
)
