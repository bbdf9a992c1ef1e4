package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrDuplicateReference: the same existing id appears twice in one batch.
	ErrDuplicateReference = errors.New("duplicate reference id in input")
	// ErrDuplicateName: two new items normalize to the same name.
	ErrDuplicateName = errors.New("duplicate name in input")
	// ErrNameConflict: a new item's name matches a row another item
	// already references by id.
	ErrNameConflict = errors.New("name collides with a referenced item")
	// ErrInvalidItem: an item carries neither an existing reference nor
	// a new entry.
	ErrInvalidItem = errors.New("item must reference an existing row or describe a new one")
)

// MissingReferenceError names the row a batch pointed at that does not exist.
type MissingReferenceError struct {
	Kind string
	ID   uuid.UUID
}

func (e *MissingReferenceError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}
