package order

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

const (
	// MaxStatusMessageLength bounds the optional note attached to a status
	// change.
	MaxStatusMessageLength = 500

	// MaxNoteLength bounds a narrative update message.
	MaxNoteLength = 1000
)

// ErrUpdateIsNotConstructed is returned when an Update instance was not
// created through one of its factory functions.
var ErrUpdateIsNotConstructed = errors.New("Update must be created via NewStatusUpdate, NewNote, or RestoreUpdate")

// Update is an append-only audit entry attached to an order. An entry records
// either a status change (status set, message optional) or a narrative note
// (message set, no status). Entries are never mutated or deleted.
type Update struct {
	// id is the unique identifier for the entry
	id kernel.UUID

	// orderID references the order the entry belongs to
	orderID kernel.UUID

	// authorID is the profile that performed the action
	authorID kernel.UUID

	// status is the status recorded at the time of the update, nil for
	// narrative notes
	status *Status

	// message is the free-text note, may be empty for status entries
	message string

	// createdAt is fixed when the entry is written
	createdAt time.Time

	// isConstructed ensures the entry was created via a factory function
	isConstructed bool
}

// NewStatusUpdate creates an audit entry recording a status change, with an
// optional human-readable message of at most MaxStatusMessageLength
// characters.
func NewStatusUpdate(
	id kernel.UUID,
	orderID kernel.UUID,
	authorID kernel.UUID,
	status Status,
	message string,
	createdAt time.Time,
) (*Update, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		authorID.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	if utf8.RuneCountInString(message) > MaxStatusMessageLength {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"message",
			fmt.Errorf("message exceeds %d characters", MaxStatusMessageLength),
		)
	}

	return &Update{
		id:            id,
		orderID:       orderID,
		authorID:      authorID,
		status:        &status,
		message:       message,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// NewNote creates a narrative audit entry. The message is required and must
// not exceed MaxNoteLength characters.
func NewNote(
	id kernel.UUID,
	orderID kernel.UUID,
	authorID kernel.UUID,
	message string,
	createdAt time.Time,
) (*Update, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		authorID.Validate(),
	); err != nil {
		return nil, err
	}

	if message == "" {
		return nil, errs.NewValueIsRequiredError("message")
	}
	if utf8.RuneCountInString(message) > MaxNoteLength {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"message",
			fmt.Errorf("message exceeds %d characters", MaxNoteLength),
		)
	}

	return &Update{
		id:            id,
		orderID:       orderID,
		authorID:      authorID,
		message:       message,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// RestoreUpdate reconstructs an audit entry from persistence. An entry must
// carry a status, a message, or both.
func RestoreUpdate(
	id kernel.UUID,
	orderID kernel.UUID,
	authorID kernel.UUID,
	status *Status,
	message string,
	createdAt time.Time,
) (*Update, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		authorID.Validate(),
	); err != nil {
		return nil, err
	}

	if status != nil {
		if err := status.Validate(); err != nil {
			return nil, err
		}
	}
	if status == nil && message == "" {
		return nil, errs.NewValueIsRequiredError("status or message")
	}

	return &Update{
		id:            id,
		orderID:       orderID,
		authorID:      authorID,
		status:        status,
		message:       message,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Update was created via a factory function.
func (u *Update) Validate() error {
	if u == nil || !u.isConstructed {
		return ErrUpdateIsNotConstructed
	}
	return nil
}

// ID returns the entry's unique identifier.
func (u *Update) ID() kernel.UUID {
	return u.id
}

// OrderID returns the order the entry belongs to.
func (u *Update) OrderID() kernel.UUID {
	return u.orderID
}

// AuthorID returns the profile that performed the action.
func (u *Update) AuthorID() kernel.UUID {
	return u.authorID
}

// Status returns the status recorded at the time of the update.
// Returns nil for narrative notes.
func (u *Update) Status() *Status {
	return u.status
}

// Message returns the free-text note. Empty for message-less status entries.
func (u *Update) Message() string {
	return u.message
}

// CreatedAt returns the timestamp the entry was written at.
func (u *Update) CreatedAt() time.Time {
	return u.createdAt
}
