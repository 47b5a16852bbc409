// Package updaterepo persists the order audit trail. Entries are insert-only;
// nothing here updates or deletes a row once written.
package updaterepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// UpdateDTO represents the database structure for audit-trail entries.
// Status is null for plain notes.
type UpdateDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;index"`
	AuthorID  uuid.UUID `gorm:"type:uuid"`
	Status    *string   `gorm:"type:varchar(20)"`
	Message   string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"index"`
}

// TableName specifies the database table name for audit entries.
func (UpdateDTO) TableName() string {
	return "order_updates"
}

// fromDomain converts an audit entry to its database representation.
func fromDomain(entry *order.Update) UpdateDTO {
	var status *string
	if s := entry.Status(); s != nil {
		name := s.String()
		status = &name
	}

	return UpdateDTO{
		ID:        entry.ID().Bytes(),
		OrderID:   entry.OrderID().Bytes(),
		AuthorID:  entry.AuthorID().Bytes(),
		Status:    status,
		Message:   entry.Message(),
		CreatedAt: entry.CreatedAt(),
	}
}

// toDomain converts a database DTO to an audit-trail entry.
func toDomain(dto UpdateDTO) (*order.Update, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	authorID, err := kernel.UUIDFromBytes(dto.AuthorID[:])
	if err != nil {
		return nil, err
	}

	var status *order.Status
	if dto.Status != nil {
		s, statusErr := order.StatusFromString(*dto.Status)
		if statusErr != nil {
			return nil, statusErr
		}
		status = &s
	}

	return order.RestoreUpdate(id, orderID, authorID, status, dto.Message, dto.CreatedAt)
}
