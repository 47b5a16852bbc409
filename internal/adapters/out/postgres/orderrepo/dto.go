// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Status is stored as its canonical lowercase name so the audit trail and
// the rows stay readable side by side. Indexed by both participants for the
// role-filtered listings.
type OrderDTO struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ClientID      uuid.UUID  `gorm:"type:uuid;index"`
	FreelancerID  uuid.UUID  `gorm:"type:uuid;index"`
	GigID         *uuid.UUID `gorm:"type:uuid"`
	ServiceID     *uuid.UUID `gorm:"type:uuid"`
	TotalAmount   float64
	Requirements  string `gorm:"type:text"`
	DeliveryDate  *time.Time
	Status        string `gorm:"type:varchar(20);index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	CompletedDate *time.Time
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var gigID, serviceID *uuid.UUID
	if id := aggregate.GigID(); id != nil {
		raw := id.Bytes()
		gigID = &raw
	}
	if id := aggregate.ServiceID(); id != nil {
		raw := id.Bytes()
		serviceID = &raw
	}

	return OrderDTO{
		ID:            aggregate.ID().Bytes(),
		ClientID:      aggregate.ClientID().Bytes(),
		FreelancerID:  aggregate.FreelancerID().Bytes(),
		GigID:         gigID,
		ServiceID:     serviceID,
		TotalAmount:   aggregate.TotalAmount().Amount(),
		Requirements:  aggregate.Requirements(),
		DeliveryDate:  aggregate.DeliveryDate(),
		Status:        aggregate.Status().String(),
		CreatedAt:     aggregate.CreatedAt(),
		UpdatedAt:     aggregate.UpdatedAt(),
		CompletedDate: aggregate.CompletedDate(),
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate through RestoreOrder so corrupt rows
// fail loudly instead of producing half-valid orders.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	clientID, err := kernel.UUIDFromBytes(dto.ClientID[:])
	if err != nil {
		return nil, err
	}
	freelancerID, err := kernel.UUIDFromBytes(dto.FreelancerID[:])
	if err != nil {
		return nil, err
	}

	var gigID, serviceID *kernel.UUID
	if dto.GigID != nil {
		v, gigErr := kernel.UUIDFromBytes((*dto.GigID)[:])
		if gigErr != nil {
			return nil, gigErr
		}
		gigID = &v
	}
	if dto.ServiceID != nil {
		v, svcErr := kernel.UUIDFromBytes((*dto.ServiceID)[:])
		if svcErr != nil {
			return nil, svcErr
		}
		serviceID = &v
	}

	amount, err := kernel.NewMoney(dto.TotalAmount)
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		clientID,
		freelancerID,
		gigID,
		serviceID,
		amount,
		dto.Requirements,
		dto.DeliveryDate,
		status,
		dto.CreatedAt,
		dto.UpdatedAt,
		dto.CompletedDate,
	)
}
