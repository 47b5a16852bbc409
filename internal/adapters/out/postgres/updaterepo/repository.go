package updaterepo

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GormOrderUpdateRepository implements OrderUpdateRepository using GORM.
type GormOrderUpdateRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderUpdateRepository creates a new GORM audit-trail repository.
func NewGormOrderUpdateRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderUpdateRepository {
	return &GormOrderUpdateRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add appends an audit entry.
func (r *GormOrderUpdateRepository) Add(ctx context.Context, entry *order.Update) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := fromDomain(entry)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(entry.ID(), entry)
	return nil
}

// GetAllForOrder retrieves the audit trail for an order, newest first.
func (r *GormOrderUpdateRepository) GetAllForOrder(ctx context.Context, orderID kernel.UUID) ([]*order.Update, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []UpdateDTO
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&dtos, "order_id = ?", orderID.Bytes()).Error; err != nil {
		return nil, err
	}

	updates := make([]*order.Update, 0, len(dtos))
	for _, dto := range dtos {
		u, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		updates = append(updates, u)
	}

	return updates, nil
}
