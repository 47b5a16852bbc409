package order_test

import (
	"strings"
	"testing"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type orderFixture struct {
	orderID      kernel.UUID
	clientID     kernel.UUID
	freelancerID kernel.UUID
	gigID        kernel.UUID
	amount       kernel.Money
	now          time.Time
}

func newFixture(t *testing.T) orderFixture {
	t.Helper()

	amount, err := kernel.NewMoney(100.00)
	require.NoError(t, err)

	return orderFixture{
		orderID:      kernel.NewUUID(),
		clientID:     kernel.NewUUID(),
		freelancerID: kernel.NewUUID(),
		gigID:        kernel.NewUUID(),
		amount:       amount,
		now:          time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC),
	}
}

func (f orderFixture) newOrder(t *testing.T) *order.Order {
	t.Helper()

	o, err := order.NewOrder(
		f.orderID, f.clientID, f.freelancerID,
		&f.gigID, nil,
		f.amount, "build a landing page", nil, f.now,
	)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	f := newFixture(t)

	t.Run("should create pending order with valid data", func(t *testing.T) {
		o := f.newOrder(t)

		assert.Equal(t, order.Pending, o.Status())
		assert.True(t, o.ID().IsEqual(f.orderID))
		assert.True(t, o.ClientID().IsEqual(f.clientID))
		assert.True(t, o.FreelancerID().IsEqual(f.freelancerID))
		require.NotNil(t, o.GigID())
		assert.Nil(t, o.ServiceID())
		assert.True(t, o.TotalAmount().IsEqual(f.amount))
		assert.Equal(t, "build a landing page", o.Requirements())
		assert.Equal(t, f.now, o.CreatedAt())
		assert.Equal(t, f.now, o.UpdatedAt())
		assert.Nil(t, o.CompletedDate())
		require.NoError(t, o.Validate())
	})

	t.Run("should raise a created event", func(t *testing.T) {
		o := f.newOrder(t)

		events := o.DomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, order.EventOrderCreated, events[0].EventName())
		assert.True(t, events[0].AggregateID().IsEqual(f.orderID))
	})

	t.Run("should reject same client and freelancer", func(t *testing.T) {
		_, err := order.NewOrder(
			f.orderID, f.clientID, f.clientID,
			&f.gigID, nil,
			f.amount, "", nil, f.now,
		)

		require.ErrorIs(t, err, order.ErrSameParties)
	})

	t.Run("should require exactly one subject", func(t *testing.T) {
		serviceID := kernel.NewUUID()

		_, err := order.NewOrder(
			f.orderID, f.clientID, f.freelancerID,
			nil, nil,
			f.amount, "", nil, f.now,
		)
		require.ErrorIs(t, err, order.ErrSubjectRequired)

		_, err = order.NewOrder(
			f.orderID, f.clientID, f.freelancerID,
			&f.gigID, &serviceID,
			f.amount, "", nil, f.now,
		)
		require.ErrorIs(t, err, order.ErrSubjectConflict)
	})

	t.Run("should accept a service subject", func(t *testing.T) {
		serviceID := kernel.NewUUID()

		o, err := order.NewOrder(
			f.orderID, f.clientID, f.freelancerID,
			nil, &serviceID,
			f.amount, "", nil, f.now,
		)

		require.NoError(t, err)
		assert.Nil(t, o.GigID())
		require.NotNil(t, o.ServiceID())
		assert.True(t, o.ServiceID().IsEqual(serviceID))
	})

	t.Run("should reject unconstructed amount", func(t *testing.T) {
		_, err := order.NewOrder(
			f.orderID, f.clientID, f.freelancerID,
			&f.gigID, nil,
			kernel.Money{}, "", nil, f.now,
		)

		require.Error(t, err)
	})

	t.Run("should reject zero-value ids", func(t *testing.T) {
		_, err := order.NewOrder(
			kernel.UUID{}, f.clientID, f.freelancerID,
			&f.gigID, nil,
			f.amount, "", nil, f.now,
		)

		require.Error(t, err)
	})
}

func TestRestoreOrder(t *testing.T) {
	f := newFixture(t)

	t.Run("should restore a persisted order without raising events", func(t *testing.T) {
		o, err := order.RestoreOrder(
			f.orderID, f.clientID, f.freelancerID,
			&f.gigID, nil,
			f.amount, "", nil,
			order.InProgress, f.now, f.now, nil,
		)

		require.NoError(t, err)
		assert.Equal(t, order.InProgress, o.Status())
		assert.Empty(t, o.DomainEvents())
	})

	t.Run("should reject completed order without completion date", func(t *testing.T) {
		_, err := order.RestoreOrder(
			f.orderID, f.clientID, f.freelancerID,
			&f.gigID, nil,
			f.amount, "", nil,
			order.Completed, f.now, f.now, nil,
		)

		require.Error(t, err)
	})

	t.Run("should reject pending order with completion date", func(t *testing.T) {
		completed := f.now

		_, err := order.RestoreOrder(
			f.orderID, f.clientID, f.freelancerID,
			&f.gigID, nil,
			f.amount, "", nil,
			order.Pending, f.now, f.now, &completed,
		)

		require.Error(t, err)
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("should reject direct struct instantiation", func(t *testing.T) {
		var o order.Order

		err := o.Validate()

		require.Error(t, err)
		assert.Equal(t, order.ErrOrderIsNotConstructed, err)
	})

	t.Run("should reject nil order", func(t *testing.T) {
		var o *order.Order
		require.Error(t, o.Validate())
	})
}

func TestOrder_RoleOf(t *testing.T) {
	f := newFixture(t)
	o := f.newOrder(t)

	t.Run("should resolve client", func(t *testing.T) {
		role, err := o.RoleOf(f.clientID)
		require.NoError(t, err)
		assert.Equal(t, order.RoleClient, role)
	})

	t.Run("should resolve freelancer", func(t *testing.T) {
		role, err := o.RoleOf(f.freelancerID)
		require.NoError(t, err)
		assert.Equal(t, order.RoleFreelancer, role)
	})

	t.Run("should reject strangers", func(t *testing.T) {
		_, err := o.RoleOf(kernel.NewUUID())
		require.ErrorIs(t, err, order.ErrNotParticipant)
	})
}

func TestOrder_ChangeStatus(t *testing.T) {
	t.Run("freelancer starts work", func(t *testing.T) {
		f := newFixture(t)
		o := f.newOrder(t)
		later := f.now.Add(time.Hour)

		update, err := o.ChangeStatus(f.freelancerID, order.InProgress, "starting now", later)

		require.NoError(t, err)
		assert.Equal(t, order.InProgress, o.Status())
		assert.Equal(t, later, o.UpdatedAt())
		assert.Nil(t, o.CompletedDate())

		require.NotNil(t, update)
		require.NotNil(t, update.Status())
		assert.Equal(t, order.InProgress, *update.Status())
		assert.Equal(t, "starting now", update.Message())
		assert.True(t, update.AuthorID().IsEqual(f.freelancerID))
		assert.True(t, update.OrderID().IsEqual(o.ID()))
	})

	t.Run("client cannot start work", func(t *testing.T) {
		f := newFixture(t)
		o := f.newOrder(t)

		_, err := o.ChangeStatus(f.clientID, order.InProgress, "", f.now)

		require.ErrorIs(t, err, order.ErrInvalidTransition)
		var transitionErr *order.InvalidTransitionError
		require.ErrorAs(t, err, &transitionErr)
		assert.Equal(t, order.Pending, transitionErr.From)
		assert.Equal(t, order.InProgress, transitionErr.To)
		assert.Equal(t, order.RoleClient, transitionErr.Role)
		assert.Equal(t, order.Pending, o.Status())
	})

	t.Run("client cannot complete", func(t *testing.T) {
		f := newFixture(t)
		o := f.newOrder(t)
		_, err := o.ChangeStatus(f.freelancerID, order.InProgress, "", f.now)
		require.NoError(t, err)

		_, err = o.ChangeStatus(f.clientID, order.Completed, "", f.now)

		require.ErrorIs(t, err, order.ErrInvalidTransition)
	})

	t.Run("completion sets the completion date", func(t *testing.T) {
		f := newFixture(t)
		o := f.newOrder(t)
		_, err := o.ChangeStatus(f.freelancerID, order.InProgress, "", f.now)
		require.NoError(t, err)

		completedAt := f.now.Add(48 * time.Hour)
		_, err = o.ChangeStatus(f.freelancerID, order.Completed, "all done", completedAt)

		require.NoError(t, err)
		assert.Equal(t, order.Completed, o.Status())
		require.NotNil(t, o.CompletedDate())
		assert.Equal(t, completedAt, *o.CompletedDate())
	})

	t.Run("completion date stays unset for non-completing transitions", func(t *testing.T) {
		f := newFixture(t)
		o := f.newOrder(t)

		_, err := o.ChangeStatus(f.clientID, order.Cancelled, "", f.now)

		require.NoError(t, err)
		assert.Nil(t, o.CompletedDate())
	})

	t.Run("no-op request fails with ErrNoStatusChange for any role", func(t *testing.T) {
		f := newFixture(t)
		o := f.newOrder(t)

		_, err := o.ChangeStatus(f.freelancerID, order.Pending, "", f.now)
		require.ErrorIs(t, err, order.ErrNoStatusChange)

		_, err = o.ChangeStatus(f.clientID, order.Pending, "", f.now)
		require.ErrorIs(t, err, order.ErrNoStatusChange)
	})

	t.Run("stranger is rejected regardless of target", func(t *testing.T) {
		f := newFixture(t)
		o := f.newOrder(t)
		stranger := kernel.NewUUID()

		for _, target := range allStatuses() {
			_, err := o.ChangeStatus(stranger, target, "", f.now)
			require.ErrorIs(t, err, order.ErrNotParticipant, "target %s", target)
		}
	})

	t.Run("invalid target status is rejected", func(t *testing.T) {
		f := newFixture(t)
		o := f.newOrder(t)

		_, err := o.ChangeStatus(f.clientID, order.Unknown, "", f.now)
		require.Error(t, err)
	})

	t.Run("over-length message is rejected and status unchanged", func(t *testing.T) {
		f := newFixture(t)
		o := f.newOrder(t)
		message := strings.Repeat("x", order.MaxStatusMessageLength+1)

		_, err := o.ChangeStatus(f.freelancerID, order.InProgress, message, f.now)

		require.Error(t, err)
		assert.Equal(t, order.Pending, o.Status())
	})

	t.Run("cancelled and disputed orders reject every transition", func(t *testing.T) {
		f := newFixture(t)

		frozen := map[string]func(t *testing.T) *order.Order{
			"cancelled": func(t *testing.T) *order.Order {
				o := f.newOrder(t)
				_, err := o.ChangeStatus(f.clientID, order.Cancelled, "", f.now)
				require.NoError(t, err)
				return o
			},
			"disputed": func(t *testing.T) *order.Order {
				o := f.newOrder(t)
				_, err := o.ChangeStatus(f.clientID, order.Disputed, "", f.now)
				require.NoError(t, err)
				return o
			},
		}

		for name, build := range frozen {
			t.Run(name, func(t *testing.T) {
				o := build(t)
				for _, target := range allStatuses() {
					if target == o.Status() {
						continue
					}
					_, err := o.ChangeStatus(f.clientID, target, "", f.now)
					require.ErrorIs(t, err, order.ErrInvalidTransition, "client -> %s", target)

					_, err = o.ChangeStatus(f.freelancerID, target, "", f.now)
					require.ErrorIs(t, err, order.ErrInvalidTransition, "freelancer -> %s", target)
				}
			})
		}
	})

	t.Run("each successful transition raises exactly one status event", func(t *testing.T) {
		f := newFixture(t)
		o := f.newOrder(t)
		o.ClearDomainEvents() // drop the creation event

		_, err := o.ChangeStatus(f.freelancerID, order.InProgress, "", f.now)
		require.NoError(t, err)

		events := o.DomainEvents()
		require.Len(t, events, 1)
		statusEvent, ok := events[0].(order.StatusChangedEvent)
		require.True(t, ok)
		assert.Equal(t, "pending", statusEvent.PreviousStatus)
		assert.Equal(t, "in_progress", statusEvent.NewStatus)
		assert.True(t, statusEvent.ChangedBy.IsEqual(f.freelancerID))
	})
}

// TestOrder_Lifecycle_HappyPath walks the full scenario: freelancer starts
// and delivers the work, then the client raises a dispute on the completed
// order, after which the order is frozen.
func TestOrder_Lifecycle_HappyPath(t *testing.T) {
	f := newFixture(t)
	o := f.newOrder(t)

	update1, err := o.ChangeStatus(f.freelancerID, order.InProgress, "kicking off", f.now.Add(time.Hour))
	require.NoError(t, err)
	require.NotNil(t, update1)

	update2, err := o.ChangeStatus(f.freelancerID, order.Completed, "delivered", f.now.Add(2*time.Hour))
	require.NoError(t, err)
	require.NotNil(t, update2)
	require.NotNil(t, o.CompletedDate())

	update3, err := o.ChangeStatus(f.clientID, order.Disputed, "work is incomplete", f.now.Add(3*time.Hour))
	require.NoError(t, err)
	require.NotNil(t, update3)
	assert.Equal(t, order.Disputed, o.Status())

	// completion date survives the dispute
	require.NotNil(t, o.CompletedDate())

	// frozen: no further role-initiated transitions
	_, err = o.ChangeStatus(f.clientID, order.Cancelled, "", f.now.Add(4*time.Hour))
	require.ErrorIs(t, err, order.ErrInvalidTransition)
	_, err = o.ChangeStatus(f.freelancerID, order.InProgress, "", f.now.Add(4*time.Hour))
	require.ErrorIs(t, err, order.ErrInvalidTransition)
}

func TestOrder_AddNote(t *testing.T) {
	t.Run("should append note without touching status or updatedAt", func(t *testing.T) {
		f := newFixture(t)
		o := f.newOrder(t)
		statusBefore := o.Status()
		updatedBefore := o.UpdatedAt()

		note, err := o.AddNote(f.clientID, "any progress?", f.now.Add(time.Hour))

		require.NoError(t, err)
		assert.Nil(t, note.Status())
		assert.Equal(t, "any progress?", note.Message())
		assert.True(t, note.AuthorID().IsEqual(f.clientID))
		assert.Equal(t, statusBefore, o.Status())
		assert.Equal(t, updatedBefore, o.UpdatedAt())
	})

	t.Run("should reject strangers", func(t *testing.T) {
		f := newFixture(t)
		o := f.newOrder(t)

		_, err := o.AddNote(kernel.NewUUID(), "hello", f.now)

		require.ErrorIs(t, err, order.ErrNotParticipant)
	})

	t.Run("should reject empty message", func(t *testing.T) {
		f := newFixture(t)
		o := f.newOrder(t)

		_, err := o.AddNote(f.clientID, "", f.now)

		require.Error(t, err)
	})

	t.Run("should reject over-length message", func(t *testing.T) {
		f := newFixture(t)
		o := f.newOrder(t)

		_, err := o.AddNote(f.clientID, strings.Repeat("x", order.MaxNoteLength+1), f.now)

		require.Error(t, err)
	})
}

func TestOrder_IsEqual(t *testing.T) {
	f := newFixture(t)
	o1 := f.newOrder(t)
	o2 := f.newOrder(t)

	assert.True(t, o1.IsEqual(o2))
	assert.False(t, o1.IsEqual(nil))

	other := newFixture(t).newOrder(t)
	assert.False(t, o1.IsEqual(other))
}
