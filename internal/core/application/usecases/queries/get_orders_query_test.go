package queries_test

import (
	"testing"

	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetOrdersQuery_ValidInput(t *testing.T) {
	userID := kernel.NewUUID()
	role := order.RoleClient
	status := order.Completed

	query, err := queries.NewGetOrdersQuery(userID, &role, &status)
	require.NoError(t, err)
	assert.Equal(t, userID, query.UserID())
	require.NotNil(t, query.Role())
	assert.Equal(t, order.RoleClient, *query.Role())
	require.NotNil(t, query.Status())
	assert.Equal(t, order.Completed, *query.Status())
}

func TestNewGetOrdersQuery_NoFilters(t *testing.T) {
	query, err := queries.NewGetOrdersQuery(kernel.NewUUID(), nil, nil)
	require.NoError(t, err)
	assert.Nil(t, query.Role())
	assert.Nil(t, query.Status())
}

func TestNewGetOrdersQuery_InvalidUserID(t *testing.T) {
	_, err := queries.NewGetOrdersQuery(kernel.UUID{}, nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewGetOrdersQuery_InvalidRole(t *testing.T) {
	role := order.RoleUnknown
	_, err := queries.NewGetOrdersQuery(kernel.NewUUID(), &role, nil)
	require.Error(t, err)
}

func TestNewGetOrdersQuery_InvalidStatus(t *testing.T) {
	status := order.Unknown
	_, err := queries.NewGetOrdersQuery(kernel.NewUUID(), nil, &status)
	require.Error(t, err)
}

func TestGetOrdersQuery_Validate_ZeroValue(t *testing.T) {
	var query queries.GetOrdersQuery
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetOrdersQueryIsNotConstructed)
}

func TestNewGetOrderQuery_ValidInput(t *testing.T) {
	orderID := kernel.NewUUID()
	requesterID := kernel.NewUUID()

	query, err := queries.NewGetOrderQuery(orderID, requesterID)
	require.NoError(t, err)
	assert.Equal(t, orderID, query.OrderID())
	assert.Equal(t, requesterID, query.RequesterID())
}

func TestNewGetOrderQuery_InvalidIDs(t *testing.T) {
	_, err := queries.NewGetOrderQuery(kernel.UUID{}, kernel.NewUUID())
	require.Error(t, err)

	_, err = queries.NewGetOrderQuery(kernel.NewUUID(), kernel.UUID{})
	require.Error(t, err)
}

func TestNewGetOrderUpdatesQuery_ValidInput(t *testing.T) {
	orderID := kernel.NewUUID()
	requesterID := kernel.NewUUID()

	query, err := queries.NewGetOrderUpdatesQuery(orderID, requesterID)
	require.NoError(t, err)
	assert.Equal(t, orderID, query.OrderID())
	assert.Equal(t, requesterID, query.RequesterID())
}

func TestNewGetOrderUpdatesQuery_InvalidIDs(t *testing.T) {
	_, err := queries.NewGetOrderUpdatesQuery(kernel.UUID{}, kernel.UUID{})
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}
