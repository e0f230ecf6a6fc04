package service

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playfiesta/store_api/internal/models"
	"github.com/playfiesta/store_api/internal/utils"
)

type memAddressStore struct {
	byUser map[int]*models.Address
}

func newMemAddressStore() *memAddressStore {
	return &memAddressStore{byUser: make(map[int]*models.Address)}
}

func (m *memAddressStore) GetByUserID(userID int) (*models.Address, error) {
	a, ok := m.byUser[userID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *a
	return &cp, nil
}

func (m *memAddressStore) Upsert(a *models.Address) error {
	cp := *a
	m.byUser[a.UserID] = &cp
	return nil
}

func (m *memAddressStore) DeleteByUserID(userID int) error {
	if _, ok := m.byUser[userID]; !ok {
		return sql.ErrNoRows
	}
	delete(m.byUser, userID)
	return nil
}

func TestSetAddressFixesCountry(t *testing.T) {
	svc := NewAddressService(newMemAddressStore())

	addr, err := svc.SetAddress(1, &SetAddressRequest{
		Recipient: "Ana Rojas",
		Line1:     "Av. Siempre Viva 742",
		Phone:     "+56911111111",
		City:      "Santiago",
	})
	require.NoError(t, err)
	assert.Equal(t, models.AddressCountry, addr.Country)
	assert.Equal(t, 1, addr.UserID)
}

func TestSetAddressReplacesExisting(t *testing.T) {
	svc := NewAddressService(newMemAddressStore())

	_, err := svc.SetAddress(1, &SetAddressRequest{Recipient: "Ana", Line1: "Old 1", Phone: "1"})
	require.NoError(t, err)
	_, err = svc.SetAddress(1, &SetAddressRequest{Recipient: "Ana", Line1: "New 2", Phone: "1"})
	require.NoError(t, err)

	got, err := svc.GetAddress(1)
	require.NoError(t, err)
	assert.Equal(t, "New 2", got.Line1, "a user holds exactly one address")
}

func TestAddressOperationsAreScopedToCaller(t *testing.T) {
	store := newMemAddressStore()
	svc := NewAddressService(store)

	_, err := svc.SetAddress(1, &SetAddressRequest{Recipient: "Ana", Line1: "A", Phone: "1"})
	require.NoError(t, err)

	// User 2 sees nothing and deletes nothing.
	_, err = svc.GetAddress(2)
	assert.ErrorIs(t, err, utils.ErrAddressNotFound)
	assert.ErrorIs(t, svc.DeleteAddress(2), utils.ErrAddressNotFound)

	// User 1's row is untouched by user 2's attempts.
	got, err := svc.GetAddress(1)
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.Recipient)
}

func TestDeleteAddress(t *testing.T) {
	svc := NewAddressService(newMemAddressStore())

	_, err := svc.SetAddress(1, &SetAddressRequest{Recipient: "Ana", Line1: "A", Phone: "1"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAddress(1))
	_, err = svc.GetAddress(1)
	assert.ErrorIs(t, err, utils.ErrAddressNotFound)
}
