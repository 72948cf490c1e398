package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"servicetrack-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCustomer(name string) models.Customer {
	return models.Customer{
		ID:        uuid.New(),
		Name:      name,
		Email:     name + "@example.com",
		Phone:     "555-0100",
		CreatedAt: time.Date(2023, time.January, 15, 0, 0, 0, 0, time.UTC),
	}
}

func sampleAppliance(customerID uuid.UUID, serial string) models.Appliance {
	return models.Appliance{
		ID:                    uuid.New(),
		CustomerID:            customerID,
		Type:                  models.Refrigerator,
		Model:                 "FreshCool X500",
		SerialNumber:          serial,
		PurchaseDate:          time.Date(2023, time.January, 20, 0, 0, 0, 0, time.UTC),
		ServiceIntervalMonths: 12,
		NextServiceDate:       time.Date(2024, time.January, 20, 0, 0, 0, 0, time.UTC),
	}
}

func TestMemorySnapshotsAreIsolated(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	c := sampleCustomer("john")
	require.NoError(t, m.InsertCustomer(ctx, c))
	a := sampleAppliance(c.ID, "FC500-1")
	last := time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC)
	a.LastServiceDate = &last
	require.NoError(t, m.InsertAppliance(ctx, a))

	// mutating the caller's value after insert must not leak in
	last = last.AddDate(1, 0, 0)

	customers, err := m.ListCustomers(ctx)
	require.NoError(t, err)
	customers[0].Name = "changed"

	appliances, err := m.ListAppliances(ctx)
	require.NoError(t, err)
	*appliances[0].LastServiceDate = time.Time{}
	appliances[0].Model = "changed"

	got, ok, err := m.GetCustomer(ctx, c.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "john", got.Name)

	stored, ok, err := m.GetAppliance(ctx, a.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "FreshCool X500", stored.Model)
	assert.Equal(t, time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC), *stored.LastServiceDate)
}

func TestMemoryKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	c := sampleCustomer("john")
	require.NoError(t, m.InsertCustomer(ctx, c))
	var ids []uuid.UUID
	for _, serial := range []string{"S1", "S2", "S3"} {
		a := sampleAppliance(c.ID, serial)
		ids = append(ids, a.ID)
		require.NoError(t, m.InsertAppliance(ctx, a))
	}

	updated := sampleAppliance(c.ID, "S1-replaced")
	updated.ID = ids[0]
	ok, err := m.ReplaceAppliance(ctx, updated)
	require.NoError(t, err)
	require.True(t, ok)

	appliances, err := m.ListAppliances(ctx)
	require.NoError(t, err)
	require.Len(t, appliances, 3)
	for i, a := range appliances {
		assert.Equal(t, ids[i], a.ID)
	}
	assert.Equal(t, "S1-replaced", appliances[0].SerialNumber)
}

func TestMemoryRemoval(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	john, emily := sampleCustomer("john"), sampleCustomer("emily")
	require.NoError(t, m.InsertCustomer(ctx, john))
	require.NoError(t, m.InsertCustomer(ctx, emily))
	require.NoError(t, m.InsertAppliance(ctx, sampleAppliance(john.ID, "J1")))
	require.NoError(t, m.InsertAppliance(ctx, sampleAppliance(emily.ID, "E1")))
	require.NoError(t, m.InsertAppliance(ctx, sampleAppliance(john.ID, "J2")))

	n, err := m.RemoveAppliancesForCustomer(ctx, john.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	removed, err := m.RemoveCustomer(ctx, john.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = m.RemoveCustomer(ctx, john.ID)
	require.NoError(t, err)
	assert.False(t, removed)

	ok, err := m.ReplaceCustomer(ctx, john)
	require.NoError(t, err)
	assert.False(t, ok)

	left, err := m.ListAppliances(ctx)
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, "E1", left[0].SerialNumber)

	forJohn, err := m.ListAppliancesForCustomer(ctx, john.ID)
	require.NoError(t, err)
	assert.Empty(t, forJohn)
}

func TestMemoryAtomicRollsBack(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	c := sampleCustomer("john")
	require.NoError(t, m.InsertCustomer(ctx, c))
	require.NoError(t, m.InsertAppliance(ctx, sampleAppliance(c.ID, "J1")))

	boom := errors.New("boom")
	err := m.Atomic(ctx, func(s Store) error {
		if _, err := s.RemoveAppliancesForCustomer(ctx, c.ID); err != nil {
			return err
		}
		if _, err := s.RemoveCustomer(ctx, c.ID); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	customers, _ := m.ListCustomers(ctx)
	appliances, _ := m.ListAppliances(ctx)
	assert.Len(t, customers, 1)
	assert.Len(t, appliances, 1)
}
