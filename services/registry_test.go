package services

import (
	"context"
	"testing"
	"time"

	"servicetrack-backend/config"
	"servicetrack-backend/models"
	"servicetrack-backend/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var clockStart = time.Date(2024, time.January, 1, 10, 0, 0, 0, time.UTC)

// storeBackends runs fn once per Store implementation.
func storeBackends(t *testing.T, fn func(t *testing.T, st store.Store)) {
	t.Run("memory", func(t *testing.T) {
		fn(t, store.NewMemory())
	})
	t.Run("sqlite", func(t *testing.T) {
		db, err := config.OpenDatabase("file:" + uuid.NewString() + "?mode=memory&cache=shared")
		require.NoError(t, err)
		t.Cleanup(func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		})
		st, err := store.NewGorm(db, time.UTC)
		require.NoError(t, err)
		fn(t, st)
	})
}

func newTestRegistry(st store.Store) *Registry {
	return NewRegistry(st, WithClock(&fakeClock{now: clockStart}))
}

func addCustomer(t *testing.T, r *Registry, name string) models.Customer {
	t.Helper()
	c, err := r.AddCustomer(context.Background(), models.CustomerFields{
		Name:    name,
		Email:   name + "@example.com",
		Phone:   "555-123-4567",
		Address: "123 Main St",
	})
	require.NoError(t, err)
	return c
}

func addAppliance(t *testing.T, r *Registry, customerID uuid.UUID, typ models.ApplianceType, purchased time.Time, interval int) models.Appliance {
	t.Helper()
	a, err := r.AddAppliance(context.Background(), models.ApplianceFields{
		CustomerID:            customerID,
		Type:                  typ,
		Model:                 "Model " + string(typ),
		SerialNumber:          uuid.NewString()[:8],
		PurchaseDate:          purchased,
		ServiceIntervalMonths: interval,
	})
	require.NoError(t, err)
	return a
}

func assertSameAppliance(t *testing.T, want, got models.Appliance) {
	t.Helper()
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.CustomerID, got.CustomerID)
	assert.Equal(t, want.Type, got.Type)
	assert.Equal(t, want.Model, got.Model)
	assert.Equal(t, want.SerialNumber, got.SerialNumber)
	assert.Equal(t, want.ServiceIntervalMonths, got.ServiceIntervalMonths)
	assert.Equal(t, want.Notes, got.Notes)
	assert.True(t, want.PurchaseDate.Equal(got.PurchaseDate), "purchaseDate %s != %s", want.PurchaseDate, got.PurchaseDate)
	assert.True(t, want.NextServiceDate.Equal(got.NextServiceDate), "nextServiceDate %s != %s", want.NextServiceDate, got.NextServiceDate)
	if want.LastServiceDate == nil {
		assert.Nil(t, got.LastServiceDate)
	} else if assert.NotNil(t, got.LastServiceDate) {
		assert.True(t, want.LastServiceDate.Equal(*got.LastServiceDate))
	}
}

// assertIntervalInvariant checks nextServiceDate against its definition.
func assertIntervalInvariant(t *testing.T, a models.Appliance) {
	t.Helper()
	want := ComputeNextServiceDate(ResolveBaseDate(a), a.ServiceIntervalMonths)
	assert.True(t, want.Equal(a.NextServiceDate), "nextServiceDate %s, want %s", a.NextServiceDate, want)
}

func TestAddCustomer(t *testing.T) {
	storeBackends(t, func(t *testing.T, st store.Store) {
		r := newTestRegistry(st)

		c := addCustomer(t, r, "john")
		assert.NotEqual(t, uuid.Nil, c.ID)
		assert.True(t, clockStart.Equal(c.CreatedAt))

		got, ok, err := r.GetCustomer(context.Background(), c.ID)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "john", got.Name)
		assert.Equal(t, "123 Main St", got.Address)
	})
}

func TestAddApplianceRoundTrip(t *testing.T) {
	storeBackends(t, func(t *testing.T, st store.Store) {
		ctx := context.Background()
		r := newTestRegistry(st)
		c := addCustomer(t, r, "john")

		last := day(2023, time.June, 1)
		added, err := r.AddAppliance(ctx, models.ApplianceFields{
			CustomerID:      c.ID,
			Type:            models.Refrigerator,
			Model:           "FreshCool X500",
			SerialNumber:    "FC500-123456",
			PurchaseDate:    day(2023, time.January, 20),
			LastServiceDate: &last,
			Notes:           "Premium model with ice maker",
		})
		require.NoError(t, err)

		got, ok, err := r.GetAppliance(ctx, added.ID)
		require.NoError(t, err)
		require.True(t, ok)
		assertSameAppliance(t, added, got)
		assert.Equal(t, day(2024, time.June, 1), got.NextServiceDate.UTC())
	})
}

func TestDefaultIntervalOnCreate(t *testing.T) {
	storeBackends(t, func(t *testing.T, st store.Store) {
		r := newTestRegistry(st)
		c := addCustomer(t, r, "john")

		for _, typ := range models.ApplianceTypes {
			a := addAppliance(t, r, c.ID, typ, day(2023, time.March, 30), 0)

			switch typ {
			case models.Microwave:
				assert.Equal(t, 24, a.ServiceIntervalMonths)
			case models.AirConditioner:
				assert.Equal(t, 6, a.ServiceIntervalMonths)
			default:
				assert.Equal(t, 12, a.ServiceIntervalMonths, typ)
			}
			assertIntervalInvariant(t, a)
		}

		explicit := addAppliance(t, r, c.ID, models.Microwave, day(2023, time.March, 30), 3)
		assert.Equal(t, 3, explicit.ServiceIntervalMonths)
		assert.Equal(t, day(2023, time.June, 30), explicit.NextServiceDate)
	})
}

func TestUpdateCustomer(t *testing.T) {
	storeBackends(t, func(t *testing.T, st store.Store) {
		ctx := context.Background()
		r := newTestRegistry(st)
		c := addCustomer(t, r, "john")

		edit := c
		edit.Name = "John Smith"
		edit.CreatedAt = day(1999, time.January, 1)
		updated, err := r.UpdateCustomer(ctx, edit)
		require.NoError(t, err)
		assert.Equal(t, "John Smith", updated.Name)
		assert.True(t, c.CreatedAt.Equal(updated.CreatedAt))

		got, _, err := r.GetCustomer(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, "John Smith", got.Name)
		assert.True(t, c.CreatedAt.Equal(got.CreatedAt))
	})
}

func TestUpdateUnknownCustomerIsNoop(t *testing.T) {
	storeBackends(t, func(t *testing.T, st store.Store) {
		ctx := context.Background()
		r := newTestRegistry(st)
		addCustomer(t, r, "john")
		before, err := r.ListCustomers(ctx)
		require.NoError(t, err)

		ghost := models.Customer{ID: uuid.New(), Name: "ghost"}
		returned, err := r.UpdateCustomer(ctx, ghost)
		require.NoError(t, err)
		assert.Equal(t, ghost, returned)

		after, err := r.ListCustomers(ctx)
		require.NoError(t, err)
		require.Len(t, after, len(before))
		assert.Equal(t, before[0].ID, after[0].ID)
		assert.Equal(t, before[0].Name, after[0].Name)
		_, ok, err := r.GetCustomer(ctx, ghost.ID)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestDeleteCustomerCascades(t *testing.T) {
	storeBackends(t, func(t *testing.T, st store.Store) {
		ctx := context.Background()
		r := newTestRegistry(st)
		john := addCustomer(t, r, "john")
		emily := addCustomer(t, r, "emily")
		j1 := addAppliance(t, r, john.ID, models.Refrigerator, day(2023, time.January, 20), 0)
		j2 := addAppliance(t, r, john.ID, models.WashingMachine, day(2023, time.January, 25), 0)
		e1 := addAppliance(t, r, emily.ID, models.Dishwasher, day(2023, time.February, 22), 0)

		removed, err := r.DeleteCustomer(ctx, john.ID)
		require.NoError(t, err)
		assert.True(t, removed)

		appliances, err := r.ListAppliances(ctx)
		require.NoError(t, err)
		require.Len(t, appliances, 1)
		assert.Equal(t, e1.ID, appliances[0].ID)
		for _, id := range []uuid.UUID{j1.ID, j2.ID} {
			_, ok, err := r.GetAppliance(ctx, id)
			require.NoError(t, err)
			assert.False(t, ok)
		}

		removed, err = r.DeleteCustomer(ctx, john.ID)
		require.NoError(t, err)
		assert.False(t, removed)
	})
}

func TestUpdateApplianceRecomputesNextServiceDate(t *testing.T) {
	storeBackends(t, func(t *testing.T, st store.Store) {
		ctx := context.Background()
		r := newTestRegistry(st)
		c := addCustomer(t, r, "john")
		a := addAppliance(t, r, c.ID, models.Refrigerator, day(2023, time.January, 20), 0)

		a.ServiceIntervalMonths = 6
		a.NextServiceDate = day(2030, time.January, 1)
		updated, err := r.UpdateAppliance(ctx, a)
		require.NoError(t, err)
		assert.Equal(t, day(2023, time.July, 20), updated.NextServiceDate)
		assertIntervalInvariant(t, updated)

		stored, _, err := r.GetAppliance(ctx, a.ID)
		require.NoError(t, err)
		assertSameAppliance(t, updated, stored)

		stored.Type = models.AirConditioner
		stored.ServiceIntervalMonths = 0
		updated, err = r.UpdateAppliance(ctx, stored)
		require.NoError(t, err)
		assert.Equal(t, 6, updated.ServiceIntervalMonths)
	})
}

func TestUpdateUnknownApplianceIsNoop(t *testing.T) {
	storeBackends(t, func(t *testing.T, st store.Store) {
		ctx := context.Background()
		r := newTestRegistry(st)
		c := addCustomer(t, r, "john")
		addAppliance(t, r, c.ID, models.Oven, day(2023, time.March, 30), 0)

		ghost := models.Appliance{
			ID:           uuid.New(),
			CustomerID:   c.ID,
			Type:         models.Oven,
			PurchaseDate: day(2023, time.March, 30),
		}
		returned, err := r.UpdateAppliance(ctx, ghost)
		require.NoError(t, err)
		assert.Equal(t, day(2024, time.March, 30), returned.NextServiceDate)

		appliances, err := r.ListAppliances(ctx)
		require.NoError(t, err)
		assert.Len(t, appliances, 1)
	})
}

func TestRecordService(t *testing.T) {
	storeBackends(t, func(t *testing.T, st store.Store) {
		ctx := context.Background()
		r := newTestRegistry(st)
		c := addCustomer(t, r, "john")
		a := addAppliance(t, r, c.ID, models.Refrigerator, day(2023, time.January, 20), 12)
		require.Equal(t, day(2024, time.January, 20), a.NextServiceDate)

		serviced, ok, err := r.RecordService(ctx, a.ID, day(2024, time.June, 15))
		require.NoError(t, err)
		require.True(t, ok)
		require.NotNil(t, serviced.LastServiceDate)
		assert.Equal(t, day(2024, time.June, 15), *serviced.LastServiceDate)
		assert.Equal(t, day(2025, time.June, 15), serviced.NextServiceDate)

		stored, _, err := r.GetAppliance(ctx, a.ID)
		require.NoError(t, err)
		assertSameAppliance(t, serviced, stored)

		_, ok, err = r.RecordService(ctx, uuid.New(), day(2024, time.June, 15))
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestDeleteAppliance(t *testing.T) {
	storeBackends(t, func(t *testing.T, st store.Store) {
		ctx := context.Background()
		r := newTestRegistry(st)
		c := addCustomer(t, r, "john")
		a := addAppliance(t, r, c.ID, models.Dryer, day(2023, time.May, 1), 0)

		removed, err := r.DeleteAppliance(ctx, a.ID)
		require.NoError(t, err)
		assert.True(t, removed)

		removed, err = r.DeleteAppliance(ctx, a.ID)
		require.NoError(t, err)
		assert.False(t, removed)

		forCustomer, err := r.ListAppliancesForCustomer(ctx, c.ID)
		require.NoError(t, err)
		assert.Empty(t, forCustomer)
	})
}

func TestRegistryNormalizesToLocation(t *testing.T) {
	ctx := context.Background()
	loc := time.FixedZone("UTC-5", -5*60*60)
	r := NewRegistry(store.NewMemory(), WithClock(&fakeClock{now: clockStart}), WithLocation(loc))
	c := addCustomer(t, r, "john")
	assert.Equal(t, loc, c.CreatedAt.Location())

	// 2023-02-01T02:00Z is still January 31st in UTC-5
	a := addAppliance(t, r, c.ID, models.Refrigerator, time.Date(2023, time.February, 1, 2, 0, 0, 0, time.UTC), 1)
	assert.Equal(t, time.Date(2023, time.February, 28, 21, 0, 0, 0, loc), a.NextServiceDate)

	got, _, err := r.GetAppliance(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, loc, got.PurchaseDate.Location())
}

func TestApplianceTypes(t *testing.T) {
	r := NewRegistry(store.NewMemory())

	types := r.ApplianceTypes()
	require.Len(t, types, len(models.ApplianceTypes))
	assert.Equal(t, models.ApplianceTypeInfo{Type: models.Refrigerator, DefaultInterval: 12}, types[0])
	assert.Contains(t, types, models.ApplianceTypeInfo{Type: models.Microwave, DefaultInterval: 24})
	assert.Contains(t, types, models.ApplianceTypeInfo{Type: models.AirConditioner, DefaultInterval: 6})
}

func TestSettings(t *testing.T) {
	r := NewRegistry(store.NewMemory())
	assert.Equal(t, models.DefaultNotificationSettings(), r.Settings())

	updated, err := r.UpdateSettings(models.NotificationSettings{EmailNotifications: false, ReminderDays: 3, DailyDigest: true})
	require.NoError(t, err)
	assert.Equal(t, updated, r.Settings())

	_, err = r.UpdateSettings(models.NotificationSettings{ReminderDays: 0})
	assert.ErrorIs(t, err, ErrInvalidSettings)
	assert.Equal(t, 3, r.Settings().ReminderDays)
}
