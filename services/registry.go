package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"servicetrack-backend/models"
	"servicetrack-backend/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrInvalidSettings = errors.New("reminderDays must be positive")

type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Registry is the only writer of a Store. Every operation runs under one
// mutex, and every appliance write re-derives NextServiceDate.
//
// Operations addressing an unknown id do not fail: updates are no-ops and
// deletes report false. Callers must check the results.
type Registry struct {
	mu       sync.Mutex
	store    store.Store
	clock    Clock
	loc      *time.Location
	log      *zap.Logger
	settings models.NotificationSettings
}

type Option func(*Registry)

func WithClock(c Clock) Option {
	return func(r *Registry) { r.clock = c }
}

// WithLocation sets the time zone that timestamps are normalized to and that
// day boundaries are computed in. Defaults to UTC.
func WithLocation(loc *time.Location) Option {
	return func(r *Registry) { r.loc = loc }
}

func WithLogger(log *zap.Logger) Option {
	return func(r *Registry) { r.log = log }
}

func NewRegistry(s store.Store, opts ...Option) *Registry {
	r := &Registry{
		store:    s,
		clock:    systemClock{},
		loc:      time.UTC,
		log:      zap.NewNop(),
		settings: models.DefaultNotificationSettings(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Now is the registry clock's current time in the registry's location.
func (r *Registry) Now() time.Time {
	return r.clock.Now().In(r.loc)
}

func (r *Registry) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.store.ListCustomers(ctx)
}

func (r *Registry) GetCustomer(ctx context.Context, id uuid.UUID) (models.Customer, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.store.GetCustomer(ctx, id)
}

func (r *Registry) ListAppliances(ctx context.Context) ([]models.Appliance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.store.ListAppliances(ctx)
}

func (r *Registry) GetAppliance(ctx context.Context, id uuid.UUID) (models.Appliance, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.store.GetAppliance(ctx, id)
}

func (r *Registry) ListAppliancesForCustomer(ctx context.Context, customerID uuid.UUID) ([]models.Appliance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.store.ListAppliancesForCustomer(ctx, customerID)
}

// AddCustomer does not check required fields; the HTTP layer does.
func (r *Registry) AddCustomer(ctx context.Context, fields models.CustomerFields) (models.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	customer := models.Customer{
		ID:        uuid.New(),
		Name:      fields.Name,
		Email:     fields.Email,
		Phone:     fields.Phone,
		Address:   fields.Address,
		CreatedAt: r.Now(),
	}
	if err := r.store.InsertCustomer(ctx, customer); err != nil {
		return models.Customer{}, err
	}

	r.log.Debug("customer added", zap.Stringer("customer_id", customer.ID))
	return customer, nil
}

// UpdateCustomer replaces the stored customer with the same id, keeping the
// stored CreatedAt. An unknown id leaves the store untouched and returns c.
func (r *Registry) UpdateCustomer(ctx context.Context, c models.Customer) (models.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok, err := r.store.GetCustomer(ctx, c.ID)
	if err != nil {
		return models.Customer{}, err
	}
	if !ok {
		r.log.Debug("update of unknown customer ignored", zap.Stringer("customer_id", c.ID))
		return c, nil
	}

	c.CreatedAt = existing.CreatedAt
	if _, err := r.store.ReplaceCustomer(ctx, c); err != nil {
		return models.Customer{}, err
	}

	r.log.Debug("customer updated", zap.Stringer("customer_id", c.ID))
	return c, nil
}

// DeleteCustomer removes the customer and all of its appliances in one step.
// It reports whether a customer was removed.
func (r *Registry) DeleteCustomer(ctx context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var removed bool
	var cascaded int
	err := r.store.Atomic(ctx, func(s store.Store) error {
		var err error
		if removed, err = s.RemoveCustomer(ctx, id); err != nil {
			return err
		}
		cascaded, err = s.RemoveAppliancesForCustomer(ctx, id)
		return err
	})
	if err != nil {
		return false, err
	}

	r.log.Debug("customer deleted",
		zap.Stringer("customer_id", id),
		zap.Bool("removed", removed),
		zap.Int("appliances_removed", cascaded),
	)
	return removed, nil
}

func (r *Registry) AddAppliance(ctx context.Context, fields models.ApplianceFields) (models.Appliance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	appliance := withNextServiceDate(r.localize(models.Appliance{
		ID:                    uuid.New(),
		CustomerID:            fields.CustomerID,
		Type:                  fields.Type,
		Model:                 fields.Model,
		SerialNumber:          fields.SerialNumber,
		PurchaseDate:          fields.PurchaseDate,
		LastServiceDate:       fields.LastServiceDate,
		ServiceIntervalMonths: fields.ServiceIntervalMonths,
		Notes:                 fields.Notes,
	}))
	if err := r.store.InsertAppliance(ctx, appliance); err != nil {
		return models.Appliance{}, err
	}

	r.log.Debug("appliance added",
		zap.Stringer("appliance_id", appliance.ID),
		zap.Time("next_service_date", appliance.NextServiceDate),
	)
	return appliance, nil
}

// UpdateAppliance recomputes NextServiceDate, ignoring the caller's value,
// and replaces the stored appliance with the same id. An unknown id leaves the
// store untouched and returns the recomputed appliance.
func (r *Registry) UpdateAppliance(ctx context.Context, a models.Appliance) (models.Appliance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.updateAppliance(ctx, a)
}

func (r *Registry) updateAppliance(ctx context.Context, a models.Appliance) (models.Appliance, error) {
	a = withNextServiceDate(r.localize(a))

	ok, err := r.store.ReplaceAppliance(ctx, a)
	if err != nil {
		return models.Appliance{}, err
	}
	if !ok {
		r.log.Debug("update of unknown appliance ignored", zap.Stringer("appliance_id", a.ID))
		return a, nil
	}

	r.log.Debug("appliance updated",
		zap.Stringer("appliance_id", a.ID),
		zap.Time("next_service_date", a.NextServiceDate),
	)
	return a, nil
}

func (r *Registry) DeleteAppliance(ctx context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed, err := r.store.RemoveAppliance(ctx, id)
	if err != nil {
		return false, err
	}
	r.log.Debug("appliance deleted", zap.Stringer("appliance_id", id), zap.Bool("removed", removed))
	return removed, nil
}

// RecordService stamps serviceDate as the last service and re-derives the
// next one from it. It reports false when the appliance does not exist.
func (r *Registry) RecordService(ctx context.Context, applianceID uuid.UUID, serviceDate time.Time) (models.Appliance, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	appliance, ok, err := r.store.GetAppliance(ctx, applianceID)
	if err != nil || !ok {
		return models.Appliance{}, false, err
	}

	appliance.LastServiceDate = &serviceDate
	updated, err := r.updateAppliance(ctx, appliance)
	if err != nil {
		return models.Appliance{}, false, err
	}
	return updated, true, nil
}

func (r *Registry) ApplianceTypes() []models.ApplianceTypeInfo {
	out := make([]models.ApplianceTypeInfo, 0, len(models.ApplianceTypes))
	for _, t := range models.ApplianceTypes {
		out = append(out, models.ApplianceTypeInfo{Type: t, DefaultInterval: DefaultInterval(t)})
	}
	return out
}

func (r *Registry) Settings() models.NotificationSettings {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.settings
}

func (r *Registry) UpdateSettings(s models.NotificationSettings) (models.NotificationSettings, error) {
	if s.ReminderDays <= 0 {
		return models.NotificationSettings{}, ErrInvalidSettings
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.settings = s
	return s, nil
}

// localize moves a's timestamps into the registry location and detaches
// LastServiceDate from the caller's pointer.
func (r *Registry) localize(a models.Appliance) models.Appliance {
	a.PurchaseDate = a.PurchaseDate.In(r.loc)
	if a.LastServiceDate != nil {
		last := a.LastServiceDate.In(r.loc)
		a.LastServiceDate = &last
	}
	return a
}
