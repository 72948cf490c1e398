// services/reminder.go
package services

import (
	"context"
	"fmt"
	"time"

	"servicetrack-backend/models"
	"servicetrack-backend/utils"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

const reminderWindowDays = 7

// DataIntegrityError means an appliance references a customer that no longer
// exists. Cascade delete rules this out, so it signals corrupted state.
type DataIntegrityError struct {
	ApplianceID uuid.UUID
	CustomerID  uuid.UUID
}

func (e *DataIntegrityError) Error() string {
	return fmt.Sprintf("customer %s not found for appliance %s", e.CustomerID, e.ApplianceID)
}

// ReminderWindow returns the exclusive bounds of the upcoming-service window:
// the start of now's day and the end of the day a week later.
func ReminderWindow(now time.Time) (from, to time.Time) {
	from = utils.BeginningOfDay(now)
	to = utils.EndOfDay(from.AddDate(0, 0, reminderWindowDays))
	return from, to
}

// UpcomingReminders lists a pending reminder for every appliance due strictly
// inside ReminderWindow(now), in appliance insertion order. It returns a
// *DataIntegrityError, and no reminders, when a due appliance has no customer.
func (r *Registry) UpcomingReminders(ctx context.Context, now time.Time) ([]models.ServiceReminder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.upcomingReminders(ctx, now)
}

func (r *Registry) upcomingReminders(ctx context.Context, now time.Time) ([]models.ServiceReminder, error) {
	appliances, err := r.store.ListAppliances(ctx)
	if err != nil {
		return nil, err
	}
	return r.remindersFor(ctx, appliances, now.In(r.loc))
}

func (r *Registry) remindersFor(ctx context.Context, appliances []models.Appliance, now time.Time) ([]models.ServiceReminder, error) {
	from, to := ReminderWindow(now)
	reminders := []models.ServiceReminder{}
	for _, appliance := range appliances {
		due := appliance.NextServiceDate
		if !due.After(from) || !due.Before(to) {
			continue
		}

		customer, ok, err := r.store.GetCustomer(ctx, appliance.CustomerID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, &DataIntegrityError{ApplianceID: appliance.ID, CustomerID: appliance.CustomerID}
		}

		reminders = append(reminders, models.ServiceReminder{
			ID:           ulid.Make().String(),
			ApplianceID:  appliance.ID,
			CustomerID:   appliance.CustomerID,
			DueDate:      due,
			DaysUntilDue: utils.DaysBetween(now, due),
			Status:       models.ReminderPending,
			Appliance:    appliance,
			Customer:     customer,
		})
	}
	return reminders, nil
}

// Stats summarizes the registry for the dashboard. Overdue appliances are
// those due before the start of now's day.
func (r *Registry) Stats(ctx context.Context, now time.Time) (models.DashboardStats, error) {
	stats, _, err := r.Overview(ctx, now)
	return stats, err
}

// Overview returns the dashboard stats together with the reminders they
// count, read from a single snapshot of the store.
func (r *Registry) Overview(ctx context.Context, now time.Time) (models.DashboardStats, []models.ServiceReminder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	customers, err := r.store.ListCustomers(ctx)
	if err != nil {
		return models.DashboardStats{}, nil, err
	}
	appliances, err := r.store.ListAppliances(ctx)
	if err != nil {
		return models.DashboardStats{}, nil, err
	}

	now = now.In(r.loc)
	reminders, err := r.remindersFor(ctx, appliances, now)
	if err != nil {
		return models.DashboardStats{}, nil, err
	}

	today := utils.BeginningOfDay(now)
	overdue := 0
	for _, a := range appliances {
		if a.NextServiceDate.Before(today) {
			overdue++
		}
	}

	return models.DashboardStats{
		TotalCustomers:   len(customers),
		TotalAppliances:  len(appliances),
		UpcomingServices: len(reminders),
		OverdueServices:  overdue,
	}, reminders, nil
}

// CheckIntegrity returns every appliance whose customer is missing.
func (r *Registry) CheckIntegrity(ctx context.Context) ([]models.Appliance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	customers, err := r.store.ListCustomers(ctx)
	if err != nil {
		return nil, err
	}
	appliances, err := r.store.ListAppliances(ctx)
	if err != nil {
		return nil, err
	}

	live := make(map[uuid.UUID]struct{}, len(customers))
	for _, c := range customers {
		live[c.ID] = struct{}{}
	}
	var orphans []models.Appliance
	for _, a := range appliances {
		if _, ok := live[a.CustomerID]; !ok {
			orphans = append(orphans, a)
		}
	}
	return orphans, nil
}
