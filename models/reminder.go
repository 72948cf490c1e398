package models

import (
	"time"

	"github.com/google/uuid"
)

type ReminderStatus string

const (
	ReminderPending   ReminderStatus = "pending"
	ReminderCompleted ReminderStatus = "completed"
	ReminderCancelled ReminderStatus = "cancelled"
)

// ServiceReminder is derived on every query and never stored. Appliance and
// Customer are snapshots taken at query time. DaysUntilDue counts calendar
// days from the query day to DueDate.
type ServiceReminder struct {
	ID           string         `json:"id"`
	ApplianceID  uuid.UUID      `json:"applianceId"`
	CustomerID   uuid.UUID      `json:"customerId"`
	DueDate      time.Time      `json:"dueDate"`
	DaysUntilDue int            `json:"daysUntilDue"`
	Status       ReminderStatus `json:"status"`

	Appliance Appliance `json:"appliance"`
	Customer  Customer  `json:"customer"`
}

type DashboardStats struct {
	TotalCustomers   int `json:"totalCustomers"`
	TotalAppliances  int `json:"totalAppliances"`
	UpcomingServices int `json:"upcomingServices"`
	OverdueServices  int `json:"overdueServices"`
}
