package services

import (
	"time"

	"servicetrack-backend/models"
	"servicetrack-backend/utils"
)

// ComputeNextServiceDate adds intervalMonths calendar months to baseDate,
// clamping the day to the end of a shorter target month.
func ComputeNextServiceDate(baseDate time.Time, intervalMonths int) time.Time {
	return utils.AddMonths(baseDate, intervalMonths)
}

// ResolveBaseDate is the last service date, or the purchase date for an
// appliance that was never serviced.
func ResolveBaseDate(a models.Appliance) time.Time {
	if a.LastServiceDate != nil {
		return *a.LastServiceDate
	}
	return a.PurchaseDate
}

func DefaultInterval(t models.ApplianceType) int {
	return t.DefaultInterval()
}

func resolveInterval(t models.ApplianceType, months int) int {
	if months > 0 {
		return months
	}
	return DefaultInterval(t)
}

// withNextServiceDate returns a with its interval resolved and
// NextServiceDate derived, discarding whatever value a carried.
func withNextServiceDate(a models.Appliance) models.Appliance {
	a.ServiceIntervalMonths = resolveInterval(a.Type, a.ServiceIntervalMonths)
	a.NextServiceDate = ComputeNextServiceDate(ResolveBaseDate(a), a.ServiceIntervalMonths)
	return a
}
