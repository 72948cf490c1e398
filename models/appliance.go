package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type ApplianceType string

const (
	Refrigerator   ApplianceType = "Refrigerator"
	WashingMachine ApplianceType = "Washing Machine"
	Dryer          ApplianceType = "Dryer"
	Dishwasher     ApplianceType = "Dishwasher"
	Oven           ApplianceType = "Oven"
	Microwave      ApplianceType = "Microwave"
	AirConditioner ApplianceType = "Air Conditioner"
	WaterHeater    ApplianceType = "Water Heater"
	OtherAppliance ApplianceType = "Other"
)

// ApplianceTypes lists every appliance type in display order.
var ApplianceTypes = []ApplianceType{
	Refrigerator,
	WashingMachine,
	Dryer,
	Dishwasher,
	Oven,
	Microwave,
	AirConditioner,
	WaterHeater,
	OtherAppliance,
}

// ParseApplianceType accepts only the display names listed in ApplianceTypes.
func ParseApplianceType(s string) (ApplianceType, error) {
	if t := ApplianceType(s); t.Valid() {
		return t, nil
	}
	return "", fmt.Errorf("unknown appliance type %q", s)
}

func (t ApplianceType) Valid() bool {
	for _, known := range ApplianceTypes {
		if t == known {
			return true
		}
	}
	return false
}

// DefaultInterval is the service interval in months used when none is given.
func (t ApplianceType) DefaultInterval() int {
	switch t {
	case Microwave:
		return 24
	case AirConditioner:
		return 6
	case Refrigerator, WashingMachine, Dryer, Dishwasher, Oven, WaterHeater, OtherAppliance:
		return 12
	default:
		return 12
	}
}

func (t *ApplianceType) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseApplianceType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

type ApplianceTypeInfo struct {
	Type            ApplianceType `json:"type"`
	DefaultInterval int           `json:"defaultInterval"`
}

type Appliance struct {
	ID           uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	CustomerID   uuid.UUID     `gorm:"type:uuid;index;not null" json:"customerId"`
	Type         ApplianceType `gorm:"type:varchar(32);not null" json:"type"`
	Model        string        `gorm:"not null" json:"model"`
	SerialNumber string        `gorm:"not null" json:"serialNumber"`

	PurchaseDate          time.Time  `gorm:"not null" json:"purchaseDate"`
	LastServiceDate       *time.Time `json:"lastServiceDate"`
	ServiceIntervalMonths int        `gorm:"not null" json:"serviceIntervalMonths"`
	NextServiceDate       time.Time  `gorm:"not null;index" json:"nextServiceDate"`

	Notes string `json:"notes"`
}

// Clone returns a copy that shares no memory with a.
func (a Appliance) Clone() Appliance {
	if a.LastServiceDate != nil {
		last := *a.LastServiceDate
		a.LastServiceDate = &last
	}
	return a
}

// ApplianceFields is everything a caller supplies when creating an appliance.
// ServiceIntervalMonths <= 0 selects the type's default.
type ApplianceFields struct {
	CustomerID            uuid.UUID
	Type                  ApplianceType
	Model                 string
	SerialNumber          string
	PurchaseDate          time.Time
	LastServiceDate       *time.Time
	ServiceIntervalMonths int
	Notes                 string
}
