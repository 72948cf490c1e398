package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultInterval(t *testing.T) {
	want := map[ApplianceType]int{
		Refrigerator:   12,
		WashingMachine: 12,
		Dryer:          12,
		Dishwasher:     12,
		Oven:           12,
		Microwave:      24,
		AirConditioner: 6,
		WaterHeater:    12,
		OtherAppliance: 12,
	}
	require.Len(t, ApplianceTypes, len(want))
	for _, typ := range ApplianceTypes {
		assert.Equal(t, want[typ], typ.DefaultInterval(), typ)
	}
}

func TestParseApplianceType(t *testing.T) {
	typ, err := ParseApplianceType("Air Conditioner")
	require.NoError(t, err)
	assert.Equal(t, AirConditioner, typ)
	assert.True(t, typ.Valid())

	_, err = ParseApplianceType("air conditioner")
	assert.Error(t, err)
	assert.False(t, ApplianceType("Toaster").Valid())
	assert.False(t, ApplianceType("").Valid())
	for _, known := range ApplianceTypes {
		assert.True(t, known.Valid(), known)
	}
}

func TestApplianceTypeJSON(t *testing.T) {
	var payload struct {
		Type ApplianceType `json:"type"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"type":"Washing Machine"}`), &payload))
	assert.Equal(t, WashingMachine, payload.Type)

	out, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"Washing Machine"}`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"type":"Toaster"}`), &payload))
}

func TestApplianceCloneDetachesLastServiceDate(t *testing.T) {
	last := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)
	a := Appliance{LastServiceDate: &last}

	clone := a.Clone()
	*clone.LastServiceDate = clone.LastServiceDate.AddDate(1, 0, 0)

	assert.Equal(t, time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC), *a.LastServiceDate)
}
