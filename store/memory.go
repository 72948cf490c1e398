package store

import (
	"context"

	"servicetrack-backend/models"

	"github.com/google/uuid"
)

var _ Store = (*Memory)(nil)

// Memory keeps records in insertion order. It is not safe for concurrent use;
// services.Registry serializes access.
type Memory struct {
	customers  []models.Customer
	appliances []models.Appliance
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	out := make([]models.Customer, len(m.customers))
	copy(out, m.customers)
	return out, nil
}

func (m *Memory) GetCustomer(ctx context.Context, id uuid.UUID) (models.Customer, bool, error) {
	if i := m.customerIndex(id); i >= 0 {
		return m.customers[i], true, nil
	}
	return models.Customer{}, false, nil
}

func (m *Memory) ListAppliances(ctx context.Context) ([]models.Appliance, error) {
	out := make([]models.Appliance, 0, len(m.appliances))
	for _, a := range m.appliances {
		out = append(out, a.Clone())
	}
	return out, nil
}

func (m *Memory) GetAppliance(ctx context.Context, id uuid.UUID) (models.Appliance, bool, error) {
	if i := m.applianceIndex(id); i >= 0 {
		return m.appliances[i].Clone(), true, nil
	}
	return models.Appliance{}, false, nil
}

func (m *Memory) ListAppliancesForCustomer(ctx context.Context, customerID uuid.UUID) ([]models.Appliance, error) {
	out := []models.Appliance{}
	for _, a := range m.appliances {
		if a.CustomerID == customerID {
			out = append(out, a.Clone())
		}
	}
	return out, nil
}

func (m *Memory) InsertCustomer(ctx context.Context, c models.Customer) error {
	m.customers = append(m.customers, c)
	return nil
}

func (m *Memory) ReplaceCustomer(ctx context.Context, c models.Customer) (bool, error) {
	i := m.customerIndex(c.ID)
	if i < 0 {
		return false, nil
	}
	m.customers[i] = c
	return true, nil
}

func (m *Memory) RemoveCustomer(ctx context.Context, id uuid.UUID) (bool, error) {
	i := m.customerIndex(id)
	if i < 0 {
		return false, nil
	}
	m.customers = append(m.customers[:i:i], m.customers[i+1:]...)
	return true, nil
}

func (m *Memory) InsertAppliance(ctx context.Context, a models.Appliance) error {
	m.appliances = append(m.appliances, a.Clone())
	return nil
}

func (m *Memory) ReplaceAppliance(ctx context.Context, a models.Appliance) (bool, error) {
	i := m.applianceIndex(a.ID)
	if i < 0 {
		return false, nil
	}
	m.appliances[i] = a.Clone()
	return true, nil
}

func (m *Memory) RemoveAppliance(ctx context.Context, id uuid.UUID) (bool, error) {
	i := m.applianceIndex(id)
	if i < 0 {
		return false, nil
	}
	m.appliances = append(m.appliances[:i:i], m.appliances[i+1:]...)
	return true, nil
}

func (m *Memory) RemoveAppliancesForCustomer(ctx context.Context, customerID uuid.UUID) (int, error) {
	kept := make([]models.Appliance, 0, len(m.appliances))
	for _, a := range m.appliances {
		if a.CustomerID != customerID {
			kept = append(kept, a)
		}
	}
	removed := len(m.appliances) - len(kept)
	m.appliances = kept
	return removed, nil
}

// Atomic restores the previous collections when fn fails.
func (m *Memory) Atomic(ctx context.Context, fn func(Store) error) error {
	customers := append([]models.Customer(nil), m.customers...)
	appliances := append([]models.Appliance(nil), m.appliances...)
	if err := fn(m); err != nil {
		m.customers = customers
		m.appliances = appliances
		return err
	}
	return nil
}

func (m *Memory) customerIndex(id uuid.UUID) int {
	for i, c := range m.customers {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func (m *Memory) applianceIndex(id uuid.UUID) int {
	for i, a := range m.appliances {
		if a.ID == id {
			return i
		}
	}
	return -1
}
