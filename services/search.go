package services

import (
	"context"
	"strings"

	"servicetrack-backend/models"
)

// ApplianceFilter narrows ListAppliances. Query matches model, serial number
// or type case-insensitively; an empty Type matches every type.
type ApplianceFilter struct {
	Query string
	Type  models.ApplianceType
}

func containsFold(field, query string) bool {
	return strings.Contains(strings.ToLower(field), query)
}

// SearchCustomers returns customers whose name, email, phone or address
// contains query, ignoring case. A blank query returns every customer.
func (r *Registry) SearchCustomers(ctx context.Context, query string) ([]models.Customer, error) {
	customers, err := r.ListCustomers(ctx)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return customers, nil
	}

	matched := []models.Customer{}
	for _, c := range customers {
		if containsFold(c.Name, q) || containsFold(c.Email, q) || containsFold(c.Phone, q) || containsFold(c.Address, q) {
			matched = append(matched, c)
		}
	}
	return matched, nil
}

func (r *Registry) SearchAppliances(ctx context.Context, filter ApplianceFilter) ([]models.Appliance, error) {
	appliances, err := r.ListAppliances(ctx)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(filter.Query))
	if q == "" && filter.Type == "" {
		return appliances, nil
	}

	matched := []models.Appliance{}
	for _, a := range appliances {
		if filter.Type != "" && a.Type != filter.Type {
			continue
		}
		if q != "" && !containsFold(a.Model, q) && !containsFold(a.SerialNumber, q) && !containsFold(string(a.Type), q) {
			continue
		}
		matched = append(matched, a)
	}
	return matched, nil
}
