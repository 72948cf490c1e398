// Package store holds the canonical customer and appliance collections.
//
// A Store does no validation and no derived computation. Every value it hands
// out is a copy, so callers cannot reach its internal state. Writes are only
// issued by services.Registry, which also keeps nextServiceDate consistent.
package store

import (
	"context"

	"servicetrack-backend/models"

	"github.com/google/uuid"
)

type Store interface {
	ListCustomers(ctx context.Context) ([]models.Customer, error)
	GetCustomer(ctx context.Context, id uuid.UUID) (models.Customer, bool, error)
	ListAppliances(ctx context.Context) ([]models.Appliance, error)
	GetAppliance(ctx context.Context, id uuid.UUID) (models.Appliance, bool, error)
	ListAppliancesForCustomer(ctx context.Context, customerID uuid.UUID) ([]models.Appliance, error)

	InsertCustomer(ctx context.Context, c models.Customer) error
	// ReplaceCustomer reports whether a record with c.ID existed.
	ReplaceCustomer(ctx context.Context, c models.Customer) (bool, error)
	RemoveCustomer(ctx context.Context, id uuid.UUID) (bool, error)

	InsertAppliance(ctx context.Context, a models.Appliance) error
	ReplaceAppliance(ctx context.Context, a models.Appliance) (bool, error)
	RemoveAppliance(ctx context.Context, id uuid.UUID) (bool, error)
	RemoveAppliancesForCustomer(ctx context.Context, customerID uuid.UUID) (int, error)

	// Atomic runs fn against a Store whose writes all apply or, when fn
	// returns an error, none do.
	Atomic(ctx context.Context, fn func(Store) error) error
}
