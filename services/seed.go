package services

import (
	"context"
	"fmt"
	"time"

	"servicetrack-backend/models"
)

type seedAppliance struct {
	customer     int
	kind         models.ApplianceType
	model        string
	serialNumber string
	purchased    string
	notes        string
}

var demoCustomers = []models.CustomerFields{
	{Name: "John Smith", Email: "john.smith@example.com", Phone: "555-123-4567", Address: "123 Main St, Anytown, CA 90210"},
	{Name: "Emily Johnson", Email: "emily.johnson@example.com", Phone: "555-987-6543", Address: "456 Oak Ave, Springfield, CA 90211"},
	{Name: "Michael Williams", Email: "michael.williams@example.com", Phone: "555-567-8901", Address: "789 Pine St, Riverdale, CA 90212"},
}

var demoAppliances = []seedAppliance{
	{0, models.Refrigerator, "FreshCool X500", "FC500-123456", "2023-01-20", "Premium model with ice maker"},
	{0, models.WashingMachine, "CleanWash 3000", "CW3000-789012", "2023-01-25", "Front-loading, energy efficient"},
	{1, models.Dishwasher, "SparkleWash Elite", "SWE-345678", "2023-02-22", "Ultra quiet model"},
	{2, models.AirConditioner, "CoolBreeze 5000", "CB5000-901234", "2023-03-30", "Split system for living room"},
	{2, models.Oven, "ChefPro Double Oven", "CP-DO-567890", "2023-03-30", "Double oven with convection"},
}

// SeedDemoData loads the sample customers and appliances through the
// registry, so every derived field is computed as for any other write.
func SeedDemoData(ctx context.Context, r *Registry) error {
	customers := make([]models.Customer, 0, len(demoCustomers))
	for _, fields := range demoCustomers {
		c, err := r.AddCustomer(ctx, fields)
		if err != nil {
			return fmt.Errorf("seed customer %q: %w", fields.Name, err)
		}
		customers = append(customers, c)
	}

	for _, s := range demoAppliances {
		purchased, err := time.Parse(time.DateOnly, s.purchased)
		if err != nil {
			return err
		}
		_, err = r.AddAppliance(ctx, models.ApplianceFields{
			CustomerID:   customers[s.customer].ID,
			Type:         s.kind,
			Model:        s.model,
			SerialNumber: s.serialNumber,
			PurchaseDate: purchased,
			Notes:        s.notes,
		})
		if err != nil {
			return fmt.Errorf("seed appliance %s: %w", s.serialNumber, err)
		}
	}
	return nil
}
