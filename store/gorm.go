package store

import (
	"context"
	"time"

	"servicetrack-backend/models"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var _ Store = (*Gorm)(nil)

// Gorm stores records in a SQLite database opened by config.OpenDatabase.
// Insertion order is SQLite's rowid, which updates leave untouched.
type Gorm struct {
	db  *gorm.DB
	loc *time.Location
}

// NewGorm migrates the schema. Timestamps read back are converted to loc.
func NewGorm(db *gorm.DB, loc *time.Location) (*Gorm, error) {
	if loc == nil {
		loc = time.UTC
	}
	if err := db.AutoMigrate(&models.Customer{}, &models.Appliance{}); err != nil {
		return nil, errors.Wrap(err, "migrate schema")
	}
	return &Gorm{db: db, loc: loc}, nil
}

func (s *Gorm) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	customers := []models.Customer{}
	if err := s.db.WithContext(ctx).Order("rowid").Find(&customers).Error; err != nil {
		return nil, errors.Wrap(err, "list customers")
	}
	for i := range customers {
		s.localizeCustomer(&customers[i])
	}
	return customers, nil
}

func (s *Gorm) GetCustomer(ctx context.Context, id uuid.UUID) (models.Customer, bool, error) {
	var customer models.Customer
	if err := s.db.WithContext(ctx).Where("id = ?", id).Take(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Customer{}, false, nil
		}
		return models.Customer{}, false, errors.Wrapf(err, "get customer %s", id)
	}
	s.localizeCustomer(&customer)
	return customer, true, nil
}

func (s *Gorm) ListAppliances(ctx context.Context) ([]models.Appliance, error) {
	return s.findAppliances(s.db.WithContext(ctx))
}

func (s *Gorm) GetAppliance(ctx context.Context, id uuid.UUID) (models.Appliance, bool, error) {
	var appliance models.Appliance
	if err := s.db.WithContext(ctx).Where("id = ?", id).Take(&appliance).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Appliance{}, false, nil
		}
		return models.Appliance{}, false, errors.Wrapf(err, "get appliance %s", id)
	}
	s.localizeAppliance(&appliance)
	return appliance, true, nil
}

func (s *Gorm) ListAppliancesForCustomer(ctx context.Context, customerID uuid.UUID) ([]models.Appliance, error) {
	return s.findAppliances(s.db.WithContext(ctx).Where("customer_id = ?", customerID))
}

func (s *Gorm) InsertCustomer(ctx context.Context, c models.Customer) error {
	if err := s.db.WithContext(ctx).Create(&c).Error; err != nil {
		return errors.Wrap(err, "insert customer")
	}
	return nil
}

func (s *Gorm) ReplaceCustomer(ctx context.Context, c models.Customer) (bool, error) {
	result := s.db.WithContext(ctx).Model(&models.Customer{ID: c.ID}).Select("*").Updates(c)
	if result.Error != nil {
		return false, errors.Wrapf(result.Error, "replace customer %s", c.ID)
	}
	return result.RowsAffected > 0, nil
}

func (s *Gorm) RemoveCustomer(ctx context.Context, id uuid.UUID) (bool, error) {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Customer{})
	if result.Error != nil {
		return false, errors.Wrapf(result.Error, "remove customer %s", id)
	}
	return result.RowsAffected > 0, nil
}

func (s *Gorm) InsertAppliance(ctx context.Context, a models.Appliance) error {
	if err := s.db.WithContext(ctx).Create(&a).Error; err != nil {
		return errors.Wrap(err, "insert appliance")
	}
	return nil
}

func (s *Gorm) ReplaceAppliance(ctx context.Context, a models.Appliance) (bool, error) {
	result := s.db.WithContext(ctx).Model(&models.Appliance{ID: a.ID}).Select("*").Updates(a)
	if result.Error != nil {
		return false, errors.Wrapf(result.Error, "replace appliance %s", a.ID)
	}
	return result.RowsAffected > 0, nil
}

func (s *Gorm) RemoveAppliance(ctx context.Context, id uuid.UUID) (bool, error) {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Appliance{})
	if result.Error != nil {
		return false, errors.Wrapf(result.Error, "remove appliance %s", id)
	}
	return result.RowsAffected > 0, nil
}

func (s *Gorm) RemoveAppliancesForCustomer(ctx context.Context, customerID uuid.UUID) (int, error) {
	result := s.db.WithContext(ctx).Where("customer_id = ?", customerID).Delete(&models.Appliance{})
	if result.Error != nil {
		return 0, errors.Wrapf(result.Error, "remove appliances of customer %s", customerID)
	}
	return int(result.RowsAffected), nil
}

func (s *Gorm) Atomic(ctx context.Context, fn func(Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Gorm{db: tx, loc: s.loc})
	})
}

func (s *Gorm) findAppliances(query *gorm.DB) ([]models.Appliance, error) {
	appliances := []models.Appliance{}
	if err := query.Order("rowid").Find(&appliances).Error; err != nil {
		return nil, errors.Wrap(err, "list appliances")
	}
	for i := range appliances {
		s.localizeAppliance(&appliances[i])
	}
	return appliances, nil
}

func (s *Gorm) localizeCustomer(c *models.Customer) {
	c.CreatedAt = c.CreatedAt.In(s.loc)
}

func (s *Gorm) localizeAppliance(a *models.Appliance) {
	a.PurchaseDate = a.PurchaseDate.In(s.loc)
	a.NextServiceDate = a.NextServiceDate.In(s.loc)
	if a.LastServiceDate != nil {
		last := a.LastServiceDate.In(s.loc)
		a.LastServiceDate = &last
	}
}
