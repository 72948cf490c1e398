package models

import (
	"time"

	"github.com/google/uuid"
)

type Customer struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name    string    `gorm:"not null" json:"name"`
	Email   string    `json:"email"`
	Phone   string    `json:"phone"`
	Address string    `json:"address"`

	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
}

// CustomerFields is everything a caller supplies when creating a customer.
type CustomerFields struct {
	Name    string
	Email   string
	Phone   string
	Address string
}
