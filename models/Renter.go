package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Renter is the guest-side account. Identified by a UUID so reservation
// records can reference renters managed by an external identity provider.
type Renter struct {
	ID        string         `json:"ID" gorm:"type:varchar(36);primaryKey"`
	FirstName string         `json:"firstName"`
	LastName  string         `json:"lastName"`
	Email     string         `json:"email" gorm:"uniqueIndex"`
	Role      string         `json:"role" gorm:"type:varchar(20);default:'renter'"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	Reservations []Reservation `json:"reservations,omitempty" gorm:"foreignKey:RenterID"`
}

func (r *Renter) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
