package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

const (
	// ReservationStatusCheckout is the only status a reservation is created
	// with; payment capture moves it forward in a separate flow.
	ReservationStatusCheckout = "Checkout"
)

type Reservation struct {
	gorm.Model
	// ReservationNumber is assigned by the store when the row is created;
	// callers re-fetch the record to read it.
	ReservationNumber string    `json:"reservationNumber" gorm:"type:varchar(16);uniqueIndex"`
	SessionID         string    `json:"sessionID" gorm:"type:varchar(64)"`
	RenterID          string    `json:"renterID" gorm:"type:varchar(36);index"`
	ListingID         uint      `json:"listingID" gorm:"not null;index"`
	FromDate          time.Time `json:"fromDate"`
	ToDate            time.Time `json:"toDate"`
	GuestCount        int       `json:"guestCount"`
	Amount            float64   `json:"amount"`
	Status            string    `json:"status" gorm:"type:varchar(20)"`

	Listing *Listing `json:"listing,omitempty" gorm:"foreignKey:ListingID"`
}

// AfterCreate assigns the store-generated reservation number from the row id.
func (r *Reservation) AfterCreate(tx *gorm.DB) error {
	return tx.Model(&Reservation{}).Where("id = ?", r.ID).
		UpdateColumn("reservation_number", fmt.Sprintf("RES-%06d", r.ID)).Error
}
