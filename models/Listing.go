package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Listing struct {
	gorm.Model
	HostID        string   `json:"hostID" gorm:"type:varchar(36);index"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	PricePerMonth float64  `json:"pricePerMonth"`
	Currency      string   `json:"currency" gorm:"type:varchar(8);default:'USD'"`
	IsActive      *bool    `json:"isActive"`

	// Advisory reservation lock. Overwritten with the session token of the
	// most recent reservation attempt; last writer wins, never released.
	LockToken *string `json:"-" gorm:"column:lock_token;type:varchar(64)"`

	// Free-form listing attributes (bedrooms, amenities, house rules, ...)
	Attributes datatypes.JSON `json:"attributes" gorm:"type:jsonb"`

	Fees         []ListingFee  `json:"fees,omitempty" gorm:"foreignKey:ListingID"`
	Reservations []Reservation `json:"reservations,omitempty" gorm:"foreignKey:ListingID"`
}
