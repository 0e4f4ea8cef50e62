package models

import "gorm.io/gorm"

// ListingFee is a nightly surcharge on a listing. Flat fees (PerGuest false)
// are charged once per night; per-guest fees are multiplied by the guest count.
type ListingFee struct {
	gorm.Model
	ListingID uint    `json:"listingID" gorm:"not null;index"`
	Name      string  `json:"name"`
	Amount    float64 `json:"amount" gorm:"not null"`
	PerGuest  bool    `json:"perGuest" gorm:"default:false"`
}
