package services

import (
	"time"

	"listing-reservations-server/models"

	"gorm.io/gorm"
)

// AvailabilityChecker answers whether a listing is free for a date range by
// counting overlapping reservations. An optional reservation id can be
// excluded, e.g. when re-checking during a modification flow.
type AvailabilityChecker struct {
	db *gorm.DB
}

func NewAvailabilityChecker(db *gorm.DB) *AvailabilityChecker {
	return &AvailabilityChecker{db: db}
}

func (c *AvailabilityChecker) IsAvailable(listingID uint, fromDate, toDate time.Time, excludeReservation *uint) (bool, error) {
	query := c.db.Model(&models.Reservation{}).
		Where("listing_id = ? AND from_date < ? AND to_date > ?", listingID, toDate, fromDate)

	if excludeReservation != nil {
		query = query.Where("id <> ?", *excludeReservation)
	}

	var conflicts int64
	if err := query.Count(&conflicts).Error; err != nil {
		return false, err
	}

	return conflicts == 0, nil
}
