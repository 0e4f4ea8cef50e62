package services

import (
	"testing"
	"time"

	"listing-reservations-server/models"
)

func date(day int) time.Time {
	return time.Date(2026, time.September, day, 0, 0, 0, 0, time.UTC)
}

func TestIsAvailable(t *testing.T) {
	db := openTestDB(t)
	checker := NewAvailabilityChecker(db)

	listing := models.Listing{Title: "Cabin", PricePerMonth: 1200}
	if err := db.Create(&listing).Error; err != nil {
		t.Fatalf("failed to create listing: %v", err)
	}

	existing := models.Reservation{
		ListingID:  listing.ID,
		RenterID:   "9e107d9d-3721-4a0e-b7a3-8f1c2d3e4f50",
		FromDate:   date(10),
		ToDate:     date(15),
		GuestCount: 2,
		Status:     models.ReservationStatusCheckout,
	}
	if err := db.Create(&existing).Error; err != nil {
		t.Fatalf("failed to create reservation: %v", err)
	}

	cases := []struct {
		name string
		from int
		to   int
		want bool
	}{
		{"before", 1, 10, true},
		{"after", 15, 20, true},
		{"overlaps start", 8, 12, false},
		{"overlaps end", 12, 20, false},
		{"contained", 11, 13, false},
		{"contains", 5, 20, false},
		{"exact", 10, 15, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := checker.IsAvailable(listing.ID, date(tc.from), date(tc.to), nil)
			if err != nil {
				t.Fatalf("IsAvailable failed: %v", err)
			}
			if got != tc.want {
				t.Fatalf("IsAvailable(%d..%d) = %v, want %v", tc.from, tc.to, got, tc.want)
			}
		})
	}
}

func TestIsAvailableExcludesReservation(t *testing.T) {
	db := openTestDB(t)
	checker := NewAvailabilityChecker(db)

	listing := models.Listing{Title: "Cabin", PricePerMonth: 1200}
	if err := db.Create(&listing).Error; err != nil {
		t.Fatalf("failed to create listing: %v", err)
	}

	existing := models.Reservation{
		ListingID: listing.ID,
		RenterID:  "9e107d9d-3721-4a0e-b7a3-8f1c2d3e4f50",
		FromDate:  date(10),
		ToDate:    date(15),
		Status:    models.ReservationStatusCheckout,
	}
	if err := db.Create(&existing).Error; err != nil {
		t.Fatalf("failed to create reservation: %v", err)
	}

	got, err := checker.IsAvailable(listing.ID, date(10), date(15), &existing.ID)
	if err != nil {
		t.Fatalf("IsAvailable failed: %v", err)
	}
	if !got {
		t.Fatalf("expected range to be available when its own reservation is excluded")
	}

	// Other listings are unaffected by the reservation.
	other := models.Listing{Title: "Other cabin", PricePerMonth: 900}
	if err := db.Create(&other).Error; err != nil {
		t.Fatalf("failed to create listing: %v", err)
	}
	got, err = checker.IsAvailable(other.ID, date(10), date(15), nil)
	if err != nil {
		t.Fatalf("IsAvailable failed: %v", err)
	}
	if !got {
		t.Fatalf("expected other listing to be available")
	}
}
