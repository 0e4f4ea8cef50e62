package routes

import (
	"strings"
	"testing"

	"listing-reservations-server/models"
	"listing-reservations-server/storage"

	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB points storage.DB at a fresh in-memory sqlite database named
// after the test, so tests don't see each other's rows.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	storage.PerformMigrations(db)
	storage.DB = db
	return db
}

// buildReservationTestApp mounts the reservation and listing routes without
// auth middleware; auth behavior has its own test.
func buildReservationTestApp(t *testing.T) *iris.Application {
	t.Helper()
	setupTestDB(t)

	app := iris.New()
	app.Validator = validator.New()

	app.Post("/api/reservations", CreateReservation)
	app.Get("/api/reservations/{id:uint}", GetReservation)
	app.Get("/api/listings/{id:uint}", GetListing)
	app.Post("/api/listings/{id:uint}/quote", QuoteListing)
	app.Get("/api/listings/{id:uint}/reservations", GetReservationsByListingID)

	if err := app.Build(); err != nil {
		t.Fatalf("failed to build app: %v", err)
	}
	return app
}

func createTestListing(t *testing.T, pricePerMonth float64) *models.Listing {
	t.Helper()

	active := true
	listing := models.Listing{
		HostID:        "5b8d0fbd-9d6e-4f38-a171-bbcea40a8f21",
		Title:         "Loft by the harbor",
		PricePerMonth: pricePerMonth,
		Currency:      "USD",
		IsActive:      &active,
	}
	if err := storage.DB.Create(&listing).Error; err != nil {
		t.Fatalf("failed to create listing: %v", err)
	}
	return &listing
}

func createTestFee(t *testing.T, listingID uint, name string, amount float64, perGuest bool) {
	t.Helper()

	fee := models.ListingFee{ListingID: listingID, Name: name, Amount: amount, PerGuest: perGuest}
	if err := storage.DB.Create(&fee).Error; err != nil {
		t.Fatalf("failed to create fee: %v", err)
	}
}
