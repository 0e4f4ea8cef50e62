package routes

import (
	"encoding/json"
	"strconv"
	"time"

	"listing-reservations-server/models"
	"listing-reservations-server/services"
	"listing-reservations-server/storage"
	"listing-reservations-server/utils"

	"github.com/kataras/iris/v12"
	"gorm.io/datatypes"
)

type CreateListingInput struct {
	Title         string                 `json:"title" validate:"required,max=256"`
	Description   string                 `json:"description"`
	PricePerMonth float64                `json:"pricePerMonth" validate:"required,gt=0"`
	Currency      string                 `json:"currency" validate:"omitempty,len=3"`
	Attributes    map[string]interface{} `json:"attributes"`
}

type ListingFeeInput struct {
	Name     string  `json:"name" validate:"required,max=128"`
	Amount   float64 `json:"amount" validate:"required,gt=0"`
	PerGuest bool    `json:"perGuest"`
}

type QuoteInput struct {
	FromDate time.Time `json:"fromDate" validate:"required"`
	ToDate   time.Time `json:"toDate" validate:"required"`
	Guests   int       `json:"guests" validate:"required,gte=1,lte=16"`
}

func CreateListing(ctx iris.Context) {
	hostID := ctx.Values().Get("renterID").(string)

	var input CreateListingInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	active := true
	listing := models.Listing{
		HostID:        hostID,
		Title:         input.Title,
		Description:   input.Description,
		PricePerMonth: input.PricePerMonth,
		Currency:      input.Currency,
		IsActive:      &active,
	}

	if input.Attributes != nil {
		raw, err := json.Marshal(input.Attributes)
		if err == nil {
			listing.Attributes = datatypes.JSON(raw)
		}
	}

	if err := storage.DB.Create(&listing).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "listing.create", "listing", listing.ID, nil, listing)

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(listing)
}

func GetListing(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var listing models.Listing
	if err := storage.DB.Preload("Fees").First(&listing, id).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Listing not found", ctx)
		return
	}

	ctx.JSON(listing)
}

func AddListingFee(ctx iris.Context) {
	listingIDStr := ctx.Params().Get("id")
	listingID, err := strconv.ParseUint(listingIDStr, 10, 32)
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "Invalid listing ID", ctx)
		return
	}

	var input ListingFeeInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var listing models.Listing
	if err := storage.DB.First(&listing, listingID).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Listing not found", ctx)
		return
	}

	fee := models.ListingFee{
		ListingID: uint(listingID),
		Name:      input.Name,
		Amount:    input.Amount,
		PerGuest:  input.PerGuest,
	}

	if err := storage.DB.Create(&fee).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	// The fee schedule changed; the cached sums are stale.
	services.NewPricingService(storage.DB, storage.Redis).InvalidateFeeSums(uint(listingID))

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(fee)
}

func GetListingFees(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var fees []models.ListingFee
	res := storage.DB.Where("listing_id = ?", id).Order("created_at ASC").Find(&fees)

	if res.Error != nil {
		utils.JSONError(ctx, iris.StatusInternalServerError, "fees_fetch_failed", res.Error.Error())
		return
	}

	ctx.JSON(fees)
}

// QuoteListing prices a prospective stay without locking the listing or
// creating a reservation.
func QuoteListing(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var input QuoteInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if !input.FromDate.Before(input.ToDate) {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "fromDate must be before toDate", ctx)
		return
	}

	var listing models.Listing
	if err := storage.DB.First(&listing, id).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Listing not found", ctx)
		return
	}

	pricing := services.NewPricingService(storage.DB, storage.Redis)
	quote, err := pricing.QuoteReservation(&listing, input.FromDate, input.ToDate, input.Guests)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	checker := services.NewAvailabilityChecker(storage.DB)
	available, err := checker.IsAvailable(listing.ID, input.FromDate, input.ToDate, nil)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{
		"listingID": listing.ID,
		"available": available,
		"currency":  listing.Currency,
		"quote":     quote,
	})
}
