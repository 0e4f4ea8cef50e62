package routes

import (
	"strings"
	"time"

	"listing-reservations-server/models"
	"listing-reservations-server/services"
	"listing-reservations-server/storage"
	"listing-reservations-server/utils"

	"github.com/google/uuid"
	"github.com/kataras/iris/v12"
	"github.com/rs/zerolog/log"
)

type ReservationInput struct {
	ListingID uint      `json:"listingID"`
	FromDate  time.Time `json:"fromDate"`
	ToDate    time.Time `json:"toDate"`
	RenterID  string    `json:"renterID"`
	Guests    int       `json:"guests"`
}

// CreateReservation reserves a listing for a renter: it locks the listing,
// verifies availability, prices the stay and persists a Checkout reservation.
func CreateReservation(ctx iris.Context) {
	start := time.Now()
	services.Metrics.RequestsTotal.Inc()

	var input ReservationInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	// Required-field and identifier checks happen before any store access.
	var missing []string
	if input.ListingID == 0 {
		missing = append(missing, "listingID")
	}
	if input.FromDate.IsZero() {
		missing = append(missing, "fromDate")
	}
	if input.ToDate.IsZero() {
		missing = append(missing, "toDate")
	}
	if input.RenterID == "" {
		missing = append(missing, "renterID")
	}
	if len(missing) > 0 {
		utils.CreateError(iris.StatusBadRequest, utils.ErrTitleMissingInputParameters,
			"required parameters missing: "+strings.Join(missing, ", "), ctx)
		return
	}

	if _, err := uuid.Parse(input.RenterID); err != nil {
		utils.CreateError(iris.StatusBadRequest, utils.ErrTitleInvalidRenterIdentifier,
			"renterID is not a well-formed identifier", ctx)
		return
	}

	if !input.FromDate.Before(input.ToDate) {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "fromDate must be before toDate", ctx)
		return
	}

	if input.Guests < 1 {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "guests must be at least 1", ctx)
		return
	}

	// Take the advisory lock: overwrite the listing's lock token with this
	// request's session token. Last writer wins; the token is never released,
	// not even when the request fails below.
	sessionToken := utils.GenerateShortToken(16)

	var listing models.Listing
	if err := storage.DB.First(&listing, input.ListingID).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Listing not found", ctx)
		return
	}

	if err := storage.DB.Model(&listing).Update("lock_token", sessionToken).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	checker := services.NewAvailabilityChecker(storage.DB)
	available, err := checker.IsAvailable(listing.ID, input.FromDate, input.ToDate, nil)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if !available {
		services.Metrics.UnavailableTotal.Inc()
		utils.CreateError(iris.StatusConflict, utils.ErrTitleListingNotAvailable,
			"listing is not available for the requested dates", ctx)
		return
	}

	pricing := services.NewPricingService(storage.DB, storage.Redis)
	quote, err := pricing.QuoteReservation(&listing, input.FromDate, input.ToDate, input.Guests)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	reservation := models.Reservation{
		SessionID:  sessionToken,
		RenterID:   input.RenterID,
		ListingID:  listing.ID,
		FromDate:   input.FromDate,
		ToDate:     input.ToDate,
		GuestCount: input.Guests,
		Amount:     quote.Total,
		Status:     models.ReservationStatusCheckout,
	}

	if err := storage.DB.Create(&reservation).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	// Reload: the reservation number is assigned by the store on creation.
	var created models.Reservation
	if err := storage.DB.First(&created, reservation.ID).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "reservation.create", "reservation", created.ID, nil, created)

	log.Info().
		Uint("listingID", listing.ID).
		Str("renterID", created.RenterID).
		Str("reservationNumber", created.ReservationNumber).
		Int("nights", quote.Nights).
		Float64("amount", created.Amount).
		Msg("reservation created")

	services.PublishReservationCreated(&created)

	services.Metrics.CreatedTotal.Inc()
	services.Metrics.RequestDuration.Observe(time.Since(start).Seconds())

	ctx.JSON(iris.Map{
		"reservationNumber": created.ReservationNumber,
		"reservationID":     created.ID,
		"amount":            created.Amount,
	})
}

func GetReservation(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var reservation models.Reservation
	if err := storage.DB.Preload("Listing").First(&reservation, id).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Reservation not found", ctx)
		return
	}

	ctx.JSON(reservation)
}

func GetReservationsByListingID(ctx iris.Context) {
	id := ctx.Params().Get("id")

	page := ctx.URLParamIntDefault("page", 1)
	if page < 1 {
		page = 1
	}
	perPage := ctx.URLParamIntDefault("per_page", 20)
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	var total int64
	if err := storage.DB.Model(&models.Reservation{}).Where("listing_id = ?", id).Count(&total).Error; err != nil {
		utils.CreateError(iris.StatusInternalServerError, "Error", err.Error(), ctx)
		return
	}

	var reservations []models.Reservation
	res := storage.DB.Where("listing_id = ?", id).Order("created_at DESC").
		Offset((page - 1) * perPage).Limit(perPage).Find(&reservations)

	if res.Error != nil {
		utils.CreateError(iris.StatusInternalServerError, "Error", res.Error.Error(), ctx)
		return
	}

	utils.JSONPage(ctx, reservations, page, perPage, total)
}

func GetRenterReservations(ctx iris.Context) {
	renterID := ctx.Params().Get("id")

	var reservations []models.Reservation
	res := storage.DB.Preload("Listing").Where("renter_id = ?", renterID).Order("created_at DESC").Find(&reservations)

	if res.Error != nil {
		utils.CreateError(iris.StatusInternalServerError, "Error", res.Error.Error(), ctx)
		return
	}

	ctx.JSON(reservations)
}
