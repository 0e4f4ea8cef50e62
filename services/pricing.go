package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"listing-reservations-server/models"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

const feeSumsCacheTTL = 5 * time.Minute

// PricingService computes reservation amounts from the listing's monthly price
// and its nightly fee schedule.
type PricingService struct {
	db    *gorm.DB
	cache *redis.Client
}

func NewPricingService(db *gorm.DB, cache *redis.Client) *PricingService {
	return &PricingService{db: db, cache: cache}
}

type FeeSums struct {
	FlatPerNight     float64 `json:"flatPerNight"`
	PerGuestPerNight float64 `json:"perGuestPerNight"`
}

type Quote struct {
	Nights           int     `json:"nights"`
	MonthsFraction   float64 `json:"monthsFraction"`
	FlatPerNight     float64 `json:"flatPerNight"`
	PerGuestPerNight float64 `json:"perGuestPerNight"`
	Total            float64 `json:"total"`
}

// ListingFeeSums returns the flat and per-guest nightly fee totals for a
// listing. Sums are cached in redis with a short TTL when a cache is wired.
func (s *PricingService) ListingFeeSums(listingID uint) (*FeeSums, error) {
	key := fmt.Sprintf("listing:%d:feesums", listingID)

	if s.cache != nil {
		if cached, err := s.cache.Get(context.Background(), key).Result(); err == nil {
			var sums FeeSums
			if err := json.Unmarshal([]byte(cached), &sums); err == nil {
				return &sums, nil
			}
		}
	}

	var sums FeeSums
	err := s.db.Model(&models.ListingFee{}).
		Where("listing_id = ? AND per_guest = ?", listingID, false).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sums.FlatPerNight).Error
	if err != nil {
		return nil, err
	}

	err = s.db.Model(&models.ListingFee{}).
		Where("listing_id = ? AND per_guest = ?", listingID, true).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sums.PerGuestPerNight).Error
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if encoded, err := json.Marshal(&sums); err == nil {
			s.cache.Set(context.Background(), key, encoded, feeSumsCacheTTL)
		}
	}

	return &sums, nil
}

// InvalidateFeeSums drops the cached fee totals after the schedule changes.
func (s *PricingService) InvalidateFeeSums(listingID uint) {
	if s.cache == nil {
		return
	}
	s.cache.Del(context.Background(), fmt.Sprintf("listing:%d:feesums", listingID))
}

// QuoteReservation prices a stay: the monthly price prorated over 30-day
// months, plus flat fees per night and per-guest fees per night per guest.
func (s *PricingService) QuoteReservation(listing *models.Listing, fromDate, toDate time.Time, guests int) (*Quote, error) {
	nights := int(toDate.Sub(fromDate).Hours() / 24)
	monthsFraction := float64(nights) / 30

	sums, err := s.ListingFeeSums(listing.ID)
	if err != nil {
		return nil, err
	}

	total := listing.PricePerMonth*monthsFraction +
		sums.FlatPerNight*float64(nights) +
		sums.PerGuestPerNight*float64(nights)*float64(guests)

	return &Quote{
		Nights:           nights,
		MonthsFraction:   monthsFraction,
		FlatPerNight:     sums.FlatPerNight,
		PerGuestPerNight: sums.PerGuestPerNight,
		Total:            total,
	}, nil
}
