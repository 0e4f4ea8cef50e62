package services

import (
	"context"
	"encoding/json"
	"time"

	"listing-reservations-server/models"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

// Routing keys published by the reservation flow.
const (
	RKReservationCreated = "reservation.created"
)

type ReservationCreatedPayload struct {
	ReservationID     uint      `json:"reservation_id"`
	ReservationNumber string    `json:"reservation_number"`
	ListingID         uint      `json:"listing_id"`
	RenterID          string    `json:"renter_id"`
	FromDate          time.Time `json:"from_date"`
	ToDate            time.Time `json:"to_date"`
	GuestCount        int       `json:"guest_count"`
	Amount            float64   `json:"amount"`
}

type Rabbit struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

func NewRabbit(url, exchange string) (*Rabbit, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		return nil, err
	}
	return &Rabbit{conn: conn, ch: ch, exchange: exchange}, nil
}

func (r *Rabbit) Close() {
	if r.ch != nil {
		_ = r.ch.Close()
	}
	if r.conn != nil {
		_ = r.conn.Close()
	}
}

func (r *Rabbit) PublishJSON(routingKey string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return r.ch.PublishWithContext(context.Background(), r.exchange, routingKey, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
}

// Events is the broker connection, set at startup when AMQP_URL is configured.
var Events *Rabbit

// PublishReservationCreated emits the created event. Best effort: the
// reservation is already persisted, a publish failure only logs.
func PublishReservationCreated(r *models.Reservation) {
	if Events == nil {
		return
	}
	payload := ReservationCreatedPayload{
		ReservationID:     r.ID,
		ReservationNumber: r.ReservationNumber,
		ListingID:         r.ListingID,
		RenterID:          r.RenterID,
		FromDate:          r.FromDate,
		ToDate:            r.ToDate,
		GuestCount:        r.GuestCount,
		Amount:            r.Amount,
	}
	if err := Events.PublishJSON(RKReservationCreated, payload); err != nil {
		log.Error().Err(err).Uint("reservationID", r.ID).Msg("failed to publish reservation.created")
	}
}
