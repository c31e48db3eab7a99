package domain

import (
	"context"
	"errors"
)

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrNotFound            = errors.New("not found")
	ErrPaymentMismatch     = errors.New("payment intent mismatch")
	ErrPaymentNotSucceeded = errors.New("payment intent not succeeded")
)

type HotelRepository interface {
	// Read paths
	Search(ctx context.Context, f Filter, sort SortOption, pg PageQuery) (HotelsPage, error)
	List(ctx context.Context) ([]Hotel, error)
	GetHotel(ctx context.Context, id string) (Hotel, error)

	// Write paths
	AppendBooking(ctx context.Context, hotelID string, b Booking) error
	UpsertHotel(ctx context.Context, h Hotel) error
}

// PaymentIntent is the slice of the provider's intent object this
// service cares about. Amount is in the currency's minor unit.
type PaymentIntent struct {
	ID           string
	ClientSecret string
	Status       string
	Amount       int64
	Currency     string
	Metadata     map[string]string
}

type PaymentClient interface {
	CreateIntent(ctx context.Context, amount int64, currency string, metadata map[string]string) (PaymentIntent, error)
	GetIntent(ctx context.Context, id string) (PaymentIntent, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
