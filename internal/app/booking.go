package app

import (
	"context"
	"fmt"

	"hotel_booking/internal/domain"
)

type BookingService struct {
	repo     domain.HotelRepository
	payments domain.PaymentClient
	cache    domain.Cache
}

func NewBookingService(r domain.HotelRepository, p domain.PaymentClient, cache domain.Cache) *BookingService {
	return &BookingService{repo: r, payments: p, cache: cache}
}

type PaymentIntentResult struct {
	PaymentIntentID string `json:"paymentIntentId"`
	ClientSecret    string `json:"clientSecret"`
	TotalCost       int    `json:"totalCost"`
}

// CreatePaymentIntent reserves a charge for nights * pricePerNight and
// tags it with the hotel and user so ConfirmBooking can verify the pair.
func (s *BookingService) CreatePaymentIntent(ctx context.Context, hotelID, userID string, nights int) (PaymentIntentResult, error) {
	if nights < 1 {
		return PaymentIntentResult{}, fmt.Errorf("%w: numberOfNights must be at least 1", domain.ErrInvalidInput)
	}
	hotel, err := s.repo.GetHotel(ctx, hotelID)
	if err != nil {
		return PaymentIntentResult{}, err
	}

	total := hotel.PricePerNight * nights
	intent, err := s.payments.CreateIntent(ctx, int64(total)*100, "usd", map[string]string{
		"hotelId": hotelID,
		"userId":  userID,
	})
	if err != nil {
		return PaymentIntentResult{}, fmt.Errorf("create payment intent: %w", err)
	}
	if intent.ClientSecret == "" {
		return PaymentIntentResult{}, fmt.Errorf("create payment intent: provider returned no client secret")
	}

	return PaymentIntentResult{
		PaymentIntentID: intent.ID,
		ClientSecret:    intent.ClientSecret,
		TotalCost:       total,
	}, nil
}

// ConfirmBooking verifies the payment intent before any mutation: it
// must exist, carry the matching hotel/user tags, and be in the
// "succeeded" state. Only then is the booking appended, as a single
// atomic push on the hotel document.
func (s *BookingService) ConfirmBooking(ctx context.Context, hotelID, userID, intentID string, b domain.Booking) error {
	intent, err := s.payments.GetIntent(ctx, intentID)
	if err != nil {
		return fmt.Errorf("retrieve payment intent: %w", err)
	}
	if intent.Metadata["hotelId"] != hotelID || intent.Metadata["userId"] != userID {
		return domain.ErrPaymentMismatch
	}
	if intent.Status != "succeeded" {
		return fmt.Errorf("%w: status %s", domain.ErrPaymentNotSucceeded, intent.Status)
	}

	b.UserID = userID
	if err := s.repo.AppendBooking(ctx, hotelID, b); err != nil {
		return err
	}
	// drop the cached hotel so its bookings list is not served stale
	if s.cache != nil {
		_ = s.cache.Del(ctx, hotelKey(hotelID))
	}
	return nil
}
