package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"hotel_booking/internal/app"
	"hotel_booking/internal/domain"
)

type Handlers struct {
	S         *app.SearchService
	B         *app.BookingService
	JWTSecret []byte
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Get("/v1/hotels/search", h.search)
	s.mux.Get("/v1/hotels", h.list)
	s.mux.Get("/v1/hotels/{id}", h.getHotel)

	s.mux.Group(func(g chi.Router) {
		g.Use(Auth(h.JWTSecret))
		g.Post("/v1/hotels/{hotelId}/bookings/payment-intent", h.createPaymentIntent)
		g.Post("/v1/hotels/{hotelId}/bookings", h.confirmBooking)
	})
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// ---- search & reads ----

type searchResponse struct {
	Data       []domain.Hotel `json:"data"`
	Pagination pagination     `json:"pagination"`
}

type pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Pages int   `json:"pages"`
}

func criteriaFromQuery(r *http.Request) domain.Criteria {
	q := r.URL.Query()
	return domain.Criteria{
		Destination: q.Get("destination"),
		AdultCount:  q.Get("adultCount"),
		ChildCount:  q.Get("childCount"),
		Facilities:  q["facilities"],
		Types:       q["types"],
		StarRating:  q.Get("stars"),
		MaxPrice:    q.Get("maxPrice"),
		SortOption:  q.Get("sortOption"),
		Page:        q.Get("page"),
	}
}

func (h *Handlers) search(w http.ResponseWriter, r *http.Request) {
	page, err := h.S.Search(r.Context(), criteriaFromQuery(r))
	if err != nil {
		log.Error().Err(err).Msg("hotel search failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "retrieval failed")
		return
	}
	if page.Items == nil {
		page.Items = []domain.Hotel{}
	}
	writeJSON(w, http.StatusOK, searchResponse{
		Data:       page.Items,
		Pagination: pagination{Total: page.Total, Page: page.Page, Pages: page.Pages},
	})
}

func (h *Handlers) list(w http.ResponseWriter, r *http.Request) {
	hotels, err := h.S.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("hotel list failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "retrieval failed")
		return
	}
	if hotels == nil {
		hotels = []domain.Hotel{}
	}

	etag, body := calcETagAndBody(hotels)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write hotel list body")
	}
}

func (h *Handlers) getHotel(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "hotel ID is required")
		return
	}
	hotel, err := h.S.GetHotel(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeProblem(w, http.StatusNotFound, "Not Found", "hotel not found")
			return
		}
		log.Error().Err(err).Str("id", id).Msg("get hotel failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "retrieval failed")
		return
	}

	etag, body := calcETagAndBody(hotel)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write hotel body")
	}
}

// ---- bookings ----

type paymentIntentRequest struct {
	NumberOfNights json.Number `json:"numberOfNights"`
}

func (h *Handlers) createPaymentIntent(w http.ResponseWriter, r *http.Request) {
	hotelID := chi.URLParam(r, "hotelId")

	var req paymentIntentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "malformed JSON body")
		return
	}
	nights, err := req.NumberOfNights.Int64()
	if err != nil || nights < 1 {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "numberOfNights must be a positive integer")
		return
	}

	out, err := h.B.CreatePaymentIntent(r.Context(), hotelID, UserID(r.Context()), int(nights))
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, out)
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusBadRequest, "Bad Request", "hotel not found")
	case errors.Is(err, domain.ErrInvalidInput):
		writeProblem(w, http.StatusBadRequest, "Invalid Body", err.Error())
	default:
		log.Error().Err(err).Str("hotel", hotelID).Msg("create payment intent failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "error creating payment intent")
	}
}

type bookingRequest struct {
	PaymentIntentID string    `json:"paymentIntentId"`
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	Email           string    `json:"email"`
	AdultCount      int       `json:"adultCount"`
	ChildCount      int       `json:"childCount"`
	CheckIn         time.Time `json:"checkIn"`
	CheckOut        time.Time `json:"checkOut"`
	TotalCost       int       `json:"totalCost"`
}

func (h *Handlers) confirmBooking(w http.ResponseWriter, r *http.Request) {
	hotelID := chi.URLParam(r, "hotelId")

	var req bookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "malformed JSON body")
		return
	}
	if req.PaymentIntentID == "" {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "paymentIntentId is required")
		return
	}

	booking := domain.Booking{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		AdultCount: req.AdultCount,
		ChildCount: req.ChildCount,
		CheckIn:    req.CheckIn,
		CheckOut:   req.CheckOut,
		TotalCost:  req.TotalCost,
	}

	err := h.B.ConfirmBooking(r.Context(), hotelID, UserID(r.Context()), req.PaymentIntentID, booking)
	switch {
	case err == nil:
		w.WriteHeader(http.StatusOK)
	case errors.Is(err, domain.ErrPaymentMismatch):
		writeProblem(w, http.StatusBadRequest, "Bad Request", "payment intent mismatch")
	case errors.Is(err, domain.ErrPaymentNotSucceeded):
		writeProblem(w, http.StatusBadRequest, "Bad Request", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusBadRequest, "Bad Request", "hotel or payment intent not found")
	default:
		log.Error().Err(err).Str("hotel", hotelID).Msg("confirm booking failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "something went wrong")
	}
}
