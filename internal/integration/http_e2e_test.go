//go:build integration || !unit

package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	httpserver "hotel_booking/internal/adapters/http_server"
	redisad "hotel_booking/internal/adapters/redis"
	"hotel_booking/internal/adapters/stripe"
	"hotel_booking/internal/app"
	"hotel_booking/internal/domain"
	mongorepo "hotel_booking/internal/storage/mongo"
)

var testSecret = []byte("e2e-secret")

func signToken(t *testing.T, userID string) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": userID,
		"exp":    time.Now().Add(time.Hour).Unix(),
	})
	s, err := tok.SignedString(testSecret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

// stripeStub fakes the two payment-intent endpoints the service uses.
// Created intents come back "succeeded" so bookings can complete.
func stripeStub(t *testing.T) *httptest.Server {
	t.Helper()
	intents := map[string]map[string]any{}
	mux := http.NewServeMux()
	mux.HandleFunc("/payment_intents", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), 400)
			return
		}
		id := fmt.Sprintf("pi_%d", len(intents)+1)
		amount, _ := json.Number(r.PostForm.Get("amount")).Int64()
		intent := map[string]any{
			"id":            id,
			"client_secret": id + "_secret",
			"status":        "succeeded",
			"amount":        amount,
			"currency":      r.PostForm.Get("currency"),
			"metadata": map[string]string{
				"hotelId": r.PostForm.Get("metadata[hotelId]"),
				"userId":  r.PostForm.Get("metadata[userId]"),
			},
		}
		intents[id] = intent
		_ = json.NewEncoder(w).Encode(intent)
	})
	mux.HandleFunc("/payment_intents/", func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/payment_intents/")
		intent, ok := intents[id]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_ = json.NewEncoder(w).Encode(intent)
	})
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

func TestHTTP_EndToEnd_SearchAndBook(t *testing.T) {
	// isolated MongoDB container
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}
	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "mongo",
		Tag:        "7.0",
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mongo: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	uri := fmt.Sprintf("mongodb://127.0.0.1:%s", resource.GetPort("27017/tcp"))
	var client *mongo.Client
	if err := pool.Retry(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		var e error
		client, e = mongo.Connect(ctx, options.Client().ApplyURI(uri))
		if e != nil {
			return e
		}
		return client.Ping(ctx, readpref.Primary())
	}); err != nil {
		t.Fatalf("connect mongo: %v", err)
	}
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	repo := mongorepo.New(client.Database("bookings_e2e"))
	ctx := context.Background()

	// seed one hotel
	hotel := domain.Hotel{
		UserID: "owner-1", Name: "Grand Riviera", City: "Nice", Country: "France",
		Type: "Luxury", AdultCount: 4, ChildCount: 2,
		Facilities: []string{"Free WiFi", "Spa"}, PricePerNight: 320, StarRating: 5,
		LastUpdated: time.Now().UTC(),
	}
	if err := repo.UpsertHotel(ctx, hotel); err != nil {
		t.Fatalf("seed: %v", err)
	}
	seeded, err := repo.List(ctx)
	if err != nil || len(seeded) != 1 {
		t.Fatalf("list after seed: %v (%d)", err, len(seeded))
	}
	hotelID := seeded[0].ID.Hex()

	// real cache and payment client over local stand-ins
	mr := miniredis.RunT(t)
	cache := redisad.New(mr.Addr(), "", 0)
	payments, err := stripe.New(stripeStub(t).URL, "sk_test", 100)
	if err != nil {
		t.Fatalf("stripe client: %v", err)
	}

	srv := httpserver.New()
	srv.MountHandlers(&httpserver.Handlers{
		S:         app.NewSearchService(repo, cache, time.Minute),
		B:         app.NewBookingService(repo, payments, cache),
		JWTSecret: testSecret,
	})
	ts := httptest.NewServer(srv.Mux())
	defer ts.Close()

	// search finds the seeded hotel
	res, err := http.Get(ts.URL + "/v1/hotels/search?destination=nice&adultCount=2&facilities=Spa")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	var searchBody struct {
		Data       []domain.Hotel `json:"data"`
		Pagination struct {
			Total int64 `json:"total"`
			Pages int   `json:"pages"`
		} `json:"pagination"`
	}
	if err := json.NewDecoder(res.Body).Decode(&searchBody); err != nil {
		t.Fatalf("decode search: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusOK || searchBody.Pagination.Total != 1 || len(searchBody.Data) != 1 {
		t.Fatalf("search response: status=%d %+v", res.StatusCode, searchBody)
	}

	// create a payment intent
	tok := signToken(t, "guest-1")
	req, _ := http.NewRequest(http.MethodPost,
		ts.URL+"/v1/hotels/"+hotelID+"/bookings/payment-intent",
		strings.NewReader(`{"numberOfNights": 2}`))
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: tok})
	res, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("payment intent: %v", err)
	}
	var intentBody struct {
		PaymentIntentID string `json:"paymentIntentId"`
		ClientSecret    string `json:"clientSecret"`
		TotalCost       int    `json:"totalCost"`
	}
	if err := json.NewDecoder(res.Body).Decode(&intentBody); err != nil {
		t.Fatalf("decode intent: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusOK || intentBody.TotalCost != 640 || intentBody.PaymentIntentID == "" {
		t.Fatalf("intent response: status=%d %+v", res.StatusCode, intentBody)
	}

	// confirm the booking
	bookingJSON := fmt.Sprintf(
		`{"paymentIntentId":%q,"firstName":"Ana","lastName":"Ng","email":"ana@example.com","adultCount":2,"childCount":0,"checkIn":"2026-09-01T00:00:00Z","checkOut":"2026-09-03T00:00:00Z","totalCost":640}`,
		intentBody.PaymentIntentID)
	req, _ = http.NewRequest(http.MethodPost, ts.URL+"/v1/hotels/"+hotelID+"/bookings", strings.NewReader(bookingJSON))
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: tok})
	res, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("confirm booking: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("confirm status %d", res.StatusCode)
	}

	// the booking landed on the document
	got, err := repo.GetHotel(ctx, hotelID)
	if err != nil {
		t.Fatalf("get hotel: %v", err)
	}
	if len(got.Bookings) != 1 || got.Bookings[0].UserID != "guest-1" {
		t.Fatalf("bookings: %+v", got.Bookings)
	}
}
