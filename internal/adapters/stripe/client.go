package stripe

import (
	"context"
	crand "crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"hotel_booking/internal/adapters/observability"
	"hotel_booking/internal/domain"
)

// Client talks to Stripe's payment-intents REST endpoints. It is an
// injected value; nothing here is process-wide state.
type Client struct {
	base string
	hc   *http.Client
	key  string
	rl   *rate.Limiter
}

func New(base, key string, rps int) (*Client, error) {
	if key == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if base == "" {
		base = "https://api.stripe.com/v1"
	}
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		base: strings.TrimSuffix(base, "/"),
		hc:   &http.Client{Timeout: 20 * time.Second},
		key:  key,
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

var (
	// ErrNotFound wraps the domain sentinel so callers can errors.Is
	// against domain.ErrNotFound without importing this package.
	ErrNotFound     = fmt.Errorf("stripe: %w", domain.ErrNotFound)
	ErrUnauthorized = errors.New("stripe: unauthorized")
)

// intentPayload is the wire shape of a payment intent; fields we don't
// read are left to fall through.
type intentPayload struct {
	ID           string            `json:"id"`
	ClientSecret string            `json:"client_secret"`
	Status       string            `json:"status"`
	Amount       int64             `json:"amount"`
	Currency     string            `json:"currency"`
	Metadata     map[string]string `json:"metadata"`
}

func (p intentPayload) toDomain() domain.PaymentIntent {
	return domain.PaymentIntent{
		ID:           p.ID,
		ClientSecret: p.ClientSecret,
		Status:       p.Status,
		Amount:       p.Amount,
		Currency:     p.Currency,
		Metadata:     p.Metadata,
	}
}

func (c *Client) CreateIntent(ctx context.Context, amount int64, currency string, metadata map[string]string) (domain.PaymentIntent, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amount, 10))
	form.Set("currency", currency)
	for k, v := range metadata {
		form.Set("metadata["+k+"]", v)
	}

	var out intentPayload
	err := c.do(ctx, http.MethodPost, c.base+"/payment_intents", "POST /payment_intents", form, &out)
	if err != nil {
		return domain.PaymentIntent{}, err
	}
	return out.toDomain(), nil
}

func (c *Client) GetIntent(ctx context.Context, id string) (domain.PaymentIntent, error) {
	var out intentPayload
	err := c.do(ctx, http.MethodGet, c.base+"/payment_intents/"+url.PathEscape(id), "GET /payment_intents/{id}", nil, &out)
	if err != nil {
		return domain.PaymentIntent{}, err
	}
	return out.toDomain(), nil
}

// do performs one API call with client-side rate limiting and retries.
// Retries cover 429 and transient 5xx, honoring Retry-After when
// provided; intent creation is idempotent-safe to retry at this layer
// only because callers treat a duplicate unconfirmed intent as inert.
func (c *Client) do(ctx context.Context, method, u, endpoint string, form url.Values, out any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}

	var lastErr error
	for i := 0; i < 4; i++ {
		var body io.Reader
		if form != nil {
			body = strings.NewReader(form.Encode())
		}
		req, err := http.NewRequestWithContext(ctx, method, u, body)
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", "Bearer "+c.key)
		req.Header.Set("Accept", "application/json")
		if form != nil {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}

		start := time.Now()
		resp, err := c.hc.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
			if i < 3 && sleepCtx(ctx, backoff(i)) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr
		}
		observability.ObserveExternal("stripe", endpoint, resp.StatusCode, time.Since(start))

		switch resp.StatusCode {
		case http.StatusOK, http.StatusCreated:
			err := json.NewDecoder(resp.Body).Decode(out)
			resp.Body.Close()
			return err

		case http.StatusNotFound:
			resp.Body.Close()
			return ErrNotFound

		case http.StatusUnauthorized:
			resp.Body.Close()
			return ErrUnauthorized

		case http.StatusTooManyRequests, http.StatusInternalServerError,
			http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			wait := retryAfter(resp)
			resp.Body.Close()
			if wait == 0 {
				wait = backoff(i)
			}
			lastErr = fmt.Errorf("stripe %d", resp.StatusCode)
			if i < 3 && sleepCtx(ctx, wait) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr

		default:
			// surface Stripe's error message, bounded
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			return fmt.Errorf("stripe status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
		}
	}

	return lastErr
}

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter parses Retry-After (seconds or HTTP-date). 0 if absent.
func retryAfter(resp *http.Response) time.Duration {
	h := resp.Header.Get("Retry-After")
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// backoff doubles per attempt (200ms, 400ms, 800ms...) with up to +50%
// jitter to avoid thundering herds.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 200 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0
	j := time.Duration(0.5 * f * float64(base))
	return base + j
}
