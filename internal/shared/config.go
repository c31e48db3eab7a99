package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string
	MongoURI    string
	MongoDB     string
	RedisAddr   string
	RedisDB     int
	RedisPass   string
	StripeBase  string
	StripeKey   string
	JWTSecret   string
	SeedFile    string
	SeedWorkers int
	CacheTTL    time.Duration
}

func Load() Config {
	// best-effort; real deployments set the environment directly
	_ = godotenv.Load()

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ":9100"),
		MongoURI:    env("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:     env("MONGO_DB", "bookings"),
		RedisAddr:   env("REDIS_ADDR", "localhost:6379"),
		RedisPass:   env("REDIS_PASSWORD", ""),
		RedisDB:     atoi("REDIS_DB", 0),
		StripeBase:  env("STRIPE_BASE_URL", "https://api.stripe.com/v1"),
		StripeKey:   env("STRIPE_API_KEY", ""),
		JWTSecret:   env("JWT_SECRET", ""),
		SeedFile:    env("SEED_FILE", "seed/hotels.json"),
		SeedWorkers: atoi("SEED_WORKERS", 8),
		CacheTTL:    time.Duration(atoi("CACHE_TTL_SECONDS", 300)) * time.Second,
	}
	if c.StripeKey == "" {
		log.Warn().Msg("STRIPE_API_KEY is empty")
	}
	if c.JWTSecret == "" {
		log.Warn().Msg("JWT_SECRET is empty")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
