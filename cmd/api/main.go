package main

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	server "hotel_booking/internal/adapters/http_server"
	"hotel_booking/internal/adapters/observability"
	redisad "hotel_booking/internal/adapters/redis"
	"hotel_booking/internal/adapters/stripe"
	"hotel_booking/internal/app"
	"hotel_booking/internal/shared"
	mongorepo "hotel_booking/internal/storage/mongo"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	// db
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal().Err(err).Msg("mongo.Connect failed")
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		log.Fatal().Err(err).Msg("mongo ping failed")
	}
	log.Info().Msg("database connection ok")

	// deps
	repo := mongorepo.New(client.Database(cfg.MongoDB))
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	payments, err := stripe.New(cfg.StripeBase, cfg.StripeKey, 10)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize Stripe client")
	}
	search := app.NewSearchService(repo, cache, cfg.CacheTTL)
	booking := app.NewBookingService(repo, payments, cache)

	// http
	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{S: search, B: booking, JWTSecret: []byte(cfg.JWTSecret)})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
