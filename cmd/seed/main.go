package main

import (
	"context"
	"encoding/json"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"golang.org/x/sync/semaphore"

	"hotel_booking/internal/adapters/observability"
	"hotel_booking/internal/domain"
	"hotel_booking/internal/shared"
	mongorepo "hotel_booking/internal/storage/mongo"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().
		Str("file", cfg.SeedFile).
		Int("workers", cfg.SeedWorkers).
		Msg("seeder starting")

	raw, err := os.ReadFile(cfg.SeedFile)
	if err != nil {
		log.Fatal().Err(err).Msg("read seed file failed")
	}
	var hotels []domain.Hotel
	if err := json.Unmarshal(raw, &hotels); err != nil {
		log.Fatal().Err(err).Msg("parse seed file failed")
	}

	connCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(connCtx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal().Err(err).Msg("mongo.Connect failed")
	}
	if err := client.Ping(connCtx, readpref.Primary()); err != nil {
		log.Fatal().Err(err).Msg("mongo ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mongorepo.New(client.Database(cfg.MongoDB))
	sem := semaphore.NewWeighted(int64(cfg.SeedWorkers))
	var wg sync.WaitGroup

	for _, h := range hotels {
		h := h
		if h.LastUpdated.IsZero() {
			h.LastUpdated = time.Now().UTC()
		}

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(h domain.Hotel) {
			defer wg.Done()
			defer sem.Release(1)

			if err := repo.UpsertHotel(ctx, h); err != nil {
				log.Warn().Str("name", h.Name).Err(err).Msg("seed failed")
				return
			}
			log.Info().Str("name", h.Name).Msg("seed ok")
		}(h)
	}

	wg.Wait()
	log.Info().Msg("seeding completed")
}
