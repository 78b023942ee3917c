package main

import (
	"itinerary-service/internal/adapters/cache"
	"itinerary-service/internal/adapters/place"
	"itinerary-service/internal/adapters/remote"
	"itinerary-service/internal/adapters/routing"
	"itinerary-service/internal/api"
	"itinerary-service/internal/config"
	"itinerary-service/internal/platform/db"
	"itinerary-service/internal/platform/logging"
	"itinerary-service/internal/ports"
	"itinerary-service/internal/services"
	"itinerary-service/internal/store"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	goredis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// main is the application composition root.
// It wires concrete adapters (backend API, ORS, postgres, redis) behind ports
// and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found (using environment variables)")
	}

	logging.Setup(config.Get("LOG_PATH", "logs/server.log"), parseLogLevel(config.Get("LOG_LEVEL", "info")))

	port := config.Get("PORT", "8080")
	backendURL := config.Get("BACKEND_URL", "http://localhost:8000")

	orsKey := os.Getenv("ORS_API_KEY")
	if strings.TrimSpace(orsKey) == "" {
		logrus.Fatal("ORS_API_KEY is required")
	}

	provider, err := routing.NewORSRouteProvider(orsKey)
	if err != nil {
		logrus.Fatal(err)
	}

	// The estimate cache is optional; without a database every leg hits the
	// routing provider (or the straight-line fallback).
	var estimateCache *cache.SQLEstimateCache
	if databaseURL := os.Getenv("DATABASE_URL"); strings.TrimSpace(databaseURL) != "" {
		pool, err := db.Open(databaseURL)
		if err != nil {
			logrus.Fatal(err)
		}
		defer pool.Close()
		estimateCache = cache.NewSQLEstimateCache(pool)
	} else {
		logrus.Warn("DATABASE_URL not set; travel estimates are not cached")
	}

	estimator := services.NewTravelEstimator(provider, estimatePort(estimateCache))

	tripAPI := remote.NewTripAPI(backendURL)
	ingestAPI := remote.NewIngestAPI(backendURL)
	st := store.New(tripAPI, estimator)

	// Place lookups go through a redis TTL cache when one is configured.
	var placeCache ports.PlaceInfoCache
	if redisAddr := os.Getenv("REDIS_ADDR"); strings.TrimSpace(redisAddr) != "" {
		client := goredis.NewClient(&goredis.Options{Addr: redisAddr})
		defer client.Close()
		placeCache, err = cache.NewRedisPlaceCache(client, parseDuration(config.Get("PLACE_CACHE_TTL", "24h")))
		if err != nil {
			logrus.Fatal(err)
		}
	} else {
		logrus.Warn("REDIS_ADDR not set; place lookups are not cached")
	}

	resolver, err := place.NewResolver(backendURL, placeCache)
	if err != nil {
		logrus.Fatal(err)
	}

	pollInterval := parseDuration(config.Get("IMPORT_POLL_INTERVAL", "2s"))
	pollRetries, err := strconv.Atoi(config.Get("IMPORT_POLL_RETRIES", "90"))
	if err != nil {
		logrus.Fatal("IMPORT_POLL_RETRIES must be an integer")
	}

	router := api.NewRouter(st, ingestAPI, resolver, pollInterval, pollRetries)

	// Timeouts are tuned for the import poll loop (long-running upstream work).
	logrus.Infof("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      240 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	logrus.Fatal(srv.ListenAndServe())
}

// estimatePort avoids handing the estimator a typed nil when no database is
// configured.
func estimatePort(c *cache.SQLEstimateCache) ports.EstimateCache {
	if c == nil {
		return nil
	}
	return c
}

func parseLogLevel(s string) logrus.Level {
	level, err := logrus.ParseLevel(s)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

func parseDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0
	}
	return d
}
