package main

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	_ "github.com/PabloPavan/userdir_api/docs"
	"github.com/PabloPavan/userdir_api/internal"
	"github.com/PabloPavan/userdir_api/internal/db"
	"github.com/PabloPavan/userdir_api/internal/httpapi"
	"github.com/PabloPavan/userdir_api/internal/telemetry"
	"github.com/PabloPavan/userdir_api/internal/users"
	"github.com/redis/go-redis/v9"
)

func main() {
	port := internal.Env("APP_PORT", "8080")
	databaseURL := internal.MustEnv("DATABASE_URL")
	redisURL := internal.Env("REDIS_URL", "")

	ctx := context.Background()

	shutdown := telemetry.InitTracer("userdir-api")
	defer shutdown(context.Background())
	shutdownMetrics := telemetry.InitMetrics("userdir-api")
	defer shutdownMetrics(context.Background())
	shutdownLogger := telemetry.InitLogger("userdir-api")
	defer shutdownLogger(context.Background())
	db.InitTelemetry("userdir-api")

	d, err := db.New(ctx, databaseURL)
	if err != nil {
		log.Fatalf("db connect error: %v", err)
	}
	defer d.Close()

	// The list cache is optional; without REDIS_URL every list goes to the
	// database.
	var listCache users.Cache
	if redisURL != "" {
		redisOpt, err := redis.ParseURL(redisURL)
		if err != nil {
			log.Fatalf("redis url error: %v", err)
		}
		redisClient := redis.NewClient(redisOpt)
		defer redisClient.Close()
		listCache = users.NewRedisCache(redisClient, internal.Env("CACHE_REDIS_PREFIX", "userdir:cache:"))
	}

	dbBase := db.NewBase(d.Pool, 3*time.Second)
	usrRepo := users.NewRepository(dbBase)

	usrService := &users.Service{
		Store:        usrRepo,
		Cache:        listCache,
		ListCacheTTL: parseDurationEnv("USERS_LIST_CACHE_TTL", 30*time.Second),
	}

	app := &httpapi.App{
		Health: &httpapi.HealthHandler{DB: d.Pool},
		Users:  &httpapi.UsersHandler{Service: usrService},
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           httpapi.NewRouter(app),
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Printf("api listening on :%s", port)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func parseDurationEnv(key string, def time.Duration) time.Duration {
	val := strings.TrimSpace(internal.Env(key, ""))
	if val == "" {
		return def
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		log.Printf("invalid %s: %q, using default", key, val)
		return def
	}
	return d
}
