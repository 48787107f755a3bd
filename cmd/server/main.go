package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/kingola1/brinkett-booking/internal/booking"
	"github.com/kingola1/brinkett-booking/internal/config"
	"github.com/kingola1/brinkett-booking/internal/database"
	"github.com/kingola1/brinkett-booking/internal/handler"
	"github.com/kingola1/brinkett-booking/internal/queue"
	"github.com/kingola1/brinkett-booking/internal/repository"
	"github.com/kingola1/brinkett-booking/internal/router"
	"github.com/kingola1/brinkett-booking/internal/utils"
)

func main() {
	_ = godotenv.Load() // Pull in .env when present; real env always wins

	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Create the schema and seed the initial admin account on first run.
	adminHash, err := utils.HashPassword(cfg.AdminPass, cfg.BcryptCost)
	if err != nil {
		log.Fatalf("hash admin password: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.Migrate(ctx, db, cfg.AdminUser, adminHash); err != nil {
		cancel()
		log.Fatalf("migrate: %v", err)
	}
	cancel()

	// Repositories share the single pooled connection.
	bookings := repository.NewBookingRepo(db)
	apartments := repository.NewApartmentRepo(db)
	blocked := repository.NewBlockedDateRepo(db)
	admins := repository.NewAdminRepo(db)
	settings := repository.NewSettingRepo(db)
	stats := repository.NewStatsRepo(db)

	resolver := booking.NewResolver(bookings, blocked)
	admission := booking.NewAdmission(db, apartments, bookings)

	// Redis backs the rate limiter and the catalog cache; both degrade
	// to pass-through when the client cannot be built.
	rdb := config.NewRedisClient()

	e := echo.New()
	router.Register(e, router.Deps{
		Cfg:       cfg,
		Auth:      handler.NewAuthHandler(cfg, admins),
		Public:    handler.NewPublicHandler(apartments, settings),
		Bookings:  handler.NewBookingHandler(resolver, admission, bookings),
		Admin:     handler.NewAdminHandler(bookings, blocked, stats, settings),
		AptAdmin:  handler.NewApartmentAdminHandler(apartments, cfg.UploadDir),
		Redis:     rdb,
		Cache:     config.LoadCacheConfig(),
		RateLimit: config.LoadRateLimitConfig(),
	})

	// The booking.confirmed consumer runs for the life of the process and
	// reconnects on its own when the broker drops.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("queue consumer: %v", err)
		}
	}()

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err)
	}
}
