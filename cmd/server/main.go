package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // Optional .env loading for local development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/hotel-reservation/internal/booking"
	"github.com/iliyamo/hotel-reservation/internal/config"
	"github.com/iliyamo/hotel-reservation/internal/database"
	"github.com/iliyamo/hotel-reservation/internal/handler"
	"github.com/iliyamo/hotel-reservation/internal/middleware"
	"github.com/iliyamo/hotel-reservation/internal/queue"
	"github.com/iliyamo/hotel-reservation/internal/repository"
	"github.com/iliyamo/hotel-reservation/internal/router"
)

func main() {
	// A missing .env is fine; production supplies real environment variables.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis backs the response cache and the rate limiter; both degrade to
	// pass-through when it is unreachable.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; caching and rate limiting disabled")
	}

	rooms := repository.NewRoomRepo(db)
	hotels := repository.NewHotelRepo(db)
	guests := repository.NewGuestRepo(db)
	reservations := repository.NewReservationRepo(db)
	payments := repository.NewPaymentRepo(db)
	admins := repository.NewAdminRepo(db)

	flow := booking.NewWorkflow(db, rooms, guests, reservations, payments)

	roomHandler := handler.NewRoomHandler(rooms, hotels)
	guestHandler := handler.NewGuestHandler(guests)
	bookingHandler := handler.NewBookingHandler(flow)
	lookupHandler := handler.NewLookupHandler(reservations)
	adminHandler := handler.NewAdminHandler(cfg, admins, payments, flow)

	e := echo.New()
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterPublic(e, roomHandler, guestHandler, bookingHandler, lookupHandler,
		middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	router.RegisterAdmin(e, adminHandler, cfg.JWTSecret)

	// Background consumer appends booking events to logs/booking.log and
	// reconnects on broker failures.
	go func() {
		if err := queue.StartEventConsumer(); err != nil {
			log.Printf("event consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
