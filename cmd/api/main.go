package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/agendaly/booking-api/internal/app"
	"github.com/agendaly/booking-api/internal/config"
	availabilityHandler "github.com/agendaly/booking-api/internal/handler/availability"
	authHandler "github.com/agendaly/booking-api/internal/handler/auth"
	bookingHandler "github.com/agendaly/booking-api/internal/handler/booking"
	catalogHandler "github.com/agendaly/booking-api/internal/handler/catalog"
	healthHandler "github.com/agendaly/booking-api/internal/handler/health"
	scheduleHandler "github.com/agendaly/booking-api/internal/handler/schedule"
	staffHandler "github.com/agendaly/booking-api/internal/handler/staff"
	storeHandler "github.com/agendaly/booking-api/internal/handler/store"
	"github.com/agendaly/booking-api/internal/middleware"
	"github.com/agendaly/booking-api/internal/repository/postgres"
	"github.com/agendaly/booking-api/internal/router"
	authService "github.com/agendaly/booking-api/internal/service/auth"
	availabilityService "github.com/agendaly/booking-api/internal/service/availability"
	bookingService "github.com/agendaly/booking-api/internal/service/booking"
	catalogService "github.com/agendaly/booking-api/internal/service/catalog"
	scheduleService "github.com/agendaly/booking-api/internal/service/schedule"
	staffService "github.com/agendaly/booking-api/internal/service/staff"
	storeService "github.com/agendaly/booking-api/internal/service/store"
	"github.com/agendaly/booking-api/pkg/auth"
	"github.com/agendaly/booking-api/pkg/logger"
	"github.com/agendaly/booking-api/pkg/security"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.New(&logger.Config{
		Level:      logger.ParseLevel(cfg.Log.Level),
		TimeFormat: time.RFC3339,
		Output:     os.Stdout,
		Pretty:     cfg.Log.Pretty,
	})
	log.Logger = appLogger

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	migrator, err := app.NewMigrator(db)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize migrator")
	}
	if err := migrator.Run(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("failed to apply migrations")
	}
	if version, err := migrator.Version(context.Background()); err == nil {
		log.Info().Int64("version", version).Msg("database schema up to date")
	}

	// Repositories
	base := postgres.NewBaseRepository(db)
	storeRepo := postgres.NewStoreRepository(db)
	ownerRepo := postgres.NewOwnerRepository(db)
	staffRepo := postgres.NewStaffRepository(db)
	serviceRepo := postgres.NewServiceRepository(db)
	hoursRepo := postgres.NewWorkingHourRepository(db)
	blockRepo := postgres.NewBlockRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)

	// Services
	jwtSvc := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpiryHours)
	hasher := security.NewBcryptHasher(0)

	storeSvc := storeService.NewService(storeRepo)
	staffSvc := staffService.NewService(staffRepo)
	catalogSvc := catalogService.NewService(serviceRepo)
	scheduleSvc := scheduleService.NewService(hoursRepo, blockRepo, staffRepo)
	availabilitySvc := availabilityService.NewService(storeSvc, staffRepo, hoursRepo, appointmentRepo, blockRepo)
	bookingSvc := bookingService.NewService(storeSvc, availabilitySvc, staffRepo, serviceRepo, appointmentRepo, blockRepo, base)
	authSvc := authService.NewService(ownerRepo, storeRepo, base, hasher, jwtSvc, cfg.Booking.DefaultTimezone)

	// Handlers
	staffH := staffHandler.NewHandler(staffSvc, storeSvc)
	catalogH := catalogHandler.NewHandler(catalogSvc, storeSvc)
	bookingH := bookingHandler.NewHandler(bookingSvc, storeSvc, cfg.Booking)

	handlers := router.Handlers{
		Health:       healthHandler.NewHandler(db),
		Auth:         authHandler.NewHandler(authSvc),
		Store:        storeHandler.NewHandler(storeSvc),
		Staff:        staffH,
		Catalog:      catalogH,
		Schedule:     scheduleHandler.NewHandler(scheduleSvc),
		Booking:      bookingH,
		Availability: availabilityHandler.NewHandler(availabilitySvc, cfg.Booking),
		Public:       []router.PublicHandler{staffH, catalogH},
	}

	routerCfg := router.Config{
		RateLimitRPS:   20,
		RateLimitBurst: 40,
		TimeoutSeconds: cfg.Server.TimeoutSeconds,
		CORS:           middleware.DefaultCORSConfig(),
	}

	// Shared booking limiter only when redis is configured
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		limiter := middleware.NewRedisRateLimiter(client, cfg.Redis.BookingPerMin, time.Minute, appLogger)
		routerCfg.BookingRateLimit = limiter.RateLimit()
	}

	r := router.NewRouter(jwtSvc, handlers, routerCfg)
	r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited")
}
