package main // Entry point package

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/flight-reservation/internal/booking"
	"github.com/iliyamo/flight-reservation/internal/config"
	"github.com/iliyamo/flight-reservation/internal/database"
	"github.com/iliyamo/flight-reservation/internal/handler"
	"github.com/iliyamo/flight-reservation/internal/lock"
	"github.com/iliyamo/flight-reservation/internal/metrics"
	"github.com/iliyamo/flight-reservation/internal/middleware"
	"github.com/iliyamo/flight-reservation/internal/notify"
	"github.com/iliyamo/flight-reservation/internal/queue"
	"github.com/iliyamo/flight-reservation/internal/router"
	"github.com/iliyamo/flight-reservation/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.Location)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()
	if cfg.DBAutoMigrate {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err := database.EnsureSchema(ctx, db)
		cancel()
		if err != nil {
			log.Fatalf("database: apply schema: %v", err)
		}
	}

	rdb := config.NewRedisClient(config.LoadRedisConfig())
	if rdb != nil {
		defer rdb.Close()
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	st := booking.NewStores(db)
	publisher := service.NewPublisher(cfg.AMQPURL)

	var mailer *notify.MailerService
	if cfg.MailerSendAPIKey != "" {
		mailer = notify.NewMailerService(cfg.MailerSendAPIKey, cfg.MailFromName, cfg.MailFromEmail, cfg.Location)
	}

	var notifier booking.Notifier
	switch cfg.NotifyMode {
	case config.NotifyQueue:
		notifier = publisher
		consumer := &queue.Consumer{URL: cfg.AMQPURL, LogDir: cfg.BookingLogDir}
		if mailer != nil {
			consumer.Mailer = mailer
		}
		go consumer.Run(ctx)
	case config.NotifyDirect:
		if mailer != nil {
			notifier = mailer
		} else {
			log.Printf("NOTIFY_MODE=direct without MAILERSEND_API_KEY, notifications disabled")
		}
	}

	manager := booking.NewReservationManager(st, notifier, lock.NewRedisLocker(rdb, cfg.BookingLockTTL))
	engine := booking.NewCancellationEngine(st, publisher)
	search := booking.NewFlightSearch(st, cfg.Location)
	cache := middleware.NewResponseCache(config.LoadCacheConfig(), rdb)
	limit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(middleware.RequestContext())
	e.Use(metrics.Middleware())

	router.RegisterRoutes(e, db)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, st.Customers), cfg.JWTSecret)
	router.RegisterFlights(e, handler.NewFlightHandler(search, manager, cfg.Location), limit, cache)
	router.RegisterReservations(e, handler.NewReservationHandler(manager, engine, cache, cfg.Location), cfg.JWTSecret)
	router.RegisterAdmin(e, handler.NewAdminHandler(engine), cfg.JWTSecret)

	addr := ":" + cfg.Port
	go func() {
		log.Printf("listening on %s (env=%s, notify=%s)", addr, cfg.Env, cfg.NotifyMode)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("shutting down")
	stop()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	log.Println("server stopped")
}
