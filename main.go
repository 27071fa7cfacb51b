package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"concert-ticketing/internal/auth"
	"concert-ticketing/internal/concerts"
	"concert-ticketing/internal/concerts/concert_api"
	"concert-ticketing/internal/config"
	"concert-ticketing/internal/histories"
	"concert-ticketing/internal/histories/history_api"
	"concert-ticketing/internal/kafka"
	"concert-ticketing/internal/logger"
	"concert-ticketing/internal/reservations"
	"concert-ticketing/internal/reservations/reservation_api"
	"concert-ticketing/internal/store"
	"concert-ticketing/internal/tickets/qr"
	"concert-ticketing/internal/users"
	"concert-ticketing/internal/users/user_api"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment defaults")
	}

	cfg := config.Load()
	appLogger := logger.NewLogger()
	defer appLogger.Close()

	// --- Store Setup ---
	dataStore, cleanup, err := openStore(cfg, appLogger)
	if err != nil {
		log.Fatalf("❌ Failed to open store: %v", err)
	}
	defer cleanup()

	locks := store.NewKeyedLock()

	// --- Redis Setup (optional user cache) ---
	var userCache *auth.UserCache
	if cfg.Redis.Enabled {
		userCache, err = auth.NewUserCache(cfg.Redis.Addr, cfg.Redis.UserCacheTTL, appLogger)
		if err != nil {
			log.Fatalf("❌ Failed to connect to Redis: %v", err)
		}
	}

	// --- Kafka Setup ---
	var events reservations.EventPublisher
	if cfg.Kafka.Enabled && !cfg.Kafka.MockMode {
		if err := kafka.EnsureTopicsExist(cfg.Kafka.Brokers, []string{cfg.Kafka.Topic}); err != nil {
			appLogger.Warn("KAFKA", fmt.Sprintf("Topic bootstrap failed: %v", err))
		}
		producer := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, appLogger)
		defer producer.Close()
		events = producer
	} else {
		events = kafka.NewMockProducer(appLogger)
	}

	// --- Initialize Services ---
	appLogger.Info("PROCESS", "Initializing services...")
	userService := users.NewService(dataStore)
	reservationQuery := reservations.NewQuery(dataStore)
	concertService := concerts.NewService(dataStore, locks, reservationQuery)
	historyService := histories.NewService(dataStore, locks, userService, concertService)
	reservationService := reservations.NewService(dataStore, locks, concertService, historyService, events, appLogger)
	passGenerator := qr.NewPassGenerator(cfg.Pass.Secret)

	concertHandler := concert_api.NewHandler(concertService, appLogger)
	reservationHandler := reservation_api.NewHandler(reservationService, passGenerator, appLogger)
	historyHandler := history_api.NewHandler(historyService, appLogger)
	userHandler := user_api.NewHandler(userService, appLogger)

	authRequired := auth.Middleware(userService, userCache)
	adminOnly := auth.AdminOnly(userService, userCache)

	// --- Setup Router ---
	r := chi.NewRouter()

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Route("/concerts", func(r chi.Router) {
		r.Get("/", concertHandler.FindAll)
		r.With(authRequired).Get("/user", concertHandler.FindAllWithReservationStatus)
		r.With(adminOnly).Post("/", concertHandler.Create)
		r.With(adminOnly).Delete("/{id}", concertHandler.Remove)
	})

	r.Route("/reservations", func(r chi.Router) {
		r.Use(authRequired)
		r.Patch("/{concertId}/reserve", reservationHandler.Reserve)
		r.Patch("/{concertId}/unreserve", reservationHandler.Unreserve)
		r.Get("/my-reservations", reservationHandler.MyReservations)
		r.Get("/{concertId}/pass", reservationHandler.Pass)
	})

	r.Route("/histories", func(r chi.Router) {
		r.With(adminOnly).Get("/", historyHandler.FindAll)
		r.With(authRequired).Get("/my-histories", historyHandler.MyHistories)
	})

	r.Route("/users", func(r chi.Router) {
		r.Get("/accounts/user", userHandler.GetUserAccount)
		r.Get("/accounts/admin", userHandler.GetAdminAccount)
	})

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		appLogger.Info("PROCESS", fmt.Sprintf("🚀 Concert service running on %s", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ HTTP server error: %v", err)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("PROCESS", "Shutdown signal received. Cleaning up...")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	appLogger.Info("PROCESS", "Server exited gracefully")
}

// openStore picks the persistence backend from config: the flat JSON
// document (default) or SQLite through bun.
func openStore(cfg *config.Config, appLogger *logger.Logger) (store.Store, func(), error) {
	switch cfg.Store.Driver {
	case "sqlite":
		sqldb, err := sql.Open(sqliteshim.ShimName, cfg.Store.DSN)
		if err != nil {
			return nil, nil, err
		}
		bunDB := bun.NewDB(sqldb, sqlitedialect.New())
		if err := store.Migrate(bunDB); err != nil {
			sqldb.Close()
			return nil, nil, err
		}
		appLogger.Info("STORE", fmt.Sprintf("Using SQLite store at %s", cfg.Store.DSN))
		return store.NewBunStore(bunDB), func() { sqldb.Close() }, nil
	case "file":
		appLogger.Info("STORE", fmt.Sprintf("Using JSON file store at %s", cfg.Store.Path))
		return store.NewFileStore(cfg.Store.Path), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
