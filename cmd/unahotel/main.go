package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	reservationapp "unahotel/internal/app/handlers/reservation"
	appoutbox "unahotel/internal/app/outbox"
	"unahotel/internal/domain/catalog"
	domainreservation "unahotel/internal/domain/reservation"
	"unahotel/internal/domain/shared/money"
	"unahotel/internal/infra/broker/kafka"
	"unahotel/internal/infra/config"
	dbmongo "unahotel/internal/infra/db/mongo"
	ginserver "unahotel/internal/infra/http/gin"
	"unahotel/internal/infra/obs"
	infraoutbox "unahotel/internal/infra/outbox"
	"unahotel/internal/infra/storage/memory"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := getenv("APP_ENV", "dev")
	logger := obs.NewLogger(env)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("configuration invalid", "error", err)
		os.Exit(1)
	}

	policy := config.LoadPolicy(cfg.PolicyJSON, logger)
	rules := domainreservation.NewRules(policy)

	app, err := buildApplication(ctx, cfg, rules, policy, logger)
	if err != nil {
		logger.Error("application wiring failed", "error", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := obs.NewMetrics(registry)

	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{
		Checks: app.readiness,
	}, metrics, registry, app.handlers)

	if app.worker != nil {
		go func() {
			if err := app.worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("outbox worker stopped", "error", err)
			}
		}()
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
		if app.closeProducer != nil {
			if err := app.closeProducer(); err != nil {
				logger.Error("kafka producer close failed", "error", err)
			}
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr, "storage", cfg.StorageMode)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

type application struct {
	handlers      ginserver.Handlers
	worker        *infraoutbox.Worker
	readiness     map[string]obs.ReadinessCheck
	closeProducer func() error
}

func buildApplication(ctx context.Context, cfg config.Config, rules domainreservation.Rules, policy domainreservation.Policy, logger *slog.Logger) (application, error) {
	var (
		rooms        catalog.RoomRepository
		services     catalog.ServiceRepository
		reservations domainreservation.Repository
		box          appoutbox.Outbox
		store        infraoutbox.Store
		readiness    = map[string]obs.ReadinessCheck{}
	)

	switch cfg.StorageMode {
	case "mongo":
		client, err := dbmongo.New(cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return application{}, fmt.Errorf("mongo connect: %w", err)
		}
		catalogRepo := dbmongo.NewCatalogRepository(client.DB)
		rooms = catalogRepo.Rooms()
		services = catalogRepo.Services()
		reservations = dbmongo.NewReservationRepository(client.DB)
		outboxStore := dbmongo.NewOutboxStore(client.DB)
		box = outboxStore
		store = outboxStore
		readiness["mongo"] = client.Ping
	default:
		roomRepo := memory.NewRoomRepository()
		serviceRepo := memory.NewServiceRepository()
		if err := loadCatalogFixtures(roomRepo, serviceRepo, logger); err != nil {
			return application{}, err
		}
		memBox := memory.NewOutbox()
		rooms = roomRepo
		services = serviceRepo
		reservations = memory.NewReservationRepository()
		box = memBox
		store = memBox
	}

	app := application{readiness: readiness}

	if len(cfg.KafkaBrokers) > 0 {
		producer, err := kafka.NewProducer(cfg.KafkaBrokers, nil)
		if err != nil {
			return application{}, fmt.Errorf("kafka connect: %w", err)
		}
		app.closeProducer = producer.Close
		app.worker = &infraoutbox.Worker{
			Store:       store,
			Producer:    producer,
			Interval:    cfg.OutboxPollInterval,
			TopicPrefix: cfg.KafkaTopicPrefix,
			Backoff:     cfg.RetryBackoff,
		}
	} else {
		logger.Warn("KAFKA_BROKERS not set, staged events will not be published")
	}

	app.handlers = ginserver.Handlers{
		Reservation: ginserver.ReservationHandler{
			Quote: &reservationapp.QuoteHandler{
				Rooms: rooms, Services: services, Rules: rules,
			},
			Create: &reservationapp.CreateReservationHandler{
				Reservations: reservations, Rooms: rooms, Services: services,
				Rules: rules, Outbox: box, Encoder: appoutbox.JSONEventEncoder{},
			},
			Cancel: &reservationapp.CancelReservationHandler{
				Reservations: reservations, Policy: policy,
				Outbox: box, Encoder: appoutbox.JSONEventEncoder{},
			},
			Reservations: reservations,
		},
		Catalog: ginserver.CatalogHandler{Rooms: rooms, Services: services},
	}
	return app, nil
}

type catalogFixtures struct {
	Rooms []struct {
		ID          string `json:"id"`
		Type        string `json:"type"`
		Capacity    int    `json:"capacity"`
		NightlyRate int64  `json:"nightly_rate"`
		Currency    string `json:"currency"`
	} `json:"rooms"`
	Services []struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Price    int64  `json:"price"`
		Currency string `json:"currency"`
	} `json:"services"`
}

// loadCatalogFixtures seeds the in-memory catalog from CATALOG_FIXTURES, or
// falls back to a small built-in property so the demo answers quotes.
func loadCatalogFixtures(rooms *memory.RoomRepository, services *memory.ServiceRepository, logger *slog.Logger) error {
	var fixtures catalogFixtures
	if path := getenv("CATALOG_FIXTURES", ""); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read fixtures: %w", err)
		}
		if err := json.Unmarshal(data, &fixtures); err != nil {
			return fmt.Errorf("decode fixtures: %w", err)
		}
		logger.Info("catalog fixtures loaded", "path", path, "rooms", len(fixtures.Rooms), "services", len(fixtures.Services))
	} else {
		fixtures = defaultCatalog()
	}

	for _, fx := range fixtures.Rooms {
		currency := fx.Currency
		if currency == "" {
			currency = money.DefaultCurrency
		}
		rooms.Put(catalog.Room{
			ID:          catalog.RoomID(fx.ID),
			Type:        fx.Type,
			Capacity:    fx.Capacity,
			NightlyRate: money.Money{Amount: fx.NightlyRate, Currency: currency},
		})
	}
	for _, fx := range fixtures.Services {
		currency := fx.Currency
		if currency == "" {
			currency = money.DefaultCurrency
		}
		services.Put(catalog.Service{
			ID:    catalog.ServiceID(fx.ID),
			Name:  fx.Name,
			Price: money.Money{Amount: fx.Price, Currency: currency},
		})
	}
	return nil
}

func defaultCatalog() catalogFixtures {
	var fx catalogFixtures
	raw := `{
		"rooms": [
			{"id": "std-1", "type": "Standard", "capacity": 2, "nightly_rate": 6500000},
			{"id": "std-2", "type": "Standard", "capacity": 2, "nightly_rate": 6500000},
			{"id": "dbl-1", "type": "Double", "capacity": 4, "nightly_rate": 9800000},
			{"id": "fam-1", "type": "Family Suite", "capacity": 6, "nightly_rate": 14500000}
		],
		"services": [
			{"id": "breakfast", "name": "Breakfast", "price": 500000},
			{"id": "airport-shuttle", "name": "Airport shuttle", "price": 1500000},
			{"id": "spa-pass", "name": "Spa day pass", "price": 2200000}
		]
	}`
	_ = json.Unmarshal([]byte(raw), &fx)
	return fx
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
