package main

import (
	"context"
	"errors"
	"eventpass/internal/clock"
	"eventpass/internal/config"
	"eventpass/internal/http-server/handlers/event/createEvent"
	"eventpass/internal/http-server/handlers/event/getEvent"
	"eventpass/internal/http-server/handlers/event/listEvents"
	"eventpass/internal/http-server/handlers/registrant/createRegistrant"
	"eventpass/internal/http-server/handlers/ticket/cancelTicket"
	"eventpass/internal/http-server/handlers/ticket/issueTicket"
	"eventpass/internal/http-server/handlers/ticket/validateTicket"
	"eventpass/internal/http-server/middleware/mwlogger"
	"eventpass/internal/lib/logger/handlers/slogpretty"
	"eventpass/internal/lib/logger/sl"
	"eventpass/internal/models"
	"eventpass/internal/storage/memory"
	"eventpass/internal/storage/postgres"
	"eventpass/internal/storage/postgres/migrations"
	"eventpass/internal/validation"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

// Storage is the ledger surface the handlers are wired against; the local env
// runs on the in-memory implementation, everything else on postgres.
type Storage interface {
	CreateRegistrant(reg models.Registrant) (int, error)
	CreateEvent(event models.Event) (int, error)
	GetAllEvents() ([]models.Event, error)
	GetEventWithTickets(eventID int) (*models.Event, []models.Ticket, error)
	IssueTicket(registrantID, eventID int) (models.Ticket, error)
	CancelTicket(ticketID int) error
	RedeemTicket(token string, now time.Time) (models.Ticket, error)
	Close() error
}

func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("Starting eventpass", slog.String("env", cfg.Env))
	log.Debug("Debug messages are enabled")

	var storage Storage

	if cfg.Env == envLocal {
		log.Info("using in-memory storage")
		storage = memory.New(clock.NewSystem())
	} else {
		pg, err := postgres.InitDB(&cfg.Database)
		if err != nil {
			log.Error("failed to init storage", sl.Err(err))
			os.Exit(1)
		}

		if err = migrations.Run(pg.DB, log); err != nil {
			log.Error("failed to run migrations", sl.Err(err))
			os.Exit(1)
		}

		storage = pg
	}

	gate := validation.New(storage, clock.NewSystem())

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(mwlogger.New(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)

	router.Post("/registrants", createRegistrant.New(log, storage))
	router.Post("/events", createEvent.New(log, storage))
	router.Get("/events", listEvents.New(log, storage))
	router.Get("/events/{id}", getEvent.New(log, storage))
	router.Post("/events/{id}/tickets", issueTicket.New(log, storage))
	router.Post("/tickets/{id}/cancel", cancelTicket.New(log, storage))
	router.Post("/scan", validateTicket.New(log, gate))

	log.Info("starting server", slog.String("address", cfg.HTTPServer.Address))

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT, os.Interrupt)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed to start server", sl.Err(err))
			stop <- syscall.SIGTERM
		}
	}()

	sign := <-stop

	log.Info("application stopping", slog.String("signal", sign.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to shutdown server", sl.Err(err))
	}

	log.Info("application stopped")

	if err := storage.Close(); err != nil {
		log.Error("failed to close storage", sl.Err(err))
	}

	log.Info("storage closed")
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	h := opts.NewPrettyHandler(os.Stdout)

	return slog.New(h)
}
