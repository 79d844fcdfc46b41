package getEvent

import (
	"errors"
	"eventpass/internal/lib/api/response"
	"eventpass/internal/lib/logger/sl"
	"eventpass/internal/models"
	"eventpass/internal/storage"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

type EventInfoResponse struct {
	response.Response
	Event   *models.Event   `json:"event"`
	Tickets []models.Ticket `json:"tickets"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventGetter
type EventGetter interface {
	GetEventWithTickets(eventID int) (*models.Event, []models.Ticket, error)
}

func New(log *slog.Logger, info EventGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.getEvent.New"

		log = log.With(slog.String("op", op))

		eventIdStr := chi.URLParam(r, "id")
		if eventIdStr == "" {
			log.Error("event id is required")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("event id is required"))
			return
		}

		eventID, err := strconv.Atoi(eventIdStr)
		if err != nil {
			log.Error("invalid event id format", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid event id format"))
			return
		}

		log = log.With(slog.Int("event_id", eventID))

		event, tickets, err := info.GetEventWithTickets(eventID)
		if err != nil {
			log.Error("failed to get event information", sl.Err(err))

			if errors.Is(err, storage.ErrEventNotFound) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("event not found"))
				return
			}

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get event information"))
			return
		}

		log.Info("event info successfully received", slog.Int("event_id", eventID))

		responseOK(w, r, event, tickets)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, event *models.Event, tickets []models.Ticket) {
	render.JSON(w, r, EventInfoResponse{
		Response: response.OK(),
		Event:    event,
		Tickets:  tickets,
	})
}
