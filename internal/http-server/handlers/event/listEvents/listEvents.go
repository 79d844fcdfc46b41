package listEvents

import (
	"eventpass/internal/lib/api/response"
	"eventpass/internal/lib/logger/sl"
	"eventpass/internal/models"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
)

type EventsResponse struct {
	response.Response
	Events []models.Event `json:"events"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventLister
type EventLister interface {
	GetAllEvents() ([]models.Event, error)
}

func New(log *slog.Logger, lister EventLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.listEvents.New"

		log = log.With(slog.String("op", op))

		events, err := lister.GetAllEvents()
		if err != nil {
			log.Error("failed to get events", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get events"))
			return
		}

		log.Info("events received", slog.Int("count", len(events)))

		render.JSON(w, r, EventsResponse{
			Response: response.OK(),
			Events:   events,
		})
	}
}
