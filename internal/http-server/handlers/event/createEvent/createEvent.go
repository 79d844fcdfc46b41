package createEvent

import (
	"errors"
	"eventpass/internal/lib/api/response"
	"eventpass/internal/lib/logger/sl"
	"eventpass/internal/models"
	"eventpass/internal/storage"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

type EventRequest struct {
	Slug        string    `json:"slug" validate:"required"`
	Name        string    `json:"name" validate:"required"`
	Description string    `json:"description"`
	Date        time.Time `json:"date" validate:"required"`
	Time        string    `json:"time" validate:"required"`
	Place       string    `json:"place" validate:"required"`
	// absent or null means unlimited
	ParticipantsLimit *int `json:"participants_limit" validate:"omitempty,min=1"`
}

type EventResponse struct {
	response.Response
	EventId int `json:"event_id"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventCreator
type EventCreator interface {
	CreateEvent(event models.Event) (int, error)
}

func New(log *slog.Logger, event EventCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.createEvent.New"

		log = log.With(
			slog.String("op", op),
		)

		var req EventRequest

		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))

			return
		}

		log.Info("request body decoded", slog.Any("request", req))

		if err = validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			errors.As(err, &validateErr)

			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErr))

			return
		}

		eventId, err := event.CreateEvent(models.Event{
			Slug:              req.Slug,
			Name:              req.Name,
			Description:       req.Description,
			Date:              req.Date,
			Time:              req.Time,
			Place:             req.Place,
			ParticipantsLimit: req.ParticipantsLimit,
		})
		if err != nil {
			log.Error("failed to add event", sl.Err(err))

			if errors.Is(err, storage.ErrSlugTaken) {
				render.Status(r, http.StatusConflict)
				render.JSON(w, r, response.Error("event slug already taken"))
				return
			}

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to add event"))

			return
		}

		log.Info("event added", slog.Int("id", eventId))

		responseOK(w, r, eventId)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, eventId int) {
	render.JSON(w, r, EventResponse{
		Response: response.OK(),
		EventId:  eventId,
	})
}
