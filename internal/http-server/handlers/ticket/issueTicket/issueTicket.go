package issueTicket

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
	"github.com/go-playground/validator/v10"
)

type IssueRequest struct {
	RegistrantId int `json:"registrant_id" validate:"required"`
}

type IssueResponse struct {
	response.Response
	Ticket models.Ticket `json:"ticket"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=TicketIssuer
type TicketIssuer interface {
	IssueTicket(registrantID, eventID int) (models.Ticket, error)
}

func New(log *slog.Logger, issuer TicketIssuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ticket.issueTicket.New"

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

		var req IssueRequest

		err = render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		log.Info("request body decoded", slog.Any("request", req))

		if err = validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			if errors.As(err, &validateErr) {
				log.Error("invalid request", sl.Err(err))
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.ValidationError(validateErr))
				return
			}
		}

		ticket, err := issuer.IssueTicket(req.RegistrantId, eventID)
		if err != nil {
			log.Error("failed to issue ticket", sl.Err(err))

			switch {
			case errors.Is(err, storage.ErrRegistrantNotFound):
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("registrant not found"))
			case errors.Is(err, storage.ErrEventNotFound):
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("event not found"))
			case errors.Is(err, storage.ErrCapacityExceeded):
				render.Status(r, http.StatusConflict)
				render.JSON(w, r, response.Error("event capacity exceeded"))
			default:
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("failed to issue ticket"))
			}

			return
		}

		log.Info("ticket issued",
			slog.Int("ticket_id", ticket.ID),
			slog.Int("registrant_id", req.RegistrantId),
		)

		responseOK(w, r, ticket)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, ticket models.Ticket) {
	render.JSON(w, r, IssueResponse{
		Response: response.OK(),
		Ticket:   ticket,
	})
}
