package cancelTicket

import (
	"errors"
	"eventpass/internal/lib/api/response"
	"eventpass/internal/lib/logger/sl"
	"eventpass/internal/storage"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

type CancelResponse struct {
	response.Response
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=TicketCanceller
type TicketCanceller interface {
	CancelTicket(ticketID int) error
}

func New(log *slog.Logger, canceller TicketCanceller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ticket.cancelTicket.New"

		log = log.With(slog.String("op", op))

		ticketIdStr := chi.URLParam(r, "id")
		if ticketIdStr == "" {
			log.Error("ticket id is required")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("ticket id is required"))
			return
		}

		ticketID, err := strconv.Atoi(ticketIdStr)
		if err != nil {
			log.Error("invalid ticket id format", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid ticket id format"))
			return
		}

		log = log.With(slog.Int("ticket_id", ticketID))

		err = canceller.CancelTicket(ticketID)
		if err != nil {
			log.Error("failed to cancel ticket", sl.Err(err))

			switch {
			case errors.Is(err, storage.ErrTicketNotFound):
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("ticket not found"))
			case errors.Is(err, storage.ErrInvalidTransition):
				render.Status(r, http.StatusConflict)
				render.JSON(w, r, response.Error("ticket is not valid anymore"))
			default:
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("failed to cancel ticket"))
			}

			return
		}

		log.Info("ticket cancelled")

		render.JSON(w, r, CancelResponse{
			Response: response.OK(),
		})
	}
}
