package validateTicket

import (
	"errors"
	"eventpass/internal/lib/api/response"
	"eventpass/internal/lib/logger/sl"
	"eventpass/internal/validation"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

type ScanRequest struct {
	// the decoded QR payload, exactly as the scanner produced it
	Token string `json:"token" validate:"required"`
}

type ScanResponse struct {
	response.Response
	Result validation.Result `json:"result"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=TokenValidator
type TokenValidator interface {
	Validate(tokenString string) (validation.Result, error)
}

func New(log *slog.Logger, gate TokenValidator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ticket.validateTicket.New"

		log = log.With(slog.String("op", op))

		var req ScanRequest

		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		if err = validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			if errors.As(err, &validateErr) {
				log.Error("invalid request", sl.Err(err))
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.ValidationError(validateErr))
				return
			}
		}

		result, err := gate.Validate(req.Token)
		if err != nil {
			log.Error("failed to validate ticket", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to validate ticket"))
			return
		}

		if !result.Accepted {
			log.Info("ticket rejected", slog.String("reason", string(result.Reason)))

			render.Status(r, rejectionStatus(result.Reason))
			render.JSON(w, r, ScanResponse{
				Response: response.Error(string(result.Reason)),
				Result:   result,
			})
			return
		}

		log.Info("ticket accepted", slog.Int("ticket_id", result.Ticket.ID))

		render.JSON(w, r, ScanResponse{
			Response: response.OK(),
			Result:   result,
		})
	}
}

func rejectionStatus(reason validation.Reason) int {
	if reason == validation.ReasonUnknownToken {
		return http.StatusNotFound
	}
	return http.StatusConflict
}
