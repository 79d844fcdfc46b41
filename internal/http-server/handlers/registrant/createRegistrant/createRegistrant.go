package createRegistrant

import (
	"errors"
	"eventpass/internal/lib/api/response"
	"eventpass/internal/lib/logger/sl"
	"eventpass/internal/models"
	"eventpass/internal/storage"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

type RegistrantRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone_number" validate:"required"`
}

type RegistrantResponse struct {
	response.Response
	RegistrantId int `json:"registrant_id"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=RegistrantSaver
type RegistrantSaver interface {
	CreateRegistrant(reg models.Registrant) (int, error)
}

func New(log *slog.Logger, saver RegistrantSaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.registrant.createRegistrant.New"

		log = log.With(slog.String("op", op))

		var req RegistrantRequest

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

		registrantId, err := saver.CreateRegistrant(models.Registrant{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
			Phone:     req.Phone,
		})
		if err != nil {
			log.Error("failed to create registrant", sl.Err(err))

			if errors.Is(err, storage.ErrEmailTaken) {
				render.Status(r, http.StatusConflict)
				render.JSON(w, r, response.Error("email already registered"))
				return
			}

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to create registrant"))

			return
		}

		log.Info("registrant created", slog.Int("id", registrantId))

		responseOK(w, r, registrantId)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, registrantId int) {
	render.JSON(w, r, RegistrantResponse{
		Response:     response.OK(),
		RegistrantId: registrantId,
	})
}
