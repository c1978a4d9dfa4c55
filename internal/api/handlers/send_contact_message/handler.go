package send_contact_message

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TurfBooking/internal/api/handlers"
	"github.com/m04kA/SMC-TurfBooking/internal/service/contact"
)

const (
	msgInvalidBody  = "некорректное тело запроса"
	msgInvalidForm  = "имя и сообщение обязательны"
	msgInvalidEmail = "некорректный адрес электронной почты"
)

type Handler struct {
	service ContactService
	logger  Logger
}

func NewHandler(service ContactService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/contact
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req contact.SendMessageRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /contact - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	result, err := h.service.Send(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, contact.ErrInvalidEmail):
			handlers.RespondBadRequest(w, msgInvalidEmail)

		case errors.Is(err, contact.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidForm)

		default:
			h.logger.Error("POST /contact - Failed to store message: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /contact - Message stored: id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
