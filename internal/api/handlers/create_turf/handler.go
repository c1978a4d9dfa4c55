package create_turf

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TurfBooking/internal/api/handlers"
	"github.com/m04kA/SMC-TurfBooking/internal/api/middleware"
	"github.com/m04kA/SMC-TurfBooking/internal/service/turfs"
	"github.com/m04kA/SMC-TurfBooking/internal/service/turfs/models"
)

const (
	msgMissingUserID   = "отсутствует ID пользователя"
	msgInvalidBody     = "некорректное тело запроса"
	msgInvalidTurfData = "некорректные данные площадки"
	msgForbidden       = "доступ запрещен"
)

type Handler struct {
	service TurfService
	logger  Logger
}

func NewHandler(service TurfService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/turfs
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /turfs - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.CreateTurfRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /turfs - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}
	req.UserID = userID

	turf, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, turfs.ErrAccessDenied):
			h.logger.Warn("POST /turfs - Access denied: user_id=%d", userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, turfs.ErrInvalidInput):
			h.logger.Warn("POST /turfs - Invalid turf data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidTurfData)

		default:
			h.logger.Error("POST /turfs - Failed to create turf: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /turfs - Turf created successfully: turf_id=%d, name=%q", turf.ID, turf.Name)
	handlers.RespondJSON(w, http.StatusCreated, turf)
}
