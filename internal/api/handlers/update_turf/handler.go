package update_turf

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TurfBooking/internal/api/handlers"
	"github.com/m04kA/SMC-TurfBooking/internal/api/middleware"
	"github.com/m04kA/SMC-TurfBooking/internal/service/turfs"
	"github.com/m04kA/SMC-TurfBooking/internal/service/turfs/models"
)

const (
	msgInvalidTurfID   = "некорректный ID площадки"
	msgMissingUserID   = "отсутствует ID пользователя"
	msgInvalidBody     = "некорректное тело запроса"
	msgInvalidTurfData = "некорректные данные площадки"
	msgTurfNotFound    = "площадка не найдена"
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

// Handle PUT /api/v1/turfs/{turfId}
// Цены существующих бронирований не пересчитываются
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	turfID, err := strconv.ParseInt(mux.Vars(r)["turfId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /turfs/{id} - Invalid turf ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTurfID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /turfs/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.UpdateTurfRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /turfs/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}
	req.UserID = userID

	turf, err := h.service.Update(r.Context(), turfID, &req)
	if err != nil {
		switch {
		case errors.Is(err, turfs.ErrAccessDenied):
			h.logger.Warn("PUT /turfs/{id} - Access denied: turf_id=%d, user_id=%d", turfID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, turfs.ErrTurfNotFound):
			handlers.RespondNotFound(w, msgTurfNotFound)

		case errors.Is(err, turfs.ErrInvalidInput):
			h.logger.Warn("PUT /turfs/{id} - Invalid turf data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidTurfData)

		default:
			h.logger.Error("PUT /turfs/{id} - Failed to update turf: turf_id=%d, error=%v", turfID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /turfs/{id} - Turf updated successfully: turf_id=%d, user_id=%d", turfID, userID)
	handlers.RespondJSON(w, http.StatusOK, turf)
}
