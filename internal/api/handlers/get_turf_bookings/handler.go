package get_turf_bookings

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TurfBooking/internal/api/handlers"
	"github.com/m04kA/SMC-TurfBooking/internal/api/middleware"
	"github.com/m04kA/SMC-TurfBooking/internal/domain"
	"github.com/m04kA/SMC-TurfBooking/internal/service/bookings"
	"github.com/m04kA/SMC-TurfBooking/internal/service/bookings/models"
)

const (
	msgInvalidTurfID = "некорректный ID площадки"
	msgMissingUserID = "отсутствует ID пользователя"
	msgInvalidParams = "некорректные параметры запроса"
	msgForbidden     = "доступ запрещен"
	msgTurfNotFound  = "площадка не найдена"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/turfs/{turfId}/bookings
// Query params: from, to, status, includeCancelled (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	turfID, err := strconv.ParseInt(mux.Vars(r)["turfId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /turfs/{id}/bookings - Invalid turf ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTurfID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /turfs/{id}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	req, err := parseQuery(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /turfs/{id}/bookings - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}
	req.TurfID = turfID
	req.UserID = userID

	result, err := h.service.GetTurfBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /turfs/{id}/bookings - Access denied: turf_id=%d, user_id=%d", turfID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrTurfNotFound):
			handlers.RespondNotFound(w, msgTurfNotFound)

		case errors.Is(err, bookings.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /turfs/{id}/bookings - Failed to get bookings: turf_id=%d, error=%v", turfID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /turfs/{id}/bookings - Bookings retrieved successfully: turf_id=%d, count=%d",
		turfID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result.Bookings)
}

func parseQuery(q url.Values) (*models.GetTurfBookingsRequest, error) {
	req := &models.GetTurfBookingsRequest{}

	if s := q.Get("from"); s != "" {
		from, err := time.Parse(domain.DateFormat, s)
		if err != nil {
			return nil, err
		}
		req.StartDate = &from
	}

	if s := q.Get("to"); s != "" {
		to, err := time.Parse(domain.DateFormat, s)
		if err != nil {
			return nil, err
		}
		req.EndDate = &to
	}

	if s := q.Get("status"); s != "" {
		req.Status = &s
	}

	if s := q.Get("includeCancelled"); s != "" {
		include, err := strconv.ParseBool(s)
		if err != nil {
			return nil, err
		}
		req.IncludeCancelled = include
	}

	return req, nil
}
