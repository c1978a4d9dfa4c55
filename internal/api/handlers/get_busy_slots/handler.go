package get_busy_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TurfBooking/internal/api/handlers"
	"github.com/m04kA/SMC-TurfBooking/internal/domain"
	getBusySlots "github.com/m04kA/SMC-TurfBooking/internal/usecase/get_busy_slots"
)

const (
	msgInvalidTurfID = "некорректный ID площадки"
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgTurfNotFound  = "площадка не найдена"
)

type Handler struct {
	useCase GetBusySlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetBusySlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/turfs/{turfId}/busy-slots
// Query params: from (optional, YYYY-MM-DD, по умолчанию сегодня)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	turfID, err := strconv.ParseInt(mux.Vars(r)["turfId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /turfs/{id}/busy-slots - Invalid turf ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTurfID)
		return
	}

	req := &getBusySlots.Request{TurfID: turfID}

	if fromStr := r.URL.Query().Get("from"); fromStr != "" {
		from, err := time.Parse(domain.DateFormat, fromStr)
		if err != nil {
			h.logger.Warn("GET /turfs/{id}/busy-slots - Invalid date format: %s", fromStr)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.FromDate = &from
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getBusySlots.ErrTurfNotFound):
			h.logger.Warn("GET /turfs/{id}/busy-slots - Turf not found: turf_id=%d", turfID)
			handlers.RespondNotFound(w, msgTurfNotFound)

		case errors.Is(err, getBusySlots.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidTurfID)

		default:
			h.logger.Error("GET /turfs/{id}/busy-slots - Failed to get busy slots: turf_id=%d, error=%v", turfID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /turfs/{id}/busy-slots - Busy slots retrieved: turf_id=%d, count=%d", turfID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
