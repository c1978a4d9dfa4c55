package list_turfs

import (
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-TurfBooking/internal/api/handlers"
	"github.com/m04kA/SMC-TurfBooking/internal/service/turfs/models"
)

const msgInvalidResidential = "некорректное значение residential"

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

// Handle GET /api/v1/turfs
// Query params: q (поиск по названию и адресу), residential (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := &models.ListTurfsRequest{}

	if q := r.URL.Query().Get("q"); q != "" {
		req.Query = &q
	}

	if s := r.URL.Query().Get("residential"); s != "" {
		residential, err := strconv.ParseBool(s)
		if err != nil {
			h.logger.Warn("GET /turfs - Invalid residential flag: %s", s)
			handlers.RespondBadRequest(w, msgInvalidResidential)
			return
		}
		req.Residential = &residential
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		h.logger.Error("GET /turfs - Failed to list turfs: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /turfs - Turfs retrieved successfully: count=%d", len(result.Turfs))
	handlers.RespondJSON(w, http.StatusOK, result.Turfs)
}
