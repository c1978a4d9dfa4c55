package update_turf

import (
	"context"

	"github.com/m04kA/SMC-TurfBooking/internal/service/turfs/models"
)

type TurfService interface {
	Update(ctx context.Context, id int64, req *models.UpdateTurfRequest) (*models.TurfResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
