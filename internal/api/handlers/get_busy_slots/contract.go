package get_busy_slots

import (
	"context"

	getBusySlots "github.com/m04kA/SMC-TurfBooking/internal/usecase/get_busy_slots"
)

type GetBusySlotsUseCase interface {
	Execute(ctx context.Context, req *getBusySlots.Request) (*getBusySlots.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
