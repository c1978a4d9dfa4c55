package get_turf_bookings

import (
	"context"

	"github.com/m04kA/SMC-TurfBooking/internal/service/bookings/models"
)

type BookingService interface {
	GetTurfBookings(ctx context.Context, req *models.GetTurfBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
