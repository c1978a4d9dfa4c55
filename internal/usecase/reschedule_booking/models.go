package reschedule_booking

import (
	"time"

	"github.com/m04kA/SMC-TurfBooking/internal/domain"
	"github.com/m04kA/SMC-TurfBooking/pkg/types"
)

// Request модель запроса на перенос бронирования
type Request struct {
	BookingID int64
	UserID    int64
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
}

// Response перенесенное бронирование
type Response struct {
	Booking  *domain.Booking
	TurfName string
}
