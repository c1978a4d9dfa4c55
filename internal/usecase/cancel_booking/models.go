package cancel_booking

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-TurfBooking/internal/domain"
)

// Request модель запроса на отмену бронирования
type Request struct {
	BookingID int64
	UserID    int64
}

// Response результат отмены
type Response struct {
	Booking      *domain.Booking
	RefundAmount decimal.Decimal
	RefundTier   string
	// AlreadyCancelled повторная отмена: возврат не пересчитывался, возвращены сохраненные значения
	AlreadyCancelled bool
}
