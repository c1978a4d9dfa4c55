package create_booking

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-TurfBooking/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID    int64            // ID пользователя
	TurfID    int64            // ID площадки
	Date      time.Time        // Дата бронирования (без времени)
	StartTime types.TimeString // Время начала (например, "14:00")
	EndTime   types.TimeString // Время окончания (не включительно)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID          int64
	UserID      int64
	TurfID      int64
	TurfName    string
	BookingDate time.Time
	StartTime   types.TimeString
	EndTime     types.TimeString
	TotalPrice  decimal.Decimal
	Status      string
	CreatedAt   time.Time
}
