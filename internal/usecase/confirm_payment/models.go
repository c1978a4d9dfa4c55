package confirm_payment

import "github.com/m04kA/SMC-TurfBooking/internal/domain"

// Request модель запроса на подтверждение оплаты
type Request struct {
	BookingID int64
	UserID    int64
}

// Response результат оплаты
type Response struct {
	Booking *domain.Booking
	// AlreadyConfirmed бронь была оплачена раньше, ничего не изменено
	AlreadyConfirmed bool
}
