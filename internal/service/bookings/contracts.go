package bookings

import (
	"context"

	"github.com/m04kA/SMC-TurfBooking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error)
	GetByTurfWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// TurfRepository интерфейс репозитория площадок
type TurfRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Turf, error)
}

// AdminChecker проверяет административные права пользователя
type AdminChecker interface {
	IsAdmin(userID int64) bool
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
