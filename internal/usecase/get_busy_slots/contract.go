package get_busy_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TurfBooking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetBusySlots(ctx context.Context, turfID int64, fromDate time.Time) ([]domain.BusySlot, error)
}

// TurfRepository интерфейс репозитория площадок
type TurfRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Turf, error)
}

// BusySlotsCache кэш занятых слотов.
// Set пропускает запись, если поколение площадки сменилось после Version
type BusySlotsCache interface {
	Get(ctx context.Context, turfID int64, fromDate time.Time) ([]domain.BusySlot, bool, error)
	Version(ctx context.Context, turfID int64) (int64, error)
	Set(ctx context.Context, turfID int64, fromDate time.Time, version int64, slots []domain.BusySlot) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
