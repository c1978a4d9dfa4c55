package turfs

import (
	"context"

	"github.com/m04kA/SMC-TurfBooking/internal/domain"
)

// TurfRepository интерфейс репозитория площадок
type TurfRepository interface {
	Create(ctx context.Context, turf *domain.Turf) (*domain.Turf, error)
	GetByID(ctx context.Context, id int64) (*domain.Turf, error)
	List(ctx context.Context, filter domain.TurfFilter) ([]*domain.Turf, error)
	Update(ctx context.Context, id int64, turf *domain.Turf) (*domain.Turf, error)
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
