package contact

import (
	"context"

	"github.com/m04kA/SMC-TurfBooking/internal/domain"
)

// ContactRepository интерфейс хранилища сообщений обратной связи
type ContactRepository interface {
	Create(ctx context.Context, msg *domain.ContactMessage) (*domain.ContactMessage, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
