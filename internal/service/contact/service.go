package contact

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-TurfBooking/internal/domain"
)

// SendMessageRequest сообщение из формы обратной связи
type SendMessageRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// MessageResponse сохраненное сообщение
type MessageResponse struct {
	ID     int64     `json:"id"`
	SentAt time.Time `json:"sentAt"`
}

// Service сервис обратной связи
type Service struct {
	repo   ContactRepository
	logger Logger
}

// NewService создает новый экземпляр сервиса
func NewService(repo ContactRepository, logger Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Send сохраняет сообщение. Доставка уведомлений не выполняется.
func (s *Service) Send(ctx context.Context, req *SendMessageRequest) (*MessageResponse, error) {
	msg, err := normalize(req)
	if err != nil {
		s.logger.Warn("Send: validation failed: %v", err)
		return nil, err
	}

	s.logger.Info("Send: storing contact message from %s", msg.Email)

	saved, err := s.repo.Create(ctx, msg)
	if err != nil {
		s.logger.Error("Send: repository error: %v", err)
		return nil, fmt.Errorf("%w: Send - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Send: contact message id=%d stored", saved.ID)
	return &MessageResponse{ID: saved.ID, SentAt: saved.SentAt}, nil
}

func normalize(req *SendMessageRequest) (*domain.ContactMessage, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	message := strings.TrimSpace(req.Message)

	if name == "" || utf8.RuneCountInString(name) > domain.MaxContactNameLength {
		return nil, fmt.Errorf("%w: name must be 1-%d characters", ErrInvalidInput, domain.MaxContactNameLength)
	}
	if message == "" || utf8.RuneCountInString(message) > domain.MaxContactMessageLen {
		return nil, fmt.Errorf("%w: message must be 1-%d characters", ErrInvalidInput, domain.MaxContactMessageLen)
	}

	// Принимаем только голый адрес, без display name
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return nil, ErrInvalidEmail
	}

	return &domain.ContactMessage{Name: name, Email: email, Message: message}, nil
}
