package domain

import "time"

// ContactMessage сообщение из формы обратной связи
type ContactMessage struct {
	ID      int64
	Name    string
	Email   string
	Message string
	SentAt  time.Time
}
