package send_contact_message

import (
	"context"

	"github.com/m04kA/SMC-TurfBooking/internal/service/contact"
)

type ContactService interface {
	Send(ctx context.Context, req *contact.SendMessageRequest) (*contact.MessageResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
