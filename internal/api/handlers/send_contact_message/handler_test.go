package send_contact_message

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-TurfBooking/internal/service/contact"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Send(ctx context.Context, req *contact.SendMessageRequest) (*contact.MessageResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*contact.MessageResponse), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(svc *mockService, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(rec, httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(body)))
	return rec
}

func TestHandle(t *testing.T) {
	const body = `{"name":"Asha","email":"asha@example.com","message":"Floodlights?"}`

	t.Run("stored", func(t *testing.T) {
		svc := &mockService{}
		svc.On("Send", mock.Anything, &contact.SendMessageRequest{Name: "Asha", Email: "asha@example.com", Message: "Floodlights?"}).
			Return(&contact.MessageResponse{ID: 1, SentAt: time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)}, nil)

		rec := serve(svc, body)
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.JSONEq(t, `{"id":1,"sentAt":"2025-10-01T09:00:00Z"}`, rec.Body.String())
	})

	t.Run("invalid email", func(t *testing.T) {
		svc := &mockService{}
		svc.On("Send", mock.Anything, mock.Anything).Return(nil, contact.ErrInvalidEmail)
		rec := serve(svc, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "почты")
	})

	t.Run("missing fields", func(t *testing.T) {
		svc := &mockService{}
		svc.On("Send", mock.Anything, mock.Anything).Return(nil, contact.ErrInvalidInput)
		assert.Equal(t, http.StatusBadRequest, serve(svc, `{"email":"a@b.c"}`).Code)
	})

	t.Run("storage", func(t *testing.T) {
		svc := &mockService{}
		svc.On("Send", mock.Anything, mock.Anything).Return(nil, contact.ErrInternal)
		assert.Equal(t, http.StatusInternalServerError, serve(svc, body).Code)
	})
}
