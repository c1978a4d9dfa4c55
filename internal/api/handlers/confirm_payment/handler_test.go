package confirm_payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TurfBooking/internal/api/middleware"
	"github.com/m04kA/SMC-TurfBooking/internal/domain"
	confirmPayment "github.com/m04kA/SMC-TurfBooking/internal/usecase/confirm_payment"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *confirmPayment.Request) (*confirmPayment.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*confirmPayment.Response), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(uc *mockUseCase, path string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/bookings/{bookingId}/pay", NewHandler(uc, nopLogger{}).Handle)

	req := httptest.NewRequest(http.MethodPost, path, nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), 3))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Confirmed(t *testing.T) {
	for _, already := range []bool{false, true} {
		uc := &mockUseCase{}
		uc.On("Execute", mock.Anything, &confirmPayment.Request{BookingID: 5, UserID: 3}).Return(&confirmPayment.Response{
			Booking:          &domain.Booking{ID: 5, UserID: 3, Status: domain.StatusConfirmed},
			AlreadyConfirmed: already,
		}, nil)

		rec := serve(uc, "/bookings/5/pay")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp PaymentResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, already, resp.AlreadyPaid)
		assert.Equal(t, "CONFIRMED", resp.Booking.Status)
	}
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", confirmPayment.ErrBookingNotFound, http.StatusNotFound},
		{"cancelled", confirmPayment.ErrBookingCancelled, http.StatusConflict},
		{"internal", confirmPayment.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)
			assert.Equal(t, tt.want, serve(uc, "/bookings/5/pay").Code)
		})
	}
}
