package get_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-TurfBooking/internal/api/middleware"
	"github.com/m04kA/SMC-TurfBooking/internal/service/bookings"
	"github.com/m04kA/SMC-TurfBooking/internal/service/bookings/models"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingResponse), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(svc *mockService, path string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/bookings/{bookingId}", NewHandler(svc, nopLogger{}).Handle)

	req := httptest.NewRequest(http.MethodGet, path, nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), 7))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	t.Run("owner gets booking", func(t *testing.T) {
		svc := &mockService{}
		svc.On("GetByID", mock.Anything, int64(10), int64(7)).
			Return(&models.BookingResponse{ID: 10, UserID: 7, TurfName: "The Arena", TotalPrice: "1500.00"}, nil)

		rec := serve(svc, "/bookings/10")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"turfName":"The Arena"`)
	})

	t.Run("foreign booking is not found", func(t *testing.T) {
		svc := &mockService{}
		svc.On("GetByID", mock.Anything, int64(10), int64(7)).Return(nil, bookings.ErrBookingNotFound)
		assert.Equal(t, http.StatusNotFound, serve(svc, "/bookings/10").Code)
	})

	t.Run("bad id", func(t *testing.T) {
		svc := &mockService{}
		assert.Equal(t, http.StatusBadRequest, serve(svc, "/bookings/abc").Code)
		svc.AssertNotCalled(t, "GetByID")
	})

	t.Run("internal", func(t *testing.T) {
		svc := &mockService{}
		svc.On("GetByID", mock.Anything, mock.Anything, mock.Anything).Return(nil, bookings.ErrInternal)
		assert.Equal(t, http.StatusInternalServerError, serve(svc, "/bookings/10").Code)
	})
}
