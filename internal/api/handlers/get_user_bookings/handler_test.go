package get_user_bookings

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

func (m *mockService) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingListResponse), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(svc *mockService, path string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/users/{userId}/bookings", NewHandler(svc, nopLogger{}).Handle)

	req := httptest.NewRequest(http.MethodGet, path, nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), 7))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_PassesStatusAndRequester(t *testing.T) {
	svc := &mockService{}
	svc.On("GetUserBookings", mock.Anything, mock.MatchedBy(func(req *models.GetUserBookingsRequest) bool {
		return req.UserID == 7 && req.RequesterID == 7 && req.Status != nil && *req.Status == "CONFIRMED"
	})).Return(&models.BookingListResponse{Bookings: []models.BookingResponse{{ID: 2}, {ID: 1}}}, nil)

	rec := serve(svc, "/users/7/bookings?status=CONFIRMED")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"id":2,"userId":0,"turfId":0,"bookingDate":"","startTime":"","endTime":"","durationMinutes":0,"totalPrice":"","status":"","createdAt":"0001-01-01T00:00:00Z","updatedAt":"0001-01-01T00:00:00Z"},
		{"id":1,"userId":0,"turfId":0,"bookingDate":"","startTime":"","endTime":"","durationMinutes":0,"totalPrice":"","status":"","createdAt":"0001-01-01T00:00:00Z","updatedAt":"0001-01-01T00:00:00Z"}]`,
		rec.Body.String())
}

func TestHandle_EmptyListIsArray(t *testing.T) {
	svc := &mockService{}
	svc.On("GetUserBookings", mock.Anything, mock.Anything).
		Return(&models.BookingListResponse{Bookings: []models.BookingResponse{}}, nil)

	rec := serve(svc, "/users/7/bookings")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"someone else's dashboard", bookings.ErrAccessDenied, http.StatusForbidden},
		{"bad status", bookings.ErrInvalidInput, http.StatusBadRequest},
		{"storage", bookings.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			svc.On("GetUserBookings", mock.Anything, mock.Anything).Return(nil, tt.err)
			assert.Equal(t, tt.want, serve(svc, "/users/7/bookings?status=x").Code)
		})
	}
}
