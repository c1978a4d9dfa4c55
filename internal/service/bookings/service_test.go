package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TurfBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-TurfBooking/internal/infra/storage/booking"
	turfRepo "github.com/m04kA/SMC-TurfBooking/internal/infra/storage/turf"
	"github.com/m04kA/SMC-TurfBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-TurfBooking/pkg/ptr"
)

type mockBookingRepo struct {
	mock.Mock
}

func (m *mockBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *mockBookingRepo) GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	args := m.Called(ctx, userID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Booking), args.Error(1)
}

func (m *mockBookingRepo) GetByTurfWithFilter(ctx context.Context, f domain.BookingsFilter) ([]*domain.Booking, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Booking), args.Error(1)
}

type mockTurfRepo struct {
	mock.Mock
}

func (m *mockTurfRepo) GetByID(ctx context.Context, id int64) (*domain.Turf, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Turf), args.Error(1)
}

type adminSet map[int64]bool

func (a adminSet) IsAdmin(id int64) bool { return a[id] }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService() (*Service, *mockBookingRepo, *mockTurfRepo) {
	bookings := &mockBookingRepo{}
	turfs := &mockTurfRepo{}
	return NewService(bookings, turfs, adminSet{1: true}, nopLogger{}), bookings, turfs
}

func cancelledBooking() *domain.Booking {
	tier := domain.RefundTierStandardFee
	cancelledAt := time.Date(2026, 5, 10, 10, 0, 0, 0, time.UTC)
	return &domain.Booking{
		ID:           5,
		UserID:       3,
		TurfID:       7,
		BookingDate:  time.Date(2026, 5, 12, 0, 0, 0, 0, time.UTC),
		StartTime:    "18:00",
		EndTime:      "20:00",
		TotalPrice:   decimal.RequireFromString("2000"),
		RefundAmount: decimal.RequireFromString("1000"),
		RefundTier:   &tier,
		Status:       domain.StatusCancelled,
		CancelledAt:  &cancelledAt,
	}
}

func TestGetByID(t *testing.T) {
	t.Run("owner sees booking with refund details", func(t *testing.T) {
		svc, bookings, turfs := newTestService()
		bookings.On("GetByID", mock.Anything, int64(5)).Return(cancelledBooking(), nil)
		turfs.On("GetByID", mock.Anything, int64(7)).Return(&domain.Turf{ID: 7, Name: "Urban Kicks"}, nil)

		resp, err := svc.GetByID(context.Background(), 5, 3)
		require.NoError(t, err)

		assert.Equal(t, "Urban Kicks", resp.TurfName)
		assert.Equal(t, "2000.00", resp.TotalPrice)
		assert.Equal(t, 120, resp.DurationMinutes)
		require.NotNil(t, resp.RefundAmount)
		assert.Equal(t, "1000.00", *resp.RefundAmount)
		assert.Equal(t, "standard cancellation fee", *resp.RefundTier)
		assert.Equal(t, "2026-05-10T10:00:00Z", *resp.CancelledAt)
	})

	t.Run("foreign booking looks missing", func(t *testing.T) {
		svc, bookings, _ := newTestService()
		bookings.On("GetByID", mock.Anything, int64(5)).Return(cancelledBooking(), nil)

		_, err := svc.GetByID(context.Background(), 5, 4)
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})

	t.Run("repository failure", func(t *testing.T) {
		svc, bookings, _ := newTestService()
		bookings.On("GetByID", mock.Anything, int64(5)).Return(nil, bookingRepo.ErrExecQuery)

		_, err := svc.GetByID(context.Background(), 5, 3)
		assert.ErrorIs(t, err, ErrInternal)
	})
}

func TestGetUserBookings(t *testing.T) {
	t.Run("status filter", func(t *testing.T) {
		svc, bookings, _ := newTestService()
		confirmed := domain.StatusConfirmed
		bookings.On("GetByUserID", mock.Anything, int64(3), &confirmed).Return([]*domain.Booking{}, nil)

		resp, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
			RequesterID: 3,
			UserID:      3,
			Status:      ptr.Ptr("CONFIRMED"),
		})
		require.NoError(t, err)
		assert.NotNil(t, resp.Bookings)
		assert.Empty(t, resp.Bookings)
	})

	t.Run("other user", func(t *testing.T) {
		svc, _, _ := newTestService()
		_, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{RequesterID: 3, UserID: 4})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("unknown status", func(t *testing.T) {
		svc, _, _ := newTestService()
		_, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
			RequesterID: 3,
			UserID:      3,
			Status:      ptr.Ptr("NO_SHOW"),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestGetTurfBookings(t *testing.T) {
	day := time.Date(2026, 5, 12, 0, 0, 0, 0, time.UTC)

	t.Run("admin listing", func(t *testing.T) {
		svc, bookings, turfs := newTestService()
		turfs.On("GetByID", mock.Anything, int64(7)).Return(&domain.Turf{ID: 7}, nil)
		bookings.On("GetByTurfWithFilter", mock.Anything, mock.MatchedBy(func(f domain.BookingsFilter) bool {
			return f.TurfID == 7 && f.IncludeCancelled && f.StartDate.Equal(day)
		})).Return([]*domain.Booking{cancelledBooking()}, nil)

		resp, err := svc.GetTurfBookings(context.Background(), &models.GetTurfBookingsRequest{
			UserID:           1,
			TurfID:           7,
			StartDate:        &day,
			IncludeCancelled: true,
		})
		require.NoError(t, err)
		assert.Len(t, resp.Bookings, 1)
	})

	t.Run("not admin", func(t *testing.T) {
		svc, bookings, _ := newTestService()
		_, err := svc.GetTurfBookings(context.Background(), &models.GetTurfBookingsRequest{UserID: 3, TurfID: 7})
		assert.ErrorIs(t, err, ErrAccessDenied)
		bookings.AssertNotCalled(t, "GetByTurfWithFilter", mock.Anything, mock.Anything)
	})

	t.Run("inverted period", func(t *testing.T) {
		svc, _, _ := newTestService()
		before := day.AddDate(0, 0, -1)
		_, err := svc.GetTurfBookings(context.Background(), &models.GetTurfBookingsRequest{
			UserID: 1, TurfID: 7, StartDate: &day, EndDate: &before,
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("missing turf", func(t *testing.T) {
		svc, _, turfs := newTestService()
		turfs.On("GetByID", mock.Anything, int64(7)).Return(nil, turfRepo.ErrTurfNotFound)
		_, err := svc.GetTurfBookings(context.Background(), &models.GetTurfBookingsRequest{UserID: 1, TurfID: 7})
		assert.ErrorIs(t, err, ErrTurfNotFound)
	})

	t.Run("repository failure", func(t *testing.T) {
		svc, bookings, turfs := newTestService()
		turfs.On("GetByID", mock.Anything, int64(7)).Return(&domain.Turf{ID: 7}, nil)
		bookings.On("GetByTurfWithFilter", mock.Anything, mock.Anything).Return(nil, errors.New("boom"))
		_, err := svc.GetTurfBookings(context.Background(), &models.GetTurfBookingsRequest{UserID: 1, TurfID: 7})
		assert.ErrorIs(t, err, ErrInternal)
	})
}
