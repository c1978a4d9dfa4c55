package reschedule_booking

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TurfBooking/internal/domain"
	"github.com/m04kA/SMC-TurfBooking/internal/infra/events"
	bookingRepo "github.com/m04kA/SMC-TurfBooking/internal/infra/storage/booking"
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

func (m *mockBookingRepo) GetByTurfWithFilter(ctx context.Context, f domain.BookingsFilter) ([]*domain.Booking, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Booking), args.Error(1)
}

func (m *mockBookingRepo) Reschedule(ctx context.Context, b *domain.Booking) error {
	return m.Called(ctx, b).Error(0)
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

type mockCache struct {
	mock.Mock
}

func (m *mockCache) Invalidate(ctx context.Context, turfID int64) error {
	return m.Called(ctx, turfID).Error(0)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, e events.BookingEvent) error {
	return m.Called(ctx, e).Error(0)
}

type fakeMetrics struct {
	events []string
}

func (f *fakeMetrics) IncBookingEvent(event string) { f.events = append(f.events, event) }

type inlineTx struct{}

func (inlineTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var (
	kolkata, _ = time.LoadLocation("Asia/Kolkata")
	testNow    = time.Date(2026, 5, 10, 9, 0, 0, 0, kolkata)
	oldDate    = time.Date(2026, 5, 12, 0, 0, 0, 0, time.UTC)
	newDate    = time.Date(2026, 5, 13, 0, 0, 0, 0, time.UTC)
	testTurf   = &domain.Turf{ID: 7, Name: "Green Field", PricePerHour: decimal.RequireFromString("1500")}
)

type testDeps struct {
	bookings *mockBookingRepo
	turfs    *mockTurfRepo
	cache    *mockCache
	pub      *mockPublisher
	metrics  *fakeMetrics
}

func newTestUseCase() (*UseCase, *testDeps) {
	d := &testDeps{
		bookings: &mockBookingRepo{},
		turfs:    &mockTurfRepo{},
		cache:    &mockCache{},
		pub:      &mockPublisher{},
		metrics:  &fakeMetrics{},
	}
	uc := NewUseCase(d.bookings, d.turfs, inlineTx{}, d.cache, d.pub, d.metrics, kolkata, nopLogger{})
	uc.timeProvider = fixedTime{now: testNow}
	return uc, d
}

func pendingBooking() *domain.Booking {
	return &domain.Booking{
		ID:          5,
		UserID:      3,
		TurfID:      7,
		BookingDate: oldDate,
		StartTime:   "10:00",
		EndTime:     "11:00",
		TotalPrice:  decimal.RequireFromString("1000.00"),
		Status:      domain.StatusPending,
	}
}

func request() *Request {
	return &Request{BookingID: 5, UserID: 3, Date: newDate, StartTime: "18:00", EndTime: "20:00"}
}

func TestExecute_Success(t *testing.T) {
	uc, d := newTestUseCase()
	b := pendingBooking()

	d.bookings.On("GetByID", mock.Anything, int64(5)).Return(b, nil)
	d.turfs.On("GetByID", mock.Anything, int64(7)).Return(testTurf, nil)
	d.bookings.On("GetByTurfWithFilter", mock.Anything, mock.Anything).Return([]*domain.Booking{
		{ID: 8, BookingDate: newDate, StartTime: "20:00", EndTime: "21:00", Status: domain.StatusConfirmed},
	}, nil)
	d.bookings.On("Reschedule", mock.Anything, b).Return(nil)
	d.cache.On("Invalidate", mock.Anything, int64(7)).Return(nil)
	d.pub.On("Publish", mock.Anything, mock.MatchedBy(func(e events.BookingEvent) bool {
		return e.Event == events.BookingRescheduled && e.Date == "2026-05-13"
	})).Return(nil)

	resp, err := uc.Execute(context.Background(), request())
	require.NoError(t, err)

	assert.Equal(t, "3000.00", resp.Booking.TotalPrice.StringFixed(2))
	assert.Equal(t, domain.StatusPending, resp.Booking.Status)
	assert.Equal(t, "Green Field", resp.TurfName)
	assert.Equal(t, []string{events.BookingRescheduled}, d.metrics.events)
	d.pub.AssertExpectations(t)
}

func TestExecute_OverlapWithItselfIsAllowed(t *testing.T) {
	uc, d := newTestUseCase()
	b := pendingBooking()
	req := request()
	req.Date = oldDate
	req.StartTime, req.EndTime = "10:30", "11:30"

	d.bookings.On("GetByID", mock.Anything, int64(5)).Return(b, nil)
	d.turfs.On("GetByID", mock.Anything, int64(7)).Return(testTurf, nil)
	d.bookings.On("GetByTurfWithFilter", mock.Anything, mock.Anything).Return([]*domain.Booking{
		{ID: 5, BookingDate: oldDate, StartTime: "10:00", EndTime: "11:00", Status: domain.StatusPending},
	}, nil)
	d.bookings.On("Reschedule", mock.Anything, b).Return(nil)
	d.cache.On("Invalidate", mock.Anything, int64(7)).Return(nil)
	d.pub.On("Publish", mock.Anything, mock.Anything).Return(nil)

	_, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(d *testDeps)
		request func() *Request
		want    error
	}{
		{
			name: "foreign booking",
			setup: func(d *testDeps) {
				b := pendingBooking()
				b.UserID = 99
				d.bookings.On("GetByID", mock.Anything, int64(5)).Return(b, nil)
			},
			request: request,
			want:    ErrBookingNotFound,
		},
		{
			name: "missing booking",
			setup: func(d *testDeps) {
				d.bookings.On("GetByID", mock.Anything, int64(5)).Return(nil, bookingRepo.ErrBookingNotFound)
			},
			request: request,
			want:    ErrBookingNotFound,
		},
		{
			name: "confirmed booking",
			setup: func(d *testDeps) {
				b := pendingBooking()
				b.Status = domain.StatusConfirmed
				d.bookings.On("GetByID", mock.Anything, int64(5)).Return(b, nil)
				d.turfs.On("GetByID", mock.Anything, int64(7)).Return(testTurf, nil)
			},
			request: request,
			want:    ErrNotReschedulable,
		},
		{
			name: "conflict with another booking",
			setup: func(d *testDeps) {
				d.bookings.On("GetByID", mock.Anything, int64(5)).Return(pendingBooking(), nil)
				d.turfs.On("GetByID", mock.Anything, int64(7)).Return(testTurf, nil)
				d.bookings.On("GetByTurfWithFilter", mock.Anything, mock.Anything).Return([]*domain.Booking{
					{ID: 8, BookingDate: newDate, StartTime: "19:00", EndTime: "21:00", Status: domain.StatusPending},
				}, nil)
			},
			request: request,
			want:    ErrSlotConflict,
		},
		{
			name: "exclusion constraint",
			setup: func(d *testDeps) {
				d.bookings.On("GetByID", mock.Anything, int64(5)).Return(pendingBooking(), nil)
				d.turfs.On("GetByID", mock.Anything, int64(7)).Return(testTurf, nil)
				d.bookings.On("GetByTurfWithFilter", mock.Anything, mock.Anything).Return([]*domain.Booking{}, nil)
				d.bookings.On("Reschedule", mock.Anything, mock.Anything).Return(bookingRepo.ErrSlotConflict)
			},
			request: request,
			want:    ErrSlotConflict,
		},
		{
			name: "too short",
			setup: func(d *testDeps) {
				d.bookings.On("GetByID", mock.Anything, int64(5)).Return(pendingBooking(), nil)
				d.turfs.On("GetByID", mock.Anything, int64(7)).Return(testTurf, nil)
			},
			request: func() *Request {
				r := request()
				r.EndTime = "18:30"
				return r
			},
			want: ErrMinimumDuration,
		},
		{
			name: "past date",
			setup: func(d *testDeps) {
				d.bookings.On("GetByID", mock.Anything, int64(5)).Return(pendingBooking(), nil)
				d.turfs.On("GetByID", mock.Anything, int64(7)).Return(testTurf, nil)
			},
			request: func() *Request {
				r := request()
				r.Date = time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
				return r
			},
			want: ErrPastTime,
		},
		{
			name:  "bad time format",
			setup: func(d *testDeps) {},
			request: func() *Request {
				r := request()
				r.StartTime = "6pm"
				return r
			},
			want: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, d := newTestUseCase()
			tt.setup(d)

			_, err := uc.Execute(context.Background(), tt.request())

			assert.ErrorIs(t, err, tt.want)
			d.cache.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
			assert.Empty(t, d.metrics.events)
		})
	}
}
