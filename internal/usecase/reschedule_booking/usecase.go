package reschedule_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TurfBooking/internal/domain"
	"github.com/m04kA/SMC-TurfBooking/internal/infra/events"
	bookingRepo "github.com/m04kA/SMC-TurfBooking/internal/infra/storage/booking"
	turfRepo "github.com/m04kA/SMC-TurfBooking/internal/infra/storage/turf"
)

var errConflictDetected = errors.New("conflict detected")

// UseCase use case переноса неоплаченного бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	turfRepo     TurfRepository
	txManager    TransactionManager
	cache        BusySlotsCache
	publisher    EventPublisher
	metrics      Metrics
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	turfRepo TurfRepository,
	txManager TransactionManager,
	cache BusySlotsCache,
	publisher EventPublisher,
	metrics Metrics,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		turfRepo:     turfRepo,
		txManager:    txManager,
		cache:        cache,
		publisher:    publisher,
		metrics:      metrics,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute переносит бронь на новую дату и время той же площадки.
// Цена пересчитывается по текущему тарифу площадки.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleBooking: booking=%d, user=%d, date=%s, time=%s-%s",
		req.BookingID, req.UserID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now().In(uc.location)

	var (
		result *domain.Booking
		turf   *domain.Turf
		oldDay time.Time
	)

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		b, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			return err
		}
		if b.UserID != req.UserID {
			return bookingRepo.ErrBookingNotFound
		}
		oldDay = b.BookingDate

		turf, err = uc.turfRepo.GetByID(txCtx, b.TurfID)
		if err != nil {
			return err
		}

		if err := b.Reschedule(turf, req.Date, req.StartTime, req.EndTime, now); err != nil {
			return err
		}

		existing, err := uc.bookingRepo.GetByTurfWithFilter(txCtx, domain.BookingsFilter{
			TurfID:    b.TurfID,
			StartDate: &req.Date,
			EndDate:   &req.Date,
		})
		if err != nil {
			return err
		}

		// сама бронь не конфликтует со своим прежним слотом
		if domain.HasConflict(existing, req.Date, req.StartTime, req.EndTime, &b.ID) {
			return errConflictDetected
		}

		if err := uc.bookingRepo.Reschedule(txCtx, b); err != nil {
			return err
		}

		result = b
		return nil
	})

	if err != nil {
		return nil, uc.handleError(req, err)
	}

	uc.logger.Info("RescheduleBooking: booking id=%d moved from %s to %s %s-%s, price=%s",
		result.ID, oldDay.Format(domain.DateFormat), result.BookingDate.Format(domain.DateFormat),
		result.StartTime, result.EndTime, result.TotalPrice.StringFixed(2))

	if err := uc.cache.Invalidate(ctx, result.TurfID); err != nil {
		uc.logger.Warn("RescheduleBooking: failed to invalidate busy slots cache for turf=%d: %v", result.TurfID, err)
	}
	if err := uc.publisher.Publish(ctx, events.NewBookingEvent(events.BookingRescheduled, result, now)); err != nil {
		uc.logger.Warn("RescheduleBooking: failed to publish event for booking id=%d: %v", result.ID, err)
	}
	uc.metrics.IncBookingEvent(events.BookingRescheduled)

	return &Response{Booking: result, TurfName: turf.Name}, nil
}

func (uc *UseCase) handleError(req *Request, err error) error {
	switch {
	case errors.Is(err, bookingRepo.ErrBookingNotFound):
		uc.logger.Warn("RescheduleBooking: booking id=%d not found for user=%d", req.BookingID, req.UserID)
		return ErrBookingNotFound
	case errors.Is(err, domain.ErrNotReschedulable):
		return ErrNotReschedulable
	case errors.Is(err, errConflictDetected), errors.Is(err, bookingRepo.ErrSlotConflict):
		uc.logger.Warn("RescheduleBooking: slot %s %s-%s is already booked",
			req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)
		return ErrSlotConflict
	case errors.Is(err, domain.ErrPastTime):
		return ErrPastTime
	case errors.Is(err, domain.ErrMinimumDuration):
		return ErrMinimumDuration
	case errors.Is(err, domain.ErrInvalidTimeRange):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	case errors.Is(err, turfRepo.ErrTurfNotFound):
		// площадка брони пропала: данные неконсистентны
		uc.logger.Error("RescheduleBooking: turf of booking id=%d not found", req.BookingID)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	default:
		uc.logger.Error("RescheduleBooking: failed to reschedule booking id=%d: %v", req.BookingID, err)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}

func validateRequest(req *Request) error {
	if req.BookingID <= 0 || req.UserID <= 0 {
		return fmt.Errorf("%w: bookingID and userID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}
	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime format: %v", ErrInvalidInput, err)
	}
	return nil
}
