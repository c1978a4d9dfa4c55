package cancel_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TurfBooking/internal/domain"
	"github.com/m04kA/SMC-TurfBooking/internal/infra/events"
	bookingRepo "github.com/m04kA/SMC-TurfBooking/internal/infra/storage/booking"
)

// UseCase use case отмены бронирования с расчетом возврата
type UseCase struct {
	bookingRepo  BookingRepository
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
	txManager TransactionManager,
	cache BusySlotsCache,
	publisher EventPublisher,
	metrics Metrics,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		cache:        cache,
		publisher:    publisher,
		metrics:      metrics,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case отмены.
// Сумма возврата вычисляется один раз при переходе в CANCELLED и больше не пересчитывается.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelBooking: booking=%d, user=%d", req.BookingID, req.UserID)

	if req.BookingID <= 0 || req.UserID <= 0 {
		return nil, fmt.Errorf("%w: bookingID and userID must be positive", ErrInvalidInput)
	}

	now := uc.timeProvider.Now().In(uc.location)

	var (
		booking *domain.Booking
		already bool
	)

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		b, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			return err
		}
		if b.UserID != req.UserID {
			return bookingRepo.ErrBookingNotFound
		}

		already, err = b.Cancel(now, uc.location)
		if err != nil {
			return err
		}

		if !already {
			if err := uc.bookingRepo.Cancel(txCtx, b); err != nil {
				return err
			}
		}

		booking = b
		return nil
	})

	if errors.Is(err, bookingRepo.ErrAlreadyCancelled) {
		// параллельная отмена успела раньше, отдаем сохраненный результат
		booking, err = uc.bookingRepo.GetByID(ctx, req.BookingID)
		already = true
	}

	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("CancelBooking: booking id=%d not found for user=%d", req.BookingID, req.UserID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("CancelBooking: failed to cancel booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	resp := &Response{
		Booking:          booking,
		RefundAmount:     booking.RefundAmount,
		AlreadyCancelled: already,
	}
	if booking.RefundTier != nil {
		resp.RefundTier = booking.RefundTier.String()
	}

	if already {
		uc.logger.Info("CancelBooking: booking id=%d already cancelled", booking.ID)
		return resp, nil
	}

	uc.logger.Info("CancelBooking: booking id=%d cancelled, refund=%s (%s)",
		booking.ID, booking.RefundAmount.StringFixed(2), resp.RefundTier)

	if err := uc.cache.Invalidate(ctx, booking.TurfID); err != nil {
		uc.logger.Warn("CancelBooking: failed to invalidate busy slots cache for turf=%d: %v", booking.TurfID, err)
	}
	if err := uc.publisher.Publish(ctx, events.NewBookingEvent(events.BookingCancelled, booking, now)); err != nil {
		uc.logger.Warn("CancelBooking: failed to publish event for booking id=%d: %v", booking.ID, err)
	}
	uc.metrics.IncBookingEvent(events.BookingCancelled)
	uc.metrics.IncRefund(resp.RefundTier)

	return resp, nil
}
