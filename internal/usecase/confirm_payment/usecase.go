package confirm_payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TurfBooking/internal/domain"
	"github.com/m04kA/SMC-TurfBooking/internal/infra/events"
	bookingRepo "github.com/m04kA/SMC-TurfBooking/internal/infra/storage/booking"
)

// UseCase use case подтверждения оплаты.
// Платежный шлюз не подключен: оплата - это переход PENDING -> CONFIRMED.
type UseCase struct {
	bookingRepo  BookingRepository
	txManager    TransactionManager
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
	publisher EventPublisher,
	metrics Metrics,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		publisher:    publisher,
		metrics:      metrics,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case подтверждения оплаты
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ConfirmPayment: booking=%d, user=%d", req.BookingID, req.UserID)

	if req.BookingID <= 0 || req.UserID <= 0 {
		return nil, fmt.Errorf("%w: bookingID and userID must be positive", ErrInvalidInput)
	}

	now := uc.timeProvider.Now().In(uc.location)

	var (
		booking *domain.Booking
		already bool
	)

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// Строка блокируется до конца транзакции
		b, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			return err
		}
		if b.UserID != req.UserID {
			return bookingRepo.ErrBookingNotFound
		}

		already, err = b.Confirm(now)
		if err != nil {
			return err
		}

		if !already {
			if err := uc.bookingRepo.UpdateStatus(txCtx, b.ID, b.Status, now); err != nil {
				return err
			}
		}

		booking = b
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrBookingNotFound):
			uc.logger.Warn("ConfirmPayment: booking id=%d not found for user=%d", req.BookingID, req.UserID)
			return nil, ErrBookingNotFound
		case errors.Is(err, domain.ErrBookingCancelled):
			uc.logger.Warn("ConfirmPayment: booking id=%d is cancelled", req.BookingID)
			return nil, ErrBookingCancelled
		default:
			uc.logger.Error("ConfirmPayment: failed to confirm booking id=%d: %v", req.BookingID, err)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
	}

	if already {
		uc.logger.Info("ConfirmPayment: booking id=%d already paid", booking.ID)
		return &Response{Booking: booking, AlreadyConfirmed: true}, nil
	}

	if err := uc.publisher.Publish(ctx, events.NewBookingEvent(events.BookingConfirmed, booking, now)); err != nil {
		uc.logger.Warn("ConfirmPayment: failed to publish event for booking id=%d: %v", booking.ID, err)
	}
	uc.metrics.IncBookingEvent(events.BookingConfirmed)

	uc.logger.Info("ConfirmPayment: booking id=%d confirmed", booking.ID)

	return &Response{Booking: booking}, nil
}
