package create_booking

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

// errConflictDetected конфликт найден проверкой в приложении до вставки
var errConflictDetected = errors.New("conflict detected")

// UseCase use case для создания бронирования
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

// Execute выполняет use case создания бронирования.
// Проверка конфликтов и вставка выполняются в одной SERIALIZABLE транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, turf=%d, date=%s, time=%s-%s",
		req.UserID, req.TurfID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Текущее время в опорной зоне
	now := uc.timeProvider.Now().In(uc.location)

	// 3. Проверки слота, не требующие БД
	if err := domain.ValidateSlot(req.Date, req.StartTime, req.EndTime, now); err != nil {
		uc.logger.Warn("CreateBooking: slot validation failed: %v", err)
		return nil, mapDomainError(err)
	}

	var (
		result *domain.Booking
		turf   *domain.Turf
	)

	// 4. Проверка конфликтов и вставка атомарно
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var err error
		turf, err = uc.turfRepo.GetByID(txCtx, req.TurfID)
		if err != nil {
			return err
		}

		booking, err := domain.NewBooking(req.UserID, turf, req.Date, req.StartTime, req.EndTime, now)
		if err != nil {
			return err
		}

		// Активные брони площадки на эту дату с блокировкой (FOR UPDATE)
		existing, err := uc.bookingRepo.GetByTurfWithFilter(txCtx, domain.BookingsFilter{
			TurfID:    req.TurfID,
			StartDate: &req.Date,
			EndDate:   &req.Date,
		})
		if err != nil {
			return err
		}

		if domain.HasConflict(existing, req.Date, req.StartTime, req.EndTime, nil) {
			return errConflictDetected
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			return err
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, uc.handleError(req, err)
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, price=%s", result.ID, result.TotalPrice.StringFixed(2))

	uc.afterCreate(ctx, result, now)

	return &Response{
		ID:          result.ID,
		UserID:      result.UserID,
		TurfID:      result.TurfID,
		TurfName:    turf.Name,
		BookingDate: result.BookingDate,
		StartTime:   result.StartTime,
		EndTime:     result.EndTime,
		TotalPrice:  result.TotalPrice,
		Status:      string(result.Status),
		CreatedAt:   result.CreatedAt,
	}, nil
}

// afterCreate сбрасывает кэш и публикует событие, ошибки только логируются
func (uc *UseCase) afterCreate(ctx context.Context, booking *domain.Booking, now time.Time) {
	if err := uc.cache.Invalidate(ctx, booking.TurfID); err != nil {
		uc.logger.Warn("CreateBooking: failed to invalidate busy slots cache for turf=%d: %v", booking.TurfID, err)
	}

	if err := uc.publisher.Publish(ctx, events.NewBookingEvent(events.BookingCreated, booking, now)); err != nil {
		uc.logger.Warn("CreateBooking: failed to publish event for booking id=%d: %v", booking.ID, err)
	}

	uc.metrics.IncBookingEvent(events.BookingCreated)
}

func (uc *UseCase) handleError(req *Request, err error) error {
	switch {
	case errors.Is(err, turfRepo.ErrTurfNotFound):
		uc.logger.Warn("CreateBooking: turf id=%d not found", req.TurfID)
		return ErrTurfNotFound
	case errors.Is(err, errConflictDetected), errors.Is(err, bookingRepo.ErrSlotConflict):
		uc.logger.Warn("CreateBooking: slot %s %s-%s on turf=%d is already booked",
			req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime, req.TurfID)
		return ErrSlotConflict
	case errors.Is(err, domain.ErrPastTime),
		errors.Is(err, domain.ErrMinimumDuration),
		errors.Is(err, domain.ErrInvalidTimeRange):
		return mapDomainError(err)
	default:
		uc.logger.Error("CreateBooking: failed to create booking: %v", err)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}

func mapDomainError(err error) error {
	switch {
	case errors.Is(err, domain.ErrPastTime):
		return ErrPastTime
	case errors.Is(err, domain.ErrMinimumDuration):
		return ErrMinimumDuration
	default:
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}
	if req.TurfID <= 0 {
		return fmt.Errorf("%w: turfID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return fmt.Errorf("%w: startTime and endTime are required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}
	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime format: %v", ErrInvalidInput, err)
	}
	return nil
}
