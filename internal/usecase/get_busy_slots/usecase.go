package get_busy_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TurfBooking/internal/domain"
	turfRepo "github.com/m04kA/SMC-TurfBooking/internal/infra/storage/turf"
)

// UseCase use case для получения занятых слотов площадки (PENDING и CONFIRMED)
type UseCase struct {
	bookingRepo  BookingRepository
	turfRepo     TurfRepository
	cache        BusySlotsCache
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	turfRepo TurfRepository,
	cache BusySlotsCache,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		turfRepo:     turfRepo,
		cache:        cache,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения занятых слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.TurfID <= 0 {
		return nil, fmt.Errorf("%w: turfID must be positive", ErrInvalidInput)
	}

	fromDate := uc.resolveFromDate(req.FromDate)
	uc.logger.Info("GetBusySlots: turf=%d, from=%s", req.TurfID, fromDate.Format(domain.DateFormat))

	if _, err := uc.turfRepo.GetByID(ctx, req.TurfID); err != nil {
		if errors.Is(err, turfRepo.ErrTurfNotFound) {
			uc.logger.Warn("GetBusySlots: turf id=%d not found", req.TurfID)
			return nil, ErrTurfNotFound
		}
		uc.logger.Error("GetBusySlots: failed to get turf id=%d: %v", req.TurfID, err)
		return nil, fmt.Errorf("%w: failed to get turf: %v", ErrInternal, err)
	}

	slots, found, err := uc.cache.Get(ctx, req.TurfID, fromDate)
	if err != nil {
		// Кэш недоступен - идем в БД
		uc.logger.Warn("GetBusySlots: cache get failed for turf=%d: %v", req.TurfID, err)
	}

	if !found {
		// Поколение читаем до БД, чтобы не закэшировать выборку, устаревшую из-за параллельной записи
		version, verErr := uc.cache.Version(ctx, req.TurfID)
		if verErr != nil {
			uc.logger.Warn("GetBusySlots: cache version failed for turf=%d: %v", req.TurfID, verErr)
		}

		slots, err = uc.bookingRepo.GetBusySlots(ctx, req.TurfID, fromDate)
		if err != nil {
			uc.logger.Error("GetBusySlots: failed to get busy slots for turf=%d: %v", req.TurfID, err)
			return nil, fmt.Errorf("%w: failed to get busy slots: %v", ErrInternal, err)
		}

		if verErr == nil {
			if err := uc.cache.Set(ctx, req.TurfID, fromDate, version, slots); err != nil {
				uc.logger.Warn("GetBusySlots: cache set failed for turf=%d: %v", req.TurfID, err)
			}
		}
	}

	result := make([]Slot, 0, len(slots))
	for _, s := range slots {
		result = append(result, Slot{
			Date:      s.Date,
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
		})
	}

	uc.logger.Info("GetBusySlots: found %d busy slots for turf=%d (cached=%t)", len(result), req.TurfID, found)

	return &Response{
		TurfID:   req.TurfID,
		FromDate: fromDate,
		Slots:    result,
	}, nil
}

// resolveFromDate возвращает дату без времени; по умолчанию - сегодня в опорной зоне
func (uc *UseCase) resolveFromDate(from *time.Time) time.Time {
	if from != nil {
		return time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	}
	now := uc.timeProvider.Now().In(uc.location)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
