package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TurfBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-TurfBooking/internal/infra/storage/booking"
	turfRepo "github.com/m04kA/SMC-TurfBooking/internal/infra/storage/turf"
	"github.com/m04kA/SMC-TurfBooking/internal/service/bookings/models"
)

// Service сервис для чтения бронирований
type Service struct {
	bookingRepo BookingRepository
	turfRepo    TurfRepository
	admins      AdminChecker
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	turfRepo TurfRepository,
	admins AdminChecker,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		turfRepo:    turfRepo,
		admins:      admins,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID.
// Чужое бронирование неотличимо от отсутствующего.
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if booking.UserID != userID {
		s.logger.Warn("GetByID: user=%d is not the owner of booking id=%d", userID, id)
		return nil, ErrBookingNotFound
	}

	resp := models.FromDomainBooking(booking)
	if turf, err := s.turfRepo.GetByID(ctx, booking.TurfID); err == nil {
		resp.TurfName = turf.Name
	} else {
		s.logger.Warn("GetByID: failed to load turf id=%d for booking id=%d: %v", booking.TurfID, id, err)
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return resp, nil
}

// GetUserBookings получает историю бронирований пользователя (сначала новые).
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", req.UserID, req.Status)

	if req.RequesterID != req.UserID {
		s.logger.Warn("GetUserBookings: user=%d requested bookings of user=%d", req.RequesterID, req.UserID)
		return nil, ErrAccessDenied
	}

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// GetTurfBookings получает бронирования площадки с фильтрацией.
// Доступно только администраторам
//
// Примеры использования:
// - Все активные бронирования: GetTurfBookings(ctx, &GetTurfBookingsRequest{TurfID: 1, UserID: 42})
// - Бронирования на дату: StartDate и EndDate указывают на одну дату
// - Включая отменённые: IncludeCancelled = true
func (s *Service) GetTurfBookings(ctx context.Context, req *models.GetTurfBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := fmt.Sprintf("GetTurfBookings: fetching bookings for turf=%d, user=%d", req.TurfID, req.UserID)
	if req.StartDate != nil {
		logMsg += fmt.Sprintf(", from=%s", req.StartDate.Format(domain.DateFormat))
	}
	if req.EndDate != nil {
		logMsg += fmt.Sprintf(", to=%s", req.EndDate.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeCancelled {
		logMsg += ", includeCancelled=true"
	}
	s.logger.Info(logMsg)

	if !s.admins.IsAdmin(req.UserID) {
		s.logger.Warn("GetTurfBookings: user=%d is not an admin", req.UserID)
		return nil, ErrAccessDenied
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetTurfBookings: invalid filter for turf=%d: %v", req.TurfID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	if _, err := s.turfRepo.GetByID(ctx, req.TurfID); err != nil {
		if errors.Is(err, turfRepo.ErrTurfNotFound) {
			s.logger.Warn("GetTurfBookings: turf id=%d not found", req.TurfID)
			return nil, ErrTurfNotFound
		}
		s.logger.Error("GetTurfBookings: failed to get turf id=%d: %v", req.TurfID, err)
		return nil, fmt.Errorf("%w: GetTurfBookings - turf repository error: %v", ErrInternal, err)
	}

	bookings, err := s.bookingRepo.GetByTurfWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetTurfBookings: repository error for turf=%d: %v", req.TurfID, err)
		return nil, fmt.Errorf("%w: GetTurfBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetTurfBookings: successfully fetched %d bookings for turf=%d", len(bookings), req.TurfID)
	return models.FromDomainBookingList(bookings), nil
}
