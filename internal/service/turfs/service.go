package turfs

import (
	"context"
	"errors"
	"fmt"

	turfRepo "github.com/m04kA/SMC-TurfBooking/internal/infra/storage/turf"
	"github.com/m04kA/SMC-TurfBooking/internal/service/turfs/models"
)

// Service сервис каталога площадок
type Service struct {
	turfRepo TurfRepository
	admins   AdminChecker
	logger   Logger
}

// NewService создает новый экземпляр сервиса площадок
func NewService(turfRepo TurfRepository, admins AdminChecker, logger Logger) *Service {
	return &Service{
		turfRepo: turfRepo,
		admins:   admins,
		logger:   logger,
	}
}

// List возвращает каталог площадок.
// Публичный метод - доступен всем
func (s *Service) List(ctx context.Context, req *models.ListTurfsRequest) (*models.TurfListResponse, error) {
	s.logger.Info("List: fetching turfs, query=%v, residential=%v", req.Query, req.Residential)

	turfs, err := s.turfRepo.List(ctx, req.ToDomainFilter())
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d turfs", len(turfs))
	return models.FromDomainTurfList(turfs), nil
}

// GetByID получает площадку по ID
// Публичный метод - доступен всем
func (s *Service) GetByID(ctx context.Context, id int64) (*models.TurfResponse, error) {
	s.logger.Info("GetByID: fetching turf id=%d", id)

	turf, err := s.turfRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, turfRepo.ErrTurfNotFound) {
			s.logger.Warn("GetByID: turf id=%d not found", id)
			return nil, ErrTurfNotFound
		}
		s.logger.Error("GetByID: repository error for turf id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainTurf(turf), nil
}

// Create создает площадку
// Доступно только администраторам
func (s *Service) Create(ctx context.Context, req *models.CreateTurfRequest) (*models.TurfResponse, error) {
	s.logger.Info("Create: creating turf name=%q by user=%d", req.Name, req.UserID)

	if !s.admins.IsAdmin(req.UserID) {
		s.logger.Warn("Create: user=%d is not an admin", req.UserID)
		return nil, ErrAccessDenied
	}

	turf := req.ToDomainTurf()
	if err := turf.Validate(); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.turfRepo.Create(ctx, turf)
	if err != nil {
		return nil, s.mapWriteError("Create", err)
	}

	s.logger.Info("Create: successfully created turf id=%d", created.ID)
	return models.FromDomainTurf(created), nil
}

// Update частично обновляет площадку.
// Изменение цены не затрагивает уже созданные бронирования.
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateTurfRequest) (*models.TurfResponse, error) {
	s.logger.Info("Update: updating turf id=%d by user=%d", id, req.UserID)

	if !s.admins.IsAdmin(req.UserID) {
		s.logger.Warn("Update: user=%d is not an admin", req.UserID)
		return nil, ErrAccessDenied
	}

	// 1. Получаем существующую площадку
	turf, err := s.turfRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, turfRepo.ErrTurfNotFound) {
			s.logger.Warn("Update: turf id=%d not found", id)
			return nil, ErrTurfNotFound
		}
		s.logger.Error("Update: repository error for turf id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	// 2. Применяем и валидируем изменения
	req.ApplyToTurf(turf)
	if err := turf.Validate(); err != nil {
		s.logger.Warn("Update: validation failed for turf id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 3. Сохраняем
	updated, err := s.turfRepo.Update(ctx, id, turf)
	if err != nil {
		return nil, s.mapWriteError("Update", err)
	}

	s.logger.Info("Update: successfully updated turf id=%d", id)
	return models.FromDomainTurf(updated), nil
}

func (s *Service) mapWriteError(op string, err error) error {
	switch {
	case errors.Is(err, turfRepo.ErrTurfNotFound):
		s.logger.Warn("%s: turf not found during write", op)
		return ErrTurfNotFound
	case errors.Is(err, turfRepo.ErrConstraintViolation):
		s.logger.Warn("%s: constraint violation: %v", op, err)
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	default:
		s.logger.Error("%s: repository error: %v", op, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
}
