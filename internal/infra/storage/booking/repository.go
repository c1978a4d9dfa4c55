package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-TurfBooking/internal/domain"
	"github.com/m04kA/SMC-TurfBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-TurfBooking/pkg/psqlbuilder"
	"github.com/m04kA/SMC-TurfBooking/pkg/txmanager"
)

const (
	tableBookings = "bookings"

	pqExclusionViolation = "23P01"
	pqCheckViolation     = "23514"
)

var bookingColumns = []string{
	"id",
	"user_id",
	"turf_id",
	"booking_date",
	"start_time",
	"end_time",
	"total_price",
	"refund_amount",
	"refund_tier",
	"status",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Если в контексте есть транзакция, запрос выполняется в ней.
// Пересечение с активной бронью, пропущенное проверкой в приложении, отклоняется exclusion constraint.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableBookings).
		Columns(
			"user_id",
			"turf_id",
			"booking_date",
			"start_time",
			"end_time",
			"total_price",
			"refund_amount",
			"status",
		).
		Values(
			booking.UserID,
			booking.TurfID,
			booking.BookingDate,
			booking.StartTime,
			booking.EndTime,
			booking.TotalPrice,
			booking.RefundAmount,
			booking.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, mapWriteError("Create", err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, wrapReadError(ErrScanRow, "GetByID - scan booking", err)
	}

	return booking, nil
}

// GetByUserID получает бронирования пользователя, новые сверху
// Опционально фильтрует по статусу
func (r *Repository) GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("booking_date DESC", "start_time DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetByTurfWithFilter получает бронирования площадки с фильтрацией
//
// Примеры использования:
//
// 1. Все активные бронирования площадки:
//    filter := domain.BookingsFilter{TurfID: 1}
//
// 2. Бронирования на конкретную дату (проверка конфликтов):
//    filter := domain.BookingsFilter{TurfID: 1, StartDate: &date, EndDate: &date}
//
// 3. Все бронирования включая отменённые:
//    filter := domain.BookingsFilter{TurfID: 1, IncludeCancelled: true}
func (r *Repository) GetByTurfWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildTurfBookingsQuery(filter, dbmetrics.IsInTransaction(ctx)).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTurfWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapReadError(ErrExecQuery, "GetByTurfWithFilter - execute query", err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetBusySlots возвращает занятые интервалы площадки начиная с fromDate (PENDING и CONFIRMED)
func (r *Repository) GetBusySlots(ctx context.Context, turfID int64, fromDate time.Time) ([]domain.BusySlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("booking_date", "start_time", "end_time").
		From(tableBookings).
		Where(squirrel.Eq{"turf_id": turfID}).
		Where(squirrel.GtOrEq{"booking_date": fromDate}).
		Where(squirrel.Eq{"status": activeStatusStrings()}).
		OrderBy("booking_date ASC", "start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBusySlots - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBusySlots - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]domain.BusySlot, 0)
	for rows.Next() {
		var slot domain.BusySlot
		if err := rows.Scan(&slot.Date, &slot.StartTime, &slot.EndTime); err != nil {
			return nil, fmt.Errorf("%w: GetBusySlots - scan row: %v", ErrScanRow, err)
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetBusySlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

// Reschedule сохраняет новую дату, время и цену бронирования
func (r *Repository) Reschedule(ctx context.Context, booking *domain.Booking) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableBookings).
		Set("booking_date", booking.BookingDate).
		Set("start_time", booking.StartTime).
		Set("end_time", booking.EndTime).
		Set("total_price", booking.TotalPrice).
		Set("updated_at", booking.UpdatedAt).
		Where(squirrel.Eq{"id": booking.ID}).
		Where(squirrel.Eq{"status": string(domain.StatusPending)}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Reschedule - build update query: %v", ErrBuildQuery, err)
	}

	return execAffectingOne(ctx, executor, "Reschedule", query, args, ErrBookingNotFound)
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus, updatedAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableBookings).
		Set("status", status).
		Set("updated_at", updatedAt).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return execAffectingOne(ctx, executor, "UpdateStatus", query, args, ErrBookingNotFound)
}

// Cancel сохраняет отмену вместе с суммой и причиной возврата.
// Уже отмененное бронирование не перезаписывается.
func (r *Repository) Cancel(ctx context.Context, booking *domain.Booking) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var tier *string
	if booking.RefundTier != nil {
		s := booking.RefundTier.String()
		tier = &s
	}

	query, args, err := psqlbuilder.Update(tableBookings).
		Set("status", domain.StatusCancelled).
		Set("refund_amount", booking.RefundAmount).
		Set("refund_tier", tier).
		Set("cancelled_at", booking.CancelledAt).
		Set("updated_at", booking.UpdatedAt).
		Where(squirrel.Eq{"id": booking.ID}).
		Where(squirrel.NotEq{"status": string(domain.StatusCancelled)}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	return execAffectingOne(ctx, executor, "Cancel", query, args, ErrAlreadyCancelled)
}

func buildTurfBookingsQuery(filter domain.BookingsFilter, inTx bool) squirrel.SelectBuilder {
	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{"turf_id": filter.TurfID})

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"booking_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"booking_date": *filter.EndDate})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": string(*filter.Status)})
	} else if !filter.IncludeCancelled {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": activeStatusStrings()})
	}

	singleDay := filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.Equal(*filter.EndDate)
	if singleDay {
		selectBuilder = selectBuilder.OrderBy("start_time ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("booking_date DESC", "start_time DESC")
	}

	// Блокируем брони конкретного дня на время проверки конфликтов
	if inTx && singleDay {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	return selectBuilder
}

func execAffectingOne(ctx context.Context, executor DBExecutor, op, query string, args []interface{}, notAffected error) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return mapWriteError(op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return notAffected
	}

	return nil
}

// mapWriteError переводит ошибки PostgreSQL в ошибки репозитория.
// Ошибки сериализации возвращаются как есть, чтобы менеджер транзакций мог повторить попытку.
func mapWriteError(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqExclusionViolation:
			return fmt.Errorf("%w: %s", ErrSlotConflict, op)
		case pqCheckViolation:
			return fmt.Errorf("%w: %s - %s", ErrConstraintViolation, op, pqErr.Constraint)
		}
	}
	if txmanager.IsRetryable(err) {
		return err
	}
	return fmt.Errorf("%w: %s: %v", ErrExecQuery, op, err)
}

// wrapReadError оставляет ошибки сериализации без обертки для повтора транзакции
func wrapReadError(sentinel error, msg string, err error) error {
	if txmanager.IsRetryable(err) {
		return err
	}
	return fmt.Errorf("%w: %s: %v", sentinel, msg, err)
}

func activeStatusStrings() []string {
	statuses := make([]string, len(domain.ActiveStatuses))
	for i, s := range domain.ActiveStatuses {
		statuses[i] = string(s)
	}
	return statuses
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var refundTier sql.NullString
	var cancelledAt, createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.UserID,
		&booking.TurfID,
		&booking.BookingDate,
		&booking.StartTime,
		&booking.EndTime,
		&booking.TotalPrice,
		&booking.RefundAmount,
		&refundTier,
		&booking.Status,
		&cancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if refundTier.Valid {
		tier := domain.RefundTier(refundTier.String)
		booking.RefundTier = &tier
	}
	if cancelledAt.Valid {
		t := cancelledAt.Time
		booking.CancelledAt = &t
	}
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
