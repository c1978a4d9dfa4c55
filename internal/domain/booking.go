package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-TurfBooking/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "PENDING"
	StatusConfirmed BookingStatus = "CONFIRMED"
	StatusCancelled BookingStatus = "CANCELLED"
)

// ParseBookingStatus разбирает статус из строки
func ParseBookingStatus(s string) (BookingStatus, error) {
	switch BookingStatus(s) {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return BookingStatus(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
	}
}

// Booking represents a turf reservation
type Booking struct {
	ID          int64
	UserID      int64
	TurfID      int64
	BookingDate time.Time
	StartTime   types.TimeString
	EndTime     types.TimeString

	// TotalPrice фиксируется при создании и переносе, изменение цены площадки на него не влияет
	TotalPrice   decimal.Decimal
	RefundAmount decimal.Decimal
	RefundTier   *RefundTier
	Status       BookingStatus

	CancelledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsActive returns true if the booking occupies its slot
func (b *Booking) IsActive() bool {
	switch b.Status {
	case StatusPending, StatusConfirmed:
		return true
	default:
		return false
	}
}

// DurationMinutes длительность брони в минутах
func (b *Booking) DurationMinutes() int {
	return b.StartTime.MinutesUntil(b.EndTime)
}

// GameStart момент начала игры в опорной временной зоне
func (b *Booking) GameStart(loc *time.Location) time.Time {
	return b.StartTime.On(b.BookingDate, loc)
}

// Overlaps проверяет пересечение полуинтервалов [start, end) в ту же дату
func (b *Booking) Overlaps(date time.Time, start, end types.TimeString) bool {
	if !sameDate(b.BookingDate, date) {
		return false
	}
	return b.StartTime.Minutes() < end.Minutes() && b.EndTime.Minutes() > start.Minutes()
}

// Confirm переводит бронь в CONFIRMED.
// Возвращает alreadyConfirmed = true, если бронь уже оплачена.
func (b *Booking) Confirm(now time.Time) (alreadyConfirmed bool, err error) {
	switch b.Status {
	case StatusPending:
		b.Status = StatusConfirmed
		b.UpdatedAt = now
		return false, nil
	case StatusConfirmed:
		return true, nil
	case StatusCancelled:
		return false, ErrBookingCancelled
	default:
		return false, fmt.Errorf("%w: %q", ErrUnknownStatus, b.Status)
	}
}

// Cancel отменяет бронь и фиксирует сумму возврата.
// Повторная отмена ничего не меняет и возвращает alreadyCancelled = true.
func (b *Booking) Cancel(now time.Time, loc *time.Location) (alreadyCancelled bool, err error) {
	switch b.Status {
	case StatusPending, StatusConfirmed:
		amount, tier := CalculateRefund(b, now, loc)
		b.RefundAmount = amount
		b.RefundTier = &tier
		b.Status = StatusCancelled
		b.CancelledAt = &now
		b.UpdatedAt = now
		return false, nil
	case StatusCancelled:
		return true, nil
	default:
		return false, fmt.Errorf("%w: %q", ErrUnknownStatus, b.Status)
	}
}

// Reschedule переносит неоплаченную бронь и пересчитывает цену по текущему тарифу площадки
func (b *Booking) Reschedule(turf *Turf, date time.Time, start, end types.TimeString, now time.Time) error {
	switch b.Status {
	case StatusPending:
	case StatusConfirmed, StatusCancelled:
		return ErrNotReschedulable
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStatus, b.Status)
	}

	if err := ValidateSlot(date, start, end, now); err != nil {
		return err
	}

	b.BookingDate = date
	b.StartTime = start
	b.EndTime = end
	b.TotalPrice = ComputePrice(turf, start, end)
	b.UpdatedAt = now
	return nil
}

// NewBooking создает бронь в статусе PENDING после проверки слота
func NewBooking(userID int64, turf *Turf, date time.Time, start, end types.TimeString, now time.Time) (*Booking, error) {
	if err := ValidateSlot(date, start, end, now); err != nil {
		return nil, err
	}

	return &Booking{
		UserID:       userID,
		TurfID:       turf.ID,
		BookingDate:  date,
		StartTime:    start,
		EndTime:      end,
		TotalPrice:   ComputePrice(turf, start, end),
		RefundAmount: decimal.Zero,
		Status:       StatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// ValidateSlot проверяет слот относительно now.
// now должен быть в опорной временной зоне, date - дата в той же зоне.
func ValidateSlot(date time.Time, start, end types.TimeString, now time.Time) error {
	if err := start.Validate(); err != nil {
		return err
	}
	if err := end.Validate(); err != nil {
		return err
	}

	today := truncateToDate(now)
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, now.Location())
	if day.Before(today) {
		return ErrPastTime
	}
	// Сравнение с точностью до секунд: в 14:00:45 слот на 14:00 уже в прошлом
	if day.Equal(today) && start.On(day, now.Location()).Before(now) {
		return ErrPastTime
	}

	if !start.IsBefore(end) {
		return ErrInvalidTimeRange
	}
	if start.MinutesUntil(end) < MinBookingDurationMinutes {
		return ErrMinimumDuration
	}
	return nil
}

// BookingsFilter фильтр для списка бронирований площадки
type BookingsFilter struct {
	TurfID           int64          // Обязательный параметр
	StartDate        *time.Time     // Начало периода (опционально)
	EndDate          *time.Time     // Конец периода (опционально)
	Status           *BookingStatus // Фильтр по статусу (опционально)
	IncludeCancelled bool
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
