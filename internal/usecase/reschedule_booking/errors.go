package reschedule_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено или принадлежит другому пользователю
	ErrBookingNotFound = errors.New("reschedule_booking: booking not found")

	// ErrNotReschedulable возвращается для оплаченных и отмененных бронирований
	ErrNotReschedulable = errors.New("reschedule_booking: only pending bookings can be rescheduled")

	// ErrSlotConflict возвращается, когда новый слот пересекается с активным бронированием
	ErrSlotConflict = errors.New("reschedule_booking: this time slot is already booked")

	// ErrMinimumDuration возвращается, когда новый слот короче 60 минут
	ErrMinimumDuration = errors.New("reschedule_booking: minimum booking duration is 60 minutes")

	// ErrPastTime возвращается, когда новая дата или время уже прошли
	ErrPastTime = errors.New("reschedule_booking: booking time has already passed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_booking: internal error")
)
