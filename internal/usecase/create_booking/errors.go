package create_booking

import "errors"

var (
	// ErrTurfNotFound возвращается, когда площадка не найдена
	ErrTurfNotFound = errors.New("create_booking: turf not found")

	// ErrSlotConflict возвращается, когда слот пересекается с активным бронированием
	ErrSlotConflict = errors.New("create_booking: this time slot is already booked")

	// ErrMinimumDuration возвращается, когда бронирование короче 60 минут
	ErrMinimumDuration = errors.New("create_booking: minimum booking duration is 60 minutes")

	// ErrPastTime возвращается, когда дата или время уже прошли
	ErrPastTime = errors.New("create_booking: booking time has already passed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
