package confirm_payment

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено или принадлежит другому пользователю
	ErrBookingNotFound = errors.New("confirm_payment: booking not found")

	// ErrBookingCancelled возвращается при попытке оплатить отмененное бронирование
	ErrBookingCancelled = errors.New("confirm_payment: booking is cancelled")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("confirm_payment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("confirm_payment: internal error")
)
