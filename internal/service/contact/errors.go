package contact

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных полях формы
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidEmail возвращается при некорректном адресе почты
	ErrInvalidEmail = errors.New("invalid email address")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
