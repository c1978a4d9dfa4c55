package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrSlotConflict возвращается, когда exclusion constraint отклонил пересекающийся слот
	ErrSlotConflict = errors.New("booking.repository: slot overlaps an active booking")

	// ErrConstraintViolation возвращается при нарушении CHECK ограничений таблицы
	ErrConstraintViolation = errors.New("booking.repository: constraint violation")

	// ErrAlreadyCancelled возвращается, когда бронирование уже отменено другим запросом
	ErrAlreadyCancelled = errors.New("booking.repository: booking already cancelled")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
