package domain

import "time"

// Booking rules
const (
	MinBookingDurationMinutes = 60

	// GracePeriod окно после создания, в течение которого отмена бесплатна
	GracePeriod = time.Hour
	// EarlyCancellationWindow за сколько до игры отмена дает полный возврат
	EarlyCancellationWindow = 24 * time.Hour
	// StandardFeeWindow за сколько до игры отмена дает возврат 50%
	StandardFeeWindow = 4 * time.Hour
)

// Validation limits
const (
	MaxTurfNameLength     = 100
	MaxTurfLocationLength = 200
	MaxImageURLLength     = 500
	MaxContactNameLength  = 100
	MaxContactMessageLen  = 5000
	MaxPricePerHour       = 999999.99
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses статусы, которые занимают слот
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}
