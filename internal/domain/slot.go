package domain

import (
	"time"

	"github.com/m04kA/SMC-TurfBooking/pkg/types"
)

// BusySlot занятый интервал площадки для отрисовки календаря
type BusySlot struct {
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
}

// HasConflict проверяет, пересекается ли кандидат [start, end) с активными бронями.
// Бронь с excludeBookingID (редактируемая) не учитывается.
func HasConflict(existing []*Booking, date time.Time, start, end types.TimeString, excludeBookingID *int64) bool {
	for _, b := range existing {
		if excludeBookingID != nil && b.ID == *excludeBookingID {
			continue
		}
		if !b.IsActive() {
			continue
		}
		if b.Overlaps(date, start, end) {
			return true
		}
	}
	return false
}
