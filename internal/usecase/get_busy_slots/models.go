package get_busy_slots

import (
	"time"

	"github.com/m04kA/SMC-TurfBooking/pkg/types"
)

// Request модель запроса занятых слотов
type Request struct {
	TurfID   int64      // ID площадки
	FromDate *time.Time // Начальная дата (если nil - сегодня в опорной зоне)
}

// Response модель ответа со списком занятых слотов
type Response struct {
	TurfID   int64
	FromDate time.Time
	Slots    []Slot
}

// Slot занятый интервал
type Slot struct {
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
}
