package get_busy_slots

import (
	"github.com/m04kA/SMC-TurfBooking/internal/domain"
	getBusySlots "github.com/m04kA/SMC-TurfBooking/internal/usecase/get_busy_slots"
)

// BusySlotsResponse HTTP response model
type BusySlotsResponse struct {
	TurfID   int64          `json:"turfId"`
	FromDate string         `json:"fromDate"` // "2025-10-15"
	Slots    []SlotResponse `json:"slots"`
}

// SlotResponse занятый интервал
type SlotResponse struct {
	Date      string `json:"date"`      // "2025-10-15"
	StartTime string `json:"startTime"` // "10:00"
	EndTime   string `json:"endTime"`   // "12:00"
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getBusySlots.Response) *BusySlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{
			Date:      s.Date.Format(domain.DateFormat),
			StartTime: s.StartTime.String(),
			EndTime:   s.EndTime.String(),
		})
	}

	return &BusySlotsResponse{
		TurfID:   resp.TurfID,
		FromDate: resp.FromDate.Format(domain.DateFormat),
		Slots:    slots,
	}
}
