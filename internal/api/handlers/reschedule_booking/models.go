package reschedule_booking

import (
	"time"

	"github.com/m04kA/SMC-TurfBooking/internal/domain"
	rescheduleBooking "github.com/m04kA/SMC-TurfBooking/internal/usecase/reschedule_booking"
	"github.com/m04kA/SMC-TurfBooking/pkg/types"
)

// RescheduleRequest HTTP request model
type RescheduleRequest struct {
	BookingDate string `json:"bookingDate"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleRequest) ToUseCaseRequest(bookingID, userID int64) (*rescheduleBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}
	start, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &rescheduleBooking.Request{
		BookingID: bookingID,
		UserID:    userID,
		Date:      date,
		StartTime: start,
		EndTime:   end,
	}, nil
}
