package cancel_booking

import (
	"github.com/m04kA/SMC-TurfBooking/internal/service/bookings/models"
	cancelBooking "github.com/m04kA/SMC-TurfBooking/internal/usecase/cancel_booking"
)

const (
	msgCancelled        = "бронирование отменено"
	msgAlreadyCancelled = "бронирование уже было отменено"
)

// CancelBookingResponse HTTP response model
type CancelBookingResponse struct {
	Booking          *models.BookingResponse `json:"booking"`
	RefundAmount     string                  `json:"refundAmount"` // "1000.00"
	RefundTier       string                  `json:"refundTier"`
	AlreadyCancelled bool                    `json:"alreadyCancelled"`
	Message          string                  `json:"message"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelBooking.Response) *CancelBookingResponse {
	message := msgCancelled
	if resp.AlreadyCancelled {
		message = msgAlreadyCancelled
	}

	return &CancelBookingResponse{
		Booking:          models.FromDomainBooking(resp.Booking),
		RefundAmount:     resp.RefundAmount.StringFixed(2),
		RefundTier:       resp.RefundTier,
		AlreadyCancelled: resp.AlreadyCancelled,
		Message:          message,
	}
}
