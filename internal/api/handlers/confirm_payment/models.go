package confirm_payment

import (
	"github.com/m04kA/SMC-TurfBooking/internal/service/bookings/models"
	confirmPayment "github.com/m04kA/SMC-TurfBooking/internal/usecase/confirm_payment"
)

const (
	msgPaymentConfirmed = "оплата подтверждена"
	msgAlreadyPaid      = "бронирование уже оплачено"
)

// PaymentResponse HTTP response model
type PaymentResponse struct {
	Booking     *models.BookingResponse `json:"booking"`
	AlreadyPaid bool                    `json:"alreadyPaid"`
	Message     string                  `json:"message"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *confirmPayment.Response) *PaymentResponse {
	message := msgPaymentConfirmed
	if resp.AlreadyConfirmed {
		message = msgAlreadyPaid
	}

	return &PaymentResponse{
		Booking:     models.FromDomainBooking(resp.Booking),
		AlreadyPaid: resp.AlreadyConfirmed,
		Message:     message,
	}
}
