package events

import (
	"time"

	"github.com/m04kA/SMC-TurfBooking/internal/domain"
)

// Routing keys событий бронирования
const (
	BookingCreated     = "booking.created"
	BookingConfirmed   = "booking.confirmed"
	BookingCancelled   = "booking.cancelled"
	BookingRescheduled = "booking.rescheduled"
)

// BookingEvent тело сообщения о смене состояния бронирования
type BookingEvent struct {
	Event        string    `json:"event"`
	BookingID    int64     `json:"bookingId"`
	UserID       int64     `json:"userId"`
	TurfID       int64     `json:"turfId"`
	Date         string    `json:"date"`
	StartTime    string    `json:"startTime"`
	EndTime      string    `json:"endTime"`
	Status       string    `json:"status"`
	TotalPrice   string    `json:"totalPrice"`
	RefundAmount *string   `json:"refundAmount,omitempty"`
	RefundTier   *string   `json:"refundTier,omitempty"`
	OccurredAt   time.Time `json:"occurredAt"`
}

// NewBookingEvent собирает событие из бронирования
func NewBookingEvent(event string, b *domain.Booking, occurredAt time.Time) BookingEvent {
	e := BookingEvent{
		Event:      event,
		BookingID:  b.ID,
		UserID:     b.UserID,
		TurfID:     b.TurfID,
		Date:       b.BookingDate.Format(domain.DateFormat),
		StartTime:  b.StartTime.String(),
		EndTime:    b.EndTime.String(),
		Status:     string(b.Status),
		TotalPrice: b.TotalPrice.StringFixed(2),
		OccurredAt: occurredAt.UTC(),
	}

	if b.Status == domain.StatusCancelled {
		amount := b.RefundAmount.StringFixed(2)
		e.RefundAmount = &amount
		if b.RefundTier != nil {
			tier := b.RefundTier.String()
			e.RefundTier = &tier
		}
	}

	return e
}
