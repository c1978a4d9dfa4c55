package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RefundTier человекочитаемая причина размера возврата
type RefundTier string

const (
	RefundTierGameStarted RefundTier = "game already started"
	RefundTierGracePeriod RefundTier = "instant cancellation grace period"
	RefundTierEarly       RefundTier = "early cancellation"
	RefundTierStandardFee RefundTier = "standard cancellation fee"
	RefundTierLastMinute  RefundTier = "last-minute cancellation"
)

func (t RefundTier) String() string {
	return string(t)
}

var half = decimal.NewFromInt(2)

// CalculateRefund вычисляет возврат при отмене в момент now.
// Правила проверяются строго по порядку, срабатывает первое подходящее.
func CalculateRefund(b *Booking, now time.Time, loc *time.Location) (decimal.Decimal, RefundTier) {
	now = now.In(loc)
	gameStart := b.GameStart(loc)

	if !now.Before(gameStart) {
		return decimal.Zero, RefundTierGameStarted
	}

	if now.Sub(b.CreatedAt) < GracePeriod {
		return b.TotalPrice, RefundTierGracePeriod
	}

	untilGame := gameStart.Sub(now)
	switch {
	case untilGame > EarlyCancellationWindow:
		return b.TotalPrice, RefundTierEarly
	case untilGame > StandardFeeWindow:
		return b.TotalPrice.DivRound(half, priceScale), RefundTierStandardFee
	default:
		return decimal.Zero, RefundTierLastMinute
	}
}
