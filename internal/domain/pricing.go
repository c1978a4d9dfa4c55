package domain

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-TurfBooking/pkg/types"
)

const priceScale = 2

var minutesPerHour = decimal.NewFromInt(60)

// ComputePrice стоимость слота: price_per_hour * hours, округление до копеек
func ComputePrice(turf *Turf, start, end types.TimeString) decimal.Decimal {
	minutes := start.MinutesUntil(end)
	if minutes <= 0 {
		return decimal.Zero
	}
	return turf.PricePerHour.
		Mul(decimal.NewFromInt(int64(minutes))).
		DivRound(minutesPerHour, priceScale)
}
