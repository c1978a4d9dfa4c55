package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TurfBooking/pkg/ptr"
	"github.com/m04kA/SMC-TurfBooking/pkg/types"
)

var kolkata = mustLoad("Asia/Kolkata")

func mustLoad(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ts(s string) types.TimeString {
	return types.TimeString(s)
}

func booking(id int64, status BookingStatus, start, end string) *Booking {
	return &Booking{
		ID:          id,
		TurfID:      1,
		BookingDate: date(2026, 5, 10),
		StartTime:   ts(start),
		EndTime:     ts(end),
		Status:      status,
	}
}

func TestHasConflict(t *testing.T) {
	day := date(2026, 5, 10)
	existing := []*Booking{
		booking(1, StatusPending, "10:00", "12:00"),
		booking(2, StatusConfirmed, "14:00", "16:00"),
		booking(3, StatusCancelled, "18:00", "20:00"),
	}

	tests := []struct {
		name    string
		start   string
		end     string
		exclude *int64
		want    bool
	}{
		{name: "overlaps pending", start: "11:00", end: "13:00", want: true},
		{name: "overlaps confirmed", start: "13:00", end: "15:00", want: true},
		{name: "contained in existing", start: "14:30", end: "15:30", want: true},
		{name: "covers existing", start: "09:00", end: "13:00", want: true},
		{name: "adjacent after", start: "12:00", end: "13:00", want: false},
		{name: "adjacent before", start: "13:00", end: "14:00", want: false},
		{name: "cancelled never blocks", start: "18:00", end: "20:00", want: false},
		{name: "excluded self", start: "10:30", end: "11:30", exclude: ptr.Ptr(int64(1)), want: false},
		{name: "exclude other still conflicts", start: "10:30", end: "11:30", exclude: ptr.Ptr(int64(2)), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HasConflict(existing, day, ts(tt.start), ts(tt.end), tt.exclude)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHasConflict_OtherDate(t *testing.T) {
	existing := []*Booking{booking(1, StatusPending, "10:00", "12:00")}
	assert.False(t, HasConflict(existing, date(2026, 5, 11), ts("10:00"), ts("12:00"), nil))
}

func TestComputePrice(t *testing.T) {
	turf := &Turf{ID: 1, PricePerHour: decimal.RequireFromString("1000")}

	price := ComputePrice(turf, ts("14:00"), ts("16:00"))
	assert.Equal(t, "2000.00", price.StringFixed(2))

	oneHour := ComputePrice(turf, ts("10:00"), ts("11:00"))
	twoHours := ComputePrice(turf, ts("10:00"), ts("12:00"))
	assert.True(t, twoHours.Equal(oneHour.Mul(decimal.NewFromInt(2))))

	odd := &Turf{PricePerHour: decimal.RequireFromString("1000")}
	assert.Equal(t, "1016.67", ComputePrice(odd, ts("10:00"), ts("11:01")).StringFixed(2))

	assert.True(t, ComputePrice(turf, ts("12:00"), ts("10:00")).IsZero())
}

func TestCalculateRefund(t *testing.T) {
	now := time.Date(2026, 5, 10, 8, 0, 0, 0, kolkata)
	price := decimal.RequireFromString("2000.00")

	makeBooking := func(gameIn, createdAgo time.Duration) *Booking {
		start := now.Add(gameIn)
		return &Booking{
			BookingDate: time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC),
			StartTime:   types.NewTimeString(start),
			EndTime:     types.NewTimeString(start.Add(time.Hour)),
			TotalPrice:  price,
			Status:      StatusConfirmed,
			CreatedAt:   now.Add(-createdAgo),
		}
	}

	tests := []struct {
		name       string
		gameIn     time.Duration
		createdAgo time.Duration
		wantAmount string
		wantTier   RefundTier
	}{
		{"early cancellation", 30 * time.Hour, 48 * time.Hour, "2000.00", RefundTierEarly},
		{"last minute", 3 * time.Hour, 48 * time.Hour, "0.00", RefundTierLastMinute},
		{"standard fee", 10 * time.Hour, 2 * time.Hour, "1000.00", RefundTierStandardFee},
		{"grace beats standard fee", 2 * time.Hour, 5 * time.Minute, "2000.00", RefundTierGracePeriod},
		{"game started", -30 * time.Minute, 48 * time.Hour, "0.00", RefundTierGameStarted},
		{"game started beats grace", 0, 5 * time.Minute, "0.00", RefundTierGameStarted},
		{"exactly 24h is standard fee", 24 * time.Hour, 48 * time.Hour, "1000.00", RefundTierStandardFee},
		{"exactly 4h is last minute", 4 * time.Hour, 48 * time.Hour, "0.00", RefundTierLastMinute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, tier := CalculateRefund(makeBooking(tt.gameIn, tt.createdAgo), now, kolkata)
			assert.Equal(t, tt.wantAmount, amount.StringFixed(2))
			assert.Equal(t, tt.wantTier, tier)
		})
	}
}

func TestBooking_CancelIsIdempotent(t *testing.T) {
	now := time.Date(2026, 5, 10, 8, 0, 0, 0, kolkata)
	b := &Booking{
		BookingDate: date(2026, 5, 10),
		StartTime:   ts("18:00"),
		EndTime:     ts("19:00"),
		TotalPrice:  decimal.RequireFromString("1500.00"),
		Status:      StatusConfirmed,
		CreatedAt:   now.Add(-72 * time.Hour),
	}

	already, err := b.Cancel(now, kolkata)
	require.NoError(t, err)
	assert.False(t, already)
	assert.Equal(t, StatusCancelled, b.Status)
	assert.Equal(t, "750.00", b.RefundAmount.StringFixed(2))
	require.NotNil(t, b.RefundTier)
	assert.Equal(t, RefundTierStandardFee, *b.RefundTier)

	already, err = b.Cancel(now.Add(5*time.Hour), kolkata)
	require.NoError(t, err)
	assert.True(t, already)
	assert.Equal(t, "750.00", b.RefundAmount.StringFixed(2))
	assert.Equal(t, RefundTierStandardFee, *b.RefundTier)
}

func TestBooking_Confirm(t *testing.T) {
	now := time.Now()

	b := &Booking{Status: StatusPending}
	already, err := b.Confirm(now)
	require.NoError(t, err)
	assert.False(t, already)
	assert.Equal(t, StatusConfirmed, b.Status)

	already, err = b.Confirm(now)
	require.NoError(t, err)
	assert.True(t, already)

	cancelled := &Booking{Status: StatusCancelled}
	_, err = cancelled.Confirm(now)
	assert.ErrorIs(t, err, ErrBookingCancelled)

	unknown := &Booking{Status: "WEIRD"}
	_, err = unknown.Confirm(now)
	assert.ErrorIs(t, err, ErrUnknownStatus)
}

func TestValidateSlot(t *testing.T) {
	now := time.Date(2026, 5, 10, 13, 30, 0, 0, kolkata)

	tests := []struct {
		name  string
		date  time.Time
		start string
		end   string
		want  error
	}{
		{"valid future", date(2026, 5, 11), "10:00", "11:00", nil},
		{"valid later today", date(2026, 5, 10), "14:00", "16:00", nil},
		{"past date", date(2026, 5, 9), "14:00", "16:00", ErrPastTime},
		{"past time today", date(2026, 5, 10), "13:00", "15:00", ErrPastTime},
		{"end before start", date(2026, 5, 11), "12:00", "10:00", ErrInvalidTimeRange},
		{"zero length", date(2026, 5, 11), "12:00", "12:00", ErrInvalidTimeRange},
		{"too short", date(2026, 5, 11), "12:00", "12:59", ErrMinimumDuration},
		{"bad format", date(2026, 5, 11), "25:00", "26:00", types.ErrInvalidTimeString},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSlot(tt.date, ts(tt.start), ts(tt.end), now)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestValidateSlot_StartingThisMinute(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want error
	}{
		{"exactly at start", time.Date(2026, 5, 10, 14, 0, 0, 0, kolkata), nil},
		{"seconds after start", time.Date(2026, 5, 10, 14, 0, 45, 0, kolkata), ErrPastTime},
		{"nanosecond after start", time.Date(2026, 5, 10, 14, 0, 0, 1, kolkata), ErrPastTime},
		{"seconds before start", time.Date(2026, 5, 10, 13, 59, 59, 0, kolkata), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSlot(date(2026, 5, 10), ts("14:00"), ts("15:00"), tt.now)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNewBooking(t *testing.T) {
	now := time.Date(2026, 5, 10, 9, 0, 0, 0, kolkata)
	turf := &Turf{ID: 7, PricePerHour: decimal.RequireFromString("1000")}

	b, err := NewBooking(3, turf, date(2026, 5, 10), ts("14:00"), ts("16:00"), now)
	require.NoError(t, err)

	assert.Equal(t, StatusPending, b.Status)
	assert.Equal(t, int64(7), b.TurfID)
	assert.Equal(t, "2000.00", b.TotalPrice.StringFixed(2))
	assert.True(t, b.RefundAmount.IsZero())
	assert.Equal(t, 120, b.DurationMinutes())
}

func TestBooking_Reschedule(t *testing.T) {
	now := time.Date(2026, 5, 10, 9, 0, 0, 0, kolkata)
	turf := &Turf{ID: 7, PricePerHour: decimal.RequireFromString("1200")}

	b := booking(1, StatusPending, "10:00", "11:00")
	require.NoError(t, b.Reschedule(turf, date(2026, 5, 12), ts("18:00"), ts("20:30"), now))
	assert.Equal(t, ts("18:00"), b.StartTime)
	assert.Equal(t, "3000.00", b.TotalPrice.StringFixed(2))

	confirmed := booking(2, StatusConfirmed, "10:00", "11:00")
	assert.ErrorIs(t, confirmed.Reschedule(turf, date(2026, 5, 12), ts("18:00"), ts("19:00"), now), ErrNotReschedulable)
}

func TestParseBookingStatus(t *testing.T) {
	s, err := ParseBookingStatus("CONFIRMED")
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, s)

	_, err = ParseBookingStatus("confirmed")
	assert.ErrorIs(t, err, ErrUnknownStatus)
}

func TestTurf_Validate(t *testing.T) {
	ok := &Turf{Name: "The Arena", Location: "Sector 29, Gurgaon", PricePerHour: decimal.RequireFromString("1200")}
	assert.NoError(t, ok.Validate())

	noName := *ok
	noName.Name = "  "
	assert.ErrorIs(t, noName.Validate(), ErrInvalidTurfFields)

	negative := *ok
	negative.PricePerHour = decimal.RequireFromString("-1")
	assert.ErrorIs(t, negative.Validate(), ErrInvalidPrice)
}
