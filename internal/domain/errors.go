package domain

import "errors"

var (
	ErrInvalidTimeRange  = errors.New("end time must be after start time")
	ErrMinimumDuration   = errors.New("minimum booking duration is 60 minutes")
	ErrPastTime          = errors.New("booking time has already passed")
	ErrBookingCancelled  = errors.New("booking is cancelled")
	ErrNotReschedulable  = errors.New("only pending bookings can be rescheduled")
	ErrUnknownStatus     = errors.New("unknown booking status")
	ErrInvalidPrice      = errors.New("invalid price per hour")
	ErrInvalidTurfFields = errors.New("invalid turf fields")
)
