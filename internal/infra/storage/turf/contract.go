package turf

import "github.com/m04kA/SMC-TurfBooking/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
