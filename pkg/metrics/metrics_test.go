package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestBookingCounters(t *testing.T) {
	m := NewWithRegistry("turf-booking", prometheus.NewRegistry())

	m.IncBookingEvent("created")
	m.IncBookingEvent("created")
	m.IncRefund("early cancellation")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.BookingEvents.WithLabelValues("created")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RefundsTotal.WithLabelValues("early cancellation")))
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.IncBookingEvent("created")
		m.IncRefund("last-minute cancellation")
	})
}
