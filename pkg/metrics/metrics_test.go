package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_ObserveBooking(t *testing.T) {
	m := New("canteen-test")

	m.ObserveBooking("Afternoon", "admitted")
	m.ObserveBooking("Afternoon", "admitted")
	m.ObserveBooking("Night", "sold_out")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.BookingOutcomes.WithLabelValues("Afternoon", "admitted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BookingOutcomes.WithLabelValues("Night", "sold_out")))
}

func TestMetrics_ObserveQueryAndHTTP(t *testing.T) {
	m := New("canteen-test")

	m.ObserveQuery("exec", nil, 5*time.Millisecond)
	m.ObserveQuery("exec", errors.New("boom"), 5*time.Millisecond)
	m.ObserveHTTP(http.MethodPost, "/api/v1/bookings", http.StatusCreated, time.Millisecond)
	m.ObservePortionDecrement("PORTION-VC")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues(http.MethodPost, "/api/v1/bookings", "201")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PortionDecrements.WithLabelValues("PORTION-VC")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.DBQueryDuration))
}

func TestMetrics_Handler(t *testing.T) {
	m := New("canteen-test")
	m.ObserveBooking("Morning", "outside_window")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "canteen_booking_outcomes_total")
}
