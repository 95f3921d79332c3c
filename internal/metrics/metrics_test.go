package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()

	m.AppointmentSubmitted("1")
	m.AppointmentSubmitted("1")
	m.VisitCreated("onsite")
	m.VisitSettled("Cash", 50)
	m.VisitSettled("", 20)
	m.ScheduleConflict()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.appointments.WithLabelValues("1")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.visits.WithLabelValues("onsite")))
	assert.Equal(t, 50.0, testutil.ToFloat64(m.revenue.WithLabelValues("Cash")))
	assert.Equal(t, 20.0, testutil.ToFloat64(m.revenue.WithLabelValues("unspecified")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.scheduleConflicts))
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.StaffTerminated()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "clinic_staff_terminated_total 1")
}
