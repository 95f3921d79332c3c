// Package metrics exposes clinic business events as Prometheus collectors.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "clinic"

// Metrics держит все счётчики на собственном реестре,
// чтобы тесты не делили глобальный prometheus.DefaultRegisterer.
type Metrics struct {
	registry *prometheus.Registry

	appointments      *prometheus.CounterVec
	visits            *prometheus.CounterVec
	settlements       *prometheus.CounterVec
	revenue           *prometheus.CounterVec
	scheduleAssigned  prometheus.Counter
	scheduleConflicts prometheus.Counter
	staffTerminated   prometheus.Counter
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		appointments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "appointments_submitted_total",
			Help:      "Appointment requests accepted, by department id.",
		}, []string{"dept"}),
		visits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "visits_created_total",
			Help:      "Visits opened, by source (appointment or onsite).",
		}, []string{"source"}),
		settlements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "visits_settled_total",
			Help:      "Visits moved to Finished, by payment method.",
		}, []string{"method"}),
		revenue: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "revenue_total",
			Help:      "Sum of settled fees, by payment method.",
		}, []string{"method"}),
		scheduleAssigned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "schedule_assignments_total",
			Help:      "Shift assignments written.",
		}),
		scheduleConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "schedule_conflicts_total",
			Help:      "Shift assignments rejected because the room was taken.",
		}),
		staffTerminated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "staff_terminated_total",
			Help:      "Staff members deactivated.",
		}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.appointments,
		m.visits,
		m.settlements,
		m.revenue,
		m.scheduleAssigned,
		m.scheduleConflicts,
		m.staffTerminated,
	)
	return m
}

// Registry is exposed for additional collectors (e.g. DB pool stats).
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) AppointmentSubmitted(dept string) {
	m.appointments.WithLabelValues(dept).Inc()
}

func (m *Metrics) VisitCreated(source string) {
	m.visits.WithLabelValues(source).Inc()
}

func (m *Metrics) VisitSettled(method string, fee float64) {
	if method == "" {
		method = "unspecified"
	}
	m.settlements.WithLabelValues(method).Inc()
	m.revenue.WithLabelValues(method).Add(fee)
}

func (m *Metrics) ShiftAssigned() { m.scheduleAssigned.Inc() }

func (m *Metrics) ScheduleConflict() { m.scheduleConflicts.Inc() }

func (m *Metrics) StaffTerminated() { m.staffTerminated.Inc() }
