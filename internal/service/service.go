// Package service implements the clinic front-desk and administration
// operations on top of the repositories. Every multi-row write runs in a
// single store transaction.
package service

import (
	"log/slog"
	"time"

	"github.com/Leganyst/clinic-desk/internal/calendar"
	"github.com/Leganyst/clinic-desk/internal/repository"
)

// Recorder получает бизнес-события для метрик. *metrics.Metrics его реализует.
type Recorder interface {
	AppointmentSubmitted(dept string)
	VisitCreated(source string)
	VisitSettled(method string, fee float64)
	ShiftAssigned()
	ScheduleConflict()
	StaffTerminated()
}

type nopRecorder struct{}

func (nopRecorder) AppointmentSubmitted(string)  {}
func (nopRecorder) VisitCreated(string)          {}
func (nopRecorder) VisitSettled(string, float64) {}
func (nopRecorder) ShiftAssigned()               {}
func (nopRecorder) ScheduleConflict()            {}
func (nopRecorder) StaffTerminated()             {}

// Deps — хранилища, с которыми работает Clinic.
type Deps struct {
	Tx           repository.Transactor
	Departments  repository.DepartmentRepository
	Rooms        repository.RoomRepository
	Staff        repository.StaffRepository
	Appointments repository.AppointmentRepository
	Visits       repository.VisitRepository
	Schedules    repository.ScheduleRepository
	Reports      repository.ReportRepository
}

// DepsFromSet раскладывает GORM-репозитории по интерфейсам.
func DepsFromSet(s *repository.Set) Deps {
	return Deps{
		Tx:           s.Tx,
		Departments:  s.Departments,
		Rooms:        s.Rooms,
		Staff:        s.Staff,
		Appointments: s.Appointments,
		Visits:       s.Visits,
		Schedules:    s.Schedules,
		Reports:      s.Reports,
	}
}

type Option func(*Clinic)

// WithClock подменяет источник текущего времени (тесты).
func WithClock(now func() time.Time) Option {
	return func(c *Clinic) { c.now = now }
}

// WithLocation задаёт пояс клиники, в котором считается "сегодня".
func WithLocation(loc *time.Location) Option {
	return func(c *Clinic) {
		if loc != nil {
			c.loc = loc
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Clinic) {
		if l != nil {
			c.log = l
		}
	}
}

func WithRecorder(r Recorder) Option {
	return func(c *Clinic) {
		if r != nil {
			c.rec = r
		}
	}
}

// WithMaxReportDays ограничивает длину периода отчёта; 0 — без ограничения.
func WithMaxReportDays(days int) Option {
	return func(c *Clinic) { c.maxReportDays = days }
}

type Clinic struct {
	Deps

	now           func() time.Time
	loc           *time.Location
	log           *slog.Logger
	rec           Recorder
	maxReportDays int
}

func New(deps Deps, opts ...Option) *Clinic {
	c := &Clinic{
		Deps: deps,
		now:  time.Now,
		loc:  time.UTC,
		log:  slog.Default(),
		rec:  nopRecorder{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Location — пояс клиники.
func (c *Clinic) Location() *time.Location { return c.loc }

// today — текущая дата клиники (полночь UTC).
func (c *Clinic) today() time.Time {
	return calendar.Today(c.now(), c.loc)
}
