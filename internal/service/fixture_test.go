package service

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Leganyst/clinic-desk/internal/db/dbtest"
	"github.com/Leganyst/clinic-desk/internal/model"
	"github.com/Leganyst/clinic-desk/internal/repository"
)

// Идентификаторы из model.DefaultSeed на чистой базе.
const (
	deptInternal   int64 = 1
	deptSurgery    int64 = 2
	doctorZhang    int64 = 1 // Internal Medicine
	doctorWang     int64 = 2 // Internal Medicine
	doctorLiu      int64 = 3 // Surgery
	nurseChen      int64 = 4
	roomIM1              = "101"
	roomIM2              = "102"
	roomSurgery          = "201"
	roomMaintained       = "401"
)

type countingRecorder struct {
	mu        sync.Mutex
	submitted int
	visits    map[string]int
	settled   int
	revenue   float64
	assigned  int
	conflicts int
	fired     int
}

func (r *countingRecorder) AppointmentSubmitted(string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.submitted++
}

func (r *countingRecorder) VisitCreated(source string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.visits == nil {
		r.visits = map[string]int{}
	}
	r.visits[source]++
}

func (r *countingRecorder) VisitSettled(_ string, fee float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.settled++
	r.revenue += fee
}

func (r *countingRecorder) ShiftAssigned() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.assigned++
}

func (r *countingRecorder) ScheduleConflict() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conflicts++
}

func (r *countingRecorder) StaffTerminated() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fired++
}

type fixture struct {
	db  *gorm.DB
	svc *Clinic
	rec *countingRecorder
	now time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		db:  dbtest.Seeded(t),
		rec: &countingRecorder{},
		now: time.Date(2024, 5, 20, 10, 0, 0, 0, time.UTC),
	}
	f.svc = New(
		DepsFromSet(repository.NewSet(f.db)),
		WithClock(func() time.Time { return f.now }),
		WithLocation(time.UTC),
		WithRecorder(f.rec),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithMaxReportDays(366),
	)
	return f
}

func (f *fixture) submit(t *testing.T, name string) *model.Appointment {
	t.Helper()
	appt, err := f.svc.SubmitAppointment(context.Background(), AppointmentRequest{
		PatientName: name,
		Phone:       "13800000000",
		DeptID:      deptInternal,
		Date:        "2024-06-01",
		ETA:         "09:30",
	})
	require.NoError(t, err)
	return appt
}

func (f *fixture) onSite(t *testing.T, name string, deptID, doctorID int64, room string) *model.Visit {
	t.Helper()
	v, err := f.svc.RegisterOnSite(context.Background(), OnSiteRequest{
		PatientName: name,
		Phone:       "13900000000",
		IDCard:      "110101199001011234",
		Gender:      model.GenderMale,
		DeptID:      deptID,
		DoctorID:    doctorID,
		RoomNo:      room,
	})
	require.NoError(t, err)
	return v
}

func (f *fixture) settle(t *testing.T, visitID int64, fee float64, at time.Time) {
	t.Helper()
	prev := f.now
	f.now = at
	defer func() { f.now = prev }()

	_, err := f.svc.SettleVisit(context.Background(), SettleRequest{
		VisitID:       visitID,
		Fee:           fee,
		PaymentMethod: model.PaymentMethodCash,
	})
	require.NoError(t, err)
}

func (f *fixture) appointment(t *testing.T, id int64) model.Appointment {
	t.Helper()
	var a model.Appointment
	require.NoError(t, f.db.First(&a, "appt_id = ?", id).Error)
	return a
}

func (f *fixture) countVisits(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&model.Visit{}).Count(&n).Error)
	return n
}
