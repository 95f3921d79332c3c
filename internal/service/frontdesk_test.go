package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Leganyst/clinic-desk/internal/model"
)

func TestVerifyAppointment_CreatesVisit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	appt := f.submit(t, "Li Wei")

	visit, err := f.svc.VerifyAppointment(ctx, VerifyRequest{
		ApptID:   appt.ID,
		IDCard:   "110101199001011234",
		Gender:   model.GenderMale,
		DoctorID: doctorZhang,
		RoomNo:   roomIM1,
	})
	require.NoError(t, err)

	assert.Equal(t, model.VisitStatusToPay, visit.Status)
	require.NotNil(t, visit.ApptID)
	assert.Equal(t, appt.ID, *visit.ApptID)
	assert.Equal(t, "Li Wei", visit.PatientName)
	assert.Equal(t, appt.Phone, visit.Phone)
	assert.Equal(t, appt.DeptID, visit.DeptID)
	assert.Equal(t, doctorZhang, visit.DoctorID)
	assert.Equal(t, roomIM1, visit.RoomNo)

	assert.Equal(t, model.AppointmentStatusCompleted, f.appointment(t, appt.ID).Status)
	assert.Equal(t, 1, f.rec.visits[visitSourceAppointment])

	pending, err := f.svc.ListPendingAppointments(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)

	unpaid, err := f.svc.ListUnpaidVisits(ctx)
	require.NoError(t, err)
	require.Len(t, unpaid, 1)
	assert.Equal(t, visit.ID, unpaid[0].VisitID)
}

func TestVerifyAppointment_OnlyOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	appt := f.submit(t, "Li Wei")

	req := VerifyRequest{
		ApptID:   appt.ID,
		IDCard:   "110101199001011234",
		Gender:   model.GenderMale,
		DoctorID: doctorZhang,
		RoomNo:   roomIM1,
	}
	_, err := f.svc.VerifyAppointment(ctx, req)
	require.NoError(t, err)

	_, err = f.svc.VerifyAppointment(ctx, req)
	require.ErrorIs(t, err, ErrAppointmentNotPending)
	require.ErrorIs(t, err, ErrPrecondition)
	assert.EqualValues(t, 1, f.countVisits(t))
}

func TestVerifyAppointment_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.VerifyAppointment(context.Background(), VerifyRequest{
		ApptID:   42,
		IDCard:   "110101199001011234",
		Gender:   model.GenderFemale,
		DoctorID: doctorZhang,
		RoomNo:   roomIM1,
	})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestVerifyAppointment_RejectedLeavesAppointmentPending(t *testing.T) {
	tests := []struct {
		name string
		edit func(r *VerifyRequest)
	}{
		{"missing id card", func(r *VerifyRequest) { r.IDCard = " " }},
		{"bad gender", func(r *VerifyRequest) { r.Gender = "X" }},
		{"nurse as doctor", func(r *VerifyRequest) { r.DoctorID = nurseChen }},
		{"unknown doctor", func(r *VerifyRequest) { r.DoctorID = 999 }},
		{"room under maintenance", func(r *VerifyRequest) { r.RoomNo = roomMaintained }},
		{"unknown room", func(r *VerifyRequest) { r.RoomNo = "999" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			appt := f.submit(t, "Li Wei")

			req := VerifyRequest{
				ApptID:   appt.ID,
				IDCard:   "110101199001011234",
				Gender:   model.GenderMale,
				DoctorID: doctorZhang,
				RoomNo:   roomIM1,
			}
			tt.edit(&req)

			_, err := f.svc.VerifyAppointment(context.Background(), req)
			require.ErrorIs(t, err, ErrInvalidArgument)
			assert.Equal(t, model.AppointmentStatusPending, f.appointment(t, appt.ID).Status)
			assert.Zero(t, f.countVisits(t))
		})
	}
}

func TestVerifyAppointment_InactiveDoctor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	appt := f.submit(t, "Li Wei")
	require.NoError(t, f.svc.TerminateStaff(ctx, doctorZhang, true))

	_, err := f.svc.VerifyAppointment(ctx, VerifyRequest{
		ApptID:   appt.ID,
		IDCard:   "110101199001011234",
		Gender:   model.GenderMale,
		DoctorID: doctorZhang,
		RoomNo:   roomIM1,
	})
	require.ErrorIs(t, err, ErrInvalidArgument)
	assert.Equal(t, model.AppointmentStatusPending, f.appointment(t, appt.ID).Status)
}

func TestRegisterOnSite(t *testing.T) {
	f := newFixture(t)

	v := f.onSite(t, "Zhou Qi", deptSurgery, doctorLiu, roomSurgery)
	assert.Nil(t, v.ApptID)
	assert.Equal(t, model.VisitStatusToPay, v.Status)
	assert.Equal(t, deptSurgery, v.DeptID)
	assert.Equal(t, 1, f.rec.visits[visitSourceOnSite])
}

func TestRegisterOnSite_Validation(t *testing.T) {
	valid := OnSiteRequest{
		PatientName: "Zhou Qi",
		IDCard:      "110101199001011234",
		Gender:      model.GenderFemale,
		DeptID:      deptSurgery,
		DoctorID:    doctorLiu,
		RoomNo:      roomSurgery,
	}

	tests := []struct {
		name string
		edit func(r *OnSiteRequest)
	}{
		{"blank name", func(r *OnSiteRequest) { r.PatientName = "" }},
		{"blank id card", func(r *OnSiteRequest) { r.IDCard = "" }},
		{"unknown department", func(r *OnSiteRequest) { r.DeptID = 77 }},
		{"room under maintenance", func(r *OnSiteRequest) { r.RoomNo = roomMaintained }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			req := valid
			tt.edit(&req)

			_, err := f.svc.RegisterOnSite(context.Background(), req)
			require.ErrorIs(t, err, ErrInvalidArgument)
			assert.Zero(t, f.countVisits(t))
		})
	}
}

func TestVerifyAppointment_VisitInsertFailureRollsBack(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	appt := f.submit(t, "Li Wei")

	// Приём на эту заявку уже есть в обход сервиса: UPDATE заявки пройдёт,
	// а INSERT приёма упадёт на уникальном appt_id.
	apptID := appt.ID
	require.NoError(t, f.db.Create(&model.Visit{
		ApptID:      &apptID,
		PatientName: appt.PatientName,
		DeptID:      appt.DeptID,
		DoctorID:    doctorWang,
		RoomNo:      roomIM2,
		Status:      model.VisitStatusToPay,
		VisitTime:   f.now,
	}).Error)

	_, err := f.svc.VerifyAppointment(ctx, VerifyRequest{
		ApptID:   appt.ID,
		IDCard:   "110101199001011234",
		Gender:   model.GenderMale,
		DoctorID: doctorZhang,
		RoomNo:   roomIM1,
	})
	require.ErrorIs(t, err, ErrAppointmentNotPending)

	assert.Equal(t, model.AppointmentStatusPending, f.appointment(t, appt.ID).Status)
	assert.EqualValues(t, 1, f.countVisits(t))
	assert.Zero(t, f.rec.visits[visitSourceAppointment])
}
