package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Leganyst/clinic-desk/internal/model"
)

func TestSettleVisit(t *testing.T) {
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

	settled, err := f.svc.SettleVisit(ctx, SettleRequest{
		VisitID:       visit.ID,
		Fee:           50.00,
		PaymentMethod: model.PaymentMethodInsurance,
	})
	require.NoError(t, err)

	assert.Equal(t, model.VisitStatusFinished, settled.Status)
	assert.InDelta(t, 50.00, settled.TotalFee, 0.001)
	require.NotNil(t, settled.PaymentMethod)
	assert.Equal(t, model.PaymentMethodInsurance, *settled.PaymentMethod)
	require.NotNil(t, settled.FinishTime)
	assert.True(t, f.now.Equal(*settled.FinishTime))
	require.NotNil(t, settled.ReceiptNo)

	unpaid, err := f.svc.ListUnpaidVisits(ctx)
	require.NoError(t, err)
	assert.Empty(t, unpaid)
	assert.Equal(t, 1, f.rec.settled)
}

func TestSettleVisit_SecondAttemptFails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	v := f.onSite(t, "Zhou Qi", deptInternal, doctorZhang, roomIM1)

	first, err := f.svc.SettleVisit(ctx, SettleRequest{VisitID: v.ID, Fee: 50})
	require.NoError(t, err)

	f.now = f.now.Add(time.Hour)
	_, err = f.svc.SettleVisit(ctx, SettleRequest{VisitID: v.ID, Fee: 80})
	require.ErrorIs(t, err, ErrVisitNotPayable)
	require.ErrorIs(t, err, ErrPrecondition)

	var stored model.Visit
	require.NoError(t, f.db.First(&stored, "visit_id = ?", v.ID).Error)
	assert.InDelta(t, 50.0, stored.TotalFee, 0.001)
	require.NotNil(t, stored.FinishTime)
	assert.True(t, first.FinishTime.Equal(*stored.FinishTime))
	assert.Equal(t, 1, f.rec.settled)
}

func TestSettleVisit_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.SettleVisit(context.Background(), SettleRequest{VisitID: 404, Fee: 10})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSettleVisit_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	v := f.onSite(t, "Zhou Qi", deptInternal, doctorZhang, roomIM1)

	_, err := f.svc.SettleVisit(ctx, SettleRequest{VisitID: v.ID, Fee: -1})
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = f.svc.SettleVisit(ctx, SettleRequest{VisitID: v.ID, Fee: 10, PaymentMethod: "Barter"})
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = f.svc.SettleVisit(ctx, SettleRequest{VisitID: v.ID, Fee: 1e12})
	require.ErrorIs(t, err, ErrInvalidArgument)

	unpaid, err := f.svc.ListUnpaidVisits(ctx)
	require.NoError(t, err)
	assert.Len(t, unpaid, 1)
}

func TestSettleVisit_ZeroFeeAllowed(t *testing.T) {
	f := newFixture(t)
	v := f.onSite(t, "Zhou Qi", deptInternal, doctorZhang, roomIM1)

	settled, err := f.svc.SettleVisit(context.Background(), SettleRequest{VisitID: v.ID, Fee: 0})
	require.NoError(t, err)
	assert.Equal(t, model.VisitStatusFinished, settled.Status)
	assert.Zero(t, settled.TotalFee)
	assert.Nil(t, settled.PaymentMethod, "method not given")
	assert.Equal(t, 1, f.rec.settled)
}
