package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/datatypes"

	"github.com/Leganyst/clinic-desk/internal/calendar"
	"github.com/Leganyst/clinic-desk/internal/model"
	"github.com/Leganyst/clinic-desk/internal/repository"
)

// AppointmentRequest — заявка пациента на приём.
type AppointmentRequest struct {
	PatientName string `json:"patientName" binding:"required,max=64"`
	Phone       string `json:"phone" binding:"required,max=32"`
	IDCard      string `json:"idCard" binding:"max=18"`
	DeptID      int64  `json:"deptId" binding:"required,gt=0"`
	// Дата приёма "YYYY-MM-DD" и ожидаемое время прихода "HH:MM".
	Date string `json:"apptDate" binding:"required"`
	ETA  string `json:"eta" binding:"required"`
}

// SubmitAppointment создаёт заявку в статусе Pending.
// Повторные заявки одного пациента не отсекаются.
func (c *Clinic) SubmitAppointment(ctx context.Context, req AppointmentRequest) (*model.Appointment, error) {
	name, err := requireText("patient_name", req.PatientName, maxNameLen)
	if err != nil {
		return nil, err
	}
	phone, err := requireText("phone", req.Phone, maxPhoneLen)
	if err != nil {
		return nil, err
	}
	idCard, err := optionalText("id_card", req.IDCard, maxIDCardLen)
	if err != nil {
		return nil, err
	}
	date, err := c.upcomingDate("appt_date", req.Date)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.ETA) == "" {
		return nil, invalid("eta", "is required")
	}
	eta, err := calendar.ParseClock(req.ETA)
	if err != nil {
		return nil, invalid("eta", "must be HH:MM")
	}
	if _, err := c.department(ctx, req.DeptID); err != nil {
		return nil, err
	}

	appt := &model.Appointment{
		PatientName: name,
		Phone:       phone,
		IDCard:      idCard,
		DeptID:      req.DeptID,
		ApptDate:    datatypes.Date(date),
		ETA:         datatypes.Time(eta),
		Status:      model.AppointmentStatusPending,
	}
	if err := c.Appointments.Create(ctx, appt); err != nil {
		return nil, fmt.Errorf("create appointment: %w", err)
	}

	c.rec.AppointmentSubmitted(strconv.FormatInt(appt.DeptID, 10))
	c.log.InfoContext(ctx, "appointment submitted",
		"appt_id", appt.ID,
		"dept_id", appt.DeptID,
		"date", date.Format(calendar.DateLayout),
	)
	return appt, nil
}

// ListPendingAppointments — очередь стойки регистрации.
func (c *Clinic) ListPendingAppointments(ctx context.Context) ([]repository.PendingAppointment, error) {
	rows, err := c.Appointments.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pending appointments: %w", err)
	}
	if rows == nil {
		rows = []repository.PendingAppointment{}
	}
	return rows, nil
}
