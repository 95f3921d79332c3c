package service

import (
	"context"
	"fmt"

	"github.com/Leganyst/clinic-desk/internal/model"
	"github.com/Leganyst/clinic-desk/internal/repository"
)

const (
	visitSourceAppointment = "appointment"
	visitSourceOnSite      = "onsite"
)

// VerifyRequest — данные, которые стойка добирает при приходе пациента по заявке.
type VerifyRequest struct {
	ApptID   int64        `json:"-"`
	IDCard   string       `json:"idCard" binding:"required,max=18"`
	Gender   model.Gender `json:"gender" binding:"required,oneof=M F"`
	DoctorID int64        `json:"doctorId" binding:"required,gt=0"`
	RoomNo   string       `json:"roomNo" binding:"required"`
}

// VerifyAppointment переводит заявку в Completed и открывает по ней приём ToPay.
// Обе записи пишутся в одной транзакции.
func (c *Clinic) VerifyAppointment(ctx context.Context, req VerifyRequest) (*model.Visit, error) {
	if req.ApptID <= 0 {
		return nil, invalid("appt_id", "is required")
	}
	idCard, err := requireText("id_card", req.IDCard, maxIDCardLen)
	if err != nil {
		return nil, err
	}
	if !req.Gender.Valid() {
		return nil, invalid("gender", "must be M or F")
	}

	var visit *model.Visit
	err = c.Tx.InTx(ctx, func(ctx context.Context) error {
		appt, err := c.Appointments.GetForUpdate(ctx, req.ApptID)
		if err != nil {
			if repository.IsNotFound(err) {
				return notFound("appointment", req.ApptID)
			}
			return fmt.Errorf("get appointment: %w", err)
		}
		if appt.Status != model.AppointmentStatusPending {
			return fmt.Errorf("%w (appointment %d is %s)", ErrAppointmentNotPending, appt.ID, appt.Status)
		}

		doc, err := c.doctor(ctx, req.DoctorID)
		if err != nil {
			return err
		}
		room, err := c.availableRoom(ctx, req.RoomNo)
		if err != nil {
			return err
		}

		// Условный UPDATE: конкурентная верификация той же заявки увидит 0 строк.
		n, err := c.Appointments.MarkCompleted(ctx, appt.ID)
		if err != nil {
			return fmt.Errorf("complete appointment: %w", err)
		}
		if n != 1 {
			return fmt.Errorf("%w (appointment %d)", ErrAppointmentNotPending, appt.ID)
		}

		apptID := appt.ID
		visit = &model.Visit{
			ApptID:      &apptID,
			PatientName: appt.PatientName,
			Phone:       appt.Phone,
			IDCard:      idCard,
			Gender:      req.Gender,
			DeptID:      appt.DeptID,
			DoctorID:    doc.ID,
			RoomNo:      room.RoomNo,
			Status:      model.VisitStatusToPay,
			VisitTime:   c.now().UTC(),
		}
		if err := c.Visits.Create(ctx, visit); err != nil {
			if repository.IsUniqueViolation(err) {
				return fmt.Errorf("%w (appointment %d already has a visit)", ErrAppointmentNotPending, appt.ID)
			}
			return fmt.Errorf("create visit: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.rec.VisitCreated(visitSourceAppointment)
	c.log.InfoContext(ctx, "appointment verified",
		"appt_id", req.ApptID,
		"visit_id", visit.ID,
		"doctor_id", visit.DoctorID,
		"room_no", visit.RoomNo,
	)
	return visit, nil
}

// OnSiteRequest — регистрация пациента без предварительной заявки.
type OnSiteRequest struct {
	PatientName string       `json:"patientName" binding:"required,max=64"`
	Phone       string       `json:"phone" binding:"max=32"`
	IDCard      string       `json:"idCard" binding:"required,max=18"`
	Gender      model.Gender `json:"gender" binding:"required,oneof=M F"`
	DeptID      int64        `json:"deptId" binding:"required,gt=0"`
	DoctorID    int64        `json:"doctorId" binding:"required,gt=0"`
	RoomNo      string       `json:"roomNo" binding:"required"`
}

// RegisterOnSite открывает приём ToPay без заявки.
func (c *Clinic) RegisterOnSite(ctx context.Context, req OnSiteRequest) (*model.Visit, error) {
	name, err := requireText("patient_name", req.PatientName, maxNameLen)
	if err != nil {
		return nil, err
	}
	idCard, err := requireText("id_card", req.IDCard, maxIDCardLen)
	if err != nil {
		return nil, err
	}
	phone, err := optionalText("phone", req.Phone, maxPhoneLen)
	if err != nil {
		return nil, err
	}
	if !req.Gender.Valid() {
		return nil, invalid("gender", "must be M or F")
	}

	var visit *model.Visit
	err = c.Tx.InTx(ctx, func(ctx context.Context) error {
		if _, err := c.department(ctx, req.DeptID); err != nil {
			return err
		}
		doc, err := c.doctor(ctx, req.DoctorID)
		if err != nil {
			return err
		}
		room, err := c.availableRoom(ctx, req.RoomNo)
		if err != nil {
			return err
		}

		visit = &model.Visit{
			PatientName: name,
			Phone:       phone,
			IDCard:      idCard,
			Gender:      req.Gender,
			DeptID:      req.DeptID,
			DoctorID:    doc.ID,
			RoomNo:      room.RoomNo,
			Status:      model.VisitStatusToPay,
			VisitTime:   c.now().UTC(),
		}
		if err := c.Visits.Create(ctx, visit); err != nil {
			return fmt.Errorf("create visit: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.rec.VisitCreated(visitSourceOnSite)
	c.log.InfoContext(ctx, "on-site visit registered",
		"visit_id", visit.ID,
		"dept_id", visit.DeptID,
		"doctor_id", visit.DoctorID,
	)
	return visit, nil
}
