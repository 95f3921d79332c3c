package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/datatypes"

	"github.com/Leganyst/clinic-desk/internal/calendar"
	"github.com/Leganyst/clinic-desk/internal/model"
	"github.com/Leganyst/clinic-desk/internal/repository"
)

// ShiftRequest — назначение врача в кабинет на дату и смену.
type ShiftRequest struct {
	DeptID   int64           `json:"deptId" binding:"required,gt=0"`
	DoctorID int64           `json:"doctorId" binding:"required,gt=0"`
	RoomNo   string          `json:"roomNo" binding:"required"`
	Date     string          `json:"shiftDate" binding:"required"`
	Slot     model.ShiftSlot `json:"shiftTime" binding:"required,oneof=Morning Afternoon"`
}

// AssignShift записывает смену врача.
//   - кабинет в эту смену занят другим врачом: ErrScheduleConflict, без записи;
//   - тот же врач уже в этом кабинете: возвращается существующая запись;
//   - врач в эту смену числится в другом кабинете: запись переносится;
//   - иначе вставляется новая.
//
// Уникальный индекс (room_no, shift_date, shift_time) страхует от гонки двух
// назначений: нарушение индекса тоже даёт ErrScheduleConflict.
func (c *Clinic) AssignShift(ctx context.Context, req ShiftRequest) (*model.Schedule, error) {
	if !req.Slot.Valid() {
		return nil, invalid("shift_time", "must be Morning or Afternoon")
	}
	date, err := c.upcomingDate("shift_date", req.Date)
	if err != nil {
		return nil, err
	}

	var (
		sched   *model.Schedule
		written bool
	)
	err = c.Tx.InTx(ctx, func(ctx context.Context) error {
		dept, err := c.department(ctx, req.DeptID)
		if err != nil {
			return err
		}
		doc, err := c.doctor(ctx, req.DoctorID)
		if err != nil {
			return err
		}
		if doc.DeptID != dept.ID {
			return invalid("doctor_id", fmt.Sprintf("doctor %d does not belong to %s", doc.ID, dept.Name))
		}
		room, err := c.availableRoom(ctx, req.RoomNo)
		if err != nil {
			return err
		}
		if room.DeptID != dept.ID {
			return invalid("room_no", fmt.Sprintf("room %s does not belong to %s", room.RoomNo, dept.Name))
		}

		occupant, err := c.Schedules.FindByRoomSlot(ctx, room.RoomNo, date, req.Slot)
		switch {
		case err == nil && occupant.DoctorID != doc.ID:
			return fmt.Errorf("%w: %s is taken by doctor %d", ErrScheduleConflict,
				calendar.FormatShift(date, req.Slot, room.RoomNo), occupant.DoctorID)
		case err == nil:
			sched = occupant
			return nil
		case !repository.IsNotFound(err):
			return fmt.Errorf("find room schedule: %w", err)
		}

		_, err = c.Schedules.FindByDoctorSlot(ctx, doc.ID, date, req.Slot)
		switch {
		case err == nil:
			err = c.Schedules.MoveRoom(ctx, doc.ID, date, req.Slot, room.RoomNo)
		case repository.IsNotFound(err):
			err = c.Schedules.Create(ctx, &model.Schedule{
				DoctorID:  doc.ID,
				ShiftDate: datatypes.Date(date),
				ShiftTime: req.Slot,
				RoomNo:    room.RoomNo,
			})
		default:
			return fmt.Errorf("find doctor schedule: %w", err)
		}
		if err != nil {
			if repository.IsUniqueViolation(err) {
				return fmt.Errorf("%w (room %s)", ErrScheduleConflict, room.RoomNo)
			}
			return fmt.Errorf("write schedule: %w", err)
		}

		sched, err = c.Schedules.FindByDoctorSlot(ctx, doc.ID, date, req.Slot)
		if err != nil {
			return fmt.Errorf("reload schedule: %w", err)
		}
		written = true
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrScheduleConflict) {
			c.rec.ScheduleConflict()
			c.log.WarnContext(ctx, "schedule conflict",
				"doctor_id", req.DoctorID,
				"room_no", req.RoomNo,
				"date", req.Date,
				"slot", req.Slot,
			)
		}
		return nil, err
	}

	if written {
		c.rec.ShiftAssigned()
		c.log.InfoContext(ctx, "shift assigned",
			"doctor_id", sched.DoctorID,
			"room_no", sched.RoomNo,
			"date", date.Format(calendar.DateLayout),
			"slot", sched.ShiftTime,
		)
	}
	return sched, nil
}

// ListSchedule — график за период [from, to], даты "YYYY-MM-DD".
// Пустые границы означают неделю, начиная с сегодняшнего дня.
func (c *Clinic) ListSchedule(ctx context.Context, from, to string) ([]repository.ScheduleView, error) {
	rng, err := c.dateRange(from, to, c.today(), c.today().AddDate(0, 0, 6))
	if err != nil {
		return nil, err
	}

	rows, err := c.Schedules.ListRange(ctx, rng.Start, rng.End)
	if err != nil {
		return nil, fmt.Errorf("list schedule: %w", err)
	}
	if rows == nil {
		rows = []repository.ScheduleView{}
	}
	return rows, nil
}

// SchedulingOptions — кандидаты для формы назначения смены.
type SchedulingOptions struct {
	Department model.Department `json:"department"`
	Doctors    []model.Staff    `json:"doctors"`
	Rooms      []model.Room     `json:"rooms"`
}

// SchedulingOptions возвращает действующих врачей и свободные кабинеты отделения.
func (c *Clinic) SchedulingOptions(ctx context.Context, deptID int64) (*SchedulingOptions, error) {
	dept, err := c.department(ctx, deptID)
	if err != nil {
		return nil, err
	}
	doctors, err := c.Staff.ListActiveDoctors(ctx, &dept.ID)
	if err != nil {
		return nil, fmt.Errorf("list doctors: %w", err)
	}
	rooms, err := c.Rooms.ListAvailable(ctx, &dept.ID)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	if doctors == nil {
		doctors = []model.Staff{}
	}
	if rooms == nil {
		rooms = []model.Room{}
	}
	return &SchedulingOptions{Department: *dept, Doctors: doctors, Rooms: rooms}, nil
}
