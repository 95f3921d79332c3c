package service

import (
	"context"
	"fmt"

	"github.com/Leganyst/clinic-desk/internal/calendar"
	"github.com/Leganyst/clinic-desk/internal/model"
	"github.com/Leganyst/clinic-desk/internal/repository"
)

type HireRequest struct {
	Name   string          `json:"name" binding:"required,max=64"`
	Role   model.StaffRole `json:"role" binding:"required,oneof=Doctor Nurse Admin Cashier"`
	DeptID int64           `json:"deptId" binding:"required,gt=0"`
	Title  string          `json:"title" binding:"max=64"`
	Phone  string          `json:"phone" binding:"required,max=32"`
}

func (c *Clinic) HireStaff(ctx context.Context, req HireRequest) (*model.Staff, error) {
	name, err := requireText("name", req.Name, maxNameLen)
	if err != nil {
		return nil, err
	}
	phone, err := requireText("phone", req.Phone, maxPhoneLen)
	if err != nil {
		return nil, err
	}
	title, err := optionalText("title", req.Title, maxTitleLen)
	if err != nil {
		return nil, err
	}
	if !req.Role.Valid() {
		return nil, invalid("role", "must be Doctor, Nurse, Admin or Cashier")
	}
	if _, err := c.department(ctx, req.DeptID); err != nil {
		return nil, err
	}

	s := &model.Staff{
		Name:     name,
		Role:     req.Role,
		DeptID:   req.DeptID,
		Title:    title,
		Phone:    phone,
		IsActive: true,
	}
	if err := c.Staff.Create(ctx, s); err != nil {
		return nil, fmt.Errorf("create staff: %w", err)
	}

	c.log.InfoContext(ctx, "staff hired", "staff_id", s.ID, "role", s.Role, "dept_id", s.DeptID)
	return s, nil
}

// EditRequest — изменяемые поля карточки сотрудника.
type EditRequest struct {
	StaffID int64           `json:"-"`
	Phone   string          `json:"phone" binding:"required,max=32"`
	Title   string          `json:"title" binding:"max=64"`
	Role    model.StaffRole `json:"role" binding:"required,oneof=Doctor Nurse Admin Cashier"`
}

// EditStaff обновляет телефон, звание и должность существующего сотрудника.
func (c *Clinic) EditStaff(ctx context.Context, req EditRequest) (*model.Staff, error) {
	if req.StaffID <= 0 {
		return nil, invalid("staff_id", "is required")
	}
	phone, err := requireText("phone", req.Phone, maxPhoneLen)
	if err != nil {
		return nil, err
	}
	title, err := optionalText("title", req.Title, maxTitleLen)
	if err != nil {
		return nil, err
	}
	if !req.Role.Valid() {
		return nil, invalid("role", "must be Doctor, Nurse, Admin or Cashier")
	}

	var s *model.Staff
	err = c.Tx.InTx(ctx, func(ctx context.Context) error {
		// Существование проверяем явно: MySQL не считает строку затронутой,
		// если значения не изменились.
		if _, err := c.getStaff(ctx, req.StaffID); err != nil {
			return err
		}
		if _, err := c.Staff.UpdateProfile(ctx, req.StaffID, phone, title, req.Role); err != nil {
			return fmt.Errorf("update staff: %w", err)
		}
		s, err = c.getStaff(ctx, req.StaffID)
		return err
	})
	if err != nil {
		return nil, err
	}

	c.log.InfoContext(ctx, "staff updated", "staff_id", s.ID, "role", s.Role)
	return s, nil
}

// TerminateStaff увольняет сотрудника: только сбрасывает is_active.
// История приёмов и смен остаётся нетронутой.
func (c *Clinic) TerminateStaff(ctx context.Context, staffID int64, confirmed bool) error {
	if staffID <= 0 {
		return invalid("staff_id", "is required")
	}
	if !confirmed {
		return ErrConfirmationRequired
	}

	err := c.Tx.InTx(ctx, func(ctx context.Context) error {
		s, err := c.getStaff(ctx, staffID)
		if err != nil {
			return err
		}
		if !s.IsActive {
			return fmt.Errorf("%w (staff %d)", ErrStaffAlreadyInactive, staffID)
		}
		n, err := c.Staff.Deactivate(ctx, staffID)
		if err != nil {
			return fmt.Errorf("deactivate staff: %w", err)
		}
		if n != 1 {
			return fmt.Errorf("%w (staff %d)", ErrStaffAlreadyInactive, staffID)
		}
		return nil
	})
	if err != nil {
		return err
	}

	c.rec.StaffTerminated()
	c.log.InfoContext(ctx, "staff terminated", "staff_id", staffID)
	return nil
}

// ActiveDoctors — врачи, которых можно назначать; deptID == nil — все отделения.
func (c *Clinic) ActiveDoctors(ctx context.Context, deptID *int64) ([]model.Staff, error) {
	doctors, err := c.Staff.ListActiveDoctors(ctx, deptID)
	if err != nil {
		return nil, fmt.Errorf("list doctors: %w", err)
	}
	if doctors == nil {
		doctors = []model.Staff{}
	}
	return doctors, nil
}

// ListStaff — кадровый реестр постранично: сначала работающие.
func (c *Clinic) ListStaff(ctx context.Context, page, size int) (calendar.Page[repository.StaffView], error) {
	page, size = calendar.NormalizePage(page, size)
	rows, total, err := c.Staff.List(ctx, size, calendar.Offset(page, size))
	if err != nil {
		return calendar.Page[repository.StaffView]{}, fmt.Errorf("list staff: %w", err)
	}
	if rows == nil {
		rows = []repository.StaffView{}
	}
	return calendar.Page[repository.StaffView]{
		Items:    rows,
		Page:     page,
		PageSize: size,
		HasNext:  int64(page*size) < total,
		HasPrev:  page > 1,
		Total:    int(total),
	}, nil
}

func (c *Clinic) GetStaff(ctx context.Context, staffID int64) (*model.Staff, error) {
	if staffID <= 0 {
		return nil, invalid("staff_id", "is required")
	}
	return c.getStaff(ctx, staffID)
}

func (c *Clinic) getStaff(ctx context.Context, staffID int64) (*model.Staff, error) {
	s, err := c.Staff.GetByID(ctx, staffID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, notFound("staff", staffID)
		}
		return nil, fmt.Errorf("get staff: %w", err)
	}
	return s, nil
}
