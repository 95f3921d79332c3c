package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Leganyst/clinic-desk/internal/calendar"
	"github.com/Leganyst/clinic-desk/internal/model"
	"github.com/Leganyst/clinic-desk/internal/repository"
)

const (
	maxNameLen   = 64
	maxPhoneLen  = 32
	maxIDCardLen = 18
	maxTitleLen  = 64
)

// requireText обрезает пробелы и требует непустое значение не длиннее max рун.
func requireText(field, v string, max int) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", invalid(field, "is required")
	}
	if utf8.RuneCountInString(v) > max {
		return "", invalid(field, fmt.Sprintf("must be at most %d characters", max))
	}
	return v, nil
}

func optionalText(field, v string, max int) (string, error) {
	v = strings.TrimSpace(v)
	if utf8.RuneCountInString(v) > max {
		return "", invalid(field, fmt.Sprintf("must be at most %d characters", max))
	}
	return v, nil
}

func (c *Clinic) department(ctx context.Context, id int64) (*model.Department, error) {
	if id <= 0 {
		return nil, invalid("dept_id", "is required")
	}
	d, err := c.Departments.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, invalid("dept_id", fmt.Sprintf("department %d does not exist", id))
		}
		return nil, fmt.Errorf("get department: %w", err)
	}
	return d, nil
}

// doctor возвращает действующего врача или ошибку валидации.
func (c *Clinic) doctor(ctx context.Context, id int64) (*model.Staff, error) {
	if id <= 0 {
		return nil, invalid("doctor_id", "is required")
	}
	s, err := c.Staff.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, invalid("doctor_id", fmt.Sprintf("staff %d does not exist", id))
		}
		return nil, fmt.Errorf("get doctor: %w", err)
	}
	if s.Role != model.StaffRoleDoctor {
		return nil, invalid("doctor_id", fmt.Sprintf("staff %d is not a doctor", id))
	}
	if !s.IsActive {
		return nil, invalid("doctor_id", fmt.Sprintf("doctor %d is no longer active", id))
	}
	return s, nil
}

// availableRoom возвращает существующий кабинет в статусе Available.
func (c *Clinic) availableRoom(ctx context.Context, roomNo string) (*model.Room, error) {
	roomNo = strings.TrimSpace(roomNo)
	if roomNo == "" {
		return nil, invalid("room_no", "is required")
	}
	r, err := c.Rooms.GetByNo(ctx, roomNo)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, invalid("room_no", fmt.Sprintf("room %s does not exist", roomNo))
		}
		return nil, fmt.Errorf("get room: %w", err)
	}
	if r.Status != model.RoomStatusAvailable {
		return nil, invalid("room_no", fmt.Sprintf("room %s is %s", roomNo, r.Status))
	}
	return r, nil
}

// upcomingDate разбирает дату и требует, чтобы она была не раньше сегодняшней.
func (c *Clinic) upcomingDate(field, s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return time.Time{}, invalid(field, "is required")
	}
	d, err := calendar.ParseDate(s)
	if err != nil {
		return time.Time{}, invalid(field, "must be YYYY-MM-DD")
	}
	if !calendar.NotBefore(d, c.now(), c.loc) {
		return time.Time{}, invalid(field, "must be today or later")
	}
	return d, nil
}
