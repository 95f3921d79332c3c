package service

import (
	"context"
	"fmt"

	"github.com/Leganyst/clinic-desk/internal/model"
)

func (c *Clinic) ListDepartments(ctx context.Context) ([]model.Department, error) {
	depts, err := c.Departments.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}
	if depts == nil {
		depts = []model.Department{}
	}
	return depts, nil
}

// ListAvailableRooms — кабинеты в статусе Available; deptID == nil — все.
func (c *Clinic) ListAvailableRooms(ctx context.Context, deptID *int64) ([]model.Room, error) {
	rooms, err := c.Rooms.ListAvailable(ctx, deptID)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	if rooms == nil {
		rooms = []model.Room{}
	}
	return rooms, nil
}
