package repository

import (
	"context"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Leganyst/clinic-desk/internal/model"
)

type ScheduleRepository interface {
	// Кто занимает кабинет в дату/смену.
	FindByRoomSlot(ctx context.Context, roomNo string, date time.Time, slot model.ShiftSlot) (*model.Schedule, error)
	// Где дежурит врач в дату/смену.
	FindByDoctorSlot(ctx context.Context, doctorID int64, date time.Time, slot model.ShiftSlot) (*model.Schedule, error)
	Create(ctx context.Context, s *model.Schedule) error
	// Перевести врача в другой кабинет в рамках той же смены.
	MoveRoom(ctx context.Context, doctorID int64, date time.Time, slot model.ShiftSlot, roomNo string) error
	// График за период [from, to] включительно.
	ListRange(ctx context.Context, from, to time.Time) ([]ScheduleView, error)
}

type GormScheduleRepository struct {
	db *gorm.DB
}

func NewGormScheduleRepository(db *gorm.DB) *GormScheduleRepository {
	return &GormScheduleRepository{db: db}
}

func (r *GormScheduleRepository) FindByRoomSlot(
	ctx context.Context,
	roomNo string,
	date time.Time,
	slot model.ShiftSlot,
) (*model.Schedule, error) {
	var s model.Schedule
	err := conn(ctx, r.db).
		Where("room_no = ? AND shift_date = ? AND shift_time = ?", roomNo, datatypes.Date(date), slot).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *GormScheduleRepository) FindByDoctorSlot(
	ctx context.Context,
	doctorID int64,
	date time.Time,
	slot model.ShiftSlot,
) (*model.Schedule, error) {
	var s model.Schedule
	err := conn(ctx, r.db).
		Where("doctor_id = ? AND shift_date = ? AND shift_time = ?", doctorID, datatypes.Date(date), slot).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *GormScheduleRepository) Create(ctx context.Context, s *model.Schedule) error {
	return conn(ctx, r.db).Create(s).Error
}

func (r *GormScheduleRepository) MoveRoom(
	ctx context.Context,
	doctorID int64,
	date time.Time,
	slot model.ShiftSlot,
	roomNo string,
) error {
	return conn(ctx, r.db).
		Model(&model.Schedule{}).
		Where("doctor_id = ? AND shift_date = ? AND shift_time = ?", doctorID, datatypes.Date(date), slot).
		Update("room_no", roomNo).
		Error
}

func (r *GormScheduleRepository) ListRange(ctx context.Context, from, to time.Time) ([]ScheduleView, error) {
	var rows []ScheduleView
	err := conn(ctx, r.db).
		Table("schedules AS sc").
		Select("sc.doctor_id, s.name AS doctor_name, d.dept_name, sc.shift_date, sc.shift_time, sc.room_no").
		Joins("JOIN staff s ON s.staff_id = sc.doctor_id").
		Joins("LEFT JOIN departments d ON d.dept_id = s.dept_id").
		Where("sc.shift_date >= ? AND sc.shift_date <= ?", datatypes.Date(from), datatypes.Date(to)).
		// "Morning" > "Afternoon" по строке: DESC ставит утреннюю смену первой.
		Order("sc.shift_date ASC, sc.shift_time DESC, sc.room_no ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
