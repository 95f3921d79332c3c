package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Leganyst/clinic-desk/internal/model"
)

type RoomRepository interface {
	GetByNo(ctx context.Context, roomNo string) (*model.Room, error)
	// Свободные кабинеты; deptID == nil — по всем отделениям.
	ListAvailable(ctx context.Context, deptID *int64) ([]model.Room, error)
}

type GormRoomRepository struct {
	db *gorm.DB
}

func NewGormRoomRepository(db *gorm.DB) *GormRoomRepository {
	return &GormRoomRepository{db: db}
}

func (r *GormRoomRepository) GetByNo(ctx context.Context, roomNo string) (*model.Room, error) {
	var room model.Room
	if err := conn(ctx, r.db).First(&room, "room_no = ?", roomNo).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *GormRoomRepository) ListAvailable(ctx context.Context, deptID *int64) ([]model.Room, error) {
	q := conn(ctx, r.db).
		Model(&model.Room{}).
		Where("status = ?", model.RoomStatusAvailable)
	if deptID != nil {
		q = q.Where("dept_id = ?", *deptID)
	}

	var rooms []model.Room
	if err := q.Order("room_no ASC").Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}
