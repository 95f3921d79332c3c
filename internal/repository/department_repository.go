package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Leganyst/clinic-desk/internal/model"
)

type DepartmentRepository interface {
	List(ctx context.Context) ([]model.Department, error)
	GetByID(ctx context.Context, id int64) (*model.Department, error)
}

type GormDepartmentRepository struct {
	db *gorm.DB
}

func NewGormDepartmentRepository(db *gorm.DB) *GormDepartmentRepository {
	return &GormDepartmentRepository{db: db}
}

func (r *GormDepartmentRepository) List(ctx context.Context) ([]model.Department, error) {
	var depts []model.Department
	if err := conn(ctx, r.db).Order("dept_id ASC").Find(&depts).Error; err != nil {
		return nil, err
	}
	return depts, nil
}

func (r *GormDepartmentRepository) GetByID(ctx context.Context, id int64) (*model.Department, error) {
	var d model.Department
	if err := conn(ctx, r.db).First(&d, "dept_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}
