package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Leganyst/clinic-desk/internal/calendar"
	"github.com/Leganyst/clinic-desk/internal/model"
)

type StaffRepository interface {
	Create(ctx context.Context, staff *model.Staff) error
	GetByID(ctx context.Context, id int64) (*model.Staff, error)
	// Обновить телефон, должность и звание; возвращает число затронутых строк.
	UpdateProfile(ctx context.Context, id int64, phone, title string, role model.StaffRole) (int64, error)
	// Мягкое удаление: только активного сотрудника.
	Deactivate(ctx context.Context, id int64) (int64, error)
	// Активные врачи; deptID == nil — по всем отделениям.
	ListActiveDoctors(ctx context.Context, deptID *int64) ([]model.Staff, error)
	// Реестр: сначала работающие, затем по ID.
	List(ctx context.Context, limit, offset int) ([]StaffView, int64, error)
}

type GormStaffRepository struct {
	db *gorm.DB
}

func NewGormStaffRepository(db *gorm.DB) *GormStaffRepository {
	return &GormStaffRepository{db: db}
}

func (r *GormStaffRepository) Create(ctx context.Context, staff *model.Staff) error {
	return conn(ctx, r.db).Create(staff).Error
}

func (r *GormStaffRepository) GetByID(ctx context.Context, id int64) (*model.Staff, error) {
	var s model.Staff
	if err := conn(ctx, r.db).First(&s, "staff_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *GormStaffRepository) UpdateProfile(
	ctx context.Context,
	id int64,
	phone, title string,
	role model.StaffRole,
) (int64, error) {
	update := map[string]any{
		"phone": phone,
		"title": title,
		"role":  role,
	}
	tx := conn(ctx, r.db).
		Model(&model.Staff{}).
		Where("staff_id = ?", id).
		Updates(update)
	return tx.RowsAffected, tx.Error
}

func (r *GormStaffRepository) Deactivate(ctx context.Context, id int64) (int64, error) {
	tx := conn(ctx, r.db).
		Model(&model.Staff{}).
		Where("staff_id = ? AND is_active = ?", id, true).
		Update("is_active", false)
	return tx.RowsAffected, tx.Error
}

func (r *GormStaffRepository) ListActiveDoctors(ctx context.Context, deptID *int64) ([]model.Staff, error) {
	q := conn(ctx, r.db).
		Model(&model.Staff{}).
		Where("role = ? AND is_active = ?", model.StaffRoleDoctor, true)
	if deptID != nil {
		q = q.Where("dept_id = ?", *deptID)
	}

	var doctors []model.Staff
	if err := q.Order("name ASC, staff_id ASC").Find(&doctors).Error; err != nil {
		return nil, err
	}
	return doctors, nil
}

func (r *GormStaffRepository) List(ctx context.Context, limit, offset int) ([]StaffView, int64, error) {
	var total int64
	if err := conn(ctx, r.db).Model(&model.Staff{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := conn(ctx, r.db).
		Table("staff AS s").
		Select("s.staff_id, s.name, s.role, s.dept_id, d.dept_name, s.title, s.phone, s.is_active").
		Joins("LEFT JOIN departments d ON d.dept_id = s.dept_id").
		Order("s.is_active DESC, s.staff_id ASC")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}

	var rows []StaffView
	if err := q.Scan(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// FindOperator реализует calendar.OperatorStore поверх таблицы staff.
func (r *GormStaffRepository) FindOperator(ctx context.Context, staffID int64) (*calendar.Operator, error) {
	s, err := r.GetByID(ctx, staffID)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &calendar.Operator{
		StaffID:  s.ID,
		Role:     calendar.OperatorRole(s.Role),
		IsActive: s.IsActive,
	}, nil
}
