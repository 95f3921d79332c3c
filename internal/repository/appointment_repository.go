package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Leganyst/clinic-desk/internal/calendar"
	"github.com/Leganyst/clinic-desk/internal/model"
)

type AppointmentRepository interface {
	// Создать новую заявку.
	Create(ctx context.Context, appt *model.Appointment) error
	// Получить заявку по ID.
	GetByID(ctx context.Context, id int64) (*model.Appointment, error)
	// То же, но с блокировкой строки до конца транзакции (где диалект умеет).
	GetForUpdate(ctx context.Context, id int64) (*model.Appointment, error)
	// Pending -> Completed. Условный UPDATE: 0 строк, если заявка уже не Pending.
	MarkCompleted(ctx context.Context, id int64) (int64, error)
	// Очередь Pending-заявок с названием отделения.
	ListPending(ctx context.Context) ([]PendingAppointment, error)
}

// Реализация на GORM.
type GormAppointmentRepository struct {
	db *gorm.DB
}

func NewGormAppointmentRepository(db *gorm.DB) *GormAppointmentRepository {
	return &GormAppointmentRepository{db: db}
}

func (r *GormAppointmentRepository) Create(ctx context.Context, appt *model.Appointment) error {
	return conn(ctx, r.db).Create(appt).Error
}

func (r *GormAppointmentRepository) GetByID(ctx context.Context, id int64) (*model.Appointment, error) {
	var a model.Appointment
	if err := conn(ctx, r.db).First(&a, "appt_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *GormAppointmentRepository) GetForUpdate(ctx context.Context, id int64) (*model.Appointment, error) {
	var a model.Appointment
	err := conn(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&a, "appt_id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *GormAppointmentRepository) MarkCompleted(ctx context.Context, id int64) (int64, error) {
	tx := conn(ctx, r.db).
		Model(&model.Appointment{}).
		Where("appt_id = ? AND status = ?", id, model.AppointmentStatusPending).
		Update("status", model.AppointmentStatusCompleted)
	return tx.RowsAffected, tx.Error
}

func (r *GormAppointmentRepository) ListPending(ctx context.Context) ([]PendingAppointment, error) {
	var rows []PendingAppointment
	err := conn(ctx, r.db).
		Table("appointments AS a").
		Select("a.appt_id, a.patient_name, a.phone, a.id_card, a.dept_id, d.dept_name, a.appt_date, a.eta").
		Joins("JOIN departments d ON d.dept_id = a.dept_id").
		Where("a.status = ?", model.AppointmentStatusPending).
		Order("a.appt_date ASC, a.appt_id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].Shift = calendar.ShiftOf(time.Duration(rows[i].ETA))
	}
	return rows, nil
}
