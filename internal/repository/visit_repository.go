package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Leganyst/clinic-desk/internal/model"
)

type VisitRepository interface {
	Create(ctx context.Context, visit *model.Visit) error
	GetByID(ctx context.Context, id int64) (*model.Visit, error)
	// ToPay -> Finished одним условным UPDATE; 0 строк, если приём уже оплачен или не найден.
	Settle(ctx context.Context, id int64, fee float64, method model.PaymentMethod, receipt uuid.UUID, at time.Time) (int64, error)
	// Очередь кассы.
	ListUnpaid(ctx context.Context) ([]UnpaidVisit, error)
	// Поиск по подстроке без учёта регистра: имя, телефон, паспорт, кабинет.
	Search(ctx context.Context, term string) ([]PatientRecord, error)
}

type GormVisitRepository struct {
	db *gorm.DB
}

func NewGormVisitRepository(db *gorm.DB) *GormVisitRepository {
	return &GormVisitRepository{db: db}
}

func (r *GormVisitRepository) Create(ctx context.Context, visit *model.Visit) error {
	return conn(ctx, r.db).Create(visit).Error
}

func (r *GormVisitRepository) GetByID(ctx context.Context, id int64) (*model.Visit, error) {
	var v model.Visit
	if err := conn(ctx, r.db).First(&v, "visit_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *GormVisitRepository) Settle(
	ctx context.Context,
	id int64,
	fee float64,
	method model.PaymentMethod,
	receipt uuid.UUID,
	at time.Time,
) (int64, error) {
	// Пустой способ оплаты пишется как NULL.
	var pm any
	if method != "" {
		pm = method
	}
	update := map[string]any{
		"status":         model.VisitStatusFinished,
		"total_fee":      fee,
		"payment_method": pm,
		"receipt_no":     receipt.String(),
		"finish_time":    at,
	}
	tx := conn(ctx, r.db).
		Model(&model.Visit{}).
		Where("visit_id = ? AND status = ?", id, model.VisitStatusToPay).
		Updates(update)
	return tx.RowsAffected, tx.Error
}

func (r *GormVisitRepository) ListUnpaid(ctx context.Context) ([]UnpaidVisit, error) {
	var rows []UnpaidVisit
	err := conn(ctx, r.db).
		Table("visits AS v").
		Select("v.visit_id, v.patient_name, d.dept_name, v.doctor_id, s.name AS doctor_name, v.room_no, v.visit_time").
		Joins("JOIN departments d ON d.dept_id = v.dept_id").
		Joins("JOIN staff s ON s.staff_id = v.doctor_id").
		Where("v.status = ?", model.VisitStatusToPay).
		Order("v.visit_time ASC, v.visit_id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// likeEscape — символ экранирования для LIKE. Не обратный слэш:
// в MySQL он сам является escape-символом строковых литералов.
const likeEscape = "!"

var likeReplacer = strings.NewReplacer(
	likeEscape, likeEscape+likeEscape,
	"%", likeEscape+"%",
	"_", likeEscape+"_",
)

// containsPattern строит LIKE-шаблон "%term%" с экранированными спецсимволами.
func containsPattern(term string) string {
	return "%" + likeReplacer.Replace(strings.ToLower(term)) + "%"
}

func (r *GormVisitRepository) Search(ctx context.Context, term string) ([]PatientRecord, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []PatientRecord{}, nil
	}
	p := containsPattern(term)

	rows := []PatientRecord{}
	err := conn(ctx, r.db).
		Table("visits AS v").
		Select(`v.visit_id, v.patient_name, v.gender, v.phone, v.id_card,
			d.dept_name, s.name AS doctor_name, v.room_no, v.visit_time, v.status, v.total_fee`).
		Joins("LEFT JOIN departments d ON d.dept_id = v.dept_id").
		Joins("LEFT JOIN staff s ON s.staff_id = v.doctor_id").
		Where(`LOWER(v.patient_name) LIKE ? ESCAPE '!'
			OR LOWER(v.phone) LIKE ? ESCAPE '!'
			OR LOWER(v.id_card) LIKE ? ESCAPE '!'
			OR LOWER(v.room_no) LIKE ? ESCAPE '!'`, p, p, p, p).
		Order("v.visit_time DESC, v.visit_id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
