package repository

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/Leganyst/clinic-desk/internal/calendar"
	"github.com/Leganyst/clinic-desk/internal/model"
)

type ReportRepository interface {
	// Выручка по завершённым приёмам с finish_time в [from, to).
	// loc — пояс клиники, в нём определяется календарный день для разреза по датам.
	Revenue(ctx context.Context, dim model.ReportDimension, from, to time.Time, loc *time.Location) ([]RevenueRow, error)
}

type GormReportRepository struct {
	db *gorm.DB
}

func NewGormReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

const (
	revenueByDepartmentSQL = `
		SELECT d.dept_id AS key_id, d.dept_name AS label,
		       COUNT(v.visit_id) AS visits, COALESCE(SUM(v.total_fee), 0) AS revenue
		FROM visits v
		JOIN departments d ON d.dept_id = v.dept_id
		WHERE v.status = ? AND v.finish_time >= ? AND v.finish_time < ?
		GROUP BY d.dept_id, d.dept_name
		ORDER BY revenue DESC, d.dept_id ASC`

	revenueByDoctorSQL = `
		SELECT s.staff_id AS key_id, s.name AS label,
		       COUNT(v.visit_id) AS visits, COALESCE(SUM(v.total_fee), 0) AS revenue
		FROM visits v
		JOIN staff s ON s.staff_id = v.doctor_id
		WHERE v.status = ? AND v.finish_time >= ? AND v.finish_time < ?
		GROUP BY s.staff_id, s.name
		ORDER BY revenue DESC, s.staff_id ASC`

	// Календарный день зависит от пояса клиники, а диалекты считают DATE()
	// каждый по-своему, поэтому по датам группируем после выборки.
	finishedVisitsSQL = `
		SELECT v.finish_time, v.total_fee
		FROM visits v
		WHERE v.status = ? AND v.finish_time >= ? AND v.finish_time < ?`
)

type groupedRevenue struct {
	KeyID   int64
	Label   string
	Visits  int64
	Revenue float64
}

type finishedVisit struct {
	FinishTime time.Time
	TotalFee   float64
}

func (r *GormReportRepository) Revenue(
	ctx context.Context,
	dim model.ReportDimension,
	from, to time.Time,
	loc *time.Location,
) ([]RevenueRow, error) {
	switch dim {
	case model.ReportByDepartment:
		return r.grouped(ctx, revenueByDepartmentSQL, from, to)
	case model.ReportByDoctor:
		return r.grouped(ctx, revenueByDoctorSQL, from, to)
	case model.ReportByDate:
		return r.byDate(ctx, from, to, loc)
	default:
		return nil, fmt.Errorf("unknown report dimension %q", dim)
	}
}

func (r *GormReportRepository) grouped(ctx context.Context, query string, from, to time.Time) ([]RevenueRow, error) {
	var groups []groupedRevenue
	err := conn(ctx, r.db).
		Raw(query, model.VisitStatusFinished, from, to).
		Scan(&groups).Error
	if err != nil {
		return nil, err
	}

	rows := make([]RevenueRow, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, RevenueRow{
			Key:     strconv.FormatInt(g.KeyID, 10),
			Label:   g.Label,
			Visits:  g.Visits,
			Revenue: g.Revenue,
		})
	}
	return rows, nil
}

func (r *GormReportRepository) byDate(ctx context.Context, from, to time.Time, loc *time.Location) ([]RevenueRow, error) {
	if loc == nil {
		loc = time.UTC
	}

	var visits []finishedVisit
	err := conn(ctx, r.db).
		Raw(finishedVisitsSQL, model.VisitStatusFinished, from, to).
		Scan(&visits).Error
	if err != nil {
		return nil, err
	}

	byDay := make(map[string]*RevenueRow)
	for _, v := range visits {
		day := v.FinishTime.In(loc).Format(calendar.DateLayout)
		row, ok := byDay[day]
		if !ok {
			row = &RevenueRow{Key: day, Label: day}
			byDay[day] = row
		}
		row.Visits++
		row.Revenue += v.TotalFee
	}

	rows := make([]RevenueRow, 0, len(byDay))
	for _, row := range byDay {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Key < rows[j].Key })
	return rows, nil
}
