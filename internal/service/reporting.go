package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Leganyst/clinic-desk/internal/calendar"
	"github.com/Leganyst/clinic-desk/internal/model"
	"github.com/Leganyst/clinic-desk/internal/repository"
)

// ReportRequest — период (включительно, "YYYY-MM-DD") и разрез отчёта.
// Пустой период: с начала текущего месяца по сегодня.
type ReportRequest struct {
	From string                `form:"from" json:"from"`
	To   string                `form:"to" json:"to"`
	By   model.ReportDimension `form:"by" json:"by"`
}

type Report struct {
	Dimension    model.ReportDimension   `json:"dimension"`
	From         string                  `json:"from"`
	To           string                  `json:"to"`
	Rows         []repository.RevenueRow `json:"rows"`
	TotalVisits  int64                   `json:"totalVisits"`
	TotalRevenue float64                 `json:"totalRevenue"`
}

// Revenue агрегирует оплаченные приёмы периода по выбранному разрезу.
// Уволенные врачи остаются в отчёте: история не переписывается.
func (c *Clinic) Revenue(ctx context.Context, req ReportRequest) (*Report, error) {
	dim, err := model.ParseReportDimension(string(req.By))
	if err != nil {
		return nil, invalid("by", "must be department, doctor or date")
	}

	today := c.today()
	rng, err := c.dateRange(req.From, req.To, calendar.MonthToDate(today).Start, today)
	if err != nil {
		return nil, err
	}

	from, to := rng.BoundsIn(c.loc)
	rows, err := c.Reports.Revenue(ctx, dim, from, to, c.loc)
	if err != nil {
		return nil, fmt.Errorf("revenue report: %w", err)
	}
	if rows == nil {
		rows = []repository.RevenueRow{}
	}

	rep := &Report{
		Dimension: dim,
		From:      rng.Start.Format(calendar.DateLayout),
		To:        rng.End.Format(calendar.DateLayout),
		Rows:      rows,
	}
	var cents int64
	for _, r := range rows {
		rep.TotalVisits += r.Visits
		cents += toCents(r.Revenue)
	}
	rep.TotalRevenue = float64(cents) / 100
	return rep, nil
}

// dateRange разбирает границы периода; пустые заменяются значениями по умолчанию.
// Перепутанные границы меняются местами.
func (c *Clinic) dateRange(from, to string, defFrom, defTo time.Time) (calendar.DateRange, error) {
	start, err := parseOptionalDate("from", from, defFrom)
	if err != nil {
		return calendar.DateRange{}, err
	}
	end, err := parseOptionalDate("to", to, defTo)
	if err != nil {
		return calendar.DateRange{}, err
	}

	rng, err := calendar.NormalizeDateRange(start, end, c.maxReportDays)
	if err != nil {
		if errors.Is(err, calendar.ErrDateRangeTooLong) {
			return calendar.DateRange{}, invalid("to", fmt.Sprintf("period is longer than %d days", c.maxReportDays))
		}
		return calendar.DateRange{}, invalid("from", err.Error())
	}
	return rng, nil
}

func parseOptionalDate(field, s string, def time.Time) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return calendar.DateOf(def), nil
	}
	d, err := calendar.ParseDate(s)
	if err != nil {
		return time.Time{}, invalid(field, "must be YYYY-MM-DD")
	}
	return d, nil
}

func toCents(v float64) int64 {
	if v < 0 {
		return int64(v*100 - 0.5)
	}
	return int64(v*100 + 0.5)
}
