package model

import "fmt"

// ReportDimension — разрез отчёта по выручке. Каждому значению
// соответствует ровно один фиксированный параметризованный запрос.
type ReportDimension string

const (
	ReportByDepartment ReportDimension = "department"
	ReportByDoctor     ReportDimension = "doctor"
	ReportByDate       ReportDimension = "date"
)

func (d ReportDimension) Valid() bool {
	switch d {
	case ReportByDepartment, ReportByDoctor, ReportByDate:
		return true
	}
	return false
}

// ParseReportDimension accepts the wire names; empty means by department.
func ParseReportDimension(s string) (ReportDimension, error) {
	if s == "" {
		return ReportByDepartment, nil
	}
	d := ReportDimension(s)
	if !d.Valid() {
		return "", fmt.Errorf("unknown report dimension %q", s)
	}
	return d, nil
}
