package repository

import (
	"time"

	"gorm.io/datatypes"

	"github.com/Leganyst/clinic-desk/internal/model"
)

// Проекции для списков и отчётов: строки из JOIN-запросов.

// StaffView — строка кадрового реестра.
type StaffView struct {
	StaffID  int64           `json:"staffId"`
	Name     string          `json:"name"`
	Role     model.StaffRole `json:"role"`
	DeptID   int64           `json:"deptId"`
	DeptName string          `json:"deptName"`
	Title    string          `json:"title"`
	Phone    string          `json:"phone"`
	IsActive bool            `json:"isActive"`
}

// PendingAppointment — очередь на верификацию у стойки регистрации.
type PendingAppointment struct {
	ApptID      int64          `json:"apptId"`
	PatientName string         `json:"patientName"`
	Phone       string         `json:"phone"`
	IDCard      string         `json:"idCard"`
	DeptID      int64          `json:"deptId"`
	DeptName    string         `json:"deptName"`
	ApptDate    datatypes.Date `json:"apptDate"`
	ETA         datatypes.Time `json:"eta"`
	// Смена по времени прихода, вычисляется после выборки.
	Shift model.ShiftSlot `gorm:"-" json:"shift"`
}

// UnpaidVisit — очередь кассы.
type UnpaidVisit struct {
	VisitID     int64     `json:"visitId"`
	PatientName string    `json:"patientName"`
	DeptName    string    `json:"deptName"`
	DoctorID    int64     `json:"doctorId"`
	DoctorName  string    `json:"doctorName"`
	RoomNo      string    `json:"roomNo"`
	VisitTime   time.Time `json:"visitTime"`
}

// PatientRecord — результат поиска пациентов по приёмам.
type PatientRecord struct {
	VisitID     int64             `json:"visitId"`
	PatientName string            `json:"patientName"`
	Gender      model.Gender      `json:"gender"`
	Phone       string            `json:"phone"`
	IDCard      string            `json:"idCard"`
	DeptName    *string           `json:"deptName"`
	DoctorName  *string           `json:"doctorName"`
	RoomNo      string            `json:"roomNo"`
	VisitTime   time.Time         `json:"visitTime"`
	Status      model.VisitStatus `json:"status"`
	TotalFee    float64           `json:"totalFee"`
}

// ScheduleView — строка графика дежурств.
type ScheduleView struct {
	DoctorID   int64           `json:"doctorId"`
	DoctorName string          `json:"doctorName"`
	DeptName   string          `json:"deptName"`
	ShiftDate  datatypes.Date  `json:"shiftDate"`
	ShiftTime  model.ShiftSlot `json:"shiftTime"`
	RoomNo     string          `json:"roomNo"`
}

// RevenueRow — одна группа отчёта по выручке.
type RevenueRow struct {
	Key     string  `json:"key"`
	Label   string  `json:"label"`
	Visits  int64   `json:"visits"`
	Revenue float64 `json:"revenue"`
}
