package model

import (
	"time"

	"gorm.io/datatypes"
)

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "Pending"
	AppointmentStatusCompleted AppointmentStatus = "Completed"
)

// appointments — заявки пациентов. Pending -> Completed ровно один раз,
// в той же транзакции, что создаёт Visit.
type Appointment struct {
	ID          int64  `gorm:"column:appt_id;primaryKey;autoIncrement" json:"apptId"`
	PatientName string `gorm:"type:varchar(64);not null" json:"patientName"`
	Phone       string `gorm:"type:varchar(32);not null" json:"phone"`
	IDCard      string `gorm:"column:id_card;type:varchar(18)" json:"idCard"`
	DeptID      int64  `gorm:"not null;index" json:"deptId"`

	// Чистая дата без времени и желаемое время прихода.
	ApptDate datatypes.Date `gorm:"type:date;not null;index" json:"apptDate"`
	ETA      datatypes.Time `gorm:"column:eta;type:time" json:"eta"`

	Status    AppointmentStatus `gorm:"type:varchar(16);not null;default:'Pending';index" json:"status"`
	CreatedAt time.Time         `gorm:"not null" json:"createdAt"`

	Department *Department `gorm:"foreignKey:DeptID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

func (Appointment) TableName() string { return "appointments" }
