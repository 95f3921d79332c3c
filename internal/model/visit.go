package model

import (
	"time"

	"github.com/google/uuid"
)

type VisitStatus string

const (
	VisitStatusToPay    VisitStatus = "ToPay"
	VisitStatusFinished VisitStatus = "Finished"
)

type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
)

func (g Gender) Valid() bool { return g == GenderMale || g == GenderFemale }

type PaymentMethod string

const (
	PaymentMethodInsurance PaymentMethod = "Insurance"
	PaymentMethodMobile    PaymentMethod = "Mobile"
	PaymentMethodCash      PaymentMethod = "Cash"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodInsurance, PaymentMethodMobile, PaymentMethodCash:
		return true
	}
	return false
}

// visits — оплачиваемый приём. ToPay -> Finished ровно один раз:
// сумма, способ оплаты и время завершения пишутся вместе.
type Visit struct {
	ID int64 `gorm:"column:visit_id;primaryKey;autoIncrement" json:"visitId"`

	// nil для записи "с улицы" (on-site). Один приём на одну заявку.
	ApptID *int64 `gorm:"column:appt_id;uniqueIndex" json:"apptId,omitempty"`

	PatientName string `gorm:"type:varchar(64);not null" json:"patientName"`
	Phone       string `gorm:"type:varchar(32)" json:"phone"`
	IDCard      string `gorm:"column:id_card;type:varchar(18);index" json:"idCard"`
	Gender      Gender `gorm:"type:varchar(1)" json:"gender"`

	DeptID   int64  `gorm:"not null;index" json:"deptId"`
	DoctorID int64  `gorm:"not null;index" json:"doctorId"`
	RoomNo   string `gorm:"type:varchar(16);not null" json:"roomNo"`

	Status   VisitStatus `gorm:"type:varchar(16);not null;default:'ToPay';index" json:"status"`
	TotalFee float64     `gorm:"type:decimal(10,2);not null;default:0" json:"totalFee"`
	// nil, если способ оплаты не указан.
	PaymentMethod *PaymentMethod `gorm:"type:varchar(16)" json:"paymentMethod,omitempty"`
	ReceiptNo     *uuid.UUID     `gorm:"type:varchar(36)" json:"receiptNo,omitempty"`
	FinishTime    *time.Time     `gorm:"index" json:"finishTime,omitempty"`
	// Время регистрации по часам клиники.
	VisitTime time.Time `gorm:"not null;index" json:"visitTime"`

	Appointment *Appointment `gorm:"foreignKey:ApptID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
	Department  *Department  `gorm:"foreignKey:DeptID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Doctor      *Staff       `gorm:"foreignKey:DoctorID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Room        *Room        `gorm:"foreignKey:RoomNo;references:RoomNo;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

func (Visit) TableName() string { return "visits" }
