package model

import (
	"time"

	"gorm.io/datatypes"
)

// Смена: половина рабочего дня.
type ShiftSlot string

const (
	ShiftMorning   ShiftSlot = "Morning"
	ShiftAfternoon ShiftSlot = "Afternoon"
)

func (s ShiftSlot) Valid() bool { return s == ShiftMorning || s == ShiftAfternoon }

// schedules — врач в кабинете на дату/смену.
// Ключ (room_no, shift_date, shift_time) уникален: один кабинет — один врач на смену.
// Первичный ключ (doctor_id, shift_date, shift_time): врач не может быть в двух кабинетах сразу.
type Schedule struct {
	DoctorID  int64          `gorm:"primaryKey;autoIncrement:false" json:"doctorId"`
	ShiftDate datatypes.Date `gorm:"type:date;primaryKey;uniqueIndex:ux_schedules_room_slot,priority:2" json:"shiftDate"`
	ShiftTime ShiftSlot      `gorm:"type:varchar(16);primaryKey;uniqueIndex:ux_schedules_room_slot,priority:3" json:"shiftTime"`
	RoomNo    string         `gorm:"type:varchar(16);not null;uniqueIndex:ux_schedules_room_slot,priority:1" json:"roomNo"`

	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`

	Doctor *Staff `gorm:"foreignKey:DoctorID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Room   *Room  `gorm:"foreignKey:RoomNo;references:RoomNo;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

func (Schedule) TableName() string { return "schedules" }
