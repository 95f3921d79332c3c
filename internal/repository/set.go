package repository

import "gorm.io/gorm"

// Set — все репозитории поверх одного соединения.
type Set struct {
	Tx           *GormTransactor
	Departments  *GormDepartmentRepository
	Rooms        *GormRoomRepository
	Staff        *GormStaffRepository
	Appointments *GormAppointmentRepository
	Visits       *GormVisitRepository
	Schedules    *GormScheduleRepository
	Reports      *GormReportRepository
}

func NewSet(db *gorm.DB) *Set {
	return &Set{
		Tx:           NewGormTransactor(db),
		Departments:  NewGormDepartmentRepository(db),
		Rooms:        NewGormRoomRepository(db),
		Staff:        NewGormStaffRepository(db),
		Appointments: NewGormAppointmentRepository(db),
		Visits:       NewGormVisitRepository(db),
		Schedules:    NewGormScheduleRepository(db),
		Reports:      NewGormReportRepository(db),
	}
}
