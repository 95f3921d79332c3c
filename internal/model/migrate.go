package model

import "gorm.io/gorm"

// AutoMigrate выполняет миграцию всех сущностей клиники.
// Порядок важен: справочники раньше таблиц, которые на них ссылаются.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Department{},
		&Staff{},
		&Room{},
		&Appointment{},
		&Visit{},
		&Schedule{},
	)
}
