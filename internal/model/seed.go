package model

import (
	"fmt"

	"gorm.io/gorm"
)

// SeedData — демонстрационный справочник для пустой базы.
type SeedData struct {
	Departments []Department
	Rooms       []Room
	Staff       []Staff
}

// DefaultSeed returns the reference set used by `clinic seed`.
// Room and staff DeptID values index into Departments (1-based).
func DefaultSeed() SeedData {
	return SeedData{
		Departments: []Department{
			{Name: "Internal Medicine"},
			{Name: "Surgery"},
			{Name: "Pediatrics"},
			{Name: "Dermatology"},
		},
		Rooms: []Room{
			{RoomNo: "101", DeptID: 1, Status: RoomStatusAvailable},
			{RoomNo: "102", DeptID: 1, Status: RoomStatusAvailable},
			{RoomNo: "201", DeptID: 2, Status: RoomStatusAvailable},
			{RoomNo: "301", DeptID: 3, Status: RoomStatusAvailable},
			{RoomNo: "401", DeptID: 4, Status: RoomStatusMaintenance},
		},
		Staff: []Staff{
			{Name: "Zhang Min", Role: StaffRoleDoctor, DeptID: 1, Title: "Attending Physician", Phone: "13900000001", IsActive: true},
			{Name: "Wang Fang", Role: StaffRoleDoctor, DeptID: 1, Title: "Resident", Phone: "13900000002", IsActive: true},
			{Name: "Liu Yang", Role: StaffRoleDoctor, DeptID: 2, Title: "Chief Surgeon", Phone: "13900000003", IsActive: true},
			{Name: "Chen Jing", Role: StaffRoleNurse, DeptID: 3, Title: "Head Nurse", Phone: "13900000004", IsActive: true},
			{Name: "Zhao Lei", Role: StaffRoleCashier, DeptID: 1, Title: "", Phone: "13900000005", IsActive: true},
			{Name: "Sun Hui", Role: StaffRoleAdmin, DeptID: 1, Title: "Administrator", Phone: "13900000006", IsActive: true},
		},
	}
}

// Seed идемпотентно заливает справочник: существующие отделения (по имени),
// кабинеты (по номеру) и сотрудники (по имени+телефону) не дублируются.
func Seed(db *gorm.DB, data SeedData) error {
	return db.Transaction(func(tx *gorm.DB) error {
		ids := make(map[int64]int64, len(data.Departments))
		for i, d := range data.Departments {
			dept := Department{Name: d.Name}
			if err := tx.Where("dept_name = ?", d.Name).FirstOrCreate(&dept).Error; err != nil {
				return fmt.Errorf("seed department %q: %w", d.Name, err)
			}
			ids[int64(i+1)] = dept.ID
		}

		resolve := func(ref int64) (int64, error) {
			id, ok := ids[ref]
			if !ok {
				return 0, fmt.Errorf("unknown department reference %d", ref)
			}
			return id, nil
		}

		for _, r := range data.Rooms {
			deptID, err := resolve(r.DeptID)
			if err != nil {
				return fmt.Errorf("seed room %s: %w", r.RoomNo, err)
			}
			room := Room{RoomNo: r.RoomNo, DeptID: deptID, Status: r.Status}
			if err := tx.Where("room_no = ?", r.RoomNo).FirstOrCreate(&room).Error; err != nil {
				return fmt.Errorf("seed room %s: %w", r.RoomNo, err)
			}
		}

		for _, s := range data.Staff {
			deptID, err := resolve(s.DeptID)
			if err != nil {
				return fmt.Errorf("seed staff %q: %w", s.Name, err)
			}
			member := s
			member.DeptID = deptID
			if err := tx.Where("name = ? AND phone = ?", s.Name, s.Phone).FirstOrCreate(&member).Error; err != nil {
				return fmt.Errorf("seed staff %q: %w", s.Name, err)
			}
		}
		return nil
	})
}
