package model

// Должность сотрудника.
type StaffRole string

const (
	StaffRoleDoctor  StaffRole = "Doctor"
	StaffRoleNurse   StaffRole = "Nurse"
	StaffRoleAdmin   StaffRole = "Admin"
	StaffRoleCashier StaffRole = "Cashier"
)

// Valid reports whether r is one of the known roles.
func (r StaffRole) Valid() bool {
	switch r {
	case StaffRoleDoctor, StaffRoleNurse, StaffRoleAdmin, StaffRoleCashier:
		return true
	}
	return false
}

// staff — сотрудники клиники. Никогда не удаляются физически:
// увольнение только сбрасывает IsActive.
type Staff struct {
	ID       int64     `gorm:"column:staff_id;primaryKey;autoIncrement" json:"staffId"`
	Name     string    `gorm:"type:varchar(64);not null" json:"name"`
	Role     StaffRole `gorm:"type:varchar(16);not null;index" json:"role"`
	DeptID   int64     `gorm:"not null;index" json:"deptId"`
	Title    string    `gorm:"type:varchar(64)" json:"title"`
	Phone    string    `gorm:"type:varchar(32)" json:"phone"`
	IsActive bool      `gorm:"not null;default:true;index" json:"isActive"`

	Department *Department `gorm:"foreignKey:DeptID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

func (Staff) TableName() string { return "staff" }
