package model

// departments — static reference data.
type Department struct {
	ID   int64  `gorm:"column:dept_id;primaryKey;autoIncrement" json:"deptId"`
	Name string `gorm:"column:dept_name;type:varchar(64);not null;uniqueIndex" json:"deptName"`
}

func (Department) TableName() string { return "departments" }
