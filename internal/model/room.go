package model

type RoomStatus string

const (
	RoomStatusAvailable   RoomStatus = "Available"
	RoomStatusOccupied    RoomStatus = "Occupied"
	RoomStatusMaintenance RoomStatus = "Maintenance"
)

// rooms
type Room struct {
	RoomNo string     `gorm:"column:room_no;type:varchar(16);primaryKey" json:"roomNo"`
	DeptID int64      `gorm:"not null;index" json:"deptId"`
	Status RoomStatus `gorm:"type:varchar(16);not null;default:'Available';index" json:"status"`

	Department *Department `gorm:"foreignKey:DeptID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

func (Room) TableName() string { return "rooms" }
