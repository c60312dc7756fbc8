package model

import (
	"fmt"
	"time"
)

// Staff represents a non-physician hospital employee
// @Description Staff member information
type Staff struct {
	StaffID    uint      `json:"staff_id" gorm:"column:staff_id;primaryKey;autoIncrement" example:"1"`
	FirstName  string    `json:"first_name" gorm:"column:first_name;type:varchar(100);not null" example:"Carla"`
	LastName   string    `json:"last_name" gorm:"column:last_name;type:varchar(100);not null;index" example:"Espinosa"`
	Email      string    `json:"email" gorm:"column:email;type:varchar(191);not null;uniqueIndex" example:"carla@example.com"`
	Phone      string    `json:"phone" gorm:"column:phone;type:varchar(20);not null" example:"081234567890"`
	Role       StaffRole `json:"role" gorm:"column:role;type:varchar(50);not null;index" example:"Nurse"`
	Department string    `json:"department" gorm:"column:department;type:varchar(100);not null;index" example:"Surgery"`
	IsActive   bool      `json:"is_active" gorm:"column:is_active;not null" example:"true"`
	CreatedAt  time.Time `json:"created_at" gorm:"column:created_at"`
}

// TableName keeps the table singular, staff has no plural.
func (Staff) TableName() string {
	return "staff"
}

// StaffOrder is the default listing order.
const StaffOrder = "staff.last_name ASC"

func (s Staff) String() string {
	return fmt.Sprintf("%s %s - %s", s.FirstName, s.LastName, s.Role)
}
