package model

import (
	"fmt"
	"time"
)

// Doctor represents a doctor entity
// @Description Doctor information
type Doctor struct {
	DoctorID        uint           `json:"doctor_id" gorm:"column:doctor_id;primaryKey;autoIncrement" example:"1"`
	FirstName       string         `json:"first_name" gorm:"column:first_name;type:varchar(100);not null" example:"Gregory"`
	LastName        string         `json:"last_name" gorm:"column:last_name;type:varchar(100);not null;index" example:"House"`
	Email           string         `json:"email" gorm:"column:email;type:varchar(191);not null;uniqueIndex" example:"house@example.com"`
	Phone           string         `json:"phone" gorm:"column:phone;type:varchar(20);not null" example:"081234567890"`
	Specialization  Specialization `json:"specialization" gorm:"column:specialization;type:varchar(100);not null;index" example:"Neurology"`
	LicenseNumber   string         `json:"license_number" gorm:"column:license_number;type:varchar(50);not null;uniqueIndex" example:"LIC-0042"`
	ExperienceYears int            `json:"experience_years" gorm:"column:experience_years;not null" example:"12"`
	Bio             string         `json:"bio" gorm:"column:bio;type:text" example:"Diagnostic medicine"`
	IsAvailable     bool           `json:"is_available" gorm:"column:is_available;not null" example:"true"`
	CreatedAt       time.Time      `json:"created_at" gorm:"column:created_at"`
}

// DoctorOrder is the default listing order.
const DoctorOrder = "doctors.last_name ASC"

func (d Doctor) String() string {
	return fmt.Sprintf("Dr. %s %s", d.FirstName, d.LastName)
}
