package model

import (
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// Patient represents a patient entity
// @Description Patient information
type Patient struct {
	PatientID        uint            `json:"patient_id" gorm:"column:patient_id;primaryKey;autoIncrement" example:"1"`
	FirstName        string          `json:"first_name" gorm:"column:first_name;type:varchar(100);not null" example:"Anna"`
	LastName         string          `json:"last_name" gorm:"column:last_name;type:varchar(100);not null;index" example:"Smith"`
	Email            string          `json:"email" gorm:"column:email;type:varchar(191);not null;uniqueIndex" example:"anna@example.com"`
	Phone            string          `json:"phone" gorm:"column:phone;type:varchar(20);not null" example:"081234567890"`
	DateOfBirth      *datatypes.Date `json:"date_of_birth" gorm:"column:date_of_birth" swaggertype:"string" example:"1990-04-12"`
	Gender           string          `json:"gender" gorm:"column:gender;type:varchar(1)" example:"F"`
	Address          string          `json:"address" gorm:"column:address;type:text" example:"12 Elm Street"`
	City             string          `json:"city" gorm:"column:city;type:varchar(100);index" example:"Springfield"`
	BloodGroup       string          `json:"blood_group" gorm:"column:blood_group;type:varchar(3)" example:"O+"`
	MedicalHistory   string          `json:"medical_history" gorm:"column:medical_history;type:text" example:"Asthma"`
	EmergencyContact string          `json:"emergency_contact" gorm:"column:emergency_contact;type:varchar(100)" example:"John Smith 081234567891"`
	CreatedAt        time.Time       `json:"created_at" gorm:"column:created_at"`
}

// PatientOrder is the default listing order.
const PatientOrder = "patients.last_name ASC, patients.first_name ASC"

func (p Patient) String() string {
	return fmt.Sprintf("%s %s", p.FirstName, p.LastName)
}
