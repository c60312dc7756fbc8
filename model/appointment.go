package model

import (
	"fmt"
	"time"
)

// Appointment links a patient to a doctor at a point in time.
// PatientID and DoctorID are write-only; responses carry the nested records.
// @Description Appointment information
type Appointment struct {
	AppointmentID   uint              `json:"appointment_id" gorm:"column:appointment_id;primaryKey;autoIncrement" example:"1"`
	PatientID       uint              `json:"-" gorm:"column:patient_id;not null;index"`
	Patient         Patient           `json:"patient" gorm:"foreignKey:PatientID;references:PatientID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	DoctorID        uint              `json:"-" gorm:"column:doctor_id;not null;index"`
	Doctor          Doctor            `json:"doctor" gorm:"foreignKey:DoctorID;references:DoctorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	AppointmentDate time.Time         `json:"appointment_date" gorm:"column:appointment_date;not null;index" example:"2026-11-02T09:30:00Z"`
	Reason          string            `json:"reason" gorm:"column:reason;type:text;not null" example:"Follow-up consultation"`
	Status          AppointmentStatus `json:"status" gorm:"column:status;type:varchar(20);not null;default:Scheduled;index" example:"Scheduled"`
	Notes           string            `json:"notes" gorm:"column:notes;type:text" example:"Bring previous lab results"`
	CreatedAt       time.Time         `json:"created_at" gorm:"column:created_at"`
}

// AppointmentOrder is the default listing order, newest date first.
const AppointmentOrder = "appointments.appointment_date DESC"

// UpcomingOrder is used by the upcoming listing, soonest first.
const UpcomingOrder = "appointments.appointment_date ASC"

func (a Appointment) String() string {
	return fmt.Sprintf("%s - %s - %s", a.Patient, a.Doctor, a.AppointmentDate.Format(time.RFC3339))
}
