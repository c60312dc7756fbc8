package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/clause"
)

func TestAppointmentModel_PreloadRelations(t *testing.T) {
	db := setupTestDB(t, "appointment_preload", All...)

	patient := Patient{FirstName: "Anna", LastName: "Smith", Email: "anna@test.com", Phone: "1"}
	doctor := Doctor{FirstName: "Gregory", LastName: "House", Email: "house@test.com", Phone: "2", Specialization: SpecializationGeneral, LicenseNumber: "L-1"}
	require.NoError(t, db.Create(&patient).Error)
	require.NoError(t, db.Create(&doctor).Error)

	appt := Appointment{
		PatientID:       patient.PatientID,
		DoctorID:        doctor.DoctorID,
		AppointmentDate: time.Date(2030, 1, 2, 9, 30, 0, 0, time.UTC),
		Reason:          "Checkup",
		Status:          StatusScheduled,
	}
	require.NoError(t, db.Omit(clause.Associations).Create(&appt).Error)

	var found Appointment
	require.NoError(t, db.Preload("Patient").Preload("Doctor").First(&found, appt.AppointmentID).Error)
	assert.Equal(t, "Anna", found.Patient.FirstName)
	assert.Equal(t, "House", found.Doctor.LastName)
	assert.Equal(t, StatusScheduled, found.Status)
	assert.Equal(t, "Anna Smith - Dr. Gregory House - 2030-01-02T09:30:00Z", found.String())
}

func TestAppointmentModel_DefaultOrder(t *testing.T) {
	db := setupTestDB(t, "appointment_order", All...)

	patient := Patient{FirstName: "Anna", LastName: "Smith", Email: "anna@test.com", Phone: "1"}
	doctor := Doctor{FirstName: "Gregory", LastName: "House", Email: "house@test.com", Phone: "2", Specialization: SpecializationGeneral, LicenseNumber: "L-1"}
	require.NoError(t, db.Create(&patient).Error)
	require.NoError(t, db.Create(&doctor).Error)

	base := time.Date(2030, 1, 1, 9, 0, 0, 0, time.UTC)
	for _, offset := range []int{1, 3, 2} {
		require.NoError(t, db.Omit(clause.Associations).Create(&Appointment{
			PatientID: patient.PatientID, DoctorID: doctor.DoctorID,
			AppointmentDate: base.AddDate(0, 0, offset), Reason: "r", Status: StatusScheduled,
		}).Error)
	}

	var appts []Appointment
	require.NoError(t, db.Order(AppointmentOrder).Find(&appts).Error)
	require.Len(t, appts, 3)
	assert.True(t, appts[0].AppointmentDate.After(appts[1].AppointmentDate))
	assert.True(t, appts[1].AppointmentDate.After(appts[2].AppointmentDate))
}

func TestChoices(t *testing.T) {
	assert.Len(t, Specializations, 8)
	assert.Len(t, StaffRoles, 4)
	assert.Len(t, AppointmentStatuses, 4)

	assert.True(t, IsValidSpecialization("Cardiology"))
	assert.False(t, IsValidSpecialization("Astrology"))
	assert.True(t, IsValidStaffRole("Lab Technician"))
	assert.False(t, IsValidStaffRole("Janitor"))
	assert.True(t, IsValidAppointmentStatus("No-Show"))
	assert.False(t, IsValidAppointmentStatus("Pending"))
	assert.True(t, IsValidGender("O"))
	assert.False(t, IsValidGender("X"))
	assert.True(t, IsValidBloodGroup("AB-"))
	assert.False(t, IsValidBloodGroup("C+"))

	assert.Equal(t, "General Practice", SpecializationGeneral.Label())
	assert.Equal(t, "Administrator", RoleAdmin.Label())
	assert.Equal(t, "Nurse", RoleNurse.Label())
}
