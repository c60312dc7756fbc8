package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestDoctorModel_Create(t *testing.T) {
	db := setupTestDB(t, "doctor_create", &Doctor{})

	doctor := Doctor{
		FirstName:       "Gregory",
		LastName:        "House",
		Email:           "house@test.com",
		Phone:           "555",
		Specialization:  SpecializationNeurology,
		LicenseNumber:   "LIC-1",
		ExperienceYears: 20,
		IsAvailable:     false,
	}
	require.NoError(t, db.Create(&doctor).Error)

	var found Doctor
	require.NoError(t, db.First(&found, doctor.DoctorID).Error)
	assert.Equal(t, SpecializationNeurology, found.Specialization)
	assert.False(t, found.IsAvailable)
}

func TestDoctorModel_UniqueLicense(t *testing.T) {
	db := setupTestDB(t, "doctor_license", &Doctor{})

	require.NoError(t, db.Create(&Doctor{FirstName: "A", LastName: "A", Email: "a@test.com", Phone: "1", Specialization: SpecializationSurgery, LicenseNumber: "L-1"}).Error)
	err := db.Create(&Doctor{FirstName: "B", LastName: "B", Email: "b@test.com", Phone: "2", Specialization: SpecializationSurgery, LicenseNumber: "L-1"}).Error
	assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey))
}

func TestDoctorModel_DefaultOrder(t *testing.T) {
	db := setupTestDB(t, "doctor_order", &Doctor{})

	for i, last := range []string{"Zeta", "Alpha", "Mu"} {
		require.NoError(t, db.Create(&Doctor{
			FirstName: "Doc", LastName: last, Email: last + "@test.com", Phone: "1",
			Specialization: SpecializationGeneral, LicenseNumber: last + string(rune('0'+i)),
		}).Error)
	}

	var doctors []Doctor
	require.NoError(t, db.Order(DoctorOrder).Find(&doctors).Error)
	require.Len(t, doctors, 3)
	assert.Equal(t, []string{"Alpha", "Mu", "Zeta"}, []string{doctors[0].LastName, doctors[1].LastName, doctors[2].LastName})
}

func TestDoctorModel_String(t *testing.T) {
	assert.Equal(t, "Dr. Gregory House", Doctor{FirstName: "Gregory", LastName: "House"}.String())
}
