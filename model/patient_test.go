package model

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func TestPatientModel_CreateAndRead(t *testing.T) {
	db := setupTestDB(t, "patient_create", &Patient{})

	dob := datatypes.Date(time.Date(1990, 4, 12, 0, 0, 0, 0, time.UTC))
	patient := Patient{
		FirstName:   "Anna",
		LastName:    "Smith",
		Email:       "anna@test.com",
		Phone:       "081234567890",
		DateOfBirth: &dob,
		Gender:      GenderFemale,
		City:        "Springfield",
		BloodGroup:  "AB+",
	}
	require.NoError(t, db.Create(&patient).Error)
	assert.NotZero(t, patient.PatientID)
	assert.False(t, patient.CreatedAt.IsZero())

	var found Patient
	require.NoError(t, db.First(&found, patient.PatientID).Error)
	assert.Equal(t, "Anna", found.FirstName)
	assert.Equal(t, "AB+", found.BloodGroup)
	require.NotNil(t, found.DateOfBirth)
	assert.Equal(t, 1990, time.Time(*found.DateOfBirth).Year())
}

func TestPatientModel_UniqueEmail(t *testing.T) {
	db := setupTestDB(t, "patient_unique", &Patient{})

	require.NoError(t, db.Create(&Patient{FirstName: "A", LastName: "One", Email: "dup@test.com", Phone: "1"}).Error)
	err := db.Create(&Patient{FirstName: "B", LastName: "Two", Email: "dup@test.com", Phone: "2"}).Error
	require.Error(t, err)
	assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey))
}

func TestPatientModel_DeleteIsPermanent(t *testing.T) {
	db := setupTestDB(t, "patient_delete", &Patient{})

	patient := Patient{FirstName: "Delete", LastName: "Me", Email: "delete@test.com", Phone: "1"}
	require.NoError(t, db.Create(&patient).Error)
	require.NoError(t, db.Delete(&patient).Error)

	var count int64
	db.Unscoped().Model(&Patient{}).Count(&count)
	assert.Zero(t, count)
}

func TestPatientModel_String(t *testing.T) {
	assert.Equal(t, "Anna Smith", Patient{FirstName: "Anna", LastName: "Smith"}.String())
}
