package endpoint

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/ariebrainware/hospital-management/middleware"
	"github.com/ariebrainware/hospital-management/model"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// setupEndpointTestDB opens a private in-memory database with every model
// migrated.
func setupEndpointTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:endpoint_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to connect test DB")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, model.AutoMigrate(db), "auto migrate failed")
	return db
}

// setupEndpointTest returns a router serving the API and admin pages over a
// fresh database.
func setupEndpointTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := setupEndpointTestDB(t)
	r := gin.New()
	r.Use(middleware.DatabaseMiddleware(db))
	RegisterRoutes(r, nil)
	require.NoError(t, RegisterAdminRoutes(r))
	return r, db
}

func seedPatient(t *testing.T, db *gorm.DB, first, last, email string) model.Patient {
	t.Helper()
	p := model.Patient{
		FirstName:  first,
		LastName:   last,
		Email:      email,
		Phone:      "081234567890",
		Gender:     model.GenderFemale,
		BloodGroup: "O+",
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func seedDoctor(t *testing.T, db *gorm.DB, first, last string, spec model.Specialization) model.Doctor {
	t.Helper()
	d := model.Doctor{
		FirstName:       first,
		LastName:        last,
		Email:           strings.ToLower(fmt.Sprintf("%s.%s@hospital.test", first, last)),
		Phone:           "081200000000",
		Specialization:  spec,
		LicenseNumber:   fmt.Sprintf("LIC-%s-%s", first, last),
		ExperienceYears: 5,
		IsAvailable:     true,
	}
	require.NoError(t, db.Create(&d).Error)
	return d
}

func seedStaff(t *testing.T, db *gorm.DB, first, last string, role model.StaffRole, department string) model.Staff {
	t.Helper()
	s := model.Staff{
		FirstName:  first,
		LastName:   last,
		Email:      strings.ToLower(fmt.Sprintf("%s.%s@hospital.test", first, last)),
		Phone:      "081211111111",
		Role:       role,
		Department: department,
		IsActive:   true,
	}
	require.NoError(t, db.Create(&s).Error)
	return s
}

func seedAppointment(t *testing.T, db *gorm.DB, patient model.Patient, doctor model.Doctor, when time.Time) model.Appointment {
	t.Helper()
	a := model.Appointment{
		PatientID:       patient.PatientID,
		DoctorID:        doctor.DoctorID,
		AppointmentDate: when.UTC(),
		Reason:          "Checkup",
		Status:          model.StatusScheduled,
	}
	require.NoError(t, db.Omit(clause.Associations).Create(&a).Error)
	return a
}

func countRows(t *testing.T, db *gorm.DB, m interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(m).Count(&n).Error)
	return n
}

// newTestRouter returns a new Gin engine configured for tests.
// Use this for tests that don't need a DB injected.
func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}
