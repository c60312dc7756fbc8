package endpoint

import (
	"net/http"
	"testing"
	"time"

	"github.com/ariebrainware/hospital-management/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDashboardStats(t *testing.T) {
	r, db := setupEndpointTest(t)
	anna := seedPatient(t, db, "Anna", "Smith", "anna@example.com")
	seedPatient(t, db, "Bob", "Jones", "bob@example.com")
	house := seedDoctor(t, db, "Gregory", "House", model.SpecializationNeurology)
	wilson := seedDoctor(t, db, "James", "Wilson", model.SpecializationCardiology)
	require.NoError(t, db.Model(&wilson).Update("is_available", false).Error)
	seedStaff(t, db, "Carla", "Espinosa", model.RoleNurse, "Surgery")

	seedAppointment(t, db, anna, house, time.Now().Add(time.Hour))
	past := seedAppointment(t, db, anna, house, time.Now().Add(-time.Hour))
	require.NoError(t, db.Model(&past).Update("status", model.StatusCompleted).Error)

	code, resp := doJSON(t, r, http.MethodGet, "/api/stats/", nil)
	require.Equal(t, http.StatusOK, code, resp.Error)

	data := decodeData(t, resp)
	assert.Equal(t, float64(2), data["patients"])
	assert.Equal(t, float64(2), data["doctors"])
	assert.Equal(t, float64(1), data["available_doctors"])
	assert.Equal(t, float64(1), data["staff"])
	assert.Equal(t, float64(1), data["active_staff"])
	assert.Equal(t, float64(2), data["appointments"])
	assert.Equal(t, float64(1), data["upcoming_appointments"])
	assert.Equal(t, map[string]interface{}{
		"Scheduled": float64(1),
		"Completed": float64(1),
		"Cancelled": float64(0),
		"No-Show":   float64(0),
	}, data["appointments_by_status"])
}

func TestAPIRoot(t *testing.T) {
	r, _ := setupEndpointTest(t)

	code, resp := doJSON(t, r, http.MethodGet, "/api/", nil)
	require.Equal(t, http.StatusOK, code)
	data := decodeData(t, resp)
	assert.Equal(t, "http://example.com/api/patients/", data["patients"])
	assert.Contains(t, data, "appointments")
}

func TestHealthz(t *testing.T) {
	r, db := setupEndpointTest(t)
	r.GET("/healthz", Healthz)

	code, resp := doJSON(t, r, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "up", decodeData(t, resp)["database"])

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	code, resp = doJSON(t, r, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.False(t, resp.Success)
}

func TestHandlersWithoutDatabase(t *testing.T) {
	r := newTestRouter()
	RegisterRoutes(r, nil)

	code, resp := doJSON(t, r, http.MethodGet, "/api/patients/", nil)
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "Database connection not available", resp.Msg)
}
