package endpoint

import (
	"net/http"
	"time"

	"github.com/ariebrainware/hospital-management/model"
	"github.com/ariebrainware/hospital-management/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// DashboardStats summarises the hospital for the dashboard.
type DashboardStats struct {
	Patients             int64            `json:"patients"`
	Doctors              int64            `json:"doctors"`
	AvailableDoctors     int64            `json:"available_doctors"`
	Staff                int64            `json:"staff"`
	ActiveStaff          int64            `json:"active_staff"`
	Appointments         int64            `json:"appointments"`
	UpcomingAppointments int64            `json:"upcoming_appointments"`
	AppointmentsByStatus map[string]int64 `json:"appointments_by_status"`
}

func collectStats(db *gorm.DB, now time.Time) (DashboardStats, error) {
	stats := DashboardStats{AppointmentsByStatus: map[string]int64{}}
	for _, status := range model.AppointmentStatuses {
		stats.AppointmentsByStatus[string(status)] = 0
	}

	counts := []struct {
		dest  *int64
		query *gorm.DB
	}{
		{&stats.Patients, db.Model(&model.Patient{})},
		{&stats.Doctors, db.Model(&model.Doctor{})},
		{&stats.AvailableDoctors, db.Model(&model.Doctor{}).Where("is_available = ?", true)},
		{&stats.Staff, db.Model(&model.Staff{})},
		{&stats.ActiveStaff, db.Model(&model.Staff{}).Where("is_active = ?", true)},
		{&stats.Appointments, db.Model(&model.Appointment{})},
		{&stats.UpcomingAppointments, db.Model(&model.Appointment{}).Where("appointment_date >= ?", now)},
	}
	for _, cnt := range counts {
		if err := cnt.query.Count(cnt.dest).Error; err != nil {
			return DashboardStats{}, err
		}
	}

	var rows []struct {
		Status string
		Total  int64
	}
	if err := db.Model(&model.Appointment{}).Select("status, COUNT(*) AS total").Group("status").Scan(&rows).Error; err != nil {
		return DashboardStats{}, err
	}
	for _, row := range rows {
		stats.AppointmentsByStatus[row.Status] = row.Total
	}
	return stats, nil
}

// GetDashboardStats godoc
// @Summary      Dashboard counts
// @Description  Totals for patients, doctors, staff and appointments
// @Tags         Dashboard
// @Produce      json
// @Success      200 {object} util.APIResponse{data=DashboardStats} "Stats retrieved"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /stats/ [get]
func GetDashboardStats(c *gin.Context) {
	db, ok := requireDB(c)
	if !ok {
		return
	}

	stats, err := collectStats(db, time.Now().UTC())
	if err != nil {
		util.RespondError(c, "Failed to collect stats", err)
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Stats retrieved",
		Data: stats,
	})
}

// APIRoot lists the collection endpoints.
func APIRoot(c *gin.Context) {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	base := scheme + "://" + c.Request.Host + "/api/"

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg: "Hospital Management API",
		Data: map[string]string{
			"patients":     base + "patients/",
			"doctors":      base + "doctors/",
			"staff":        base + "staff/",
			"appointments": base + "appointments/",
		},
	})
}

// Healthz reports liveness and whether the database answers a ping.
func Healthz(c *gin.Context) {
	db, ok := requireDB(c)
	if !ok {
		return
	}

	sqlDB, err := db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, util.APIResponse{
			Success: false,
			Error:   err.Error(),
			Msg:     "Database unreachable",
			Data:    map[string]interface{}{"database": "down"},
		})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "OK",
		Data: map[string]interface{}{"database": "up"},
	})
}
