package endpoint

import (
	"fmt"
	"strings"
	"time"

	"github.com/ariebrainware/hospital-management/model"
	"github.com/ariebrainware/hospital-management/util"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type appointmentFilter struct {
	listQuery
	Search    string
	Status    string
	DateRange string
	// Upcoming keeps appointments at or after Now, soonest first.
	Upcoming bool
	Now      time.Time
}

func parseAppointmentFilter(c *gin.Context) appointmentFilter {
	return appointmentFilter{
		listQuery: parseQueryParams(c),
		Search:    c.Query("q"),
		Status:    c.Query("status"),
		DateRange: c.Query("appointment_date"),
		Now:       time.Now().UTC(),
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// applyAppointmentDateFilter restricts appointment_date to a named range.
// Supported values: "today", "past_7_days", "this_month", "this_year".
func applyAppointmentDateFilter(query *gorm.DB, dateRange string, now time.Time) *gorm.DB {
	var from, to time.Time
	today := startOfDay(now)
	switch dateRange {
	case "":
		return query
	case "today":
		from, to = today, today.AddDate(0, 0, 1)
	case "past_7_days":
		from, to = today.AddDate(0, 0, -7), today.AddDate(0, 0, 1)
	case "this_month":
		from = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		to = from.AddDate(0, 1, 0)
	case "this_year":
		from = time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		to = from.AddDate(1, 0, 0)
	default:
		log.Debug().Str("appointment_date", dateRange).Msg("unknown appointment date range ignored")
		return query
	}
	return query.Where("appointments.appointment_date >= ? AND appointments.appointment_date < ?", from, to)
}

func fetchAppointments(db *gorm.DB, f appointmentFilter) ([]model.Appointment, int64, error) {
	if f.Now.IsZero() {
		f.Now = time.Now().UTC()
	}

	query := db.Model(&model.Appointment{})
	if f.Search != "" {
		query = query.
			Joins("JOIN patients ON patients.patient_id = appointments.patient_id").
			Joins("JOIN doctors ON doctors.doctor_id = appointments.doctor_id")
		query = searchAny(query, f.Search, "patients.first_name", "doctors.first_name")
	}
	if f.Status != "" {
		query = query.Where("appointments.status = ?", f.Status)
	}
	query = applyAppointmentDateFilter(query, f.DateRange, f.Now)

	order := model.AppointmentOrder
	if f.Upcoming {
		query = query.Where("appointments.appointment_date >= ?", f.Now)
		order = model.UpcomingOrder
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	appointments := []model.Appointment{}
	err := f.apply(query.Preload("Patient").Preload("Doctor").Order(order)).Find(&appointments).Error
	if err != nil {
		return nil, 0, err
	}
	return appointments, total, nil
}

func getAppointmentByID(db *gorm.DB, id uint) (model.Appointment, error) {
	var appointment model.Appointment
	err := db.Preload("Patient").Preload("Doctor").First(&appointment, "appointment_id = ?", id).Error
	return appointment, err
}

type appointmentRequest struct {
	PatientID       *uint   `json:"patient_id" example:"1"`
	DoctorID        *uint   `json:"doctor_id" example:"1"`
	AppointmentDate *string `json:"appointment_date" example:"2026-11-02T09:30:00Z"`
	Reason          *string `json:"reason" example:"Follow-up consultation"`
	Status          *string `json:"status" binding:"omitempty,apptstatus" example:"Scheduled"`
	Notes           *string `json:"notes" example:"Bring previous lab results"`
}

func (r appointmentRequest) apply(appointment *model.Appointment, partial bool) *util.ValidationError {
	verr := &util.ValidationError{}
	if !partial {
		if r.PatientID == nil {
			verr.Add("patient_id", "This field is required.")
		}
		if r.DoctorID == nil {
			verr.Add("doctor_id", "This field is required.")
		}
	}
	checkRequired(verr, "appointment_date", r.AppointmentDate, partial)
	checkRequired(verr, "reason", r.Reason, partial)
	blankCheck(verr, "status", r.Status)

	if r.PatientID != nil {
		appointment.PatientID = *r.PatientID
	}
	if r.DoctorID != nil {
		appointment.DoctorID = *r.DoctorID
	}
	if r.AppointmentDate != nil && strings.TrimSpace(*r.AppointmentDate) != "" {
		when, err := util.ParseDateTime(*r.AppointmentDate)
		if err != nil {
			verr.Add("appointment_date", "Datetime has wrong format. Use YYYY-MM-DDThh:mm[:ss][TZ].")
		} else {
			appointment.AppointmentDate = when.UTC()
		}
	}
	if r.Reason != nil {
		appointment.Reason = *r.Reason
	}
	if r.Status != nil {
		appointment.Status = model.AppointmentStatus(*r.Status)
	}
	if r.Notes != nil {
		appointment.Notes = *r.Notes
	}
	return verr
}

// checkReferences reports a field error for each referenced row that does
// not exist.
func checkReferences(db *gorm.DB, appointment *model.Appointment, verr *util.ValidationError) error {
	refs := []struct {
		field string
		model interface{}
		id    uint
	}{
		{"patient_id", &model.Patient{}, appointment.PatientID},
		{"doctor_id", &model.Doctor{}, appointment.DoctorID},
	}
	for _, ref := range refs {
		if _, failed := verr.Fields[ref.field]; failed {
			continue
		}
		var count int64
		if err := db.Model(ref.model).Where(ref.field+" = ?", ref.id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			verr.Add(ref.field, fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", ref.id))
		}
	}
	return nil
}

// saveAppointment writes only the appointment row; the nested patient and
// doctor are never upserted through it.
func saveAppointment(db *gorm.DB, req appointmentRequest, appointment *model.Appointment, partial bool) error {
	verr := req.apply(appointment, partial)
	if err := checkReferences(db, appointment, verr); err != nil {
		return err
	}
	if err := verr.OrNil(); err != nil {
		return err
	}
	if err := db.Omit(clause.Associations).Save(appointment).Error; err != nil {
		return err
	}
	saved, err := getAppointmentByID(db, appointment.AppointmentID)
	if err != nil {
		return err
	}
	*appointment = saved
	return nil
}

// ListAppointments godoc
// @Summary      List all appointments
// @Description  Appointments with nested patient and doctor, newest date first
// @Tags         Appointment
// @Produce      json
// @Param        limit query int false "Limit number of results"
// @Param        offset query int false "Offset for pagination"
// @Param        status query string false "Filter by status"
// @Param        appointment_date query string false "Filter by date range (today, past_7_days, this_month, this_year)"
// @Param        q query string false "Search patient or doctor first name"
// @Success      200 {object} util.APIResponse{data=object} "Appointments retrieved"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /appointments/ [get]
func ListAppointments(c *gin.Context) {
	db, ok := requireDB(c)
	if !ok {
		return
	}

	appointments, total, err := fetchAppointments(db, parseAppointmentFilter(c))
	if err != nil {
		util.RespondError(c, "Failed to retrieve appointments", err)
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Appointments retrieved",
		Data: map[string]interface{}{"total": total, "total_fetched": len(appointments), "appointments": appointments},
	})
}

// ListUpcomingAppointments godoc
// @Summary      List upcoming appointments
// @Description  Appointments dated now or later, soonest first
// @Tags         Appointment
// @Produce      json
// @Param        limit query int false "Limit number of results"
// @Param        offset query int false "Offset for pagination"
// @Success      200 {object} util.APIResponse{data=object} "Upcoming appointments retrieved"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /appointments/upcoming [get]
func ListUpcomingAppointments(c *gin.Context) {
	db, ok := requireDB(c)
	if !ok {
		return
	}

	filter := parseAppointmentFilter(c)
	filter.Upcoming = true
	appointments, total, err := fetchAppointments(db, filter)
	if err != nil {
		util.RespondError(c, "Failed to retrieve upcoming appointments", err)
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Upcoming appointments retrieved",
		Data: map[string]interface{}{"total": total, "total_fetched": len(appointments), "appointments": appointments},
	})
}

// CreateAppointment godoc
// @Summary      Book an appointment
// @Description  patient_id and doctor_id must reference existing rows. Status defaults to Scheduled.
// @Tags         Appointment
// @Accept       json
// @Produce      json
// @Param        request body appointmentRequest true "Appointment information"
// @Success      201 {object} util.APIResponse{data=model.Appointment} "Appointment created"
// @Failure      400 {object} util.APIResponse "Invalid request or unknown patient/doctor"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /appointments/ [post]
func CreateAppointment(c *gin.Context) {
	req := appointmentRequest{}
	if !bindJSON(c, &req) {
		return
	}

	db, ok := requireDB(c)
	if !ok {
		return
	}

	appointment := model.Appointment{Status: model.StatusScheduled}
	if err := saveAppointment(db, req, &appointment, false); err != nil {
		util.RespondError(c, "Failed to create appointment", err)
		return
	}

	util.CallSuccessCreated(c, util.APISuccessParams{
		Msg:  "Appointment created",
		Data: appointment,
	})
}

// GetAppointmentInfo godoc
// @Summary      Get appointment information
// @Tags         Appointment
// @Produce      json
// @Param        id path int true "Appointment ID"
// @Success      200 {object} util.APIResponse{data=model.Appointment} "Appointment retrieved"
// @Failure      404 {object} util.APIResponse "Appointment not found"
// @Router       /appointments/{id}/ [get]
func GetAppointmentInfo(c *gin.Context) {
	db, ok := requireDB(c)
	if !ok {
		return
	}

	id, err := parseID(c)
	if err != nil {
		util.RespondError(c, "Appointment not found", err)
		return
	}

	appointment, err := getAppointmentByID(db, id)
	if err != nil {
		util.RespondError(c, "Appointment not found", err)
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Appointment retrieved",
		Data: appointment,
	})
}

// UpdateAppointment godoc
// @Summary      Update an appointment
// @Description  PUT replaces the appointment, PATCH changes only the provided fields. Any status may follow any other.
// @Tags         Appointment
// @Accept       json
// @Produce      json
// @Param        id path int true "Appointment ID"
// @Param        request body appointmentRequest true "Appointment information"
// @Success      200 {object} util.APIResponse{data=model.Appointment} "Appointment updated"
// @Failure      400 {object} util.APIResponse "Invalid request or unknown patient/doctor"
// @Failure      404 {object} util.APIResponse "Appointment not found"
// @Router       /appointments/{id}/ [put]
// @Router       /appointments/{id}/ [patch]
func UpdateAppointment(c *gin.Context) {
	db, ok := requireDB(c)
	if !ok {
		return
	}

	id, err := parseID(c)
	if err != nil {
		util.RespondError(c, "Appointment not found", err)
		return
	}

	var appointment model.Appointment
	if err := db.First(&appointment, "appointment_id = ?", id).Error; err != nil {
		util.RespondError(c, "Appointment not found", err)
		return
	}

	req := appointmentRequest{}
	if !bindJSON(c, &req) {
		return
	}

	if err := saveAppointment(db, req, &appointment, isPartial(c)); err != nil {
		util.RespondError(c, "Failed to update appointment", err)
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Appointment updated",
		Data: appointment,
	})
}

// DeleteAppointment godoc
// @Summary      Delete an appointment
// @Tags         Appointment
// @Produce      json
// @Param        id path int true "Appointment ID"
// @Success      200 {object} util.APIResponse "Appointment deleted"
// @Failure      404 {object} util.APIResponse "Appointment not found"
// @Router       /appointments/{id}/ [delete]
func DeleteAppointment(c *gin.Context) {
	db, ok := requireDB(c)
	if !ok {
		return
	}

	id, err := parseID(c)
	if err != nil {
		util.RespondError(c, "Appointment not found", err)
		return
	}

	res := db.Where("appointment_id = ?", id).Delete(&model.Appointment{})
	if res.Error != nil {
		util.RespondError(c, "Failed to delete appointment", res.Error)
		return
	}
	if res.RowsAffected == 0 {
		util.RespondError(c, "Appointment not found", gorm.ErrRecordNotFound)
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Appointment deleted",
		Data: map[string]interface{}{"appointment_id": id},
	})
}
