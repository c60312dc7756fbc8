package endpoint

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/ariebrainware/hospital-management/model"
	"github.com/ariebrainware/hospital-management/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

//go:embed templates/admin/*.tmpl
var adminTemplates embed.FS

const adminSite = "Hospital administration"

type adminOption struct {
	Label    string
	Href     string
	Selected bool
}

type adminFilter struct {
	Title   string
	Options []adminOption
}

type adminField struct {
	Name  string
	Value string
}

type adminList struct {
	Site    string
	Title   string
	Noun    string
	Query   string
	Hidden  []adminField
	Total   int64
	Columns []string
	Rows    [][]string
	Filters []adminFilter
}

type adminSection struct {
	Label string
	Href  string
	Count int64
}

// AdminTemplates parses the embedded admin pages.
func AdminTemplates() (*template.Template, error) {
	return template.New("admin").ParseFS(adminTemplates, "templates/admin/*.tmpl")
}

// RegisterAdminRoutes installs the admin templates on r and mounts the
// read-only listing pages under /admin.
func RegisterAdminRoutes(r *gin.Engine) error {
	tmpl, err := AdminTemplates()
	if err != nil {
		return fmt.Errorf("parse admin templates: %w", err)
	}
	r.SetHTMLTemplate(tmpl)

	admin := r.Group("/admin")
	admin.GET("/", AdminIndex)
	admin.GET("/patients/", AdminPatients)
	admin.GET("/doctors/", AdminDoctors)
	admin.GET("/staff/", AdminStaff)
	admin.GET("/appointments/", AdminAppointments)
	return nil
}

// filterOption links to the current page with param set to value, or
// removed when value is empty. Paging is reset.
func filterOption(c *gin.Context, param, value, label string) adminOption {
	q := url.Values{}
	for k, v := range c.Request.URL.Query() {
		q[k] = v
	}
	q.Del("offset")
	if value == "" {
		q.Del(param)
	} else {
		q.Set(param, value)
	}
	href := c.Request.URL.Path
	if encoded := q.Encode(); encoded != "" {
		href += "?" + encoded
	}
	return adminOption{Label: label, Href: href, Selected: c.Query(param) == value}
}

// choiceFilter builds a filter with an "All" entry followed by one entry per
// value/label pair.
func choiceFilter(c *gin.Context, title, param string, pairs ...[2]string) adminFilter {
	f := adminFilter{Title: title, Options: []adminOption{filterOption(c, param, "", "All")}}
	for _, p := range pairs {
		f.Options = append(f.Options, filterOption(c, param, p[0], p[1]))
	}
	return f
}

func yesNoFilter(c *gin.Context, title, param string) adminFilter {
	return choiceFilter(c, title, param, [2]string{"true", "Yes"}, [2]string{"false", "No"})
}

func distinctFilter(c *gin.Context, db *gorm.DB, model interface{}, title, column string) (adminFilter, error) {
	var values []string
	if err := db.Model(model).Where(column+" <> ''").Distinct(column).Order(column).Pluck(column, &values).Error; err != nil {
		return adminFilter{}, err
	}
	pairs := make([][2]string, 0, len(values))
	for _, v := range values {
		pairs = append(pairs, [2]string{v, v})
	}
	return choiceFilter(c, title, column, pairs...), nil
}

// hiddenFilters carries the active filters through the search form.
func hiddenFilters(c *gin.Context, params ...string) []adminField {
	var fields []adminField
	for _, p := range params {
		if v := c.Query(p); v != "" {
			fields = append(fields, adminField{Name: p, Value: v})
		}
	}
	return fields
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func renderAdminList(c *gin.Context, page adminList) {
	page.Site = adminSite
	page.Query = c.Query("q")
	c.HTML(http.StatusOK, "admin/list.tmpl", page)
}

// AdminIndex renders the admin landing page with a link and a row count for
// each section.
func AdminIndex(c *gin.Context) {
	db, ok := requireDB(c)
	if !ok {
		return
	}

	stats, err := collectStats(db, time.Now().UTC())
	if err != nil {
		util.RespondError(c, "Failed to collect stats", err)
		return
	}

	c.HTML(http.StatusOK, "admin/index.tmpl", gin.H{
		"Site":  adminSite,
		"Title": "Site administration",
		"Sections": []adminSection{
			{Label: "Patients", Href: "/admin/patients/", Count: stats.Patients},
			{Label: "Doctors", Href: "/admin/doctors/", Count: stats.Doctors},
			{Label: "Staff", Href: "/admin/staff/", Count: stats.Staff},
			{Label: "Appointments", Href: "/admin/appointments/", Count: stats.Appointments},
		},
	})
}

// AdminPatients renders the patient table. Supports q plus the gender,
// blood_group and city filters.
func AdminPatients(c *gin.Context) {
	db, ok := requireDB(c)
	if !ok {
		return
	}

	patients, total, err := fetchPatients(db, parsePatientFilter(c))
	if err != nil {
		util.RespondError(c, "Failed to retrieve patients", err)
		return
	}
	cities, err := distinctFilter(c, db, &model.Patient{}, "city", "city")
	if err != nil {
		util.RespondError(c, "Failed to retrieve patients", err)
		return
	}

	rows := make([][]string, 0, len(patients))
	for _, p := range patients {
		rows = append(rows, []string{
			strconv.FormatUint(uint64(p.PatientID), 10), p.FirstName, p.LastName, p.Email, p.Phone, p.BloodGroup,
		})
	}

	bloodGroups := make([][2]string, 0, len(model.BloodGroups))
	for _, bg := range model.BloodGroups {
		bloodGroups = append(bloodGroups, [2]string{bg, bg})
	}

	renderAdminList(c, adminList{
		Title:   "Patients",
		Noun:    "patients",
		Hidden:  hiddenFilters(c, "gender", "blood_group", "city"),
		Total:   total,
		Columns: []string{"ID", "First name", "Last name", "Email", "Phone", "Blood group"},
		Rows:    rows,
		Filters: []adminFilter{
			choiceFilter(c, "gender", "gender",
				[2]string{model.GenderMale, "Male"}, [2]string{model.GenderFemale, "Female"}, [2]string{model.GenderOther, "Other"}),
			choiceFilter(c, "blood group", "blood_group", bloodGroups...),
			cities,
		},
	})
}

// AdminDoctors renders the doctor table filtered by specialization and
// is_available.
func AdminDoctors(c *gin.Context) {
	db, ok := requireDB(c)
	if !ok {
		return
	}

	doctors, total, err := fetchDoctors(db, parseDoctorFilter(c))
	if err != nil {
		util.RespondError(c, "Failed to retrieve doctors", err)
		return
	}

	rows := make([][]string, 0, len(doctors))
	for _, d := range doctors {
		rows = append(rows, []string{
			strconv.FormatUint(uint64(d.DoctorID), 10), d.FirstName, d.LastName, d.Specialization.Label(), yesNo(d.IsAvailable),
		})
	}

	specializations := make([][2]string, 0, len(model.Specializations))
	for _, s := range model.Specializations {
		specializations = append(specializations, [2]string{string(s), s.Label()})
	}

	renderAdminList(c, adminList{
		Title:   "Doctors",
		Noun:    "doctors",
		Hidden:  hiddenFilters(c, "specialization", "is_available"),
		Total:   total,
		Columns: []string{"ID", "First name", "Last name", "Specialization", "Available"},
		Rows:    rows,
		Filters: []adminFilter{
			choiceFilter(c, "specialization", "specialization", specializations...),
			yesNoFilter(c, "availability", "is_available"),
		},
	})
}

// AdminStaff renders the staff table filtered by role, department and
// is_active.
func AdminStaff(c *gin.Context) {
	db, ok := requireDB(c)
	if !ok {
		return
	}

	staff, total, err := fetchStaff(db, parseStaffFilter(c))
	if err != nil {
		util.RespondError(c, "Failed to retrieve staff", err)
		return
	}
	departments, err := distinctFilter(c, db, &model.Staff{}, "department", "department")
	if err != nil {
		util.RespondError(c, "Failed to retrieve staff", err)
		return
	}

	rows := make([][]string, 0, len(staff))
	for _, s := range staff {
		rows = append(rows, []string{
			strconv.FormatUint(uint64(s.StaffID), 10), s.FirstName, s.LastName, s.Role.Label(), s.Department, yesNo(s.IsActive),
		})
	}

	roles := make([][2]string, 0, len(model.StaffRoles))
	for _, r := range model.StaffRoles {
		roles = append(roles, [2]string{string(r), r.Label()})
	}

	renderAdminList(c, adminList{
		Title:   "Staff",
		Noun:    "staff members",
		Hidden:  hiddenFilters(c, "role", "department", "is_active"),
		Total:   total,
		Columns: []string{"ID", "First name", "Last name", "Role", "Department", "Active"},
		Rows:    rows,
		Filters: []adminFilter{
			choiceFilter(c, "role", "role", roles...),
			departments,
			yesNoFilter(c, "active", "is_active"),
		},
	})
}

// AdminAppointments renders the appointment table. q searches patient and
// doctor first names; status and appointment_date narrow the rows.
func AdminAppointments(c *gin.Context) {
	db, ok := requireDB(c)
	if !ok {
		return
	}

	appointments, total, err := fetchAppointments(db, parseAppointmentFilter(c))
	if err != nil {
		util.RespondError(c, "Failed to retrieve appointments", err)
		return
	}

	rows := make([][]string, 0, len(appointments))
	for _, a := range appointments {
		rows = append(rows, []string{
			strconv.FormatUint(uint64(a.AppointmentID), 10), a.Patient.String(), a.Doctor.String(),
			a.AppointmentDate.UTC().Format("2006-01-02 15:04"), string(a.Status),
		})
	}

	statuses := make([][2]string, 0, len(model.AppointmentStatuses))
	for _, s := range model.AppointmentStatuses {
		statuses = append(statuses, [2]string{string(s), string(s)})
	}

	renderAdminList(c, adminList{
		Title:   "Appointments",
		Noun:    "appointments",
		Hidden:  hiddenFilters(c, "status", "appointment_date"),
		Total:   total,
		Columns: []string{"ID", "Patient", "Doctor", "Date", "Status"},
		Rows:    rows,
		Filters: []adminFilter{
			choiceFilter(c, "status", "status", statuses...),
			choiceFilter(c, "appointment date", "appointment_date",
				[2]string{"today", "Today"}, [2]string{"past_7_days", "Past 7 days"},
				[2]string{"this_month", "This month"}, [2]string{"this_year", "This year"}),
		},
	})
}
