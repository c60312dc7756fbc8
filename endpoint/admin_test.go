package endpoint

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/ariebrainware/hospital-management/model"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getHTML(t *testing.T, r *gin.Engine, path string) string {
	t.Helper()
	w := performRequest(r, requestSpec{method: http.MethodGet, requestPath: path})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/html"))
	return w.Body.String()
}

func TestAdminTemplatesParse(t *testing.T) {
	tmpl, err := AdminTemplates()
	require.NoError(t, err)
	assert.NotNil(t, tmpl.Lookup("admin/index.tmpl"))
	assert.NotNil(t, tmpl.Lookup("admin/list.tmpl"))
}

func TestAdminIndex(t *testing.T) {
	r, db := setupEndpointTest(t)
	seedPatient(t, db, "Anna", "Smith", "anna@example.com")

	body := getHTML(t, r, "/admin/")
	assert.Contains(t, body, "Site administration")
	assert.Contains(t, body, `href="/admin/patients/"`)
	assert.Contains(t, body, `href="/admin/appointments/"`)
}

func TestAdminPatients_SearchAndFilter(t *testing.T) {
	r, db := setupEndpointTest(t)
	anna := seedPatient(t, db, "Anna", "Smith", "anna@example.com")
	bob := seedPatient(t, db, "Bob", "Jones", "bob@example.com")
	bob.City = "Shelbyville"
	bob.Gender = model.GenderMale
	require.NoError(t, db.Save(&bob).Error)
	anna.City = "Springfield"
	require.NoError(t, db.Save(&anna).Error)

	body := getHTML(t, r, "/admin/patients/")
	assert.Contains(t, body, "2 patients")
	assert.Contains(t, body, "Shelbyville")
	assert.Contains(t, body, "By blood group")

	body = getHTML(t, r, "/admin/patients/?q=ann")
	assert.Contains(t, body, "anna@example.com")
	assert.NotContains(t, body, "bob@example.com")
	assert.Contains(t, body, `value="ann"`)

	body = getHTML(t, r, "/admin/patients/?city=Shelbyville")
	assert.Contains(t, body, "bob@example.com")
	assert.NotContains(t, body, "anna@example.com")

	body = getHTML(t, r, "/admin/patients/?gender=F")
	assert.Contains(t, body, "anna@example.com")
	assert.NotContains(t, body, "bob@example.com")
}

func TestAdminDoctors_Labels(t *testing.T) {
	r, db := setupEndpointTest(t)
	seedDoctor(t, db, "Lisa", "Cuddy", model.SpecializationGeneral)
	seedDoctor(t, db, "Gregory", "House", model.SpecializationNeurology)

	body := getHTML(t, r, "/admin/doctors/?specialization=General")
	assert.Contains(t, body, "Cuddy")
	assert.NotContains(t, body, "<td>House</td>")
	assert.Contains(t, body, "General Practice")
}

func TestAdminStaff_RoleLabel(t *testing.T) {
	r, db := setupEndpointTest(t)
	seedStaff(t, db, "Ted", "Buckland", model.RoleAdmin, "Legal")

	body := getHTML(t, r, "/admin/staff/")
	assert.Contains(t, body, "Administrator")
	assert.Contains(t, body, "Legal")
}

func TestAdminAppointments_Filters(t *testing.T) {
	r, db := setupEndpointTest(t)
	anna := seedPatient(t, db, "Anna", "Smith", "anna@example.com")
	bob := seedPatient(t, db, "Bob", "Jones", "bob@example.com")
	house := seedDoctor(t, db, "Gregory", "House", model.SpecializationNeurology)
	seedAppointment(t, db, anna, house, time.Now())
	old := seedAppointment(t, db, bob, house, time.Now().AddDate(-2, 0, 0))
	require.NoError(t, db.Model(&old).Update("status", model.StatusNoShow).Error)

	body := getHTML(t, r, "/admin/appointments/?status=No-Show")
	assert.Contains(t, body, "Bob Jones")
	assert.NotContains(t, body, "Anna Smith")

	body = getHTML(t, r, "/admin/appointments/?appointment_date=this_year&q=anna")
	assert.Contains(t, body, "<td>Anna Smith</td>")
	assert.Contains(t, body, "<td>Dr. Gregory House</td>")
	assert.NotContains(t, body, "Bob Jones")

	body = getHTML(t, r, "/admin/appointments/?q=zzz")
	assert.Contains(t, body, "No appointments found.")
}
