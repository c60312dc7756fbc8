package endpoint

import (
	"fmt"
	"strings"

	"github.com/ariebrainware/hospital-management/model"
	"github.com/ariebrainware/hospital-management/util"
	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type patientFilter struct {
	listQuery
	Search     string
	Gender     string
	BloodGroup string
	City       string
}

func parsePatientFilter(c *gin.Context) patientFilter {
	return patientFilter{
		listQuery:  parseQueryParams(c),
		Search:     c.Query("q"),
		Gender:     c.Query("gender"),
		BloodGroup: c.Query("blood_group"),
		City:       c.Query("city"),
	}
}

// searchAny matches term case-insensitively as a substring of any of columns
// in one OR predicate, so every row is returned at most once. The term is
// used as given, surrounding whitespace included.
func searchAny(query *gorm.DB, term string, columns ...string) *gorm.DB {
	if term == "" {
		return query
	}
	pattern := util.ContainsPattern(term)
	predicates := make([]string, 0, len(columns))
	args := make([]interface{}, 0, len(columns))
	for _, col := range columns {
		predicates = append(predicates, fmt.Sprintf("LOWER(%s) LIKE ? ESCAPE '!'", col))
		args = append(args, pattern)
	}
	return query.Where("("+strings.Join(predicates, " OR ")+")", args...)
}

func fetchPatients(db *gorm.DB, f patientFilter) ([]model.Patient, int64, error) {
	query := searchAny(db.Model(&model.Patient{}), f.Search, "patients.first_name", "patients.last_name", "patients.email")
	if f.Gender != "" {
		query = query.Where("patients.gender = ?", f.Gender)
	}
	if f.BloodGroup != "" {
		query = query.Where("patients.blood_group = ?", f.BloodGroup)
	}
	if f.City != "" {
		query = query.Where("patients.city = ?", f.City)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	patients := []model.Patient{}
	if err := f.apply(query.Order(model.PatientOrder)).Find(&patients).Error; err != nil {
		return nil, 0, err
	}
	return patients, total, nil
}

func getPatientByID(db *gorm.DB, id uint) (model.Patient, error) {
	var patient model.Patient
	err := db.First(&patient, "patient_id = ?", id).Error
	return patient, err
}

// ListPatients godoc
// @Summary      List all patients
// @Description  Get patients ordered by last name, optionally filtered and paginated
// @Tags         Patient
// @Produce      json
// @Param        limit query int false "Limit number of results"
// @Param        offset query int false "Offset for pagination"
// @Param        gender query string false "Filter by gender (M, F, O)"
// @Param        blood_group query string false "Filter by blood group"
// @Param        city query string false "Filter by city"
// @Param        q query string false "Search first name, last name or email"
// @Success      200 {object} util.APIResponse{data=object} "Patients retrieved"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /patients/ [get]
func ListPatients(c *gin.Context) {
	db, ok := requireDB(c)
	if !ok {
		return
	}

	patients, total, err := fetchPatients(db, parsePatientFilter(c))
	if err != nil {
		util.RespondError(c, "Failed to retrieve patients", err)
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Patients retrieved",
		Data: map[string]interface{}{"total": total, "total_fetched": len(patients), "patients": patients},
	})
}

// SearchPatients godoc
// @Summary      Search patients
// @Description  Case-insensitive substring match on first name, last name or email. An empty query returns every patient.
// @Tags         Patient
// @Produce      json
// @Param        q query string false "Search term"
// @Success      200 {object} util.APIResponse{data=object} "Patients retrieved"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /patients/search [get]
func SearchPatients(c *gin.Context) {
	db, ok := requireDB(c)
	if !ok {
		return
	}

	query := c.Query("q")
	patients, total, err := fetchPatients(db, patientFilter{Search: query})
	if err != nil {
		util.RespondError(c, "Failed to search patients", err)
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Patients retrieved",
		Data: map[string]interface{}{"query": query, "total": total, "total_fetched": len(patients), "patients": patients},
	})
}

type patientRequest struct {
	FirstName        *string `json:"first_name" binding:"omitempty,max=100" example:"Anna"`
	LastName         *string `json:"last_name" binding:"omitempty,max=100" example:"Smith"`
	Email            *string `json:"email" binding:"omitempty,email,max=191" example:"anna@example.com"`
	Phone            *string `json:"phone" binding:"omitempty,max=20" example:"081234567890"`
	DateOfBirth      *string `json:"date_of_birth" example:"1990-04-12"`
	Gender           *string `json:"gender" binding:"omitempty,gender" example:"F"`
	Address          *string `json:"address" example:"12 Elm Street"`
	City             *string `json:"city" binding:"omitempty,max=100" example:"Springfield"`
	BloodGroup       *string `json:"blood_group" binding:"omitempty,bloodgroup" example:"O+"`
	MedicalHistory   *string `json:"medical_history" example:"Asthma"`
	EmergencyContact *string `json:"emergency_contact" binding:"omitempty,max=100" example:"John Smith 081234567891"`
}

// apply validates the request and copies every provided field onto patient.
// A partial request skips the required-field checks.
func (r patientRequest) apply(patient *model.Patient, partial bool) *util.ValidationError {
	verr := &util.ValidationError{}
	checkRequired(verr, "first_name", r.FirstName, partial)
	checkRequired(verr, "last_name", r.LastName, partial)
	checkRequired(verr, "email", r.Email, partial)
	checkRequired(verr, "phone", r.Phone, partial)
	blankCheck(verr, "gender", r.Gender)
	blankCheck(verr, "blood_group", r.BloodGroup)

	if r.FirstName != nil {
		patient.FirstName = util.NormalizeName(*r.FirstName)
	}
	if r.LastName != nil {
		patient.LastName = util.NormalizeName(*r.LastName)
	}
	if r.Email != nil {
		patient.Email = util.NormalizeEmail(*r.Email)
	}
	if r.Phone != nil {
		patient.Phone = strings.TrimSpace(*r.Phone)
	}
	if r.DateOfBirth != nil {
		if strings.TrimSpace(*r.DateOfBirth) == "" {
			patient.DateOfBirth = nil
		} else if dob, err := util.ParseDate(*r.DateOfBirth); err != nil {
			verr.Add("date_of_birth", "Date has wrong format. Use YYYY-MM-DD.")
		} else {
			date := datatypes.Date(dob)
			patient.DateOfBirth = &date
		}
	}
	if r.Gender != nil {
		patient.Gender = *r.Gender
	}
	if r.Address != nil {
		patient.Address = *r.Address
	}
	if r.City != nil {
		patient.City = strings.TrimSpace(*r.City)
	}
	if r.BloodGroup != nil {
		patient.BloodGroup = *r.BloodGroup
	}
	if r.MedicalHistory != nil {
		patient.MedicalHistory = *r.MedicalHistory
	}
	if r.EmergencyContact != nil {
		patient.EmergencyContact = *r.EmergencyContact
	}
	return verr
}

func savePatient(db *gorm.DB, req patientRequest, patient *model.Patient, partial bool) error {
	verr := req.apply(patient, partial)
	if err := checkUnique(db, &model.Patient{}, "patient_id", patient.PatientID, verr,
		map[string]string{"email": patient.Email}, "Patient"); err != nil {
		return err
	}
	if err := verr.OrNil(); err != nil {
		return err
	}
	return db.Save(patient).Error
}

// CreatePatient godoc
// @Summary      Create a new patient
// @Description  Register a patient. first_name, last_name, email and phone are required; email must be unique.
// @Tags         Patient
// @Accept       json
// @Produce      json
// @Param        request body patientRequest true "Patient information"
// @Success      201 {object} util.APIResponse{data=model.Patient} "Patient created"
// @Failure      400 {object} util.APIResponse "Invalid request or email already registered"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /patients/ [post]
func CreatePatient(c *gin.Context) {
	req := patientRequest{}
	if !bindJSON(c, &req) {
		return
	}

	db, ok := requireDB(c)
	if !ok {
		return
	}

	patient := model.Patient{Gender: model.GenderMale, BloodGroup: "O+"}
	if err := savePatient(db, req, &patient, false); err != nil {
		util.RespondError(c, "Failed to create patient", err)
		return
	}

	util.CallSuccessCreated(c, util.APISuccessParams{
		Msg:  "Patient created",
		Data: patient,
	})
}

// GetPatientInfo godoc
// @Summary      Get patient information
// @Tags         Patient
// @Produce      json
// @Param        id path int true "Patient ID"
// @Success      200 {object} util.APIResponse{data=model.Patient} "Patient retrieved"
// @Failure      404 {object} util.APIResponse "Patient not found"
// @Router       /patients/{id}/ [get]
func GetPatientInfo(c *gin.Context) {
	db, ok := requireDB(c)
	if !ok {
		return
	}

	id, err := parseID(c)
	if err != nil {
		util.RespondError(c, "Patient not found", err)
		return
	}

	patient, err := getPatientByID(db, id)
	if err != nil {
		util.RespondError(c, "Patient not found", err)
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Patient retrieved",
		Data: patient,
	})
}

// UpdatePatient godoc
// @Summary      Update patient information
// @Description  PUT replaces the record and requires every required field. PATCH changes only the provided fields.
// @Tags         Patient
// @Accept       json
// @Produce      json
// @Param        id path int true "Patient ID"
// @Param        request body patientRequest true "Patient information"
// @Success      200 {object} util.APIResponse{data=model.Patient} "Patient updated"
// @Failure      400 {object} util.APIResponse "Invalid request"
// @Failure      404 {object} util.APIResponse "Patient not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /patients/{id}/ [put]
// @Router       /patients/{id}/ [patch]
func UpdatePatient(c *gin.Context) {
	db, ok := requireDB(c)
	if !ok {
		return
	}

	id, err := parseID(c)
	if err != nil {
		util.RespondError(c, "Patient not found", err)
		return
	}

	patient, err := getPatientByID(db, id)
	if err != nil {
		util.RespondError(c, "Patient not found", err)
		return
	}

	req := patientRequest{}
	if !bindJSON(c, &req) {
		return
	}

	if err := savePatient(db, req, &patient, isPartial(c)); err != nil {
		util.RespondError(c, "Failed to update patient", err)
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Patient updated",
		Data: patient,
	})
}

// DeletePatient godoc
// @Summary      Delete a patient
// @Description  Delete a patient together with all of their appointments
// @Tags         Patient
// @Produce      json
// @Param        id path int true "Patient ID"
// @Success      200 {object} util.APIResponse "Patient deleted"
// @Failure      404 {object} util.APIResponse "Patient not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /patients/{id}/ [delete]
func DeletePatient(c *gin.Context) {
	db, ok := requireDB(c)
	if !ok {
		return
	}

	id, err := parseID(c)
	if err != nil {
		util.RespondError(c, "Patient not found", err)
		return
	}

	var removed int64
	err = db.Transaction(func(tx *gorm.DB) error {
		patient, err := getPatientByID(tx, id)
		if err != nil {
			return err
		}
		res := tx.Where("patient_id = ?", id).Delete(&model.Appointment{})
		if res.Error != nil {
			return res.Error
		}
		removed = res.RowsAffected
		return tx.Delete(&patient).Error
	})
	if err != nil {
		util.RespondError(c, "Failed to delete patient", err)
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Patient deleted",
		Data: map[string]interface{}{"patient_id": id, "deleted_appointments": removed},
	})
}
