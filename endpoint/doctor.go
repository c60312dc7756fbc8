package endpoint

import (
	"strconv"
	"strings"

	"github.com/ariebrainware/hospital-management/model"
	"github.com/ariebrainware/hospital-management/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type doctorFilter struct {
	listQuery
	Search         string
	Specialization string
	IsAvailable    *bool
}

// parseBoolParam returns nil for an absent or unparseable flag.
func parseBoolParam(c *gin.Context, key string) *bool {
	v, err := strconv.ParseBool(c.Query(key))
	if err != nil {
		return nil
	}
	return &v
}

func parseDoctorFilter(c *gin.Context) doctorFilter {
	return doctorFilter{
		listQuery:      parseQueryParams(c),
		Search:         c.Query("q"),
		Specialization: c.Query("specialization"),
		IsAvailable:    parseBoolParam(c, "is_available"),
	}
}

func fetchDoctors(db *gorm.DB, f doctorFilter) ([]model.Doctor, int64, error) {
	query := searchAny(db.Model(&model.Doctor{}), f.Search, "doctors.first_name", "doctors.last_name", "doctors.email")
	if f.Specialization != "" {
		query = query.Where("doctors.specialization = ?", f.Specialization)
	}
	if f.IsAvailable != nil {
		query = query.Where("doctors.is_available = ?", *f.IsAvailable)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	doctors := []model.Doctor{}
	if err := f.apply(query.Order(model.DoctorOrder)).Find(&doctors).Error; err != nil {
		return nil, 0, err
	}
	return doctors, total, nil
}

func getDoctorByID(db *gorm.DB, id uint) (model.Doctor, error) {
	var doctor model.Doctor
	err := db.First(&doctor, "doctor_id = ?", id).Error
	return doctor, err
}

type doctorRequest struct {
	FirstName       *string `json:"first_name" binding:"omitempty,max=100" example:"Gregory"`
	LastName        *string `json:"last_name" binding:"omitempty,max=100" example:"House"`
	Email           *string `json:"email" binding:"omitempty,email,max=191" example:"house@example.com"`
	Phone           *string `json:"phone" binding:"omitempty,max=20" example:"081234567890"`
	Specialization  *string `json:"specialization" binding:"omitempty,specialization" example:"Neurology"`
	LicenseNumber   *string `json:"license_number" binding:"omitempty,max=50" example:"LIC-0042"`
	ExperienceYears *int    `json:"experience_years" binding:"omitempty,min=0" example:"12"`
	Bio             *string `json:"bio" example:"Diagnostic medicine"`
	IsAvailable     *bool   `json:"is_available" example:"true"`
}

func (r doctorRequest) apply(doctor *model.Doctor, partial bool) *util.ValidationError {
	verr := &util.ValidationError{}
	checkRequired(verr, "first_name", r.FirstName, partial)
	checkRequired(verr, "last_name", r.LastName, partial)
	checkRequired(verr, "email", r.Email, partial)
	checkRequired(verr, "phone", r.Phone, partial)
	checkRequired(verr, "specialization", r.Specialization, partial)
	checkRequired(verr, "license_number", r.LicenseNumber, partial)
	if r.ExperienceYears == nil && !partial {
		verr.Add("experience_years", "This field is required.")
	}

	if r.FirstName != nil {
		doctor.FirstName = util.NormalizeName(*r.FirstName)
	}
	if r.LastName != nil {
		doctor.LastName = util.NormalizeName(*r.LastName)
	}
	if r.Email != nil {
		doctor.Email = util.NormalizeEmail(*r.Email)
	}
	if r.Phone != nil {
		doctor.Phone = strings.TrimSpace(*r.Phone)
	}
	if r.Specialization != nil {
		doctor.Specialization = model.Specialization(*r.Specialization)
	}
	if r.LicenseNumber != nil {
		doctor.LicenseNumber = strings.TrimSpace(*r.LicenseNumber)
	}
	if r.ExperienceYears != nil {
		doctor.ExperienceYears = *r.ExperienceYears
	}
	if r.Bio != nil {
		doctor.Bio = *r.Bio
	}
	if r.IsAvailable != nil {
		doctor.IsAvailable = *r.IsAvailable
	}
	return verr
}

func saveDoctor(db *gorm.DB, req doctorRequest, doctor *model.Doctor, partial bool) error {
	verr := req.apply(doctor, partial)
	unique := map[string]string{"email": doctor.Email, "license_number": doctor.LicenseNumber}
	if err := checkUnique(db, &model.Doctor{}, "doctor_id", doctor.DoctorID, verr, unique, "Doctor"); err != nil {
		return err
	}
	if err := verr.OrNil(); err != nil {
		return err
	}
	return db.Save(doctor).Error
}

// ListDoctors godoc
// @Summary      List all doctors
// @Tags         Doctor
// @Produce      json
// @Param        specialization query string false "Filter by specialization"
// @Param        is_available query bool false "Filter by availability"
// @Success      200 {object} util.APIResponse{data=object} "Doctors retrieved"
// @Router       /doctors/ [get]
func ListDoctors(c *gin.Context) {
	db, ok := requireDB(c)
	if !ok {
		return
	}

	doctors, total, err := fetchDoctors(db, parseDoctorFilter(c))
	if err != nil {
		util.RespondError(c, "Failed to retrieve doctors", err)
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Doctors retrieved",
		Data: map[string]interface{}{"total": total, "total_fetched": len(doctors), "doctors": doctors},
	})
}

// CreateDoctor godoc
// @Summary      Create a new doctor
// @Tags         Doctor
// @Accept       json
// @Produce      json
// @Param        request body doctorRequest true "Doctor information"
// @Success      201 {object} util.APIResponse{data=model.Doctor} "Doctor created"
// @Failure      400 {object} util.APIResponse "Invalid request, email or license number already registered"
// @Router       /doctors/ [post]
func CreateDoctor(c *gin.Context) {
	req := doctorRequest{}
	if !bindJSON(c, &req) {
		return
	}

	db, ok := requireDB(c)
	if !ok {
		return
	}

	doctor := model.Doctor{IsAvailable: true}
	if err := saveDoctor(db, req, &doctor, false); err != nil {
		util.RespondError(c, "Failed to create doctor", err)
		return
	}

	util.CallSuccessCreated(c, util.APISuccessParams{
		Msg:  "Doctor created",
		Data: doctor,
	})
}

// GetDoctorInfo godoc
// @Summary      Get doctor information
// @Tags         Doctor
// @Produce      json
// @Param        id path int true "Doctor ID"
// @Success      200 {object} util.APIResponse{data=model.Doctor} "Doctor retrieved"
// @Failure      404 {object} util.APIResponse "Doctor not found"
// @Router       /doctors/{id}/ [get]
func GetDoctorInfo(c *gin.Context) {
	db, ok := requireDB(c)
	if !ok {
		return
	}

	id, err := parseID(c)
	if err != nil {
		util.RespondError(c, "Doctor not found", err)
		return
	}

	doctor, err := getDoctorByID(db, id)
	if err != nil {
		util.RespondError(c, "Doctor not found", err)
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Doctor retrieved",
		Data: doctor,
	})
}

// UpdateDoctor godoc
// @Summary      Update doctor information
// @Tags         Doctor
// @Accept       json
// @Produce      json
// @Param        id path int true "Doctor ID"
// @Param        request body doctorRequest true "Doctor information"
// @Success      200 {object} util.APIResponse{data=model.Doctor} "Doctor updated"
// @Failure      400 {object} util.APIResponse "Invalid request"
// @Failure      404 {object} util.APIResponse "Doctor not found"
// @Router       /doctors/{id}/ [put]
// @Router       /doctors/{id}/ [patch]
func UpdateDoctor(c *gin.Context) {
	db, ok := requireDB(c)
	if !ok {
		return
	}

	id, err := parseID(c)
	if err != nil {
		util.RespondError(c, "Doctor not found", err)
		return
	}

	doctor, err := getDoctorByID(db, id)
	if err != nil {
		util.RespondError(c, "Doctor not found", err)
		return
	}

	req := doctorRequest{}
	if !bindJSON(c, &req) {
		return
	}

	if err := saveDoctor(db, req, &doctor, isPartial(c)); err != nil {
		util.RespondError(c, "Failed to update doctor", err)
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Doctor updated",
		Data: doctor,
	})
}

// DeleteDoctor godoc
// @Summary      Delete a doctor
// @Description  Delete a doctor together with all of their appointments
// @Tags         Doctor
// @Produce      json
// @Param        id path int true "Doctor ID"
// @Success      200 {object} util.APIResponse "Doctor deleted"
// @Failure      404 {object} util.APIResponse "Doctor not found"
// @Router       /doctors/{id}/ [delete]
func DeleteDoctor(c *gin.Context) {
	db, ok := requireDB(c)
	if !ok {
		return
	}

	id, err := parseID(c)
	if err != nil {
		util.RespondError(c, "Doctor not found", err)
		return
	}

	var removed int64
	err = db.Transaction(func(tx *gorm.DB) error {
		doctor, err := getDoctorByID(tx, id)
		if err != nil {
			return err
		}
		res := tx.Where("doctor_id = ?", id).Delete(&model.Appointment{})
		if res.Error != nil {
			return res.Error
		}
		removed = res.RowsAffected
		return tx.Delete(&doctor).Error
	})
	if err != nil {
		util.RespondError(c, "Failed to delete doctor", err)
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Doctor deleted",
		Data: map[string]interface{}{"doctor_id": id, "deleted_appointments": removed},
	})
}
