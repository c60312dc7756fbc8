package endpoint

import (
	"strings"

	"github.com/ariebrainware/hospital-management/model"
	"github.com/ariebrainware/hospital-management/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type staffFilter struct {
	listQuery
	Search     string
	Role       string
	Department string
	IsActive   *bool
}

func parseStaffFilter(c *gin.Context) staffFilter {
	return staffFilter{
		listQuery:  parseQueryParams(c),
		Search:     c.Query("q"),
		Role:       c.Query("role"),
		Department: c.Query("department"),
		IsActive:   parseBoolParam(c, "is_active"),
	}
}

func fetchStaff(db *gorm.DB, f staffFilter) ([]model.Staff, int64, error) {
	query := searchAny(db.Model(&model.Staff{}), f.Search, "staff.first_name", "staff.last_name", "staff.email")
	if f.Role != "" {
		query = query.Where("staff.role = ?", f.Role)
	}
	if f.Department != "" {
		query = query.Where("staff.department = ?", f.Department)
	}
	if f.IsActive != nil {
		query = query.Where("staff.is_active = ?", *f.IsActive)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	staff := []model.Staff{}
	if err := f.apply(query.Order(model.StaffOrder)).Find(&staff).Error; err != nil {
		return nil, 0, err
	}
	return staff, total, nil
}

func getStaffByID(db *gorm.DB, id uint) (model.Staff, error) {
	var member model.Staff
	err := db.First(&member, "staff_id = ?", id).Error
	return member, err
}

type staffRequest struct {
	FirstName  *string `json:"first_name" binding:"omitempty,max=100" example:"Carla"`
	LastName   *string `json:"last_name" binding:"omitempty,max=100" example:"Espinosa"`
	Email      *string `json:"email" binding:"omitempty,email,max=191" example:"carla@example.com"`
	Phone      *string `json:"phone" binding:"omitempty,max=20" example:"081234567890"`
	Role       *string `json:"role" binding:"omitempty,staffrole" example:"Nurse"`
	Department *string `json:"department" binding:"omitempty,max=100" example:"Surgery"`
	IsActive   *bool   `json:"is_active" example:"true"`
}

func (r staffRequest) apply(member *model.Staff, partial bool) *util.ValidationError {
	verr := &util.ValidationError{}
	checkRequired(verr, "first_name", r.FirstName, partial)
	checkRequired(verr, "last_name", r.LastName, partial)
	checkRequired(verr, "email", r.Email, partial)
	checkRequired(verr, "phone", r.Phone, partial)
	checkRequired(verr, "role", r.Role, partial)
	checkRequired(verr, "department", r.Department, partial)

	if r.FirstName != nil {
		member.FirstName = util.NormalizeName(*r.FirstName)
	}
	if r.LastName != nil {
		member.LastName = util.NormalizeName(*r.LastName)
	}
	if r.Email != nil {
		member.Email = util.NormalizeEmail(*r.Email)
	}
	if r.Phone != nil {
		member.Phone = strings.TrimSpace(*r.Phone)
	}
	if r.Role != nil {
		member.Role = model.StaffRole(*r.Role)
	}
	if r.Department != nil {
		member.Department = strings.TrimSpace(*r.Department)
	}
	if r.IsActive != nil {
		member.IsActive = *r.IsActive
	}
	return verr
}

func saveStaff(db *gorm.DB, req staffRequest, member *model.Staff, partial bool) error {
	verr := req.apply(member, partial)
	if err := checkUnique(db, &model.Staff{}, "staff_id", member.StaffID, verr,
		map[string]string{"email": member.Email}, "Staff"); err != nil {
		return err
	}
	if err := verr.OrNil(); err != nil {
		return err
	}
	return db.Save(member).Error
}

func ListStaff(c *gin.Context) {
	db, ok := requireDB(c)
	if !ok {
		return
	}

	staff, total, err := fetchStaff(db, parseStaffFilter(c))
	if err != nil {
		util.RespondError(c, "Failed to retrieve staff", err)
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Staff retrieved",
		Data: map[string]interface{}{"total": total, "total_fetched": len(staff), "staff": staff},
	})
}

func CreateStaff(c *gin.Context) {
	req := staffRequest{}
	if !bindJSON(c, &req) {
		return
	}

	db, ok := requireDB(c)
	if !ok {
		return
	}

	member := model.Staff{IsActive: true}
	if err := saveStaff(db, req, &member, false); err != nil {
		util.RespondError(c, "Failed to create staff member", err)
		return
	}

	util.CallSuccessCreated(c, util.APISuccessParams{
		Msg:  "Staff member created",
		Data: member,
	})
}

func GetStaffInfo(c *gin.Context) {
	db, ok := requireDB(c)
	if !ok {
		return
	}

	id, err := parseID(c)
	if err != nil {
		util.RespondError(c, "Staff member not found", err)
		return
	}

	member, err := getStaffByID(db, id)
	if err != nil {
		util.RespondError(c, "Staff member not found", err)
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Staff member retrieved",
		Data: member,
	})
}

func UpdateStaff(c *gin.Context) {
	db, ok := requireDB(c)
	if !ok {
		return
	}

	id, err := parseID(c)
	if err != nil {
		util.RespondError(c, "Staff member not found", err)
		return
	}

	member, err := getStaffByID(db, id)
	if err != nil {
		util.RespondError(c, "Staff member not found", err)
		return
	}

	req := staffRequest{}
	if !bindJSON(c, &req) {
		return
	}

	if err := saveStaff(db, req, &member, isPartial(c)); err != nil {
		util.RespondError(c, "Failed to update staff member", err)
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Staff member updated",
		Data: member,
	})
}

func DeleteStaff(c *gin.Context) {
	db, ok := requireDB(c)
	if !ok {
		return
	}

	id, err := parseID(c)
	if err != nil {
		util.RespondError(c, "Staff member not found", err)
		return
	}

	member, err := getStaffByID(db, id)
	if err != nil {
		util.RespondError(c, "Staff member not found", err)
		return
	}

	if err := db.Delete(&member).Error; err != nil {
		util.RespondError(c, "Failed to delete staff member", err)
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Staff member deleted",
		Data: map[string]interface{}{"staff_id": id},
	})
}
