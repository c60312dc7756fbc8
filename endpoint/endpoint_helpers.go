package endpoint

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/ariebrainware/hospital-management/middleware"
	"github.com/ariebrainware/hospital-management/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type listQuery struct {
	Limit  int
	Offset int
}

func parseQueryParams(c *gin.Context) listQuery {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	return listQuery{Limit: limit, Offset: offset}
}

func (q listQuery) apply(db *gorm.DB) *gorm.DB {
	if q.Limit > 0 {
		db = db.Limit(q.Limit)
	}
	if q.Offset > 0 {
		db = db.Offset(q.Offset)
	}
	return db
}

// requireDB fetches the request database handle, answering 500 when the
// middleware was not installed.
func requireDB(c *gin.Context) (*gorm.DB, bool) {
	db := middleware.GetDB(c)
	if db == nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Database connection not available",
			Err: fmt.Errorf("db is nil"),
		})
		return nil, false
	}
	return db, true
}

// parseID reads the :id path parameter. Anything that is not a positive
// integer cannot name a row, so it is reported as not found.
func parseID(c *gin.Context) (uint, error) {
	raw := strings.TrimSpace(c.Param("id"))
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q: %w", raw, gorm.ErrRecordNotFound)
	}
	return uint(id), nil
}

// isTaken reports whether another row of model already stores value in column.
// exceptID excludes the row being updated; pass 0 on create.
func isTaken(db *gorm.DB, model interface{}, pkColumn, column, value string, exceptID uint) (bool, error) {
	var count int64
	query := db.Model(model).Where(column+" = ?", value)
	if exceptID != 0 {
		query = query.Where(pkColumn+" <> ?", exceptID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// checkUnique adds a field error to verr for every column already used by
// another row.
func checkUnique(db *gorm.DB, model interface{}, pkColumn string, exceptID uint, verr *util.ValidationError, fields map[string]string, label string) error {
	for column, value := range fields {
		if value == "" {
			continue
		}
		taken, err := isTaken(db, model, pkColumn, column, value, exceptID)
		if err != nil {
			return err
		}
		if taken {
			verr.Add(column, fmt.Sprintf("%s with this %s already exists.", label, strings.ReplaceAll(column, "_", " ")))
		}
	}
	return nil
}

// checkRequired flags a missing required field unless the request is
// partial, and a blank one always.
func checkRequired(verr *util.ValidationError, field string, value *string, partial bool) {
	if value == nil {
		if !partial {
			verr.Add(field, "This field is required.")
		}
		return
	}
	blankCheck(verr, field, value)
}

// blankCheck flags a provided but empty value on a required field.
func blankCheck(verr *util.ValidationError, field string, value *string) {
	if value != nil && strings.TrimSpace(*value) == "" {
		verr.Add(field, "This field may not be blank.")
	}
}

// bindJSON binds the request body and translates failures into a
// ValidationError response.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		util.RespondError(c, "Invalid request body", util.BindingError(err))
		return false
	}
	return true
}

func isPartial(c *gin.Context) bool {
	return c.Request.Method == http.MethodPatch
}
