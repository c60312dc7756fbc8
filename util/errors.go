package util

import (
	"errors"
	"fmt"
	"maps"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ValidationError reports input the API refuses: a missing or malformed field,
// a uniqueness violation or a reference to a row that does not exist.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Fields))
	for _, field := range slices.Sorted(maps.Keys(e.Fields)) {
		parts = append(parts, fmt.Sprintf("%s: %s", field, e.Fields[field]))
	}
	return strings.Join(parts, "; ")
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// Add records another field failure and returns the receiver.
func (e *ValidationError) Add(field, msg string) *ValidationError {
	if e.Fields == nil {
		e.Fields = map[string]string{}
	}
	e.Fields[field] = msg
	return e
}

// OrNil returns nil when no field failed, so callers can return it directly.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

// IsNotFound reports whether err means the requested row does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// RespondError writes the envelope matching err: 404 for missing rows, 400 for
// validation failures and duplicate keys, 500 for everything else.
func RespondError(c *gin.Context, msg string, err error) {
	var verr *ValidationError
	switch {
	case IsNotFound(err):
		CallErrorNotFound(c, APIErrorParams{Msg: msg, Err: err})
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Error:   verr.Error(),
			Msg:     msg,
			Data:    map[string]interface{}{"fields": verr.Fields},
		})
	case errors.Is(err, gorm.ErrDuplicatedKey):
		CallUserError(c, APIErrorParams{Msg: msg, Err: fmt.Errorf("a record with the same unique value already exists")})
	default:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg(msg)
		CallServerError(c, APIErrorParams{Msg: msg, Err: err})
	}
}
