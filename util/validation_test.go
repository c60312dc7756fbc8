package util

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Email          string  `json:"email" binding:"required,email"`
	Specialization string  `json:"specialization" binding:"required,specialization"`
	Role           *string `json:"role" binding:"omitempty,staffrole"`
	Years          int     `json:"experience_years" binding:"gte=0"`
}

func bindSample(t *testing.T, body string) error {
	t.Helper()
	RegisterValidators()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var req sampleRequest
	return c.ShouldBindJSON(&req)
}

func TestBindingError_FieldNames(t *testing.T) {
	err := BindingError(bindSample(t, `{"email":"nope","specialization":"Astrology","role":"Janitor","experience_years":-1}`))

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "Enter a valid email address.", verr.Fields["email"])
	assert.Equal(t, `"Astrology" is not a valid choice.`, verr.Fields["specialization"])
	assert.Equal(t, `"Janitor" is not a valid choice.`, verr.Fields["role"])
	assert.Contains(t, verr.Fields["experience_years"], "greater than or equal to 0")
}

func TestBindingError_Required(t *testing.T) {
	err := BindingError(bindSample(t, `{}`))

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "This field is required.", verr.Fields["email"])
	assert.Equal(t, "This field is required.", verr.Fields["specialization"])
	_, hasRole := verr.Fields["role"]
	assert.False(t, hasRole)
}

func TestBindingError_TypeMismatch(t *testing.T) {
	err := BindingError(bindSample(t, `{"email":"a@b.co","specialization":"Surgery","experience_years":"ten"}`))

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields["experience_years"], "int")
}

func TestBindingError_Valid(t *testing.T) {
	assert.NoError(t, bindSample(t, `{"email":"a@b.co","specialization":"Surgery","role":"Lab Technician"}`))
	assert.NoError(t, BindingError(nil))
}

func TestRegisterChoices_ReportsRejectedTags(t *testing.T) {
	v := validator.New()
	always := func(string) bool { return true }

	err := registerChoices(v, map[string]func(string) bool{"": always, "colour": always})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `register ""`)
	assert.NotContains(t, err.Error(), "colour")

	assert.NoError(t, registerChoices(validator.New(), choiceRules))
}

func TestBindingError_MalformedBody(t *testing.T) {
	err := BindingError(bindSample(t, `{"email":`))

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Fields, 1)
	assert.NotEmpty(t, verr.Fields["body"])
}
