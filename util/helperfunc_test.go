package util

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "trim leading and trailing whitespace", input: "  John Doe  ", expected: "John Doe"},
		{name: "collapse many internal spaces", input: "John     Doe", expected: "John Doe"},
		{name: "already normalized", input: "John Doe", expected: "John Doe"},
		{name: "only whitespace", input: "   ", expected: ""},
		{name: "tabs and newlines", input: "John\t\nDoe", expected: "John Doe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeName(tt.input))
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "anna@example.com", NormalizeEmail("  Anna@Example.COM "))
}

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, "%ann%", ContainsPattern("Ann"))
	assert.Equal(t, "%50!%!_off!!%", ContainsPattern("50%_off!"))
	assert.Equal(t, "%%", ContainsPattern(""))
}

func runEnvelope(t *testing.T, handler gin.HandlerFunc) (*httptest.ResponseRecorder, APIResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x", handler)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	var resp APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestEnvelopeStatuses(t *testing.T) {
	cases := []struct {
		name    string
		handler gin.HandlerFunc
		status  int
		success bool
	}{
		{"ok", func(c *gin.Context) { CallSuccessOK(c, APISuccessParams{Msg: "ok"}) }, http.StatusOK, true},
		{"created", func(c *gin.Context) { CallSuccessCreated(c, APISuccessParams{Msg: "created"}) }, http.StatusCreated, true},
		{"user error", func(c *gin.Context) { CallUserError(c, APIErrorParams{Msg: "bad", Err: errors.New("x")}) }, http.StatusBadRequest, false},
		{"not found", func(c *gin.Context) { CallErrorNotFound(c, APIErrorParams{Msg: "nf", Err: errors.New("x")}) }, http.StatusNotFound, false},
		{"rate limited", func(c *gin.Context) { CallTooManyRequests(c, APIErrorParams{Msg: "slow", Err: errors.New("x")}) }, http.StatusTooManyRequests, false},
		{"server error", func(c *gin.Context) { CallServerError(c, APIErrorParams{Msg: "boom", Err: errors.New("x")}) }, http.StatusInternalServerError, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, resp := runEnvelope(t, tc.handler)
			assert.Equal(t, tc.status, w.Code)
			assert.Equal(t, tc.success, resp.Success)
		})
	}
}

func TestCallUserError_NilErr(t *testing.T) {
	w, resp := runEnvelope(t, func(c *gin.Context) { CallUserError(c, APIErrorParams{Msg: "bad"}) })
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, resp.Error)
}
