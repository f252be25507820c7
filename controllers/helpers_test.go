package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"checkinly-backend/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRespondError(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		code    int
		message string
		fields  map[string]string
	}{
		{
			name:    "field validation",
			err:     &services.ValidationError{Fields: map[string]string{"email": "Email is required", "first_name": "First name is required"}},
			code:    http.StatusBadRequest,
			message: "Please check the highlighted fields",
			fields:  map[string]string{"email": "Email is required", "first_name": "First name is required"},
		},
		{
			name:    "duplicate room",
			err:     &services.ValidationError{Fields: map[string]string{"room_number": "Room 101 already exists"}, Err: services.ErrDuplicateRoom},
			code:    http.StatusConflict,
			message: "Room 101 already exists",
			fields:  map[string]string{"room_number": "Room 101 already exists"},
		},
		{name: "not found", err: fmt.Errorf("load: %w", services.ErrNotFound), code: http.StatusNotFound, message: "Not found"},
		{name: "no hotel", err: services.ErrNoHotel, code: http.StatusConflict, message: "Hotel setup required"},
		{name: "offline lock", err: services.ErrLockOffline, code: http.StatusConflict, message: "Lock is offline and cannot be controlled"},
		{name: "bad login", err: services.ErrInvalidCredentials, code: http.StatusUnauthorized, message: "Invalid email or password"},
		{name: "revoked", err: services.ErrUnauthorized, code: http.StatusUnauthorized, message: "Authentication required"},
		{name: "unexpected", err: errors.New("disk on fire"), code: http.StatusInternalServerError, message: "Something went wrong. Please try again."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			respondError(c, tc.err)

			assert.Equal(t, tc.code, w.Code)
			var body struct {
				Status  string            `json:"status"`
				Message string            `json:"message"`
				Fields  map[string]string `json:"fields"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, "error", body.Status)
			assert.Equal(t, tc.message, body.Message)
			assert.Equal(t, tc.fields, body.Fields)
			assert.True(t, c.IsAborted())
		})
	}
}

func TestBindJSONRejectsMalformedBody(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
	c.Request.Body = http.NoBody

	var in services.RoomInput
	assert.False(t, bindJSON(c, &in))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
