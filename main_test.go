package main

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"profile-sync/cache"
	"profile-sync/config"
	"profile-sync/mutation"
	"profile-sync/transport"
)

func statusFor(t *testing.T, err error) int {
	t.Helper()
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	respondError(c, err)
	return recorder.Code
}

func TestRespondErrorMapsTaxonomy(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"conflict", &mutation.ConflictError{Entity: cache.EntityPublications, ID: 1}, http.StatusConflict},
		{"validation", &transport.ValidationError{Fields: map[string][]string{"title": {"field is required"}}}, http.StatusUnprocessableEntity},
		{"not found", &transport.NotFoundError{Path: "/profiles/9"}, http.StatusNotFound},
		{"network", &transport.NetworkError{Err: errors.New("connection refused")}, http.StatusBadGateway},
		{"upstream status", &transport.HTTPError{Status: http.StatusForbidden, Message: "forbidden"}, http.StatusForbidden},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.status, statusFor(t, tc.err))
		})
	}
}

func TestUserScopeFallsBackToConfig(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{DefaultUserID: 1}

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/publications/?user_id=7", nil)
	assert.Equal(t, 7, userScope(c, cfg))

	c, _ = gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/publications/", nil)
	assert.Equal(t, 1, userScope(c, cfg))

	c, _ = gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/publications/?user_id=abc", nil)
	assert.Equal(t, 1, userScope(c, cfg))
}
