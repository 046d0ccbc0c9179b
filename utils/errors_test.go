package utils

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
)

func performError(t *testing.T, err error) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x", func(c *gin.Context) { HandleError(c, err) })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestHandleErrorApiError(t *testing.T) {
	rec, body := performError(t, CreateNotFoundError("project"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "project not found", body["error"])
	assert.Equal(t, "RESOURCE_NOT_FOUND", body["code"])
}

func TestHandleErrorWrappedApiErrorWithDetails(t *testing.T) {
	apiErr := CreateBadRequestError("weak password").WithDetails([]string{"minimum length"})
	rec, body := performError(t, fmt.Errorf("sign up: %w", apiErr))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "weak password", body["error"])
	assert.Equal(t, []interface{}{"minimum length"}, body["details"])
}

func TestHandleErrorUnknownErrorHidesDetails(t *testing.T) {
	rec, body := performError(t, errors.New("connection refused to 10.0.0.1"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal server error", body["error"])
	assert.Equal(t, "INTERNAL_ERROR", body["code"])
}

func TestSuccessResponse(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/x", func(c *gin.Context) {
		SuccessResponse(c, gin.H{"id": "1"}, "created", http.StatusCreated)
	})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/x", nil))

	require.Equal(t, http.StatusCreated, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "created", body["message"])
	assert.Equal(t, map[string]interface{}{"id": "1"}, body["data"])
}
