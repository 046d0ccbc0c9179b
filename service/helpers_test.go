package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/BerniceZTT/sales_tracker/models"
	"github.com/BerniceZTT/sales_tracker/utils"
)

var fixedNow = time.Date(2024, 6, 3, 9, 30, 0, 0, time.UTC)

func requireAPIError(t *testing.T, err error, status int) *utils.ApiError {
	t.Helper()
	var apiErr *utils.ApiError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, status, apiErr.StatusCode)
	return apiErr
}

func salesUser() *models.CurrentUser {
	return &models.CurrentUser{ID: primitive.NewObjectID().Hex(), Email: "sales@example.com", Name: "Rina", Role: models.UserRoleSales, SessionID: "sess-1"}
}

func adminUser() *models.CurrentUser {
	return &models.CurrentUser{ID: primitive.NewObjectID().Hex(), Email: "admin@example.com", Name: "Admin", Role: models.UserRoleAdmin, SessionID: "sess-admin"}
}
