package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"complianceconnect.backend/internal/domain/entities"
)

func TestRequirementHandler(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/api/requirements", env.business, gin.H{
		"title":       "Annual audit",
		"description": "Statutory audit for FY24",
		"category":    "Audit",
		"urgency":     "high",
		"budget":      50000,
		"status":      "closed",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[entities.Requirement](t, w)
	assert.Equal(t, entities.RequirementOpen, created.Status)
	assert.Equal(t, env.business.ID, created.BusinessID)

	w = env.do(http.MethodPost, "/api/requirements", env.business, gin.H{
		"businessId": env.admin.ID, "title": "t", "description": "d", "category": "c",
	})
	require.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(http.MethodPost, "/api/requirements", env.business, gin.H{
		"title": "t", "description": "d", "category": "c", "urgency": "yesterday",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(http.MethodGet, "/api/requirements", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	all := decode[[]entities.RequirementResponse](t, w)
	require.Len(t, all, 1)
	require.NotNil(t, all[0].BusinessUser)
	assert.Equal(t, "Business Owner", all[0].BusinessUser.Name)

	w = env.do(http.MethodGet, "/api/requirements/business/"+env.business.ID.String(), env.business, nil)
	require.Equal(t, http.StatusOK, w.Code)
	mine := decode[[]entities.Requirement](t, w)
	require.Len(t, mine, 1)
	assert.Equal(t, created.ID, mine[0].ID)

	w = env.do(http.MethodGet, "/api/requirements/business/x", env.business, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
