package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"complianceconnect.backend/internal/domain/entities"
	domainerrors "complianceconnect.backend/internal/domain/errors"
	"complianceconnect.backend/internal/interfaces/http/middleware"
	"complianceconnect.backend/internal/interfaces/http/response"
)

// bindJSON decodes the body into dst, answering 400 with the binding error
// as details when it fails.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.Error(c, domainerrors.Validation("Invalid request body", err.Error()))
		return false
	}
	return true
}

// uuidParam parses a path parameter, answering 400 when it is not a UUID.
func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid "+name))
		return uuid.Nil, false
	}
	return id, true
}

// uuidQuery parses an optional query parameter. Absent yields uuid.Nil.
func uuidQuery(c *gin.Context, name string) (uuid.UUID, bool) {
	raw := c.Query(name)
	if raw == "" {
		return uuid.Nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid "+name))
		return uuid.Nil, false
	}
	return id, true
}

func principal(c *gin.Context) (entities.Principal, bool) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Authentication required"))
	}
	return p, ok
}
