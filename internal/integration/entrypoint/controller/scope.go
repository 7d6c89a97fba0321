package controller

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/catering-ops/backend/internal/domain/entity"
	"github.com/catering-ops/backend/internal/integration/entrypoint/middleware"
)

// callerScope limits what a caller may see.
// Client users only see their own orders, distributors only the orders they placed.
type callerScope struct {
	UserID        uuid.UUID
	Role          entity.Role
	ClientID      *uuid.UUID
	DistributorID *uuid.UUID
	AuthToken     string
}

func scopeFromContext(ctx *gin.Context) callerScope {
	userID, _ := middleware.GetUserIDFromContext(ctx)
	role, _ := middleware.GetRoleFromContext(ctx)

	scope := callerScope{
		UserID:    userID,
		Role:      role,
		AuthToken: middleware.GetAccessTokenFromContext(ctx),
	}

	switch role {
	case entity.RoleClient:
		id := userID
		scope.ClientID = &id
	case entity.RoleDistributor:
		id := userID
		scope.DistributorID = &id
	}
	return scope
}

// withClientFilter narrows the scope to one client when the caller may choose one.
// Client users stay pinned to themselves.
func (s callerScope) withClientFilter(raw string) callerScope {
	if raw == "" || s.Role == entity.RoleClient {
		return s
	}
	if id, err := uuid.Parse(raw); err == nil {
		s.ClientID = &id
	}
	return s
}
