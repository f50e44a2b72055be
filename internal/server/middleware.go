package server

import (
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	authdomain "github.com/smartsellhq/smartsell/internal/auth/domain"
	"github.com/smartsellhq/smartsell/internal/workspacectx"
)

const (
	sessionCookieName = "ss_session"
	HeaderWorkspace   = "X-Workspace-ID"
	contextUserKey    = "auth_user"
	contextRoleKey    = "workspace_role"
)

func (s *Server) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(sessionCookieName)
		if err != nil || strings.TrimSpace(token) == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		user, err := s.authSvc.Authenticate(c.Request.Context(), token)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		c.Set(contextUserKey, user)
		c.Request = c.Request.WithContext(
			workspacectx.WithUserID(c.Request.Context(), int64(user.ID)))
		c.Next()
	}
}

// WorkspaceContext resolves the workspace named in the request header,
// confirms the caller is a member, and scopes the request context to it.
func (s *Server) WorkspaceContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader(HeaderWorkspace))
		if raw == "" {
			AbortWithError(c, newValidationError("workspace", "missing_workspace", "workspace header required"))
			return
		}
		workspaceID, err := snowflake.ParseString(raw)
		if err != nil {
			AbortWithError(c, newValidationError("workspace", "invalid_workspace", "invalid workspace id"))
			return
		}

		user := currentUser(c)
		if user == nil {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		role, err := s.workspaceSvc.MemberRole(c.Request.Context(), workspaceID, user.ID)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		if role == "" {
			AbortWithError(c, ErrForbidden)
			return
		}

		c.Set(contextRoleKey, role)
		c.Request = c.Request.WithContext(
			workspacectx.WithWorkspaceID(c.Request.Context(), int64(workspaceID)))
		c.Next()
	}
}

func (s *Server) requireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(contextRoleKey)
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		AbortWithError(c, ErrForbidden)
	}
}

func currentUser(c *gin.Context) *authdomain.User {
	v, ok := c.Get(contextUserKey)
	if !ok {
		return nil
	}
	user, ok := v.(*authdomain.User)
	if !ok {
		return nil
	}
	return user
}
