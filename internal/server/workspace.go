package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/smartsellhq/smartsell/internal/workspacectx"
	workspacedomain "github.com/smartsellhq/smartsell/internal/workspace/domain"
)

type createWorkspaceRequest struct {
	Name     string `json:"name"`
	PlanCode string `json:"plan_code"`
}

func (s *Server) CreateWorkspace(c *gin.Context) {
	var req createWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	user := currentUser(c)
	if user == nil {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	resp, err := s.workspaceSvc.Create(c.Request.Context(), user.ID, workspacedomain.CreateWorkspaceRequest{
		Name:     strings.TrimSpace(req.Name),
		PlanCode: strings.TrimSpace(req.PlanCode),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetWorkspace(c *gin.Context) {
	workspaceID, ok := workspacectx.WorkspaceIDFromContext(c.Request.Context())
	if !ok {
		AbortWithError(c, ErrForbidden)
		return
	}

	resp, err := s.workspaceSvc.GetByID(c.Request.Context(), workspaceID.String())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListUserWorkspaces(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	resp, err := s.workspaceSvc.ListWorkspacesByUser(c.Request.Context(), user.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
