package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	storedomain "github.com/smartsellhq/smartsell/internal/store/domain"
)

type createStoreRequest struct {
	Name string `json:"name"`
}

type updateStoreRequest struct {
	Name   *string `json:"name"`
	Status *string `json:"status"`
}

func (s *Server) CreateStore(c *gin.Context) {
	var req createStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.storeSvc.Create(c.Request.Context(), storedomain.CreateRequest{
		Name: strings.TrimSpace(req.Name),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListStores(c *gin.Context) {
	resp, err := s.storeSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetStoreByID(c *gin.Context) {
	resp, err := s.storeSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateStore(c *gin.Context) {
	var req updateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	update := storedomain.UpdateRequest{ID: c.Param("id"), Name: req.Name}
	if req.Status != nil {
		status := storedomain.StoreStatus(strings.ToUpper(strings.TrimSpace(*req.Status)))
		update.Status = &status
	}

	resp, err := s.storeSvc.Update(c.Request.Context(), update)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteStore(c *gin.Context) {
	if err := s.storeSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
