package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	pixeldomain "github.com/smartsellhq/smartsell/internal/pixel/domain"
)

func (s *Server) CreatePixel(c *gin.Context) {
	var req pixeldomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.StoreID = c.Param("id")

	resp, err := s.pixelSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListPixels(c *gin.Context) {
	resp, err := s.pixelSvc.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdatePixel(c *gin.Context) {
	var req pixeldomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.StoreID = c.Param("id")
	req.ID = c.Param("pixelId")

	resp, err := s.pixelSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeletePixel(c *gin.Context) {
	if err := s.pixelSvc.Delete(c.Request.Context(), c.Param("id"), c.Param("pixelId")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) CheckPixel(c *gin.Context) {
	resp, err := s.pixelSvc.Check(c.Request.Context(), c.Param("id"), c.Param("pixelId"))
	if err != nil && resp == nil {
		AbortWithError(c, err)
		return
	}

	// A failed probe still returns the row so the dashboard can show the
	// recorded outcome.
	c.JSON(http.StatusOK, gin.H{"data": resp})
}
