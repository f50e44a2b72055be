package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListLocales exposes the dashboard language configuration.
func (s *Server) ListLocales(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"default": s.cfg.DefaultLocale,
		"locales": s.cfg.Locales,
	}})
}
