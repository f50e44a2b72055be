package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	currencydomain "github.com/smartsellhq/smartsell/internal/currency/domain"
)

func (s *Server) CreateCurrency(c *gin.Context) {
	var req currencydomain.CreateCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.currencySvc.CreateCurrency(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListCurrencies(c *gin.Context) {
	resp, err := s.currencySvc.ListCurrencies(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateCurrency(c *gin.Context) {
	var req currencydomain.UpdateCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ID = c.Param("id")

	resp, err := s.currencySvc.UpdateCurrency(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteCurrency(c *gin.Context) {
	if err := s.currencySvc.DeleteCurrency(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) GetStoreCurrencySettings(c *gin.Context) {
	resp, err := s.currencySvc.GetStoreSettings(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateStoreCurrencySettings(c *gin.Context) {
	var patch currencydomain.SettingsPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.currencySvc.UpdateStoreSettings(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
