package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	uploaddomain "github.com/smartsellhq/smartsell/internal/upload/domain"
)

func (s *Server) CreateUpload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		AbortWithError(c, newValidationError("file", "invalid_file", "file field required"))
		return
	}

	src, err := file.Open()
	if err != nil {
		AbortWithError(c, err)
		return
	}
	defer src.Close()

	resp, err := s.uploadSvc.Store(c.Request.Context(), uploaddomain.StoreRequest{
		StoreID:     c.Param("id"),
		Filename:    file.Filename,
		ContentType: file.Header.Get("Content-Type"),
		Size:        file.Size,
		Body:        src,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListUploads(c *gin.Context) {
	resp, err := s.uploadSvc.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DownloadUpload(c *gin.Context) {
	upload, body, err := s.uploadSvc.Open(c.Request.Context(), c.Param("id"), c.Param("uploadId"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	defer body.Close()

	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", upload.OriginalName))
	c.DataFromReader(http.StatusOK, upload.SizeBytes, upload.ContentType, body, nil)
}

func (s *Server) DeleteUpload(c *gin.Context) {
	if err := s.uploadSvc.Delete(c.Request.Context(), c.Param("id"), c.Param("uploadId")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
