package handler

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"expense-categorizer-backend/internal/parser"
	"expense-categorizer-backend/internal/services/ingest"
	"expense-categorizer-backend/internal/storage"

	"github.com/gin-gonic/gin"
)

type ImportHandler struct {
	service *ingest.Service
	uploads *storage.Store
}

func NewImportHandler(s *ingest.Service, uploads *storage.Store) *ImportHandler {
	return &ImportHandler{service: s, uploads: uploads}
}

// Upload ingests one bank export file.
func (h *ImportHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file required"})
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read file"})
		return
	}

	storedName, err := h.uploads.Save(header.Filename, content)
	if err != nil {
		log.Println("ERROR storing upload:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store upload"})
		return
	}

	result, err := h.service.Import(header.Filename, storedName, string(content))
	if errors.Is(err, parser.ErrHeaderNotFound) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		log.Println("ERROR importing file:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to import file"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListBatches returns past imports, newest first.
func (h *ImportHandler) ListBatches(c *gin.Context) {
	batches, err := h.service.ListBatches()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": batches})
}

// GetUpload re-serves a previously stored export file.
func (h *ImportHandler) GetUpload(c *gin.Context) {
	name := c.Param("name")

	content, err := h.uploads.Read(name)
	if errors.Is(err, storage.ErrInvalidName) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid upload name"})
		return
	}
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "upload not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", content)
}
