package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"concursos/internal/domain"
	"concursos/internal/service"
)

// ExportHandler handles dataset export endpoints.
type ExportHandler struct {
	exportService service.ExportService
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(exportService service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// Download handles GET /api/v1/export/:format
// Streams the full position dataset as a file attachment.
func (h *ExportHandler) Download(c *gin.Context) {
	format := domain.ExportFormat(c.Param("format"))

	filename, contentType, data, err := h.exportService.Export(c.Request.Context(), format)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, data)
}
