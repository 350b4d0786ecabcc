package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"concursos/internal/service"
)

// RunHandler handles crawl run endpoints.
type RunHandler struct {
	crawlService service.CrawlService
}

// NewRunHandler creates a new RunHandler.
func NewRunHandler(crawlService service.CrawlService) *RunHandler {
	return &RunHandler{crawlService: crawlService}
}

// Trigger handles POST /api/v1/runs
// Starts a crawl in the background and returns the run record immediately.
func (h *RunHandler) Trigger(c *gin.Context) {
	run, err := h.crawlService.TriggerRun(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondAccepted(c, run)
}

// List handles GET /api/v1/runs
func (h *RunHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)

	runs, total, err := h.crawlService.ListRuns(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, runs, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/runs/:id
func (h *RunHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid run id")
		return
	}

	run, err := h.crawlService.GetRun(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, run)
}
