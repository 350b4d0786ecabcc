package handler

import (
	"github.com/gin-gonic/gin"

	"concursos/internal/port"
	"concursos/internal/service"
)

// PositionHandler handles cross-exam position search endpoints.
type PositionHandler struct {
	examService service.ExamService
}

// NewPositionHandler creates a new PositionHandler.
func NewPositionHandler(examService service.ExamService) *PositionHandler {
	return &PositionHandler{examService: examService}
}

// List handles GET /api/v1/positions
func (h *PositionHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)
	filter := port.PositionFilter{
		City:      c.Query("city"),
		State:     c.Query("state"),
		RoleQuery: c.Query("role"),
	}

	records, total, err := h.examService.SearchPositions(c.Request.Context(), filter, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, records, PagMeta{Total: total, Offset: offset, Limit: limit})
}
