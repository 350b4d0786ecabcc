package handler

import (
	"github.com/gin-gonic/gin"

	"concursos/internal/domain"
	"concursos/internal/port"
	"concursos/internal/service"
)

// ExamHandler handles exam endpoints.
type ExamHandler struct {
	examService    service.ExamService
	extractService service.ExtractService
}

// NewExamHandler creates a new ExamHandler.
func NewExamHandler(examService service.ExamService, extractService service.ExtractService) *ExamHandler {
	return &ExamHandler{examService: examService, extractService: extractService}
}

// List handles GET /api/v1/exams
func (h *ExamHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)
	filter := port.ExamFilter{
		Status:         domain.ExamStatus(c.Query("status")),
		DocumentStatus: domain.DocumentStatus(c.Query("document_status")),
		State:          c.Query("state"),
		City:           c.Query("city"),
	}

	exams, total, err := h.examService.List(c.Request.Context(), filter, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, exams, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/exams/:id
// The :id parameter is the portal's numeric exam identifier.
func (h *ExamHandler) GetByID(c *gin.Context) {
	exam, err := h.examService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, exam)
}

// Positions handles GET /api/v1/exams/:id/positions
func (h *ExamHandler) Positions(c *gin.Context) {
	records, err := h.examService.Positions(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, records)
}

// BulletinURL handles GET /api/v1/exams/:id/bulletin
// Returns a presigned link to the archived bulletin PDF.
func (h *ExamHandler) BulletinURL(c *gin.Context) {
	url, err := h.examService.BulletinURL(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"url": url})
}

// Reprocess handles POST /api/v1/exams/:id/reprocess
// Requeues the exam's bulletin for a fresh extraction pass.
func (h *ExamHandler) Reprocess(c *gin.Context) {
	exam, err := h.extractService.Reprocess(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondAccepted(c, exam)
}
