package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"probimport/internal/csvexport"
	"probimport/internal/logger"
	"probimport/internal/service"
)

const exportPageSize = 200

// ProblemHandler handles problem store endpoints.
type ProblemHandler struct {
	problemService service.ProblemService
	log            *zap.Logger
	now            func() time.Time
}

// NewProblemHandler creates a new ProblemHandler.
func NewProblemHandler(problemService service.ProblemService, log *zap.Logger) *ProblemHandler {
	return &ProblemHandler{problemService: problemService, log: logger.OrNop(log), now: time.Now}
}

// Create handles POST /api/v1/problems
// @Summary Create a problem
// @Description Create a problem with its test cases (staff only)
// @Tags problems
// @Accept json
// @Produce json
// @Param request body ProblemRequest true "Problem details"
// @Success 201 {object} Response{data=domain.Problem} "Problem created"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 403 {object} ErrorResponseBody "Forbidden - staff only"
// @Security BearerAuth
// @Router /api/v1/problems [post]
func (h *ProblemHandler) Create(c *gin.Context) {
	var input service.ProblemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	problem, err := h.problemService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, h.log, err)
		return
	}

	RespondCreated(c, problem)
}

// List handles GET /api/v1/problems
// @Summary List problems
// @Description List problems, newest first
// @Tags problems
// @Produce json
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.Problem,meta=PagMeta} "List of problems"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 403 {object} ErrorResponseBody "Forbidden - staff only"
// @Security BearerAuth
// @Router /api/v1/problems [get]
func (h *ProblemHandler) List(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	problems, total, err := h.problemService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, h.log, err)
		return
	}

	RespondPaginated(c, problems, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/problems/:id
// @Summary Get problem by ID
// @Tags problems
// @Produce json
// @Param id path string true "Problem ID (UUID)"
// @Success 200 {object} Response{data=domain.Problem} "Problem details"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "Problem not found"
// @Security BearerAuth
// @Router /api/v1/problems/{id} [get]
func (h *ProblemHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid problem ID")
		return
	}

	problem, err := h.problemService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, h.log, err)
		return
	}

	RespondOK(c, problem)
}

// Update handles PUT /api/v1/problems/:id
// @Summary Replace a problem
// @Description Replace a problem's fields and test cases (staff only)
// @Tags problems
// @Accept json
// @Produce json
// @Param id path string true "Problem ID (UUID)"
// @Param request body ProblemRequest true "Problem details"
// @Success 200 {object} Response{data=domain.Problem} "Problem updated"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 403 {object} ErrorResponseBody "Forbidden - staff only"
// @Failure 404 {object} ErrorResponseBody "Problem not found"
// @Security BearerAuth
// @Router /api/v1/problems/{id} [put]
func (h *ProblemHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid problem ID")
		return
	}

	var input service.ProblemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	problem, err := h.problemService.Update(c.Request.Context(), id, input)
	if err != nil {
		HandleError(c, h.log, err)
		return
	}

	RespondOK(c, problem)
}

// ExportCSV handles GET /api/v1/problems/export/csv
// @Summary Export problems as CSV
// @Description Download every problem as a CSV file with a UTF-8 BOM
// @Tags problems
// @Produce text/csv
// @Success 200 {file} file "CSV file"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 403 {object} ErrorResponseBody "Forbidden - staff only"
// @Security BearerAuth
// @Router /api/v1/problems/export/csv [get]
func (h *ProblemHandler) ExportCSV(c *gin.Context) {
	ctx := c.Request.Context()

	// Fetch the first page before writing headers so errors still get a JSON body.
	problems, total, err := h.problemService.List(ctx, 0, exportPageSize)
	if err != nil {
		HandleError(c, h.log, err)
		return
	}

	filename := csvexport.BuildFilename("problems", h.now())
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Status(http.StatusOK)

	if _, err := c.Writer.Write(csvexport.BOM); err != nil {
		h.log.Warn("csv export write failed", zap.Error(err))
		return
	}
	w := csvexport.NewWriter(c.Writer)
	if err := w.WriteHeader(); err != nil {
		h.log.Warn("csv export write failed", zap.Error(err))
		return
	}

	offset := 0
	for {
		if err := w.WriteProblems(problems); err != nil {
			h.log.Warn("csv export write failed", zap.Error(err))
			return
		}
		offset += len(problems)
		if len(problems) == 0 || offset >= total {
			break
		}
		problems, _, err = h.problemService.List(ctx, offset, exportPageSize)
		if err != nil {
			// Headers are already sent; the file is truncated.
			h.log.Error("csv export page failed", zap.Int("offset", offset), zap.Error(err))
			break
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		h.log.Warn("csv export flush failed", zap.Error(err))
	}
}
