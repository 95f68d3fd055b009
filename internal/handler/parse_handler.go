package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"probimport/internal/domain"
	"probimport/internal/logger"
	"probimport/internal/metrics"
	"probimport/internal/middleware"
	"probimport/internal/port"
)

const (
	msgForbidden     = "权限不足"
	msgEmptyText     = "请提供Markdown文本"
	msgTextTooLong   = "Markdown文本过长，请限制在100KB以内"
	msgNoTitle       = "未能解析到题目标题，请检查Markdown格式"
	msgInternalParse = "解析过程中发生错误，请检查Markdown格式或联系管理员"
)

// ParseHandler serves the markdown parse endpoint of the problem admin pages.
// Unlike the /api/v1 envelope, failures carry a plain string in "error".
type ParseHandler struct {
	parser   port.MarkdownParser
	maxBytes int
	log      *zap.Logger
}

// NewParseHandler creates a new ParseHandler. maxBytes bounds the trimmed text.
func NewParseHandler(parser port.MarkdownParser, maxBytes int, log *zap.Logger) *ParseHandler {
	return &ParseHandler{parser: parser, maxBytes: maxBytes, log: logger.OrNop(log)}
}

func respondParseError(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"success": false, "error": msg})
}

// ParseMarkdown handles POST /admin/problems/parse-markdown/ and
// POST /admin/problems/:id/parse-markdown/
// @Summary Parse a markdown problem statement
// @Description Extract problem fields and test cases from markdown text (staff only)
// @Tags admin
// @Accept x-www-form-urlencoded
// @Produce json
// @Param markdown_text formData string true "Markdown problem statement"
// @Success 200 {object} ParseMarkdownSuccess "Parsed problem"
// @Failure 400 {object} ParseMarkdownFailure "Empty or oversized text"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 403 {object} ParseMarkdownFailure "Not staff"
// @Failure 500 {object} ParseMarkdownFailure "Parser error"
// @Security BearerAuth
// @Router /admin/problems/parse-markdown/ [post]
func (h *ParseHandler) ParseMarkdown(c *gin.Context) {
	if !middleware.IsStaff(c) {
		respondParseError(c, http.StatusForbidden, msgForbidden)
		return
	}

	// URL encoding can triple the size of non-ASCII text.
	if h.maxBytes > 0 && c.Request.ContentLength > int64(h.maxBytes)*3+1024 {
		metrics.ObserveParse("invalid", 0)
		respondParseError(c, http.StatusBadRequest, msgTextTooLong)
		return
	}

	text := strings.TrimSpace(c.PostForm("markdown_text"))
	if text == "" {
		metrics.ObserveParse("invalid", 0)
		respondParseError(c, http.StatusBadRequest, msgEmptyText)
		return
	}
	if h.maxBytes > 0 && len(text) > h.maxBytes {
		metrics.ObserveParse("invalid", 0)
		respondParseError(c, http.StatusBadRequest, msgTextTooLong)
		return
	}

	payload, err := h.parser.Parse(text)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptyInput):
			metrics.ObserveParse("invalid", 0)
			respondParseError(c, http.StatusBadRequest, msgEmptyText)
		case errors.Is(err, domain.ErrTextTooLong):
			metrics.ObserveParse("invalid", 0)
			respondParseError(c, http.StatusBadRequest, msgTextTooLong)
		default:
			metrics.ObserveParse("error", 0)
			h.log.Error("markdown parse failed",
				zap.String("request_id", c.GetString("request_id")), zap.Error(err))
			respondParseError(c, http.StatusInternalServerError, msgInternalParse)
		}
		return
	}
	if payload.Title == "" {
		metrics.ObserveParse("invalid", 0)
		respondParseError(c, http.StatusBadRequest, msgNoTitle)
		return
	}

	metrics.ObserveParse("ok", len(payload.TestCases))
	h.log.Info("markdown parsed",
		zap.String("user", middleware.GetUsername(c)),
		zap.String("problem", c.Param("id")),
		zap.Int("test_cases", len(payload.TestCases)),
	)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    payload,
		"message": fmt.Sprintf("成功解析题目\"%s\"，包含%d个测试用例", payload.Title, len(payload.TestCases)),
	})
}
