package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ppiankov/copycop/internal/pipeline"
)

// LintRequest is the body of POST /v1/lint
type LintRequest struct {
	Name    string `json:"name"`
	Format  string `json:"format"` // markdown (default) or html
	Content string `json:"content" binding:"required"`
}

// AnalyzeRequest is the body of POST /v1/analyze
type AnalyzeRequest struct {
	Text string `json:"text" binding:"required"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": s.version,
	})
}

func (s *Server) handleLint(c *gin.Context) {
	var req LintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	name := req.Name
	if name == "" {
		name = "request"
	}
	format := req.Format
	if format == "" {
		format = pipeline.FormatOf(name)
	}

	report, err := s.linter.LintBytes(c.Request.Context(), name, []byte(req.Content), format)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, pipeline.ErrUnknownFormat) {
			status = http.StatusBadRequest
		}
		errorJSON(c, status, err.Error())
		return
	}

	c.JSON(http.StatusOK, report)
}

func (s *Server) handleAnalyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	results, err := s.linter.AnalyzeText(c.Request.Context(), req.Text)
	if err != nil {
		errorJSON(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"sentences": results})
}

func bindError(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		errorJSON(c, http.StatusRequestEntityTooLarge, "request body too large")
		return
	}
	errorJSON(c, http.StatusBadRequest, "invalid request: "+err.Error())
}

func errorJSON(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}
