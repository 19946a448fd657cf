package password

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dsolovey/passguard/internal/handler"
	"github.com/dsolovey/passguard/internal/model"
	"github.com/dsolovey/passguard/pkg/metrics"
)

// Analyzer is the slice of the analyzer service the handler needs.
type Analyzer interface {
	Analyze(ctx context.Context, password string, policy model.PasswordPolicy, contextWords ...string) model.PasswordAnalysis
}

// Handler serves password evaluations against the policy loaded at startup.
type Handler struct {
	analyzer Analyzer
	policy   model.PasswordPolicy
	metrics  *metrics.Metrics
}

func NewHandler(analyzer Analyzer, policy model.PasswordPolicy, m *metrics.Metrics) *Handler {
	return &Handler{
		analyzer: analyzer,
		policy:   policy,
		metrics:  m,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	passwords := r.Group("/passwords")
	{
		passwords.POST("/analyze", h.Analyze)
	}
}

type analyzeRequest struct {
	Password     string   `json:"password" binding:"required"`
	ContextWords []string `json:"context_words"`
}

// Analyze evaluates the submitted password and returns the full report.
// Violations are data, not errors: a non-compliant password is still a 200.
func (h *Handler) Analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	start := time.Now()
	analysis := h.analyzer.Analyze(c.Request.Context(), req.Password, h.policy, req.ContextWords...)

	if h.metrics != nil {
		codes := make([]string, 0, len(analysis.Violations))
		for _, v := range analysis.Violations {
			codes = append(codes, v.Code)
		}
		h.metrics.ObserveAnalysis(analysis.IsCompliant, codes, time.Since(start).Seconds())
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(analysis))
}
