package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/dealscout/backend/internal/domain"
	"github.com/dealscout/backend/internal/usecase"
	"github.com/gin-gonic/gin"
)

// ProductExtractor is the extraction use case consumed by the handlers
type ProductExtractor interface {
	ExtractURLData(ctx context.Context, rawURL string) *domain.ProductRecord
	ValidateURL(ctx context.Context, rawURL string) *domain.ValidationResult
}

// URLRequest is the body of the extract and validate endpoints
type URLRequest struct {
	URL string `json:"url" binding:"required"`
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	extractor ProductExtractor
}

// NewHandler creates a new HTTP handler. A nil extractor makes the
// extraction endpoints answer 503.
func NewHandler(extractor ProductExtractor) *Handler {
	return &Handler{extractor: extractor}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "dealscout-backend",
		"version": "1.0.0",
	})
}

// ExtractProduct handles product extraction requests.
// It always answers 200 with a record once the body is well formed.
func (h *Handler) ExtractProduct(c *gin.Context) {
	req, ok := h.bindURL(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.extractor.ExtractURLData(c.Request.Context(), req.URL))
}

// ValidateURL handles URL validation requests
func (h *Handler) ValidateURL(c *gin.Context) {
	req, ok := h.bindURL(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.extractor.ValidateURL(c.Request.Context(), req.URL))
}

// StoreModal reports whether the URL's store has a dedicated entry form
func (h *Handler) StoreModal(c *gin.Context) {
	rawURL := strings.TrimSpace(c.Query("url"))
	if rawURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url query parameter is required"})
		return
	}
	c.JSON(http.StatusOK, usecase.ShouldUseStoreModal(rawURL))
}

// StoreModalConfig returns entry form hints for a store
func (h *Handler) StoreModalConfig(c *gin.Context) {
	cfg := usecase.GetStoreModalConfig(c.Param("store"))
	if cfg == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": domain.ErrStoreNotFound.Error()})
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// URLFormat reports whether the url query parameter is a well-formed absolute URL
func (h *Handler) URLFormat(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"valid": usecase.IsValidURLFormat(c.Query("url"))})
}

func (h *Handler) bindURL(c *gin.Context) (*URLRequest, bool) {
	if h.extractor == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "extraction service not configured"})
		return nil, false
	}

	var req URLRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.URL) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrInvalidRequest.Error() + ": url is required"})
		return nil, false
	}
	return &req, true
}
