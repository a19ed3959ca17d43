package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"greenlens/internal/domain"
	"greenlens/internal/service"
)

// EmissionHandler handles emission calculation endpoints.
type EmissionHandler struct {
	emissionService service.EmissionService
}

// NewEmissionHandler creates a new EmissionHandler.
func NewEmissionHandler(emissionService service.EmissionService) *EmissionHandler {
	return &EmissionHandler{emissionService: emissionService}
}

// CalculateRequest is the body for POST /api/v1/emissions/calculate.
type CalculateRequest struct {
	Documents []domain.ExtractedDocument `json:"documents"`
}

// Calculate handles POST /api/v1/emissions/calculate
// Aggregates a caller-supplied batch of extracted documents into a
// carbon emission summary without touching stored documents.
func (h *EmissionHandler) Calculate(c *gin.Context) {
	if _, _, ok := extractAuthContext(c); !ok {
		return
	}

	var req CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	summary, err := h.emissionService.Calculate(c.Request.Context(), req.Documents)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, summary)
}

// CalculateStored handles GET /api/v1/emissions
// Aggregates every stored document into a carbon emission summary.
func (h *EmissionHandler) CalculateStored(c *gin.Context) {
	if _, _, ok := extractAuthContext(c); !ok {
		return
	}

	summary, err := h.emissionService.CalculateStored(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, summary)
}
