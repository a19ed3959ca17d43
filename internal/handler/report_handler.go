package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"greenlens/internal/domain"
	"greenlens/internal/service"
)

// ReportHandler handles sustainability report endpoints.
type ReportHandler struct {
	reportService service.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Metrics handles GET /api/v1/reports/metrics
// Returns aggregated usage totals, the emission summary, and the
// composite sustainability score for all stored documents.
func (h *ReportHandler) Metrics(c *gin.Context) {
	if _, _, ok := extractAuthContext(c); !ok {
		return
	}

	metrics, err := h.reportService.Metrics(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, metrics)
}

// Export handles GET /api/v1/reports/export?format=csv|xlsx
// Streams the stored documents plus the emission summary as a file
// attachment.
func (h *ReportHandler) Export(c *gin.Context) {
	if _, _, ok := extractAuthContext(c); !ok {
		return
	}

	stamp := time.Now().Format("2006-01-02")

	switch c.DefaultQuery("format", "csv") {
	case "csv":
		var buf bytes.Buffer
		if err := h.reportService.ExportCSV(c.Request.Context(), &buf); err != nil {
			HandleError(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=sustainability-report-%s.csv", stamp))
		c.Data(http.StatusOK, "text/csv", buf.Bytes())
	case "xlsx":
		data, err := h.reportService.ExportXLSX(c.Request.Context())
		if err != nil {
			HandleError(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=sustainability-report-%s.xlsx", stamp))
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
	default:
		HandleError(c, domain.ErrExportFormat)
	}
}

// EmailRequest is the body for POST /api/v1/reports/email.
type EmailRequest struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name"`
}

// Email handles POST /api/v1/reports/email
// Sends the current sustainability report to the given address.
func (h *ReportHandler) Email(c *gin.Context) {
	if _, _, ok := extractAuthContext(c); !ok {
		return
	}

	var req EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if err := h.reportService.EmailReport(c.Request.Context(), req.Email, req.Name); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "report sent"})
}
