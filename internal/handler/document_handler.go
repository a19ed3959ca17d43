package handler

import (
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"greenlens/internal/service"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// DocumentHandler handles document processing endpoints.
type DocumentHandler struct {
	documentService service.DocumentService
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(documentService service.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// Process handles POST /api/v1/documents/process
// Accepts a single multipart file, runs text recognition and field
// extraction, persists the result, and returns the extracted document.
// @Summary Process a utility bill document
// @Description Upload one document (PDF, JPG, or PNG), classify it, and extract consumption fields
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Document to process (PDF, JPG, or PNG)"
// @Success 201 {object} APIResponse{data=domain.ExtractedDocument} "Extraction result"
// @Failure 400 {object} APIResponse "Missing file or unsupported type"
// @Failure 401 {object} APIResponse "Unauthorized"
// @Failure 413 {object} APIResponse "File too large"
// @Security BearerAuth
// @Router /documents/process [post]
func (h *DocumentHandler) Process(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	input, err := buildProcessInput(file, header, userID)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "READ_FAILED", "could not read uploaded file")
		return
	}

	doc, err := h.documentService.Process(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, doc)
}

// ProcessBatch handles POST /api/v1/documents/process-batch
// Accepts multiple files under the "files" field and processes them
// concurrently. Results are returned in upload order.
// @Summary Process a batch of documents
// @Description Upload several documents and extract them concurrently; results keep upload order
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Param files formData file true "Documents to process"
// @Success 201 {object} APIResponse{data=[]domain.ExtractedDocument} "Extraction results"
// @Failure 400 {object} APIResponse "Empty batch or unsupported type"
// @Failure 401 {object} APIResponse "Unauthorized"
// @Security BearerAuth
// @Router /documents/process-batch [post]
func (h *DocumentHandler) ProcessBatch(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_FORM", "could not parse multipart form")
		return
	}

	headers := form.File["files"]
	if len(headers) == 0 {
		RespondError(c, http.StatusBadRequest, "EMPTY_BATCH", "files field is required")
		return
	}

	inputs := make([]*service.ProcessInput, 0, len(headers))
	for _, header := range headers {
		file, openErr := header.Open()
		if openErr != nil {
			RespondError(c, http.StatusBadRequest, "READ_FAILED", "could not read uploaded file "+header.Filename)
			return
		}
		input, buildErr := buildProcessInput(file, header, userID)
		_ = file.Close()
		if buildErr != nil {
			RespondError(c, http.StatusBadRequest, "READ_FAILED", "could not read uploaded file "+header.Filename)
			return
		}
		inputs = append(inputs, input)
	}

	docs, err := h.documentService.ProcessBatch(c.Request.Context(), inputs)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, docs)
}

// List handles GET /api/v1/documents
func (h *DocumentHandler) List(c *gin.Context) {
	if _, _, ok := extractAuthContext(c); !ok {
		return
	}

	offset, limit := parsePagination(c)

	docs, total, err := h.documentService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, docs, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Get handles GET /api/v1/documents/:id
func (h *DocumentHandler) Get(c *gin.Context) {
	if _, _, ok := extractAuthContext(c); !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "document id must be a valid UUID")
		return
	}

	doc, err := h.documentService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, doc)
}

// DownloadURL handles GET /api/v1/documents/:id/download
// Returns a time-limited presigned URL for the original uploaded file.
func (h *DocumentHandler) DownloadURL(c *gin.Context) {
	if _, _, ok := extractAuthContext(c); !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "document id must be a valid UUID")
		return
	}

	url, err := h.documentService.GetDownloadURL(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"url": url})
}

// Delete handles DELETE /api/v1/documents/:id (admin only).
// Removes the document row along with the stored file behind it.
func (h *DocumentHandler) Delete(c *gin.Context) {
	if _, _, ok := extractAuthContext(c); !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "document id must be a valid UUID")
		return
	}

	if err := h.documentService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "document deleted"})
}

func buildProcessInput(file multipart.File, header *multipart.FileHeader, userID uuid.UUID) (*service.ProcessInput, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	return &service.ProcessInput{
		FileName:   header.Filename,
		Data:       data,
		UploadedBy: userID,
	}, nil
}

func parsePagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > maxLimit {
		limit = defaultLimit
	}
	return offset, limit
}
