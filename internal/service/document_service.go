package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"greenlens/internal/config"
	"greenlens/internal/domain"
	"greenlens/internal/extraction"
	"greenlens/internal/port"
)

// ProcessInput is the DTO for a single document processing request.
type ProcessInput struct {
	FileName   string
	Data       []byte
	UploadedBy uuid.UUID
}

// DocumentService defines the document processing contract.
type DocumentService interface {
	Process(ctx context.Context, input *ProcessInput) (*domain.ExtractedDocument, error)
	ProcessBatch(ctx context.Context, inputs []*ProcessInput) ([]domain.ExtractedDocument, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ExtractedDocument, error)
	List(ctx context.Context, offset, limit int) ([]domain.ExtractedDocument, int, error)
	GetDownloadURL(ctx context.Context, id uuid.UUID) (string, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type documentService struct {
	docRepo    port.DocumentRepository
	fileRepo   port.FileMetaRepository
	storage    port.ObjectStorage
	recognizer port.Recognizer
	extractor  *extraction.Extractor
	s3Cfg      *config.S3Config
	ocrCfg     *config.OCRConfig
}

// NewDocumentService creates a new DocumentService implementation.
func NewDocumentService(
	docRepo port.DocumentRepository,
	fileRepo port.FileMetaRepository,
	storage port.ObjectStorage,
	recognizer port.Recognizer,
	extractor *extraction.Extractor,
	s3Cfg *config.S3Config,
	ocrCfg *config.OCRConfig,
) DocumentService {
	return &documentService{
		docRepo:    docRepo,
		fileRepo:   fileRepo,
		storage:    storage,
		recognizer: recognizer,
		extractor:  extractor,
		s3Cfg:      s3Cfg,
		ocrCfg:     ocrCfg,
	}
}

// Process stores the uploaded file, recognizes its text, and extracts the
// structured document. Recognition failure degrades to the
// minimum-confidence document; only storage and persistence failures are
// surfaced as errors.
func (s *documentService) Process(ctx context.Context, input *ProcessInput) (*domain.ExtractedDocument, error) {
	meta, err := s.storeFile(ctx, input)
	if err != nil {
		return nil, err
	}

	doc := s.extract(ctx, input)
	doc.ID = uuid.New()
	doc.FileID = &meta.ID
	doc.CreatedBy = &input.UploadedBy
	doc.CreatedAt = time.Now().UTC()

	if err := s.docRepo.Create(ctx, &doc); err != nil {
		return nil, fmt.Errorf("documentService.Process: %w", err)
	}

	log.Printf("documentService.Process: %s classified as %s (confidence %.2f)",
		input.FileName, doc.BillType, doc.Confidence)
	return &doc, nil
}

// ProcessBatch processes documents concurrently with a worker limit and a
// per-document recognition timeout, then fans the results back in. A
// stuck or failing recognition never blocks the rest of the batch: that
// document degrades and processing continues. Results preserve input
// order even though execution order is unconstrained.
func (s *documentService) ProcessBatch(ctx context.Context, inputs []*ProcessInput) ([]domain.ExtractedDocument, error) {
	if len(inputs) == 0 {
		return nil, domain.ErrEmptyBatch
	}

	results := make([]domain.ExtractedDocument, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workerLimit())

	for i, input := range inputs {
		g.Go(func() error {
			doc, err := s.Process(gctx, input)
			if err != nil {
				return fmt.Errorf("processing %s: %w", input.FileName, err)
			}
			results[i] = *doc
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *documentService) GetByID(ctx context.Context, id uuid.UUID) (*domain.ExtractedDocument, error) {
	return s.docRepo.GetByID(ctx, id)
}

func (s *documentService) List(ctx context.Context, offset, limit int) ([]domain.ExtractedDocument, int, error) {
	return s.docRepo.List(ctx, offset, limit)
}

func (s *documentService) GetDownloadURL(ctx context.Context, id uuid.UUID) (string, error) {
	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if doc.FileID == nil {
		return "", domain.ErrNotFound
	}
	meta, err := s.fileRepo.GetByID(ctx, *doc.FileID)
	if err != nil {
		return "", err
	}
	return s.storage.GetPresignedURL(ctx, meta.S3Bucket, meta.S3Key, s.s3Cfg.PresignExpiry)
}

// Delete removes the document row and, when the document still points at
// a stored file, the object and its metadata backing it.
func (s *documentService) Delete(ctx context.Context, id uuid.UUID) error {
	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if doc.FileID != nil {
		meta, err := s.fileRepo.GetByID(ctx, *doc.FileID)
		if err != nil {
			return err
		}
		if err := s.storage.Delete(ctx, meta.S3Bucket, meta.S3Key); err != nil {
			log.Printf("documentService.Delete: failed to delete from storage: %v", err)
			return fmt.Errorf("deleting from storage: %w", err)
		}
	}

	log.Printf("documentService.Delete: deleting document %s", id)
	return s.docRepo.Delete(ctx, id)
}

// storeFile validates the upload and writes it to object storage plus the
// file metadata table.
func (s *documentService) storeFile(ctx context.Context, input *ProcessInput) (*domain.FileMeta, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.FileName), "."))
	fileType, ok := domain.AllowedExtensions[ext]
	if !ok {
		return nil, domain.ErrUnsupportedFileType
	}

	maxBytes := s.s3Cfg.MaxFileSizeMB * 1024 * 1024
	if int64(len(input.Data)) > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	// Magic-byte check: the extension alone is not trusted.
	sniffLen := min(len(input.Data), 512)
	detectedType := http.DetectContentType(input.Data[:sniffLen])
	if _, valid := domain.AllowedContentTypes[detectedType]; !valid {
		return nil, domain.ErrUnsupportedFileType
	}

	fileID := uuid.New()
	meta := &domain.FileMeta{
		ID:           fileID,
		UploadedBy:   input.UploadedBy,
		FileName:     fileID.String() + "." + ext,
		OriginalName: input.FileName,
		FileType:     fileType,
		FileSize:     int64(len(input.Data)),
		S3Bucket:     s.s3Cfg.Bucket,
		S3Key:        fmt.Sprintf("uploads/%s/%s", fileID, input.FileName),
		ContentType:  domain.AllowedFileTypes[fileType],
		Status:       domain.FileStatusPending,
	}
	if err := s.fileRepo.Create(ctx, meta); err != nil {
		return nil, fmt.Errorf("documentService.storeFile: %w", err)
	}

	_, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      meta.S3Bucket,
		Key:         meta.S3Key,
		Body:        bytes.NewReader(input.Data),
		ContentType: meta.ContentType,
		Size:        meta.FileSize,
	})
	if err != nil {
		log.Printf("documentService.storeFile: upload of %s failed: %v", input.FileName, err)
		if updateErr := s.fileRepo.UpdateStatus(ctx, meta.ID, domain.FileStatusFailed); updateErr != nil {
			log.Printf("documentService.storeFile: marking %s failed: %v", meta.ID, updateErr)
		}
		return nil, domain.ErrUploadFailed
	}

	if err := s.fileRepo.UpdateStatus(ctx, meta.ID, domain.FileStatusUploaded); err != nil {
		return nil, fmt.Errorf("documentService.storeFile: %w", err)
	}
	meta.Status = domain.FileStatusUploaded
	return meta, nil
}

// extract runs recognition under the per-document timeout and turns the
// text into an ExtractedDocument, degrading on any recognition problem.
func (s *documentService) extract(ctx context.Context, input *ProcessInput) domain.ExtractedDocument {
	rctx, cancel := context.WithTimeout(ctx, time.Duration(s.ocrCfg.TimeoutSecs)*time.Second)
	defer cancel()

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.FileName), "."))
	contentType := domain.AllowedFileTypes[domain.AllowedExtensions[ext]]

	text, err := s.recognizer.Recognize(rctx, input.Data, contentType)
	if err != nil {
		log.Printf("documentService.extract: recognition of %s failed, degrading: %v", input.FileName, err)
		return extraction.Degenerate(input.FileName)
	}
	return s.extractor.Extract(input.FileName, text)
}

func (s *documentService) workerLimit() int {
	if s.ocrCfg.Concurrency > 0 {
		return s.ocrCfg.Concurrency
	}
	return 1
}
