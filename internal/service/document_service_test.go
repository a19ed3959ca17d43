package service_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"greenlens/internal/config"
	"greenlens/internal/domain"
	"greenlens/internal/extraction"
	"greenlens/internal/port"
	"greenlens/internal/service"
	"greenlens/mocks"
)

func testS3Config() config.S3Config {
	return config.S3Config{
		Region:        "ap-south-1",
		Bucket:        "test-bucket",
		MaxFileSizeMB: 50,
		PresignExpiry: 3600,
	}
}

func testOCRConfig() config.OCRConfig {
	return config.OCRConfig{
		Provider:    "noop",
		TimeoutSecs: 5,
		Concurrency: 4,
	}
}

// pngContent returns minimal valid PNG bytes (magic bytes).
func pngContent() []byte {
	header := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
	return append(header, bytes.Repeat([]byte{0x00}, 100)...)
}

// pdfContent returns minimal valid PDF bytes.
func pdfContent() []byte {
	return []byte("%PDF-1.4 test content that is at least a few bytes long for detection purposes")
}

type documentFixture struct {
	docRepo    *mocks.MockDocumentRepo
	fileRepo   *mocks.MockFileMetaRepo
	storage    *mocks.MockObjectStorage
	recognizer *mocks.MockRecognizer
	svc        service.DocumentService
}

func newDocumentFixture() *documentFixture {
	f := &documentFixture{
		docRepo:    new(mocks.MockDocumentRepo),
		fileRepo:   new(mocks.MockFileMetaRepo),
		storage:    new(mocks.MockObjectStorage),
		recognizer: new(mocks.MockRecognizer),
	}
	s3Cfg := testS3Config()
	ocrCfg := testOCRConfig()
	f.svc = service.NewDocumentService(
		f.docRepo, f.fileRepo, f.storage, f.recognizer,
		extraction.New(extraction.Config{}), &s3Cfg, &ocrCfg,
	)
	return f
}

func (f *documentFixture) expectSuccessfulStore() {
	f.fileRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.FileMeta")).Return(nil)
	f.storage.On("Upload", mock.Anything, mock.AnythingOfType("port.UploadInput")).
		Return(&port.UploadOutput{Location: "https://test-bucket.s3.amazonaws.com/x", ETag: "abc"}, nil)
	f.fileRepo.On("UpdateStatus", mock.Anything, mock.AnythingOfType("uuid.UUID"), domain.FileStatusUploaded).Return(nil)
}

func TestDocumentService_Process_ElectricityBill(t *testing.T) {
	f := newDocumentFixture()
	f.expectSuccessfulStore()
	f.recognizer.On("Recognize", mock.Anything, mock.Anything, "image/png").
		Return("Electricity Bill MSEB Units consumed: 245.5 kWh Amount Due: Rs. 3,250 Bill Date: 15/11/2024", nil)
	f.docRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.ExtractedDocument")).Return(nil)

	userID := uuid.New()
	doc, err := f.svc.Process(context.Background(), &service.ProcessInput{
		FileName:   "mseb_bill.png",
		Data:       pngContent(),
		UploadedBy: userID,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.BillTypeElectricity, doc.BillType)
	require.NotNil(t, doc.EnergyUsage)
	assert.Equal(t, 245.5, *doc.EnergyUsage)
	assert.Equal(t, "Maharashtra State Electricity Board", doc.Vendor)
	assert.NotEqual(t, uuid.Nil, doc.ID)
	require.NotNil(t, doc.FileID)
	require.NotNil(t, doc.CreatedBy)
	assert.Equal(t, userID, *doc.CreatedBy)

	f.docRepo.AssertExpectations(t)
	f.fileRepo.AssertExpectations(t)
	f.storage.AssertExpectations(t)
}

func TestDocumentService_Process_UnsupportedExtension(t *testing.T) {
	f := newDocumentFixture()

	_, err := f.svc.Process(context.Background(), &service.ProcessInput{
		FileName:   "report.docx",
		Data:       []byte("not a supported format"),
		UploadedBy: uuid.New(),
	})
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
	f.storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
}

func TestDocumentService_Process_SpoofedExtension(t *testing.T) {
	f := newDocumentFixture()

	// Plain text renamed to .png fails the magic-byte check.
	_, err := f.svc.Process(context.Background(), &service.ProcessInput{
		FileName:   "evil.png",
		Data:       []byte("just some text pretending to be an image"),
		UploadedBy: uuid.New(),
	})
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
}

func TestDocumentService_Process_FileTooLarge(t *testing.T) {
	f := newDocumentFixture()

	big := bytes.Repeat([]byte{0x00}, 51*1024*1024)
	_, err := f.svc.Process(context.Background(), &service.ProcessInput{
		FileName:   "huge.pdf",
		Data:       big,
		UploadedBy: uuid.New(),
	})
	assert.ErrorIs(t, err, domain.ErrFileTooLarge)
}

func TestDocumentService_Process_UploadFailureMarksFile(t *testing.T) {
	f := newDocumentFixture()
	f.fileRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.FileMeta")).Return(nil)
	f.storage.On("Upload", mock.Anything, mock.AnythingOfType("port.UploadInput")).
		Return(nil, errors.New("s3 unavailable"))
	f.fileRepo.On("UpdateStatus", mock.Anything, mock.AnythingOfType("uuid.UUID"), domain.FileStatusFailed).Return(nil)

	_, err := f.svc.Process(context.Background(), &service.ProcessInput{
		FileName:   "bill.pdf",
		Data:       pdfContent(),
		UploadedBy: uuid.New(),
	})
	assert.ErrorIs(t, err, domain.ErrUploadFailed)
	f.fileRepo.AssertExpectations(t)
}

func TestDocumentService_Process_RecognitionFailureDegrades(t *testing.T) {
	f := newDocumentFixture()
	f.expectSuccessfulStore()
	f.recognizer.On("Recognize", mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("ocr crashed"))
	f.docRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.ExtractedDocument")).Return(nil)

	doc, err := f.svc.Process(context.Background(), &service.ProcessInput{
		FileName:   "blurry.png",
		Data:       pngContent(),
		UploadedBy: uuid.New(),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.BillTypeOther, doc.BillType)
	assert.Equal(t, 0.0, doc.Confidence)
	assert.Equal(t, "blurry.png", doc.SourceFile)
}

func TestDocumentService_ProcessBatch_EmptyBatch(t *testing.T) {
	f := newDocumentFixture()

	_, err := f.svc.ProcessBatch(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrEmptyBatch)
}

func TestDocumentService_ProcessBatch_PreservesInputOrder(t *testing.T) {
	f := newDocumentFixture()
	f.expectSuccessfulStore()
	f.recognizer.On("Recognize", mock.Anything, mock.Anything, mock.Anything).
		Return("", nil)
	f.docRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.ExtractedDocument")).Return(nil)

	inputs := []*service.ProcessInput{
		{FileName: "first.png", Data: pngContent(), UploadedBy: uuid.New()},
		{FileName: "second.png", Data: pngContent(), UploadedBy: uuid.New()},
		{FileName: "third.png", Data: pngContent(), UploadedBy: uuid.New()},
	}
	docs, err := f.svc.ProcessBatch(context.Background(), inputs)
	require.NoError(t, err)
	require.Len(t, docs, 3)

	assert.Equal(t, "first.png", docs[0].SourceFile)
	assert.Equal(t, "second.png", docs[1].SourceFile)
	assert.Equal(t, "third.png", docs[2].SourceFile)
}

func TestDocumentService_ProcessBatch_FailureRejectsBatch(t *testing.T) {
	f := newDocumentFixture()

	inputs := []*service.ProcessInput{
		{FileName: "ok.png", Data: pngContent(), UploadedBy: uuid.New()},
		{FileName: "bad.docx", Data: []byte("nope"), UploadedBy: uuid.New()},
	}

	f.expectSuccessfulStore()
	f.recognizer.On("Recognize", mock.Anything, mock.Anything, mock.Anything).
		Return("", nil).Maybe()
	f.docRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.ExtractedDocument")).Return(nil).Maybe()

	_, err := f.svc.ProcessBatch(context.Background(), inputs)
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
}

func TestDocumentService_GetDownloadURL(t *testing.T) {
	f := newDocumentFixture()

	docID := uuid.New()
	fileID := uuid.New()
	f.docRepo.On("GetByID", mock.Anything, docID).Return(&domain.ExtractedDocument{
		ID:     docID,
		FileID: &fileID,
	}, nil)
	f.fileRepo.On("GetByID", mock.Anything, fileID).Return(&domain.FileMeta{
		ID:       fileID,
		S3Bucket: "test-bucket",
		S3Key:    "uploads/abc/bill.png",
	}, nil)
	f.storage.On("GetPresignedURL", mock.Anything, "test-bucket", "uploads/abc/bill.png", int64(3600)).
		Return("https://signed.example/url", nil)

	url, err := f.svc.GetDownloadURL(context.Background(), docID)
	require.NoError(t, err)
	assert.Equal(t, "https://signed.example/url", url)
}

func TestDocumentService_GetDownloadURL_NoFile(t *testing.T) {
	f := newDocumentFixture()

	docID := uuid.New()
	f.docRepo.On("GetByID", mock.Anything, docID).Return(&domain.ExtractedDocument{ID: docID}, nil)

	_, err := f.svc.GetDownloadURL(context.Background(), docID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentService_Delete_RemovesRowAndStoredFile(t *testing.T) {
	f := newDocumentFixture()

	docID := uuid.New()
	fileID := uuid.New()
	f.docRepo.On("GetByID", mock.Anything, docID).Return(&domain.ExtractedDocument{
		ID:     docID,
		FileID: &fileID,
	}, nil)
	f.fileRepo.On("GetByID", mock.Anything, fileID).Return(&domain.FileMeta{
		ID:       fileID,
		S3Bucket: "test-bucket",
		S3Key:    "uploads/abc/bill.png",
	}, nil)
	f.storage.On("Delete", mock.Anything, "test-bucket", "uploads/abc/bill.png").Return(nil)
	f.docRepo.On("Delete", mock.Anything, docID).Return(nil)

	err := f.svc.Delete(context.Background(), docID)
	require.NoError(t, err)

	f.docRepo.AssertExpectations(t)
	f.storage.AssertExpectations(t)
}

func TestDocumentService_Delete_NoStoredFile(t *testing.T) {
	f := newDocumentFixture()

	docID := uuid.New()
	f.docRepo.On("GetByID", mock.Anything, docID).Return(&domain.ExtractedDocument{ID: docID}, nil)
	f.docRepo.On("Delete", mock.Anything, docID).Return(nil)

	err := f.svc.Delete(context.Background(), docID)
	require.NoError(t, err)
	f.storage.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}

func TestDocumentService_Delete_NotFound(t *testing.T) {
	f := newDocumentFixture()

	docID := uuid.New()
	f.docRepo.On("GetByID", mock.Anything, docID).Return(nil, domain.ErrDocumentNotFound)

	err := f.svc.Delete(context.Background(), docID)
	assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
	f.docRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDocumentService_Delete_StorageFailureKeepsRow(t *testing.T) {
	f := newDocumentFixture()

	docID := uuid.New()
	fileID := uuid.New()
	f.docRepo.On("GetByID", mock.Anything, docID).Return(&domain.ExtractedDocument{
		ID:     docID,
		FileID: &fileID,
	}, nil)
	f.fileRepo.On("GetByID", mock.Anything, fileID).Return(&domain.FileMeta{
		ID:       fileID,
		S3Bucket: "test-bucket",
		S3Key:    "uploads/abc/bill.png",
	}, nil)
	f.storage.On("Delete", mock.Anything, "test-bucket", "uploads/abc/bill.png").
		Return(errors.New("s3 unavailable"))

	err := f.svc.Delete(context.Background(), docID)
	require.Error(t, err)
	f.docRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
