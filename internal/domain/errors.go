package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUserInactive        = errors.New("user is inactive")
	ErrInvalidRole         = errors.New("invalid user role")
	ErrEmailTaken          = errors.New("email already registered")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrUploadFailed        = errors.New("file upload to storage failed")
	ErrDocumentNotFound    = errors.New("document not found")
	ErrNegativeQuantity    = errors.New("negative quantity in document batch")
	ErrInvalidBillType     = errors.New("invalid bill type")
	ErrEmptyBatch          = errors.New("document batch is empty")
	ErrExportFormat        = errors.New("unsupported export format")
)
