package port

import (
	"context"

	"github.com/google/uuid"

	"greenlens/internal/domain"
)

// DocumentRepository persists extraction results.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.ExtractedDocument) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ExtractedDocument, error)
	List(ctx context.Context, offset, limit int) ([]domain.ExtractedDocument, int, error)
	ListAll(ctx context.Context) ([]domain.ExtractedDocument, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// FileMetaRepository persists uploaded file metadata.
type FileMetaRepository interface {
	Create(ctx context.Context, meta *domain.FileMeta) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.FileMeta, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.FileStatus) error
}

// UserRepository persists users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}
