package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"greenlens/internal/domain"
	"greenlens/internal/port"
)

type documentRepo struct {
	db *sqlx.DB
}

// NewDocumentRepo creates a new PostgreSQL-backed DocumentRepository.
func NewDocumentRepo(db *sqlx.DB) port.DocumentRepository {
	return &documentRepo{db: db}
}

func (r *documentRepo) Create(ctx context.Context, doc *domain.ExtractedDocument) error {
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO documents
		(id, file_id, bill_type, energy_usage, water_consumption, fuel_consumption,
		 waste_generation, fuel_type, amount, bill_date, vendor, confidence,
		 source_file, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	_, err := r.db.ExecContext(ctx, query,
		doc.ID, doc.FileID, doc.BillType, doc.EnergyUsage, doc.WaterConsumption,
		doc.FuelConsumption, doc.WasteGeneration, doc.FuelType, doc.Amount,
		doc.BillDate, doc.Vendor, doc.Confidence, doc.SourceFile, doc.CreatedBy,
		doc.CreatedAt)
	if err != nil {
		return fmt.Errorf("documentRepo.Create: %w", err)
	}
	return nil
}

func (r *documentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.ExtractedDocument, error) {
	var doc domain.ExtractedDocument
	err := r.db.GetContext(ctx, &doc, "SELECT * FROM documents WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("documentRepo.GetByID: %w", err)
	}
	return &doc, nil
}

func (r *documentRepo) List(ctx context.Context, offset, limit int) ([]domain.ExtractedDocument, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM documents"); err != nil {
		return nil, 0, fmt.Errorf("documentRepo.List count: %w", err)
	}

	var docs []domain.ExtractedDocument
	err := r.db.SelectContext(ctx, &docs,
		"SELECT * FROM documents ORDER BY created_at DESC LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("documentRepo.List: %w", err)
	}
	return docs, total, nil
}

func (r *documentRepo) ListAll(ctx context.Context) ([]domain.ExtractedDocument, error) {
	var docs []domain.ExtractedDocument
	err := r.db.SelectContext(ctx, &docs, "SELECT * FROM documents ORDER BY created_at")
	if err != nil {
		return nil, fmt.Errorf("documentRepo.ListAll: %w", err)
	}
	return docs, nil
}

func (r *documentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM documents WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("documentRepo.Delete: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("documentRepo.Delete rows: %w", err)
	}
	if rows == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}
