package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"

	"github.com/saturnino-fabrica-de-software/presente/internal/domain"
)

type RecognitionAuditRepository struct {
	pool PgxPool
}

func NewRecognitionAuditRepository(pool PgxPool) *RecognitionAuditRepository {
	return &RecognitionAuditRepository{pool: pool}
}

// Create inserts a new recognition audit record
func (r *RecognitionAuditRepository) Create(ctx context.Context, audit *domain.RecognitionAudit) error {
	query := `
		INSERT INTO recognition_audits (
			id, matched_user_id, confidence, threshold, source, query_embedding, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING created_at
	`

	if audit.ID == uuid.Nil {
		audit.ID = uuid.New()
	}

	var embedding *pgvector.Vector
	if len(audit.QueryEmbedding) > 0 {
		floats := make([]float32, len(audit.QueryEmbedding))
		for i, v := range audit.QueryEmbedding {
			floats[i] = float32(v)
		}
		vec := pgvector.NewVector(floats)
		embedding = &vec
	}

	err := r.pool.QueryRow(ctx, query,
		audit.ID,
		audit.MatchedUserID,
		audit.Confidence,
		audit.Threshold,
		audit.Source,
		embedding,
	).Scan(&audit.CreatedAt)

	if err != nil {
		return fmt.Errorf("create recognition audit: %w", err)
	}

	return nil
}
