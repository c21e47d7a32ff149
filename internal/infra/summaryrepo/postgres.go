package summaryrepo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/securian/medsummary/internal/domain/summary"
)

// PostgresRepository persists summary records using pgx.
//
// Expected schema:
//
//	CREATE TABLE summaries (
//	    id            uuid PRIMARY KEY,
//	    patient_id    text NOT NULL DEFAULT '',
//	    answer        text NOT NULL,
//	    "references"  jsonb NOT NULL DEFAULT '[]',
//	    response_time bigint NOT NULL DEFAULT 0,
//	    created_at    timestamptz NOT NULL
//	);
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Insert implements summary.Repository.
func (r *PostgresRepository) Insert(ctx context.Context, record summary.StoredSummary) error {
	references, err := json.Marshal(record.References)
	if err != nil {
		return fmt.Errorf("encode references: %w", err)
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO summaries (id, patient_id, answer, "references", response_time, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, record.ID, record.PatientID, record.Answer, references, record.ResponseTime, record.CreatedAt)
	return err
}

// ListRecent implements summary.Repository.
func (r *PostgresRepository) ListRecent(ctx context.Context, limit int) ([]summary.StoredSummary, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, patient_id, answer, "references", response_time, created_at
		FROM summaries
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []summary.StoredSummary
	for rows.Next() {
		var (
			record     summary.StoredSummary
			references []byte
		)
		if err := rows.Scan(&record.ID, &record.PatientID, &record.Answer, &references, &record.ResponseTime, &record.CreatedAt); err != nil {
			return nil, err
		}
		if len(references) > 0 {
			if err := json.Unmarshal(references, &record.References); err != nil {
				return nil, fmt.Errorf("decode references: %w", err)
			}
		}
		if record.References == nil {
			record.References = []summary.Reference{}
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

var _ summary.Repository = (*PostgresRepository)(nil)
