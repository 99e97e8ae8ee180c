package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ankitpatil/director/pkg/models"
)

// PostgresStore implements Store on pgx/v5, keeping each job as a JSONB
// document. The indexed columns (owner_id, status, created_at) exist only
// for listing; the document is the source of truth.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgresStore.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Ping checks database connectivity.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *PostgresStore) SaveJob(ctx context.Context, job *models.MovieJob) error {
	doc, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal job: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO movie_jobs (job_id, owner_id, status, document, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, NOW())
		 ON CONFLICT (job_id) DO UPDATE SET
		   status = EXCLUDED.status,
		   document = EXCLUDED.document,
		   updated_at = NOW()`,
		job.JobID, job.OwnerID, job.Status, doc, job.CreatedAt)
	if err != nil {
		return fmt.Errorf("save job: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetJob(ctx context.Context, jobID string) (*models.MovieJob, error) {
	var doc []byte
	err := s.pool.QueryRow(ctx,
		`SELECT document FROM movie_jobs WHERE job_id = $1`, jobID).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get job: %w", err)
	}

	var job models.MovieJob
	if err := json.Unmarshal(doc, &job); err != nil {
		return nil, fmt.Errorf("unmarshal job %s: %w", jobID, err)
	}
	return &job, nil
}

func (s *PostgresStore) ListJobsByOwner(ctx context.Context, ownerID string) ([]*models.MovieJob, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT document FROM movie_jobs WHERE owner_id = $1 ORDER BY created_at DESC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list jobs by owner: %w", err)
	}
	defer rows.Close()

	var jobs []*models.MovieJob
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan job document: %w", err)
		}
		var job models.MovieJob
		if err := json.Unmarshal(doc, &job); err != nil {
			return nil, fmt.Errorf("unmarshal job document: %w", err)
		}
		jobs = append(jobs, &job)
	}
	return jobs, rows.Err()
}

// Compile-time check that PostgresStore implements Store.
var _ Store = (*PostgresStore)(nil)
