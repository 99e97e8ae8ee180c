package store

import (
	"context"
	"errors"

	"github.com/ankitpatil/director/pkg/models"
)

var ErrNotFound = errors.New("job not found")

// Store is the job store contract. Jobs are stored as whole documents keyed
// by job id; callers reload before mutating and persist after, so the store
// never needs partial updates.
type Store interface {
	Ping(ctx context.Context) error
	SaveJob(ctx context.Context, job *models.MovieJob) error
	GetJob(ctx context.Context, jobID string) (*models.MovieJob, error)
	ListJobsByOwner(ctx context.Context, ownerID string) ([]*models.MovieJob, error)
}
