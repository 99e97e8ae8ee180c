package store_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ankitpatil/director/internal/store"
	"github.com/ankitpatil/director/pkg/models"
)

func newFileStore(t *testing.T) (*store.FileStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "jobs.json")
	s, err := store.NewFileStore(path)
	require.NoError(t, err)
	return s, path
}

func TestFileStore_SaveAndGet(t *testing.T) {
	s, _ := newFileStore(t)
	ctx := context.Background()

	job := sampleJob("owner-a")
	require.NoError(t, s.SaveJob(ctx, job))

	got, err := s.GetJob(ctx, job.JobID)
	require.NoError(t, err)
	assert.Equal(t, job.JobID, got.JobID)
	assert.Equal(t, job.Topic, got.Topic)
}

func TestFileStore_GetNotFound(t *testing.T) {
	s, _ := newFileStore(t)

	_, err := s.GetJob(context.Background(), "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestFileStore_GetReturnsCopy(t *testing.T) {
	s, _ := newFileStore(t)
	ctx := context.Background()

	job := sampleJob("owner-a")
	require.NoError(t, s.SaveJob(ctx, job))

	got, err := s.GetJob(ctx, job.JobID)
	require.NoError(t, err)
	got.Scenes[0].Status = models.SceneStatusDone

	// Mutating the returned job must not leak into the store.
	again, err := s.GetJob(ctx, job.JobID)
	require.NoError(t, err)
	assert.Equal(t, models.SceneStatusPending, again.Scenes[0].Status)
}

func TestFileStore_SurvivesReopen(t *testing.T) {
	s, path := newFileStore(t)
	ctx := context.Background()

	job := sampleJob("owner-a")
	job.Status = models.JobStatusWaitingForApproval
	require.NoError(t, s.SaveJob(ctx, job))

	reopened, err := store.NewFileStore(path)
	require.NoError(t, err)

	got, err := reopened.GetJob(ctx, job.JobID)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusWaitingForApproval, got.Status)
	require.Len(t, got.Scenes, 1)
}

func TestFileStore_ListJobsByOwnerNewestFirst(t *testing.T) {
	s, _ := newFileStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		j := sampleJob("owner-a")
		j.CreatedAt = j.CreatedAt.Add(time.Duration(i) * time.Second)
		require.NoError(t, s.SaveJob(ctx, j))
	}
	require.NoError(t, s.SaveJob(ctx, sampleJob("owner-b")))

	jobs, err := s.ListJobsByOwner(ctx, "owner-a")
	require.NoError(t, err)
	require.Len(t, jobs, 3)
	assert.True(t, jobs[0].CreatedAt.After(jobs[1].CreatedAt))
	assert.True(t, jobs[1].CreatedAt.After(jobs[2].CreatedAt))
}
