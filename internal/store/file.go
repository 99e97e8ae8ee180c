package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/ankitpatil/director/pkg/models"
)

// FileStore implements Store on a single local JSON file. It is meant for
// local development and single-process deployments; every save rewrites the
// whole file.
type FileStore struct {
	path string

	mu   sync.RWMutex
	jobs map[string]*models.MovieJob
}

// NewFileStore creates a FileStore backed by path, loading any existing jobs.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{
		path: path,
		jobs: make(map[string]*models.MovieJob),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *FileStore) load() error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read job file: %w", err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, &s.jobs); err != nil {
		return fmt.Errorf("parse job file %s: %w", s.path, err)
	}
	return nil
}

// flush writes the job map to disk. Callers must hold the write lock.
func (s *FileStore) flush() error {
	data, err := json.MarshalIndent(s.jobs, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal jobs: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write job file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace job file: %w", err)
	}
	return nil
}

func (s *FileStore) Ping(_ context.Context) error {
	return nil
}

func (s *FileStore) SaveJob(_ context.Context, job *models.MovieJob) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *job
	cp.Scenes = append([]models.Scene(nil), job.Scenes...)
	s.jobs[job.JobID] = &cp
	return s.flush()
}

func (s *FileStore) GetJob(_ context.Context, jobID string) (*models.MovieJob, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, ok := s.jobs[jobID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *job
	cp.Scenes = append([]models.Scene(nil), job.Scenes...)
	return &cp, nil
}

func (s *FileStore) ListJobsByOwner(_ context.Context, ownerID string) ([]*models.MovieJob, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var jobs []*models.MovieJob
	for _, job := range s.jobs {
		if job.OwnerID != ownerID {
			continue
		}
		cp := *job
		cp.Scenes = append([]models.Scene(nil), job.Scenes...)
		jobs = append(jobs, &cp)
	}
	sort.Slice(jobs, func(i, j int) bool {
		return jobs[i].CreatedAt.After(jobs[j].CreatedAt)
	})
	return jobs, nil
}

// Compile-time check that FileStore implements Store.
var _ Store = (*FileStore)(nil)
