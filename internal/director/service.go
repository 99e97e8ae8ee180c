// Package director orchestrates the movie lifecycle: script drafting,
// the human approval gate, scene production and final assembly.
package director

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ankitpatil/director/internal/cache"
	"github.com/ankitpatil/director/internal/config"
	"github.com/ankitpatil/director/internal/metrics"
	"github.com/ankitpatil/director/internal/pipeline"
	"github.com/ankitpatil/director/internal/scriptgen"
	"github.com/ankitpatil/director/internal/stitch"
	"github.com/ankitpatil/director/internal/store"
	"github.com/ankitpatil/director/pkg/models"
	"github.com/google/uuid"
)

// Request defaults, applied when the caller leaves a field empty.
const (
	DefaultModel           = "veo-3.1-fast-generate-preview"
	DefaultResolution      = "1080p"
	DefaultAspectRatio     = "16:9"
	DefaultDurationSeconds = 60
)

const statusCacheTTL = 30 * time.Minute

// Service coordinates the stages of a movie job. Stage work runs in
// background goroutines; the job document in the store is the source of
// truth between stages.
type Service struct {
	store    store.Store
	cache    cache.Cache
	provider models.ScriptProvider
	producer *pipeline.Producer
	stitcher *stitch.Stitcher

	draftTimeout  time.Duration
	partialStatus bool
	logger        *slog.Logger
}

func NewService(
	st store.Store,
	ca cache.Cache,
	provider models.ScriptProvider,
	producer *pipeline.Producer,
	stitcher *stitch.Stitcher,
	cfg *config.Config,
	logger *slog.Logger,
) *Service {
	return &Service{
		store:         st,
		cache:         ca,
		provider:      provider,
		producer:      producer,
		stitcher:      stitcher,
		draftTimeout:  cfg.ScriptGen.DraftTimeout,
		partialStatus: cfg.Pipeline.PartialStatus,
		logger:        logger,
	}
}

// CreateMovie registers a new job and dispatches its first stage in the
// background. It returns the queued job immediately.
//
// When the request carries a pre-built script the drafting and approval
// stages are skipped and production starts at once.
func (s *Service) CreateMovie(ctx context.Context, ownerID string, req models.MovieRequest) (*models.MovieJob, error) {
	duration := req.DurationSeconds
	if duration <= 0 {
		duration = DefaultDurationSeconds
	}

	job := &models.MovieJob{
		JobID:       uuid.NewString(),
		OwnerID:     ownerID,
		Topic:       req.Topic,
		Status:      models.JobStatusQueued,
		Progress:    0,
		Model:       orDefault(req.Model, DefaultModel),
		Resolution:  orDefault(req.Resolution, DefaultResolution),
		AspectRatio: orDefault(req.AspectRatio, DefaultAspectRatio),
		CreatedAt:   time.Now().UTC(),
	}

	if len(req.Scenes) > 0 {
		job.Scenes = normalizeScenes(req.Scenes)
	}

	if err := s.persist(ctx, job); err != nil {
		return nil, err
	}
	metrics.JobsCreated.Inc()

	// The goroutine owns the job from here; callers get a snapshot.
	snapshot := job.Clone()
	if len(job.Scenes) > 0 {
		s.logger.Info("movie job created with pre-built script",
			"job_id", job.JobID, "owner_id", ownerID, "scenes", len(job.Scenes))
		go s.runProduction(job)
	} else {
		s.logger.Info("movie job created",
			"job_id", job.JobID, "owner_id", ownerID, "topic", req.Topic)
		go s.runScripting(job, duration)
	}

	return snapshot, nil
}

// ApproveScript releases a job paused at the approval gate into
// production. A non-empty Scenes payload rewrites scene content in
// place; the scene count and ids must match the drafted script.
func (s *Service) ApproveScript(ctx context.Context, ownerID, jobID string, req models.ApprovalRequest) (*models.MovieJob, error) {
	job, err := s.GetMovie(ctx, ownerID, jobID)
	if err != nil {
		return nil, err
	}
	if job.Status != models.JobStatusWaitingForApproval {
		return nil, ErrNotAwaitingApproval
	}

	if len(req.Scenes) > 0 {
		if err := applyScriptEdits(job, req.Scenes); err != nil {
			return nil, err
		}
	}

	if err := s.persist(ctx, job); err != nil {
		return nil, err
	}

	s.logger.Info("script approved", "job_id", job.JobID, "scenes", len(job.Scenes))
	snapshot := job.Clone()
	go s.runProduction(job)

	return snapshot, nil
}

// GetMovie fetches a job scoped to its owner. A job belonging to
// another owner reads as not found.
func (s *Service) GetMovie(ctx context.Context, ownerID, jobID string) (*models.MovieJob, error) {
	job, err := s.store.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.OwnerID != ownerID {
		return nil, store.ErrNotFound
	}
	return job, nil
}

// ListMovies returns the owner's jobs, newest first.
func (s *Service) ListMovies(ctx context.Context, ownerID string) ([]*models.MovieJob, error) {
	return s.store.ListJobsByOwner(ctx, ownerID)
}

// runScripting drafts the script and parks the job at the approval
// gate. Runs in its own goroutine with a fresh context so an aborted
// HTTP request cannot abandon the job mid-stage.
func (s *Service) runScripting(job *models.MovieJob, durationSeconds int) {
	ctx := context.Background()

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("panic in scripting stage", "job_id", job.JobID, "error", r)
			s.fail(ctx, job, fmt.Sprintf("panic: %v", r))
		}
	}()

	job.Status = models.JobStatusScripting
	job.Progress = 5
	if err := s.persist(ctx, job); err != nil {
		s.logger.Error("failed to persist scripting status", "job_id", job.JobID, "error", err)
		return
	}

	prompt := scriptgen.BuildDraftPrompt(scriptgen.DraftRequest{
		Topic:           job.Topic,
		DurationSeconds: durationSeconds,
		Resolution:      job.Resolution,
	})

	draftCtx, cancel := context.WithTimeout(ctx, s.draftTimeout)
	defer cancel()

	raw, err := s.provider.Draft(draftCtx, prompt)
	if err != nil {
		s.fail(ctx, job, fmt.Sprintf("drafting script: %v", err))
		return
	}

	scenes, err := scriptgen.ParseScenes(raw)
	if err != nil {
		s.fail(ctx, job, fmt.Sprintf("parsing script: %v", err))
		return
	}

	job.Scenes = scenes
	job.Status = models.JobStatusWaitingForApproval
	job.Progress = 10
	if err := s.persist(ctx, job); err != nil {
		s.logger.Error("failed to persist drafted script", "job_id", job.JobID, "error", err)
		return
	}

	s.logger.Info("script drafted, waiting for approval",
		"job_id", job.JobID,
		"provider", s.provider.Name(),
		"scenes", len(scenes),
	)
}

// runProduction films every scene, stitches the final cut and settles
// the job's terminal status.
func (s *Service) runProduction(job *models.MovieJob) {
	ctx := context.Background()

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("panic in production stage", "job_id", job.JobID, "error", r)
			s.fail(ctx, job, fmt.Sprintf("panic: %v", r))
		}
	}()

	job.Status = models.JobStatusFilming
	if job.Progress < 10 {
		job.Progress = 10
	}
	if err := s.persist(ctx, job); err != nil {
		s.logger.Error("failed to persist filming status", "job_id", job.JobID, "error", err)
		return
	}

	if err := s.producer.Run(ctx, job); err != nil {
		s.fail(ctx, job, fmt.Sprintf("producing scenes: %v", err))
		return
	}

	stitchStart := time.Now()
	finalPath, err := s.stitcher.Stitch(ctx, job)
	if err != nil {
		s.fail(ctx, job, fmt.Sprintf("stitching final movie: %v", err))
		return
	}
	metrics.StitchDuration.Observe(time.Since(stitchStart).Seconds())

	// An empty path means no scene survived; the job still settles so
	// the caller sees a terminal status rather than a stuck one.
	job.FinalVideoPath = finalPath
	job.Progress = 100
	if s.partialStatus && !pipeline.AllScenesDone(job) {
		job.Status = models.JobStatusCompletedPartial
	} else {
		job.Status = models.JobStatusCompleted
	}

	if err := s.persist(ctx, job); err != nil {
		s.logger.Error("failed to persist completed job", "job_id", job.JobID, "error", err)
		return
	}
	metrics.JobsCompleted.WithLabelValues(job.Status).Inc()

	s.logger.Info("movie job finished",
		"job_id", job.JobID,
		"status", job.Status,
		"final_video", finalPath,
	)
}

func (s *Service) fail(ctx context.Context, job *models.MovieJob, message string) {
	job.Status = models.JobStatusFailed
	job.Error = message
	if err := s.persist(ctx, job); err != nil {
		s.logger.Error("failed to persist failed job", "job_id", job.JobID, "error", err)
		return
	}
	metrics.JobsCompleted.WithLabelValues(models.JobStatusFailed).Inc()
	s.logger.Error("movie job failed", "job_id", job.JobID, "error", message)
}

func (s *Service) persist(ctx context.Context, job *models.MovieJob) error {
	if err := s.store.SaveJob(ctx, job); err != nil {
		return fmt.Errorf("saving job %s: %w", job.JobID, err)
	}
	_ = s.cache.SetJobStatus(ctx, job.JobID, job.Status, statusCacheTTL)
	return nil
}

// applyScriptEdits overwrites scene content with the approved version
// while keeping ids, ordering and production bookkeeping intact.
func applyScriptEdits(job *models.MovieJob, edited []models.Scene) error {
	if len(edited) != len(job.Scenes) {
		return fmt.Errorf("%w: got %d scenes, script has %d",
			ErrScriptMismatch, len(edited), len(job.Scenes))
	}
	for i, e := range edited {
		if e.ID != job.Scenes[i].ID {
			return fmt.Errorf("%w: scene %d has id %d", ErrScriptMismatch, i+1, e.ID)
		}
	}
	for i, e := range edited {
		sc := &job.Scenes[i]
		sc.SceneHeading = e.SceneHeading
		sc.Prompt = e.Prompt
		if e.Duration > 0 {
			sc.Duration = e.Duration
		}
		if e.VisualPrompt != "" {
			sc.VisualPrompt = e.VisualPrompt
		} else {
			sc.VisualPrompt = scriptgen.SynthesizeVisualPrompt(e.Prompt)
		}
	}
	return nil
}

// normalizeScenes prepares caller-supplied scenes for production:
// sequential ids, pending status and a synthesized visual prompt where
// none was given.
func normalizeScenes(scenes []models.Scene) []models.Scene {
	out := make([]models.Scene, len(scenes))
	for i, sc := range scenes {
		if sc.ID == 0 {
			sc.ID = i + 1
		}
		if sc.Duration <= 0 {
			sc.Duration = 8
		}
		if sc.VisualPrompt == "" {
			sc.VisualPrompt = scriptgen.SynthesizeVisualPrompt(sc.Prompt)
		}
		sc.Status = models.SceneStatusPending
		sc.VideoPath = ""
		sc.OperationName = ""
		sc.IsExtension = false
		out[i] = sc
	}
	return out
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
