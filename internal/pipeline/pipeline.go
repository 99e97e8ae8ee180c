// Package pipeline drives scene-by-scene video production for a movie
// job.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ankitpatil/director/internal/cache"
	"github.com/ankitpatil/director/internal/metrics"
	"github.com/ankitpatil/director/internal/storage"
	"github.com/ankitpatil/director/internal/store"
	"github.com/ankitpatil/director/internal/videogen"
	"github.com/ankitpatil/director/pkg/models"
)

// Progress checkpoints. Production owns the 10..90 band; scripting and
// final assembly own the rest.
const (
	progressFilmingStart = 10
	progressFilmingSpan  = 80
)

// statusCacheTTL bounds how long a mirrored status entry outlives its
// last write.
const statusCacheTTL = 30 * time.Minute

// Config carries the production tunables.
type Config struct {
	// InterSceneDelay separates consecutive render submissions so the
	// backend is never asked to extend an operation it is still
	// finalizing.
	InterSceneDelay time.Duration
	PollInterval    time.Duration
	PollTimeout     time.Duration
	MaxRetries      int
	RetryDelay      time.Duration
}

// Producer renders every pending scene of a job in order, chaining each
// scene off the previous successful render so the movie stays visually
// continuous.
type Producer struct {
	videos  videogen.Client
	store   store.Store
	cache   cache.Cache
	storage storage.Storage
	cfg     Config
	logger  *slog.Logger
}

func NewProducer(videos videogen.Client, st store.Store, ca cache.Cache, media storage.Storage, cfg Config, logger *slog.Logger) *Producer {
	return &Producer{
		videos:  videos,
		store:   st,
		cache:   ca,
		storage: media,
		cfg:     cfg,
		logger:  logger,
	}
}

// Run produces all pending scenes of the job, mutating the job in place
// and persisting it after every scene transition. A scene failure is
// recorded and production moves on; the next scene extends the last
// render that did succeed. Run only returns an error when the run as a
// whole cannot continue (context cancellation or a persistence failure).
func (p *Producer) Run(ctx context.Context, job *models.MovieJob) error {
	total := len(job.Scenes)
	if total == 0 {
		return nil
	}

	// lastOp is the operation behind the most recent successful render;
	// it only advances on success, so a failed scene never becomes the
	// basis for an extension.
	var lastOp string
	submitted := false

	for i := range job.Scenes {
		scene := &job.Scenes[i]

		if scene.Status == models.SceneStatusDone {
			if scene.OperationName != "" {
				lastOp = scene.OperationName
			}
			continue
		}

		scene.Status = models.SceneStatusGenerating
		if err := p.persist(ctx, job); err != nil {
			return err
		}

		if submitted {
			if err := sleepCtx(ctx, p.cfg.InterSceneDelay); err != nil {
				return err
			}
		}

		op, renderErr := p.renderScene(ctx, job, scene, lastOp, &submitted)
		if renderErr != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			scene.Status = models.SceneStatusFailed
			metrics.ScenesFailed.Inc()
			p.logger.Error("scene render failed",
				"job_id", job.JobID,
				"scene_id", scene.ID,
				"error", renderErr,
			)
			if err := p.persist(ctx, job); err != nil {
				return err
			}
			continue
		}

		scene.Status = models.SceneStatusDone
		lastOp = op
		job.Progress = progressFilmingStart + ((i + 1) * progressFilmingSpan / total)
		metrics.ScenesRendered.Inc()
		p.logger.Info("scene rendered",
			"job_id", job.JobID,
			"scene_id", scene.ID,
			"operation", op,
			"progress", job.Progress,
		)
		if err := p.persist(ctx, job); err != nil {
			return err
		}
	}

	return nil
}

// renderScene runs the submit/poll/materialize cycle for one scene,
// retrying the whole cycle up to MaxRetries extra times. It returns the
// backend operation name on success.
func (p *Producer) renderScene(ctx context.Context, job *models.MovieJob, scene *models.Scene, lastOp string, submitted *bool) (string, error) {
	var lastErr error

	for attempt := 0; attempt <= p.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			backoffDelay := p.cfg.RetryDelay * time.Duration(1<<(attempt-1))
			p.logger.Warn("retrying scene render",
				"job_id", job.JobID,
				"scene_id", scene.ID,
				"attempt", attempt,
				"delay", backoffDelay,
			)
			if err := sleepCtx(ctx, backoffDelay); err != nil {
				return "", err
			}
		}

		op, err := p.renderOnce(ctx, job, scene, lastOp, submitted)
		if err == nil {
			return op, nil
		}
		if ctx.Err() != nil {
			return "", err
		}
		lastErr = err
	}

	return "", lastErr
}

func (p *Producer) renderOnce(ctx context.Context, job *models.MovieJob, scene *models.Scene, lastOp string, submitted *bool) (string, error) {
	started := time.Now()

	req := videogen.SubmitRequest{
		Prompt:          scene.VisualPrompt,
		Model:           job.Model,
		DurationSeconds: scene.Duration,
		Resolution:      job.Resolution,
		AspectRatio:     job.AspectRatio,
	}

	var (
		op  string
		err error
	)
	if lastOp != "" {
		req.PreviousOperationName = lastOp
		op, err = p.videos.SubmitExtend(ctx, req)
		scene.IsExtension = true
	} else {
		op, err = p.videos.SubmitNew(ctx, req)
		scene.IsExtension = false
	}
	*submitted = true
	if err != nil {
		return "", fmt.Errorf("submit scene %d: %w", scene.ID, err)
	}
	if op == "" {
		return "", fmt.Errorf("submit scene %d: %w", scene.ID, videogen.ErrNoOperation)
	}
	scene.OperationName = op

	if err := videogen.WaitForOperation(ctx, p.videos, op, p.cfg.PollInterval, p.cfg.PollTimeout); err != nil {
		return "", fmt.Errorf("render scene %d: %w", scene.ID, err)
	}

	srcPath, err := p.videos.MaterializeLocal(ctx, op)
	if err != nil {
		return "", fmt.Errorf("materialize scene %d: %w", scene.ID, err)
	}

	filename := sceneFilename(job.JobID, scene.ID, op)
	finalPath, err := p.storage.SaveVideo(srcPath, filename)
	if err != nil {
		return "", fmt.Errorf("store scene %d clip: %w", scene.ID, err)
	}
	scene.VideoPath = finalPath

	metrics.RenderDuration.Observe(time.Since(started).Seconds())
	return op, nil
}

func (p *Producer) persist(ctx context.Context, job *models.MovieJob) error {
	if err := p.store.SaveJob(ctx, job); err != nil {
		return fmt.Errorf("persist job %s: %w", job.JobID, err)
	}
	if err := p.cache.SetJobStatus(ctx, job.JobID, job.Status, statusCacheTTL); err != nil {
		// The store is authoritative; a stale cache entry self-heals on
		// the next write.
		p.logger.Warn("failed to mirror job status to cache", "job_id", job.JobID, "error", err)
	}
	return nil
}

func sceneFilename(jobID string, sceneID int, operationName string) string {
	safeOp := strings.ReplaceAll(operationName, "/", "_")
	return fmt.Sprintf("scene_%s_%d_%s.mp4", jobID, sceneID, safeOp)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// AllScenesDone reports whether every scene in the job rendered.
func AllScenesDone(job *models.MovieJob) bool {
	for _, sc := range job.Scenes {
		if sc.Status != models.SceneStatusDone {
			return false
		}
	}
	return len(job.Scenes) > 0
}
