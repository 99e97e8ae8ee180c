// Package stitch assembles rendered scene clips into the final movie.
package stitch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ankitpatil/director/internal/storage"
	"github.com/ankitpatil/director/pkg/models"
)

const maxTopicSlugLen = 30

// Stitcher concatenates a job's finished scene clips and moves the
// result into media storage.
type Stitcher struct {
	muxer   Muxer
	storage storage.Storage
	workDir string
	logger  *slog.Logger
}

func NewStitcher(muxer Muxer, store storage.Storage, workDir string, logger *slog.Logger) *Stitcher {
	return &Stitcher{
		muxer:   muxer,
		storage: store,
		workDir: workDir,
		logger:  logger,
	}
}

// Stitch builds the final movie for a job from its finished scenes and
// returns the stored file path. When no scene finished it returns an
// empty path and no error; the caller decides what that means for the
// job.
//
// Per-scene clips are deleted only after a successful stitch, so a
// failed concat leaves the source material intact for a retry.
func (s *Stitcher) Stitch(ctx context.Context, job *models.MovieJob) (string, error) {
	ordered := Order(job.Scenes)
	if len(ordered) == 0 {
		s.logger.Warn("no finished scenes to stitch", "job_id", job.JobID)
		return "", nil
	}

	clipPaths := make([]string, 0, len(ordered))
	for _, sc := range ordered {
		clipPaths = append(clipPaths, sc.VideoPath)
	}

	playlist := filepath.Join(s.workDir, fmt.Sprintf("playlist_%s.txt", job.JobID))
	if err := WritePlaylist(playlist, clipPaths); err != nil {
		return "", fmt.Errorf("write playlist: %w", err)
	}
	defer os.Remove(playlist)

	rawOutput := filepath.Join(s.workDir, fmt.Sprintf("movie_%s_raw.mp4", job.JobID))
	defer os.Remove(rawOutput)

	if err := s.muxer.Concat(ctx, playlist, rawOutput); err != nil {
		return "", err
	}

	finalName := FinalFilename(job.Topic, job.JobID)
	finalPath, err := s.storage.SaveVideo(rawOutput, finalName)
	if err != nil {
		return "", fmt.Errorf("store final movie: %w", err)
	}

	// The final cut exists; the per-scene clips are now redundant.
	for _, sc := range job.Scenes {
		if sc.Status == models.SceneStatusDone && sc.VideoPath != "" && sc.VideoPath != finalPath {
			if err := os.Remove(sc.VideoPath); err != nil && !os.IsNotExist(err) {
				s.logger.Warn("failed to remove scene clip", "path", sc.VideoPath, "error", err)
			}
		}
	}

	s.logger.Info("stitched final movie",
		"job_id", job.JobID,
		"scenes", len(ordered),
		"path", finalPath,
	)
	return finalPath, nil
}

// FinalFilename derives the stored filename for a job's final cut from
// its topic and id.
func FinalFilename(topic, jobID string) string {
	slug := strings.ToLower(strings.TrimSpace(topic))
	slug = strings.ReplaceAll(slug, " ", "_")
	var b strings.Builder
	for _, r := range slug {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '_' || r == '-' {
			b.WriteRune(r)
		}
	}
	slug = b.String()
	if len(slug) > maxTopicSlugLen {
		slug = slug[:maxTopicSlugLen]
	}
	if slug == "" {
		slug = "movie"
	}
	return fmt.Sprintf("%s_%s.mp4", slug, jobID)
}
