package stitch

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Muxer concatenates a list of clip files into a single output file.
type Muxer interface {
	Concat(ctx context.Context, listFile, outputPath string) error
}

// FFmpegMuxer shells out to ffmpeg with the concat demuxer. Clips come
// from the same render backend with matching codecs, so stream copy is
// safe and re-encoding is skipped.
type FFmpegMuxer struct{}

func NewFFmpegMuxer() *FFmpegMuxer { return &FFmpegMuxer{} }

func (m *FFmpegMuxer) Concat(ctx context.Context, listFile, outputPath string) error {
	cmd := exec.CommandContext(ctx, "ffmpeg", "-y",
		"-f", "concat",
		"-safe", "0",
		"-i", listFile,
		"-c", "copy",
		outputPath,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg concat: %w: %s", err, lastLine(stderr.String()))
	}
	return nil
}

// WritePlaylist writes an ffmpeg concat-demuxer list file for the given
// clip paths and returns the playlist path.
func WritePlaylist(path string, clipPaths []string) error {
	var b strings.Builder
	for _, p := range clipPaths {
		fmt.Fprintf(&b, "file '%s'\n", p)
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) == 0 {
		return ""
	}
	return strings.TrimSpace(lines[len(lines)-1])
}

var _ Muxer = (*FFmpegMuxer)(nil)
