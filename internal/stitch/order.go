package stitch

import (
	"sort"

	"github.com/ankitpatil/director/pkg/models"
)

// Order returns the scenes to concatenate, in playback order. Extension
// clips already contain the footage of the clip they extend, so when an
// extension lands the clip it grew out of is dropped in its favor.
//
// Only scenes that finished rendering participate; everything else is
// skipped so a partial run still stitches into a watchable cut.
func Order(scenes []models.Scene) []models.Scene {
	done := make([]models.Scene, 0, len(scenes))
	for _, sc := range scenes {
		if sc.Status == models.SceneStatusDone && sc.VideoPath != "" {
			done = append(done, sc)
		}
	}
	sort.SliceStable(done, func(i, j int) bool { return done[i].ID < done[j].ID })

	ordered := make([]models.Scene, 0, len(done))
	for _, sc := range done {
		if sc.IsExtension && len(ordered) > 0 {
			ordered = ordered[:len(ordered)-1]
		}
		ordered = append(ordered, sc)
	}
	return ordered
}
